package financials

import (
	"strconv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func checkDecimal(t *testing.T, name string, got *decimal.Decimal, want string) {
	t.Helper()
	if want == "" {
		if got != nil {
			t.Errorf("Expected %s to be null, got %s", name, got)
		}
		return
	}
	if got == nil {
		t.Errorf("Expected %s %s, got null", name, want)
		return
	}
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("Expected %s %s, got %s", name, want, got)
	}
}

// reportJSON builds a statement-of-operations document with an items row of
// the given column count followed by lines such as `{"Net sales": 200}`.
func reportJSON(date string, columns int, lines ...string) string {
	items := []string{strconv.Quote(date)}
	for i := 1; i < columns; i++ {
		items = append(items, "0")
	}
	rows := append([]string{`{"items":[` + strings.Join(items, ",") + `]}`}, lines...)
	return `{"symbol":"TEST","CONSOLIDATED STATEMENTS OF INCOME":[` + strings.Join(rows, ",") + `]}`
}

func quarterRow(date string, year int, period string, revenue string) CanonicalRow {
	return CanonicalRow{
		Date:         date,
		CalendarYear: intPtr(year),
		Period:       stringPtr(period),
		Revenue:      dec(revenue),
	}
}

func dates(rows []CanonicalRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Date
	}
	return out
}

func checkDescending(t *testing.T, rows []CanonicalRow) {
	t.Helper()
	if len(rows) > MaxQuarters {
		t.Errorf("Expected at most %d rows, got %d", MaxQuarters, len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i-1].Date <= rows[i].Date {
			t.Errorf("Expected strictly decreasing dates, got %v", dates(rows))
			return
		}
	}
}
