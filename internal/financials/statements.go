package financials

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrMalformedStatements is returned when an income-statement payload is not
// a JSON array.
var ErrMalformedStatements = errors.New("malformed income statements")

// IncomeStatementList is the structured quarterly payload: one object per
// quarter, already in full currency units.
type IncomeStatementList struct {
	Rows []CanonicalRow
}

// ParseIncomeStatements decodes the quarterly income-statement list.
// Non-object elements are skipped; rows are kept even without a date so the
// backfill can apply its own filtering.
func ParseIncomeStatements(body []byte) (IncomeStatementList, error) {
	if !gjson.ValidBytes(body) {
		return IncomeStatementList{}, fmt.Errorf("%w: invalid JSON", ErrMalformedStatements)
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsArray() {
		return IncomeStatementList{}, fmt.Errorf("%w: expected array, got %s", ErrMalformedStatements, doc.Type)
	}

	var list IncomeStatementList
	doc.ForEach(func(_, item gjson.Result) bool {
		if item.IsObject() {
			list.Rows = append(list.Rows, statementRow(item))
		}
		return true
	})
	return list, nil
}

func statementRow(item gjson.Result) CanonicalRow {
	row := CanonicalRow{
		Date:            scalarText(item.Get("date")),
		CalendarYear:    yearValue(item.Get("calendarYear")),
		Period:          periodValue(scalarText(item.Get("period"))),
		Revenue:         numberValue(item.Get("revenue")),
		GrossProfit:     numberValue(item.Get("grossProfit")),
		OperatingIncome: numberValue(item.Get("operatingIncome")),
		NetIncome:       numberValue(item.Get("netIncome")),
	}
	if row.CalendarYear == nil {
		row.CalendarYear = yearValue(item.Get("fiscalYear"))
	}
	return row
}
