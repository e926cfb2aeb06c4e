package financials

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// MaxQuarters is the length of the series returned by the backfill.
const MaxQuarters = 8

// CanonicalRow is one fiscal quarter's income-statement snapshot.
// Metrics are expressed in full currency units; nil means unknown.
type CanonicalRow struct {
	Date            string           `json:"date"`
	CalendarYear    *int             `json:"calendarYear"`
	Period          *string          `json:"period"`
	Revenue         *decimal.Decimal `json:"revenue"`
	GrossProfit     *decimal.Decimal `json:"grossProfit"`
	OperatingIncome *decimal.Decimal `json:"operatingIncome"`
	NetIncome       *decimal.Decimal `json:"netIncome"`
}

// MarshalJSON encodes metrics as JSON numbers rather than decimal's default
// quoted strings.
func (r CanonicalRow) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date            string       `json:"date"`
		CalendarYear    *int         `json:"calendarYear"`
		Period          *string      `json:"period"`
		Revenue         *json.Number `json:"revenue"`
		GrossProfit     *json.Number `json:"grossProfit"`
		OperatingIncome *json.Number `json:"operatingIncome"`
		NetIncome       *json.Number `json:"netIncome"`
	}{
		Date:            r.Date,
		CalendarYear:    r.CalendarYear,
		Period:          r.Period,
		Revenue:         jsonNumber(r.Revenue),
		GrossProfit:     jsonNumber(r.GrossProfit),
		OperatingIncome: jsonNumber(r.OperatingIncome),
		NetIncome:       jsonNumber(r.NetIncome),
	})
}

func jsonNumber(d *decimal.Decimal) *json.Number {
	if d == nil {
		return nil
	}
	n := json.Number(d.String())
	return &n
}

// Metric identifies one of the four income-statement values of a row.
type Metric int

const (
	Revenue Metric = iota
	GrossProfit
	OperatingIncome
	NetIncome
)

// Metrics lists every metric in output order.
var Metrics = []Metric{Revenue, GrossProfit, OperatingIncome, NetIncome}

func (m Metric) String() string {
	switch m {
	case Revenue:
		return "revenue"
	case GrossProfit:
		return "grossProfit"
	case OperatingIncome:
		return "operatingIncome"
	case NetIncome:
		return "netIncome"
	}
	return "unknown"
}

// Get returns the value of metric m, or nil when it is unknown.
func (r *CanonicalRow) Get(m Metric) *decimal.Decimal {
	switch m {
	case Revenue:
		return r.Revenue
	case GrossProfit:
		return r.GrossProfit
	case OperatingIncome:
		return r.OperatingIncome
	case NetIncome:
		return r.NetIncome
	}
	return nil
}

// Set replaces the value of metric m.
func (r *CanonicalRow) Set(m Metric, v *decimal.Decimal) {
	switch m {
	case Revenue:
		r.Revenue = v
	case GrossProfit:
		r.GrossProfit = v
	case OperatingIncome:
		r.OperatingIncome = v
	case NetIncome:
		r.NetIncome = v
	}
}

// HasMetrics reports whether at least one metric is known.
func (r *CanonicalRow) HasMetrics() bool {
	for _, m := range Metrics {
		if r.Get(m) != nil {
			return true
		}
	}
	return false
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func intPtr(v int) *int {
	return &v
}

func stringPtr(s string) *string {
	return &s
}
