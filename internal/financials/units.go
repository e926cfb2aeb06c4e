package financials

import (
	"github.com/shopspring/decimal"
)

var (
	// millionsThreshold is the revenue magnitude below which a row is assumed
	// to be reported in millions. There is no unit field in the report
	// payload, so genuinely small issuers get scaled up by mistake.
	millionsThreshold = decimal.NewFromInt(10_000_000)
	millionsFactor    = decimal.NewFromInt(1_000_000)
)

// NormalizeUnits returns row with every known metric expressed in full
// currency units. Rows without revenue are returned unchanged.
func NormalizeUnits(row CanonicalRow) CanonicalRow {
	if row.Revenue == nil {
		return row
	}
	if !row.Revenue.Abs().LessThan(millionsThreshold) {
		return row
	}
	for _, m := range Metrics {
		if v := row.Get(m); v != nil {
			row.Set(m, decimalPtr(v.Mul(millionsFactor)))
		}
	}
	return row
}
