package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Report fetch outcomes.
const (
	OutcomeFetched = "fetched"
	OutcomeMiss    = "miss"
	OutcomeCached  = "cached"
)

// Financials holds the instruments of the financials backfill.
// A nil *Financials records nothing.
type Financials struct {
	reportFetches   *prometheus.CounterVec
	derivedQuarters prometheus.Counter
	rowsReturned    prometheus.Histogram
}

// NewFinancials registers the backfill instruments on reg.
func NewFinancials(reg prometheus.Registerer) *Financials {
	factory := promauto.With(reg)
	return &Financials{
		reportFetches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "financials_report_fetches_total",
			Help: "Financial report lookups by outcome (fetched, miss, cached).",
		}, []string{"outcome"}),
		derivedQuarters: factory.NewCounter(prometheus.CounterOpts{
			Name: "financials_derived_quarters_total",
			Help: "Fourth quarters derived by subtracting Q1-Q3 from an annual report.",
		}),
		rowsReturned: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "financials_rows_returned",
			Help:    "Quarters returned per financials request.",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 6, 7, 8},
		}),
	}
}

// ReportFetch counts one report lookup.
func (f *Financials) ReportFetch(outcome string) {
	if f == nil {
		return
	}
	f.reportFetches.WithLabelValues(outcome).Inc()
}

// QuarterDerived counts one derived fourth quarter.
func (f *Financials) QuarterDerived() {
	if f == nil {
		return
	}
	f.derivedQuarters.Inc()
}

// RowsReturned records the size of a returned series.
func (f *Financials) RowsReturned(n int) {
	if f == nil {
		return
	}
	f.rowsReturned.Observe(float64(n))
}
