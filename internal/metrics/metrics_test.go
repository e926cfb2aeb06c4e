package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestFinancialsInstruments(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewFinancials(reg)

	m.ReportFetch(OutcomeFetched)
	m.ReportFetch(OutcomeFetched)
	m.ReportFetch(OutcomeMiss)
	m.QuarterDerived()
	m.RowsReturned(8)

	if got := testutil.ToFloat64(m.reportFetches.WithLabelValues(OutcomeFetched)); got != 2 {
		t.Errorf("Expected 2 fetched, got %v", got)
	}
	if got := testutil.ToFloat64(m.reportFetches.WithLabelValues(OutcomeMiss)); got != 1 {
		t.Errorf("Expected 1 miss, got %v", got)
	}
	if got := testutil.ToFloat64(m.derivedQuarters); got != 1 {
		t.Errorf("Expected 1 derived quarter, got %v", got)
	}
	if got := testutil.CollectAndCount(m.rowsReturned); got != 1 {
		t.Errorf("Expected one histogram series, got %d", got)
	}
}

func TestNilFinancialsIsNoop(t *testing.T) {
	var m *Financials
	m.ReportFetch(OutcomeCached)
	m.QuarterDerived()
	m.RowsReturned(3)
}
