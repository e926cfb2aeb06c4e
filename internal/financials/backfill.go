package financials

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"stock-backend/internal/logger"
	"stock-backend/internal/metrics"
)

// ReportSource returns the financial report filed for one quarter.
type ReportSource interface {
	FetchReport(ctx context.Context, symbol string, q Quarter) (*FinancialReport, error)
}

// Backfiller completes a short quarterly series with rows extracted from
// per-quarter financial reports.
type Backfiller struct {
	reports ReportSource
	metrics *metrics.Financials
}

// NewBackfiller creates a backfiller reading reports from src. m may be nil.
func NewBackfiller(src ReportSource, m *metrics.Financials) *Backfiller {
	return &Backfiller{reports: src, metrics: m}
}

// fetchResult is the outcome of fetching and extracting one quarter.
// ok is false for every kind of failure.
type fetchResult struct {
	row    CanonicalRow
	annual bool
	ok     bool
}

// fetchCache memoizes report lookups for a single Backfill call, misses
// included.
type fetchCache map[Quarter]fetchResult

// Backfill dedups primary, then fills in up to MaxQuarters rows walking
// backward from the oldest primary quarter. The result is newest first with
// unique dates. Report failures only shorten the result.
func (b *Backfiller) Backfill(ctx context.Context, symbol string, primary []CanonicalRow) []CanonicalRow {
	op := logger.StartOperation(ctx, "financials.Backfill", "symbol", symbol)
	ctx = op.Context()

	rows := dedupByDate(primary)
	if len(rows) == 0 || len(rows) >= MaxQuarters {
		rows = truncate(rows)
		op.End("rows", len(rows), "lookups", 0)
		return rows
	}
	primaryRows := len(rows)

	present := make(map[string]bool, MaxQuarters)
	for _, row := range rows {
		present[row.Date] = true
	}

	oldest := rows[len(rows)-1]
	missing := MaxQuarters - len(rows)
	targets := FiscalTargets(oldest.CalendarYear, oldest.Period, missing)
	if len(targets) == 0 {
		targets = CalendarTargets(oldest.Date, missing)
	}
	logger.Debug(ctx, "Backfilling quarters",
		"symbol", symbol,
		"primary_rows", primaryRows,
		"targets", len(targets))

	cache := make(fetchCache)
	for _, target := range targets {
		res := b.lookup(ctx, cache, symbol, target)
		if !res.ok || present[res.row.Date] {
			continue
		}

		row := res.row
		if res.annual && target.Q == 4 {
			row = b.fourthQuarter(ctx, cache, symbol, target.Year, row)
		}
		rows = append(rows, row)
		present[row.Date] = true
	}

	sortByDateDesc(rows)
	rows = truncate(rows)
	op.End("rows", len(rows), "lookups", len(cache), "added", len(rows)-primaryRows)
	return rows
}

func (b *Backfiller) lookup(ctx context.Context, cache fetchCache, symbol string, q Quarter) fetchResult {
	if res, ok := cache[q]; ok {
		b.metrics.ReportFetch(metrics.OutcomeCached)
		return res
	}
	res := b.fetch(ctx, symbol, q)
	cache[q] = res
	return res
}

func (b *Backfiller) fetch(ctx context.Context, symbol string, q Quarter) fetchResult {
	report, err := b.reports.FetchReport(ctx, symbol, q)
	if err != nil {
		b.metrics.ReportFetch(metrics.OutcomeMiss)
		logger.Debug(ctx, "Financial report unavailable",
			"symbol", symbol, "quarter", q.String(), "error", err)
		return fetchResult{}
	}

	ext, ok := ExtractRow(report)
	if !ok {
		b.metrics.ReportFetch(metrics.OutcomeMiss)
		logger.Debug(ctx, "No income row in financial report",
			"symbol", symbol, "quarter", q.String())
		return fetchResult{}
	}

	b.metrics.ReportFetch(metrics.OutcomeFetched)
	return fetchResult{row: NormalizeUnits(ext.Row), annual: ext.Annual, ok: true}
}

// fourthQuarter turns an annual row into a Q4-only row when Q1-Q3 of the
// same year are all available. Otherwise the annual totals are kept.
func (b *Backfiller) fourthQuarter(ctx context.Context, cache fetchCache, symbol string, year int, annual CanonicalRow) CanonicalRow {
	quarters := make([]CanonicalRow, 0, 3)
	for q := 1; q <= 3; q++ {
		res := b.lookup(ctx, cache, symbol, Quarter{Year: year, Q: q})
		if !res.ok {
			logger.Debug(ctx, "Keeping annual totals for Q4",
				"symbol", symbol, "year", year, "missing_quarter", q)
			return annual
		}
		quarters = append(quarters, res.row)
	}
	b.metrics.QuarterDerived()
	return DeriveFourthQuarter(annual, quarters)
}

// DeriveFourthQuarter subtracts the sum of quarters from each annual metric.
// A metric is left at its annual value when it or any quarterly operand is
// unknown.
func DeriveFourthQuarter(annual CanonicalRow, quarters []CanonicalRow) CanonicalRow {
	for _, m := range Metrics {
		total := annual.Get(m)
		if total == nil {
			continue
		}
		sum := decimal.Zero
		complete := true
		for i := range quarters {
			v := quarters[i].Get(m)
			if v == nil {
				complete = false
				break
			}
			sum = sum.Add(*v)
		}
		if complete {
			annual.Set(m, decimalPtr(total.Sub(sum)))
		}
	}
	return annual
}

// dedupByDate drops undated rows and keeps one row per date. For duplicate
// dates the row seen last in the newest-first scan wins.
func dedupByDate(primary []CanonicalRow) []CanonicalRow {
	rows := make([]CanonicalRow, 0, len(primary))
	for _, row := range primary {
		if row.Date != "" {
			rows = append(rows, row)
		}
	}
	sortByDateDesc(rows)

	out := make([]CanonicalRow, 0, len(rows))
	index := make(map[string]int, len(rows))
	for _, row := range rows {
		if i, ok := index[row.Date]; ok {
			out[i] = row
			continue
		}
		index[row.Date] = len(out)
		out = append(out, row)
	}
	sortByDateDesc(out)
	return out
}

func sortByDateDesc(rows []CanonicalRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date > rows[j].Date
	})
}

func truncate(rows []CanonicalRow) []CanonicalRow {
	if len(rows) > MaxQuarters {
		return rows[:MaxQuarters]
	}
	return rows
}
