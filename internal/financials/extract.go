package financials

import (
	"strings"
)

// itemsLabel is the reserved label holding the column headers of a
// statement table. Its first element is the period-end date; three or more
// columns mean the table covers a full fiscal year.
const itemsLabel = "items"

const annualColumns = 3

// IncomeRule assigns a report label to a metric.
type IncomeRule struct {
	Metric  Metric
	Matches func(label string) bool
}

// IncomeRules is evaluated in order against lower-cased, trimmed labels.
// The first rule whose metric is still unset and whose predicate matches
// takes the value; later values for a filled metric are ignored.
var IncomeRules = []IncomeRule{
	{Metric: Revenue, Matches: func(l string) bool {
		return strings.Contains(l, "net sales") || l == "revenue" || l == "total revenue"
	}},
	{Metric: GrossProfit, Matches: func(l string) bool {
		return strings.Contains(l, "gross margin") || strings.Contains(l, "gross profit")
	}},
	{Metric: OperatingIncome, Matches: func(l string) bool {
		return strings.Contains(l, "operating income")
	}},
	{Metric: NetIncome, Matches: func(l string) bool {
		return l == "net income"
	}},
}

// Classify returns the metric a label should fill given the metrics already
// set on row.
func Classify(label string, row *CanonicalRow) (Metric, bool) {
	label = strings.ToLower(strings.TrimSpace(label))
	for _, rule := range IncomeRules {
		if row.Get(rule.Metric) == nil && rule.Matches(label) {
			return rule.Metric, true
		}
	}
	return 0, false
}

// Extraction is the row found in a report and whether the report covers a
// full fiscal year.
type Extraction struct {
	Row    CanonicalRow
	Annual bool
}

// operationsSection picks the statement-of-operations table: the first
// statement section with a row led by an "operations" label. Restricting
// extraction to it keeps year-to-date copies and note tables out.
func operationsSection(report *FinancialReport) (Section, bool) {
	for _, section := range report.Sections {
		if !strings.Contains(strings.ToLower(section.Name), "statemen") {
			continue
		}
		for _, row := range section.Rows {
			if strings.Contains(strings.ToLower(row.LeadingLabel()), "operations") {
				return section, true
			}
		}
	}
	return Section{}, false
}

// ExtractRow reads one canonical income row out of a report. It reports
// false when no date can be resolved or no metric was found.
func ExtractRow(report *FinancialReport) (Extraction, bool) {
	if report == nil {
		return Extraction{}, false
	}

	sections := report.Sections
	if section, ok := operationsSection(report); ok {
		sections = []Section{section}
	}

	var (
		row    CanonicalRow
		annual bool
	)
	for _, section := range sections {
		for _, r := range section.Rows {
			for _, cell := range r.Cells {
				label := strings.ToLower(strings.TrimSpace(cell.Label))
				if label == itemsLabel && cell.Value.IsArray() {
					items := cell.Value.Array()
					if len(items) > 0 {
						if date, ok := ParseReportDate(scalarText(items[0])); ok {
							row.Date = date
						}
						if len(items) >= annualColumns {
							annual = true
						}
						continue
					}
				}

				value := firstNumber(cell.Value)
				if value == nil {
					continue
				}
				if metric, ok := Classify(label, &row); ok {
					row.Set(metric, value)
				}
			}
		}
	}

	row.CalendarYear = parseYear(report.Year)
	row.Period = periodValue(report.Period)
	if row.Date == "" {
		row.Date = synthesizedDate(report.Year, report.Period)
	}

	if row.Date == "" || !row.HasMetrics() {
		return Extraction{}, false
	}
	return Extraction{Row: row, Annual: annual}, true
}

// synthesizedDate builds a quarter-end date from the report's fiscal year
// and period when the statement itself carries no date.
func synthesizedDate(year, period string) string {
	y := parseYear(year)
	q, ok := ParsePeriod(period)
	if y == nil || !ok {
		return ""
	}
	return Quarter{Year: *y, Q: q}.EndDate()
}
