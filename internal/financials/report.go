package financials

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrMalformedReport is returned when a financial-reports payload is not a
// JSON object.
var ErrMalformedReport = errors.New("malformed financial report")

// FinancialReport is the free-form "financial report" document: named
// sections, each a list of label/value rows. Order of sections, rows and
// cells is the order of the source document.
type FinancialReport struct {
	Symbol   string
	Year     string
	Period   string
	Sections []Section
}

// Section is one list-valued entry of a report, e.g. a statement table.
type Section struct {
	Name string
	Rows []ReportRow
}

// ReportRow is one object inside a section.
type ReportRow struct {
	Cells []Cell
}

// Cell is one label/value pair of a row. Value is kept as raw JSON so that
// lists and scalars can be told apart at extraction time.
type Cell struct {
	Label string
	Value gjson.Result
}

// LeadingLabel returns the label of the row's first cell.
func (r ReportRow) LeadingLabel() string {
	if len(r.Cells) == 0 {
		return ""
	}
	return r.Cells[0].Label
}

// ParseReport decodes a financial-reports payload.
func ParseReport(body []byte) (*FinancialReport, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedReport)
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: expected object, got %s", ErrMalformedReport, doc.Type)
	}

	report := &FinancialReport{}
	doc.ForEach(func(key, value gjson.Result) bool {
		switch key.String() {
		case "symbol":
			report.Symbol = scalarText(value)
		case "year":
			report.Year = scalarText(value)
		case "period":
			report.Period = scalarText(value)
		}
		if value.IsArray() {
			report.Sections = append(report.Sections, parseSection(key.String(), value))
		}
		return true
	})
	return report, nil
}

func parseSection(name string, value gjson.Result) Section {
	section := Section{Name: name}
	value.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			return true
		}
		var row ReportRow
		item.ForEach(func(label, cell gjson.Result) bool {
			row.Cells = append(row.Cells, Cell{Label: label.String(), Value: cell})
			return true
		})
		section.Rows = append(section.Rows, row)
		return true
	})
	return section
}
