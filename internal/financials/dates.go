package financials

import (
	"strings"
	"time"
)

// reportDateLayouts are tried in order; the first one that parses wins.
var reportDateLayouts = []string{
	"Jan. 2, 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

const isoDate = "2006-01-02"

// ParseReportDate converts the textual dates found in financial report
// headers ("Mar. 31, 2024", "March 31, 2024") into YYYY-MM-DD.
func ParseReportDate(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	for _, layout := range reportDateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t.Format(isoDate), true
		}
	}
	return "", false
}
