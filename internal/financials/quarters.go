package financials

import (
	"fmt"
	"strings"
	"time"
)

// Quarter is a fiscal quarter, Q in 1..4.
type Quarter struct {
	Year int
	Q    int
}

func (q Quarter) String() string {
	return fmt.Sprintf("%d-%s", q.Year, q.Period())
}

// Previous returns the quarter immediately before q.
func (q Quarter) Previous() Quarter {
	if q.Q == 1 {
		return Quarter{Year: q.Year - 1, Q: 4}
	}
	return Quarter{Year: q.Year, Q: q.Q - 1}
}

// Period returns the period label, e.g. "Q3".
func (q Quarter) Period() string {
	return fmt.Sprintf("Q%d", q.Q)
}

var quarterEnds = map[int]string{
	1: "03-31",
	2: "06-30",
	3: "09-30",
	4: "12-31",
}

// EndDate returns the calendar quarter-end date used when a report carries
// no explicit date.
func (q Quarter) EndDate() string {
	return fmt.Sprintf("%d-%s", q.Year, quarterEnds[q.Q])
}

// ParsePeriod maps "Q1".."Q4" (any case, surrounding space allowed) to 1..4.
func ParsePeriod(text string) (int, bool) {
	switch strings.ToUpper(strings.TrimSpace(text)) {
	case "Q1":
		return 1, true
	case "Q2":
		return 2, true
	case "Q3":
		return 3, true
	case "Q4":
		return 4, true
	}
	return 0, false
}

// QuarterTargets walks count quarters backward from anchor. The anchor
// itself is not included.
func QuarterTargets(anchor Quarter, count int) []Quarter {
	if count <= 0 {
		return nil
	}
	out := make([]Quarter, 0, count)
	q := anchor
	for i := 0; i < count; i++ {
		q = q.Previous()
		out = append(out, q)
	}
	return out
}

// FiscalTargets anchors on a fiscal (year, period) pair. It yields nothing
// when either part is missing or the period is not a quarter.
func FiscalTargets(calendarYear *int, period *string, count int) []Quarter {
	if calendarYear == nil || period == nil {
		return nil
	}
	q, ok := ParsePeriod(*period)
	if !ok {
		return nil
	}
	return QuarterTargets(Quarter{Year: *calendarYear, Q: q}, count)
}

// CalendarTargets anchors on the calendar quarter containing an ISO date.
func CalendarTargets(date string, count int) []Quarter {
	t, err := time.Parse(isoDate, date)
	if err != nil {
		return nil
	}
	anchor := Quarter{Year: t.Year(), Q: (int(t.Month())-1)/3 + 1}
	return QuarterTargets(anchor, count)
}
