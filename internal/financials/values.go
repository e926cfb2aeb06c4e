package financials

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// numberValue coerces a JSON scalar to a decimal. Numeric strings may use
// comma digit grouping ("1,234.5"). Booleans, objects and arrays are not
// numbers.
func numberValue(v gjson.Result) *decimal.Decimal {
	switch v.Type {
	case gjson.Number:
		d, err := decimal.NewFromString(v.Raw)
		if err != nil {
			return nil
		}
		return &d
	case gjson.String:
		text := strings.TrimSpace(strings.ReplaceAll(v.Str, ",", ""))
		if text == "" {
			return nil
		}
		d, err := decimal.NewFromString(text)
		if err != nil {
			return nil
		}
		return &d
	}
	return nil
}

// firstNumber is numberValue, except that for a list it returns the first
// element that is numeric.
func firstNumber(v gjson.Result) *decimal.Decimal {
	if !v.IsArray() {
		return numberValue(v)
	}
	var found *decimal.Decimal
	v.ForEach(func(_, item gjson.Result) bool {
		found = numberValue(item)
		return found == nil
	})
	return found
}

// scalarText renders strings and numbers as text; anything else is empty.
func scalarText(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return strings.TrimSpace(v.Str)
	case gjson.Number:
		return v.Raw
	}
	return ""
}

// yearValue parses an integer-like year given as a number or a string.
func yearValue(v gjson.Result) *int {
	return parseYear(scalarText(v))
}

func parseYear(text string) *int {
	year, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return nil
	}
	return &year
}

// periodValue keeps a period only when it names a quarter, normalized to
// "Q1".."Q4".
func periodValue(text string) *string {
	q, ok := ParsePeriod(text)
	if !ok {
		return nil
	}
	return stringPtr(Quarter{Q: q}.Period())
}
