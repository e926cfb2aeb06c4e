package financials

import "testing"

func extract(t *testing.T, body string) (Extraction, bool) {
	t.Helper()
	report, err := ParseReport([]byte(body))
	if err != nil {
		t.Fatalf("ParseReport failed: %v", err)
	}
	return ExtractRow(report)
}

func TestExtractRowAnnualStatement(t *testing.T) {
	body := `{"Statement of Operations":[
		{"items":["Mar. 31, 2024",100,200,300]},
		{"Net sales":900}
	]}`

	ext, ok := extract(t, body)
	if !ok {
		t.Fatal("Expected a row")
	}
	if ext.Row.Date != "2024-03-31" {
		t.Errorf("Expected date 2024-03-31, got %s", ext.Row.Date)
	}
	if !ext.Annual {
		t.Error("Expected four columns to be annual")
	}
	checkDecimal(t, "revenue", ext.Row.Revenue, "900")
	checkDecimal(t, "netIncome", ext.Row.NetIncome, "")
	if ext.Row.CalendarYear != nil || ext.Row.Period != nil {
		t.Errorf("Expected no year or period, got %v %v", ext.Row.CalendarYear, ext.Row.Period)
	}
}

func TestExtractRowUsesOperationsSection(t *testing.T) {
	body := `{
		"symbol":"AAPL","year":"2024","period":"Q3",
		"Segment Information (Details)":[
			{"items":["Jun. 29, 2024"]},
			{"Net sales":1000},
			{"Operating income":50}
		],
		"CONDENSED CONSOLIDATED STATEMENTS OF OPERATIONS":[
			{"CONDENSED CONSOLIDATED STATEMENTS OF OPERATIONS - USD ($) $ in Millions":"3 Months Ended"},
			{"items":["Jun. 29, 2024","Jul. 01, 2023"]},
			{"Net sales":[85777,81797]},
			{"Gross margin":[39678,36413]},
			{"Operating income":[25352,22998]},
			{"Net income":[21448,19881]}
		]
	}`

	ext, ok := extract(t, body)
	if !ok {
		t.Fatal("Expected a row")
	}
	if ext.Annual {
		t.Error("Expected two columns to be quarterly")
	}
	if ext.Row.Date != "2024-06-29" {
		t.Errorf("Expected date 2024-06-29, got %s", ext.Row.Date)
	}
	checkDecimal(t, "revenue", ext.Row.Revenue, "85777")
	checkDecimal(t, "grossProfit", ext.Row.GrossProfit, "39678")
	checkDecimal(t, "operatingIncome", ext.Row.OperatingIncome, "25352")
	checkDecimal(t, "netIncome", ext.Row.NetIncome, "21448")

	if ext.Row.CalendarYear == nil || *ext.Row.CalendarYear != 2024 {
		t.Errorf("Expected calendar year 2024, got %v", ext.Row.CalendarYear)
	}
	if ext.Row.Period == nil || *ext.Row.Period != "Q3" {
		t.Errorf("Expected period Q3, got %v", ext.Row.Period)
	}
}

func TestExtractRowSkipsOperationsNotes(t *testing.T) {
	body := `{
		"symbol":"AAPL","year":"2024","period":"Q1",
		"Discontinued Operations (Details)":[
			{"Discontinued Operations (Details) - USD ($) $ in Millions":"3 Months Ended"},
			{"items":["Dec. 30, 2023"]},
			{"Net sales":12}
		],
		"CONSOLIDATED STATEMENTS OF OPERATIONS":[
			{"CONSOLIDATED STATEMENTS OF OPERATIONS - USD ($) $ in Millions":"3 Months Ended"},
			{"items":["Dec. 30, 2023","Dec. 31, 2022"]},
			{"Net sales":[89498,90146]},
			{"Net income":[22956,19881]}
		]
	}`

	ext, ok := extract(t, body)
	if !ok {
		t.Fatal("Expected a row")
	}
	checkDecimal(t, "revenue", ext.Row.Revenue, "89498")
	checkDecimal(t, "netIncome", ext.Row.NetIncome, "22956")
}

func TestExtractRowOperationsLabelOutsideStatements(t *testing.T) {
	body := `{
		"Segment Operations (Details)":[
			{"Segment Operations (Details) - USD ($)":"3 Months Ended"},
			{"items":["Mar. 31, 2024"]},
			{"Net sales":5}
		],
		"Income Data":[
			{"Net income":7}
		]
	}`

	ext, ok := extract(t, body)
	if !ok {
		t.Fatal("Expected a row")
	}
	checkDecimal(t, "revenue", ext.Row.Revenue, "5")
	checkDecimal(t, "netIncome", ext.Row.NetIncome, "7")
}

func TestExtractRowFirstMatchWins(t *testing.T) {
	body := `{"Income":[
		{"items":["Dec. 30, 2023"]},
		{"Net sales":10},
		{"Total net sales":20},
		{"Gross profit":"1,234.5"},
		{"Net income attributable to parent":7},
		{"Net Income":["—","42"]},
		{"Operating income":true}
	]}`

	ext, ok := extract(t, body)
	if !ok {
		t.Fatal("Expected a row")
	}
	checkDecimal(t, "revenue", ext.Row.Revenue, "10")
	checkDecimal(t, "grossProfit", ext.Row.GrossProfit, "1234.5")
	checkDecimal(t, "netIncome", ext.Row.NetIncome, "42")
	checkDecimal(t, "operatingIncome", ext.Row.OperatingIncome, "")
}

func TestExtractRowSynthesizesDate(t *testing.T) {
	body := `{"symbol":"X","year":2023,"period":"Q3","Income":[{"Revenue":5}]}`

	ext, ok := extract(t, body)
	if !ok {
		t.Fatal("Expected a row")
	}
	if ext.Row.Date != "2023-09-30" {
		t.Errorf("Expected date 2023-09-30, got %s", ext.Row.Date)
	}
	checkDecimal(t, "revenue", ext.Row.Revenue, "5")
}

func TestExtractRowDiscards(t *testing.T) {
	tests := map[string]string{
		"no date":        `{"Income":[{"Revenue":5}]}`,
		"annual period":  `{"year":"2023","period":"FY","Income":[{"Revenue":5}]}`,
		"no metrics":     `{"Income":[{"items":["Mar. 31, 2024"]},{"Cost of sales":5}]}`,
		"null metric":    `{"Income":[{"items":["Mar. 31, 2024"]},{"Revenue":null}]}`,
		"no sections":    `{"symbol":"X","year":"2024","period":"Q1"}`,
		"unparsed items": `{"Income":[{"items":["Q1 2024"]},{"Revenue":5}]}`,
	}

	for name, body := range tests {
		if _, ok := extract(t, body); ok {
			t.Errorf("%s: expected no row", name)
		}
	}

	if _, ok := ExtractRow(nil); ok {
		t.Error("Expected no row for a nil report")
	}
}

func TestClassify(t *testing.T) {
	var row CanonicalRow

	tests := []struct {
		label  string
		metric Metric
		ok     bool
	}{
		{"  TOTAL REVENUE ", Revenue, true},
		{"Products net sales", Revenue, true},
		{"Gross margin", GrossProfit, true},
		{"Operating income (loss)", OperatingIncome, true},
		{"Net income", NetIncome, true},
		{"Net income per share", 0, false},
		{"Revenues", 0, false},
	}
	for _, tt := range tests {
		got, ok := Classify(tt.label, &row)
		if ok != tt.ok || (ok && got != tt.metric) {
			t.Errorf("Classify(%q): expected (%v, %v), got (%v, %v)", tt.label, tt.metric, tt.ok, got, ok)
		}
	}

	row.GrossProfit = dec("1")
	if _, ok := Classify("Gross profit", &row); ok {
		t.Error("Expected a filled metric not to match again")
	}
}
