// Package fmp reads income statements and financial reports from
// Financial Modeling Prep.
package fmp

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"stock-backend/internal/api"
	"stock-backend/internal/financials"
)

const (
	DefaultBaseURL = "https://financialmodelingprep.com/stable"

	incomeStatementPath = "/income-statement"
	financialReportPath = "/financial-reports-json"
)

// Config holds the FMP client settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	// RequestsPerSecond of zero disables client-side limiting.
	RequestsPerSecond float64
	Burst             int
	Logging           bool
}

// Client implements financials.StatementSource and financials.ReportSource.
type Client struct {
	api *api.Client
}

// NewClient creates an FMP client.
func NewClient(cfg Config, opts ...api.ClientOption) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}

	base := []api.ClientOption{
		api.WithBaseURL(cfg.BaseURL),
		api.WithTimeout(cfg.Timeout),
		api.WithHeader("Accept", "application/json"),
		api.WithLogging(cfg.Logging),
	}
	if cfg.APIKey != "" {
		base = append(base, api.WithQueryParam("apikey", cfg.APIKey))
	}
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		base = append(base, api.WithRateLimit(rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)))
	}

	return &Client{api: api.NewClient(append(base, opts...)...)}
}

// FetchQuarterlyIncome returns the latest limit quarterly income statements.
func (c *Client) FetchQuarterlyIncome(ctx context.Context, symbol string, limit int) (financials.IncomeStatementList, error) {
	params := url.Values{
		"symbol": {symbol},
		"period": {"quarter"},
		"limit":  {strconv.Itoa(limit)},
	}
	resp, err := c.api.GET(ctx, incomeStatementPath, params)
	if err != nil {
		return financials.IncomeStatementList{}, fmt.Errorf("fetch income statements for %s: %w", symbol, err)
	}

	list, err := financials.ParseIncomeStatements(resp.Body)
	if err != nil {
		return financials.IncomeStatementList{}, fmt.Errorf("income statements for %s: %w", symbol, err)
	}
	return list, nil
}

// FetchReport returns the financial report filed for quarter q.
func (c *Client) FetchReport(ctx context.Context, symbol string, q financials.Quarter) (*financials.FinancialReport, error) {
	params := url.Values{
		"symbol": {symbol},
		"year":   {strconv.Itoa(q.Year)},
		"period": {q.Period()},
	}
	resp, err := c.api.GET(ctx, financialReportPath, params)
	if err != nil {
		return nil, fmt.Errorf("fetch %s report for %s: %w", q, symbol, err)
	}

	report, err := financials.ParseReport(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s report for %s: %w", q, symbol, err)
	}
	return report, nil
}
