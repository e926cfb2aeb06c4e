package financials

import (
	"context"
	"errors"
	"strings"

	"stock-backend/internal/logger"
	"stock-backend/internal/metrics"
)

// ErrEmptySymbol is returned when no ticker symbol is given.
var ErrEmptySymbol = errors.New("symbol is required")

// StatementSource returns the structured quarterly income statements of a
// symbol, newest first.
type StatementSource interface {
	FetchQuarterlyIncome(ctx context.Context, symbol string, limit int) (IncomeStatementList, error)
}

// ServiceConfig holds the service settings.
type ServiceConfig struct {
	// PrimaryLimit is how many quarters are requested from the
	// income-statement endpoint before backfilling.
	PrimaryLimit int
}

// DefaultServiceConfig returns the default settings.
func DefaultServiceConfig() *ServiceConfig {
	return &ServiceConfig{PrimaryLimit: 5}
}

// Service builds the quarterly income series of a symbol.
type Service struct {
	statements StatementSource
	backfill   *Backfiller
	cfg        *ServiceConfig
	metrics    *metrics.Financials
}

// NewService wires a service. A nil cfg uses DefaultServiceConfig.
func NewService(statements StatementSource, reports ReportSource, cfg *ServiceConfig, m *metrics.Financials) *Service {
	if cfg == nil {
		cfg = DefaultServiceConfig()
	}
	return &Service{
		statements: statements,
		backfill:   NewBackfiller(reports, m),
		cfg:        cfg,
		metrics:    m,
	}
}

// Financials returns up to MaxQuarters canonical rows for symbol, newest
// first. Missing data never fails the call; the result may be empty.
func (s *Service) Financials(ctx context.Context, symbol string) ([]CanonicalRow, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, ErrEmptySymbol
	}

	var primary []CanonicalRow
	list, err := s.statements.FetchQuarterlyIncome(ctx, symbol, s.cfg.PrimaryLimit)
	if err != nil {
		logger.Warn(ctx, "Quarterly income statements unavailable", "symbol", symbol, "error", err)
	} else {
		primary = list.Rows
	}

	rows := s.backfill.Backfill(ctx, symbol, primary)
	if rows == nil {
		rows = []CanonicalRow{}
	}
	s.metrics.RowsReturned(len(rows))
	return rows, nil
}
