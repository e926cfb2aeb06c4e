package interfaces

import (
	"context"

	"stock-backend/internal/financials"
)

// FinancialsProvider returns the canonical quarterly income series of a symbol
type FinancialsProvider interface {
	// Financials returns up to eight quarters, newest first
	Financials(ctx context.Context, symbol string) ([]financials.CanonicalRow, error)
}
