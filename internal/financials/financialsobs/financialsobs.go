package financialsobs

import (
	"context"
	"time"

	"stock-backend/internal/financials"
	"stock-backend/internal/interfaces"
	"stock-backend/internal/logger"
	"stock-backend/internal/trace"
)

// observableProvider wraps a FinancialsProvider with logging and tracing
type observableProvider struct {
	inner interfaces.FinancialsProvider
}

// Wrap wraps a FinancialsProvider with observability middleware
func Wrap(provider interfaces.FinancialsProvider) interfaces.FinancialsProvider {
	return &observableProvider{inner: provider}
}

// Financials wraps the Financials method with logging and tracing
func (o *observableProvider) Financials(ctx context.Context, symbol string) ([]financials.CanonicalRow, error) {
	ctx, span := trace.StartSpan(ctx, "financials.Financials")
	defer span.End()

	logger.Debug(ctx, "Building quarterly financials", "symbol", symbol)
	start := time.Now()

	rows, err := o.inner.Financials(ctx, symbol)
	duration := time.Since(start)

	if err != nil {
		span.RecordError(err)
		logger.Error(ctx, "Quarterly financials failed",
			"symbol", symbol,
			"duration_ms", duration.Milliseconds(),
			"error", err)
		return nil, err
	}

	fields := []any{
		"symbol", symbol,
		"rows", len(rows),
		"duration_ms", duration.Milliseconds(),
	}
	if len(rows) > 0 {
		fields = append(fields, "newest", rows[0].Date, "oldest", rows[len(rows)-1].Date)
	}
	logger.Info(ctx, "Quarterly financials built", fields...)

	return rows, nil
}
