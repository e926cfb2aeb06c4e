package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stock-backend/internal/financials"
	"stock-backend/internal/interfaces"
	"stock-backend/internal/logger"
)

// RequestIDHeader carries the request id echoed back to clients.
const RequestIDHeader = "X-Request-ID"

// Options configures the router.
type Options struct {
	// RequestTimeout bounds one whole financials computation.
	RequestTimeout time.Duration
	// Gatherer backs /metrics; nil disables the endpoint.
	Gatherer prometheus.Gatherer
}

// NewRouter exposes provider over HTTP.
func NewRouter(provider interfaces.FinancialsProvider, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(accessLog)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	})
	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	h := &financialsHandler{provider: provider, timeout: opts.RequestTimeout}
	r.Get("/financials/{symbol}", h.get)
	return r
}

type financialsHandler struct {
	provider interfaces.FinancialsProvider
	timeout  time.Duration
}

// get handles GET /financials/{symbol}. A computation that outlives the
// request timeout answers 504 instead of the rows gathered so far.
func (h *financialsHandler) get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	rows, err := h.provider.Financials(ctx, chi.URLParam(r, "symbol"))
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, financials.ErrEmptySymbol):
			status = http.StatusBadRequest
		case errors.Is(err, context.DeadlineExceeded):
			status = http.StatusGatewayTimeout
		}
		render.Status(r, status)
		render.JSON(w, r, map[string]string{"error": err.Error()})
		return
	}
	render.JSON(w, r, rows)
}

// requestID reuses the caller's X-Request-ID or assigns a new one
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logger.Info(r.Context(), "HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", w.Header().Get(RequestIDHeader))
	})
}
