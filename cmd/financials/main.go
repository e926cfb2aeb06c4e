package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"stock-backend/internal/financials"
	"stock-backend/internal/financials/financialsobs"
	"stock-backend/internal/fmp"
	"stock-backend/internal/logger"
	"stock-backend/internal/metrics"
	"stock-backend/internal/server"
	"stock-backend/internal/store"
)

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := store.LoadConfig(*configPath)
	must(err)
	must(logger.InitWithConfig(cfg.Logging))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.APIKey() == "" {
		logger.Warn(ctx, "FMP API key is not set; provider calls will be rejected", "env", cfg.FMP.APIKeyEnv)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	client := fmp.NewClient(fmp.Config{
		BaseURL:           cfg.FMP.BaseURL,
		APIKey:            cfg.APIKey(),
		Timeout:           cfg.FMP.Timeout,
		RequestsPerSecond: cfg.FMP.RequestsPerSecond,
		Burst:             cfg.FMP.Burst,
		Logging:           cfg.Logging.DetailedLogging,
	})
	svc := financials.NewService(client, client,
		&financials.ServiceConfig{PrimaryLimit: cfg.FMP.PrimaryLimit},
		metrics.NewFinancials(reg))

	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: server.NewRouter(financialsobs.Wrap(svc), server.Options{
			RequestTimeout: cfg.Server.RequestTimeout,
			Gatherer:       reg,
		}),
	}

	go func() {
		logger.Info(ctx, "Financials server listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorWithErr(ctx, "Server stopped", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithErr(shutdownCtx, "Graceful shutdown failed", err)
	}
	_ = logger.Shutdown(shutdownCtx)
	logger.Info(shutdownCtx, "Financials server stopped")
}
