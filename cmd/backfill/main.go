package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"stock-backend/internal/financials"
	"stock-backend/internal/financials/financialsobs"
	"stock-backend/internal/fmp"
	"stock-backend/internal/logger"
	"stock-backend/internal/store"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	symbol := flag.String("symbol", "", "ticker symbol, e.g. AAPL")
	flag.Parse()

	if *symbol == "" {
		fmt.Fprintln(os.Stderr, "usage: backfill -symbol AAPL [-config config.yaml]")
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg, err := store.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	// stdout carries only the JSON series
	cfg.Logging.Format = "text"
	cfg.Logging.Output = "stderr"
	cfg.Logging.TracingEnabled = false
	if err := logger.InitWithConfig(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}

	client := fmp.NewClient(fmp.Config{
		BaseURL:           cfg.FMP.BaseURL,
		APIKey:            cfg.APIKey(),
		Timeout:           cfg.FMP.Timeout,
		RequestsPerSecond: cfg.FMP.RequestsPerSecond,
		Burst:             cfg.FMP.Burst,
		Logging:           cfg.Logging.DetailedLogging,
	})
	provider := financialsobs.Wrap(financials.NewService(client, client,
		&financials.ServiceConfig{PrimaryLimit: cfg.FMP.PrimaryLimit}, nil))

	ctx := context.Background()
	rows, err := provider.Financials(ctx, *symbol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Backfill failed: %v\n", err)
		os.Exit(1)
	}
	_ = logger.Shutdown(ctx)

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(rows); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write JSON: %v\n", err)
		os.Exit(1)
	}
}
