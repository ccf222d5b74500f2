// Command wordlefn hosts the next-guess HTTP function locally or on Cloud Run.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"crosswarped.com/wordlecalc/pkg/app"
	"crosswarped.com/wordlecalc/pkg/config"
	"crosswarped.com/wordlecalc/pkg/function"
	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	configPath := flag.String("config", envOr("WORDLECALC_CONFIG", "wordlecalc.yaml"), "Path to the YAML config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := run(*configPath, logger); err != nil {
		logger.Error("wordlefn failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func run(configPath string, logger *slog.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	// Cloud Run tells the container which port to listen on.
	port := envOr("PORT", cfg.Function.Port)

	ctx := context.Background()
	a, err := app.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	function.Register(cfg.Function.Name, function.NewHandler(a.Solver, logger))
	// Serve the function at "/" rather than "/<name>".
	if os.Getenv("FUNCTION_TARGET") == "" {
		os.Setenv("FUNCTION_TARGET", cfg.Function.Name)
	}

	if cfg.Function.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{
			Addr:              cfg.Function.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server stopped", slog.String("error", err.Error()))
			}
		}()
		defer srv.Close()
	}

	logger.Info("serving function",
		slog.String("name", cfg.Function.Name),
		slog.String("port", port),
		slog.String("metrics", cfg.Function.MetricsAddr),
	)
	if err := funcframework.Start(port); err != nil {
		return fmt.Errorf("funcframework.Start: %w", err)
	}
	return nil
}
