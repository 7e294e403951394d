package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/roblar657/chatServerApp/internal/chat"
	"github.com/roblar657/chatServerApp/internal/config"
)

func main() {
	// Load local .env (dev only)
	_ = godotenv.Load()

	cfg := config.Load()

	addr := flag.String("addr", cfg.ListenAddr, "chat listen address")
	metricsAddr := flag.String("metrics-addr", cfg.MetricsAddr, "metrics listen address")
	flag.Parse()

	logger := newLogger(cfg.Env)

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		logger.Info("metrics listening", "addr", *metricsAddr)
		if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
			logger.Error("metrics server stopped", "error", err)
		}
	}()

	srv := chat.NewServer(*addr, logger)
	srv.MaxRetries = cfg.MaxRetries
	srv.RetryDelay = cfg.RetryDelay
	srv.Start()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		srv.Stop()
		srv.Wait()
	case <-waitDone(srv):
		// accept loop gave up after repeated listener failures
		os.Exit(1)
	}
}

func waitDone(srv *chat.Server) <-chan struct{} {
	ch := make(chan struct{})
	go func() {
		srv.Wait()
		close(ch)
	}()
	return ch
}

// newLogger picks the handler by environment: JSON in prod, text elsewhere.
func newLogger(env string) *slog.Logger {
	var handler slog.Handler
	if env == "prod" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.New(handler)
}
