package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/isitobservable/opensearch-query-mcp/pkg/config"
	mcpserver "github.com/isitobservable/opensearch-query-mcp/pkg/mcp"
	"github.com/isitobservable/opensearch-query-mcp/pkg/opensearch"
	"github.com/isitobservable/opensearch-query-mcp/pkg/telemetry"
	"github.com/isitobservable/opensearch-query-mcp/pkg/tools"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}

	config.SetupLogging(cfg.LogLevel)

	slog.Info("starting opensearch-query-mcp server", "transport", cfg.Transport, "cluster", cfg.OpenSearchURL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize OpenTelemetry
	tracerShutdown, err := telemetry.InitTracer(ctx)
	if err != nil {
		slog.Error("failed to initialize tracer", "error", err)
		os.Exit(1)
	}
	meterShutdown, err := telemetry.InitMeter(ctx)
	if err != nil {
		slog.Error("failed to initialize meter", "error", err)
		os.Exit(1)
	}
	loggerShutdown, err := telemetry.InitLogger(ctx)
	if err != nil {
		slog.Error("failed to initialize log export", "error", err)
		os.Exit(1)
	}

	resolver := opensearch.NewResolver(opensearch.Conn{
		URL:      cfg.OpenSearchURL,
		Username: cfg.OpenSearchUsername,
		Password: cfg.OpenSearchPassword,
		Insecure: cfg.OpenSearchInsecure,
	})

	// A registration conflict is a configuration defect: abort startup.
	toolset, err := tools.NewToolset(resolver)
	if err != nil {
		slog.Error("failed to build tool registry", "error", err)
		os.Exit(1)
	}

	srv := mcpserver.NewServer(cfg, toolset)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run(ctx)
	}()

	slog.Info("server ready", "tools", len(toolset.Registry().List()))

	select {
	case <-ctx.Done():
		slog.Info("shutting down")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, context.Canceled) {
			slog.Error("MCP server error", "error", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}

	// Flush pending OTel data before exit
	if err := tracerShutdown(shutdownCtx); err != nil {
		slog.Error("tracer shutdown error", "error", err)
	}
	if err := meterShutdown(shutdownCtx); err != nil {
		slog.Error("meter shutdown error", "error", err)
	}
	if err := loggerShutdown(shutdownCtx); err != nil {
		slog.Error("log export shutdown error", "error", err)
	}

	slog.Info("server stopped")
}
