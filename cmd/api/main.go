package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"

	"doc-digest/internal/config"
	"doc-digest/internal/infra/generator"
	"doc-digest/internal/infra/summarizer"
	"doc-digest/internal/infra/tokenizer"
	"doc-digest/internal/observability/logging"
	"doc-digest/internal/observability/metrics"
	"doc-digest/internal/observability/tracing"
	"doc-digest/internal/progress"
	"doc-digest/internal/usecase/qa"
	"doc-digest/internal/usecase/summary"

	hhttp "doc-digest/internal/handler/http"
	"doc-digest/internal/handler/http/middleware"
	"doc-digest/internal/handler/http/requestid"
)

func main() {
	logger := initLogger()

	serverCfg, err := config.LoadServerConfig()
	if err != nil {
		logger.Error("failed to load server configuration", slog.Any("error", err))
		os.Exit(1)
	}

	tp := initTracing()
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.Error("tracer provider shutdown failed", slog.Any("error", err))
		}
	}()

	handler := setupServer(logger, serverCfg)
	runServer(logger, serverCfg, handler)
}

// initTracing installs the OpenTelemetry tracer provider and W3C propagator.
// No exporter is configured; spans exist for trace ID propagation and the
// X-Trace-Id response header.
func initTracing() *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName("doc-digest"),
		)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return tp
}

// initLogger initializes the process-wide structured logger.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// setupServer wires the pipeline, handlers, and middleware into one http.Handler.
func setupServer(logger *slog.Logger, serverCfg config.ServerConfig) http.Handler {
	policy, err := summary.LoadPolicy()
	if err != nil {
		logger.Error("failed to load summarization policy", slog.Any("error", err))
		os.Exit(1)
	}

	tok, err := tokenizer.New(tokenizer.DefaultEncoding)
	if err != nil {
		logger.Error("failed to load tokenizer encoding", slog.Any("error", err))
		os.Exit(1)
	}

	summarizerCfg, err := summarizer.LoadConfig()
	if err != nil {
		logger.Error("failed to load summarizer configuration", slog.Any("error", err))
		os.Exit(1)
	}
	model, err := summarizer.New(summarizerCfg)
	if err != nil {
		logger.Error("failed to initialize summarization model", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("summarization model ready",
		slog.String("provider", string(summarizerCfg.Provider)))

	generatorCfg, err := generator.LoadConfig()
	if err != nil {
		logger.Error("failed to load generator configuration", slog.Any("error", err))
		os.Exit(1)
	}
	genModel, err := generator.New(generatorCfg)
	if err != nil {
		logger.Error("failed to initialize answer generator", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("answer generator ready",
		slog.String("provider", string(generatorCfg.Provider)))

	summaries := summary.NewService(tok, model, policy, metrics.NewPipelineMetrics())

	store := qa.NewContentStore()
	answers := qa.NewService(genModel, store)

	hub := progress.NewHub()

	mux := http.NewServeMux()
	hhttp.RegisterRoutes(mux, hhttp.New(summaries, answers, store, hub))
	mux.Handle("GET /metrics", promhttp.Handler())

	return applyMiddleware(logger, serverCfg, mux)
}

// applyMiddleware wraps the handler with the middleware chain.
// Order (outermost first): CORS → request ID → tracing → timeout.
func applyMiddleware(logger *slog.Logger, serverCfg config.ServerConfig, handler http.Handler) http.Handler {
	corsCfg := middleware.LoadCORSConfig()
	logger.Info("CORS enabled",
		slog.Any("allowed_origins", corsCfg.AllowedOrigins),
		slog.Any("allowed_methods", corsCfg.AllowedMethods),
		slog.Int("max_age", corsCfg.MaxAgeSeconds))

	// Apply in reverse order (innermost to outermost).
	chain := handler
	chain = middleware.Timeout(serverCfg.RequestTimeout)(chain)
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)
	chain = middleware.CORS(corsCfg)(chain)

	return chain
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, serverCfg config.ServerConfig, handler http.Handler) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: serverCfg.ReadHeaderTimeout,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting", slog.String("addr", serverCfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
