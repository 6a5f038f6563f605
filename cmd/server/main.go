package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alpha-digest/internal/config"
	"alpha-digest/internal/handler"
	"alpha-digest/internal/logger"
	"alpha-digest/internal/marketintel"
	"alpha-digest/internal/metrics"
	"alpha-digest/internal/provider"
	"alpha-digest/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	_ "alpha-digest/docs"
)

var (
	loadEnvFunc    = godotenv.Load
	loadConfigFunc = config.Load
	newLoggerFunc  = logger.New
	initTracerFunc = tracing.InitTracer
	newMetricsFunc = func() (*metrics.Recorder, http.Handler) {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		return metrics.New(reg), promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}
	newServiceFunc         = marketintel.NewService
	newHandlerFunc         = handler.New
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Alpha Digest API
// @version         1.0
// @description     Crypto market intelligence agent: sentiment, trending assets, DeFi statistics and rule-based alpha signals.

// @host      localhost:8080
// @BasePath  /
func main() {
	_ = loadEnvFunc()

	cfg := loadConfigFunc()

	zl, err := newLoggerFunc(cfg)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, tracer, err := initTracerFunc(ctx, tracing.Options{
		Enabled:        cfg.TracingEnabled,
		Endpoint:       cfg.OTLPEndpoint,
		ServiceName:    cfg.AgentName,
		ServiceVersion: cfg.AgentVersion,
	})
	if err != nil {
		zl.Fatal("failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			zl.Warn("error shutting down tracer provider", zap.Error(err))
		}
	}()

	recorder, metricsHandler := newMetricsFunc()

	upstreamOpts := func(baseURL string) []provider.Option {
		return []provider.Option{
			provider.WithBaseURL(baseURL),
			provider.WithTimeout(cfg.UpstreamTimeout),
			provider.WithObserver(recorder),
		}
	}
	fearGreed := provider.NewFearGreedProvider(tracer, upstreamOpts(cfg.FearGreedBaseURL)...)
	coingecko := provider.NewCoinGeckoProvider(tracer, upstreamOpts(cfg.CoinGeckoBaseURL)...)
	defillama := provider.NewDefiLlamaProvider(tracer, upstreamOpts(cfg.DefiLlamaBaseURL)...)

	svc := newServiceFunc(tracer, zl, fearGreed, coingecko, defillama, recorder, marketintel.Config{
		AgentName:    cfg.AgentName,
		AgentVersion: cfg.AgentVersion,
	})
	h := newHandlerFunc(tracer, zl, svc, recorder, handler.Config{
		AgentName:        cfg.AgentName,
		AgentVersion:     cfg.AgentVersion,
		AgentDescription: cfg.AgentDescription,
		Prices:           cfg.Prices,
		Payment: handler.PaymentConfig{
			Enabled:        cfg.PaymentsEnabled,
			PayTo:          cfg.PayTo,
			Network:        cfg.PaymentNetwork,
			Asset:          cfg.PaymentAsset,
			FacilitatorURL: cfg.FacilitatorURL,
			PublicURL:      cfg.PublicURL,
		},
	})

	if cfg.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := newRouterFunc()
	r.Use(otelgin.Middleware(cfg.AgentName))

	h.RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(metricsHandler))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	switch {
	case !cfg.PaymentsEnabled:
		zl.Warn("payment gate disabled, paid entrypoints are served without payment")
	case cfg.FacilitatorURL == "":
		zl.Warn("no facilitator configured, payment proofs are not verified")
	}

	start := startHTTPServerFunc
	go func() {
		zl.Info("http server listening", zap.String("addr", cfg.HTTPAddr), zap.Bool("payments", cfg.PaymentsEnabled))
		if err := start(srv); err != nil && err != http.ErrServerClosed {
			zl.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	zl.Info("shutting down server")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		zl.Fatal("server forced to shutdown", zap.Error(err))
	}

	zl.Info("server exiting")
}
