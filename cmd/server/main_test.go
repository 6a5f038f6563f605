package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"alpha-digest/internal/config"
	"alpha-digest/pkg/tracing"

	"github.com/gin-gonic/gin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMainBootstrap(t *testing.T) {
	gin.SetMode(gin.TestMode)
	restore := stubServerDeps()
	defer restore()

	var engine *gin.Engine
	newRouterFunc = func(...gin.OptionFunc) *gin.Engine {
		engine = gin.New()
		return engine
	}
	started := make(chan struct{})
	startHTTPServerFunc = func(*http.Server) error {
		close(started)
		return http.ErrServerClosed
	}

	runMain(t, started)

	for _, path := range []string{"/health", "/metrics", "/.well-known/agent.json"} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, w.Code)
		}
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/entrypoints/trending/invoke", nil))
	if w.Code != http.StatusPaymentRequired {
		t.Fatalf("expected paid entrypoint to be gated, got %d", w.Code)
	}
}

func TestMainWarnsWhenPaymentGateDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	restore := stubServerDeps()
	defer restore()

	core, logs := observer.New(zapcore.WarnLevel)
	newLoggerFunc = func(*config.Config) (*zap.Logger, error) { return zap.New(core), nil }
	loadConfigFunc = func() *config.Config {
		return &config.Config{HTTPAddr: ":0", AppEnv: "test", AgentName: "alpha-digest", UpstreamTimeout: time.Second}
	}
	started := make(chan struct{})
	startHTTPServerFunc = func(*http.Server) error {
		close(started)
		return http.ErrServerClosed
	}

	runMain(t, started)

	if logs.FilterMessageSnippet("payment gate disabled").Len() != 1 {
		t.Fatalf("expected a payment gate warning, got %v", logs.All())
	}
}

// runMain runs main to completion and waits for the server goroutine so the
// stubs can be restored safely.
func runMain(t *testing.T, started <-chan struct{}) {
	t.Helper()

	done := make(chan struct{})
	go func() {
		main()
		close(done)
	}()

	for _, ch := range []<-chan struct{}{done, started} {
		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Fatal("main did not exit")
		}
	}
}

func stubServerDeps() func() {
	origLoadEnv := loadEnvFunc
	origLoadConfig := loadConfigFunc
	origNewLogger := newLoggerFunc
	origInitTracer := initTracerFunc
	origNewRouter := newRouterFunc
	origSetupSignal := setupSignalNotify
	origWait := waitForSignalFunc
	origStartHTTP := startHTTPServerFunc
	origShutdownHTTP := shutdownHTTPServerFunc

	loadEnvFunc = func(...string) error { return nil }
	loadConfigFunc = func() *config.Config {
		return &config.Config{
			HTTPAddr:        ":0",
			AppEnv:          "test",
			AgentName:       "alpha-digest",
			AgentVersion:    "test",
			UpstreamTimeout: time.Second,
			PaymentsEnabled: true,
			PayTo:           "0xabc",
			Prices:          map[string]string{"trending": "0.01"},
		}
	}
	newLoggerFunc = func(*config.Config) (*zap.Logger, error) { return zap.NewNop(), nil }
	initTracerFunc = func(ctx context.Context, opts tracing.Options) (*sdktrace.TracerProvider, trace.Tracer, error) {
		tp := sdktrace.NewTracerProvider()
		return tp, tp.Tracer("test"), nil
	}
	newRouterFunc = func(...gin.OptionFunc) *gin.Engine { return gin.New() }
	setupSignalNotify = func(c chan<- os.Signal, sig ...os.Signal) {}
	waitForSignalFunc = func(<-chan os.Signal) {}
	startHTTPServerFunc = func(*http.Server) error { return http.ErrServerClosed }
	shutdownHTTPServerFunc = func(*http.Server, context.Context) error { return nil }

	return func() {
		loadEnvFunc = origLoadEnv
		loadConfigFunc = origLoadConfig
		newLoggerFunc = origNewLogger
		initTracerFunc = origInitTracer
		newRouterFunc = origNewRouter
		setupSignalNotify = origSetupSignal
		waitForSignalFunc = origWait
		startHTTPServerFunc = origStartHTTP
		shutdownHTTPServerFunc = origShutdownHTTP
	}
}
