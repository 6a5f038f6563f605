package handler

import (
	"context"

	"alpha-digest/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// DigestService builds the payload of every entrypoint.
type DigestService interface {
	Digest(ctx context.Context, sources []domain.SourceGroup) domain.Digest
	SentimentIndex(ctx context.Context) domain.SentimentReport
	Trending(ctx context.Context) domain.TrendingReport
	DeFiStats(ctx context.Context) domain.DeFiStats
	TokenIntel(ctx context.Context, tokenID string) (domain.TokenIntel, error)
	Health() domain.Health
}

// InvocationRecorder counts entrypoint runs by status.
type InvocationRecorder interface {
	RecordInvocation(entrypoint, status string)
}

type nopInvocationRecorder struct{}

func (nopInvocationRecorder) RecordInvocation(string, string) {}

type Config struct {
	AgentName        string
	AgentVersion     string
	AgentDescription string
	// Prices maps paid entrypoint names to USD amounts.
	Prices  map[string]string
	Payment PaymentConfig
}

type Handler struct {
	tracer   trace.Tracer
	logger   *zap.Logger
	svc      DigestService
	recorder InvocationRecorder
	gate     *PaymentGate

	cfg         Config
	entrypoints []Entrypoint
}

func New(tracer trace.Tracer, logger *zap.Logger, svc DigestService, recorder InvocationRecorder, cfg Config) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if recorder == nil {
		recorder = nopInvocationRecorder{}
	}
	registerJSONFieldNames()

	return &Handler{
		tracer:      tracer,
		logger:      logger,
		svc:         svc,
		recorder:    recorder,
		gate:        NewPaymentGate(cfg.Payment, logger),
		cfg:         cfg,
		entrypoints: Catalog(cfg.Prices),
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/.well-known/agent.json", h.AgentManifest)

	invoke := map[string]gin.HandlerFunc{
		domain.EntrypointPing:       h.Ping,
		domain.EntrypointFearGreed:  h.FearGreed,
		domain.EntrypointDailyAlpha: h.DailyAlpha,
		domain.EntrypointTrending:   h.Trending,
		domain.EntrypointDeFiStats:  h.DeFiStats,
		domain.EntrypointTokenIntel: h.TokenIntel,
	}
	group := r.Group("/entrypoints")
	for _, e := range h.entrypoints {
		group.POST("/"+e.Name+"/invoke", h.gate.Require(e), invoke[e.Name])
	}
}
