package handler

import (
	"errors"
	"io"
	"net/http"

	"alpha-digest/internal/domain"
	"alpha-digest/internal/marketintel"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Envelope wraps every entrypoint result.
type Envelope struct {
	RunID  string `json:"run_id"`
	Status string `json:"status"`
	Output any    `json:"output"`
}

type invokeRequest[T any] struct {
	Input T `json:"input"`
}

type DailyAlphaInput struct {
	Sources []string `json:"sources" binding:"omitempty,dive,oneof=coingecko defillama feargreed"`
}

type TokenIntelInput struct {
	Token string `json:"token" binding:"required"`
}

// Ping godoc
// @Summary      Ping
// @Description  Liveness entrypoint; only the timestamp varies between calls
// @Tags         entrypoints
// @Produce      json
// @Success      200  {object}  Envelope{output=domain.Health}
// @Router       /entrypoints/ping/invoke [post]
func (h *Handler) Ping(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.ping")
	defer span.End()

	h.respond(c, domain.EntrypointPing, domain.RunSucceeded, h.svc.Health())
}

// FearGreed godoc
// @Summary      Fear & Greed index
// @Description  Current sentiment reading, up to seven days of history and an interpretation
// @Tags         entrypoints
// @Produce      json
// @Success      200  {object}  Envelope{output=domain.SentimentReport}
// @Router       /entrypoints/fear-greed/invoke [post]
func (h *Handler) FearGreed(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.fear-greed")
	defer span.End()

	h.respond(c, domain.EntrypointFearGreed, domain.RunSucceeded, h.svc.SentimentIndex(ctx))
}

// DailyAlpha godoc
// @Summary      Daily alpha digest
// @Description  Market context, alpha signals, top trending assets and top DeFi protocols. An empty source selection means all sources.
// @Tags         entrypoints
// @Accept       json
// @Produce      json
// @Param        request  body      invokeRequest[DailyAlphaInput]  false  "Source selection"
// @Success      200      {object}  Envelope{output=domain.Digest}
// @Failure      400      {object}  ValidationErrors
// @Failure      402      {object}  PaymentRequired
// @Router       /entrypoints/daily-alpha/invoke [post]
func (h *Handler) DailyAlpha(c *gin.Context) {
	var input DailyAlphaInput
	if !bindInput(c, &input) {
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "handler.daily-alpha")
	defer span.End()

	sources := make([]domain.SourceGroup, 0, len(input.Sources))
	for _, s := range input.Sources {
		sources = append(sources, domain.SourceGroup(s))
	}
	h.respond(c, domain.EntrypointDailyAlpha, domain.RunSucceeded, h.svc.Digest(ctx, sources))
}

// Trending godoc
// @Summary      Trending assets
// @Description  Top ten trending coins and top five trending NFT collections
// @Tags         entrypoints
// @Produce      json
// @Success      200  {object}  Envelope{output=domain.TrendingReport}
// @Failure      402  {object}  PaymentRequired
// @Router       /entrypoints/trending/invoke [post]
func (h *Handler) Trending(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.trending")
	defer span.End()

	h.respond(c, domain.EntrypointTrending, domain.RunSucceeded, h.svc.Trending(ctx))
}

// DeFiStats godoc
// @Summary      DeFi statistics
// @Description  Top ten protocols by TVL and the DEX volume summary with display strings
// @Tags         entrypoints
// @Produce      json
// @Success      200  {object}  Envelope{output=domain.DeFiStats}
// @Failure      402  {object}  PaymentRequired
// @Router       /entrypoints/defi-stats/invoke [post]
func (h *Handler) DeFiStats(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.defi-stats")
	defer span.End()

	h.respond(c, domain.EntrypointDeFiStats, domain.RunSucceeded, h.svc.DeFiStats(ctx))
}

// TokenIntel godoc
// @Summary      Token intelligence
// @Description  Detailed market data for one CoinGecko coin id. Lookup failures return status "failed" with a hint.
// @Tags         entrypoints
// @Accept       json
// @Produce      json
// @Param        request  body      invokeRequest[TokenIntelInput]  true  "Token id"
// @Success      200      {object}  Envelope{output=domain.TokenIntel}
// @Failure      400      {object}  ValidationErrors
// @Failure      402      {object}  PaymentRequired
// @Router       /entrypoints/token-intel/invoke [post]
func (h *Handler) TokenIntel(c *gin.Context) {
	var input TokenIntelInput
	if !bindInput(c, &input) {
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "handler.token-intel")
	defer span.End()

	intel, err := h.svc.TokenIntel(ctx, input.Token)
	if err != nil {
		h.logger.Info("token lookup failed", zap.String("token", input.Token), zap.Error(err))
		h.respond(c, domain.EntrypointTokenIntel, domain.RunFailed, marketintel.LookupFailure(input.Token, err))
		return
	}
	h.respond(c, domain.EntrypointTokenIntel, domain.RunSucceeded, intel)
}

func (h *Handler) respond(c *gin.Context, entrypoint, status string, output any) {
	h.recorder.RecordInvocation(entrypoint, status)
	c.JSON(http.StatusOK, Envelope{
		RunID:  uuid.NewString(),
		Status: status,
		Output: output,
	})
}

// bindInput decodes {"input": {...}} into input. An empty body is an empty
// input and still goes through validation.
func bindInput[T any](c *gin.Context, input *T) bool {
	var req invokeRequest[T]
	err := c.ShouldBindJSON(&req)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(&req)
	}
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, ValidationErrors{Errors: validationErrors(err)})
		return false
	}
	*input = req.Input
	return true
}
