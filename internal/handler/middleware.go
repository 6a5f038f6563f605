package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	paymentHeader      = "X-PAYMENT"
	x402Version        = 1
	assetDecimals      = 6
	paymentTimeoutSecs = 60
	verifyTimeout      = 10 * time.Second
)

type PaymentConfig struct {
	Enabled        bool
	PayTo          string
	Network        string
	Asset          string
	FacilitatorURL string
	// PublicURL prefixes the resource named in payment requirements. When
	// empty the request host is used.
	PublicURL string
	Client    *http.Client
}

// PaymentRequirement is one accepted way to pay for a resource.
type PaymentRequirement struct {
	Scheme            string `json:"scheme"`
	Network           string `json:"network"`
	MaxAmountRequired string `json:"maxAmountRequired"`
	Resource          string `json:"resource"`
	Description       string `json:"description"`
	MimeType          string `json:"mimeType"`
	PayTo             string `json:"payTo"`
	MaxTimeoutSeconds int    `json:"maxTimeoutSeconds"`
	Asset             string `json:"asset"`
}

// PaymentRequired is the 402 response body.
type PaymentRequired struct {
	X402Version int                  `json:"x402Version"`
	Error       string               `json:"error"`
	Accepts     []PaymentRequirement `json:"accepts"`
}

type verifyRequest struct {
	X402Version         int                `json:"x402Version"`
	PaymentHeader       string             `json:"paymentHeader"`
	PaymentRequirements PaymentRequirement `json:"paymentRequirements"`
}

type verifyResponse struct {
	IsValid       bool   `json:"isValid"`
	InvalidReason string `json:"invalidReason"`
}

// PaymentGate rejects paid entrypoint calls that carry no payment proof. It
// neither prices nor settles anything itself.
type PaymentGate struct {
	cfg    PaymentConfig
	client *http.Client
	logger *zap.Logger
}

func NewPaymentGate(cfg PaymentConfig, logger *zap.Logger) *PaymentGate {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: verifyTimeout}
	}
	return &PaymentGate{
		cfg:    cfg,
		client: client,
		logger: logger,
	}
}

// Require returns the gate middleware for e. Free entrypoints and a disabled
// gate pass every request through.
func (g *PaymentGate) Require(e Entrypoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		if g == nil || !g.cfg.Enabled || !e.Paid {
			c.Next()
			return
		}

		req := g.requirement(c, e)
		proof := strings.TrimSpace(c.GetHeader(paymentHeader))
		if proof == "" {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, PaymentRequired{
				X402Version: x402Version,
				Error:       paymentHeader + " header is required",
				Accepts:     []PaymentRequirement{req},
			})
			return
		}

		if g.cfg.FacilitatorURL != "" {
			if err := g.verify(c.Request.Context(), proof, req); err != nil {
				g.logger.Warn("payment rejected", zap.String("entrypoint", e.Name), zap.Error(err))
				c.AbortWithStatusJSON(http.StatusPaymentRequired, PaymentRequired{
					X402Version: x402Version,
					Error:       err.Error(),
					Accepts:     []PaymentRequirement{req},
				})
				return
			}
		}
		c.Next()
	}
}

func (g *PaymentGate) requirement(c *gin.Context, e Entrypoint) PaymentRequirement {
	base := g.cfg.PublicURL
	if base == "" {
		scheme := "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
		base = scheme + "://" + c.Request.Host
	}
	return PaymentRequirement{
		Scheme:            "exact",
		Network:           g.cfg.Network,
		MaxAmountRequired: atomicAmount(e.Price),
		Resource:          base + e.Path,
		Description:       e.Description,
		MimeType:          "application/json",
		PayTo:             g.cfg.PayTo,
		MaxTimeoutSeconds: paymentTimeoutSecs,
		Asset:             g.cfg.Asset,
	}
}

func (g *PaymentGate) verify(ctx context.Context, proof string, req PaymentRequirement) error {
	body, err := json.Marshal(verifyRequest{
		X402Version:         x402Version,
		PaymentHeader:       proof,
		PaymentRequirements: req,
	})
	if err != nil {
		return fmt.Errorf("encode verify request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, verifyTimeout)
	defer cancel()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.FacilitatorURL+"/verify", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build verify request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("payment verification unavailable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("payment verification failed: facilitator status %d", resp.StatusCode)
	}
	var verdict verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return fmt.Errorf("decode verify response: %w", err)
	}
	if !verdict.IsValid {
		reason := verdict.InvalidReason
		if reason == "" {
			reason = "invalid payment"
		}
		return fmt.Errorf("payment rejected: %s", reason)
	}
	return nil
}

// atomicAmount converts a USD price into the asset's smallest unit.
func atomicAmount(price string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil || d.IsNegative() {
		return "0"
	}
	return d.Shift(assetDecimals).Truncate(0).String()
}
