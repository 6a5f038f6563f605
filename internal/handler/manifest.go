package handler

import (
	"net/http"

	"alpha-digest/internal/domain"

	"github.com/gin-gonic/gin"
)

// Entrypoint describes one invocable operation and its price.
type Entrypoint struct {
	Name        string            `json:"name"`
	Path        string            `json:"path"`
	Description string            `json:"description"`
	Paid        bool              `json:"paid"`
	Price       string            `json:"price,omitempty"`
	Input       map[string]string `json:"input,omitempty"`
}

type AgentManifest struct {
	Name        string        `json:"name"`
	Version     string        `json:"version"`
	Description string        `json:"description"`
	Entrypoints []Entrypoint  `json:"entrypoints"`
	Payments    *PaymentTerms `json:"payments,omitempty"`
}

type PaymentTerms struct {
	Protocol string `json:"protocol"`
	Network  string `json:"network"`
	Asset    string `json:"asset"`
	PayTo    string `json:"payTo"`
}

// Catalog lists every entrypoint in registration order. Entrypoints with a
// price in prices are paid.
func Catalog(prices map[string]string) []Entrypoint {
	entries := []Entrypoint{
		{Name: domain.EntrypointPing, Description: "Liveness check."},
		{Name: domain.EntrypointFearGreed, Description: "Crypto Fear & Greed index with a 7 day history and interpretation."},
		{
			Name:        domain.EntrypointDailyAlpha,
			Description: "Daily market digest: sentiment, BTC/ETH context, DEX volume, alpha signals, trending assets and top DeFi protocols.",
			Input:       map[string]string{"sources": "optional subset of coingecko, defillama, feargreed"},
		},
		{Name: domain.EntrypointTrending, Description: "Top trending coins and NFT collections."},
		{Name: domain.EntrypointDeFiStats, Description: "Top DeFi protocols by TVL and DEX volume summary."},
		{
			Name:        domain.EntrypointTokenIntel,
			Description: "Detailed market data for a single token.",
			Input:       map[string]string{"token": "CoinGecko coin id, e.g. bitcoin"},
		},
	}
	for i := range entries {
		entries[i].Path = "/entrypoints/" + entries[i].Name + "/invoke"
		if price, ok := prices[entries[i].Name]; ok && price != "" {
			entries[i].Paid = true
			entries[i].Price = price
		}
	}
	return entries
}

// AgentManifest godoc
// @Summary      Agent discovery document
// @Description  Static capability and pricing descriptor
// @Tags         discovery
// @Produce      json
// @Success      200  {object}  AgentManifest
// @Router       /.well-known/agent.json [get]
func (h *Handler) AgentManifest(c *gin.Context) {
	manifest := AgentManifest{
		Name:        h.cfg.AgentName,
		Version:     h.cfg.AgentVersion,
		Description: h.cfg.AgentDescription,
		Entrypoints: h.entrypoints,
	}
	if h.cfg.Payment.Enabled {
		manifest.Payments = &PaymentTerms{
			Protocol: "x402",
			Network:  h.cfg.Payment.Network,
			Asset:    h.cfg.Payment.Asset,
			PayTo:    h.cfg.Payment.PayTo,
		}
	}
	c.JSON(http.StatusOK, manifest)
}
