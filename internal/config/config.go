package config

import (
	"log"
	"strings"
	"time"

	"alpha-digest/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPAddr string
	AppEnv   string

	AgentName        string
	AgentVersion     string
	AgentDescription string
	PublicURL        string

	UpstreamTimeout  time.Duration
	FearGreedBaseURL string
	CoinGeckoBaseURL string
	DefiLlamaBaseURL string

	LogLevel    string
	LogEncoding string

	PaymentsEnabled bool
	PayTo           string
	PaymentNetwork  string
	PaymentAsset    string
	FacilitatorURL  string
	// Prices maps paid entrypoint names to USD amounts such as "0.05".
	Prices map[string]string

	TracingEnabled bool
	OTLPEndpoint   string
}

var defaults = map[string]any{
	"HTTP_ADDR":                   ":8080",
	"APP_ENV":                     "dev",
	"AGENT_NAME":                  "alpha-digest",
	"AGENT_VERSION":               "0.1.0",
	"AGENT_DESCRIPTION":           "Crypto market digest: sentiment, trending assets, DeFi flows and rule-based alpha signals.",
	"PUBLIC_URL":                  "",
	"UPSTREAM_TIMEOUT":            "15s",
	"FEAR_GREED_BASE_URL":         "https://api.alternative.me",
	"COINGECKO_BASE_URL":          "https://api.coingecko.com/api/v3",
	"DEFILLAMA_BASE_URL":          "https://api.llama.fi",
	"LOG_LEVEL":                   "info",
	"LOG_ENCODING":                "",
	"PAYMENTS_ENABLED":            false,
	"PAY_TO":                      "",
	"PAYMENT_NETWORK":             "base",
	"PAYMENT_ASSET":               "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913",
	"FACILITATOR_URL":             "",
	"PRICE_DAILY_ALPHA":           "0.05",
	"PRICE_TRENDING":              "0.01",
	"PRICE_DEFI_STATS":            "0.01",
	"PRICE_TOKEN_INTEL":           "0.02",
	"TRACING_ENABLED":             true,
	"OTEL_EXPORTER_OTLP_ENDPOINT": "localhost:4317",
}

var priceKeys = map[string]string{
	domain.EntrypointDailyAlpha: "PRICE_DAILY_ALPHA",
	domain.EntrypointTrending:   "PRICE_TRENDING",
	domain.EntrypointDeFiStats:  "PRICE_DEFI_STATS",
	domain.EntrypointTokenIntel: "PRICE_TOKEN_INTEL",
}

// Load reads configuration from the environment. Invalid values fall back to
// their defaults with a warning.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	cfg := &Config{
		HTTPAddr:         strings.TrimSpace(v.GetString("HTTP_ADDR")),
		AppEnv:           strings.ToLower(strings.TrimSpace(v.GetString("APP_ENV"))),
		AgentName:        strings.TrimSpace(v.GetString("AGENT_NAME")),
		AgentVersion:     strings.TrimSpace(v.GetString("AGENT_VERSION")),
		AgentDescription: strings.TrimSpace(v.GetString("AGENT_DESCRIPTION")),
		PublicURL:        strings.TrimRight(strings.TrimSpace(v.GetString("PUBLIC_URL")), "/"),
		FearGreedBaseURL: strings.TrimSpace(v.GetString("FEAR_GREED_BASE_URL")),
		CoinGeckoBaseURL: strings.TrimSpace(v.GetString("COINGECKO_BASE_URL")),
		DefiLlamaBaseURL: strings.TrimSpace(v.GetString("DEFILLAMA_BASE_URL")),
		LogLevel:         strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))),
		LogEncoding:      strings.ToLower(strings.TrimSpace(v.GetString("LOG_ENCODING"))),
		PayTo:            strings.TrimSpace(v.GetString("PAY_TO")),
		PaymentNetwork:   strings.TrimSpace(v.GetString("PAYMENT_NETWORK")),
		PaymentAsset:     strings.TrimSpace(v.GetString("PAYMENT_ASSET")),
		FacilitatorURL:   strings.TrimRight(strings.TrimSpace(v.GetString("FACILITATOR_URL")), "/"),
		OTLPEndpoint:     strings.TrimSpace(v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT")),
		Prices:           make(map[string]string, len(priceKeys)),
	}

	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = defaults["HTTP_ADDR"].(string)
	}
	if cfg.AppEnv == "" {
		cfg.AppEnv = defaults["APP_ENV"].(string)
	}
	if cfg.AgentName == "" {
		cfg.AgentName = defaults["AGENT_NAME"].(string)
	}

	cfg.UpstreamTimeout = 15 * time.Second
	if raw := strings.TrimSpace(v.GetString("UPSTREAM_TIMEOUT")); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cfg.UpstreamTimeout = d
		} else {
			log.Printf("Warning: invalid UPSTREAM_TIMEOUT=%q, defaulting to %s", raw, cfg.UpstreamTimeout)
		}
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		log.Printf("Warning: unsupported LOG_LEVEL=%q, defaulting to info", cfg.LogLevel)
		cfg.LogLevel = "info"
	}
	switch cfg.LogEncoding {
	case "json", "console":
	case "":
		cfg.LogEncoding = "json"
		if cfg.AppEnv == "dev" {
			cfg.LogEncoding = "console"
		}
	default:
		log.Printf("Warning: unsupported LOG_ENCODING=%q, defaulting to json", cfg.LogEncoding)
		cfg.LogEncoding = "json"
	}

	cfg.PaymentsEnabled = parseBool(v, "PAYMENTS_ENABLED", false)
	cfg.TracingEnabled = parseBool(v, "TRACING_ENABLED", true)

	for name, key := range priceKeys {
		fallback := defaults[key].(string)
		raw := strings.TrimSpace(v.GetString(key))
		price, err := decimal.NewFromString(raw)
		if err != nil || !price.IsPositive() {
			log.Printf("Warning: invalid %s=%q, defaulting to %s", key, raw, fallback)
			raw = fallback
		}
		cfg.Prices[name] = raw
	}

	if cfg.PaymentsEnabled && cfg.PayTo == "" {
		log.Println("Warning: PAYMENTS_ENABLED is true but PAY_TO is not set")
	}

	return cfg
}

func parseBool(v *viper.Viper, key string, fallback bool) bool {
	raw := strings.ToLower(strings.TrimSpace(v.GetString(key)))
	switch raw {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	case "":
		return fallback
	default:
		log.Printf("Warning: invalid %s=%q, defaulting to %t", key, raw, fallback)
		return fallback
	}
}
