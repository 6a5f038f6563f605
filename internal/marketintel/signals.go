package marketintel

import (
	"fmt"
	"math"

	"alpha-digest/internal/domain"
)

// Thresholds holds the cut points of the signal rules. Sentiment bounds are
// inclusive; every other comparison is strict.
type Thresholds struct {
	SentimentBuy           int
	SentimentBuyStrong     int
	SentimentCaution       int
	SentimentCautionStrong int

	DexVolumeSurge    float64
	PrimaryDrop       float64
	NarrativeMomentum float64
	ProtocolTVLGrowth float64

	// Window is how many leading trending assets and protocols are evaluated.
	Window int
}

var DefaultThresholds = Thresholds{
	SentimentBuy:           25,
	SentimentBuyStrong:     15,
	SentimentCaution:       75,
	SentimentCautionStrong: 85,
	DexVolumeSurge:         5,
	PrimaryDrop:            -2,
	NarrativeMomentum:      10,
	ProtocolTVLGrowth:      10,
	Window:                 3,
}

// SignalInput carries the normalized records a digest could gather. Nil
// DexVolume and empty slices suppress the rules that need them.
type SignalInput struct {
	Sentiment domain.SentimentSnapshot
	DexVolume *domain.DexVolumeSummary
	Markets   []domain.MarketAsset
	Trending  []domain.TrendingAsset
	Protocols []domain.DeFiProtocol
}

// BuildSignals evaluates the sentiment, whale, narrative and protocol rules
// in that order. It never fails.
func BuildSignals(in SignalInput, th Thresholds) []domain.AlphaSignal {
	out := make([]domain.AlphaSignal, 0, 1+1+2*th.Window)

	if sig, ok := sentimentSignal(in.Sentiment, th); ok {
		out = append(out, sig)
	}
	if sig, ok := whaleSignal(in.DexVolume, in.Markets, th); ok {
		out = append(out, sig)
	}

	for _, asset := range window(in.Trending, th.Window) {
		if asset.Change24h == nil || !(*asset.Change24h > th.NarrativeMomentum) {
			continue
		}
		out = append(out, domain.AlphaSignal{
			Type:        domain.SignalNarrative,
			Asset:       asset.Symbol,
			Title:       fmt.Sprintf("%s Trending Momentum", asset.Symbol),
			Description: fmt.Sprintf("%s is trending with a %+.1f%% move in 24h. Watch for narrative rotation.", displayName(asset.Name, asset.Symbol), *asset.Change24h),
			Confidence:  domain.ConfidenceMedium,
			Actionable:  false,
		})
	}

	for _, p := range window(in.Protocols, th.Window) {
		if p.Change7d == nil || !(*p.Change7d > th.ProtocolTVLGrowth) {
			continue
		}
		out = append(out, domain.AlphaSignal{
			Type:        domain.SignalProtocol,
			Asset:       p.Name,
			Title:       fmt.Sprintf("%s TVL Growth", p.Name),
			Description: fmt.Sprintf("%s TVL is up %.1f%% over 7d. Capital is flowing into %s.", p.Name, *p.Change7d, categoryOrDefault(p.Category)),
			Confidence:  domain.ConfidenceMedium,
			Actionable:  false,
		})
	}

	return out
}

func sentimentSignal(s domain.SentimentSnapshot, th Thresholds) (domain.AlphaSignal, bool) {
	switch {
	case s.Value <= th.SentimentBuy:
		confidence := domain.ConfidenceMedium
		if s.Value <= th.SentimentBuyStrong {
			confidence = domain.ConfidenceHigh
		}
		return domain.AlphaSignal{
			Type:        domain.SignalSentiment,
			Title:       "Extreme Fear: Buy Zone",
			Description: fmt.Sprintf("Fear & Greed Index at %d. Extreme fear has historically preceded recoveries.", s.Value),
			Confidence:  confidence,
			Actionable:  true,
		}, true
	case s.Value >= th.SentimentCaution:
		confidence := domain.ConfidenceMedium
		if s.Value >= th.SentimentCautionStrong {
			confidence = domain.ConfidenceHigh
		}
		return domain.AlphaSignal{
			Type:        domain.SignalSentiment,
			Title:       "Extreme Greed: Caution Zone",
			Description: fmt.Sprintf("Fear & Greed Index at %d. Extreme greed often precedes corrections; consider taking profits.", s.Value),
			Confidence:  confidence,
			Actionable:  true,
		}, true
	}
	return domain.AlphaSignal{}, false
}

func whaleSignal(dex *domain.DexVolumeSummary, markets []domain.MarketAsset, th Thresholds) (domain.AlphaSignal, bool) {
	if dex == nil || dex.Change1d == nil || len(markets) == 0 || markets[0].Change24h == nil {
		return domain.AlphaSignal{}, false
	}
	volume, price := *dex.Change1d, *markets[0].Change24h
	if !(volume > th.DexVolumeSurge && price < th.PrimaryDrop) {
		return domain.AlphaSignal{}, false
	}
	primary := markets[0]
	return domain.AlphaSignal{
		Type:  domain.SignalWhale,
		Asset: primary.Symbol,
		Title: "DEX Volume / Price Divergence",
		Description: fmt.Sprintf("DEX volume up %.1f%% while %s is down %.1f%% in 24h. Possible accumulation by large holders.",
			volume, displayName(primary.Symbol, primary.Name), math.Abs(price)),
		Confidence: domain.ConfidenceMedium,
		Actionable: true,
	}, true
}

// Interpret gives the textual reading of a sentiment value using the same
// bands as the sentiment rule.
func Interpret(value int, th Thresholds) string {
	switch {
	case value <= th.SentimentBuy:
		return "Extreme fear in the market. Historically a contrarian buying opportunity."
	case value >= th.SentimentCaution:
		return "Extreme greed in the market. Elevated risk of a correction."
	default:
		return "Sentiment is neutral. No strong contrarian signal."
	}
}

func window[T any](items []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(items) > n {
		return items[:n]
	}
	return items
}

func displayName(preferred, fallback string) string {
	if preferred != "" {
		return preferred
	}
	return fallback
}

func categoryOrDefault(category string) string {
	if category == "" {
		return "the protocol"
	}
	return category
}
