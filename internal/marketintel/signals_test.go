package marketintel

import (
	"strings"
	"testing"

	"alpha-digest/internal/domain"
)

func ptr(v float64) *float64 { return &v }

func TestDefaultThresholdsTable(t *testing.T) {
	th := DefaultThresholds
	if th.SentimentBuy != 25 || th.SentimentBuyStrong != 15 || th.SentimentCaution != 75 || th.SentimentCautionStrong != 85 {
		t.Fatalf("unexpected sentiment cut points: %+v", th)
	}
	if th.DexVolumeSurge != 5 || th.PrimaryDrop != -2 || th.NarrativeMomentum != 10 || th.ProtocolTVLGrowth != 10 {
		t.Fatalf("unexpected rule cut points: %+v", th)
	}
	if th.Window != 3 {
		t.Fatalf("unexpected window: %d", th.Window)
	}
}

func TestBuildSignalsSentimentBands(t *testing.T) {
	for value := 0; value <= 100; value++ {
		signals := BuildSignals(SignalInput{Sentiment: domain.SentimentSnapshot{Value: value}}, DefaultThresholds)

		switch {
		case value <= 25:
			assertSentimentSignal(t, value, signals, "Buy Zone", value <= 15)
		case value >= 75:
			assertSentimentSignal(t, value, signals, "Caution Zone", value >= 85)
		default:
			if len(signals) != 0 {
				t.Fatalf("value %d: expected no signals, got %+v", value, signals)
			}
		}
	}
}

func assertSentimentSignal(t *testing.T, value int, signals []domain.AlphaSignal, title string, high bool) {
	t.Helper()
	if len(signals) != 1 || signals[0].Type != domain.SignalSentiment {
		t.Fatalf("value %d: expected one sentiment signal, got %+v", value, signals)
	}
	if !strings.Contains(signals[0].Title, title) {
		t.Fatalf("value %d: expected title containing %q, got %q", value, title, signals[0].Title)
	}
	want := domain.ConfidenceMedium
	if high {
		want = domain.ConfidenceHigh
	}
	if signals[0].Confidence != want {
		t.Fatalf("value %d: expected %s confidence, got %s", value, want, signals[0].Confidence)
	}
}

func TestBuildSignalsWhaleDivergence(t *testing.T) {
	markets := []domain.MarketAsset{{Symbol: "BTC", Name: "Bitcoin", Change24h: ptr(-3)}}
	neutral := domain.SentimentSnapshot{Value: 50}

	signals := BuildSignals(SignalInput{
		Sentiment: neutral,
		DexVolume: &domain.DexVolumeSummary{Change1d: ptr(6)},
		Markets:   markets,
	}, DefaultThresholds)
	if len(signals) != 1 || signals[0].Type != domain.SignalWhale {
		t.Fatalf("expected one whale signal, got %+v", signals)
	}
	if signals[0].Confidence != domain.ConfidenceMedium || signals[0].Asset != "BTC" {
		t.Fatalf("unexpected whale signal: %+v", signals[0])
	}

	signals = BuildSignals(SignalInput{
		Sentiment: neutral,
		DexVolume: &domain.DexVolumeSummary{Change1d: ptr(4)},
		Markets:   markets,
	}, DefaultThresholds)
	if len(signals) != 0 {
		t.Fatalf("expected no whale signal below the volume threshold, got %+v", signals)
	}
}

func TestBuildSignalsWhaleNeedsBothValues(t *testing.T) {
	signals := BuildSignals(SignalInput{
		Sentiment: domain.SentimentSnapshot{Value: 50},
		DexVolume: &domain.DexVolumeSummary{Change1d: ptr(20)},
		Markets:   []domain.MarketAsset{{Symbol: "BTC"}},
	}, DefaultThresholds)
	if len(signals) != 0 {
		t.Fatalf("expected no signal without a primary price change, got %+v", signals)
	}
}

func TestBuildSignalsNarrativeWindow(t *testing.T) {
	changes := []float64{12, 8, 15, 20, 5}
	trending := make([]domain.TrendingAsset, 0, len(changes))
	for i, c := range changes {
		trending = append(trending, domain.TrendingAsset{Symbol: string(rune('A' + i)), Change24h: ptr(c)})
	}

	signals := BuildSignals(SignalInput{Sentiment: domain.SentimentSnapshot{Value: 50}, Trending: trending}, DefaultThresholds)
	if len(signals) != 2 {
		t.Fatalf("expected two narrative signals, got %+v", signals)
	}
	if signals[0].Asset != "A" || signals[1].Asset != "C" {
		t.Fatalf("expected assets at indices 0 and 2, got %s and %s", signals[0].Asset, signals[1].Asset)
	}
	for _, s := range signals {
		if s.Type != domain.SignalNarrative || s.Confidence != domain.ConfidenceMedium {
			t.Fatalf("unexpected narrative signal: %+v", s)
		}
	}
}

func TestBuildSignalsProtocolGrowthIsStrict(t *testing.T) {
	protocols := []domain.DeFiProtocol{
		{Name: "Lido", TVL: 3, Change7d: ptr(10)},
		{Name: "Aave", TVL: 2, Change7d: ptr(10.01)},
		{Name: "Maker", TVL: 1},
		{Name: "Curve", TVL: 0.5, Change7d: ptr(50)},
	}
	signals := BuildSignals(SignalInput{Sentiment: domain.SentimentSnapshot{Value: 50}, Protocols: protocols}, DefaultThresholds)
	if len(signals) != 1 || signals[0].Asset != "Aave" || signals[0].Type != domain.SignalProtocol {
		t.Fatalf("expected only Aave to qualify, got %+v", signals)
	}
}

func TestBuildSignalsOrder(t *testing.T) {
	signals := BuildSignals(SignalInput{
		Sentiment: domain.SentimentSnapshot{Value: 10},
		DexVolume: &domain.DexVolumeSummary{Change1d: ptr(9)},
		Markets:   []domain.MarketAsset{{Symbol: "BTC", Change24h: ptr(-5)}},
		Trending:  []domain.TrendingAsset{{Symbol: "PEPE", Change24h: ptr(30)}},
		Protocols: []domain.DeFiProtocol{{Name: "Lido", TVL: 1, Change7d: ptr(12)}},
	}, DefaultThresholds)

	want := []domain.SignalType{domain.SignalSentiment, domain.SignalWhale, domain.SignalNarrative, domain.SignalProtocol}
	if len(signals) != len(want) {
		t.Fatalf("expected %d signals, got %+v", len(want), signals)
	}
	for i, typ := range want {
		if signals[i].Type != typ {
			t.Fatalf("position %d: expected %s, got %s", i, typ, signals[i].Type)
		}
		if signals[i].Confidence == domain.ConfidenceLow {
			t.Fatalf("low confidence is never produced: %+v", signals[i])
		}
	}
}

func TestInterpret(t *testing.T) {
	if got := Interpret(25, DefaultThresholds); !strings.Contains(got, "fear") {
		t.Fatalf("expected fear interpretation, got %q", got)
	}
	if got := Interpret(75, DefaultThresholds); !strings.Contains(got, "greed") {
		t.Fatalf("expected greed interpretation, got %q", got)
	}
	if got := Interpret(50, DefaultThresholds); !strings.Contains(got, "neutral") {
		t.Fatalf("expected neutral interpretation, got %q", got)
	}
}
