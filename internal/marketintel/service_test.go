package marketintel

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"alpha-digest/internal/domain"
	"alpha-digest/internal/provider"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestServiceDigestFearGreedOnly(t *testing.T) {
	fg := &fearGreedStub{latest: domain.SentimentSnapshot{Value: 20, Classification: "Extreme Fear"}}
	cg := &coinGeckoStub{}
	dl := &defiLlamaStub{}
	recorder := &signalRecorderStub{}
	svc := newTestService(fg, cg, dl, recorder, zap.NewNop())

	digest := svc.Digest(context.Background(), []domain.SourceGroup{domain.SourceFearGreed})

	if digest.MarketContext.FearGreedIndex == nil || digest.MarketContext.FearGreedIndex.Value != 20 {
		t.Fatalf("expected fear & greed context, got %+v", digest.MarketContext.FearGreedIndex)
	}
	if digest.Trending == nil || len(digest.Trending) != 0 {
		t.Fatalf("expected empty trending, got %#v", digest.Trending)
	}
	if digest.TopDeFi == nil || len(digest.TopDeFi) != 0 {
		t.Fatalf("expected empty topDeFi, got %#v", digest.TopDeFi)
	}
	if digest.MarketContext.BTCPrice != nil || digest.MarketContext.DexVolume24h != nil {
		t.Fatalf("unrequested sources must leave context null: %+v", digest.MarketContext)
	}
	if cg.calls() != 0 || dl.calls() != 0 {
		t.Fatalf("unrequested sources were called: coingecko=%d defillama=%d", cg.calls(), dl.calls())
	}
	if len(digest.AlphaSignals) != 1 || digest.AlphaSignals[0].Type != domain.SignalSentiment {
		t.Fatalf("expected only the sentiment signal, got %+v", digest.AlphaSignals)
	}
	if len(recorder.recorded) != 1 {
		t.Fatalf("expected signals to be recorded, got %d", len(recorder.recorded))
	}
	if digest.Disclaimer == "" {
		t.Fatal("expected disclaimer")
	}
}

func TestServiceDigestAllSourcesByDefault(t *testing.T) {
	fg := &fearGreedStub{latest: domain.SentimentSnapshot{Value: 50, Classification: "Neutral"}}
	cg := &coinGeckoStub{
		trending: domain.TrendingFeed{Coins: []domain.TrendingAsset{
			{Symbol: "A", Change24h: ptr(12)}, {Symbol: "B", Change24h: ptr(8)}, {Symbol: "C", Change24h: ptr(15)},
			{Symbol: "D", Change24h: ptr(20)}, {Symbol: "E", Change24h: ptr(5)}, {Symbol: "F"},
		}},
		markets: []domain.MarketAsset{
			{Symbol: "BTC", Price: ptr(97000), Change24h: ptr(-3)},
			{Symbol: "ETH", Price: ptr(3500), Change24h: ptr(1.5)},
		},
	}
	dl := &defiLlamaStub{
		protocols: []domain.DeFiProtocol{
			{Name: "Lido", TVL: 6}, {Name: "Aave", TVL: 5}, {Name: "Eigen", TVL: 4},
			{Name: "Maker", TVL: 3}, {Name: "Uniswap", TVL: 2}, {Name: "Curve", TVL: 1},
		},
		dex: domain.DexVolumeSummary{Total24h: ptr(5e9), Change1d: ptr(6)},
	}
	svc := newTestService(fg, cg, dl, nil, zap.NewNop())

	digest := svc.Digest(context.Background(), nil)

	mc := digest.MarketContext
	if mc.FearGreedIndex == nil || mc.BTCPrice == nil || *mc.BTCPrice != 97000 || mc.ETHChange24h == nil || *mc.ETHChange24h != 1.5 {
		t.Fatalf("unexpected market context: %+v", mc)
	}
	if mc.DexVolume24h == nil || *mc.DexVolume24h != 5e9 || mc.DexVolumeChange24h == nil || *mc.DexVolumeChange24h != 6 {
		t.Fatalf("unexpected dex context: %+v", mc)
	}
	if len(digest.Trending) != 5 || len(digest.TopDeFi) != 5 {
		t.Fatalf("expected top-5 sections, got trending=%d defi=%d", len(digest.Trending), len(digest.TopDeFi))
	}
	types := make([]domain.SignalType, 0, len(digest.AlphaSignals))
	for _, s := range digest.AlphaSignals {
		types = append(types, s.Type)
	}
	want := []domain.SignalType{domain.SignalWhale, domain.SignalNarrative, domain.SignalNarrative}
	if len(types) != len(want) {
		t.Fatalf("expected signals %v, got %v", want, types)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("expected signals %v, got %v", want, types)
		}
	}
}

func TestServiceDigestPartialFailureDegrades(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	fg := &fearGreedStub{err: &provider.UpstreamError{Source: provider.SourceFearGreed, Err: context.DeadlineExceeded}}
	cg := &coinGeckoStub{
		trendingErr: errors.New("boom"),
		markets:     []domain.MarketAsset{{Symbol: "BTC", Price: ptr(1)}},
	}
	dl := &defiLlamaStub{protocolsErr: errors.New("boom"), dexErr: errors.New("boom")}
	svc := newTestService(fg, cg, dl, nil, zap.New(core))

	digest := svc.Digest(context.Background(), nil)

	if digest.MarketContext.FearGreedIndex != nil {
		t.Fatalf("failed sentiment must leave index null")
	}
	if digest.MarketContext.BTCPrice == nil {
		t.Fatalf("surviving market source should still populate context")
	}
	if len(digest.Trending) != 0 || len(digest.TopDeFi) != 0 || len(digest.AlphaSignals) != 0 {
		t.Fatalf("expected degraded sections, got %+v", digest)
	}
	if logs.Len() != 4 {
		t.Fatalf("expected one warning per failed source, got %d", logs.Len())
	}
}

func TestServiceDigestWaitsForSlowSourcesAfterCancel(t *testing.T) {
	fg := &fearGreedStub{latest: domain.SentimentSnapshot{Value: 90, Classification: "Extreme Greed"}, delay: 20 * time.Millisecond}
	svc := newTestService(fg, &coinGeckoStub{}, &defiLlamaStub{}, nil, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	digest := svc.Digest(ctx, []domain.SourceGroup{domain.SourceFearGreed})

	if digest.MarketContext.FearGreedIndex == nil || digest.MarketContext.FearGreedIndex.Value != 90 {
		t.Fatalf("caller cancellation must not abort source calls: %+v", digest.MarketContext)
	}
}

func TestServiceSentimentIndex(t *testing.T) {
	history := make(domain.SentimentHistory, 0, 9)
	for i := 0; i < 9; i++ {
		history = append(history, domain.SentimentSnapshot{Value: 80 - i, Classification: "Greed"})
	}
	fg := &fearGreedStub{history: history}
	svc := newTestService(fg, nil, nil, nil, nil)

	report := svc.SentimentIndex(context.Background())
	if fg.historyLimit != 7 {
		t.Fatalf("expected a 7 day history request, got %d", fg.historyLimit)
	}
	if len(report.History) != 7 || report.Current.Value != 80 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if report.Interpretation != Interpret(80, DefaultThresholds) {
		t.Fatalf("unexpected interpretation %q", report.Interpretation)
	}
}

func TestServiceSentimentIndexFailureUsesDefault(t *testing.T) {
	svc := newTestService(&fearGreedStub{err: errors.New("down")}, nil, nil, nil, nil)

	report := svc.SentimentIndex(context.Background())
	if report.Current.Value != 50 || report.Current.Classification != "Neutral" {
		t.Fatalf("expected neutral default, got %+v", report.Current)
	}
	if report.History == nil || len(report.History) != 0 {
		t.Fatalf("expected empty history, got %#v", report.History)
	}
}

func TestServiceTrendingCaps(t *testing.T) {
	feed := domain.TrendingFeed{}
	for i := 0; i < 15; i++ {
		feed.Coins = append(feed.Coins, domain.TrendingAsset{Symbol: "C"})
		feed.NFTs = append(feed.NFTs, domain.TrendingNFT{Name: "N"})
	}
	svc := newTestService(nil, &coinGeckoStub{trending: feed}, nil, nil, nil)

	report := svc.Trending(context.Background())
	if len(report.Coins) != 10 || len(report.NFTs) != 5 {
		t.Fatalf("expected 10 coins and 5 nfts, got %d and %d", len(report.Coins), len(report.NFTs))
	}
}

func TestServiceDeFiStatsFormatting(t *testing.T) {
	dl := &defiLlamaStub{
		protocols: []domain.DeFiProtocol{{Name: "Lido", Category: "Liquid Staking", TVL: 1_230_000_000, Change1d: ptr(4.2), Chains: []string{"Ethereum"}}},
		dex:       domain.DexVolumeSummary{Total24h: ptr(5_100_000_000), Change1d: ptr(-2.5)},
	}
	svc := newTestService(nil, nil, dl, nil, nil)

	stats := svc.DeFiStats(context.Background())
	if len(stats.Protocols) != 1 {
		t.Fatalf("expected one protocol, got %d", len(stats.Protocols))
	}
	p := stats.Protocols[0]
	if p.TVL != "$1.23B" || p.TVLUSD != 1_230_000_000 || p.Change1d != "+4.20%" || p.Change7d != "N/A" {
		t.Fatalf("unexpected protocol stat: %+v", p)
	}
	if stats.DexVolume == nil || stats.DexVolume.Total24h != "$5.10B" || stats.DexVolume.Change1d != "-2.50%" {
		t.Fatalf("unexpected dex stat: %+v", stats.DexVolume)
	}
}

func TestServiceTokenIntel(t *testing.T) {
	cg := &coinGeckoStub{token: domain.TokenIntel{MarketAsset: domain.MarketAsset{ID: "bitcoin", Symbol: "BTC"}}}
	svc := newTestService(nil, cg, nil, nil, nil)

	intel, err := svc.TokenIntel(context.Background(), "bitcoin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if intel.Symbol != "BTC" {
		t.Fatalf("expected BTC, got %s", intel.Symbol)
	}
}

func TestServiceTokenIntelNotFound(t *testing.T) {
	cg := &coinGeckoStub{tokenErr: &provider.NotFoundError{TokenID: "nope-coin"}}
	svc := newTestService(nil, cg, nil, nil, nil)

	_, err := svc.TokenIntel(context.Background(), "nope-coin")
	if !provider.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	failure := LookupFailure("nope-coin", err)
	if failure.TokenID != "nope-coin" || failure.Hint != tokenNotFoundHint || failure.Error == "" {
		t.Fatalf("unexpected failure payload: %+v", failure)
	}

	failure = LookupFailure("bitcoin", &provider.UpstreamError{Source: provider.SourceToken, StatusCode: 500, Err: errors.New("boom")})
	if failure.Hint != tokenUnavailableHint {
		t.Fatalf("expected unavailable hint, got %q", failure.Hint)
	}
}

func TestServiceHealth(t *testing.T) {
	svc := NewService(trace.NewNoopTracerProvider().Tracer("test"), nil, nil, nil, nil, nil, Config{AgentName: "alpha", AgentVersion: "1.2.3"})
	first, second := svc.Health(), svc.Health()
	if first.Status != "ok" || first.Agent != "alpha" || first.Version != "1.2.3" {
		t.Fatalf("unexpected health: %+v", first)
	}
	if first.Status != second.Status || first.Agent != second.Agent || first.Version != second.Version {
		t.Fatalf("health must be stable: %+v vs %+v", first, second)
	}
}

func newTestService(fg FearGreedReader, cg CoinGeckoReader, dl DefiLlamaReader, rec SignalRecorder, logger *zap.Logger) *Service {
	return NewService(trace.NewNoopTracerProvider().Tracer("test"), logger, fg, cg, dl, rec, Config{})
}

type fearGreedStub struct {
	latest       domain.SentimentSnapshot
	history      domain.SentimentHistory
	historyLimit int
	delay        time.Duration
	err          error
}

func (s *fearGreedStub) FetchLatest(ctx context.Context) (domain.SentimentSnapshot, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return domain.SentimentSnapshot{}, ctx.Err()
		}
	}
	return s.latest, s.err
}

func (s *fearGreedStub) FetchHistory(ctx context.Context, limit int) (domain.SentimentHistory, error) {
	s.historyLimit = limit
	return s.history, s.err
}

type coinGeckoStub struct {
	mu          sync.Mutex
	n           int
	trending    domain.TrendingFeed
	trendingErr error
	markets     []domain.MarketAsset
	token       domain.TokenIntel
	tokenErr    error
}

func (s *coinGeckoStub) hit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
}

func (s *coinGeckoStub) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.n
}

func (s *coinGeckoStub) FetchTrending(ctx context.Context) (domain.TrendingFeed, error) {
	s.hit()
	return s.trending, s.trendingErr
}

func (s *coinGeckoStub) FetchMarkets(ctx context.Context) ([]domain.MarketAsset, error) {
	s.hit()
	return s.markets, nil
}

func (s *coinGeckoStub) FetchToken(ctx context.Context, tokenID string) (domain.TokenIntel, error) {
	s.hit()
	return s.token, s.tokenErr
}

type defiLlamaStub struct {
	mu           sync.Mutex
	n            int
	protocols    []domain.DeFiProtocol
	protocolsErr error
	dex          domain.DexVolumeSummary
	dexErr       error
}

func (s *defiLlamaStub) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.n
}

func (s *defiLlamaStub) FetchProtocols(ctx context.Context) ([]domain.DeFiProtocol, error) {
	s.mu.Lock()
	s.n++
	s.mu.Unlock()
	return s.protocols, s.protocolsErr
}

func (s *defiLlamaStub) FetchDexVolume(ctx context.Context) (domain.DexVolumeSummary, error) {
	s.mu.Lock()
	s.n++
	s.mu.Unlock()
	return s.dex, s.dexErr
}

type signalRecorderStub struct {
	recorded []domain.AlphaSignal
}

func (s *signalRecorderStub) RecordSignals(signals []domain.AlphaSignal) {
	s.recorded = append(s.recorded, signals...)
}
