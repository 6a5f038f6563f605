package marketintel

import (
	"context"
	"errors"
	"time"

	"alpha-digest/internal/domain"
	"alpha-digest/internal/provider"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	sentimentHistoryDays = 7
	digestTrendingSize   = 5
	digestDeFiSize       = 5
	trendingCoinsSize    = 10
	trendingNFTsSize     = 5

	Disclaimer = "This digest is automated market data analysis, not financial advice. Always do your own research."

	tokenNotFoundHint    = `Use the CoinGecko coin id (for example "bitcoin", "ethereum" or "solana"), not the ticker symbol.`
	tokenUnavailableHint = "The market data source is temporarily unavailable. Retry in a moment."
)

type FearGreedReader interface {
	FetchLatest(ctx context.Context) (domain.SentimentSnapshot, error)
	FetchHistory(ctx context.Context, limit int) (domain.SentimentHistory, error)
}

type CoinGeckoReader interface {
	FetchTrending(ctx context.Context) (domain.TrendingFeed, error)
	FetchMarkets(ctx context.Context) ([]domain.MarketAsset, error)
	FetchToken(ctx context.Context, tokenID string) (domain.TokenIntel, error)
}

type DefiLlamaReader interface {
	FetchProtocols(ctx context.Context) ([]domain.DeFiProtocol, error)
	FetchDexVolume(ctx context.Context) (domain.DexVolumeSummary, error)
}

// SignalRecorder is told about every signal a digest emits.
type SignalRecorder interface {
	RecordSignals(signals []domain.AlphaSignal)
}

type nopSignalRecorder struct{}

func (nopSignalRecorder) RecordSignals([]domain.AlphaSignal) {}

type Config struct {
	AgentName    string
	AgentVersion string
	Thresholds   Thresholds
}

// Service assembles every entrypoint payload from the source clients. All
// operations except TokenIntel are total: source failures are logged and
// degrade the affected sections.
type Service struct {
	tracer  trace.Tracer
	logger  *zap.Logger
	signals SignalRecorder

	fearGreed FearGreedReader
	coingecko CoinGeckoReader
	defillama DefiLlamaReader

	cfg Config
	now func() time.Time
}

func NewService(
	tracer trace.Tracer,
	logger *zap.Logger,
	fearGreed FearGreedReader,
	coingecko CoinGeckoReader,
	defillama DefiLlamaReader,
	signals SignalRecorder,
	cfg Config,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if signals == nil {
		signals = nopSignalRecorder{}
	}
	if cfg.Thresholds == (Thresholds{}) {
		cfg.Thresholds = DefaultThresholds
	}
	if cfg.AgentName == "" {
		cfg.AgentName = "alpha-digest"
	}
	if cfg.AgentVersion == "" {
		cfg.AgentVersion = "dev"
	}

	return &Service{
		tracer:    tracer,
		logger:    logger,
		signals:   signals,
		fearGreed: fearGreed,
		coingecko: coingecko,
		defillama: defillama,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Digest fetches the selected source groups concurrently, waits for every
// call to settle and builds the daily overview. An empty selection means all
// groups.
func (s *Service) Digest(ctx context.Context, sources []domain.SourceGroup) domain.Digest {
	ctx, span := s.tracer.Start(context.WithoutCancel(ctx), "marketintel.digest")
	defer span.End()

	selected := selection(sources)
	span.SetAttributes(attribute.Int("digest.sources", len(selected)))

	sentiment := skipped[domain.SentimentSnapshot]()
	trending := skipped[domain.TrendingFeed]()
	markets := skipped[[]domain.MarketAsset]()
	protocols := skipped[[]domain.DeFiProtocol]()
	dexVolume := skipped[domain.DexVolumeSummary]()

	var g errgroup.Group
	if selected[domain.SourceFearGreed] && s.fearGreed != nil {
		g.Go(func() error {
			sentiment = capture(s.fearGreed.FetchLatest(ctx))
			return nil
		})
	}
	if selected[domain.SourceCoinGecko] && s.coingecko != nil {
		g.Go(func() error {
			trending = capture(s.coingecko.FetchTrending(ctx))
			return nil
		})
		g.Go(func() error {
			markets = capture(s.coingecko.FetchMarkets(ctx))
			return nil
		})
	}
	if selected[domain.SourceDefiLlama] && s.defillama != nil {
		g.Go(func() error {
			protocols = capture(s.defillama.FetchProtocols(ctx))
			return nil
		})
		g.Go(func() error {
			dexVolume = capture(s.defillama.FetchDexVolume(ctx))
			return nil
		})
	}
	_ = g.Wait()

	s.warn(provider.SourceFearGreed, sentiment.Err)
	s.warn(provider.SourceTrending, trending.Err)
	s.warn(provider.SourceMarkets, markets.Err)
	s.warn(provider.SourceProtocols, protocols.Err)
	s.warn(provider.SourceDexVolume, dexVolume.Err)

	input := SignalInput{Sentiment: domain.DefaultSentiment()}
	var mc domain.MarketContext
	if sentiment.OK() {
		input.Sentiment = sentiment.Value
		mc.FearGreedIndex = &domain.FearGreedReading{
			Value:          sentiment.Value.Value,
			Classification: sentiment.Value.Classification,
		}
	}
	if markets.OK() {
		input.Markets = markets.Value
		if len(markets.Value) > 0 {
			mc.BTCPrice, mc.BTCChange24h = markets.Value[0].Price, markets.Value[0].Change24h
		}
		if len(markets.Value) > 1 {
			mc.ETHPrice, mc.ETHChange24h = markets.Value[1].Price, markets.Value[1].Change24h
		}
	}
	if dexVolume.OK() {
		dex := dexVolume.Value
		input.DexVolume = &dex
		mc.DexVolume24h, mc.DexVolumeChange24h = dex.Total24h, dex.Change1d
	}
	topTrending := []domain.TrendingAsset{}
	if trending.OK() {
		input.Trending = trending.Value.Coins
		topTrending = append(topTrending, window(trending.Value.Coins, digestTrendingSize)...)
	}
	topDeFi := []domain.DeFiProtocol{}
	if protocols.OK() {
		input.Protocols = protocols.Value
		topDeFi = append(topDeFi, window(protocols.Value, digestDeFiSize)...)
	}

	signals := BuildSignals(input, s.cfg.Thresholds)
	s.signals.RecordSignals(signals)
	span.SetAttributes(attribute.Int("digest.signals", len(signals)))

	return domain.Digest{
		Timestamp:     s.now().UTC(),
		MarketContext: mc,
		AlphaSignals:  signals,
		Trending:      topTrending,
		TopDeFi:       topDeFi,
		Disclaimer:    Disclaimer,
	}
}

// SentimentIndex returns the current reading, up to a week of history and an
// interpretation. A failed fetch yields the neutral default and no history.
func (s *Service) SentimentIndex(ctx context.Context) domain.SentimentReport {
	ctx, span := s.tracer.Start(context.WithoutCancel(ctx), "marketintel.sentiment-index")
	defer span.End()

	history := []domain.SentimentSnapshot{}
	if s.fearGreed != nil {
		res := capture(s.fearGreed.FetchHistory(ctx, sentimentHistoryDays))
		s.warn(provider.SourceFearGreed, res.Err)
		if res.OK() {
			history = append(history, window(res.Value, sentimentHistoryDays)...)
		}
	}
	current := domain.SentimentHistory(history).Latest()

	return domain.SentimentReport{
		Current:        current,
		History:        history,
		Interpretation: Interpret(current.Value, s.cfg.Thresholds),
		Timestamp:      s.now().UTC(),
	}
}

// Trending returns the top trending coins and NFTs.
func (s *Service) Trending(ctx context.Context) domain.TrendingReport {
	ctx, span := s.tracer.Start(context.WithoutCancel(ctx), "marketintel.trending")
	defer span.End()

	report := domain.TrendingReport{
		Coins:     []domain.TrendingAsset{},
		NFTs:      []domain.TrendingNFT{},
		Timestamp: s.now().UTC(),
	}
	if s.coingecko == nil {
		return report
	}
	res := capture(s.coingecko.FetchTrending(ctx))
	s.warn(provider.SourceTrending, res.Err)
	if res.OK() {
		report.Coins = append(report.Coins, window(res.Value.Coins, trendingCoinsSize)...)
		report.NFTs = append(report.NFTs, window(res.Value.NFTs, trendingNFTsSize)...)
	}
	return report
}

// DeFiStats returns the top protocols and the DEX summary with display
// strings alongside the raw TVL.
func (s *Service) DeFiStats(ctx context.Context) domain.DeFiStats {
	ctx, span := s.tracer.Start(context.WithoutCancel(ctx), "marketintel.defi-stats")
	defer span.End()

	stats := domain.DeFiStats{
		Protocols: []domain.DeFiProtocolStat{},
		Timestamp: s.now().UTC(),
	}
	if s.defillama == nil {
		return stats
	}

	protocols := skipped[[]domain.DeFiProtocol]()
	dexVolume := skipped[domain.DexVolumeSummary]()
	var g errgroup.Group
	g.Go(func() error {
		protocols = capture(s.defillama.FetchProtocols(ctx))
		return nil
	})
	g.Go(func() error {
		dexVolume = capture(s.defillama.FetchDexVolume(ctx))
		return nil
	})
	_ = g.Wait()

	s.warn(provider.SourceProtocols, protocols.Err)
	s.warn(provider.SourceDexVolume, dexVolume.Err)

	if protocols.OK() {
		for _, p := range protocols.Value {
			tvl := p.TVL
			stats.Protocols = append(stats.Protocols, domain.DeFiProtocolStat{
				Name:     p.Name,
				Category: p.Category,
				TVL:      formatUSD(&tvl),
				TVLUSD:   p.TVL,
				Change1d: formatPercent(p.Change1d),
				Change7d: formatPercent(p.Change7d),
				Chains:   p.Chains,
			})
		}
	}
	if dexVolume.OK() {
		v := dexVolume.Value
		stats.DexVolume = &domain.DexVolumeStat{
			Total24h:     formatUSD(v.Total24h),
			Change1d:     formatPercent(v.Change1d),
			Change7d:     formatPercent(v.Change7d),
			TotalAllTime: formatUSD(v.TotalAllTime),
		}
	}
	return stats
}

// TokenIntel looks up one token. Unlike the other operations its failure is
// the whole result; callers turn it into a payload with LookupFailure.
func (s *Service) TokenIntel(ctx context.Context, tokenID string) (domain.TokenIntel, error) {
	ctx, span := s.tracer.Start(context.WithoutCancel(ctx), "marketintel.token-intel")
	defer span.End()
	span.SetAttributes(attribute.String("token.id", tokenID))

	if s.coingecko == nil {
		return domain.TokenIntel{}, &provider.UpstreamError{Source: provider.SourceToken, Err: errors.New("token source not configured")}
	}
	intel, err := s.coingecko.FetchToken(ctx, tokenID)
	if err != nil {
		span.RecordError(err)
		if !provider.IsNotFound(err) {
			s.warn(provider.SourceToken, err)
		}
		return domain.TokenIntel{}, err
	}
	return intel, nil
}

// LookupFailure builds the token-intel failure payload, echoing the id the
// caller asked for.
func LookupFailure(tokenID string, err error) domain.TokenLookupFailure {
	hint := tokenUnavailableHint
	if provider.IsNotFound(err) {
		hint = tokenNotFoundHint
	}
	msg := "token lookup failed"
	if err != nil {
		msg = err.Error()
	}
	return domain.TokenLookupFailure{Error: msg, TokenID: tokenID, Hint: hint}
}

func (s *Service) Health() domain.Health {
	return domain.Health{
		Status:    "ok",
		Agent:     s.cfg.AgentName,
		Version:   s.cfg.AgentVersion,
		Timestamp: s.now().UTC(),
	}
}

func (s *Service) warn(source string, err error) {
	if err == nil || errors.Is(err, errNotRequested) {
		return
	}
	s.logger.Warn("source unavailable", zap.String("source", source), zap.Error(err))
}

func selection(sources []domain.SourceGroup) map[domain.SourceGroup]bool {
	if len(sources) == 0 {
		sources = domain.AllSourceGroups
	}
	out := make(map[domain.SourceGroup]bool, len(sources))
	for _, src := range sources {
		out[src] = true
	}
	return out
}
