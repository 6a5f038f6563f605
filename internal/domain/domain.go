package domain

import "time"

// SourceGroup names a caller-selectable group of upstream feeds for the digest.
type SourceGroup string

const (
	SourceCoinGecko SourceGroup = "coingecko"
	SourceDefiLlama SourceGroup = "defillama"
	SourceFearGreed SourceGroup = "feargreed"
)

// AllSourceGroups is the digest default when the caller omits a selection.
var AllSourceGroups = []SourceGroup{SourceCoinGecko, SourceDefiLlama, SourceFearGreed}

// Entrypoint names as they appear in /entrypoints/{name}/invoke.
const (
	EntrypointPing       = "ping"
	EntrypointFearGreed  = "fear-greed"
	EntrypointDailyAlpha = "daily-alpha"
	EntrypointTrending   = "trending"
	EntrypointDeFiStats  = "defi-stats"
	EntrypointTokenIntel = "token-intel"
)

// Run statuses of the invocation envelope.
const (
	RunSucceeded = "succeeded"
	RunFailed    = "failed"
)

type SignalType string

const (
	SignalSentiment SignalType = "sentiment"
	SignalWhale     SignalType = "whale"
	SignalNarrative SignalType = "narrative"
	SignalProtocol  SignalType = "protocol"
)

type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

const (
	DefaultSentimentValue          = 50
	DefaultSentimentClassification = "Neutral"
)

// SentimentSnapshot is one fear & greed index reading.
type SentimentSnapshot struct {
	Value          int       `json:"value"`
	Classification string    `json:"classification"`
	Timestamp      time.Time `json:"timestamp"`
}

// DefaultSentiment is substituted when the index payload carries no usable row.
func DefaultSentiment() SentimentSnapshot {
	return SentimentSnapshot{
		Value:          DefaultSentimentValue,
		Classification: DefaultSentimentClassification,
	}
}

// SentimentHistory is ordered most-recent-first.
type SentimentHistory []SentimentSnapshot

// Latest returns the newest reading, or the default when the history is empty.
func (h SentimentHistory) Latest() SentimentSnapshot {
	if len(h) == 0 {
		return DefaultSentiment()
	}
	return h[0]
}

// MarketAsset is one priced asset from the market snapshot. Nil numeric
// fields mean the upstream did not report a usable value.
type MarketAsset struct {
	ID               string   `json:"id"`
	Symbol           string   `json:"symbol"`
	Name             string   `json:"name"`
	Price            *float64 `json:"price"`
	Change24h        *float64 `json:"change24h"`
	Change7d         *float64 `json:"change7d"`
	MarketCap        *float64 `json:"marketCap"`
	Rank             *int     `json:"rank"`
	Volume24h        *float64 `json:"volume24h"`
	ATH              *float64 `json:"ath"`
	ATHDate          string   `json:"athDate,omitempty"`
	ATHChangePercent *float64 `json:"athChangePercent"`
}

// TokenIntel is the detailed single-token lookup result.
type TokenIntel struct {
	MarketAsset
	Change30d         *float64 `json:"change30d"`
	CirculatingSupply *float64 `json:"circulatingSupply"`
	TotalSupply       *float64 `json:"totalSupply"`
	MaxSupply         *float64 `json:"maxSupply"`
	Categories        []string `json:"categories"`
	Description       string   `json:"description"`
	Homepage          string   `json:"homepage,omitempty"`
}

type TrendingAsset struct {
	ID        string   `json:"id"`
	Symbol    string   `json:"symbol"`
	Name      string   `json:"name"`
	Rank      *int     `json:"rank"`
	Price     *float64 `json:"price"`
	Change24h *float64 `json:"change24h"`
	MarketCap *float64 `json:"marketCap"`
}

type TrendingNFT struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Symbol         string   `json:"symbol"`
	FloorPrice     string   `json:"floorPrice,omitempty"`
	FloorChange24h *float64 `json:"floorChange24h"`
	NativeCurrency string   `json:"nativeCurrency,omitempty"`
}

// TrendingFeed is the normalized trending-search payload.
type TrendingFeed struct {
	Coins []TrendingAsset
	NFTs  []TrendingNFT
}

type DeFiProtocol struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	TVL      float64  `json:"tvl"`
	Change1d *float64 `json:"change1d"`
	Change7d *float64 `json:"change7d"`
	Chains   []string `json:"chains"`
}

type DexVolumeSummary struct {
	Total24h     *float64 `json:"total24h"`
	Change1d     *float64 `json:"change1d"`
	Change7d     *float64 `json:"change7d"`
	TotalAllTime *float64 `json:"totalAllTime"`
}

// AlphaSignal is one rule-derived observation. Signals are never mutated
// after the engine emits them.
type AlphaSignal struct {
	Type        SignalType `json:"type"`
	Asset       string     `json:"asset,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Confidence  Confidence `json:"confidence"`
	Actionable  bool       `json:"actionable"`
}

type FearGreedReading struct {
	Value          int    `json:"value"`
	Classification string `json:"classification"`
}

// MarketContext summarizes the headline numbers of a digest. Sections whose
// source group was not requested or failed stay nil.
type MarketContext struct {
	FearGreedIndex     *FearGreedReading `json:"fearGreedIndex"`
	BTCPrice           *float64          `json:"btcPrice"`
	BTCChange24h       *float64          `json:"btcChange24h"`
	ETHPrice           *float64          `json:"ethPrice"`
	ETHChange24h       *float64          `json:"ethChange24h"`
	DexVolume24h       *float64          `json:"dexVolume24h"`
	DexVolumeChange24h *float64          `json:"dexVolumeChange24h"`
}

type Digest struct {
	Timestamp     time.Time       `json:"timestamp"`
	MarketContext MarketContext   `json:"marketContext"`
	AlphaSignals  []AlphaSignal   `json:"alphaSignals"`
	Trending      []TrendingAsset `json:"trending"`
	TopDeFi       []DeFiProtocol  `json:"topDeFi"`
	Disclaimer    string          `json:"disclaimer"`
}

type SentimentReport struct {
	Current        SentimentSnapshot   `json:"current"`
	History        []SentimentSnapshot `json:"history"`
	Interpretation string              `json:"interpretation"`
	Timestamp      time.Time           `json:"timestamp"`
}

type TrendingReport struct {
	Coins     []TrendingAsset `json:"coins"`
	NFTs      []TrendingNFT   `json:"nfts"`
	Timestamp time.Time       `json:"timestamp"`
}

type DeFiProtocolStat struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	TVL      string   `json:"tvl"`
	TVLUSD   float64  `json:"tvlUsd"`
	Change1d string   `json:"change1d"`
	Change7d string   `json:"change7d"`
	Chains   []string `json:"chains"`
}

type DexVolumeStat struct {
	Total24h     string `json:"total24h"`
	Change1d     string `json:"change1d"`
	Change7d     string `json:"change7d"`
	TotalAllTime string `json:"totalAllTime"`
}

type DeFiStats struct {
	Protocols []DeFiProtocolStat `json:"protocols"`
	DexVolume *DexVolumeStat     `json:"dexVolume"`
	Timestamp time.Time          `json:"timestamp"`
}

// TokenLookupFailure is the structured token-intel failure payload.
type TokenLookupFailure struct {
	Error   string `json:"error"`
	TokenID string `json:"tokenId"`
	Hint    string `json:"hint"`
}

type Health struct {
	Status    string    `json:"status"`
	Agent     string    `json:"agent"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}
