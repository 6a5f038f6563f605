package provider

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"alpha-digest/internal/domain"

	"github.com/tidwall/gjson"
)

const (
	maxChains         = 5
	maxCategories     = 5
	maxDescription    = 500
	maxProtocols      = 10
	msTimestampCutoff = 1_000_000_000_000
	sentimentMin      = 0
	sentimentMax      = 100
)

// Each schema below lists every optional path read from one upstream record.
// All defaults are applied in this file; callers never see raw JSON.

var sentimentSchema = struct {
	Rows, Value, Classification, Timestamp string
}{
	Rows:           "data",
	Value:          "value",
	Classification: "value_classification",
	Timestamp:      "timestamp",
}

var trendingSchema = struct {
	Coins, NFTs                                           string
	ID, Symbol, Name, Rank, Price, Change24h, MarketCap   string
	NFTID, NFTName, NFTSymbol, Floor, FloorChange, Native string
}{
	Coins:       "coins",
	NFTs:        "nfts",
	ID:          "item.id",
	Symbol:      "item.symbol",
	Name:        "item.name",
	Rank:        "item.market_cap_rank",
	Price:       "item.data.price",
	Change24h:   "item.data.price_change_percentage_24h.usd",
	MarketCap:   "item.data.market_cap",
	NFTID:       "id",
	NFTName:     "name",
	NFTSymbol:   "symbol",
	Floor:       "data.floor_price",
	FloorChange: "data.floor_price_in_usd_24h_percentage_change",
	Native:      "native_currency_symbol",
}

var marketSchema = struct {
	ID, Symbol, Name, Price, Change24h, Change7d, MarketCap, Rank, Volume, ATH, ATHDate, ATHChange string
}{
	ID:        "id",
	Symbol:    "symbol",
	Name:      "name",
	Price:     "current_price",
	Change24h: "price_change_percentage_24h",
	Change7d:  "price_change_percentage_7d_in_currency",
	MarketCap: "market_cap",
	Rank:      "market_cap_rank",
	Volume:    "total_volume",
	ATH:       "ath",
	ATHDate:   "ath_date",
	ATHChange: "ath_change_percentage",
}

var tokenSchema = struct {
	ID, Symbol, Name, Rank                                   string
	Price, Change24h, Change7d, Change30d, MarketCap, Volume string
	ATH, ATHDate, ATHChange, Circulating, Total, Max         string
	Categories, Description, Homepage                        string
}{
	ID:          "id",
	Symbol:      "symbol",
	Name:        "name",
	Rank:        "market_cap_rank",
	Price:       "market_data.current_price.usd",
	Change24h:   "market_data.price_change_percentage_24h",
	Change7d:    "market_data.price_change_percentage_7d",
	Change30d:   "market_data.price_change_percentage_30d",
	MarketCap:   "market_data.market_cap.usd",
	Volume:      "market_data.total_volume.usd",
	ATH:         "market_data.ath.usd",
	ATHDate:     "market_data.ath_date.usd",
	ATHChange:   "market_data.ath_change_percentage.usd",
	Circulating: "market_data.circulating_supply",
	Total:       "market_data.total_supply",
	Max:         "market_data.max_supply",
	Categories:  "categories",
	Description: "description.en",
	Homepage:    "links.homepage.0",
}

var protocolSchema = struct {
	Name, Category, TVL, Change1d, Change7d, Chains string
}{
	Name:     "name",
	Category: "category",
	TVL:      "tvl",
	Change1d: "change_1d",
	Change7d: "change_7d",
	Chains:   "chains",
}

var dexVolumeSchema = struct {
	Total24h, Change1d, Change7d, TotalAllTime string
}{
	Total24h:     "total24h",
	Change1d:     "change_1d",
	Change7d:     "change_7d",
	TotalAllTime: "totalAllTime",
}

// NormalizeSentimentHistory maps a fear & greed payload to readings,
// most-recent-first as the index API returns them.
func NormalizeSentimentHistory(raw []byte) domain.SentimentHistory {
	rows := gjson.GetBytes(raw, sentimentSchema.Rows)
	if !rows.IsArray() {
		return nil
	}
	out := make(domain.SentimentHistory, 0, len(rows.Array()))
	rows.ForEach(func(_, row gjson.Result) bool {
		out = append(out, normalizeSentimentRow(row))
		return true
	})
	return out
}

// NormalizeSentiment returns the latest reading, falling back to 50/Neutral.
func NormalizeSentiment(raw []byte) domain.SentimentSnapshot {
	return NormalizeSentimentHistory(raw).Latest()
}

func normalizeSentimentRow(row gjson.Result) domain.SentimentSnapshot {
	s := domain.DefaultSentiment()
	// Readings outside the index range are treated as absent.
	if v := number(row.Get(sentimentSchema.Value)); v != nil && *v >= sentimentMin && *v <= sentimentMax {
		s.Value = int(math.Round(*v))
	}
	if c := text(row.Get(sentimentSchema.Classification)); c != "" {
		s.Classification = c
	}
	if ts := number(row.Get(sentimentSchema.Timestamp)); ts != nil {
		sec := int64(*ts)
		if sec > msTimestampCutoff {
			sec = sec / 1000
		}
		s.Timestamp = time.Unix(sec, 0).UTC()
	}
	return s
}

// NormalizeTrending maps a /search/trending payload, preserving upstream order.
func NormalizeTrending(raw []byte) domain.TrendingFeed {
	var feed domain.TrendingFeed
	doc := gjson.ParseBytes(raw)
	arrayOf(doc.Get(trendingSchema.Coins)).ForEach(func(_, row gjson.Result) bool {
		feed.Coins = append(feed.Coins, domain.TrendingAsset{
			ID:        text(row.Get(trendingSchema.ID)),
			Symbol:    strings.ToUpper(text(row.Get(trendingSchema.Symbol))),
			Name:      text(row.Get(trendingSchema.Name)),
			Rank:      integer(row.Get(trendingSchema.Rank)),
			Price:     number(row.Get(trendingSchema.Price)),
			Change24h: number(row.Get(trendingSchema.Change24h)),
			MarketCap: number(row.Get(trendingSchema.MarketCap)),
		})
		return true
	})
	arrayOf(doc.Get(trendingSchema.NFTs)).ForEach(func(_, row gjson.Result) bool {
		feed.NFTs = append(feed.NFTs, domain.TrendingNFT{
			ID:             text(row.Get(trendingSchema.NFTID)),
			Name:           text(row.Get(trendingSchema.NFTName)),
			Symbol:         text(row.Get(trendingSchema.NFTSymbol)),
			FloorPrice:     text(row.Get(trendingSchema.Floor)),
			FloorChange24h: number(row.Get(trendingSchema.FloorChange)),
			NativeCurrency: text(row.Get(trendingSchema.Native)),
		})
		return true
	})
	return feed
}

// NormalizeMarkets maps a /coins/markets payload, preserving the upstream
// market-cap ordering.
func NormalizeMarkets(raw []byte) []domain.MarketAsset {
	rows := gjson.ParseBytes(raw)
	if !rows.IsArray() {
		return nil
	}
	out := make([]domain.MarketAsset, 0, len(rows.Array()))
	rows.ForEach(func(_, row gjson.Result) bool {
		out = append(out, domain.MarketAsset{
			ID:               text(row.Get(marketSchema.ID)),
			Symbol:           strings.ToUpper(text(row.Get(marketSchema.Symbol))),
			Name:             text(row.Get(marketSchema.Name)),
			Price:            number(row.Get(marketSchema.Price)),
			Change24h:        number(row.Get(marketSchema.Change24h)),
			Change7d:         number(row.Get(marketSchema.Change7d)),
			MarketCap:        number(row.Get(marketSchema.MarketCap)),
			Rank:             integer(row.Get(marketSchema.Rank)),
			Volume24h:        number(row.Get(marketSchema.Volume)),
			ATH:              number(row.Get(marketSchema.ATH)),
			ATHDate:          text(row.Get(marketSchema.ATHDate)),
			ATHChangePercent: number(row.Get(marketSchema.ATHChange)),
		})
		return true
	})
	return out
}

// NormalizeToken maps a /coins/{id} payload.
func NormalizeToken(raw []byte) domain.TokenIntel {
	doc := gjson.ParseBytes(raw)
	categories := make([]string, 0, maxCategories)
	doc.Get(tokenSchema.Categories).ForEach(func(_, c gjson.Result) bool {
		if v := text(c); v != "" {
			categories = append(categories, v)
		}
		return len(categories) < maxCategories
	})

	return domain.TokenIntel{
		MarketAsset: domain.MarketAsset{
			ID:               text(doc.Get(tokenSchema.ID)),
			Symbol:           strings.ToUpper(text(doc.Get(tokenSchema.Symbol))),
			Name:             text(doc.Get(tokenSchema.Name)),
			Price:            number(doc.Get(tokenSchema.Price)),
			Change24h:        number(doc.Get(tokenSchema.Change24h)),
			Change7d:         number(doc.Get(tokenSchema.Change7d)),
			MarketCap:        number(doc.Get(tokenSchema.MarketCap)),
			Rank:             integer(doc.Get(tokenSchema.Rank)),
			Volume24h:        number(doc.Get(tokenSchema.Volume)),
			ATH:              number(doc.Get(tokenSchema.ATH)),
			ATHDate:          text(doc.Get(tokenSchema.ATHDate)),
			ATHChangePercent: number(doc.Get(tokenSchema.ATHChange)),
		},
		Change30d:         number(doc.Get(tokenSchema.Change30d)),
		CirculatingSupply: number(doc.Get(tokenSchema.Circulating)),
		TotalSupply:       number(doc.Get(tokenSchema.Total)),
		MaxSupply:         number(doc.Get(tokenSchema.Max)),
		Categories:        categories,
		Description:       truncate(text(doc.Get(tokenSchema.Description)), maxDescription),
		Homepage:          text(doc.Get(tokenSchema.Homepage)),
	}
}

// NormalizeProtocols keeps protocols with positive TVL, sorted by TVL
// descending and capped to the top ten.
func NormalizeProtocols(raw []byte) []domain.DeFiProtocol {
	type ranked struct {
		row gjson.Result
		tvl float64
	}
	var candidates []ranked
	arrayOf(gjson.ParseBytes(raw)).ForEach(func(_, row gjson.Result) bool {
		if tvl := number(row.Get(protocolSchema.TVL)); tvl != nil && *tvl > 0 {
			candidates = append(candidates, ranked{row: row, tvl: *tvl})
		}
		return true
	})
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].tvl > candidates[j].tvl })
	if len(candidates) > maxProtocols {
		candidates = candidates[:maxProtocols]
	}

	out := make([]domain.DeFiProtocol, 0, len(candidates))
	for _, c := range candidates {
		chains := make([]string, 0, maxChains)
		c.row.Get(protocolSchema.Chains).ForEach(func(_, ch gjson.Result) bool {
			if v := text(ch); v != "" {
				chains = append(chains, v)
			}
			return len(chains) < maxChains
		})
		out = append(out, domain.DeFiProtocol{
			Name:     text(c.row.Get(protocolSchema.Name)),
			Category: text(c.row.Get(protocolSchema.Category)),
			TVL:      c.tvl,
			Change1d: number(c.row.Get(protocolSchema.Change1d)),
			Change7d: number(c.row.Get(protocolSchema.Change7d)),
			Chains:   chains,
		})
	}
	return out
}

// NormalizeDexVolume maps a /overview/dexs payload.
func NormalizeDexVolume(raw []byte) domain.DexVolumeSummary {
	doc := gjson.ParseBytes(raw)
	return domain.DexVolumeSummary{
		Total24h:     number(doc.Get(dexVolumeSchema.Total24h)),
		Change1d:     number(doc.Get(dexVolumeSchema.Change1d)),
		Change7d:     number(doc.Get(dexVolumeSchema.Change7d)),
		TotalAllTime: number(doc.Get(dexVolumeSchema.TotalAllTime)),
	}
}

// arrayOf yields r only when it is a JSON array, so ForEach never walks an
// object or a scalar by mistake.
func arrayOf(r gjson.Result) gjson.Result {
	if !r.IsArray() {
		return gjson.Result{}
	}
	return r
}

// number reads a JSON number or a numeric string such as "$1,234.5" or "-3%".
// Anything else, including NaN and infinities, is absent.
func number(r gjson.Result) *float64 {
	var v float64
	switch r.Type {
	case gjson.Number:
		v = r.Num
	case gjson.String:
		n, ok := parseFloatString(r.Str)
		if !ok {
			return nil
		}
		v = n
	default:
		return nil
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func integer(r gjson.Result) *int {
	v := number(r)
	if v == nil {
		return nil
	}
	n := int(math.Round(*v))
	return &n
}

func text(r gjson.Result) string {
	if r.Type != gjson.String && r.Type != gjson.Number {
		return ""
	}
	return strings.TrimSpace(r.String())
}

func parseFloatString(v string) (float64, bool) {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "$")
	v = strings.TrimSuffix(v, "%")
	v = strings.ReplaceAll(v, ",", "")
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
