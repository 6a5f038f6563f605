package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"alpha-digest/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const (
	coingeckoBaseURL = "https://api.coingecko.com/api/v3"

	SourceTrending = "coingecko.trending"
	SourceMarkets  = "coingecko.markets"
	SourceToken    = "coingecko.token"

	marketSnapshotSize = 10
)

// CoinGeckoProvider reads trending, market snapshot and coin detail data
// from the CoinGecko free API.
type CoinGeckoProvider struct {
	upstream
}

func NewCoinGeckoProvider(tracer trace.Tracer, opts ...Option) *CoinGeckoProvider {
	return &CoinGeckoProvider{upstream: newUpstream(tracer, coingeckoBaseURL, opts)}
}

// FetchTrending returns trending coins and NFTs in upstream order.
func (p *CoinGeckoProvider) FetchTrending(ctx context.Context) (domain.TrendingFeed, error) {
	body, err := p.get(ctx, SourceTrending, "/search/trending")
	if err != nil {
		return domain.TrendingFeed{}, err
	}
	return NormalizeTrending(body), nil
}

// FetchMarkets returns the top assets by market cap, largest first.
func (p *CoinGeckoProvider) FetchMarkets(ctx context.Context) ([]domain.MarketAsset, error) {
	path := fmt.Sprintf("/coins/markets?vs_currency=usd&order=market_cap_desc&per_page=%d&page=1&sparkline=false&price_change_percentage=24h,7d",
		marketSnapshotSize)
	body, err := p.get(ctx, SourceMarkets, path)
	if err != nil {
		return nil, err
	}
	return NormalizeMarkets(body), nil
}

// FetchToken looks up one asset by its CoinGecko id. An unknown id yields
// *NotFoundError; any other failure is an *UpstreamError.
func (p *CoinGeckoProvider) FetchToken(ctx context.Context, tokenID string) (domain.TokenIntel, error) {
	id := strings.ToLower(strings.TrimSpace(tokenID))
	if id == "" {
		return domain.TokenIntel{}, &NotFoundError{TokenID: tokenID}
	}

	path := "/coins/" + url.PathEscape(id) +
		"?localization=false&tickers=false&market_data=true&community_data=false&developer_data=false&sparkline=false"
	body, err := p.get(ctx, SourceToken, path)
	if err != nil {
		var ue *UpstreamError
		if errors.As(err, &ue) && ue.StatusCode == http.StatusNotFound {
			return domain.TokenIntel{}, &NotFoundError{TokenID: tokenID}
		}
		return domain.TokenIntel{}, err
	}
	return NormalizeToken(body), nil
}
