package provider

import (
	"context"
	"fmt"

	"alpha-digest/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const (
	fearGreedBaseURL = "https://api.alternative.me"

	SourceFearGreed = "feargreed"
)

// FearGreedProvider reads the alternative.me crypto fear & greed index.
type FearGreedProvider struct {
	upstream
}

func NewFearGreedProvider(tracer trace.Tracer, opts ...Option) *FearGreedProvider {
	return &FearGreedProvider{upstream: newUpstream(tracer, fearGreedBaseURL, opts)}
}

// FetchLatest returns the current reading. A payload without rows yields the
// 50/Neutral default rather than an error.
func (p *FearGreedProvider) FetchLatest(ctx context.Context) (domain.SentimentSnapshot, error) {
	body, err := p.get(ctx, SourceFearGreed, "/fng/?limit=1")
	if err != nil {
		return domain.SentimentSnapshot{}, err
	}
	return NormalizeSentiment(body), nil
}

// FetchHistory returns up to limit daily readings, most-recent-first.
func (p *FearGreedProvider) FetchHistory(ctx context.Context, limit int) (domain.SentimentHistory, error) {
	if limit <= 0 {
		limit = 1
	}
	body, err := p.get(ctx, SourceFearGreed, fmt.Sprintf("/fng/?limit=%d", limit))
	if err != nil {
		return nil, err
	}
	history := NormalizeSentimentHistory(body)
	if len(history) > limit {
		history = history[:limit]
	}
	return history, nil
}
