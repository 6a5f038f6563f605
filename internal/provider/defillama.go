package provider

import (
	"context"

	"alpha-digest/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const (
	defillamaBaseURL = "https://api.llama.fi"

	SourceProtocols = "defillama.protocols"
	SourceDexVolume = "defillama.dexs"

	// The full protocol list is several megabytes.
	protocolListMaxBody = 32 << 20
)

// DefiLlamaProvider reads protocol TVL and DEX volume from DefiLlama.
type DefiLlamaProvider struct {
	upstream
}

func NewDefiLlamaProvider(tracer trace.Tracer, opts ...Option) *DefiLlamaProvider {
	p := &DefiLlamaProvider{upstream: newUpstream(tracer, defillamaBaseURL, opts)}
	p.maxBody = protocolListMaxBody
	return p
}

// FetchProtocols returns the ten largest protocols by TVL.
func (p *DefiLlamaProvider) FetchProtocols(ctx context.Context) ([]domain.DeFiProtocol, error) {
	body, err := p.get(ctx, SourceProtocols, "/protocols")
	if err != nil {
		return nil, err
	}
	return NormalizeProtocols(body), nil
}

// FetchDexVolume returns the aggregate DEX volume summary.
func (p *DefiLlamaProvider) FetchDexVolume(ctx context.Context) (domain.DexVolumeSummary, error) {
	body, err := p.get(ctx, SourceDexVolume, "/overview/dexs?excludeTotalDataChart=true&excludeTotalDataChartBreakdown=true")
	if err != nil {
		return domain.DexVolumeSummary{}, err
	}
	return NormalizeDexVolume(body), nil
}
