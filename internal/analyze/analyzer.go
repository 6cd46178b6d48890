// Package analyze orchestrates the request pipeline: resolve the input,
// fetch market data, look up holders, generate the risk narrative, assemble
// the report. Stages run sequentially; the first hard failure aborts the
// rest, while the holder lookup and the narrative generator only ever
// degrade.
package analyze

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/yourorg/token-risk-api/internal/breaker"
	"github.com/yourorg/token-risk-api/internal/config"
	"github.com/yourorg/token-risk-api/internal/holders"
	"github.com/yourorg/token-risk-api/internal/market"
	"github.com/yourorg/token-risk-api/internal/model"
	"github.com/yourorg/token-risk-api/internal/otel"
	"github.com/yourorg/token-risk-api/internal/report"
	"github.com/yourorg/token-risk-api/internal/resolve"
	"github.com/yourorg/token-risk-api/internal/risk"
)

// Analyzer wires the pipeline stages together. It holds no per-request
// state, so a single instance serves concurrent requests.
type Analyzer struct {
	cfg       config.Config
	resolver  *resolve.Resolver
	market    *market.Client
	holders   *holders.Client
	risk      *risk.Generator
	assembler report.Assembler
	breaker   *breaker.Breaker
}

// New builds an Analyzer and all its stage clients from the process
// configuration.
func New(cfg config.Config) *Analyzer {
	a := &Analyzer{
		cfg:       cfg,
		resolver:  resolve.New(cfg),
		market:    market.NewClient(cfg),
		holders:   holders.NewClient(cfg),
		risk:      risk.New(cfg),
		assembler: report.Assembler{Persona: cfg.PersonaName},
	}
	if cfg.EnableBreaker {
		a.breaker = breaker.New(cfg.BreakerThreshold, cfg.BreakerCooldown)
	}
	return a
}

// BreakerState exposes the market-data breaker state for status reporting.
// Returns closed when the breaker is disabled.
func (a *Analyzer) BreakerState() breaker.State {
	if a.breaker == nil {
		return breaker.StateClosed
	}
	return a.breaker.CurrentState()
}

// Analyze runs the full pipeline for one caller input.
func (a *Analyzer) Analyze(ctx context.Context, input string) (*model.Report, error) {
	ctx, span := otel.Tracer().Start(ctx, "analyze")
	defer span.End()

	source, err := a.resolver.Resolve(ctx, input)
	if err != nil {
		otel.RecordError(ctx, err)
		return nil, err
	}
	candidate := source.Candidate
	span.SetAttributes(
		attribute.String("token.address", candidate.Address),
		attribute.String("token.chain", string(candidate.Chain)),
	)

	pairs, err := a.fetchPairs(ctx, candidate)
	if err != nil {
		otel.RecordError(ctx, err)
		return nil, err
	}

	best := market.BestPair(pairs)
	facts := market.Facts(best, string(candidate.Chain), candidate.Address)
	if facts.Description == "" {
		facts.Description = source.Description
	}

	// Holder count is chain-specific and strictly best-effort.
	if candidate.Chain == model.ChainSolana {
		facts.Holders = a.holders.Count(ctx, candidate.Address)
	}

	brief := a.risk.Generate(ctx, facts)

	return &model.Report{
		Summary: a.assembler.Summary(facts, brief),
		Risk:    brief,
		Facts:   facts,
	}, nil
}

// fetchPairs wraps the market-data call with the circuit breaker when one is
// configured.
func (a *Analyzer) fetchPairs(ctx context.Context, candidate model.AddressCandidate) ([]market.Pair, error) {
	if a.breaker == nil {
		return a.market.TokenPairs(ctx, string(candidate.Chain), candidate.Address)
	}

	if err := a.breaker.Allow(); err != nil {
		return nil, apperrOpen(err)
	}

	pairs, err := a.market.TokenPairs(ctx, string(candidate.Chain), candidate.Address)
	if err != nil {
		if isUpstream(err) {
			a.breaker.RecordFailure()
		}
		return nil, err
	}

	a.breaker.RecordSuccess()
	return pairs, nil
}
