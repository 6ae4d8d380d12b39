// Package advisor connects a catalog source to the eligibility evaluator and
// the relevance ranker.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vijay-prabhu/foerdercheck/internal/catalog"
	"github.com/vijay-prabhu/foerdercheck/internal/eligibility"
	"github.com/vijay-prabhu/foerdercheck/internal/logger"
	"github.com/vijay-prabhu/foerdercheck/internal/metrics"
	"github.com/vijay-prabhu/foerdercheck/internal/profile"
	"github.com/vijay-prabhu/foerdercheck/internal/program"
	"github.com/vijay-prabhu/foerdercheck/internal/ranking"
)

// ErrProgramNotFound is returned when a program id is not in the catalog
var ErrProgramNotFound = errors.New("program not found")

// Operations reported when the catalog source fails
const (
	OpEvaluate  = "evaluate"
	OpRecommend = "recommend"
	OpBatch     = "batch"
)

// Advisor answers eligibility and recommendation requests for user records
type Advisor struct {
	source          catalog.Source
	evaluator       *eligibility.Evaluator
	ranker          *ranking.Ranker
	logger          *zap.Logger
	metrics         *metrics.Metrics
	onlyAutomatable bool
}

// Option configures an Advisor
type Option func(*Advisor)

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(a *Advisor) {
		a.logger = logger.OrNop(l)
	}
}

// WithMetrics sets the metrics sink
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Advisor) {
		a.metrics = m
	}
}

// WithOnlyAutomatable restricts recommendations to programs with an automated application
func WithOnlyAutomatable(only bool) Option {
	return func(a *Advisor) {
		a.onlyAutomatable = only
	}
}

// New creates an Advisor
func New(source catalog.Source, evaluator *eligibility.Evaluator, ranker *ranking.Ranker, opts ...Option) *Advisor {
	a := &Advisor{
		source:    source,
		evaluator: evaluator,
		ranker:    ranker,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// EvaluateCatalog evaluates all active programs against raw, eligible first.
// A failing catalog source yields an empty list.
func (a *Advisor) EvaluateCatalog(ctx context.Context, raw *profile.Raw) []eligibility.ProgramResult {
	start := time.Now()
	defer func() {
		a.metrics.ObserveEvaluateLatency(time.Since(start))
	}()

	programs, err := a.source.Programs(ctx, catalog.Query{ActiveOnly: true})
	if err != nil {
		a.catalogFailed(OpEvaluate, err)
		return []eligibility.ProgramResult{}
	}

	results := a.evaluator.EvaluateAll(programs, raw)
	eligibility.SortResults(results)

	a.logger.Debug("catalog evaluated", zap.Int(logger.FieldCount, len(results)))
	return results
}

// Recommend ranks active programs for raw and returns at most maxResults.
// maxResults <= 0 uses the configured default. A failing catalog source
// yields an empty list.
func (a *Advisor) Recommend(ctx context.Context, raw *profile.Raw, maxResults int) []ranking.ScoredProgram {
	programs, err := a.source.Programs(ctx, catalog.Query{
		ActiveOnly:      true,
		AutomatableOnly: a.onlyAutomatable,
	})
	if err != nil {
		a.catalogFailed(OpRecommend, err)
		return []ranking.ScoredProgram{}
	}

	scored := a.ranker.Rank(profile.Normalize(raw), programs, maxResults)
	a.metrics.AddRecommendations(len(scored))

	a.logger.Debug("programs ranked",
		zap.Int("candidates", len(programs)),
		zap.Int(logger.FieldCount, len(scored)),
	)
	return scored
}

// Programs returns the catalog programs matching q
func (a *Advisor) Programs(ctx context.Context, q catalog.Query) ([]program.Program, error) {
	programs, err := a.source.Programs(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return programs, nil
}

// Program looks a catalog program up by id
func (a *Advisor) Program(ctx context.Context, id string) (*program.Program, error) {
	programs, err := a.Programs(ctx, catalog.Query{})
	if err != nil {
		return nil, err
	}
	for i := range programs {
		if programs[i].ID == id {
			return &programs[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrProgramNotFound, id)
}

// EvaluateProgram evaluates a single catalog program against raw
func (a *Advisor) EvaluateProgram(ctx context.Context, programID string, raw *profile.Raw) (*eligibility.ProgramResult, error) {
	p, err := a.Program(ctx, programID)
	if err != nil {
		return nil, err
	}
	results := a.evaluator.EvaluateAll([]program.Program{*p}, raw)
	return &results[0], nil
}

// NamedProfile is a user record with an identifier
type NamedProfile struct {
	ID  string
	Raw *profile.Raw
}

// ProfileResult is the catalog evaluation for one user record
type ProfileResult struct {
	ProfileID string                      `json:"profile_id"`
	Results   []eligibility.ProgramResult `json:"results"`
	Stats     eligibility.Stats           `json:"stats"`
}

// EvaluateProfiles evaluates the catalog for many user records in parallel.
// The catalog is fetched once. Results keep the order of profiles. Only
// cancellation of ctx is returned as an error.
func (a *Advisor) EvaluateProfiles(ctx context.Context, profiles []NamedProfile) ([]ProfileResult, error) {
	results := make([]ProfileResult, len(profiles))
	for i, p := range profiles {
		results[i] = ProfileResult{ProfileID: p.ID, Results: []eligibility.ProgramResult{}}
	}

	programs, err := a.source.Programs(ctx, catalog.Query{ActiveOnly: true})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		a.catalogFailed(OpBatch, err)
		return results, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := range profiles {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			evaluated := a.evaluator.EvaluateAll(programs, profiles[i].Raw)
			eligibility.SortResults(evaluated)
			results[i].Results = evaluated
			results[i].Stats = eligibility.GetStats(evaluated)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	a.logger.Info("profiles evaluated",
		zap.Int(logger.FieldCount, len(profiles)),
		zap.Int("programs", len(programs)),
	)
	return results, nil
}

func (a *Advisor) catalogFailed(operation string, err error) {
	a.logger.Error("catalog unavailable",
		zap.String(logger.FieldOperation, operation),
		zap.Error(err),
	)
	a.metrics.IncrementCatalogError(operation)
}
