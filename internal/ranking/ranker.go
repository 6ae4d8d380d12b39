// Package ranking scores benefit programs by how relevant they are to a profile.
package ranking

import (
	"slices"

	"github.com/vijay-prabhu/foerdercheck/internal/config"
	"github.com/vijay-prabhu/foerdercheck/internal/eligibility"
	"github.com/vijay-prabhu/foerdercheck/internal/locale"
	"github.com/vijay-prabhu/foerdercheck/internal/profile"
	"github.com/vijay-prabhu/foerdercheck/internal/program"
)

// neutralCriteriaScore is used for programs that declare no criteria
const neutralCriteriaScore = 0.5

// SubScores are the components of a relevance score.
// TargetGroup is nil when the program declares no target groups.
type SubScores struct {
	Priority    float64  `json:"priority"`
	Category    float64  `json:"category"`
	TargetGroup *float64 `json:"target_group,omitempty"`
	Criteria    float64  `json:"criteria"`
}

// Matching reports per criterion family whether the profile fits.
// Undeclared families always fit.
type Matching struct {
	IncomeFits  bool `json:"income_fits"`
	FamilyFits  bool `json:"family_fits"`
	HousingFits bool `json:"housing_fits"`
}

// ScoredProgram is a recommendation
type ScoredProgram struct {
	Program        program.Program `json:"program"`
	RelevanceScore float64         `json:"relevance_score"`
	SubScores      SubScores       `json:"sub_scores"`
	Matching       Matching        `json:"matching"`
	Flags          RationaleFlags  `json:"rationale_flags"`
	Rationale      string          `json:"rationale"`
	Likelihood     string          `json:"likelihood"`
}

// Ranker scores and orders programs for a profile. It holds only read-only
// configuration and is safe for concurrent use.
type Ranker struct {
	minScore        float64
	maxResults      int
	defaultPriority int
	matrix          Matrix
	formatter       Formatter
}

// Option configures a Ranker
type Option func(*Ranker)

// WithMatrix replaces the weighting matrix
func WithMatrix(m Matrix) Option {
	return func(r *Ranker) {
		r.matrix = m
	}
}

// WithFormatter replaces the rationale formatter
func WithFormatter(f Formatter) Option {
	return func(r *Ranker) {
		if f != nil {
			r.formatter = f
		}
	}
}

// WithMessages renders rationales in the language of m
func WithMessages(m *locale.Messages) Option {
	return WithFormatter(NewLocaleFormatter(m))
}

// New creates a Ranker from ranking configuration. The weighting matrix
// defaults to the configured weights, or the built-in ones if those are invalid.
func New(cfg config.RankingConfig, opts ...Option) *Ranker {
	matrix, err := NewMatrix(cfg.Weights)
	if err != nil || len(cfg.Weights.FamilyStatus)+len(cfg.Weights.IncomeClass)+len(cfg.Weights.AgeGroup) == 0 {
		matrix = DefaultMatrix()
	}

	r := &Ranker{
		minScore:        cfg.MinScore,
		maxResults:      cfg.MaxResults,
		defaultPriority: cfg.DefaultPriority,
		matrix:          matrix,
		formatter:       NewLocaleFormatter(nil),
	}
	if r.maxResults <= 0 {
		r.maxResults = config.Default().Ranking.MaxResults
	}

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rank scores every program, keeps those strictly above the minimum score,
// and returns at most maxResults of them ordered by descending score.
// maxResults <= 0 uses the configured default.
func (r *Ranker) Rank(p profile.EvaluationProfile, programs []program.Program, maxResults int) []ScoredProgram {
	if maxResults <= 0 {
		maxResults = r.maxResults
	}

	scored := make([]ScoredProgram, 0, len(programs))
	for i := range programs {
		sp := r.Score(p, &programs[i])
		if sp.RelevanceScore > r.minScore {
			scored = append(scored, sp)
		}
	}

	slices.SortStableFunc(scored, func(a, b ScoredProgram) int {
		switch {
		case a.RelevanceScore > b.RelevanceScore:
			return -1
		case a.RelevanceScore < b.RelevanceScore:
			return 1
		default:
			return 0
		}
	})

	if len(scored) > maxResults {
		scored = scored[:maxResults]
	}
	return scored
}

// Score computes the relevance of one program without filtering
func (r *Ranker) Score(p profile.EvaluationProfile, prog *program.Program) ScoredProgram {
	criteria := prog.DeclaredCriteria()
	priority := prog.EffectivePriority(r.defaultPriority)

	matching := Matching{
		IncomeFits:  eligibility.IncomeCeilingSatisfied(criteria.Income, p),
		FamilyFits:  eligibility.FamilyCriteriaSatisfied(criteria.Family, p),
		HousingFits: eligibility.HousingCriteriaSatisfied(criteria.Housing, p),
	}

	sub := SubScores{
		Priority: clamp(float64(priority) / 10),
		Category: r.matrix.CategoryScore(p, prog.Category),
		Criteria: criteriaScore(criteria, matching),
	}

	total := sub.Priority + sub.Category + sub.Criteria
	count := 3
	if tg, ok := targetGroupScore(prog.TargetGroups, p); ok {
		sub.TargetGroup = &tg
		total += tg
		count++
	}
	score := clamp(total / float64(count))

	flags := RationaleFlags{
		IncomeFits:         criteria.Income != nil && matching.IncomeFits,
		FamilyWithChildren: p.HasChildren && prog.Category == program.CategoryFamily,
		LowIncome:          p.IncomeClass == profile.IncomeLow,
		HighPriority:       priority >= HighPriorityFrom,
	}
	if flags.FamilyWithChildren {
		flags.ChildrenCount = p.ChildrenCount
	}

	return ScoredProgram{
		Program:        *prog,
		RelevanceScore: score,
		SubScores:      sub,
		Matching:       matching,
		Flags:          flags,
		Rationale:      r.formatter.Format(flags),
		Likelihood:     Likelihood(score),
	}
}

// criteriaScore is the fraction of declared criterion families that fit
func criteriaScore(c *program.Criteria, m Matching) float64 {
	var declared, passed int
	for _, check := range []struct {
		declared bool
		fits     bool
	}{
		{c.Income != nil, m.IncomeFits},
		{c.Family != nil, m.FamilyFits},
		{c.Housing != nil, m.HousingFits},
	} {
		if !check.declared {
			continue
		}
		declared++
		if check.fits {
			passed++
		}
	}
	if declared == 0 {
		return neutralCriteriaScore
	}
	return float64(passed) / float64(declared)
}

func clamp(v float64) float64 {
	return min(max(v, 0), 1)
}
