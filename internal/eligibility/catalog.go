package eligibility

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/vijay-prabhu/foerdercheck/internal/logger"
	"github.com/vijay-prabhu/foerdercheck/internal/profile"
	"github.com/vijay-prabhu/foerdercheck/internal/program"
)

// ProgramResult pairs a verdict with the identifying data of its program
type ProgramResult struct {
	ID       string           `json:"id"`
	Type     string           `json:"typ,omitempty"`
	Title    string           `json:"titel"`
	Category program.Category `json:"kategorie,omitempty"`
	Priority int              `json:"prioritaet"`
	Verdict  Verdict          `json:"eligibility"`
}

// EvaluateAll evaluates every program of a catalog against one user record.
// Results keep catalog order. A program whose evaluation fails yields a
// degraded ineligible result instead of aborting the batch.
func (e *Evaluator) EvaluateAll(programs []program.Program, raw *profile.Raw) []ProgramResult {
	results := make([]ProgramResult, 0, len(programs))
	for i := range programs {
		results = append(results, e.evaluateItem(&programs[i], raw))
	}
	return results
}

func (e *Evaluator) evaluateItem(p *program.Program, raw *profile.Raw) (result ProgramResult) {
	result = ProgramResult{
		ID:       p.ID,
		Type:     p.Type,
		Title:    p.DisplayTitle(),
		Category: p.Category,
		Priority: p.EffectivePriority(0),
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("program evaluation failed",
				zap.String(logger.FieldProgramID, p.ID),
				zap.String(logger.FieldProgram, logger.Truncate(result.Title, 60)),
				zap.Error(fmt.Errorf("%v", r)),
			)
			e.metrics.IncrementItemFailure()
			e.metrics.IncrementVerdict(string(Ineligible))
			result.Verdict = e.failed()
		}
	}()

	result.Verdict = e.evaluate(p, raw)
	return result
}

// SortResults orders results eligible-first, then by descending priority.
// Ties keep their catalog order.
func SortResults(results []ProgramResult) {
	slices.SortStableFunc(results, func(a, b ProgramResult) int {
		ea, eb := a.Verdict.IsEligible(), b.Verdict.IsEligible()
		if ea != eb {
			if ea {
				return -1
			}
			return 1
		}
		return b.Priority - a.Priority
	})
}

// Stats summarizes a batch of results
type Stats struct {
	Total          int            `json:"total"`
	Eligible       int            `json:"eligible"`
	Ineligible     int            `json:"ineligible"`
	Indeterminate  int            `json:"indeterminate"`
	MonthlyAmount  float64        `json:"eligible_monthly_amount"`
	MissingData    map[string]int `json:"missing_data,omitempty"`
	MeanConfidence float64        `json:"mean_confidence"`
}

// GetStats counts results by status and tallies the missing fields
func GetStats(results []ProgramResult) Stats {
	stats := Stats{Total: len(results)}
	var confidenceSum float64

	for _, r := range results {
		switch r.Verdict.Eligible {
		case Eligible:
			stats.Eligible++
			stats.MonthlyAmount += r.Verdict.Amount
		case Ineligible:
			stats.Ineligible++
		case Indeterminate:
			stats.Indeterminate++
		}
		confidenceSum += r.Verdict.Confidence

		for _, field := range r.Verdict.MissingData {
			if stats.MissingData == nil {
				stats.MissingData = make(map[string]int)
			}
			stats.MissingData[field]++
		}
	}

	if stats.Total > 0 {
		stats.MeanConfidence = confidenceSum / float64(stats.Total)
	}
	return stats
}

// FilterByStatus returns the results with the given status
func FilterByStatus(results []ProgramResult, status Status) []ProgramResult {
	var filtered []ProgramResult
	for _, r := range results {
		if r.Verdict.Eligible == status {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
