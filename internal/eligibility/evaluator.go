package eligibility

import (
	"go.uber.org/zap"

	"github.com/vijay-prabhu/foerdercheck/internal/locale"
	"github.com/vijay-prabhu/foerdercheck/internal/logger"
	"github.com/vijay-prabhu/foerdercheck/internal/metrics"
	"github.com/vijay-prabhu/foerdercheck/internal/profile"
	"github.com/vijay-prabhu/foerdercheck/internal/program"
)

// Evaluator checks programs against user profiles. It holds no per-call
// state and is safe for concurrent use.
type Evaluator struct {
	messages *locale.Messages
	logger   *zap.Logger
	metrics  *metrics.Metrics

	// evaluate is the per-program step used by EvaluateAll
	evaluate func(*program.Program, *profile.Raw) Verdict
}

// Option configures an Evaluator
type Option func(*Evaluator)

// WithMessages sets the language of reasons (German by default)
func WithMessages(m *locale.Messages) Option {
	return func(e *Evaluator) {
		if m != nil {
			e.messages = m
		}
	}
}

// WithLogger sets the logger for isolated failures
func WithLogger(l *zap.Logger) Option {
	return func(e *Evaluator) {
		e.logger = logger.OrNop(l)
	}
}

// WithMetrics sets the metrics sink
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Evaluator) {
		e.metrics = m
	}
}

// NewEvaluator creates an Evaluator
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{
		messages: locale.Default(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.evaluate = e.Evaluate
	return e
}

// familyCheck is the raw material for one declared criterion family
type familyCheck struct {
	family    Family
	satisfied bool
	missing   []string
	unknownID string
	passID    string
	failID    string
}

// Evaluate checks one program against a raw user record. Only the criterion
// families the program declares are checked; a family whose required raw
// input is absent is unknown rather than failed.
func (e *Evaluator) Evaluate(p *program.Program, raw *profile.Raw) Verdict {
	prof := profile.Normalize(raw)
	situation := raw.LifeSituation()
	criteria := p.DeclaredCriteria()

	var checks []familyCheck
	if criteria.Income != nil {
		checks = append(checks, familyCheck{
			family:    FamilyIncome,
			satisfied: IncomeCeilingSatisfied(criteria.Income, prof),
			missing:   missingIncomeData(situation),
			unknownID: locale.IncomeUnknown,
			passID:    locale.IncomePassed,
			failID:    locale.IncomeExceeded,
		})
	}
	if criteria.Family != nil {
		checks = append(checks, familyCheck{
			family:    FamilyFamily,
			satisfied: FamilyCriteriaSatisfied(criteria.Family, prof),
			missing:   missingFamilyData(criteria.Family, situation),
			unknownID: locale.FamilyUnknown,
			passID:    locale.FamilyPassed,
			failID:    locale.FamilyFailed,
		})
	}
	if criteria.Housing != nil {
		checks = append(checks, familyCheck{
			family:    FamilyHousing,
			satisfied: HousingCriteriaSatisfied(criteria.Housing, prof),
			missing:   missingHousingData(criteria.Housing, situation),
			unknownID: locale.HousingUnknown,
			passID:    locale.HousingPassed,
			failID:    locale.HousingFailed,
		})
	}

	var passes, fails, unknowns int
	var missing []string
	seen := make(map[string]bool)
	details := make([]Detail, 0, len(checks))

	for _, c := range checks {
		d := Detail{Family: c.family}
		switch {
		case len(c.missing) > 0:
			unknowns++
			d.Outcome = OutcomeUnknown
			d.Reason = e.messages.Text(c.unknownID)
			d.MissingData = c.missing
			for _, field := range c.missing {
				if !seen[field] {
					seen[field] = true
					missing = append(missing, field)
				}
			}
		case c.satisfied:
			passes++
			d.Outcome = OutcomePass
			d.Reason = e.messages.Text(c.passID)
		default:
			fails++
			d.Outcome = OutcomeFail
			d.Reason = e.messages.Text(c.failID)
		}
		details = append(details, d)
	}

	status := overall(fails, unknowns)
	v := Verdict{
		Eligible:    status,
		Confidence:  confidence(passes, fails, len(checks)),
		Amount:      p.MonthlyBenefit(),
		Reason:      e.statusReason(status),
		Details:     details,
		MissingData: missing,
	}

	e.metrics.IncrementVerdict(string(status))
	return v
}

func (e *Evaluator) statusReason(s Status) string {
	switch s {
	case Eligible:
		return e.messages.Text(locale.VerdictEligible)
	case Ineligible:
		return e.messages.Text(locale.VerdictIneligible)
	default:
		return e.messages.Text(locale.VerdictIndeterminate)
	}
}

// failed is the degraded verdict for a program whose evaluation broke
func (e *Evaluator) failed() Verdict {
	return Verdict{
		Eligible:   Ineligible,
		Confidence: 0,
		Reason:     e.messages.Text(locale.TechnicalError),
		Details:    []Detail{},
	}
}
