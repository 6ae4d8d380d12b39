package eligibility

// Status is the tri-state eligibility of a profile for one program
type Status string

const (
	Eligible      Status = "eligible"
	Ineligible    Status = "ineligible"
	Indeterminate Status = "indeterminate"
)

// Family identifies a criterion family
type Family string

const (
	FamilyIncome  Family = "income"
	FamilyFamily  Family = "family"
	FamilyHousing Family = "housing"
)

// Outcome is the result of checking one declared criterion family
type Outcome string

const (
	OutcomePass    Outcome = "pass"
	OutcomeFail    Outcome = "fail"
	OutcomeUnknown Outcome = "unknown"
)

// Verdict is the eligibility of a profile for one program
type Verdict struct {
	Eligible    Status   `json:"eligible"`
	Confidence  float64  `json:"confidence"`  // 0.0-1.0
	Amount      float64  `json:"amount"`      // stated benefit, passed through
	Reason      string   `json:"reason"`      // summary keyed off Eligible
	Details     []Detail `json:"details"`     // one per declared family, in fixed order
	MissingData []string `json:"missing_data,omitempty"`
}

// Detail is the outcome of one declared criterion family
type Detail struct {
	Family      Family   `json:"family"`
	Outcome     Outcome  `json:"outcome"`
	Reason      string   `json:"reason"`
	MissingData []string `json:"missing_data,omitempty"`
}

// IsEligible reports whether the verdict is a definite yes
func (v Verdict) IsEligible() bool {
	return v.Eligible == Eligible
}

// confidence gives full credit per pass, half per unknown and none per fail.
// A program without declared criteria is trivially satisfied.
func confidence(passes, fails, total int) float64 {
	if total == 0 {
		return 1
	}
	c := (float64(passes) + 0.5*float64(total-passes-fails)) / float64(total)
	return max(0, min(1, c))
}

// overall folds per-family counts into the tri-state status
func overall(fails, unknowns int) Status {
	switch {
	case fails > 0:
		return Ineligible
	case unknowns > 0:
		return Indeterminate
	default:
		return Eligible
	}
}
