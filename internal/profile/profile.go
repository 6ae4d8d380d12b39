package profile

import "strings"

// Raw field names as shown to users when data is missing
const (
	FieldMonthlyNetIncome = "Monatliches Nettoeinkommen"
	FieldChildrenCount    = "Anzahl Kinder"
	FieldFamilyStatus     = "Familienstand"
	FieldHousingType      = "Wohnart"
	FieldColdRent         = "Monatliche Kaltmiete"
)

// HousingRent is the housing type value that marks a renter
const HousingRent = "miete"

// Raw is a user record as supplied by a profile source. Every field is optional.
type Raw struct {
	Age       *int       `json:"age,omitempty" toml:"age,omitempty"`
	Situation *Situation `json:"lebenssituation,omitempty" toml:"lebenssituation,omitempty"`
}

// Situation is the life-situation part of a user record
type Situation struct {
	FamilyStatus     *string  `json:"familienstand,omitempty" toml:"familienstand,omitempty"`
	ChildrenCount    *int     `json:"kinder_anzahl,omitempty" toml:"kinder_anzahl,omitempty"`
	HouseholdSize    *int     `json:"haushaltsmitglieder_anzahl,omitempty" toml:"haushaltsmitglieder_anzahl,omitempty"`
	MonthlyNetIncome *float64 `json:"monatliches_nettoeinkommen,omitempty" toml:"monatliches_nettoeinkommen,omitempty"`
	HousingType      *string  `json:"wohnart,omitempty" toml:"wohnart,omitempty"`
	ColdRent         *float64 `json:"monatliche_miete_kalt,omitempty" toml:"monatliche_miete_kalt,omitempty"`
	AdditionalCosts  *float64 `json:"monatliche_nebenkosten,omitempty" toml:"monatliche_nebenkosten,omitempty"`
}

// EvaluationProfile is the canonical, derived view of a user record.
// It is recomputed on every evaluation and never stored.
type EvaluationProfile struct {
	FamilyStatus     FamilyStatus `json:"family_status"`
	IncomeClass      IncomeClass  `json:"income_class"`
	AgeClass         AgeClass     `json:"age_class"`
	HasChildren      bool         `json:"has_children"`
	ChildrenCount    int          `json:"children_count"`
	IsRenter         bool         `json:"is_renter"`
	MonthlyNetIncome float64      `json:"monthly_net_income"`
	ColdRent         float64      `json:"cold_rent"`
	HouseholdSize    int          `json:"household_size"`
}

// Normalize maps a raw user record to an EvaluationProfile. It never fails:
// absent fields fall back to 0, false, a household of one, or the
// documented classifier defaults.
func Normalize(raw *Raw) EvaluationProfile {
	s := raw.LifeSituation()

	children := max(intOr(s.ChildrenCount, 0), 0)
	household := max(intOr(s.HouseholdSize, 1), 1)

	var age *int
	if raw != nil {
		age = raw.Age
	}

	return EvaluationProfile{
		FamilyStatus:     ClassifyFamilyStatus(s),
		IncomeClass:      ClassifyIncome(s.MonthlyNetIncome),
		AgeClass:         ClassifyAge(age),
		HasChildren:      children > 0,
		ChildrenCount:    children,
		IsRenter:         isRenter(s.HousingType),
		MonthlyNetIncome: max(floatOr(s.MonthlyNetIncome, 0), 0),
		ColdRent:         max(floatOr(s.ColdRent, 0), 0),
		HouseholdSize:    household,
	}
}

// LifeSituation returns the life situation of r, or an empty one. Never nil.
func (r *Raw) LifeSituation() *Situation {
	if r == nil || r.Situation == nil {
		return &Situation{}
	}
	return r.Situation
}

func isRenter(housing *string) bool {
	if housing == nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(*housing)) {
	case HousingRent, "rent", "renter":
		return true
	}
	return false
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// Int returns a pointer to v
func Int(v int) *int { return &v }

// Float returns a pointer to v
func Float(v float64) *float64 { return &v }

// String returns a pointer to v
func String(v string) *string { return &v }
