package eligibility

import (
	"github.com/vijay-prabhu/foerdercheck/internal/profile"
	"github.com/vijay-prabhu/foerdercheck/internal/program"
)

// IncomeCeilingSatisfied reports whether the profile's income is within the ceiling.
// The ceiling is the single-person maximum, the couple maximum for households of
// two or more, plus the per-member amount for every member beyond two.
func IncomeCeilingSatisfied(spec *program.IncomeCeiling, p profile.EvaluationProfile) bool {
	if spec == nil {
		return true
	}

	ceiling := valueOr(spec.SinglePersonMax, 0)
	if p.HouseholdSize >= 2 && spec.CoupleMax != nil {
		ceiling = *spec.CoupleMax
	}
	if p.HouseholdSize > 2 {
		ceiling += float64(p.HouseholdSize-2) * valueOr(spec.PerExtraMemberAmount, 0)
	}

	return p.MonthlyNetIncome <= ceiling
}

// FamilyCriteriaSatisfied reports whether the household composition fits
func FamilyCriteriaSatisfied(spec *program.FamilyCriteria, p profile.EvaluationProfile) bool {
	if spec == nil {
		return true
	}
	if spec.MinChildren != nil && p.ChildrenCount < *spec.MinChildren {
		return false
	}
	if spec.MaxChildren != nil && p.ChildrenCount > *spec.MaxChildren {
		return false
	}
	if spec.OnlySingleParent && p.FamilyStatus != profile.FamilyStatusSingleParent {
		return false
	}
	return true
}

// HousingCriteriaSatisfied reports whether the housing situation fits
func HousingCriteriaSatisfied(spec *program.HousingCriteria, p profile.EvaluationProfile) bool {
	if spec == nil {
		return true
	}
	if spec.OnlyRenters && !p.IsRenter {
		return false
	}
	if spec.OnlyOwners && p.IsRenter {
		return false
	}
	if spec.MaxRent != nil && p.ColdRent > *spec.MaxRent {
		return false
	}
	return true
}

// missingIncomeData lists the raw fields the income check needs but lacks
func missingIncomeData(s *profile.Situation) []string {
	if s.MonthlyNetIncome == nil {
		return []string{profile.FieldMonthlyNetIncome}
	}
	return nil
}

// missingFamilyData lists the raw fields the family check needs but lacks.
// The marital status only matters for single-parent programs, and a known
// household size can stand in for it.
func missingFamilyData(spec *program.FamilyCriteria, s *profile.Situation) []string {
	var missing []string
	if s.ChildrenCount == nil {
		missing = append(missing, profile.FieldChildrenCount)
	}
	if spec.OnlySingleParent && s.FamilyStatus == nil && s.HouseholdSize == nil {
		missing = append(missing, profile.FieldFamilyStatus)
	}
	return missing
}

// missingHousingData lists the raw fields the housing check needs but lacks
func missingHousingData(spec *program.HousingCriteria, s *profile.Situation) []string {
	var missing []string
	if s.HousingType == nil {
		missing = append(missing, profile.FieldHousingType)
	}
	if spec.MaxRent != nil && s.ColdRent == nil {
		missing = append(missing, profile.FieldColdRent)
	}
	return missing
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
