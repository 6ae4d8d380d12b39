package profile

import "strings"

// FamilyStatus is the derived family-status bucket
type FamilyStatus string

const (
	FamilyStatusSingle       FamilyStatus = "single"
	FamilyStatusMarried      FamilyStatus = "married"
	FamilyStatusDivorced     FamilyStatus = "divorced"
	FamilyStatusSingleParent FamilyStatus = "single_parent"
)

// IncomeClass is the derived income bracket
type IncomeClass string

const (
	IncomeLow    IncomeClass = "low"
	IncomeMedium IncomeClass = "medium"
	IncomeHigh   IncomeClass = "high"
)

// AgeClass is the derived age bracket
type AgeClass string

const (
	AgeYoung  AgeClass = "young"
	AgeMiddle AgeClass = "middle"
	AgeSenior AgeClass = "senior"
)

// Income and age bracket boundaries (lower bound inclusive for the upper bucket)
const (
	MediumIncomeFrom = 1500.0
	HighIncomeFrom   = 3500.0
	MiddleAgeFrom    = 30
	SeniorAgeFrom    = 60
)

// Valid reports whether s is one of the known family statuses
func (s FamilyStatus) Valid() bool {
	switch s {
	case FamilyStatusSingle, FamilyStatusMarried, FamilyStatusDivorced, FamilyStatusSingleParent:
		return true
	}
	return false
}

// Valid reports whether c is one of the known income classes
func (c IncomeClass) Valid() bool {
	switch c {
	case IncomeLow, IncomeMedium, IncomeHigh:
		return true
	}
	return false
}

// Valid reports whether c is one of the known age classes
func (c AgeClass) Valid() bool {
	switch c {
	case AgeYoung, AgeMiddle, AgeSenior:
		return true
	}
	return false
}

// familyStatusAliases maps raw marital-status values (German and English) to buckets
var familyStatusAliases = map[string]FamilyStatus{
	"ledig":           FamilyStatusSingle,
	"single":          FamilyStatusSingle,
	"verheiratet":     FamilyStatusMarried,
	"married":         FamilyStatusMarried,
	"geschieden":      FamilyStatusDivorced,
	"divorced":        FamilyStatusDivorced,
	"alleinerziehend": FamilyStatusSingleParent,
	"single_parent":   FamilyStatusSingleParent,
}

// ParseFamilyStatus maps a raw marital status to a FamilyStatus.
// The second return value is false for unknown values.
func ParseFamilyStatus(raw string) (FamilyStatus, bool) {
	s, ok := familyStatusAliases[strings.ToLower(strings.TrimSpace(raw))]
	return s, ok
}

// ParseIncomeClass parses the canonical income class name
func ParseIncomeClass(raw string) (IncomeClass, bool) {
	c := IncomeClass(strings.ToLower(strings.TrimSpace(raw)))
	return c, c.Valid()
}

// ParseAgeClass parses the canonical age class name
func ParseAgeClass(raw string) (AgeClass, bool) {
	c := AgeClass(strings.ToLower(strings.TrimSpace(raw)))
	return c, c.Valid()
}

// ClassifyIncome buckets a monthly net income.
// A missing income is classified as low: downstream heuristics then lean
// towards showing more potentially relevant programs, not fewer.
func ClassifyIncome(income *float64) IncomeClass {
	if income == nil {
		return IncomeLow
	}
	switch {
	case *income < MediumIncomeFrom:
		return IncomeLow
	case *income < HighIncomeFrom:
		return IncomeMedium
	default:
		return IncomeHigh
	}
}

// ClassifyAge buckets an age in years. A missing age is classified as middle.
func ClassifyAge(age *int) AgeClass {
	if age == nil {
		return AgeMiddle
	}
	switch {
	case *age < MiddleAgeFrom:
		return AgeYoung
	case *age < SeniorAgeFrom:
		return AgeMiddle
	default:
		return AgeSenior
	}
}

// ClassifyFamilyStatus derives the family status from the household composition.
// A household of exactly the children plus one adult is a single-parent household
// regardless of the self-reported marital status.
func ClassifyFamilyStatus(s *Situation) FamilyStatus {
	if s == nil {
		return FamilyStatusSingle
	}

	children := intOr(s.ChildrenCount, 0)
	household := intOr(s.HouseholdSize, 1)
	if children > 0 && household == children+1 {
		return FamilyStatusSingleParent
	}

	if s.FamilyStatus != nil {
		if status, ok := ParseFamilyStatus(*s.FamilyStatus); ok {
			return status
		}
	}
	return FamilyStatusSingle
}
