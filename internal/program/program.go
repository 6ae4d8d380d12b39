package program

import "strings"

// StatusActive marks a catalog entry that is offered to users
const StatusActive = "aktiv"

// UnknownTitle is the display title of an entry without title, name or type
const UnknownTitle = "Unknown program"

// Category is the free-text category label of a program, e.g. "Familie & Kinder"
type Category string

// Known categories
const (
	CategoryFamily     Category = "Familie & Kinder"
	CategoryHousing    Category = "Wohnen & Miete"
	CategoryEducation  Category = "Bildung & Arbeit"
	CategorySelfEmploy Category = "Selbstständigkeit"
	CategoryTaxes      Category = "Steuern & Finanzen"
	CategoryRetirement Category = "Rente & Alter"
	CategoryHealth     Category = "Gesundheit & Pflege"
)

// Program is a benefit program ("Förderleistung") as stored in the catalog
type Program struct {
	ID            string    `json:"id"`
	Type          string    `json:"typ,omitempty"`
	Title         string    `json:"titel,omitempty"`
	Name          string    `json:"name,omitempty"`
	Category      Category  `json:"kategorie,omitempty"`
	Description   string    `json:"kurzbeschreibung,omitempty"`
	Priority      *int      `json:"prioritaet,omitempty"`
	TargetGroups  []string  `json:"zielgruppen,omitempty"`
	MonthlyAmount *float64  `json:"monatlicher_betrag,omitempty"`
	Amount        *float64  `json:"betrag,omitempty"`
	Status        string    `json:"status,omitempty"`
	Automatable   bool      `json:"automatisierbar,omitempty"`
	Synonyms      []string  `json:"synonyme,omitempty"`
	Criteria      *Criteria `json:"pruefkriterien,omitempty"`
}

// Criteria groups the eligibility rules of a program.
// A nil sub-object means the dimension imposes no constraint.
type Criteria struct {
	Income  *IncomeCeiling   `json:"einkommensgrenzen,omitempty"`
	Family  *FamilyCriteria  `json:"familienkriterien,omitempty"`
	Housing *HousingCriteria `json:"wohnkriterien,omitempty"`
}

// IncomeCeiling limits the monthly net income by household size
type IncomeCeiling struct {
	SinglePersonMax      *float64 `json:"einzelperson_max,omitempty"`
	CoupleMax            *float64 `json:"paar_max,omitempty"`
	PerExtraMemberAmount *float64 `json:"pro_weiteres_kind,omitempty"`
}

// FamilyCriteria restricts the household composition
type FamilyCriteria struct {
	MinChildren      *int `json:"min_kinder,omitempty"`
	MaxChildren      *int `json:"max_kinder,omitempty"`
	OnlySingleParent bool `json:"nur_alleinerziehend,omitempty"`
}

// HousingCriteria restricts the housing situation
type HousingCriteria struct {
	OnlyRenters bool     `json:"nur_mieter,omitempty"`
	OnlyOwners  bool     `json:"nur_eigentuemer,omitempty"`
	MaxRent     *float64 `json:"max_miete,omitempty"`
}

// DisplayTitle returns title, name or type, whichever is set first
func (p *Program) DisplayTitle() string {
	if p == nil {
		return UnknownTitle
	}
	for _, s := range []string{p.Title, p.Name, p.Type} {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return UnknownTitle
}

// EffectivePriority returns the priority or def when unset
func (p *Program) EffectivePriority(def int) int {
	if p == nil || p.Priority == nil {
		return def
	}
	return *p.Priority
}

// MonthlyBenefit returns the stated benefit amount: the monthly amount,
// the one-off amount, or 0
func (p *Program) MonthlyBenefit() float64 {
	if p == nil {
		return 0
	}
	if p.MonthlyAmount != nil && *p.MonthlyAmount > 0 {
		return *p.MonthlyAmount
	}
	if p.Amount != nil && *p.Amount > 0 {
		return *p.Amount
	}
	return 0
}

// IsActive reports whether the program is offered to users
func (p *Program) IsActive() bool {
	return p != nil && strings.EqualFold(p.Status, StatusActive)
}

// DeclaredCriteria returns the criteria, never nil
func (p *Program) DeclaredCriteria() *Criteria {
	if p == nil || p.Criteria == nil {
		return &Criteria{}
	}
	return p.Criteria
}

// Declared returns the number of criterion families present
func (c *Criteria) Declared() int {
	if c == nil {
		return 0
	}
	n := 0
	if c.Income != nil {
		n++
	}
	if c.Family != nil {
		n++
	}
	if c.Housing != nil {
		n++
	}
	return n
}

// Matches reports whether query occurs in the title, name, type, description or synonyms
func (p *Program) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	fields := append([]string{p.Title, p.Name, p.Type, p.Description, string(p.Category)}, p.Synonyms...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
