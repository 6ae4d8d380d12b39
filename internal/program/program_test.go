package program

import "testing"

func intPtr(v int) *int { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestDisplayTitle(t *testing.T) {
	tests := []struct {
		name string
		p    *Program
		want string
	}{
		{"title", &Program{Title: "Wohngeld", Name: "wg", Type: "wohngeld"}, "Wohngeld"},
		{"name fallback", &Program{Name: "Kindergeld", Type: "kindergeld"}, "Kindergeld"},
		{"type fallback", &Program{Type: "bafoeg"}, "bafoeg"},
		{"blank title", &Program{Title: "  ", Type: "bafoeg"}, "bafoeg"},
		{"nothing", &Program{}, UnknownTitle},
		{"nil", nil, UnknownTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.DisplayTitle(); got != tt.want {
				t.Errorf("DisplayTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMonthlyBenefit(t *testing.T) {
	tests := []struct {
		name string
		p    *Program
		want float64
	}{
		{"monthly", &Program{MonthlyAmount: floatPtr(250), Amount: floatPtr(100)}, 250},
		{"amount fallback", &Program{Amount: floatPtr(100)}, 100},
		{"zero monthly falls back", &Program{MonthlyAmount: floatPtr(0), Amount: floatPtr(80)}, 80},
		{"none", &Program{}, 0},
		{"nil", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.MonthlyBenefit(); got != tt.want {
				t.Errorf("MonthlyBenefit() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEffectivePriority(t *testing.T) {
	if got := (&Program{}).EffectivePriority(5); got != 5 {
		t.Errorf("EffectivePriority() = %d, want 5", got)
	}
	if got := (&Program{Priority: intPtr(0)}).EffectivePriority(5); got != 0 {
		t.Errorf("EffectivePriority() = %d, want 0", got)
	}
}

func TestCriteriaDeclared(t *testing.T) {
	var nilCriteria *Criteria
	if got := nilCriteria.Declared(); got != 0 {
		t.Errorf("Declared() = %d, want 0", got)
	}

	c := &Criteria{Income: &IncomeCeiling{}, Housing: &HousingCriteria{}}
	if got := c.Declared(); got != 2 {
		t.Errorf("Declared() = %d, want 2", got)
	}
}

func TestMatches(t *testing.T) {
	p := &Program{Title: "Bürgergeld", Synonyms: []string{"hartz iv"}}

	if !p.Matches("hartz") {
		t.Error("expected synonym match")
	}
	if !p.Matches("BÜRGER") {
		t.Error("expected case-insensitive title match")
	}
	if p.Matches("wohngeld") {
		t.Error("unexpected match")
	}
}
