package eligibility

import (
	"testing"

	"github.com/vijay-prabhu/foerdercheck/internal/profile"
	"github.com/vijay-prabhu/foerdercheck/internal/program"
)

func TestIncomeCeilingSatisfied(t *testing.T) {
	spec := &program.IncomeCeiling{
		SinglePersonMax:      profile.Float(1200),
		CoupleMax:            profile.Float(1800),
		PerExtraMemberAmount: profile.Float(400),
	}

	tests := []struct {
		name      string
		spec      *program.IncomeCeiling
		income    float64
		household int
		want      bool
	}{
		{"no spec", nil, 99999, 1, true},
		{"single below", spec, 1000, 1, true},
		{"single at ceiling", spec, 1200, 1, true},
		{"single above", spec, 1201, 1, false},
		{"couple uses couple max", spec, 1700, 2, true},
		{"couple above", spec, 1900, 2, false},
		{"family of four adds two members", spec, 2600, 4, true},
		{"family of four above", spec, 2601, 4, false},
		{"empty spec means ceiling 0", &program.IncomeCeiling{}, 1, 1, false},
		{"empty spec zero income", &program.IncomeCeiling{}, 0, 1, true},
		{
			name:      "couple max falls back to single",
			spec:      &program.IncomeCeiling{SinglePersonMax: profile.Float(1000)},
			income:    1000,
			household: 2,
			want:      true,
		},
		{
			name:      "extra members without couple max",
			spec:      &program.IncomeCeiling{SinglePersonMax: profile.Float(1000), PerExtraMemberAmount: profile.Float(100)},
			income:    1150,
			household: 4,
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := profile.EvaluationProfile{MonthlyNetIncome: tt.income, HouseholdSize: tt.household}
			if got := IncomeCeilingSatisfied(tt.spec, p); got != tt.want {
				t.Errorf("IncomeCeilingSatisfied() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFamilyCriteriaSatisfied(t *testing.T) {
	tests := []struct {
		name     string
		spec     *program.FamilyCriteria
		children int
		status   profile.FamilyStatus
		want     bool
	}{
		{"no spec", nil, 0, profile.FamilyStatusSingle, true},
		{"min met", &program.FamilyCriteria{MinChildren: profile.Int(1)}, 2, profile.FamilyStatusMarried, true},
		{"min missed", &program.FamilyCriteria{MinChildren: profile.Int(1)}, 0, profile.FamilyStatusMarried, false},
		{"max met", &program.FamilyCriteria{MaxChildren: profile.Int(3)}, 3, profile.FamilyStatusMarried, true},
		{"max exceeded", &program.FamilyCriteria{MaxChildren: profile.Int(3)}, 4, profile.FamilyStatusMarried, false},
		{"explicit max zero", &program.FamilyCriteria{MaxChildren: profile.Int(0)}, 1, profile.FamilyStatusSingle, false},
		{"single parent required", &program.FamilyCriteria{OnlySingleParent: true}, 1, profile.FamilyStatusSingleParent, true},
		{"single parent missing", &program.FamilyCriteria{OnlySingleParent: true}, 1, profile.FamilyStatusMarried, false},
		{"empty spec", &program.FamilyCriteria{}, 0, profile.FamilyStatusSingle, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := profile.EvaluationProfile{ChildrenCount: tt.children, FamilyStatus: tt.status}
			if got := FamilyCriteriaSatisfied(tt.spec, p); got != tt.want {
				t.Errorf("FamilyCriteriaSatisfied() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHousingCriteriaSatisfied(t *testing.T) {
	tests := []struct {
		name   string
		spec   *program.HousingCriteria
		renter bool
		rent   float64
		want   bool
	}{
		{"no spec", nil, false, 0, true},
		{"renters only, renter", &program.HousingCriteria{OnlyRenters: true}, true, 500, true},
		{"renters only, owner", &program.HousingCriteria{OnlyRenters: true}, false, 0, false},
		{"owners only, owner", &program.HousingCriteria{OnlyOwners: true}, false, 0, true},
		{"owners only, renter", &program.HousingCriteria{OnlyOwners: true}, true, 500, false},
		{"rent within max", &program.HousingCriteria{MaxRent: profile.Float(800)}, true, 800, true},
		{"rent above max", &program.HousingCriteria{MaxRent: profile.Float(800)}, true, 801, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := profile.EvaluationProfile{IsRenter: tt.renter, ColdRent: tt.rent}
			if got := HousingCriteriaSatisfied(tt.spec, p); got != tt.want {
				t.Errorf("HousingCriteriaSatisfied() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMissingFamilyData(t *testing.T) {
	spec := &program.FamilyCriteria{OnlySingleParent: true}

	got := missingFamilyData(spec, &profile.Situation{})
	if len(got) != 2 || got[0] != profile.FieldChildrenCount || got[1] != profile.FieldFamilyStatus {
		t.Errorf("missingFamilyData() = %v, want [children, family status]", got)
	}

	got = missingFamilyData(spec, &profile.Situation{ChildrenCount: profile.Int(1), HouseholdSize: profile.Int(2)})
	if len(got) != 0 {
		t.Errorf("missingFamilyData() = %v, want none when household size is known", got)
	}

	got = missingFamilyData(&program.FamilyCriteria{MinChildren: profile.Int(1)}, &profile.Situation{ChildrenCount: profile.Int(0)})
	if len(got) != 0 {
		t.Errorf("missingFamilyData() = %v, want none", got)
	}
}

func TestMissingHousingData(t *testing.T) {
	got := missingHousingData(&program.HousingCriteria{MaxRent: profile.Float(700)}, &profile.Situation{HousingType: profile.String("miete")})
	if len(got) != 1 || got[0] != profile.FieldColdRent {
		t.Errorf("missingHousingData() = %v, want [cold rent]", got)
	}

	got = missingHousingData(&program.HousingCriteria{OnlyRenters: true}, &profile.Situation{})
	if len(got) != 1 || got[0] != profile.FieldHousingType {
		t.Errorf("missingHousingData() = %v, want [housing type]", got)
	}
}
