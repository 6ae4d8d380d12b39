package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijay-prabhu/foerdercheck/internal/config"
	"github.com/vijay-prabhu/foerdercheck/internal/profile"
	"github.com/vijay-prabhu/foerdercheck/internal/program"
)

func TestDefaultMatrix(t *testing.T) {
	m := DefaultMatrix()

	assert.Equal(t, 1.0, m.FamilyStatus[profile.FamilyStatusSingleParent][program.CategoryFamily])
	assert.Equal(t, 1.0, m.IncomeClass[profile.IncomeLow][program.CategoryHousing])
	assert.Equal(t, 1.0, m.AgeClass[profile.AgeSenior][program.CategoryRetirement])
	assert.Zero(t, m.AgeClass[profile.AgeSenior][program.CategorySelfEmploy])
}

func TestNewMatrix_RejectsUnknownClasses(t *testing.T) {
	_, err := NewMatrix(config.WeightsConfig{
		FamilyStatus: map[string]map[string]float64{"widowed": {"Rente & Alter": 1}},
		IncomeClass:  map[string]map[string]float64{"rich": {"Steuern & Finanzen": 1}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "widowed")
	assert.Contains(t, err.Error(), "rich")
}

func TestCategoryScore(t *testing.T) {
	m := DefaultMatrix()

	senior := profile.EvaluationProfile{
		FamilyStatus: profile.FamilyStatusMarried,
		IncomeClass:  profile.IncomeHigh,
		AgeClass:     profile.AgeSenior,
	}
	assert.InDelta(t, (0+0.5+1.0)/3, m.CategoryScore(senior, program.CategoryRetirement), 1e-9)
	assert.Zero(t, m.CategoryScore(senior, program.Category("Sonstiges")))
}

func TestTargetGroupScore(t *testing.T) {
	parent := profile.EvaluationProfile{
		FamilyStatus: profile.FamilyStatusSingleParent,
		IncomeClass:  profile.IncomeMedium,
		AgeClass:     profile.AgeMiddle,
		HasChildren:  true,
	}

	tests := []struct {
		name       string
		tags       []string
		want       float64
		applicable bool
	}{
		{"no tags", nil, 0, false},
		{"blank tags", []string{" "}, 0, false},
		{"all match", []string{"Familien", "Alleinerziehende"}, 1, true},
		{"tag matching two rules counts once", []string{"Familien und Alleinerziehende"}, 1, true},
		{"half match", []string{"Familien", "Studenten"}, 0.5, true},
		{"no match", []string{"Rentner"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := targetGroupScore(tt.tags, parent)
			assert.Equal(t, tt.applicable, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}
