package ranking

import (
	"errors"
	"fmt"

	"github.com/vijay-prabhu/foerdercheck/internal/config"
	"github.com/vijay-prabhu/foerdercheck/internal/profile"
	"github.com/vijay-prabhu/foerdercheck/internal/program"
)

// Matrix holds hand-authored relevance weights per life-situation class and
// program category. Missing entries weigh 0.
type Matrix struct {
	FamilyStatus map[profile.FamilyStatus]map[program.Category]float64
	IncomeClass  map[profile.IncomeClass]map[program.Category]float64
	AgeClass     map[profile.AgeClass]map[program.Category]float64
}

// NewMatrix builds a typed Matrix from configuration data
func NewMatrix(cfg config.WeightsConfig) (Matrix, error) {
	var errs []error

	m := Matrix{
		FamilyStatus: make(map[profile.FamilyStatus]map[program.Category]float64),
		IncomeClass:  make(map[profile.IncomeClass]map[program.Category]float64),
		AgeClass:     make(map[profile.AgeClass]map[program.Category]float64),
	}

	for name, weights := range cfg.FamilyStatus {
		status := profile.FamilyStatus(name)
		if !status.Valid() {
			errs = append(errs, fmt.Errorf("unknown family status %q", name))
			continue
		}
		m.FamilyStatus[status] = categoryWeights(weights)
	}

	for name, weights := range cfg.IncomeClass {
		class, ok := profile.ParseIncomeClass(name)
		if !ok {
			errs = append(errs, fmt.Errorf("unknown income class %q", name))
			continue
		}
		m.IncomeClass[class] = categoryWeights(weights)
	}

	for name, weights := range cfg.AgeGroup {
		class, ok := profile.ParseAgeClass(name)
		if !ok {
			errs = append(errs, fmt.Errorf("unknown age group %q", name))
			continue
		}
		m.AgeClass[class] = categoryWeights(weights)
	}

	if len(errs) > 0 {
		return Matrix{}, errors.Join(errs...)
	}
	return m, nil
}

// DefaultMatrix returns the built-in weights
func DefaultMatrix() Matrix {
	m, err := NewMatrix(config.DefaultWeights())
	if err != nil {
		panic(fmt.Sprintf("default weights are invalid: %v", err))
	}
	return m
}

func categoryWeights(weights map[string]float64) map[program.Category]float64 {
	out := make(map[program.Category]float64, len(weights))
	for category, w := range weights {
		out[program.Category(category)] = w
	}
	return out
}

// CategoryScore is the mean of the three class weights for category
func (m Matrix) CategoryScore(p profile.EvaluationProfile, category program.Category) float64 {
	family := m.FamilyStatus[p.FamilyStatus][category]
	income := m.IncomeClass[p.IncomeClass][category]
	age := m.AgeClass[p.AgeClass][category]
	return (family + income + age) / 3
}
