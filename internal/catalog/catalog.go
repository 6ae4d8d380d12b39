// Package catalog provides the benefit programs that evaluations run against.
package catalog

//go:generate mockgen -source=catalog.go -destination=mocks/mocks.go -package=mocks Source

import (
	"context"
	"slices"
	"strings"

	"github.com/vijay-prabhu/foerdercheck/internal/program"
)

// Query filters programs returned by a Source
type Query struct {
	ActiveOnly      bool
	AutomatableOnly bool
	Category        program.Category
	Search          string
}

// Match reports whether p satisfies the query
func (q Query) Match(p *program.Program) bool {
	if q.ActiveOnly && !p.IsActive() {
		return false
	}
	if q.AutomatableOnly && !p.Automatable {
		return false
	}
	if q.Category != "" && !strings.EqualFold(string(p.Category), string(q.Category)) {
		return false
	}
	return p.Matches(q.Search)
}

// Source supplies programs ordered by descending priority
type Source interface {
	Programs(ctx context.Context, q Query) ([]program.Program, error)
}

// Apply returns the programs matching q, ordered by descending priority.
// The input slice is not modified. The result is never nil.
func Apply(programs []program.Program, q Query) []program.Program {
	out := make([]program.Program, 0, len(programs))
	for i := range programs {
		if q.Match(&programs[i]) {
			out = append(out, programs[i])
		}
	}
	SortByPriority(out)
	return out
}

// SortByPriority orders programs by descending priority. Programs without
// a priority sort last, ties keep their order.
func SortByPriority(programs []program.Program) {
	slices.SortStableFunc(programs, func(a, b program.Program) int {
		return b.EffectivePriority(0) - a.EffectivePriority(0)
	})
}

// CategoryCount is the number of programs in one category
type CategoryCount struct {
	Category program.Category `json:"category"`
	Count    int              `json:"count"`
}

// Categories counts programs per category, most populated first
func Categories(programs []program.Program) []CategoryCount {
	counts := make(map[program.Category]int)
	for _, p := range programs {
		if p.Category != "" {
			counts[p.Category]++
		}
	}

	out := make([]CategoryCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, CategoryCount{Category: c, Count: n})
	}
	slices.SortFunc(out, func(a, b CategoryCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(string(a.Category), string(b.Category))
	})
	return out
}
