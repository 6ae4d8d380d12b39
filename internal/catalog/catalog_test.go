package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijay-prabhu/foerdercheck/internal/profile"
	"github.com/vijay-prabhu/foerdercheck/internal/program"
)

func TestSeed(t *testing.T) {
	programs, err := Seed()
	require.NoError(t, err)
	require.Len(t, programs, 5)

	ids := make(map[string]bool)
	for _, p := range programs {
		ids[p.ID] = true
		assert.True(t, p.IsActive(), p.ID)
		assert.NotNil(t, p.Priority, p.ID)
		assert.Positive(t, p.DeclaredCriteria().Declared(), p.ID)
	}
	for _, id := range []string{"wohngeld", "kinderzuschlag", "buergergeld", "kindergeld", "bafoeg"} {
		assert.True(t, ids[id], "missing %s", id)
	}

	var wohngeld program.Program
	for _, p := range programs {
		if p.ID == "wohngeld" {
			wohngeld = p
		}
	}
	require.NotNil(t, wohngeld.Criteria)
	require.NotNil(t, wohngeld.Criteria.Housing)
	assert.True(t, wohngeld.Criteria.Housing.OnlyRenters)
	assert.Equal(t, 1500.0, *wohngeld.Criteria.Income.SinglePersonMax)
}

func TestStatic_Programs(t *testing.T) {
	src, err := SeedSource()
	require.NoError(t, err)
	ctx := context.Background()

	all, err := src.Programs(ctx, Query{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		assert.GreaterOrEqual(t, all[i-1].EffectivePriority(0), all[i].EffectivePriority(0))
	}

	automatable, err := src.Programs(ctx, Query{ActiveOnly: true, AutomatableOnly: true})
	require.NoError(t, err)
	assert.Len(t, automatable, 4)
	for _, p := range automatable {
		assert.NotEqual(t, "kindergeld", p.ID)
	}

	family, err := src.Programs(ctx, Query{Category: program.CategoryFamily})
	require.NoError(t, err)
	assert.Len(t, family, 2)

	search, err := src.Programs(ctx, Query{Search: "hartz"})
	require.NoError(t, err)
	require.Len(t, search, 1)
	assert.Equal(t, "buergergeld", search[0].ID)
}

func TestStatic_CancelledContext(t *testing.T) {
	src := NewStatic(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := src.Programs(ctx, Query{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestApply_KeepsInputAndOrdersStably(t *testing.T) {
	programs := []program.Program{
		{ID: "a", Status: "aktiv"},
		{ID: "b", Status: "aktiv", Priority: profile.Int(3)},
		{ID: "c", Status: "entwurf", Priority: profile.Int(9)},
		{ID: "d", Status: "AKTIV", Priority: profile.Int(3)},
	}

	got := Apply(programs, Query{ActiveOnly: true})
	require.Len(t, got, 3)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "d", got[1].ID)
	assert.Equal(t, "a", got[2].ID)
	assert.Equal(t, "a", programs[0].ID)

	empty := Apply(nil, Query{})
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestParse(t *testing.T) {
	programs, err := Parse([]byte(`[{"typ":"elterngeld","titel":"Elterngeld"},{"id":"x","prioritaet":0}]`))
	require.NoError(t, err)
	require.Len(t, programs, 2)
	assert.Equal(t, "elterngeld", programs[0].ID)
	require.NotNil(t, programs[1].Priority)
	assert.Equal(t, 0, *programs[1].Priority)

	_, err = Parse([]byte(`[{"titel":"ohne id"},{"id":"a"},{"id":"a"}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing id")
	assert.Contains(t, err.Error(), "duplicate id")

	_, err = Parse([]byte(`{"id":"a"}`))
	assert.Error(t, err)
}

func TestFile_Programs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"a","status":"aktiv"},{"id":"b"}]`), 0644))

	src := NewFile(path)
	got, err := src.Programs(context.Background(), Query{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)

	_, err = NewFile(filepath.Join(t.TempDir(), "missing.json")).Programs(context.Background(), Query{})
	assert.Error(t, err)
}

func TestCategories(t *testing.T) {
	programs, err := Seed()
	require.NoError(t, err)

	got := Categories(programs)
	require.Len(t, got, 4)
	assert.Equal(t, CategoryCount{Category: program.CategoryFamily, Count: 2}, got[0])
	assert.Equal(t, 1, got[1].Count)
}
