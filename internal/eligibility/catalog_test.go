package eligibility

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vijay-prabhu/foerdercheck/internal/profile"
	"github.com/vijay-prabhu/foerdercheck/internal/program"
)

func TestEvaluateAll_Empty(t *testing.T) {
	e := NewEvaluator()

	for _, programs := range [][]program.Program{nil, {}} {
		results := e.EvaluateAll(programs, &profile.Raw{})
		if results == nil || len(results) != 0 {
			t.Errorf("EvaluateAll() = %v, want empty non-nil list", results)
		}
	}
}

func TestEvaluateAll_Metadata(t *testing.T) {
	programs := []program.Program{
		{ID: "a", Title: "Wohngeld", Category: program.CategoryHousing, Priority: profile.Int(8)},
		{ID: "b", Name: "Kindergeld"},
		{ID: "c", Type: "bafoeg"},
		{ID: "d"},
	}

	results := NewEvaluator().EvaluateAll(programs, nil)

	wantTitles := []string{"Wohngeld", "Kindergeld", "bafoeg", program.UnknownTitle}
	for i, r := range results {
		if r.Title != wantTitles[i] {
			t.Errorf("results[%d].Title = %q, want %q", i, r.Title, wantTitles[i])
		}
	}
	if results[0].Priority != 8 || results[1].Priority != 0 {
		t.Errorf("priorities = (%d, %d), want (8, 0)", results[0].Priority, results[1].Priority)
	}
	if results[0].Category != program.CategoryHousing {
		t.Errorf("Category = %q", results[0].Category)
	}
}

func TestEvaluateAll_IsolatesFailures(t *testing.T) {
	core, observed := observer.New(zapcore.WarnLevel)
	e := NewEvaluator(WithLogger(zap.New(core)))
	e.evaluate = func(p *program.Program, raw *profile.Raw) Verdict {
		if p.ID == "broken" {
			panic("unexpected shape")
		}
		return e.Evaluate(p, raw)
	}

	programs := []program.Program{
		{ID: "ok-1", Title: "First"},
		{ID: "broken", Title: "Broken"},
		{ID: "ok-2", Title: "Second"},
	}

	results := e.EvaluateAll(programs, nil)

	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	broken := results[1].Verdict
	if broken.Eligible != Ineligible || broken.Confidence != 0 {
		t.Errorf("broken verdict = (%v, %v), want (ineligible, 0)", broken.Eligible, broken.Confidence)
	}
	if broken.Reason != "Technischer Fehler bei der Prüfung." {
		t.Errorf("broken Reason = %q", broken.Reason)
	}
	if !results[0].Verdict.IsEligible() || !results[2].Verdict.IsEligible() {
		t.Error("neighbouring programs should still be evaluated")
	}

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["program_id"]; got != "broken" {
		t.Errorf("program_id = %v, want broken", got)
	}
}

func TestSortResults(t *testing.T) {
	results := []ProgramResult{
		{ID: "ineligible-9", Priority: 9, Verdict: Verdict{Eligible: Ineligible}},
		{ID: "eligible-3", Priority: 3, Verdict: Verdict{Eligible: Eligible}},
		{ID: "unknown-7", Priority: 7, Verdict: Verdict{Eligible: Indeterminate}},
		{ID: "eligible-8", Priority: 8, Verdict: Verdict{Eligible: Eligible}},
		{ID: "ineligible-7", Priority: 7, Verdict: Verdict{Eligible: Ineligible}},
		{ID: "eligible-3b", Priority: 3, Verdict: Verdict{Eligible: Eligible}},
	}

	SortResults(results)

	want := []string{"eligible-8", "eligible-3", "eligible-3b", "ineligible-9", "unknown-7", "ineligible-7"}
	for i, r := range results {
		if r.ID != want[i] {
			t.Errorf("results[%d] = %s, want %s", i, r.ID, want[i])
		}
	}
}

func TestGetStats(t *testing.T) {
	results := []ProgramResult{
		{Verdict: Verdict{Eligible: Eligible, Confidence: 1, Amount: 250}},
		{Verdict: Verdict{Eligible: Eligible, Confidence: 1, Amount: 100}},
		{Verdict: Verdict{Eligible: Ineligible, Confidence: 0}},
		{Verdict: Verdict{Eligible: Indeterminate, Confidence: 0.5, MissingData: []string{"Wohnart"}}},
	}

	stats := GetStats(results)

	if stats.Total != 4 || stats.Eligible != 2 || stats.Ineligible != 1 || stats.Indeterminate != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.MonthlyAmount != 350 {
		t.Errorf("MonthlyAmount = %v, want 350", stats.MonthlyAmount)
	}
	if stats.MissingData["Wohnart"] != 1 {
		t.Errorf("MissingData = %v", stats.MissingData)
	}
	if stats.MeanConfidence != 0.625 {
		t.Errorf("MeanConfidence = %v, want 0.625", stats.MeanConfidence)
	}

	if got := FilterByStatus(results, Eligible); len(got) != 2 {
		t.Errorf("FilterByStatus(eligible) = %d results, want 2", len(got))
	}
}
