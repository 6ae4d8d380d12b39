package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/foerdercheck/internal/config"
	"github.com/vijay-prabhu/foerdercheck/internal/eligibility"
)

func parseProfileFlags(t *testing.T, args ...string) (*cobra.Command, *profileFlags) {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	f := &profileFlags{}
	f.register(cmd)
	if err := cmd.Flags().Parse(args); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return cmd, f
}

func TestProfileFlags_OnlySetFields(t *testing.T) {
	cmd, f := parseProfileFlags(t, "--income", "1700", "--children", "0")

	raw, err := f.resolve(context.Background(), cmd, nil)
	if err != nil {
		t.Fatalf("resolve() error = %v", err)
	}

	if raw.Age != nil {
		t.Errorf("Age = %v, want nil", *raw.Age)
	}
	s := raw.LifeSituation()
	if s.MonthlyNetIncome == nil || *s.MonthlyNetIncome != 1700 {
		t.Errorf("MonthlyNetIncome = %v, want 1700", s.MonthlyNetIncome)
	}
	if s.ChildrenCount == nil || *s.ChildrenCount != 0 {
		t.Errorf("ChildrenCount = %v, want explicit 0", s.ChildrenCount)
	}
	if s.HousingType != nil {
		t.Errorf("HousingType = %v, want nil", *s.HousingType)
	}
}

func TestProfileFlags_Empty(t *testing.T) {
	cmd, f := parseProfileFlags(t)

	raw, err := f.resolve(context.Background(), cmd, nil)
	if err != nil {
		t.Fatalf("resolve() error = %v", err)
	}
	if raw.Situation != nil || raw.Age != nil {
		t.Errorf("resolve() = %+v, want empty record", raw)
	}
}

func TestProfileFlags_FileWithOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "anna.toml")
	content := `age = 34

[lebenssituation]
familienstand = "alleinerziehend"
kinder_anzahl = 1
monatliches_nettoeinkommen = 1700.0
wohnart = "miete"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cmd, f := parseProfileFlags(t, "--profile-file", path, "--income", "2100")
	raw, err := f.resolve(context.Background(), cmd, nil)
	if err != nil {
		t.Fatalf("resolve() error = %v", err)
	}

	if raw.Age == nil || *raw.Age != 34 {
		t.Errorf("Age = %v, want 34", raw.Age)
	}
	s := raw.LifeSituation()
	if s.FamilyStatus == nil || *s.FamilyStatus != "alleinerziehend" {
		t.Errorf("FamilyStatus = %v, want alleinerziehend", s.FamilyStatus)
	}
	if s.MonthlyNetIncome == nil || *s.MonthlyNetIncome != 2100 {
		t.Errorf("MonthlyNetIncome = %v, want flag override 2100", s.MonthlyNetIncome)
	}
}

func TestProfileFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"saved profile without database", []string{"--profile", "anna"}},
		{"profile and file", []string{"--profile", "anna", "--profile-file", "x.json"}},
		{"missing file", []string{"--profile-file", "/does/not/exist.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, f := parseProfileFlags(t, tt.args...)
			if _, err := f.resolve(context.Background(), cmd, nil); err == nil {
				t.Error("resolve() error = nil, want error")
			}
		})
	}
}

func TestReadBatchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.json")
	content := `[
		{"id": "anna", "profile": {"age": 34, "lebenssituation": {"kinder_anzahl": 1}}},
		{"profile": {"lebenssituation": {"monatliches_nettoeinkommen": 900}}}
	]`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	named, err := readBatchFile(path)
	if err != nil {
		t.Fatalf("readBatchFile() error = %v", err)
	}
	if len(named) != 2 {
		t.Fatalf("len = %d, want 2", len(named))
	}
	if named[0].ID != "anna" {
		t.Errorf("ID = %q, want anna", named[0].ID)
	}
	if named[1].ID != "#2" {
		t.Errorf("ID = %q, want #2", named[1].ID)
	}
	if named[0].Raw == named[1].Raw {
		t.Error("records share one pointer")
	}
}

func TestDefaultConfigParses(t *testing.T) {
	cfg, err := config.Parse([]byte(defaultConfig))
	if err != nil {
		t.Fatalf("Parse(defaultConfig) error = %v", err)
	}
	if cfg.Ranking.MinScore != 0.3 {
		t.Errorf("MinScore = %v, want 0.3", cfg.Ranking.MinScore)
	}
	if got := cfg.Ranking.Weights.FamilyStatus["single_parent"]["Familie & Kinder"]; got != 1.0 {
		t.Errorf("single_parent weight = %v, want 1.0", got)
	}
}

func TestParseStatus(t *testing.T) {
	if got, err := parseStatus("indeterminate"); err != nil || got != eligibility.Indeterminate {
		t.Errorf("parseStatus(indeterminate) = %v, %v", got, err)
	}
	if _, err := parseStatus("maybe"); err == nil {
		t.Error("parseStatus(maybe) error = nil, want error")
	}
}
