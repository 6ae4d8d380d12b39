package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/foerdercheck/internal/database"
	"github.com/vijay-prabhu/foerdercheck/internal/profile"
)

// profileFlags describe a user record on the command line. Only flags the
// user sets end up in the record, so unset data stays missing.
type profileFlags struct {
	ref          string
	file         string
	age          int
	familyStatus string
	children     int
	household    int
	income       float64
	housing      string
	rent         float64
	extraCosts   float64
}

func (f *profileFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.ref, "profile", "", "Saved profile (name or ID)")
	flags.StringVar(&f.file, "profile-file", "", "Read the profile from a JSON or TOML file")
	flags.IntVar(&f.age, "age", 0, "Age in years")
	flags.StringVar(&f.familyStatus, "family-status", "", "Marital status (ledig, verheiratet, geschieden, alleinerziehend)")
	flags.IntVar(&f.children, "children", 0, "Number of children")
	flags.IntVar(&f.household, "household", 0, "Number of household members")
	flags.Float64Var(&f.income, "income", 0, "Monthly net income in EUR")
	flags.StringVar(&f.housing, "housing", "", "Housing type (miete, eigentum)")
	flags.Float64Var(&f.rent, "rent", 0, "Monthly cold rent in EUR")
	flags.Float64Var(&f.extraCosts, "extra-costs", 0, "Monthly additional housing costs in EUR")
}

// resolve builds the record from a saved profile or file, then applies the
// flags that were set. db may be nil when --profile is not used.
func (f *profileFlags) resolve(ctx context.Context, cmd *cobra.Command, db *database.DB) (*profile.Raw, error) {
	raw := &profile.Raw{}

	switch {
	case f.ref != "" && f.file != "":
		return nil, fmt.Errorf("use either --profile or --profile-file")
	case f.ref != "":
		if db == nil {
			return nil, fmt.Errorf("--profile needs the database")
		}
		sp, err := db.FindProfile(ctx, f.ref)
		if err != nil {
			return nil, fmt.Errorf("database error: %w", err)
		}
		if sp == nil {
			return nil, fmt.Errorf("profile not found: %s", f.ref)
		}
		raw = &sp.Raw
	case f.file != "":
		loaded, err := readProfileFile(f.file)
		if err != nil {
			return nil, err
		}
		raw = loaded
	}

	flags := cmd.Flags()
	set := func(name string, apply func(s *profile.Situation)) {
		if flags.Changed(name) {
			if raw.Situation == nil {
				raw.Situation = &profile.Situation{}
			}
			apply(raw.Situation)
		}
	}

	if flags.Changed("age") {
		raw.Age = profile.Int(f.age)
	}
	set("family-status", func(s *profile.Situation) { s.FamilyStatus = profile.String(f.familyStatus) })
	set("children", func(s *profile.Situation) { s.ChildrenCount = profile.Int(f.children) })
	set("household", func(s *profile.Situation) { s.HouseholdSize = profile.Int(f.household) })
	set("income", func(s *profile.Situation) { s.MonthlyNetIncome = profile.Float(f.income) })
	set("housing", func(s *profile.Situation) { s.HousingType = profile.String(f.housing) })
	set("rent", func(s *profile.Situation) { s.ColdRent = profile.Float(f.rent) })
	set("extra-costs", func(s *profile.Situation) { s.AdditionalCosts = profile.Float(f.extraCosts) })

	return raw, nil
}

// readProfileFile decodes a user record from JSON or, for .toml files, TOML
func readProfileFile(path string) (*profile.Raw, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	raw := &profile.Raw{}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, raw)
	} else {
		err = json.Unmarshal(data, raw)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	return raw, nil
}
