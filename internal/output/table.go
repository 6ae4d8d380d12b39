package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/vijay-prabhu/foerdercheck/internal/advisor"
	"github.com/vijay-prabhu/foerdercheck/internal/catalog"
	"github.com/vijay-prabhu/foerdercheck/internal/database"
	"github.com/vijay-prabhu/foerdercheck/internal/eligibility"
	"github.com/vijay-prabhu/foerdercheck/internal/program"
	"github.com/vijay-prabhu/foerdercheck/internal/ranking"
)

// Table writes data as a formatted table to stdout
func Table(data interface{}) error {
	return TableTo(os.Stdout, data)
}

// TableTo writes data as a formatted table to the given writer
func TableTo(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case []eligibility.ProgramResult:
		return resultsTable(w, v)
	case *eligibility.ProgramResult:
		return resultDetail(w, v)
	case eligibility.Stats:
		return statsTable(w, &v)
	case *eligibility.Stats:
		return statsTable(w, v)
	case []ranking.ScoredProgram:
		return recommendationsTable(w, v)
	case []program.Program:
		return programsTable(w, v)
	case *program.Program:
		return programDetail(w, v)
	case []catalog.CategoryCount:
		return categoriesTable(w, v)
	case []database.StoredProfile:
		return profilesTable(w, v)
	case *database.StoredProfile:
		return profileDetail(w, v)
	case []advisor.ProfileResult:
		return batchTable(w, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

func resultsTable(w io.Writer, results []eligibility.ProgramResult) error {
	if len(results) == 0 {
		fmt.Fprintln(w, "No programs evaluated.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("Program", "Category", "Status", "Confidence", "Amount", "Missing")

	for _, r := range results {
		err := table.Append([]string{
			truncate(r.Title, 30),
			truncate(string(r.Category), 20),
			formatStatus(r.Verdict.Eligible),
			formatPercent(r.Verdict.Confidence),
			formatAmount(r.Verdict.Amount),
			truncate(strings.Join(r.Verdict.MissingData, ", "), 35),
		})
		if err != nil {
			return err
		}
	}

	return table.Render()
}

func resultDetail(w io.Writer, r *eligibility.ProgramResult) error {
	v := r.Verdict

	fmt.Fprintf(w, "Program:     %s\n", r.Title)
	if r.Category != "" {
		fmt.Fprintf(w, "Category:    %s\n", r.Category)
	}
	fmt.Fprintf(w, "Status:      %s\n", formatStatus(v.Eligible))
	fmt.Fprintf(w, "Confidence:  %s\n", formatPercent(v.Confidence))
	if v.Amount > 0 {
		fmt.Fprintf(w, "Amount:      %s\n", formatAmount(v.Amount))
	}
	fmt.Fprintf(w, "Reason:      %s\n", v.Reason)

	if len(v.Details) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Criteria:")
		for _, d := range v.Details {
			fmt.Fprintf(w, "  %-8s %-8s %s\n", d.Family, d.Outcome, d.Reason)
		}
	}

	if len(v.MissingData) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Missing data:")
		for _, field := range v.MissingData {
			fmt.Fprintf(w, "  - %s\n", field)
		}
	}

	return nil
}

func statsTable(w io.Writer, s *eligibility.Stats) error {
	fmt.Fprintln(w, "Eligibility Summary")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	fmt.Fprintf(w, "Programs checked:       %d\n", s.Total)
	fmt.Fprintf(w, "Eligible:               %d\n", s.Eligible)
	fmt.Fprintf(w, "Ineligible:             %d\n", s.Ineligible)
	fmt.Fprintf(w, "Needs more data:        %d\n", s.Indeterminate)
	fmt.Fprintf(w, "Mean confidence:        %s\n", formatPercent(s.MeanConfidence))

	if s.MonthlyAmount > 0 {
		fmt.Fprintf(w, "Eligible amount:        %s\n", formatAmount(s.MonthlyAmount))
	}

	if len(s.MissingData) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Most requested data:")
		for _, field := range sortedKeys(s.MissingData) {
			fmt.Fprintf(w, "  %-28s %d\n", field, s.MissingData[field])
		}
	}

	return nil
}

func recommendationsTable(w io.Writer, recs []ranking.ScoredProgram) error {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No recommendations for this profile.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("#", "Program", "Score", "Likelihood", "Rationale")

	for i, sp := range recs {
		err := table.Append([]string{
			strconv.Itoa(i + 1),
			truncate(sp.Program.DisplayTitle(), 30),
			fmt.Sprintf("%.2f", sp.RelevanceScore),
			sp.Likelihood,
			truncate(sp.Rationale, 70),
		})
		if err != nil {
			return err
		}
	}

	return table.Render()
}

func programsTable(w io.Writer, programs []program.Program) error {
	if len(programs) == 0 {
		fmt.Fprintln(w, "No programs found.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Program", "Category", "Priority", "Status", "Auto", "Criteria")

	for _, p := range programs {
		priority := "-"
		if p.Priority != nil {
			priority = strconv.Itoa(*p.Priority)
		}
		auto := "no"
		if p.Automatable {
			auto = "yes"
		}

		err := table.Append([]string{
			truncate(p.ID, 20),
			truncate(p.DisplayTitle(), 30),
			truncate(string(p.Category), 20),
			priority,
			p.Status,
			auto,
			formatCriteria(p.Criteria),
		})
		if err != nil {
			return err
		}
	}

	return table.Render()
}

func programDetail(w io.Writer, p *program.Program) error {
	fmt.Fprintf(w, "Program:     %s\n", p.DisplayTitle())
	fmt.Fprintf(w, "ID:          %s\n", p.ID)
	if p.Type != "" {
		fmt.Fprintf(w, "Type:        %s\n", p.Type)
	}
	if p.Category != "" {
		fmt.Fprintf(w, "Category:    %s\n", p.Category)
	}
	if p.Priority != nil {
		fmt.Fprintf(w, "Priority:    %d\n", *p.Priority)
	}
	if p.Status != "" {
		fmt.Fprintf(w, "Status:      %s\n", p.Status)
	}
	if amount := p.MonthlyBenefit(); amount > 0 {
		fmt.Fprintf(w, "Amount:      %s\n", formatAmount(amount))
	}
	if len(p.TargetGroups) > 0 {
		fmt.Fprintf(w, "For:         %s\n", strings.Join(p.TargetGroups, ", "))
	}
	if p.Description != "" {
		fmt.Fprintf(w, "\n%s\n", wordWrap(p.Description, 78))
	}

	c := p.DeclaredCriteria()
	if c.Declared() == 0 {
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Criteria:")
	if in := c.Income; in != nil {
		fmt.Fprintf(w, "  Income:    single %s, couple %s, per extra member %s\n",
			formatOptAmount(in.SinglePersonMax), formatOptAmount(in.CoupleMax), formatOptAmount(in.PerExtraMemberAmount))
	}
	if f := c.Family; f != nil {
		var rules []string
		if f.MinChildren != nil {
			rules = append(rules, fmt.Sprintf("at least %d children", *f.MinChildren))
		}
		if f.MaxChildren != nil {
			rules = append(rules, fmt.Sprintf("at most %d children", *f.MaxChildren))
		}
		if f.OnlySingleParent {
			rules = append(rules, "single parents only")
		}
		fmt.Fprintf(w, "  Family:    %s\n", joinOrNone(rules))
	}
	if h := c.Housing; h != nil {
		var rules []string
		if h.OnlyRenters {
			rules = append(rules, "renters only")
		}
		if h.OnlyOwners {
			rules = append(rules, "owners only")
		}
		if h.MaxRent != nil {
			rules = append(rules, "cold rent up to "+formatAmount(*h.MaxRent))
		}
		fmt.Fprintf(w, "  Housing:   %s\n", joinOrNone(rules))
	}

	return nil
}

func categoriesTable(w io.Writer, categories []catalog.CategoryCount) error {
	if len(categories) == 0 {
		fmt.Fprintln(w, "No categories found.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("Category", "Programs")
	for _, c := range categories {
		if err := table.Append([]string{string(c.Category), strconv.Itoa(c.Count)}); err != nil {
			return err
		}
	}
	return table.Render()
}

func profilesTable(w io.Writer, profiles []database.StoredProfile) error {
	if len(profiles) == 0 {
		fmt.Fprintln(w, "No saved profiles.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("Name", "ID", "Updated")
	for _, p := range profiles {
		err := table.Append([]string{
			p.Name,
			p.ID,
			p.UpdatedAt.Format("Jan 02, 2006 15:04"),
		})
		if err != nil {
			return err
		}
	}
	return table.Render()
}

func profileDetail(w io.Writer, p *database.StoredProfile) error {
	fmt.Fprintf(w, "Profile:     %s\n", p.Name)
	fmt.Fprintf(w, "ID:          %s\n", p.ID)
	fmt.Fprintf(w, "Updated:     %s\n", p.UpdatedAt.Format("Jan 02, 2006 15:04"))
	fmt.Fprintln(w)
	return JSONTo(w, p.Raw)
}

func batchTable(w io.Writer, results []advisor.ProfileResult) error {
	if len(results) == 0 {
		fmt.Fprintln(w, "No profiles evaluated.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("Profile", "Eligible", "Ineligible", "Needs Data", "Amount")
	for _, r := range results {
		err := table.Append([]string{
			r.ProfileID,
			strconv.Itoa(r.Stats.Eligible),
			strconv.Itoa(r.Stats.Ineligible),
			strconv.Itoa(r.Stats.Indeterminate),
			formatAmount(r.Stats.MonthlyAmount),
		})
		if err != nil {
			return err
		}
	}
	return table.Render()
}

func formatStatus(s eligibility.Status) string {
	switch s {
	case eligibility.Eligible:
		return "eligible"
	case eligibility.Ineligible:
		return "not eligible"
	case eligibility.Indeterminate:
		return "needs data"
	default:
		return string(s)
	}
}

func formatCriteria(c *program.Criteria) string {
	if c.Declared() == 0 {
		return "-"
	}
	var families []string
	if c.Income != nil {
		families = append(families, "income")
	}
	if c.Family != nil {
		families = append(families, "family")
	}
	if c.Housing != nil {
		families = append(families, "housing")
	}
	return strings.Join(families, ",")
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.0f%%", v*100)
}

func formatAmount(v float64) string {
	if v == 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f EUR", v)
}

func formatOptAmount(v *float64) string {
	if v == nil {
		return "-"
	}
	return formatAmount(*v)
}

func joinOrNone(parts []string) string {
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
