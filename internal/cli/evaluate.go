package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/foerdercheck/internal/eligibility"
	"github.com/vijay-prabhu/foerdercheck/internal/output"
)

var evaluateCmd = &cobra.Command{
	Use:     "evaluate",
	Aliases: []string{"check"},
	Short:   "Check eligibility against the program catalog",
	Long: `Check a user record against every active program, or one program.

Missing data never fails a check: programs whose criteria need data you
did not provide are reported as indeterminate, with the missing fields.

Examples:
  foerdercheck evaluate --income 1700 --children 1 --housing miete --rent 600
  foerdercheck evaluate --profile anna --status eligible
  foerdercheck evaluate --profile anna --program wohngeld
  foerdercheck evaluate --profile-file me.toml -o json`,
	RunE: runEvaluate,
}

var (
	evaluateProfile profileFlags
	evaluateProgram string
	evaluateStatus  string
)

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateProfile.register(evaluateCmd)
	evaluateCmd.Flags().StringVar(&evaluateProgram, "program", "", "Check a single program by ID")
	evaluateCmd.Flags().StringVar(&evaluateStatus, "status", "", "Filter by status (eligible, ineligible, indeterminate)")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx, evaluateProfile.ref != "")
	if err != nil {
		return err
	}
	defer a.Close()

	raw, err := evaluateProfile.resolve(ctx, cmd, a.db)
	if err != nil {
		return err
	}

	if evaluateProgram != "" {
		result, err := a.advisor.EvaluateProgram(ctx, evaluateProgram, raw)
		if err != nil {
			return err
		}
		return output.Output(outputFmt, result)
	}

	results := a.advisor.EvaluateCatalog(ctx, raw)
	stats := eligibility.GetStats(results)

	if evaluateStatus != "" {
		status, err := parseStatus(evaluateStatus)
		if err != nil {
			return err
		}
		results = eligibility.FilterByStatus(results, status)
		if results == nil {
			results = []eligibility.ProgramResult{}
		}
	}

	if err := output.Output(outputFmt, results); err != nil {
		return err
	}
	if outputFmt == output.FormatTable {
		NewTerminal().PrintSummary(os.Stdout, stats)
	}
	return nil
}

func parseStatus(s string) (eligibility.Status, error) {
	switch status := eligibility.Status(s); status {
	case eligibility.Eligible, eligibility.Ineligible, eligibility.Indeterminate:
		return status, nil
	default:
		return "", fmt.Errorf("unknown status: %s (use eligible, ineligible or indeterminate)", s)
	}
}
