package cli

import (
	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/foerdercheck/internal/catalog"
	"github.com/vijay-prabhu/foerdercheck/internal/eligibility"
	"github.com/vijay-prabhu/foerdercheck/internal/output"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show eligibility statistics for a user record",
	Long: `Display aggregate statistics of a catalog evaluation: verdict counts,
the monthly amount of eligible programs and the data most often missing.

Examples:
  foerdercheck stats --profile anna
  foerdercheck stats --catalog     # Programs per category`,
	RunE: runStats,
}

var (
	statsProfile profileFlags
	statsCatalog bool
)

func init() {
	rootCmd.AddCommand(statsCmd)

	statsProfile.register(statsCmd)
	statsCmd.Flags().BoolVar(&statsCatalog, "catalog", false, "Show programs per category instead")
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx, statsProfile.ref != "")
	if err != nil {
		return err
	}
	defer a.Close()

	if statsCatalog {
		programs, err := a.advisor.Programs(ctx, catalog.Query{ActiveOnly: true})
		if err != nil {
			return err
		}
		return output.Output(outputFmt, catalog.Categories(programs))
	}

	raw, err := statsProfile.resolve(ctx, cmd, a.db)
	if err != nil {
		return err
	}

	stats := eligibility.GetStats(a.advisor.EvaluateCatalog(ctx, raw))
	return output.Output(outputFmt, stats)
}
