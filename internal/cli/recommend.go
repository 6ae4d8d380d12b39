package cli

import (
	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/foerdercheck/internal/output"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend the most relevant programs",
	Long: `Rank programs by relevance to a user record.

The score combines program priority, how well the category suits the
life situation, declared target groups and the eligibility criteria.
Programs scoring 0.3 or less are dropped.

Examples:
  foerdercheck recommend --age 34 --family-status alleinerziehend --children 1 --income 1700
  foerdercheck recommend --profile anna --max 3
  foerdercheck recommend --profile anna --lang en -o json`,
	RunE: runRecommend,
}

var (
	recommendProfile profileFlags
	recommendMax     int
)

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendProfile.register(recommendCmd)
	recommendCmd.Flags().IntVar(&recommendMax, "max", 0, "Maximum number of recommendations (default from config)")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx, recommendProfile.ref != "")
	if err != nil {
		return err
	}
	defer a.Close()

	raw, err := recommendProfile.resolve(ctx, cmd, a.db)
	if err != nil {
		return err
	}

	return output.Output(outputFmt, a.advisor.Recommend(ctx, raw, recommendMax))
}
