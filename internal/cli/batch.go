package cli

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/foerdercheck/internal/advisor"
	"github.com/vijay-prabhu/foerdercheck/internal/output"
	"github.com/vijay-prabhu/foerdercheck/internal/profile"
)

var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Evaluate many user records at once",
	Long: `Evaluate the catalog for every user record in a JSON file.

The file holds an array of records with an id:

  [
    {"id": "anna", "profile": {"age": 34, "lebenssituation": {"kinder_anzahl": 1}}},
    {"id": "bernd", "profile": {"lebenssituation": {"monatliches_nettoeinkommen": 900}}}
  ]

Examples:
  foerdercheck batch households.json
  foerdercheck batch households.json -o json > results.json`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
}

type batchEntry struct {
	ID      string      `json:"id"`
	Profile profile.Raw `json:"profile"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	entries, err := readBatchFile(args[0])
	if err != nil {
		return err
	}

	a, err := openApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	results, err := a.advisor.EvaluateProfiles(ctx, entries)
	if err != nil {
		return err
	}
	return output.Output(outputFmt, results)
}

func readBatchFile(path string) ([]advisor.NamedProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var entries []batchEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse batch file: %w", err)
	}

	named := make([]advisor.NamedProfile, len(entries))
	for i := range entries {
		id := entries[i].ID
		if id == "" {
			id = fmt.Sprintf("#%d", i+1)
		}
		named[i] = advisor.NamedProfile{ID: id, Raw: &entries[i].Profile}
	}
	return named, nil
}
