package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/foerdercheck/internal/advisor"
	"github.com/vijay-prabhu/foerdercheck/internal/output"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export eligibility results to CSV or JSON",
	Long: `Export catalog evaluations to a file.

Supported formats:
  - csv: Comma-separated values (spreadsheet-compatible)
  - json: JSON array of evaluation rows

Examples:
  foerdercheck export --profile anna --format=csv > anna.csv
  foerdercheck export --all-profiles --format=csv > all.csv
  foerdercheck export --income 1700 --children 2 --format=json`,
	RunE: runExport,
}

var (
	exportProfile     profileFlags
	exportFormat      string
	exportAllProfiles bool
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportProfile.register(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Export format (csv, json)")
	exportCmd.Flags().BoolVar(&exportAllProfiles, "all-profiles", false, "Export every saved profile")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if exportFormat != "csv" && exportFormat != "json" {
		return fmt.Errorf("unknown format: %s (use csv or json)", exportFormat)
	}

	a, err := openApp(ctx, exportAllProfiles || exportProfile.ref != "")
	if err != nil {
		return err
	}
	defer a.Close()

	var rows []output.ExportRow
	if exportAllProfiles {
		stored, err := a.db.ListProfiles(ctx)
		if err != nil {
			return fmt.Errorf("failed to list profiles: %w", err)
		}

		named := make([]advisor.NamedProfile, len(stored))
		for i := range stored {
			named[i] = advisor.NamedProfile{ID: stored[i].Name, Raw: &stored[i].Raw}
		}

		results, err := a.advisor.EvaluateProfiles(ctx, named)
		if err != nil {
			return err
		}
		for _, r := range results {
			rows = append(rows, output.ExportRows(r.ProfileID, r.Results)...)
		}
	} else {
		raw, err := exportProfile.resolve(ctx, cmd, a.db)
		if err != nil {
			return err
		}
		rows = output.ExportRows(exportProfile.ref, a.advisor.EvaluateCatalog(ctx, raw))
	}

	if exportFormat == "json" {
		if rows == nil {
			rows = []output.ExportRow{}
		}
		return output.JSON(rows)
	}
	return output.CSVTo(os.Stdout, rows)
}
