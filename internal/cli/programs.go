package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/foerdercheck/internal/catalog"
	"github.com/vijay-prabhu/foerdercheck/internal/output"
	"github.com/vijay-prabhu/foerdercheck/internal/program"
)

var programsCmd = &cobra.Command{
	Use:     "programs",
	Aliases: []string{"program"},
	Short:   "Browse and manage the program catalog",
}

var programsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List programs, highest priority first",
	Long: `List programs in the configured catalog.

Examples:
  foerdercheck programs list
  foerdercheck programs list --category "Familie & Kinder"
  foerdercheck programs list --automatable -o json`,
	RunE: runProgramsList,
}

var programsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a program and its criteria",
	Args:  cobra.ExactArgs(1),
	RunE:  runProgramsShow,
}

var programsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search titles, descriptions and synonyms",
	Long: `Search the catalog by title, name, description, category or synonym.

Examples:
  foerdercheck programs search miete
  foerdercheck programs search "hartz iv"`,
	Args: cobra.ExactArgs(1),
	RunE: runProgramsSearch,
}

var programsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import programs from a JSON catalog into the database",
	Long: `Import programs from a JSON array into the database. Programs with an
existing ID are replaced.`,
	Args: cobra.ExactArgs(1),
	RunE: runProgramsImport,
}

var programsSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the built-in catalog into the database",
	RunE:  runProgramsSeed,
}

var programsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a program from the database",
	Args:  cobra.ExactArgs(1),
	RunE:  runProgramsDelete,
}

var (
	programsCategory    string
	programsAutomatable bool
	programsAll         bool
)

func init() {
	rootCmd.AddCommand(programsCmd)
	programsCmd.AddCommand(programsListCmd)
	programsCmd.AddCommand(programsShowCmd)
	programsCmd.AddCommand(programsSearchCmd)
	programsCmd.AddCommand(programsImportCmd)
	programsCmd.AddCommand(programsSeedCmd)
	programsCmd.AddCommand(programsDeleteCmd)

	programsListCmd.Flags().StringVar(&programsCategory, "category", "", "Filter by category")
	programsListCmd.Flags().BoolVar(&programsAutomatable, "automatable", false, "Only programs with an automated application")
	programsListCmd.Flags().BoolVar(&programsAll, "all", false, "Include inactive programs")
}

func runProgramsList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	programs, err := a.advisor.Programs(ctx, catalog.Query{
		ActiveOnly:      !programsAll,
		AutomatableOnly: programsAutomatable,
		Category:        program.Category(programsCategory),
	})
	if err != nil {
		return err
	}
	return output.Output(outputFmt, programs)
}

func runProgramsShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	p, err := a.advisor.Program(ctx, args[0])
	if err != nil {
		return err
	}
	return output.Output(outputFmt, p)
}

func runProgramsSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	programs, err := a.advisor.Programs(ctx, catalog.Query{Search: args[0]})
	if err != nil {
		return err
	}
	return output.Output(outputFmt, programs)
}

func runProgramsImport(cmd *cobra.Command, args []string) error {
	programs, err := catalog.LoadFile(args[0])
	if err != nil {
		return err
	}
	return importPrograms(cmd, programs)
}

func runProgramsSeed(cmd *cobra.Command, args []string) error {
	programs, err := catalog.Seed()
	if err != nil {
		return err
	}
	return importPrograms(cmd, programs)
}

func importPrograms(cmd *cobra.Command, programs []program.Program) error {
	ctx := cmd.Context()

	a, err := openApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := a.db.ImportPrograms(ctx, programs)
	if err != nil {
		return fmt.Errorf("failed to import programs: %w", err)
	}

	fmt.Printf("Imported %d programs into %s\n", n, a.cfg.Database.Path)
	return nil
}

func runProgramsDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.db.DeleteProgram(ctx, args[0]); err != nil {
		return err
	}

	fmt.Printf("Deleted program %s\n", args[0])
	return nil
}
