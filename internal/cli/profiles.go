package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/foerdercheck/internal/database"
	"github.com/vijay-prabhu/foerdercheck/internal/output"
)

var profilesCmd = &cobra.Command{
	Use:     "profiles",
	Aliases: []string{"profile"},
	Short:   "Manage saved user records",
}

var profilesSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save a user record under a name",
	Long: `Save a user record so commands can refer to it with --profile.

Saving under an existing name replaces the record. Start from another
record with --profile or --profile-file and override single fields.

Examples:
  foerdercheck profiles save anna --age 34 --children 1 --income 1700 --housing miete --rent 600
  foerdercheck profiles save anna --profile anna --income 1900
  foerdercheck profiles save bernd --profile-file bernd.toml`,
	Args: cobra.ExactArgs(1),
	RunE: runProfilesSave,
}

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved user records",
	RunE:  runProfilesList,
}

var profilesShowCmd = &cobra.Command{
	Use:   "show <name|id>",
	Short: "Show a saved user record",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfilesShow,
}

var profilesDeleteCmd = &cobra.Command{
	Use:   "delete <name|id>",
	Short: "Delete a saved user record",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfilesDelete,
}

var profilesSaveFlags profileFlags

func init() {
	rootCmd.AddCommand(profilesCmd)
	profilesCmd.AddCommand(profilesSaveCmd)
	profilesCmd.AddCommand(profilesListCmd)
	profilesCmd.AddCommand(profilesShowCmd)
	profilesCmd.AddCommand(profilesDeleteCmd)

	profilesSaveFlags.register(profilesSaveCmd)
}

func runProfilesSave(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	raw, err := profilesSaveFlags.resolve(ctx, cmd, a.db)
	if err != nil {
		return err
	}

	sp := &database.StoredProfile{Name: args[0], Raw: *raw}
	if err := a.db.SaveProfile(ctx, sp); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	fmt.Printf("Saved profile %s (%s)\n", sp.Name, sp.ID)
	return nil
}

func runProfilesList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	profiles, err := a.db.ListProfiles(ctx)
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}
	if profiles == nil {
		profiles = []database.StoredProfile{}
	}
	return output.Output(outputFmt, profiles)
}

func runProfilesShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	sp, err := findProfile(cmd, a.db, args[0])
	if err != nil {
		return err
	}
	return output.Output(outputFmt, sp)
}

func runProfilesDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	sp, err := findProfile(cmd, a.db, args[0])
	if err != nil {
		return err
	}
	if err := a.db.DeleteProfile(ctx, sp.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted profile %s\n", sp.Name)
	return nil
}

func findProfile(cmd *cobra.Command, db *database.DB, ref string) (*database.StoredProfile, error) {
	sp, err := db.FindProfile(cmd.Context(), ref)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if sp == nil {
		return nil, fmt.Errorf("profile not found: %s", ref)
	}
	return sp, nil
}
