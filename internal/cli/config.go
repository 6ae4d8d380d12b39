package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/foerdercheck/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE:  runConfigShow,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration file for errors",
	RunE:  runConfigValidate,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(home, ".config", "foerdercheck")
	dataDir := filepath.Join(home, ".local", "share", "foerdercheck")

	// Create directories
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	configFile := filepath.Join(configDir, "config.toml")

	// Check if config already exists
	if _, err := os.Stat(configFile); err == nil {
		fmt.Printf("Config file already exists at %s\n", configFile)
		fmt.Println("Use 'foerdercheck config show' to view current configuration")
		return nil
	}

	// Write default config
	if err := os.WriteFile(configFile, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Created config file at %s\n", configFile)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Run 'foerdercheck programs seed' to load the built-in catalog")
	fmt.Println("  2. Run 'foerdercheck profiles save me --income 1800 --children 1 --housing miete'")
	fmt.Println("  3. Run 'foerdercheck recommend --profile me'")

	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No config file found. Run 'foerdercheck config init' to create one.")
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	fmt.Printf("# Config file: %s\n\n", configPath)
	fmt.Println(string(data))
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	if _, err := config.Load(configPath); err != nil {
		return err
	}
	fmt.Printf("%s is valid\n", configPath)
	return nil
}

const defaultConfig = `# foerdercheck configuration

[database]
path = "~/.local/share/foerdercheck/foerdercheck.db"

[catalog]
source = "database"  # database, file or seed
# file = "~/.config/foerdercheck/catalog.json"

[ranking]
min_score = 0.3          # programs must score strictly above this
max_results = 6
default_priority = 5     # assumed for programs without a priority
only_automatable = true  # recommend only programs with an automated application

# Relevance of each category per life situation (0.0-1.0).
# Omitted pairs score 0.5.
[ranking.weights.family_status]
single = { "Bildung & Arbeit" = 0.9, "Selbstständigkeit" = 0.8 }
married = { "Familie & Kinder" = 0.9, "Wohnen & Miete" = 0.8 }
divorced = { "Familie & Kinder" = 0.8, "Wohnen & Miete" = 0.7 }
single_parent = { "Familie & Kinder" = 1.0, "Wohnen & Miete" = 0.9 }

[ranking.weights.income_class]
low = { "Wohnen & Miete" = 1.0, "Steuern & Finanzen" = 0.9 }
medium = { "Familie & Kinder" = 0.8, "Bildung & Arbeit" = 0.7 }
high = { "Selbstständigkeit" = 0.6, "Rente & Alter" = 0.5 }

[ranking.weights.age_group]
young = { "Bildung & Arbeit" = 1.0, "Familie & Kinder" = 0.6 }
middle = { "Familie & Kinder" = 0.9, "Gesundheit & Pflege" = 0.6 }
senior = { "Rente & Alter" = 1.0, "Gesundheit & Pflege" = 0.8 }

[locale]
language = "de"  # de or en

[logging]
json = false
debug = false

[http]
addr = "127.0.0.1:8650"
metrics = true

[mcp]
enabled = true
transport = "stdio"
`
