package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Known class names of the weighting matrix
var (
	familyStatusClasses = map[string]bool{"single": true, "married": true, "divorced": true, "single_parent": true}
	incomeClasses       = map[string]bool{"low": true, "medium": true, "high": true}
	ageGroups           = map[string]bool{"young": true, "middle": true, "senior": true}
)

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	// Expand path
	expandedPath, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}

	// Read file
	data, err := os.ReadFile(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s (run 'foerdercheck config init' to create)", expandedPath)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return Parse(data)
}

// LoadOrDefault loads the config at path, or returns the defaults when no file exists
func LoadOrDefault(path string) (*Config, error) {
	expandedPath, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}
	if _, err := os.Stat(expandedPath); os.IsNotExist(err) {
		cfg := Default()
		if err := cfg.expandPaths(); err != nil {
			return nil, fmt.Errorf("failed to expand paths: %w", err)
		}
		return cfg, nil
	}
	return Load(expandedPath)
}

// Parse decodes TOML over the defaults, expands paths and validates
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// expandPath expands ~ to home directory
func expandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}

// expandPaths expands ~ in all path fields
func (c *Config) expandPaths() error {
	var err error

	c.Database.Path, err = expandPath(c.Database.Path)
	if err != nil {
		return err
	}

	c.Catalog.File, err = expandPath(c.Catalog.File)
	if err != nil {
		return err
	}

	return nil
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	// Database validation
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}

	// Catalog validation
	switch c.Catalog.Source {
	case SourceDatabase, SourceSeed:
	case SourceFile:
		if c.Catalog.File == "" {
			errs = append(errs, errors.New("catalog.file is required when catalog.source is 'file'"))
		}
	default:
		errs = append(errs, fmt.Errorf("catalog.source must be 'database', 'file' or 'seed', got '%s'", c.Catalog.Source))
	}

	// Ranking validation
	if c.Ranking.MinScore < 0 || c.Ranking.MinScore >= 1 {
		errs = append(errs, errors.New("ranking.min_score must be in [0, 1)"))
	}
	if c.Ranking.MaxResults < 1 || c.Ranking.MaxResults > 100 {
		errs = append(errs, errors.New("ranking.max_results must be between 1 and 100"))
	}
	if c.Ranking.DefaultPriority < 0 || c.Ranking.DefaultPriority > 10 {
		errs = append(errs, errors.New("ranking.default_priority must be between 0 and 10"))
	}
	errs = append(errs, validateWeights("family_status", c.Ranking.Weights.FamilyStatus, familyStatusClasses)...)
	errs = append(errs, validateWeights("income_class", c.Ranking.Weights.IncomeClass, incomeClasses)...)
	errs = append(errs, validateWeights("age_group", c.Ranking.Weights.AgeGroup, ageGroups)...)

	// Locale validation
	if c.Locale.Language != "de" && c.Locale.Language != "en" {
		errs = append(errs, fmt.Errorf("locale.language must be 'de' or 'en', got '%s'", c.Locale.Language))
	}

	// HTTP validation
	if c.HTTP.Addr == "" {
		errs = append(errs, errors.New("http.addr is required"))
	}

	// MCP validation
	if c.MCP.Transport != "stdio" {
		errs = append(errs, fmt.Errorf("mcp.transport must be 'stdio', got '%s'", c.MCP.Transport))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

func validateWeights(dimension string, weights map[string]map[string]float64, known map[string]bool) []error {
	var errs []error
	for class, categories := range weights {
		if !known[class] {
			errs = append(errs, fmt.Errorf("ranking.weights.%s: unknown class '%s'", dimension, class))
		}
		for category, w := range categories {
			if w < 0 || w > 1 {
				errs = append(errs, fmt.Errorf("ranking.weights.%s.%s: weight for '%s' must be in [0, 1]", dimension, class, category))
			}
		}
	}
	return errs
}

// EnsureDirectories creates necessary directories for the database
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		filepath.Dir(c.Database.Path),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
