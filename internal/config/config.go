package config

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Catalog  CatalogConfig  `toml:"catalog"`
	Ranking  RankingConfig  `toml:"ranking"`
	Locale   LocaleConfig   `toml:"locale"`
	Logging  LoggingConfig  `toml:"logging"`
	HTTP     HTTPConfig     `toml:"http"`
	MCP      MCPConfig      `toml:"mcp"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// Catalog sources
const (
	SourceDatabase = "database"
	SourceFile     = "file"
	SourceSeed     = "seed"
)

// CatalogConfig selects where benefit programs come from
type CatalogConfig struct {
	Source string `toml:"source"` // database, file or seed
	File   string `toml:"file"`   // JSON catalog, used when source = "file"
}

// RankingConfig contains recommendation settings
type RankingConfig struct {
	MinScore        float64       `toml:"min_score"`        // programs must score strictly above this
	MaxResults      int           `toml:"max_results"`      // default number of recommendations
	DefaultPriority int           `toml:"default_priority"` // priority assumed for programs without one
	OnlyAutomatable bool          `toml:"only_automatable"` // recommend only programs with an automated application
	Weights         WeightsConfig `toml:"weights"`
}

// WeightsConfig is the life-situation × category relevance matrix.
// Outer keys are class names, inner keys are category labels.
type WeightsConfig struct {
	FamilyStatus map[string]map[string]float64 `toml:"family_status"`
	IncomeClass  map[string]map[string]float64 `toml:"income_class"`
	AgeGroup     map[string]map[string]float64 `toml:"age_group"`
}

// LocaleConfig selects the language of reasons and rationales
type LocaleConfig struct {
	Language string `toml:"language"`
}

// LoggingConfig contains logger settings
type LoggingConfig struct {
	JSON  bool `toml:"json"`
	Debug bool `toml:"debug"`
}

// HTTPConfig contains HTTP API settings
type HTTPConfig struct {
	Addr    string `toml:"addr"`
	Metrics bool   `toml:"metrics"`
}

// MCPConfig contains MCP server settings
type MCPConfig struct {
	Enabled   bool   `toml:"enabled"`
	Transport string `toml:"transport"`
}

// DefaultWeights returns the built-in relevance matrix
func DefaultWeights() WeightsConfig {
	return WeightsConfig{
		FamilyStatus: map[string]map[string]float64{
			"single":        {"Bildung & Arbeit": 0.9, "Selbstständigkeit": 0.8},
			"married":       {"Familie & Kinder": 0.9, "Wohnen & Miete": 0.8},
			"divorced":      {"Familie & Kinder": 0.8, "Wohnen & Miete": 0.7},
			"single_parent": {"Familie & Kinder": 1.0, "Wohnen & Miete": 0.9},
		},
		IncomeClass: map[string]map[string]float64{
			"low":    {"Wohnen & Miete": 1.0, "Steuern & Finanzen": 0.9},
			"medium": {"Familie & Kinder": 0.8, "Bildung & Arbeit": 0.7},
			"high":   {"Selbstständigkeit": 0.6, "Rente & Alter": 0.5},
		},
		AgeGroup: map[string]map[string]float64{
			"young":  {"Bildung & Arbeit": 1.0, "Familie & Kinder": 0.6},
			"middle": {"Familie & Kinder": 0.9, "Gesundheit & Pflege": 0.6},
			"senior": {"Rente & Alter": 1.0, "Gesundheit & Pflege": 0.8},
		},
	}
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "~/.local/share/foerdercheck/foerdercheck.db",
		},
		Catalog: CatalogConfig{
			Source: SourceDatabase,
		},
		Ranking: RankingConfig{
			MinScore:        0.3,
			MaxResults:      6,
			DefaultPriority: 5,
			OnlyAutomatable: true,
			Weights:         DefaultWeights(),
		},
		Locale: LocaleConfig{
			Language: "de",
		},
		Logging: LoggingConfig{
			JSON:  false,
			Debug: false,
		},
		HTTP: HTTPConfig{
			Addr:    "127.0.0.1:8650",
			Metrics: true,
		},
		MCP: MCPConfig{
			Enabled:   true,
			Transport: "stdio",
		},
	}
}
