package mcp

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// profileProperties are the ways a tool call can name the user record
var profileProperties = map[string]interface{}{
	"profile": map[string]interface{}{
		"type": "object",
		"description": "User record. Fields: age, lebenssituation {familienstand, kinder_anzahl, " +
			"haushaltsmitglieder_anzahl, monatliches_nettoeinkommen, wohnart, monatliche_miete_kalt}. " +
			"Every field is optional; missing data makes checks indeterminate instead of failing them.",
	},
	"profile_id": map[string]interface{}{
		"type":        "string",
		"description": "ID or name of a saved profile. Used when 'profile' is omitted.",
	},
}

func withProfile(extra map[string]interface{}) map[string]interface{} {
	props := make(map[string]interface{}, len(profileProperties)+len(extra))
	for k, v := range profileProperties {
		props[k] = v
	}
	for k, v := range extra {
		props[k] = v
	}
	return props
}

// ToolDefinitions contains all available MCP tools
var ToolDefinitions = []Tool{
	{
		Name:        "evaluate_eligibility",
		Description: "Check whether a user record is eligible for one benefit program. Returns eligible, ineligible or indeterminate with per-criterion reasons and missing data.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": withProfile(map[string]interface{}{
				"program_id": map[string]interface{}{
					"type":        "string",
					"description": "Program ID, e.g. 'wohngeld'",
				},
			}),
			"required": []string{"program_id"},
		},
	},
	{
		Name:        "evaluate_catalog",
		Description: "Check a user record against every active benefit program. Eligible programs come first, then by priority.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": withProfile(map[string]interface{}{
				"status": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"eligible", "ineligible", "indeterminate", "all"},
					"description": "Only return results with this status. Use 'all' or omit for no filter.",
				},
			}),
		},
	},
	{
		Name:        "recommend_programs",
		Description: "Rank benefit programs by relevance to a user record, with a likelihood label and a short rationale.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": withProfile(map[string]interface{}{
				"max_results": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of recommendations (default: 6)",
				},
			}),
		},
	},
	{
		Name:        "list_programs",
		Description: "List benefit programs in the catalog, highest priority first.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"category": map[string]interface{}{
					"type":        "string",
					"description": "Filter by category, e.g. 'Familie & Kinder'",
				},
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search title, name, description and synonyms",
				},
				"automatable_only": map[string]interface{}{
					"type":        "boolean",
					"description": "Only programs with an automated application",
				},
			},
		},
	},
	{
		Name:        "get_program",
		Description: "Get a benefit program including its eligibility criteria.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "Program ID",
				},
			},
			"required": []string{"id"},
		},
	},
	{
		Name:        "list_profiles",
		Description: "List saved user records that can be passed as profile_id.",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
	},
}
