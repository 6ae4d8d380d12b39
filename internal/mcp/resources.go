package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/vijay-prabhu/foerdercheck/internal/catalog"
	"github.com/vijay-prabhu/foerdercheck/internal/output"
)

// Resource defines an MCP resource
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// Resource URIs
const (
	URICatalog    = "foerdercheck://catalog"
	URICategories = "foerdercheck://categories"
	URIProfiles   = "foerdercheck://profiles"
)

// ResourceDefinitions lists all available resources
var ResourceDefinitions = []Resource{
	{
		URI:         URICatalog,
		Name:        "Benefit Catalog",
		Description: "Active benefit programs, highest priority first",
		MimeType:    "text/plain",
	},
	{
		URI:         URICategories,
		Name:        "Categories",
		Description: "Program categories with counts",
		MimeType:    "text/plain",
	},
	{
		URI:         URIProfiles,
		Name:        "Saved Profiles",
		Description: "Saved user records usable as profile_id",
		MimeType:    "text/plain",
	},
}

// resourcesListResult is the response for resources/list
type resourcesListResult struct {
	Resources []Resource `json:"resources"`
}

// readResourceParams is the params for resources/read
type readResourceParams struct {
	URI string `json:"uri"`
}

// readResourceResult is the response for resources/read
type readResourceResult struct {
	Contents []resourceContent `json:"contents"`
}

type resourceContent struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
}

func (s *Server) handleReadResource(ctx context.Context, uri string) (string, error) {
	var data interface{}

	switch uri {
	case URICatalog:
		programs, err := s.advisor.Programs(ctx, catalog.Query{ActiveOnly: true})
		if err != nil {
			return "", err
		}
		data = programs
	case URICategories:
		programs, err := s.advisor.Programs(ctx, catalog.Query{ActiveOnly: true})
		if err != nil {
			return "", err
		}
		data = catalog.Categories(programs)
	case URIProfiles:
		if s.profiles == nil {
			return "No saved profiles.\n", nil
		}
		profiles, err := s.profiles.ListProfiles(ctx)
		if err != nil {
			return "", fmt.Errorf("database error: %w", err)
		}
		data = profiles
	default:
		return "", fmt.Errorf("unknown resource: %s", uri)
	}

	var sb strings.Builder
	if err := output.TableTo(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
