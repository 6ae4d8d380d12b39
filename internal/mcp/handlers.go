package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/vijay-prabhu/foerdercheck/internal/catalog"
	"github.com/vijay-prabhu/foerdercheck/internal/eligibility"
	"github.com/vijay-prabhu/foerdercheck/internal/profile"
	"github.com/vijay-prabhu/foerdercheck/internal/program"
)

func (s *Server) registerHandlers() {
	s.handlers["evaluate_eligibility"] = s.handleEvaluateEligibility
	s.handlers["evaluate_catalog"] = s.handleEvaluateCatalog
	s.handlers["recommend_programs"] = s.handleRecommendPrograms
	s.handlers["list_programs"] = s.handleListPrograms
	s.handlers["get_program"] = s.handleGetProgram
	s.handlers["list_profiles"] = s.handleListProfiles
}

type profileParams struct {
	Profile   *profile.Raw `json:"profile"`
	ProfileID string       `json:"profile_id"`
}

// resolveProfile returns the inline record, the saved record, or an empty one
func (s *Server) resolveProfile(ctx context.Context, p profileParams) (*profile.Raw, error) {
	if p.Profile != nil {
		return p.Profile, nil
	}
	if p.ProfileID == "" {
		return &profile.Raw{}, nil
	}
	if s.profiles == nil {
		return nil, errors.New("saved profiles are not available")
	}

	sp, err := s.profiles.FindProfile(ctx, p.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if sp == nil {
		return nil, fmt.Errorf("profile not found: %s", p.ProfileID)
	}
	return &sp.Raw, nil
}

func decodeParams(params json.RawMessage, v interface{}) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, v); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	return nil
}

type evaluateEligibilityParams struct {
	profileParams
	ProgramID string `json:"program_id"`
}

func (s *Server) handleEvaluateEligibility(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p evaluateEligibilityParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if p.ProgramID == "" {
		return nil, errors.New("program_id is required")
	}

	raw, err := s.resolveProfile(ctx, p.profileParams)
	if err != nil {
		return nil, err
	}

	return s.advisor.EvaluateProgram(ctx, p.ProgramID, raw)
}

type evaluateCatalogParams struct {
	profileParams
	Status string `json:"status"`
}

type catalogResult struct {
	Results []eligibility.ProgramResult `json:"results"`
	Stats   eligibility.Stats           `json:"stats"`
}

func (s *Server) handleEvaluateCatalog(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p evaluateCatalogParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	raw, err := s.resolveProfile(ctx, p.profileParams)
	if err != nil {
		return nil, err
	}

	results := s.advisor.EvaluateCatalog(ctx, raw)
	stats := eligibility.GetStats(results)

	switch p.Status {
	case "", "all":
	case string(eligibility.Eligible), string(eligibility.Ineligible), string(eligibility.Indeterminate):
		results = eligibility.FilterByStatus(results, eligibility.Status(p.Status))
		if results == nil {
			results = []eligibility.ProgramResult{}
		}
	default:
		return nil, fmt.Errorf("unknown status: %s", p.Status)
	}

	return catalogResult{Results: results, Stats: stats}, nil
}

type recommendProgramsParams struct {
	profileParams
	MaxResults int `json:"max_results"`
}

func (s *Server) handleRecommendPrograms(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p recommendProgramsParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	raw, err := s.resolveProfile(ctx, p.profileParams)
	if err != nil {
		return nil, err
	}

	return s.advisor.Recommend(ctx, raw, p.MaxResults), nil
}

type listProgramsParams struct {
	Category        string `json:"category"`
	Query           string `json:"query"`
	AutomatableOnly bool   `json:"automatable_only"`
}

func (s *Server) handleListPrograms(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p listProgramsParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	return s.advisor.Programs(ctx, catalog.Query{
		Category:        program.Category(p.Category),
		Search:          p.Query,
		AutomatableOnly: p.AutomatableOnly,
	})
}

type getProgramParams struct {
	ID string `json:"id"`
}

func (s *Server) handleGetProgram(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p getProgramParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if p.ID == "" {
		return nil, errors.New("id is required")
	}

	return s.advisor.Program(ctx, p.ID)
}

type profileSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (s *Server) handleListProfiles(ctx context.Context, params json.RawMessage) (interface{}, error) {
	if s.profiles == nil {
		return []profileSummary{}, nil
	}

	profiles, err := s.profiles.ListProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	summaries := make([]profileSummary, len(profiles))
	for i, p := range profiles {
		summaries[i] = profileSummary{ID: p.ID, Name: p.Name}
	}
	return summaries, nil
}
