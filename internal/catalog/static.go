package catalog

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/goccy/go-json"

	"github.com/vijay-prabhu/foerdercheck/internal/program"
)

//go:embed data/seed.json
var seedJSON []byte

// Static serves an in-memory catalog
type Static struct {
	programs []program.Program
}

// NewStatic creates a Static source over programs
func NewStatic(programs []program.Program) *Static {
	return &Static{programs: slices.Clone(programs)}
}

// Programs returns the matching programs
func (s *Static) Programs(ctx context.Context, q Query) ([]program.Program, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Apply(s.programs, q), nil
}

// Seed returns the built-in catalog of official federal programs
func Seed() ([]program.Program, error) {
	programs, err := Parse(seedJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to parse seed catalog: %w", err)
	}
	return programs, nil
}

// SeedSource returns a Static source over the built-in catalog
func SeedSource() (*Static, error) {
	programs, err := Seed()
	if err != nil {
		return nil, err
	}
	return &Static{programs: programs}, nil
}

// Parse decodes a JSON array of programs. A program without an id takes
// its type as id. Programs without either, or with duplicate ids, are rejected.
func Parse(data []byte) ([]program.Program, error) {
	var programs []program.Program
	if err := json.Unmarshal(data, &programs); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	var errs []error
	seen := make(map[string]bool, len(programs))
	for i := range programs {
		p := &programs[i]
		if strings.TrimSpace(p.ID) == "" {
			p.ID = p.Type
		}
		if strings.TrimSpace(p.ID) == "" {
			errs = append(errs, fmt.Errorf("program %d (%s): missing id", i, p.DisplayTitle()))
			continue
		}
		if seen[p.ID] {
			errs = append(errs, fmt.Errorf("program %d: duplicate id %q", i, p.ID))
		}
		seen[p.ID] = true
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return programs, nil
}

// LoadFile reads a JSON catalog from path
func LoadFile(path string) ([]program.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// File serves a JSON catalog file, re-read on every call
type File struct {
	path string
}

// NewFile creates a File source for path
func NewFile(path string) *File {
	return &File{path: path}
}

// Programs reads the file and returns the matching programs
func (f *File) Programs(ctx context.Context, q Query) ([]program.Program, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	programs, err := LoadFile(f.path)
	if err != nil {
		return nil, err
	}
	return Apply(programs, q), nil
}
