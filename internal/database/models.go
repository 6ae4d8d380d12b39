package database

import (
	"database/sql"
	"time"

	"github.com/vijay-prabhu/foerdercheck/internal/profile"
)

// StoredProfile is a user record saved under a name
type StoredProfile struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Raw       profile.Raw `json:"profile"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// ListOptions contains options for listing programs
type ListOptions struct {
	Status          *string
	Category        *string
	AutomatableOnly bool
	Limit           int
	Offset          int
}

// NullString converts an empty string to NULL
func NullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// NullFloat64 is a helper to convert *float64 to sql.NullFloat64
func NullFloat64(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

// NullInt64 is a helper to convert *int to sql.NullInt64
func NullInt64(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

// Float64Ptr converts sql.NullFloat64 to *float64
func Float64Ptr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	return &nf.Float64
}

// IntPtr converts sql.NullInt64 to *int
func IntPtr(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	i := int(ni.Int64)
	return &i
}
