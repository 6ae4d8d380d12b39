package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/vijay-prabhu/foerdercheck/internal/catalog"
	"github.com/vijay-prabhu/foerdercheck/internal/program"
)

const programColumns = `
	id, typ, titel, name, kategorie, kurzbeschreibung, prioritaet, zielgruppen,
	monatlicher_betrag, betrag, status, automatisierbar, synonyme, pruefkriterien,
	created_at, updated_at`

// execer is satisfied by *DB and *sql.Tx
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// CreateProgram inserts a new program. An empty id is replaced by a UUID.
func (db *DB) CreateProgram(ctx context.Context, p *program.Program) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	args, err := programArgs(p)
	if err != nil {
		return err
	}
	now := time.Now()

	_, err = db.ExecContext(ctx, `
		INSERT INTO programs (`+programColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, append(args, now, now)...)
	return err
}

// UpsertProgram inserts p or replaces the stored program with the same id
func (db *DB) UpsertProgram(ctx context.Context, p *program.Program) error {
	return upsertProgram(ctx, db, p)
}

// ImportPrograms upserts programs in one transaction and returns the number written
func (db *DB) ImportPrograms(ctx context.Context, programs []program.Program) (int, error) {
	err := db.Transaction(ctx, func(tx *sql.Tx) error {
		for i := range programs {
			if err := upsertProgram(ctx, tx, &programs[i]); err != nil {
				return fmt.Errorf("program %s: %w", programs[i].DisplayTitle(), err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(programs), nil
}

func upsertProgram(ctx context.Context, ex execer, p *program.Program) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	args, err := programArgs(p)
	if err != nil {
		return err
	}
	now := time.Now()

	_, err = ex.ExecContext(ctx, `
		INSERT INTO programs (`+programColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			typ = excluded.typ, titel = excluded.titel, name = excluded.name,
			kategorie = excluded.kategorie, kurzbeschreibung = excluded.kurzbeschreibung,
			prioritaet = excluded.prioritaet, zielgruppen = excluded.zielgruppen,
			monatlicher_betrag = excluded.monatlicher_betrag, betrag = excluded.betrag,
			status = excluded.status, automatisierbar = excluded.automatisierbar,
			synonyme = excluded.synonyme, pruefkriterien = excluded.pruefkriterien,
			updated_at = excluded.updated_at
	`, append(args, now, now)...)
	return err
}

// programArgs returns the column values of p in programColumns order,
// without the timestamps
func programArgs(p *program.Program) ([]interface{}, error) {
	targetGroups, err := json.Marshal(nonNil(p.TargetGroups))
	if err != nil {
		return nil, fmt.Errorf("failed to encode target groups: %w", err)
	}
	synonyms, err := json.Marshal(nonNil(p.Synonyms))
	if err != nil {
		return nil, fmt.Errorf("failed to encode synonyms: %w", err)
	}

	var criteria sql.NullString
	if p.Criteria != nil {
		data, err := json.Marshal(p.Criteria)
		if err != nil {
			return nil, fmt.Errorf("failed to encode criteria: %w", err)
		}
		criteria = sql.NullString{String: string(data), Valid: true}
	}

	return []interface{}{
		p.ID, p.Type, p.Title, p.Name, string(p.Category), p.Description,
		NullInt64(p.Priority), string(targetGroups),
		NullFloat64(p.MonthlyAmount), NullFloat64(p.Amount),
		p.Status, p.Automatable, string(synonyms), criteria,
	}, nil
}

func scanProgram(row rowScanner) (*program.Program, error) {
	p := &program.Program{}
	var (
		category               string
		priority               sql.NullInt64
		targetGroups, synonyms string
		monthly, amount        sql.NullFloat64
		criteria               sql.NullString
		createdAt, updatedAt   time.Time
	)

	err := row.Scan(
		&p.ID, &p.Type, &p.Title, &p.Name, &category, &p.Description,
		&priority, &targetGroups, &monthly, &amount,
		&p.Status, &p.Automatable, &synonyms, &criteria,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Category = program.Category(category)
	p.Priority = IntPtr(priority)
	p.MonthlyAmount = Float64Ptr(monthly)
	p.Amount = Float64Ptr(amount)

	if err := json.Unmarshal([]byte(targetGroups), &p.TargetGroups); err != nil {
		return nil, fmt.Errorf("program %s: bad target groups: %w", p.ID, err)
	}
	if err := json.Unmarshal([]byte(synonyms), &p.Synonyms); err != nil {
		return nil, fmt.Errorf("program %s: bad synonyms: %w", p.ID, err)
	}
	if criteria.Valid {
		p.Criteria = &program.Criteria{}
		if err := json.Unmarshal([]byte(criteria.String), p.Criteria); err != nil {
			return nil, fmt.Errorf("program %s: bad criteria: %w", p.ID, err)
		}
	}
	if len(p.TargetGroups) == 0 {
		p.TargetGroups = nil
	}
	if len(p.Synonyms) == 0 {
		p.Synonyms = nil
	}
	return p, nil
}

// GetProgram retrieves a program by ID
func (db *DB) GetProgram(ctx context.Context, id string) (*program.Program, error) {
	row := db.QueryRowContext(ctx, `SELECT `+programColumns+` FROM programs WHERE id = ?`, id)
	p, err := scanProgram(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListPrograms retrieves programs with optional filters, highest priority first
func (db *DB) ListPrograms(ctx context.Context, opts ListOptions) ([]program.Program, error) {
	query := `SELECT ` + programColumns + ` FROM programs WHERE 1=1`
	args := []interface{}{}

	if opts.Status != nil {
		query += " AND LOWER(status) = LOWER(?)"
		args = append(args, *opts.Status)
	}
	if opts.Category != nil {
		query += " AND LOWER(kategorie) = LOWER(?)"
		args = append(args, *opts.Category)
	}
	if opts.AutomatableOnly {
		query += " AND automatisierbar = 1"
	}

	query += " ORDER BY COALESCE(prioritaet, 0) DESC, titel ASC"

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
		if opts.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", opts.Offset)
		}
	}

	return db.queryPrograms(ctx, query, args...)
}

// SearchPrograms finds programs whose title, name, type, description or
// synonyms contain query
func (db *DB) SearchPrograms(ctx context.Context, query string, limit int) ([]program.Program, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"

	sqlQuery := `SELECT ` + programColumns + ` FROM programs
		WHERE LOWER(titel) LIKE ? OR LOWER(name) LIKE ? OR LOWER(typ) LIKE ?
		   OR LOWER(kurzbeschreibung) LIKE ? OR LOWER(synonyme) LIKE ?
		ORDER BY COALESCE(prioritaet, 0) DESC, titel ASC`
	args := []interface{}{pattern, pattern, pattern, pattern, pattern}

	if limit > 0 {
		sqlQuery += fmt.Sprintf(" LIMIT %d", limit)
	}

	return db.queryPrograms(ctx, sqlQuery, args...)
}

func (db *DB) queryPrograms(ctx context.Context, query string, args ...interface{}) ([]program.Program, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var programs []program.Program
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, err
		}
		programs = append(programs, *p)
	}
	return programs, rows.Err()
}

// DeleteProgram removes a program
func (db *DB) DeleteProgram(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM programs WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("program not found: %s", id)
	}
	return nil
}

// CountPrograms returns the number of stored programs
func (db *DB) CountPrograms(ctx context.Context) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM programs`).Scan(&count)
	return count, err
}

// Programs implements catalog.Source
func (db *DB) Programs(ctx context.Context, q catalog.Query) ([]program.Program, error) {
	opts := ListOptions{AutomatableOnly: q.AutomatableOnly}
	if q.ActiveOnly {
		status := program.StatusActive
		opts.Status = &status
	}
	if q.Category != "" {
		category := string(q.Category)
		opts.Category = &category
	}

	programs, err := db.ListPrograms(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}
	return catalog.Apply(programs, q), nil
}

// SaveProfile stores a user record under its name, replacing the record
// previously saved under that name
func (db *DB) SaveProfile(ctx context.Context, sp *StoredProfile) error {
	if strings.TrimSpace(sp.Name) == "" {
		return errors.New("profile name is required")
	}

	data, err := json.Marshal(sp.Raw)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	existing, err := db.GetProfileByName(ctx, sp.Name)
	if err != nil {
		return err
	}

	now := time.Now()
	sp.UpdatedAt = now

	if existing != nil {
		sp.ID = existing.ID
		sp.CreatedAt = existing.CreatedAt
		_, err = db.ExecContext(ctx, `
			UPDATE profiles SET data = ?, updated_at = ? WHERE id = ?
		`, string(data), sp.UpdatedAt, sp.ID)
		return err
	}

	if sp.ID == "" {
		sp.ID = uuid.New().String()
	}
	sp.CreatedAt = now

	_, err = db.ExecContext(ctx, `
		INSERT INTO profiles (id, name, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, sp.ID, sp.Name, string(data), sp.CreatedAt, sp.UpdatedAt)
	return err
}

func scanProfile(row rowScanner) (*StoredProfile, error) {
	sp := &StoredProfile{}
	var data string

	if err := row.Scan(&sp.ID, &sp.Name, &data, &sp.CreatedAt, &sp.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(data), &sp.Raw); err != nil {
		return nil, fmt.Errorf("profile %s: bad data: %w", sp.ID, err)
	}
	return sp, nil
}

// GetProfile retrieves a saved user record by ID
func (db *DB) GetProfile(ctx context.Context, id string) (*StoredProfile, error) {
	row := db.QueryRowContext(ctx, `
		SELECT id, name, data, created_at, updated_at FROM profiles WHERE id = ?
	`, id)
	sp, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return sp, err
}

// GetProfileByName retrieves a saved user record by name (case-insensitive)
func (db *DB) GetProfileByName(ctx context.Context, name string) (*StoredProfile, error) {
	row := db.QueryRowContext(ctx, `
		SELECT id, name, data, created_at, updated_at FROM profiles
		WHERE LOWER(name) = LOWER(?) LIMIT 1
	`, name)
	sp, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return sp, err
}

// FindProfile looks a saved user record up by ID, then by name
func (db *DB) FindProfile(ctx context.Context, ref string) (*StoredProfile, error) {
	sp, err := db.GetProfile(ctx, ref)
	if err != nil || sp != nil {
		return sp, err
	}
	return db.GetProfileByName(ctx, ref)
}

// ListProfiles retrieves all saved user records ordered by name
func (db *DB) ListProfiles(ctx context.Context) ([]StoredProfile, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, name, data, created_at, updated_at FROM profiles ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []StoredProfile
	for rows.Next() {
		sp, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *sp)
	}
	return profiles, rows.Err()
}

// DeleteProfile removes a saved user record
func (db *DB) DeleteProfile(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("profile not found: %s", id)
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
