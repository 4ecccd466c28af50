package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/RomRom16/dossierfortil/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrProfileNotFound = errors.New("profile not found")

// Profile is the dossier header. Roles is stored as a JSON array in a TEXT
// column on both backends.
type Profile struct {
	ID                   string
	ManagerID            string
	CandidateID          string
	FullName             string
	Roles                []string
	JobTitle             string
	CandidateDescription string
	CreatedAt            string
	UpdatedAt            string
}

type Expertise struct {
	ID        string
	ProfileID string
	Expertise string
	CreatedAt string
}

type Tool struct {
	ID        string
	ProfileID string
	ToolName  string
	CreatedAt string
}

// Experience rows keep Expertises and ToolsUsed as JSON arrays in TEXT
// columns, mirroring Profile.Roles.
type Experience struct {
	ID                   string
	ProfileID            string
	Company              string
	Location             string
	StartDate            string
	EndDate              string
	JobTitle             string
	Sector               string
	Context              string
	Project              string
	Expertises           []string
	ToolsUsed            []string
	Responsibilities     string
	TechnicalEnvironment string
	CreatedAt            string
}

type Education struct {
	ID                    string
	ProfileID             string
	DegreeOrCertification string
	Institution           string
	Year                  *int
	CreatedAt             string
}

// ProfileGraph is a dossier with all of its child rows.
type ProfileGraph struct {
	Profile
	Expertises  []Expertise
	Tools       []Tool
	Experiences []Experience
	Educations  []Education
}

type ProfileRepository interface {
	CreateGraph(ctx context.Context, g ProfileGraph) (string, error)
	FindByID(ctx context.Context, id string) (Profile, error)
	GetGraph(ctx context.Context, id string) (ProfileGraph, error)
	ListAll(ctx context.Context) ([]Profile, error)
	ListByManager(ctx context.Context, managerID string) ([]Profile, error)
	ListByCandidate(ctx context.Context, candidateID string) ([]Profile, error)
	Delete(ctx context.Context, id string) error
}

type SQLProfileRepository struct {
	db database.DB
}

func NewSQLProfileRepository(db database.DB) *SQLProfileRepository {
	return &SQLProfileRepository{db: db}
}

// CreateGraph writes the dossier header and every child row in a single
// transaction. A failure anywhere rolls back the whole dossier.
func (r *SQLProfileRepository) CreateGraph(ctx context.Context, g ProfileGraph) (string, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	now := time.Now().UTC().Format(time.RFC3339)
	id := g.ID
	if id == "" {
		id = uuid.NewString()
	}

	roles, err := encodeStrings(g.Roles)
	if err != nil {
		return "", err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO profiles (id, manager_id, candidate_id, full_name, roles, job_title, candidate_description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		id, g.ManagerID, g.CandidateID, g.FullName, roles, g.JobTitle, g.CandidateDescription, now, now,
	)
	if err != nil {
		return "", err
	}

	for _, e := range g.Expertises {
		if _, err := tx.Exec(ctx,
			`INSERT INTO general_expertises (id, profile_id, expertise, created_at)
			 VALUES ($1, $2, $3, $4)`,
			uuid.NewString(), id, e.Expertise, now,
		); err != nil {
			return "", err
		}
	}

	for _, t := range g.Tools {
		if _, err := tx.Exec(ctx,
			`INSERT INTO tools (id, profile_id, tool_name, created_at)
			 VALUES ($1, $2, $3, $4)`,
			uuid.NewString(), id, t.ToolName, now,
		); err != nil {
			return "", err
		}
	}

	for _, e := range g.Experiences {
		expertises, err := encodeStrings(e.Expertises)
		if err != nil {
			return "", err
		}
		toolsUsed, err := encodeStrings(e.ToolsUsed)
		if err != nil {
			return "", err
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO experiences (id, profile_id, company, location, start_date, end_date, job_title, sector, context, project, expertises, tools_used, responsibilities, technical_environment, created_at)
			 VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
			uuid.NewString(), id, e.Company, e.Location, e.StartDate, e.EndDate, e.JobTitle, e.Sector, e.Context, e.Project, expertises, toolsUsed, e.Responsibilities, e.TechnicalEnvironment, now,
		); err != nil {
			return "", err
		}
	}

	for _, e := range g.Educations {
		if _, err := tx.Exec(ctx,
			`INSERT INTO educations (id, profile_id, degree_or_certification, institution, year, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.NewString(), id, e.DegreeOrCertification, e.Institution, e.Year, now,
		); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return id, nil
}

const profileColumns = `id, manager_id, candidate_id, full_name, roles, job_title, candidate_description, created_at, updated_at`

func scanProfile(row database.Row) (Profile, error) {
	var p Profile
	var roles string
	if err := row.Scan(&p.ID, &p.ManagerID, &p.CandidateID, &p.FullName, &roles, &p.JobTitle, &p.CandidateDescription, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return Profile{}, err
	}
	p.Roles = decodeStrings(roles)
	return p, nil
}

func (r *SQLProfileRepository) FindByID(ctx context.Context, id string) (Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`,
		id,
	)

	p, err := scanProfile(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, ErrProfileNotFound
		}
		return Profile{}, err
	}
	return p, nil
}

func (r *SQLProfileRepository) GetGraph(ctx context.Context, id string) (ProfileGraph, error) {
	p, err := r.FindByID(ctx, id)
	if err != nil {
		return ProfileGraph{}, err
	}

	g := ProfileGraph{Profile: p}
	if g.Expertises, err = r.expertisesOf(ctx, id); err != nil {
		return ProfileGraph{}, err
	}
	if g.Tools, err = r.toolsOf(ctx, id); err != nil {
		return ProfileGraph{}, err
	}
	if g.Experiences, err = r.experiencesOf(ctx, id); err != nil {
		return ProfileGraph{}, err
	}
	if g.Educations, err = r.educationsOf(ctx, id); err != nil {
		return ProfileGraph{}, err
	}
	return g, nil
}

func (r *SQLProfileRepository) ListAll(ctx context.Context) ([]Profile, error) {
	return r.listProfiles(ctx,
		`SELECT `+profileColumns+` FROM profiles ORDER BY created_at DESC`,
	)
}

func (r *SQLProfileRepository) ListByManager(ctx context.Context, managerID string) ([]Profile, error) {
	return r.listProfiles(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE manager_id = $1 ORDER BY created_at DESC`,
		managerID,
	)
}

func (r *SQLProfileRepository) ListByCandidate(ctx context.Context, candidateID string) ([]Profile, error) {
	return r.listProfiles(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE candidate_id = $1 ORDER BY created_at DESC`,
		candidateID,
	)
}

func (r *SQLProfileRepository) listProfiles(ctx context.Context, query string, args ...any) ([]Profile, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Profile, 0)
	for rows.Next() {
		var p Profile
		var roles string
		if err := rows.Scan(&p.ID, &p.ManagerID, &p.CandidateID, &p.FullName, &roles, &p.JobTitle, &p.CandidateDescription, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		p.Roles = decodeStrings(roles)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SQLProfileRepository) Delete(ctx context.Context, id string) error {
	rowsAffected, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *SQLProfileRepository) expertisesOf(ctx context.Context, profileID string) ([]Expertise, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, profile_id, expertise, created_at
		 FROM general_expertises WHERE profile_id = $1
		 ORDER BY created_at ASC, id ASC`,
		profileID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Expertise, 0)
	for rows.Next() {
		var e Expertise
		if err := rows.Scan(&e.ID, &e.ProfileID, &e.Expertise, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SQLProfileRepository) toolsOf(ctx context.Context, profileID string) ([]Tool, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, profile_id, tool_name, created_at
		 FROM tools WHERE profile_id = $1
		 ORDER BY created_at ASC, id ASC`,
		profileID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Tool, 0)
	for rows.Next() {
		var t Tool
		if err := rows.Scan(&t.ID, &t.ProfileID, &t.ToolName, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SQLProfileRepository) experiencesOf(ctx context.Context, profileID string) ([]Experience, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, profile_id, company, location, COALESCE(start_date, ''), COALESCE(end_date, ''), job_title, sector, context, project, expertises, tools_used, responsibilities, technical_environment, created_at
		 FROM experiences WHERE profile_id = $1
		 ORDER BY start_date DESC`,
		profileID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Experience, 0)
	for rows.Next() {
		var e Experience
		var expertises, toolsUsed string
		if err := rows.Scan(&e.ID, &e.ProfileID, &e.Company, &e.Location, &e.StartDate, &e.EndDate, &e.JobTitle, &e.Sector, &e.Context, &e.Project, &expertises, &toolsUsed, &e.Responsibilities, &e.TechnicalEnvironment, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Expertises = decodeStrings(expertises)
		e.ToolsUsed = decodeStrings(toolsUsed)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SQLProfileRepository) educationsOf(ctx context.Context, profileID string) ([]Education, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, profile_id, degree_or_certification, institution, year, created_at
		 FROM educations WHERE profile_id = $1
		 ORDER BY COALESCE(year, 0) DESC, created_at DESC`,
		profileID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Education, 0)
	for rows.Next() {
		var e Education
		var year sql.NullInt64
		if err := rows.Scan(&e.ID, &e.ProfileID, &e.DegreeOrCertification, &e.Institution, &year, &e.CreatedAt); err != nil {
			return nil, err
		}
		if year.Valid {
			y := int(year.Int64)
			e.Year = &y
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func encodeStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeStrings tolerates malformed stored JSON and returns an empty list
// rather than failing the read.
func decodeStrings(raw string) []string {
	out := []string{}
	if raw == "" {
		return out
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return []string{}
	}
	if out == nil {
		return []string{}
	}
	return out
}
