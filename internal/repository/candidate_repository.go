package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/RomRom16/dossierfortil/internal/database"

	"github.com/jackc/pgx/v5"
)

var ErrCandidateNotFound = errors.New("candidate not found")

type Candidate struct {
	ID        string
	ManagerID string
	FullName  string
	Email     string
	Phone     string
	CreatedAt string
	UpdatedAt string
}

// CandidateWithCount carries the dossier count shown on the candidate list.
type CandidateWithCount struct {
	Candidate
	DossierCount int
}

type CandidateRepository interface {
	Create(ctx context.Context, c Candidate) (Candidate, error)
	FindByID(ctx context.Context, id string) (Candidate, error)
	FindByEmail(ctx context.Context, email string) (Candidate, error)
	ListAll(ctx context.Context) ([]CandidateWithCount, error)
	ListByManager(ctx context.Context, managerID, excludeEmail string) ([]CandidateWithCount, error)
	Update(ctx context.Context, c Candidate) (Candidate, error)
	Delete(ctx context.Context, id string) error
}

type SQLCandidateRepository struct {
	db database.DB
}

func NewSQLCandidateRepository(db database.DB) *SQLCandidateRepository {
	return &SQLCandidateRepository{db: db}
}

const candidateColumns = `id, manager_id, full_name, COALESCE(email, ''), COALESCE(phone, ''), created_at, updated_at`

func scanCandidate(row database.Row) (Candidate, error) {
	var c Candidate
	err := row.Scan(&c.ID, &c.ManagerID, &c.FullName, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *SQLCandidateRepository) Create(ctx context.Context, c Candidate) (Candidate, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := r.db.Exec(ctx,
		`INSERT INTO candidates (id, manager_id, full_name, email, phone, created_at, updated_at)
		 VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7)`,
		c.ID, c.ManagerID, c.FullName, c.Email, c.Phone, now, now,
	)
	if err != nil {
		return Candidate{}, err
	}
	return r.FindByID(ctx, c.ID)
}

func (r *SQLCandidateRepository) FindByID(ctx context.Context, id string) (Candidate, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE id = $1`,
		id,
	)

	c, err := scanCandidate(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Candidate{}, ErrCandidateNotFound
		}
		return Candidate{}, err
	}
	return c, nil
}

func (r *SQLCandidateRepository) FindByEmail(ctx context.Context, email string) (Candidate, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE LOWER(email) = LOWER($1) LIMIT 1`,
		email,
	)

	c, err := scanCandidate(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Candidate{}, ErrCandidateNotFound
		}
		return Candidate{}, err
	}
	return c, nil
}

func (r *SQLCandidateRepository) ListAll(ctx context.Context) ([]CandidateWithCount, error) {
	return r.list(ctx,
		`SELECT c.id, c.manager_id, c.full_name, COALESCE(c.email, ''), COALESCE(c.phone, ''), c.created_at, c.updated_at,
		        (SELECT COUNT(*) FROM profiles p WHERE p.candidate_id = c.id)
		 FROM candidates c
		 ORDER BY c.created_at DESC`,
	)
}

// ListByManager returns the manager's portfolio. Candidates whose email
// matches excludeEmail are omitted, so a manager who is also a candidate does
// not see their own record among their staff.
func (r *SQLCandidateRepository) ListByManager(ctx context.Context, managerID, excludeEmail string) ([]CandidateWithCount, error) {
	return r.list(ctx,
		`SELECT c.id, c.manager_id, c.full_name, COALESCE(c.email, ''), COALESCE(c.phone, ''), c.created_at, c.updated_at,
		        (SELECT COUNT(*) FROM profiles p WHERE p.candidate_id = c.id)
		 FROM candidates c
		 WHERE c.manager_id = $1 AND LOWER(COALESCE(c.email, '')) <> LOWER($2)
		 ORDER BY c.created_at DESC`,
		managerID, excludeEmail,
	)
}

func (r *SQLCandidateRepository) list(ctx context.Context, query string, args ...any) ([]CandidateWithCount, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CandidateWithCount, 0)
	for rows.Next() {
		var c CandidateWithCount
		if err := rows.Scan(&c.ID, &c.ManagerID, &c.FullName, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt, &c.DossierCount); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update keeps the stored full name when the new one is blank; email and phone
// are overwritten as given, blank clearing the field.
func (r *SQLCandidateRepository) Update(ctx context.Context, c Candidate) (Candidate, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE candidates
		 SET full_name = COALESCE(NULLIF($1, ''), full_name),
		     email = NULLIF($2, ''),
		     phone = NULLIF($3, ''),
		     updated_at = $4
		 WHERE id = $5`,
		c.FullName, c.Email, c.Phone, now, c.ID,
	)
	if err != nil {
		return Candidate{}, err
	}
	if rowsAffected == 0 {
		return Candidate{}, ErrCandidateNotFound
	}
	return r.FindByID(ctx, c.ID)
}

func (r *SQLCandidateRepository) Delete(ctx context.Context, id string) error {
	rowsAffected, err := r.db.Exec(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrCandidateNotFound
	}
	return nil
}
