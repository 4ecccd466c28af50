package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/RomRom16/dossierfortil/internal/authz"
	"github.com/RomRom16/dossierfortil/internal/database"

	"github.com/jackc/pgx/v5"
)

var ErrUserNotFound = errors.New("user not found")

type User struct {
	ID       string
	Email    string
	FullName string
}

type UserWithRoles struct {
	User
	Roles []authz.Role
}

type UserRepository interface {
	Upsert(ctx context.Context, u User) error
	FindByID(ctx context.Context, id string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	RolesOf(ctx context.Context, userID string) (authz.RoleSet, error)
	GrantRole(ctx context.Context, userID string, role authz.Role) error
	ReplaceRoles(ctx context.Context, userID string, roles []authz.Role) error
	ListWithRoles(ctx context.Context) ([]UserWithRoles, error)
}

type SQLUserRepository struct {
	db database.DB
}

func NewSQLUserRepository(db database.DB) *SQLUserRepository {
	return &SQLUserRepository{db: db}
}

// Upsert records the identity asserted by the caller's headers. The stored
// email and name track the headers on every request.
func (r *SQLUserRepository) Upsert(ctx context.Context, u User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, email, full_name)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET email = excluded.email, full_name = excluded.full_name`,
		u.ID, strings.ToLower(u.Email), u.FullName,
	)
	return err
}

func (r *SQLUserRepository) FindByID(ctx context.Context, id string) (User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, full_name FROM users WHERE id = $1`,
		id,
	)

	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.FullName); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (r *SQLUserRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, full_name FROM users WHERE LOWER(email) = LOWER($1) LIMIT 1`,
		email,
	)

	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.FullName); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return u, nil
}

// RolesOf reads the current assignment from the store. Roles are never cached;
// a revocation takes effect on the next request.
func (r *SQLUserRepository) RolesOf(ctx context.Context, userID string) (authz.RoleSet, error) {
	rows, err := r.db.Query(ctx,
		`SELECT role FROM user_roles WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := authz.NewRoleSet()
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		set[authz.Role(role)] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return set, nil
}

func (r *SQLUserRepository) GrantRole(ctx context.Context, userID string, role authz.Role) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_roles (user_id, role) VALUES ($1, $2)
		 ON CONFLICT (user_id, role) DO NOTHING`,
		userID, string(role),
	)
	return err
}

// ReplaceRoles swaps the full assignment in one transaction so a failed write
// never leaves the user with a partial role set.
func (r *SQLUserRepository) ReplaceRoles(ctx context.Context, userID string, roles []authz.Role) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, userID); err != nil {
		return err
	}
	for _, role := range roles {
		if _, err := tx.Exec(ctx,
			`INSERT INTO user_roles (user_id, role) VALUES ($1, $2)`,
			userID, string(role),
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *SQLUserRepository) ListWithRoles(ctx context.Context) ([]UserWithRoles, error) {
	rows, err := r.db.Query(ctx,
		`SELECT u.id, u.email, u.full_name, COALESCE(ur.role, '')
		 FROM users u
		 LEFT JOIN user_roles ur ON ur.user_id = u.id
		 ORDER BY u.email ASC, u.id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]UserWithRoles, 0)
	index := map[string]int{}
	for rows.Next() {
		var u User
		var role string
		if err := rows.Scan(&u.ID, &u.Email, &u.FullName, &role); err != nil {
			return nil, err
		}

		i, ok := index[u.ID]
		if !ok {
			out = append(out, UserWithRoles{User: u, Roles: []authz.Role{}})
			i = len(out) - 1
			index[u.ID] = i
		}
		if role != "" {
			out[i].Roles = append(out[i].Roles, authz.Role(role))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
