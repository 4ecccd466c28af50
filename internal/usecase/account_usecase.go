package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/RomRom16/dossierfortil/internal/authz"
	"github.com/RomRom16/dossierfortil/internal/repository"

	"github.com/google/uuid"
)

// Account is the signed-in user with their live role assignment.
type Account struct {
	ID       string
	Email    string
	FullName string
	Roles    []authz.Role
}

type AccountUsecase struct {
	users               repository.UserRepository
	bootstrapAdminEmail string
}

func NewAccountUsecase(users repository.UserRepository, bootstrapAdminEmail string) *AccountUsecase {
	return &AccountUsecase{
		users:               users,
		bootstrapAdminEmail: strings.ToLower(strings.TrimSpace(bootstrapAdminEmail)),
	}
}

// Me returns the caller's account and grants the default role when the user
// has none yet, so a first request is enough to become usable.
func (uc *AccountUsecase) Me(ctx context.Context, actor authz.Principal) (Account, error) {
	roles, err := uc.ensureDefaultRole(ctx, actor)
	if err != nil {
		return Account{}, err
	}
	return Account{
		ID:       actor.ID,
		Email:    actor.Email,
		FullName: actor.FullName,
		Roles:    roles,
	}, nil
}

// SignIn resolves an existing account by email. Unknown emails fail as
// unauthenticated rather than revealing whether the account exists.
func (uc *AccountUsecase) SignIn(ctx context.Context, email string) (Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return Account{}, fmt.Errorf("%w: email is required", ErrValidation)
	}

	u, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return Account{}, ErrUnauthenticated
		}
		return Account{}, err
	}

	roles, err := uc.ensureDefaultRole(ctx, authz.Principal{ID: u.ID, Email: u.Email, FullName: u.FullName})
	if err != nil {
		return Account{}, err
	}
	return Account{ID: u.ID, Email: u.Email, FullName: u.FullName, Roles: roles}, nil
}

// SignUp registers an account. An existing account with the same email is
// returned as-is, making the call idempotent.
func (uc *AccountUsecase) SignUp(ctx context.Context, email, fullName string) (Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return Account{}, fmt.Errorf("%w: email is required", ErrValidation)
	}

	u, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		if err != repository.ErrUserNotFound {
			return Account{}, err
		}
		u = repository.User{ID: uuid.NewString(), Email: email, FullName: strings.TrimSpace(fullName)}
		if err := uc.users.Upsert(ctx, u); err != nil {
			return Account{}, err
		}
	}

	roles, err := uc.ensureDefaultRole(ctx, authz.Principal{ID: u.ID, Email: u.Email, FullName: u.FullName})
	if err != nil {
		return Account{}, err
	}
	return Account{ID: u.ID, Email: u.Email, FullName: u.FullName, Roles: roles}, nil
}

// ensureDefaultRole grants consultant (or admin for the bootstrap email) when
// the user has no role yet, then returns the current assignment sorted for
// stable responses.
func (uc *AccountUsecase) ensureDefaultRole(ctx context.Context, actor authz.Principal) ([]authz.Role, error) {
	set, err := uc.users.RolesOf(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if len(set) == 0 {
		role := authz.DefaultRole(actor.Email, uc.bootstrapAdminEmail)
		if err := uc.users.GrantRole(ctx, actor.ID, role); err != nil {
			return nil, err
		}
		set = authz.NewRoleSet(role)
	}

	return sortedRoles(set), nil
}

func sortedRoles(set authz.RoleSet) []authz.Role {
	out := make([]authz.Role, 0, len(set))
	for _, r := range []authz.Role{authz.RoleAdmin, authz.RoleBusinessManager, authz.RoleConsultant} {
		if set.Has(r) {
			out = append(out, r)
		}
	}
	return out
}
