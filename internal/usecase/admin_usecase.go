package usecase

import (
	"context"
	"fmt"

	"github.com/RomRom16/dossierfortil/internal/authz"
	"github.com/RomRom16/dossierfortil/internal/repository"
)

type AdminUsecase struct {
	users repository.UserRepository
}

func NewAdminUsecase(users repository.UserRepository) *AdminUsecase {
	return &AdminUsecase{users: users}
}

// ListUsers returns every user with their roles. Admin only.
func (uc *AdminUsecase) ListUsers(ctx context.Context, actor authz.Principal) ([]repository.UserWithRoles, error) {
	if err := uc.requireAdmin(ctx, actor); err != nil {
		return nil, err
	}
	return uc.users.ListWithRoles(ctx)
}

// ReplaceUserRoles swaps a user's full role assignment. The closed role set
// is validated before any write.
func (uc *AdminUsecase) ReplaceUserRoles(ctx context.Context, actor authz.Principal, userID string, roles []authz.Role) ([]authz.Role, error) {
	if err := uc.requireAdmin(ctx, actor); err != nil {
		return nil, err
	}

	seen := authz.NewRoleSet()
	deduped := make([]authz.Role, 0, len(roles))
	for _, r := range roles {
		if !authz.ValidRole(r) {
			return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, string(r))
		}
		if seen.Has(r) {
			continue
		}
		seen[r] = struct{}{}
		deduped = append(deduped, r)
	}

	if _, err := uc.users.FindByID(ctx, userID); err != nil {
		if err == repository.ErrUserNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := uc.users.ReplaceRoles(ctx, userID, deduped); err != nil {
		return nil, err
	}
	return sortedRoles(seen), nil
}

func (uc *AdminUsecase) requireAdmin(ctx context.Context, actor authz.Principal) error {
	roles, err := uc.users.RolesOf(ctx, actor.ID)
	if err != nil {
		return err
	}
	if !roles.IsAdmin() {
		return ErrForbidden
	}
	return nil
}
