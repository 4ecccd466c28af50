package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/RomRom16/dossierfortil/internal/authz"
	"github.com/RomRom16/dossierfortil/internal/repository"

	"github.com/google/uuid"
)

type CandidateInput struct {
	FullName string
	Email    string
	Phone    string
}

type CandidateUsecase struct {
	users      repository.UserRepository
	candidates repository.CandidateRepository
}

func NewCandidateUsecase(users repository.UserRepository, candidates repository.CandidateRepository) *CandidateUsecase {
	return &CandidateUsecase{users: users, candidates: candidates}
}

// List returns the candidates visible to the actor: everyone for admins, the
// manager's own portfolio minus themselves for business managers, and at most
// the caller's own record for consultants.
func (uc *CandidateUsecase) List(ctx context.Context, actor authz.Principal) ([]repository.CandidateWithCount, error) {
	roles, err := uc.users.RolesOf(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	switch {
	case roles.IsAdmin():
		return uc.candidates.ListAll(ctx)
	case roles.Has(authz.RoleBusinessManager):
		return uc.candidates.ListByManager(ctx, actor.ID, actor.Email)
	default:
		c, err := uc.candidates.FindByEmail(ctx, actor.Email)
		if err != nil {
			if err == repository.ErrCandidateNotFound {
				return []repository.CandidateWithCount{}, nil
			}
			return nil, err
		}
		return []repository.CandidateWithCount{{Candidate: c}}, nil
	}
}

// Create registers a candidate owned by the actor.
func (uc *CandidateUsecase) Create(ctx context.Context, actor authz.Principal, in CandidateInput) (repository.Candidate, error) {
	fullName := strings.TrimSpace(in.FullName)
	if fullName == "" {
		return repository.Candidate{}, fmt.Errorf("%w: full_name is required", ErrValidation)
	}

	return uc.candidates.Create(ctx, repository.Candidate{
		ID:        uuid.NewString(),
		ManagerID: actor.ID,
		FullName:  fullName,
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
	})
}

// Get returns one candidate. The existence check runs before the ownership
// check so an unknown id is a 404 for everyone.
func (uc *CandidateUsecase) Get(ctx context.Context, actor authz.Principal, id string) (repository.Candidate, error) {
	c, err := uc.candidates.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrCandidateNotFound {
			return repository.Candidate{}, ErrNotFound
		}
		return repository.Candidate{}, err
	}

	roles, err := uc.users.RolesOf(ctx, actor.ID)
	if err != nil {
		return repository.Candidate{}, err
	}
	if !authz.CanManageCandidate(actor, roles, c.ManagerID, c.Email) {
		return repository.Candidate{}, ErrForbidden
	}
	return c, nil
}

func (uc *CandidateUsecase) Update(ctx context.Context, actor authz.Principal, id string, in CandidateInput) (repository.Candidate, error) {
	c, err := uc.Get(ctx, actor, id)
	if err != nil {
		return repository.Candidate{}, err
	}

	c.FullName = strings.TrimSpace(in.FullName)
	c.Email = strings.TrimSpace(in.Email)
	c.Phone = strings.TrimSpace(in.Phone)

	updated, err := uc.candidates.Update(ctx, c)
	if err != nil {
		if err == repository.ErrCandidateNotFound {
			return repository.Candidate{}, ErrNotFound
		}
		return repository.Candidate{}, err
	}
	return updated, nil
}

func (uc *CandidateUsecase) Delete(ctx context.Context, actor authz.Principal, id string) error {
	if _, err := uc.Get(ctx, actor, id); err != nil {
		return err
	}

	if err := uc.candidates.Delete(ctx, id); err != nil {
		if err == repository.ErrCandidateNotFound {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// MyCandidate returns the candidate record whose email matches the caller's.
func (uc *CandidateUsecase) MyCandidate(ctx context.Context, actor authz.Principal) (repository.Candidate, error) {
	c, err := uc.candidates.FindByEmail(ctx, actor.Email)
	if err != nil {
		if err == repository.ErrCandidateNotFound {
			return repository.Candidate{}, ErrNotFound
		}
		return repository.Candidate{}, err
	}
	return c, nil
}
