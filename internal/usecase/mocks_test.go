package usecase

import (
	"context"
	"errors"

	"github.com/RomRom16/dossierfortil/internal/ai"
	"github.com/RomRom16/dossierfortil/internal/authz"
	"github.com/RomRom16/dossierfortil/internal/repository"
)

var errNotImplemented = errors.New("not implemented")

type mockUserRepo struct {
	upsertFn        func(ctx context.Context, u repository.User) error
	findByIDFn      func(ctx context.Context, id string) (repository.User, error)
	findByEmailFn   func(ctx context.Context, email string) (repository.User, error)
	rolesOfFn       func(ctx context.Context, userID string) (authz.RoleSet, error)
	grantRoleFn     func(ctx context.Context, userID string, role authz.Role) error
	replaceRolesFn  func(ctx context.Context, userID string, roles []authz.Role) error
	listWithRolesFn func(ctx context.Context) ([]repository.UserWithRoles, error)
}

func (m *mockUserRepo) Upsert(ctx context.Context, u repository.User) error {
	if m.upsertFn == nil {
		return errNotImplemented
	}
	return m.upsertFn(ctx, u)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (repository.User, error) {
	if m.findByIDFn == nil {
		return repository.User{}, errNotImplemented
	}
	return m.findByIDFn(ctx, id)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (repository.User, error) {
	if m.findByEmailFn == nil {
		return repository.User{}, errNotImplemented
	}
	return m.findByEmailFn(ctx, email)
}

func (m *mockUserRepo) RolesOf(ctx context.Context, userID string) (authz.RoleSet, error) {
	if m.rolesOfFn == nil {
		return nil, errNotImplemented
	}
	return m.rolesOfFn(ctx, userID)
}

func (m *mockUserRepo) GrantRole(ctx context.Context, userID string, role authz.Role) error {
	if m.grantRoleFn == nil {
		return errNotImplemented
	}
	return m.grantRoleFn(ctx, userID, role)
}

func (m *mockUserRepo) ReplaceRoles(ctx context.Context, userID string, roles []authz.Role) error {
	if m.replaceRolesFn == nil {
		return errNotImplemented
	}
	return m.replaceRolesFn(ctx, userID, roles)
}

func (m *mockUserRepo) ListWithRoles(ctx context.Context) ([]repository.UserWithRoles, error) {
	if m.listWithRolesFn == nil {
		return nil, errNotImplemented
	}
	return m.listWithRolesFn(ctx)
}

type mockCandidateRepo struct {
	createFn        func(ctx context.Context, c repository.Candidate) (repository.Candidate, error)
	findByIDFn      func(ctx context.Context, id string) (repository.Candidate, error)
	findByEmailFn   func(ctx context.Context, email string) (repository.Candidate, error)
	listAllFn       func(ctx context.Context) ([]repository.CandidateWithCount, error)
	listByManagerFn func(ctx context.Context, managerID, excludeEmail string) ([]repository.CandidateWithCount, error)
	updateFn        func(ctx context.Context, c repository.Candidate) (repository.Candidate, error)
	deleteFn        func(ctx context.Context, id string) error
}

func (m *mockCandidateRepo) Create(ctx context.Context, c repository.Candidate) (repository.Candidate, error) {
	if m.createFn == nil {
		return repository.Candidate{}, errNotImplemented
	}
	return m.createFn(ctx, c)
}

func (m *mockCandidateRepo) FindByID(ctx context.Context, id string) (repository.Candidate, error) {
	if m.findByIDFn == nil {
		return repository.Candidate{}, errNotImplemented
	}
	return m.findByIDFn(ctx, id)
}

func (m *mockCandidateRepo) FindByEmail(ctx context.Context, email string) (repository.Candidate, error) {
	if m.findByEmailFn == nil {
		return repository.Candidate{}, errNotImplemented
	}
	return m.findByEmailFn(ctx, email)
}

func (m *mockCandidateRepo) ListAll(ctx context.Context) ([]repository.CandidateWithCount, error) {
	if m.listAllFn == nil {
		return nil, errNotImplemented
	}
	return m.listAllFn(ctx)
}

func (m *mockCandidateRepo) ListByManager(ctx context.Context, managerID, excludeEmail string) ([]repository.CandidateWithCount, error) {
	if m.listByManagerFn == nil {
		return nil, errNotImplemented
	}
	return m.listByManagerFn(ctx, managerID, excludeEmail)
}

func (m *mockCandidateRepo) Update(ctx context.Context, c repository.Candidate) (repository.Candidate, error) {
	if m.updateFn == nil {
		return repository.Candidate{}, errNotImplemented
	}
	return m.updateFn(ctx, c)
}

func (m *mockCandidateRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn == nil {
		return errNotImplemented
	}
	return m.deleteFn(ctx, id)
}

type mockProfileRepo struct {
	createGraphFn     func(ctx context.Context, g repository.ProfileGraph) (string, error)
	findByIDFn        func(ctx context.Context, id string) (repository.Profile, error)
	getGraphFn        func(ctx context.Context, id string) (repository.ProfileGraph, error)
	listAllFn         func(ctx context.Context) ([]repository.Profile, error)
	listByManagerFn   func(ctx context.Context, managerID string) ([]repository.Profile, error)
	listByCandidateFn func(ctx context.Context, candidateID string) ([]repository.Profile, error)
	deleteFn          func(ctx context.Context, id string) error
}

func (m *mockProfileRepo) CreateGraph(ctx context.Context, g repository.ProfileGraph) (string, error) {
	if m.createGraphFn == nil {
		return "", errNotImplemented
	}
	return m.createGraphFn(ctx, g)
}

func (m *mockProfileRepo) FindByID(ctx context.Context, id string) (repository.Profile, error) {
	if m.findByIDFn == nil {
		return repository.Profile{}, errNotImplemented
	}
	return m.findByIDFn(ctx, id)
}

func (m *mockProfileRepo) GetGraph(ctx context.Context, id string) (repository.ProfileGraph, error) {
	if m.getGraphFn == nil {
		return repository.ProfileGraph{}, errNotImplemented
	}
	return m.getGraphFn(ctx, id)
}

func (m *mockProfileRepo) ListAll(ctx context.Context) ([]repository.Profile, error) {
	if m.listAllFn == nil {
		return nil, errNotImplemented
	}
	return m.listAllFn(ctx)
}

func (m *mockProfileRepo) ListByManager(ctx context.Context, managerID string) ([]repository.Profile, error) {
	if m.listByManagerFn == nil {
		return nil, errNotImplemented
	}
	return m.listByManagerFn(ctx, managerID)
}

func (m *mockProfileRepo) ListByCandidate(ctx context.Context, candidateID string) ([]repository.Profile, error) {
	if m.listByCandidateFn == nil {
		return nil, errNotImplemented
	}
	return m.listByCandidateFn(ctx, candidateID)
}

func (m *mockProfileRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn == nil {
		return errNotImplemented
	}
	return m.deleteFn(ctx, id)
}

type mockStructurer struct {
	structureFn func(ctx context.Context, text string) (ai.Record, error)
}

func (m *mockStructurer) Structure(ctx context.Context, text string) (ai.Record, error) {
	if m.structureFn == nil {
		return ai.Record{}, errNotImplemented
	}
	return m.structureFn(ctx, text)
}

func rolesOf(set authz.RoleSet) func(ctx context.Context, userID string) (authz.RoleSet, error) {
	return func(ctx context.Context, userID string) (authz.RoleSet, error) {
		return set, nil
	}
}
