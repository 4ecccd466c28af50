package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/RomRom16/dossierfortil/internal/authz"
	"github.com/RomRom16/dossierfortil/internal/repository"
)

func managedCandidate() *mockCandidateRepo {
	return &mockCandidateRepo{
		findByIDFn: func(ctx context.Context, id string) (repository.Candidate, error) {
			if id == "c-1" {
				return repository.Candidate{ID: "c-1", ManagerID: "mgr-1", Email: "jane@corp.io"}, nil
			}
			return repository.Candidate{}, repository.ErrCandidateNotFound
		},
	}
}

func TestAssembleRequiresCandidateID(t *testing.T) {
	profiles := &mockProfileRepo{
		createGraphFn: func(ctx context.Context, g repository.ProfileGraph) (string, error) {
			t.Fatal("no write expected")
			return "", nil
		},
	}
	uc := NewProfileUsecase(&mockUserRepo{}, managedCandidate(), profiles)

	_, err := uc.Assemble(context.Background(), authz.Principal{ID: "mgr-1"}, AssemblyInput{FullName: "Dossier"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAssembleUnknownCandidate(t *testing.T) {
	uc := NewProfileUsecase(&mockUserRepo{}, managedCandidate(), &mockProfileRepo{})

	_, err := uc.Assemble(context.Background(), authz.Principal{ID: "mgr-1"}, AssemblyInput{CandidateID: "nope"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAssembleForbiddenForForeignManager(t *testing.T) {
	users := &mockUserRepo{rolesOfFn: rolesOf(authz.NewRoleSet(authz.RoleBusinessManager))}
	uc := NewProfileUsecase(users, managedCandidate(), &mockProfileRepo{})

	_, err := uc.Assemble(context.Background(), authz.Principal{ID: "mgr-2", Email: "other@corp.io"}, AssemblyInput{CandidateID: "c-1"})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAssembleFiltersAndDerives(t *testing.T) {
	var written repository.ProfileGraph
	profiles := &mockProfileRepo{
		createGraphFn: func(ctx context.Context, g repository.ProfileGraph) (string, error) {
			written = g
			return "p-1", nil
		},
	}
	users := &mockUserRepo{rolesOfFn: rolesOf(authz.NewRoleSet(authz.RoleBusinessManager))}
	uc := NewProfileUsecase(users, managedCandidate(), profiles)

	year := 2020
	id, err := uc.Assemble(context.Background(), authz.Principal{ID: "mgr-1"}, AssemblyInput{
		CandidateID:       "c-1",
		Roles:             []string{" Backend Engineer ", "", "  ", "Tech Lead"},
		GeneralExpertises: []string{"Go", " ", "SQL"},
		Tools:             []string{"", "Docker"},
		Experiences: []ExperienceInput{
			{Company: "Acme", JobTitle: "Engineer", Expertises: []string{"Go", ""}},
			{Company: "   ", JobTitle: "Ghost"},
		},
		Educations: []EducationInput{
			{DegreeOrCertification: "MSc", Institution: "MIT", Year: &year},
			{DegreeOrCertification: "  ", Institution: "Nowhere"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "p-1" {
		t.Fatalf("expected new id, got %q", id)
	}

	if written.FullName != "Dossier sans titre" {
		t.Fatalf("expected default title, got %q", written.FullName)
	}
	if written.JobTitle != "Backend Engineer / Tech Lead" {
		t.Fatalf("expected derived job title, got %q", written.JobTitle)
	}
	if len(written.Roles) != 2 {
		t.Fatalf("expected blank roles dropped, got %v", written.Roles)
	}
	if len(written.Expertises) != 2 || len(written.Tools) != 1 {
		t.Fatalf("expected filtered children, got %d expertises %d tools", len(written.Expertises), len(written.Tools))
	}
	if len(written.Experiences) != 1 || written.Experiences[0].Company != "Acme" {
		t.Fatalf("expected company-less experience dropped, got %+v", written.Experiences)
	}
	if len(written.Experiences[0].Expertises) != 1 {
		t.Fatalf("expected blank experience expertises dropped, got %v", written.Experiences[0].Expertises)
	}
	if len(written.Educations) != 1 || written.Educations[0].DegreeOrCertification != "MSc" {
		t.Fatalf("expected degree-less education dropped, got %+v", written.Educations)
	}
	if written.Educations[0].Year == nil || *written.Educations[0].Year != 2020 {
		t.Fatalf("expected year kept, got %v", written.Educations[0].Year)
	}
	if written.ManagerID != "mgr-1" || written.CandidateID != "c-1" {
		t.Fatalf("unexpected ownership: %+v", written.Profile)
	}
}

func TestAssembleKeepsExplicitJobTitle(t *testing.T) {
	var written repository.ProfileGraph
	profiles := &mockProfileRepo{
		createGraphFn: func(ctx context.Context, g repository.ProfileGraph) (string, error) {
			written = g
			return "p-1", nil
		},
	}
	users := &mockUserRepo{rolesOfFn: rolesOf(authz.NewRoleSet(authz.RoleAdmin))}
	uc := NewProfileUsecase(users, managedCandidate(), profiles)

	_, err := uc.Assemble(context.Background(), authz.Principal{ID: "adm-1"}, AssemblyInput{
		CandidateID: "c-1",
		FullName:    "  Dossier Jane  ",
		JobTitle:    "Architect",
		Roles:       []string{"Backend Engineer"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if written.FullName != "Dossier Jane" {
		t.Fatalf("expected trimmed title, got %q", written.FullName)
	}
	if written.JobTitle != "Architect" {
		t.Fatalf("expected explicit job title kept, got %q", written.JobTitle)
	}
}

func TestAssembleSurfacesWriteFailure(t *testing.T) {
	boom := errors.New("disk full")
	profiles := &mockProfileRepo{
		createGraphFn: func(ctx context.Context, g repository.ProfileGraph) (string, error) {
			return "", boom
		},
	}
	users := &mockUserRepo{rolesOfFn: rolesOf(authz.NewRoleSet(authz.RoleAdmin))}
	uc := NewProfileUsecase(users, managedCandidate(), profiles)

	_, err := uc.Assemble(context.Background(), authz.Principal{ID: "adm-1"}, AssemblyInput{CandidateID: "c-1"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected write failure surfaced, got %v", err)
	}
}

func TestProfileDeleteOwnership(t *testing.T) {
	profiles := &mockProfileRepo{
		findByIDFn: func(ctx context.Context, id string) (repository.Profile, error) {
			if id == "p-1" {
				return repository.Profile{ID: "p-1", ManagerID: "mgr-1"}, nil
			}
			return repository.Profile{}, repository.ErrProfileNotFound
		},
		deleteFn: func(ctx context.Context, id string) error { return nil },
	}

	t.Run("unknown id", func(t *testing.T) {
		users := &mockUserRepo{rolesOfFn: rolesOf(authz.NewRoleSet(authz.RoleAdmin))}
		uc := NewProfileUsecase(users, &mockCandidateRepo{}, profiles)

		err := uc.Delete(context.Background(), authz.Principal{ID: "adm-1"}, "nope")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("foreign manager", func(t *testing.T) {
		users := &mockUserRepo{rolesOfFn: rolesOf(authz.NewRoleSet(authz.RoleBusinessManager))}
		uc := NewProfileUsecase(users, &mockCandidateRepo{}, profiles)

		err := uc.Delete(context.Background(), authz.Principal{ID: "mgr-2"}, "p-1")
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("owning manager", func(t *testing.T) {
		users := &mockUserRepo{rolesOfFn: rolesOf(authz.NewRoleSet(authz.RoleBusinessManager))}
		uc := NewProfileUsecase(users, &mockCandidateRepo{}, profiles)

		if err := uc.Delete(context.Background(), authz.Principal{ID: "mgr-1"}, "p-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestProfileListScopes(t *testing.T) {
	headers := []repository.Profile{{ID: "p-1", ManagerID: "mgr-1", CandidateID: "c-1"}}
	graph := repository.ProfileGraph{Profile: headers[0]}

	profiles := &mockProfileRepo{
		listAllFn: func(ctx context.Context) ([]repository.Profile, error) { return headers, nil },
		listByManagerFn: func(ctx context.Context, managerID string) ([]repository.Profile, error) {
			if managerID != "mgr-1" {
				return []repository.Profile{}, nil
			}
			return headers, nil
		},
		listByCandidateFn: func(ctx context.Context, candidateID string) ([]repository.Profile, error) {
			if candidateID != "c-1" {
				return []repository.Profile{}, nil
			}
			return headers, nil
		},
		getGraphFn: func(ctx context.Context, id string) (repository.ProfileGraph, error) { return graph, nil },
	}

	t.Run("admin", func(t *testing.T) {
		users := &mockUserRepo{rolesOfFn: rolesOf(authz.NewRoleSet(authz.RoleAdmin))}
		uc := NewProfileUsecase(users, &mockCandidateRepo{}, profiles)

		got, err := uc.List(context.Background(), authz.Principal{ID: "adm-1"})
		if err != nil || len(got) != 1 {
			t.Fatalf("expected 1 dossier, got %d err=%v", len(got), err)
		}
	})

	t.Run("manager", func(t *testing.T) {
		users := &mockUserRepo{rolesOfFn: rolesOf(authz.NewRoleSet(authz.RoleBusinessManager))}
		uc := NewProfileUsecase(users, &mockCandidateRepo{}, profiles)

		got, err := uc.List(context.Background(), authz.Principal{ID: "mgr-1"})
		if err != nil || len(got) != 1 {
			t.Fatalf("expected 1 dossier, got %d err=%v", len(got), err)
		}
	})

	t.Run("consultant", func(t *testing.T) {
		users := &mockUserRepo{rolesOfFn: rolesOf(authz.NewRoleSet(authz.RoleConsultant))}
		candidates := &mockCandidateRepo{
			findByEmailFn: func(ctx context.Context, email string) (repository.Candidate, error) {
				return repository.Candidate{ID: "c-1", Email: "jane@corp.io"}, nil
			},
		}
		uc := NewProfileUsecase(users, candidates, profiles)

		got, err := uc.List(context.Background(), authz.Principal{ID: "u-9", Email: "jane@corp.io"})
		if err != nil || len(got) != 1 {
			t.Fatalf("expected 1 dossier, got %d err=%v", len(got), err)
		}
	})
}
