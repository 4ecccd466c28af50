package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/RomRom16/dossierfortil/internal/authz"
	"github.com/RomRom16/dossierfortil/internal/config"
	"github.com/RomRom16/dossierfortil/internal/database"
	"github.com/RomRom16/dossierfortil/internal/database/migration"
	dbsqlite "github.com/RomRom16/dossierfortil/internal/database/sqlite"
)

func openStore(t *testing.T) database.DB {
	t.Helper()
	ctx := context.Background()

	db, err := dbsqlite.Connect(ctx, config.DatabaseConfig{
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	r := migration.Runner{Dir: filepath.Join("..", "..", "migrations", "sqlite"), Dialect: config.DriverSQLite}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedManager(t *testing.T, db database.DB, id, email string) {
	t.Helper()
	users := NewSQLUserRepository(db)
	if err := users.Upsert(context.Background(), User{ID: id, Email: email, FullName: "Manager"}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

func TestUserRolesRoundTrip(t *testing.T) {
	db := openStore(t)
	users := NewSQLUserRepository(db)
	ctx := context.Background()

	seedManager(t, db, "u-1", "jane@corp.io")

	set, err := users.RolesOf(ctx, "u-1")
	if err != nil {
		t.Fatalf("roles: %v", err)
	}
	if len(set) != 0 {
		t.Fatalf("expected no roles, got %v", set)
	}

	if err := users.GrantRole(ctx, "u-1", authz.RoleConsultant); err != nil {
		t.Fatalf("grant: %v", err)
	}
	// Granting twice is a no-op.
	if err := users.GrantRole(ctx, "u-1", authz.RoleConsultant); err != nil {
		t.Fatalf("regrant: %v", err)
	}

	if err := users.ReplaceRoles(ctx, "u-1", []authz.Role{authz.RoleAdmin, authz.RoleBusinessManager}); err != nil {
		t.Fatalf("replace: %v", err)
	}

	set, err = users.RolesOf(ctx, "u-1")
	if err != nil {
		t.Fatalf("roles: %v", err)
	}
	if len(set) != 2 || !set.Has(authz.RoleAdmin) || !set.Has(authz.RoleBusinessManager) {
		t.Fatalf("expected replaced roles, got %v", set)
	}
}

func TestCandidateListByManagerSelfExclusion(t *testing.T) {
	db := openStore(t)
	candidates := NewSQLCandidateRepository(db)
	ctx := context.Background()

	seedManager(t, db, "mgr-1", "mgr@corp.io")

	if _, err := candidates.Create(ctx, Candidate{ID: "c-1", ManagerID: "mgr-1", FullName: "Jane", Email: "jane@corp.io"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := candidates.Create(ctx, Candidate{ID: "c-2", ManagerID: "mgr-1", FullName: "Self", Email: "MGR@corp.io"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := candidates.ListByManager(ctx, "mgr-1", "mgr@corp.io")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != "c-1" {
		t.Fatalf("expected self excluded, got %+v", got)
	}
}

func TestCandidateDossierCount(t *testing.T) {
	db := openStore(t)
	candidates := NewSQLCandidateRepository(db)
	profiles := NewSQLProfileRepository(db)
	ctx := context.Background()

	seedManager(t, db, "mgr-1", "mgr@corp.io")
	if _, err := candidates.Create(ctx, Candidate{ID: "c-1", ManagerID: "mgr-1", FullName: "Jane"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := profiles.CreateGraph(ctx, ProfileGraph{
			Profile: Profile{ManagerID: "mgr-1", CandidateID: "c-1", FullName: "Dossier"},
		}); err != nil {
			t.Fatalf("create graph: %v", err)
		}
	}

	got, err := candidates.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].DossierCount != 2 {
		t.Fatalf("expected dossier_count 2, got %+v", got)
	}
}

func TestProfileGraphRoundTrip(t *testing.T) {
	db := openStore(t)
	candidates := NewSQLCandidateRepository(db)
	profiles := NewSQLProfileRepository(db)
	ctx := context.Background()

	seedManager(t, db, "mgr-1", "mgr@corp.io")
	if _, err := candidates.Create(ctx, Candidate{ID: "c-1", ManagerID: "mgr-1", FullName: "Jane"}); err != nil {
		t.Fatalf("create candidate: %v", err)
	}

	year := 2019
	id, err := profiles.CreateGraph(ctx, ProfileGraph{
		Profile: Profile{
			ManagerID:            "mgr-1",
			CandidateID:          "c-1",
			FullName:             "Dossier Jane",
			Roles:                []string{"Backend Engineer", "Tech Lead"},
			JobTitle:             "Backend Engineer / Tech Lead",
			CandidateDescription: "desc",
		},
		Expertises: []Expertise{{Expertise: "Go"}, {Expertise: "SQL"}},
		Tools:      []Tool{{ToolName: "Docker"}},
		Experiences: []Experience{
			{Company: "Old Corp", StartDate: "2015-01", Expertises: []string{"Go"}, ToolsUsed: []string{"Docker"}},
			{Company: "Acme", StartDate: "2021-06"},
		},
		Educations: []Education{
			{DegreeOrCertification: "BSc", Institution: "X"},
			{DegreeOrCertification: "MSc", Institution: "Y", Year: &year},
		},
	})
	if err != nil {
		t.Fatalf("create graph: %v", err)
	}

	g, err := profiles.GetGraph(ctx, id)
	if err != nil {
		t.Fatalf("get graph: %v", err)
	}

	if len(g.Roles) != 2 || g.Roles[0] != "Backend Engineer" {
		t.Fatalf("expected roles round-tripped, got %v", g.Roles)
	}
	if len(g.Expertises) != 2 || len(g.Tools) != 1 {
		t.Fatalf("expected children, got %d expertises %d tools", len(g.Expertises), len(g.Tools))
	}

	// Experiences come back most recent first.
	if len(g.Experiences) != 2 || g.Experiences[0].Company != "Acme" {
		t.Fatalf("expected start_date DESC, got %+v", g.Experiences)
	}
	if len(g.Experiences[1].ToolsUsed) != 1 || g.Experiences[1].ToolsUsed[0] != "Docker" {
		t.Fatalf("expected tools_used round-tripped, got %v", g.Experiences[1].ToolsUsed)
	}

	// Educations come back by year descending, null years last.
	if len(g.Educations) != 2 || g.Educations[0].DegreeOrCertification != "MSc" {
		t.Fatalf("expected year DESC, got %+v", g.Educations)
	}
	if g.Educations[1].Year != nil {
		t.Fatalf("expected null year kept, got %v", g.Educations[1].Year)
	}
}

func TestCandidateDeleteCascades(t *testing.T) {
	db := openStore(t)
	candidates := NewSQLCandidateRepository(db)
	profiles := NewSQLProfileRepository(db)
	ctx := context.Background()

	seedManager(t, db, "mgr-1", "mgr@corp.io")
	if _, err := candidates.Create(ctx, Candidate{ID: "c-1", ManagerID: "mgr-1", FullName: "Jane"}); err != nil {
		t.Fatalf("create candidate: %v", err)
	}

	id, err := profiles.CreateGraph(ctx, ProfileGraph{
		Profile:    Profile{ManagerID: "mgr-1", CandidateID: "c-1", FullName: "Dossier"},
		Expertises: []Expertise{{Expertise: "Go"}},
	})
	if err != nil {
		t.Fatalf("create graph: %v", err)
	}

	if err := candidates.Delete(ctx, "c-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := profiles.FindByID(ctx, id); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected profile cascade-deleted, got %v", err)
	}

	var n int
	row := db.QueryRow(ctx, `SELECT COUNT(*) FROM general_expertises`)
	if err := row.Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected no orphan child rows, got %d", n)
	}
}

func TestCreateGraphRollsBackOnFailure(t *testing.T) {
	db := openStore(t)
	profiles := NewSQLProfileRepository(db)
	ctx := context.Background()

	// candidate_id violates the foreign key, so the header insert fails and
	// nothing is written.
	_, err := profiles.CreateGraph(ctx, ProfileGraph{
		Profile:    Profile{ManagerID: "ghost", CandidateID: "ghost", FullName: "Dossier"},
		Expertises: []Expertise{{Expertise: "Go"}},
	})
	if err == nil {
		t.Fatal("expected foreign key failure")
	}

	var n int
	row := db.QueryRow(ctx, `SELECT COUNT(*) FROM profiles`)
	if err := row.Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected rollback, got %d profiles", n)
	}
}
