package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/RomRom16/dossierfortil/internal/authz"
	"github.com/RomRom16/dossierfortil/internal/repository"
)

// AssemblyInput is the full dossier payload as submitted by the client,
// typically pre-filled from a structured CV.
type AssemblyInput struct {
	CandidateID          string
	FullName             string
	Roles                []string
	JobTitle             string
	CandidateDescription string
	GeneralExpertises    []string
	Tools                []string
	Experiences          []ExperienceInput
	Educations           []EducationInput
}

type ExperienceInput struct {
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
}

type EducationInput struct {
	DegreeOrCertification string
	Institution           string
	Year                  *int
}

const defaultDossierTitle = "Dossier sans titre"

type ProfileUsecase struct {
	users      repository.UserRepository
	candidates repository.CandidateRepository
	profiles   repository.ProfileRepository
}

func NewProfileUsecase(users repository.UserRepository, candidates repository.CandidateRepository, profiles repository.ProfileRepository) *ProfileUsecase {
	return &ProfileUsecase{users: users, candidates: candidates, profiles: profiles}
}

// List returns the dossiers visible to the actor, hydrated with their child
// rows: all for admins, owned for business managers, the consultant's own
// candidate's dossiers otherwise.
func (uc *ProfileUsecase) List(ctx context.Context, actor authz.Principal) ([]repository.ProfileGraph, error) {
	roles, err := uc.users.RolesOf(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	var headers []repository.Profile
	switch {
	case roles.IsAdmin():
		headers, err = uc.profiles.ListAll(ctx)
	case roles.Has(authz.RoleBusinessManager):
		headers, err = uc.profiles.ListByManager(ctx, actor.ID)
	default:
		c, cerr := uc.candidates.FindByEmail(ctx, actor.Email)
		if cerr != nil {
			if cerr == repository.ErrCandidateNotFound {
				return []repository.ProfileGraph{}, nil
			}
			return nil, cerr
		}
		headers, err = uc.profiles.ListByCandidate(ctx, c.ID)
	}
	if err != nil {
		return nil, err
	}

	out := make([]repository.ProfileGraph, 0, len(headers))
	for _, h := range headers {
		g, err := uc.profiles.GetGraph(ctx, h.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

// ListByCandidate returns the hydrated dossiers of one candidate the actor
// can manage.
func (uc *ProfileUsecase) ListByCandidate(ctx context.Context, actor authz.Principal, candidateID string) ([]repository.ProfileGraph, error) {
	c, err := uc.candidates.FindByID(ctx, candidateID)
	if err != nil {
		if err == repository.ErrCandidateNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	roles, err := uc.users.RolesOf(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if !authz.CanManageCandidate(actor, roles, c.ManagerID, c.Email) {
		return nil, ErrForbidden
	}

	headers, err := uc.profiles.ListByCandidate(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	out := make([]repository.ProfileGraph, 0, len(headers))
	for _, h := range headers {
		g, err := uc.profiles.GetGraph(ctx, h.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

func (uc *ProfileUsecase) Get(ctx context.Context, actor authz.Principal, id string) (repository.ProfileGraph, error) {
	p, err := uc.profiles.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrProfileNotFound {
			return repository.ProfileGraph{}, ErrNotFound
		}
		return repository.ProfileGraph{}, err
	}

	roles, err := uc.users.RolesOf(ctx, actor.ID)
	if err != nil {
		return repository.ProfileGraph{}, err
	}

	allowed := authz.CanManageProfile(actor, roles, p.ManagerID)
	if !allowed {
		// Consultants may read dossiers attached to their own candidate
		// record.
		if c, cerr := uc.candidates.FindByID(ctx, p.CandidateID); cerr == nil {
			allowed = authz.CanManageCandidate(actor, roles, c.ManagerID, c.Email)
		}
	}
	if !allowed {
		return repository.ProfileGraph{}, ErrForbidden
	}

	return uc.profiles.GetGraph(ctx, id)
}

// Assemble validates, filters, and persists a full dossier in one
// transaction, returning the new dossier id.
func (uc *ProfileUsecase) Assemble(ctx context.Context, actor authz.Principal, in AssemblyInput) (string, error) {
	candidateID := strings.TrimSpace(in.CandidateID)
	if candidateID == "" {
		return "", fmt.Errorf("%w: candidate_id is required", ErrValidation)
	}

	c, err := uc.candidates.FindByID(ctx, candidateID)
	if err != nil {
		if err == repository.ErrCandidateNotFound {
			return "", ErrNotFound
		}
		return "", err
	}

	roles, err := uc.users.RolesOf(ctx, actor.ID)
	if err != nil {
		return "", err
	}
	if !authz.CanManageCandidate(actor, roles, c.ManagerID, c.Email) {
		return "", ErrForbidden
	}

	cleanRoles := filterBlank(in.Roles)

	title := strings.TrimSpace(in.FullName)
	if title == "" {
		title = defaultDossierTitle
	}

	jobTitle := strings.TrimSpace(in.JobTitle)
	if jobTitle == "" {
		jobTitle = strings.Join(cleanRoles, " / ")
	}

	g := repository.ProfileGraph{
		Profile: repository.Profile{
			ManagerID:            actor.ID,
			CandidateID:          c.ID,
			FullName:             title,
			Roles:                cleanRoles,
			JobTitle:             jobTitle,
			CandidateDescription: strings.TrimSpace(in.CandidateDescription),
		},
	}

	for _, e := range filterBlank(in.GeneralExpertises) {
		g.Expertises = append(g.Expertises, repository.Expertise{Expertise: e})
	}
	for _, t := range filterBlank(in.Tools) {
		g.Tools = append(g.Tools, repository.Tool{ToolName: t})
	}
	for _, e := range in.Experiences {
		if strings.TrimSpace(e.Company) == "" {
			continue
		}
		g.Experiences = append(g.Experiences, repository.Experience{
			Company:              strings.TrimSpace(e.Company),
			Location:             strings.TrimSpace(e.Location),
			StartDate:            strings.TrimSpace(e.StartDate),
			EndDate:              strings.TrimSpace(e.EndDate),
			JobTitle:             strings.TrimSpace(e.JobTitle),
			Sector:               strings.TrimSpace(e.Sector),
			Context:              strings.TrimSpace(e.Context),
			Project:              strings.TrimSpace(e.Project),
			Expertises:           filterBlank(e.Expertises),
			ToolsUsed:            filterBlank(e.ToolsUsed),
			Responsibilities:     strings.TrimSpace(e.Responsibilities),
			TechnicalEnvironment: strings.TrimSpace(e.TechnicalEnvironment),
		})
	}
	for _, e := range in.Educations {
		if strings.TrimSpace(e.DegreeOrCertification) == "" {
			continue
		}
		g.Educations = append(g.Educations, repository.Education{
			DegreeOrCertification: strings.TrimSpace(e.DegreeOrCertification),
			Institution:           strings.TrimSpace(e.Institution),
			Year:                  e.Year,
		})
	}

	return uc.profiles.CreateGraph(ctx, g)
}

func (uc *ProfileUsecase) Delete(ctx context.Context, actor authz.Principal, id string) error {
	p, err := uc.profiles.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrProfileNotFound {
			return ErrNotFound
		}
		return err
	}

	roles, err := uc.users.RolesOf(ctx, actor.ID)
	if err != nil {
		return err
	}
	if !authz.CanManageProfile(actor, roles, p.ManagerID) {
		return ErrForbidden
	}

	if err := uc.profiles.Delete(ctx, id); err != nil {
		if err == repository.ErrProfileNotFound {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func filterBlank(values []string) []string {
	out := []string{}
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}
