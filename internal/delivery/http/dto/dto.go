// Package dto holds the JSON shapes exchanged with the SPA.
package dto

import (
	"github.com/RomRom16/dossierfortil/internal/authz"
	"github.com/RomRom16/dossierfortil/internal/repository"
	"github.com/RomRom16/dossierfortil/internal/usecase"
)

type AccountResponse struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	Roles    []string `json:"roles"`
}

func NewAccountResponse(a usecase.Account) AccountResponse {
	return AccountResponse{
		ID:       a.ID,
		Email:    a.Email,
		FullName: a.FullName,
		Roles:    roleStrings(a.Roles),
	}
}

type UserResponse struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	Roles    []string `json:"roles"`
}

func NewUserResponse(u repository.UserWithRoles) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Roles:    roleStrings(u.Roles),
	}
}

type CandidateResponse struct {
	ID           string            `json:"id"`
	ManagerID    string            `json:"manager_id"`
	FullName     string            `json:"full_name"`
	Email        string            `json:"email"`
	Phone        string            `json:"phone"`
	CreatedAt    string            `json:"created_at"`
	UpdatedAt    string            `json:"updated_at"`
	DossierCount *int              `json:"dossier_count,omitempty"`
	Profiles     []ProfileResponse `json:"profiles,omitempty"`
}

func NewCandidateResponse(c repository.Candidate) CandidateResponse {
	return CandidateResponse{
		ID:        c.ID,
		ManagerID: c.ManagerID,
		FullName:  c.FullName,
		Email:     c.Email,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func NewCandidateListResponse(items []repository.CandidateWithCount) []CandidateResponse {
	out := make([]CandidateResponse, 0, len(items))
	for _, it := range items {
		r := NewCandidateResponse(it.Candidate)
		count := it.DossierCount
		r.DossierCount = &count
		out = append(out, r)
	}
	return out
}

type ProfileResponse struct {
	ID                   string               `json:"id"`
	ManagerID            string               `json:"manager_id"`
	CandidateID          string               `json:"candidate_id"`
	FullName             string               `json:"full_name"`
	Roles                []string             `json:"roles"`
	JobTitle             string               `json:"job_title"`
	CandidateDescription string               `json:"candidate_description"`
	CreatedAt            string               `json:"created_at"`
	UpdatedAt            string               `json:"updated_at"`
	GeneralExpertises    []ExpertiseResponse  `json:"general_expertises"`
	Tools                []ToolResponse       `json:"tools"`
	Experiences          []ExperienceResponse `json:"experiences"`
	Educations           []EducationResponse  `json:"educations"`
}

type ExpertiseResponse struct {
	ID        string `json:"id"`
	Expertise string `json:"expertise"`
}

type ToolResponse struct {
	ID       string `json:"id"`
	ToolName string `json:"tool_name"`
}

type ExperienceResponse struct {
	ID                   string   `json:"id"`
	Company              string   `json:"company"`
	Location             string   `json:"location"`
	StartDate            string   `json:"start_date"`
	EndDate              string   `json:"end_date"`
	JobTitle             string   `json:"job_title"`
	Sector               string   `json:"sector"`
	Context              string   `json:"context"`
	Project              string   `json:"project"`
	Expertises           []string `json:"expertises"`
	ToolsUsed            []string `json:"tools_used"`
	Responsibilities     string   `json:"responsibilities"`
	TechnicalEnvironment string   `json:"technical_environment"`
}

type EducationResponse struct {
	ID                    string `json:"id"`
	DegreeOrCertification string `json:"degree_or_certification"`
	Institution           string `json:"institution"`
	Year                  *int   `json:"year"`
}

func NewProfileResponse(g repository.ProfileGraph) ProfileResponse {
	res := ProfileResponse{
		ID:                   g.ID,
		ManagerID:            g.ManagerID,
		CandidateID:          g.CandidateID,
		FullName:             g.FullName,
		Roles:                g.Roles,
		JobTitle:             g.JobTitle,
		CandidateDescription: g.CandidateDescription,
		CreatedAt:            g.CreatedAt,
		UpdatedAt:            g.UpdatedAt,
		GeneralExpertises:    make([]ExpertiseResponse, 0, len(g.Expertises)),
		Tools:                make([]ToolResponse, 0, len(g.Tools)),
		Experiences:          make([]ExperienceResponse, 0, len(g.Experiences)),
		Educations:           make([]EducationResponse, 0, len(g.Educations)),
	}
	if res.Roles == nil {
		res.Roles = []string{}
	}

	for _, e := range g.Expertises {
		res.GeneralExpertises = append(res.GeneralExpertises, ExpertiseResponse{ID: e.ID, Expertise: e.Expertise})
	}
	for _, t := range g.Tools {
		res.Tools = append(res.Tools, ToolResponse{ID: t.ID, ToolName: t.ToolName})
	}
	for _, e := range g.Experiences {
		res.Experiences = append(res.Experiences, ExperienceResponse{
			ID:                   e.ID,
			Company:              e.Company,
			Location:             e.Location,
			StartDate:            e.StartDate,
			EndDate:              e.EndDate,
			JobTitle:             e.JobTitle,
			Sector:               e.Sector,
			Context:              e.Context,
			Project:              e.Project,
			Expertises:           e.Expertises,
			ToolsUsed:            e.ToolsUsed,
			Responsibilities:     e.Responsibilities,
			TechnicalEnvironment: e.TechnicalEnvironment,
		})
	}
	for _, e := range g.Educations {
		res.Educations = append(res.Educations, EducationResponse{
			ID:                    e.ID,
			DegreeOrCertification: e.DegreeOrCertification,
			Institution:           e.Institution,
			Year:                  e.Year,
		})
	}
	return res
}

func NewProfileListResponse(items []repository.ProfileGraph) []ProfileResponse {
	out := make([]ProfileResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewProfileResponse(it))
	}
	return out
}

func roleStrings(roles []authz.Role) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, string(r))
	}
	return out
}
