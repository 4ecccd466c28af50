package handler

import (
	"github.com/RomRom16/dossierfortil/internal/delivery/http/dto"
	"github.com/RomRom16/dossierfortil/internal/delivery/http/middleware"
	"github.com/RomRom16/dossierfortil/internal/pkg/response"
	"github.com/RomRom16/dossierfortil/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ProfileHandler struct {
	profiles *usecase.ProfileUsecase
}

type assembleProfileRequest struct {
	CandidateID          string                  `json:"candidate_id"`
	FullName             string                  `json:"full_name"`
	Roles                []string                `json:"roles"`
	JobTitle             string                  `json:"job_title"`
	CandidateDescription string                  `json:"candidate_description"`
	GeneralExpertises    []string                `json:"general_expertises"`
	Tools                []string                `json:"tools"`
	Experiences          []experienceRequestItem `json:"experiences"`
	Educations           []educationRequestItem  `json:"educations"`
}

type experienceRequestItem struct {
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

type educationRequestItem struct {
	DegreeOrCertification string `json:"degree_or_certification"`
	Institution           string `json:"institution"`
	Year                  *int   `json:"year"`
}

func NewProfileHandler(profiles *usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/profiles")
	grp.Get("/", h.List)
	grp.Post("/", h.Assemble)
	grp.Get("/:id", h.Get)
	grp.Delete("/:id", h.Delete)
}

func (h *ProfileHandler) List(c fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	items, err := h.profiles.List(c.Context(), p)
	if err != nil {
		return mapDomainError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewProfileListResponse(items))
}

func (h *ProfileHandler) Get(c fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	g, err := h.profiles.Get(c.Context(), p, c.Params("id"))
	if err != nil {
		return mapDomainError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewProfileResponse(g))
}

func (h *ProfileHandler) Assemble(c fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var req assembleProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "", err)
	}

	in := usecase.AssemblyInput{
		CandidateID:          req.CandidateID,
		FullName:             req.FullName,
		Roles:                req.Roles,
		JobTitle:             req.JobTitle,
		CandidateDescription: req.CandidateDescription,
		GeneralExpertises:    req.GeneralExpertises,
		Tools:                req.Tools,
	}
	for _, e := range req.Experiences {
		in.Experiences = append(in.Experiences, usecase.ExperienceInput{
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
	for _, e := range req.Educations {
		in.Educations = append(in.Educations, usecase.EducationInput{
			DegreeOrCertification: e.DegreeOrCertification,
			Institution:           e.Institution,
			Year:                  e.Year,
		})
	}

	id, err := h.profiles.Assemble(c.Context(), p, in)
	if err != nil {
		return mapDomainError(err)
	}
	return response.JSON(c, fiber.StatusCreated, fiber.Map{"id": id})
}

func (h *ProfileHandler) Delete(c fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	if err := h.profiles.Delete(c.Context(), p, c.Params("id")); err != nil {
		return mapDomainError(err)
	}
	return response.JSON(c, fiber.StatusOK, fiber.Map{"deleted": true})
}
