package handler

import (
	"github.com/RomRom16/dossierfortil/internal/delivery/http/dto"
	"github.com/RomRom16/dossierfortil/internal/delivery/http/middleware"
	"github.com/RomRom16/dossierfortil/internal/pkg/response"
	"github.com/RomRom16/dossierfortil/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CandidateHandler struct {
	candidates *usecase.CandidateUsecase
	profiles   *usecase.ProfileUsecase
}

type candidateRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

func NewCandidateHandler(candidates *usecase.CandidateUsecase, profiles *usecase.ProfileUsecase) *CandidateHandler {
	return &CandidateHandler{candidates: candidates, profiles: profiles}
}

func (h *CandidateHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/candidates")
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
	grp.Get("/:id", h.Get)
	grp.Put("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
}

func (h *CandidateHandler) List(c fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	items, err := h.candidates.List(c.Context(), p)
	if err != nil {
		return mapDomainError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewCandidateListResponse(items))
}

func (h *CandidateHandler) Create(c fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var req candidateRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "", err)
	}

	created, err := h.candidates.Create(c.Context(), p, usecase.CandidateInput{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
	})
	if err != nil {
		return mapDomainError(err)
	}
	return response.JSON(c, fiber.StatusCreated, dto.NewCandidateResponse(created))
}

// Get returns the candidate with its dossiers hydrated.
func (h *CandidateHandler) Get(c fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	cand, err := h.candidates.Get(c.Context(), p, c.Params("id"))
	if err != nil {
		return mapDomainError(err)
	}

	graphs, err := h.profiles.ListByCandidate(c.Context(), p, cand.ID)
	if err != nil {
		return mapDomainError(err)
	}

	res := dto.NewCandidateResponse(cand)
	res.Profiles = dto.NewProfileListResponse(graphs)
	return response.JSON(c, fiber.StatusOK, res)
}

func (h *CandidateHandler) Update(c fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var req candidateRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "", err)
	}

	updated, err := h.candidates.Update(c.Context(), p, c.Params("id"), usecase.CandidateInput{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
	})
	if err != nil {
		return mapDomainError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewCandidateResponse(updated))
}

func (h *CandidateHandler) Delete(c fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	if err := h.candidates.Delete(c.Context(), p, c.Params("id")); err != nil {
		return mapDomainError(err)
	}
	return response.JSON(c, fiber.StatusOK, fiber.Map{"deleted": true})
}
