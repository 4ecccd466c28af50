package handler

import (
	"github.com/RomRom16/dossierfortil/internal/delivery/http/dto"
	"github.com/RomRom16/dossierfortil/internal/pkg/response"
	"github.com/RomRom16/dossierfortil/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MeHandler struct {
	accounts   *usecase.AccountUsecase
	candidates *usecase.CandidateUsecase
}

func NewMeHandler(accounts *usecase.AccountUsecase, candidates *usecase.CandidateUsecase) *MeHandler {
	return &MeHandler{accounts: accounts, candidates: candidates}
}

func (h *MeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/me", h.Me)
	r.Get("/me/candidate", h.MyCandidate)
}

func (h *MeHandler) Me(c fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	acc, err := h.accounts.Me(c.Context(), p)
	if err != nil {
		return mapDomainError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewAccountResponse(acc))
}

func (h *MeHandler) MyCandidate(c fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	cand, err := h.candidates.MyCandidate(c.Context(), p)
	if err != nil {
		return mapDomainError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewCandidateResponse(cand))
}
