package handler

import (
	"github.com/RomRom16/dossierfortil/internal/delivery/http/dto"
	"github.com/RomRom16/dossierfortil/internal/delivery/http/middleware"
	"github.com/RomRom16/dossierfortil/internal/pkg/response"
	"github.com/RomRom16/dossierfortil/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc *usecase.AccountUsecase
}

type signInRequest struct {
	Email string `json:"email"`
}

type signUpRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

func NewAuthHandler(uc *usecase.AccountUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/auth")
	grp.Post("/signin", h.SignIn)
	grp.Post("/signup", h.SignUp)
}

func (h *AuthHandler) SignIn(c fiber.Ctx) error {
	var req signInRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "", err)
	}

	acc, err := h.uc.SignIn(c.Context(), req.Email)
	if err != nil {
		return mapDomainError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewAccountResponse(acc))
}

func (h *AuthHandler) SignUp(c fiber.Ctx) error {
	var req signUpRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "", err)
	}

	acc, err := h.uc.SignUp(c.Context(), req.Email, req.FullName)
	if err != nil {
		return mapDomainError(err)
	}
	return response.JSON(c, fiber.StatusCreated, dto.NewAccountResponse(acc))
}
