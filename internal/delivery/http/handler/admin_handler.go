package handler

import (
	"github.com/RomRom16/dossierfortil/internal/authz"
	"github.com/RomRom16/dossierfortil/internal/delivery/http/dto"
	"github.com/RomRom16/dossierfortil/internal/delivery/http/middleware"
	"github.com/RomRom16/dossierfortil/internal/pkg/response"
	"github.com/RomRom16/dossierfortil/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AdminHandler struct {
	uc *usecase.AdminUsecase
}

type replaceRolesRequest struct {
	Roles []string `json:"roles"`
}

func NewAdminHandler(uc *usecase.AdminUsecase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

func (h *AdminHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/admin")
	grp.Get("/users", h.ListUsers)
	grp.Post("/users/:id/roles", h.ReplaceRoles)
}

func (h *AdminHandler) ListUsers(c fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	users, err := h.uc.ListUsers(c.Context(), p)
	if err != nil {
		return mapDomainError(err)
	}

	res := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		res = append(res, dto.NewUserResponse(u))
	}
	return response.JSON(c, fiber.StatusOK, res)
}

func (h *AdminHandler) ReplaceRoles(c fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var req replaceRolesRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "", err)
	}

	roles := make([]authz.Role, 0, len(req.Roles))
	for _, r := range req.Roles {
		roles = append(roles, authz.Role(r))
	}

	updated, err := h.uc.ReplaceUserRoles(c.Context(), p, c.Params("id"), roles)
	if err != nil {
		return mapDomainError(err)
	}

	out := make([]string, 0, len(updated))
	for _, r := range updated {
		out = append(out, string(r))
	}
	return response.JSON(c, fiber.StatusOK, fiber.Map{"roles": out})
}
