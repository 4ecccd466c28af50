package handler

import (
	"io"

	"github.com/RomRom16/dossierfortil/internal/delivery/http/middleware"
	"github.com/RomRom16/dossierfortil/internal/pkg/response"
	"github.com/RomRom16/dossierfortil/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CVParseHandler struct {
	uc *usecase.CVParseUsecase
}

type parseCVRequest struct {
	Text string `json:"text"`
}

func NewCVParseHandler(uc *usecase.CVParseUsecase) *CVParseHandler {
	return &CVParseHandler{uc: uc}
}

func (h *CVParseHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/parse-cv", h.ParseText)
	r.Post("/parse-cv-upload", h.ParseUpload)
}

func (h *CVParseHandler) ParseText(c fiber.Ctx) error {
	var req parseCVRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "", err)
	}

	rec, err := h.uc.ParseText(c.Context(), req.Text)
	if err != nil {
		return mapDomainError(err)
	}
	return response.JSON(c, fiber.StatusOK, rec)
}

// ParseUpload accepts a multipart form with the document under the "cv" field.
func (h *CVParseHandler) ParseUpload(c fiber.Ctx) error {
	fh, err := c.FormFile("cv")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Missing cv file", err)
	}

	f, err := fh.Open()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Unreadable cv file", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Unreadable cv file", err)
	}

	rec, err := h.uc.ParseUpload(c.Context(), fh.Filename, data)
	if err != nil {
		return mapDomainError(err)
	}
	return response.JSON(c, fiber.StatusOK, rec)
}
