package handler

import (
	"errors"

	"github.com/RomRom16/dossierfortil/internal/ai"
	"github.com/RomRom16/dossierfortil/internal/authz"
	"github.com/RomRom16/dossierfortil/internal/cv"
	"github.com/RomRom16/dossierfortil/internal/delivery/http/middleware"
	"github.com/RomRom16/dossierfortil/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// mapDomainError translates the usecase error taxonomy to HTTP. Validation,
// document and upstream failures keep their message; everything unrecognized
// becomes a masked 500.
func mapDomainError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrValidation):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), err)
	case errors.Is(err, usecase.ErrUnauthenticated):
		return middleware.NewAppError(fiber.StatusUnauthorized, "", err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "", err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "", err)
	case errors.Is(err, cv.ErrDocumentParse):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, err.Error(), err)
	case errors.Is(err, ai.ErrServiceUnavailable), errors.Is(err, ai.ErrMalformedResponse):
		return middleware.NewAppError(fiber.StatusBadGateway, err.Error(), err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, "", err)
	}
}

func principal(c fiber.Ctx) (authz.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return authz.Principal{}, middleware.NewAppError(fiber.StatusUnauthorized, "", nil)
	}
	return p, nil
}
