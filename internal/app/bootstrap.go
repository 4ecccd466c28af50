package app

import (
	"fmt"
	"strings"

	"github.com/RomRom16/dossierfortil/internal/ai"
	"github.com/RomRom16/dossierfortil/internal/config"
	"github.com/RomRom16/dossierfortil/internal/delivery/http/handler"
	"github.com/RomRom16/dossierfortil/internal/delivery/http/middleware"
	"github.com/RomRom16/dossierfortil/internal/delivery/http/routes"
	"github.com/RomRom16/dossierfortil/internal/repository"
	"github.com/RomRom16/dossierfortil/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber *fiber.App
}

// Bootstrap builds the full application: store, repositories, usecases,
// handlers and the Fiber app. The returned cleanup closes the store.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	container, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	users := repository.NewSQLUserRepository(container.DB)
	candidates := repository.NewSQLCandidateRepository(container.DB)
	profiles := repository.NewSQLProfileRepository(container.DB)

	parser := ai.NewParser(cfg.AI)

	accountUC := usecase.NewAccountUsecase(users, cfg.Auth.BootstrapAdminEmail)
	candidateUC := usecase.NewCandidateUsecase(users, candidates)
	profileUC := usecase.NewProfileUsecase(users, candidates, profiles)
	adminUC := usecase.NewAdminUsecase(users)
	cvParseUC := usecase.NewCVParseUsecase(parser)

	registry := &routes.Registry{
		Health:    handler.NewHealthHandler(container.DB),
		Auth:      handler.NewAuthHandler(accountUC),
		Me:        handler.NewMeHandler(accountUC, candidateUC),
		Candidate: handler.NewCandidateHandler(candidateUC, profileUC),
		Profile:   handler.NewProfileHandler(profileUC),
		CVParse:   handler.NewCVParseHandler(cvParseUC),
		Admin:     handler.NewAdminHandler(adminUC),
		AuthMw:    middleware.NewAuthMiddleware(users),
	}

	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	f.Use(middleware.NewAccessLogMiddleware(nil).Middleware())
	f.Use(middleware.NewErrorMiddleware().Middleware())

	registry.Register(f)

	return &App{Fiber: f}, container.Close, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
