package routes

import (
	"github.com/RomRom16/dossierfortil/internal/delivery/http/handler"
	"github.com/RomRom16/dossierfortil/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

// Registry wires every handler under the /api surface. /health and
// /api/auth/* stay public; everything else requires identity headers.
type Registry struct {
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	Me        *handler.MeHandler
	Candidate *handler.CandidateHandler
	Profile   *handler.ProfileHandler
	CVParse   *handler.CVParseHandler
	Admin     *handler.AdminHandler

	AuthMw *middleware.AuthMiddleware
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.Health.RegisterRoutes(app)

	api := app.Group("/api")
	r.Auth.RegisterRoutes(api)

	authed := api.Group("", r.AuthMw.Middleware())
	r.Me.RegisterRoutes(authed)
	r.Candidate.RegisterRoutes(authed)
	r.Profile.RegisterRoutes(authed)
	r.CVParse.RegisterRoutes(authed)
	r.Admin.RegisterRoutes(authed)
}
