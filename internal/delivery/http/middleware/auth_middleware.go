package middleware

import (
	"strings"

	"github.com/RomRom16/dossierfortil/internal/authz"
	"github.com/RomRom16/dossierfortil/internal/repository"

	"github.com/gofiber/fiber/v3"
)

const CtxPrincipalKey = "principal"

// AuthMiddleware resolves the caller from the identity headers set by the
// fronting gateway. The user row is upserted on every request so email and
// name stay in sync with the identity provider.
type AuthMiddleware struct {
	users repository.UserRepository
}

func NewAuthMiddleware(users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{users: users}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		id := strings.TrimSpace(c.Get("x-user-id"))
		email := strings.ToLower(strings.TrimSpace(c.Get("x-user-email")))
		if id == "" || email == "" {
			return NewAppError(fiber.StatusUnauthorized, "Missing identity headers", nil)
		}
		name := strings.TrimSpace(c.Get("x-user-name"))

		p := authz.Principal{ID: id, Email: email, FullName: name}
		if err := m.users.Upsert(c.Context(), repository.User{ID: p.ID, Email: p.Email, FullName: p.FullName}); err != nil {
			return NewAppError(fiber.StatusInternalServerError, "", err)
		}

		c.Locals(CtxPrincipalKey, p)
		return c.Next()
	}
}

// PrincipalFrom reads the authenticated caller stored by the middleware.
func PrincipalFrom(c fiber.Ctx) (authz.Principal, bool) {
	p, ok := c.Locals(CtxPrincipalKey).(authz.Principal)
	return p, ok
}
