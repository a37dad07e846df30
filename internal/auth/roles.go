package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/pkg/apperrors"
)

// RestrictTo ensures the authenticated user holds one of the allowed roles.
// It must run after Protect; the decision is evaluated per request and never
// cached.
func RestrictTo(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return apperrors.NewUnauthenticated("Você não está logado. Por favor, faça o login para obter acesso.")
		}
		if _, exists := allowedSet[user.Role]; !exists {
			return apperrors.NewForbidden()
		}
		return c.Next()
	}
}
