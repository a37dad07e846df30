package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/repository"
	"github.com/spec-kit/user-service/pkg/apperrors"
)

const currentUserKey = "current_user"

// AuthMiddleware validates bearer tokens and loads the caller's user record.
type AuthMiddleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

// Protect enforces authentication for protected routes. The token's uuid must
// resolve to an active user; a soft-deleted account implicitly invalidates
// every token issued for it.
func (m *AuthMiddleware) Protect(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthenticated("Você não está logado. Por favor, faça o login para obter acesso.")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthenticated("Você não está logado. Por favor, faça o login para obter acesso.")
	}

	uuid, err := m.tokens.VerifyToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthenticated("Token inválido ou expirado. Por favor, faça o login novamente.")
	}

	user, err := m.users.GetByUUID(c.Context(), uuid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthenticated("O usuário pertencente a este token não existe mais.")
		}
		return err
	}

	c.Locals(currentUserKey, user)
	return c.Next()
}

// CurrentUser retrieves the authenticated user attached by Protect.
func CurrentUser(c *fiber.Ctx) (*domain.User, bool) {
	val := c.Locals(currentUserKey)
	if val == nil {
		return nil, false
	}
	user, ok := val.(*domain.User)
	return user, ok
}
