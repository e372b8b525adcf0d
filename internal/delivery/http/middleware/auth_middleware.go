package middleware

import (
	"strings"

	"careerpath/internal/pkg/jwt"
	"careerpath/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

const CtxUserIDKey = "user_id"

type AccessVerifier interface {
	VerifyAccess(token string) (jwt.Claims, error)
}

type AuthMiddleware struct {
	jwt AccessVerifier
}

func NewAuthMiddleware(verifier AccessVerifier) *AuthMiddleware {
	return &AuthMiddleware{jwt: verifier}
}

// Middleware answers 401 when no bearer token is sent and 403 when the
// token does not verify as an access token. Expired tokens count as invalid.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := BearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil)
		}

		claims, err := m.jwt.VerifyAccess(token)
		if err != nil {
			return NewAppError(fiber.StatusForbidden, response.MessageForbidden, err)
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		return c.Next()
	}
}

func UserID(c fiber.Ctx) (string, bool) {
	id, ok := c.Locals(CtxUserIDKey).(string)
	return id, ok && id != ""
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" value.
func BearerToken(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
