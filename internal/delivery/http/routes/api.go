package routes

import (
	"careerpath/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

// RegisterAPI attaches the auth middleware per route, so paths nothing
// serves fall through to 404 instead of 401.
func RegisterAPI(r fiber.Router, authMw *middleware.AuthMiddleware, h Handlers) {
	if r == nil || authMw == nil {
		return
	}
	auth := authMw.Middleware()

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r, auth)
	}
	if h.User != nil {
		h.User.RegisterRoutes(r, auth)
	}
	if h.ProfessionTest != nil {
		h.ProfessionTest.RegisterRoutes(r, auth)
	}
	if h.Course != nil {
		h.Course.RegisterRoutes(r, auth)
	}
	if h.Catalog != nil {
		h.Catalog.RegisterRoutes(r, auth)
	}
}
