package routes

import (
	"careerpath/internal/delivery/http/docs"
	"careerpath/internal/delivery/http/handler"
	"careerpath/internal/delivery/http/middleware"
	"careerpath/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Health         *handler.HealthHandler
	Auth           *handler.AuthHandler
	User           *handler.UserHandler
	ProfessionTest *handler.ProfessionTestHandler
	Course         *handler.CourseHandler
	Catalog        *ws.Handler
	Docs           *docs.Handler
}

type Registry struct {
	prefix   string
	auth     *middleware.AuthMiddleware
	handlers Handlers
}

func NewRegistry(prefix string, auth *middleware.AuthMiddleware, handlers Handlers) *Registry {
	return &Registry{prefix: prefix, auth: auth, handlers: handlers}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerDocs(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.handlers.Health != nil {
		r.handlers.Health.RegisterRoutes(app)
	}
}

func (r *Registry) registerDocs(app *fiber.App) {
	if r.handlers.Docs != nil {
		r.handlers.Docs.RegisterRoutes(app)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	var api fiber.Router = app
	if r.prefix != "" {
		api = app.Group(r.prefix)
	}
	RegisterAPI(api, r.auth, r.handlers)
}
