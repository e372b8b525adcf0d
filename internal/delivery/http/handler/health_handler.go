package handler

import (
	"context"
	"time"

	"careerpath/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// Pinger is a dependency whose reachability is reported by /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	appName string
	checks  map[string]Pinger
}

func NewHealthHandler(appName string, checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{appName: appName, checks: checks}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.Welcome)
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Welcome(c fiber.Ctx) error {
	return c.SendString("Welcome to the " + h.appName + " API!")
}

// Health always answers 200 while the process serves; optional dependencies
// are reported individually.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	deps := make(map[string]string, len(h.checks))
	for name, p := range h.checks {
		if p == nil {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			deps[name] = "unavailable"
			continue
		}
		deps[name] = "ok"
	}

	return response.JSON(c, fiber.StatusOK, fiber.Map{
		"status":       "ok",
		"dependencies": deps,
	})
}
