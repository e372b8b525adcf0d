package app

import (
	"context"
	"fmt"
	"strings"

	"careerpath/internal/config"
	"careerpath/internal/delivery/http/docs"
	"careerpath/internal/delivery/http/handler"
	"careerpath/internal/delivery/http/middleware"
	"careerpath/internal/delivery/http/routes"
	"careerpath/internal/pkg/logger"
	"careerpath/internal/usecase"
	"careerpath/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP app on top of an already wired container.
func New(c *Container) *App {
	cfg := c.Config
	errMw := middleware.NewErrorMiddleware(c.Logger)

	f := fiber.New(fiber.Config{
		AppName:      cfg.App.AppName,
		ErrorHandler: errMw.ErrorHandler,
	})

	registerGlobalMiddleware(f, cfg, c.Logger, errMw)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap wires every dependency, starts the websocket hub and returns the
// app together with its cleanup.
func Bootstrap(ctx context.Context, cfg config.Config, log *logger.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	go c.Hub.Run(ctx)

	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, cfg config.Config, log *logger.Logger, errMw *middleware.ErrorMiddleware) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(log).Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.App.CORSAllowOrigins,
		AllowHeaders: []string{fiber.HeaderOrigin, fiber.HeaderContentType, fiber.HeaderAccept, fiber.HeaderAuthorization},
	}))
	app.Use(errMw.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	cfg := c.Config
	authUC := usecase.NewAuthUsecase(c.Auth, c.Tables, c.Tokens, cfg.Auth.ResetRedirectURL, c.Logger)
	userUC := usecase.NewUserUsecase(c.Tables)
	testUC := usecase.NewProfessionTestUsecase(c.Tables, c.Cache, c.Hub, c.Logger)
	courseUC := usecase.NewCourseUsecase(c.Tables, c.Cache, c.Hub, c.Logger)

	checks := map[string]handler.Pinger{"cache": c.Cache}
	if c.DB != nil {
		checks["database"] = c.DB
	}

	routes.NewRegistry(cfg.App.APIPrefix, middleware.NewAuthMiddleware(c.Tokens), routes.Handlers{
		Health:         handler.NewHealthHandler(cfg.App.AppName, checks),
		Auth:           handler.NewAuthHandler(authUC),
		User:           handler.NewUserHandler(userUC),
		ProfessionTest: handler.NewProfessionTestHandler(testUC),
		Course:         handler.NewCourseHandler(courseUC),
		Catalog:        ws.NewHandler(c.Hub, c.Logger),
		Docs:           docs.NewHandler(cfg.App.AppName + " API"),
	}).Register(app)
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
