package middleware

import (
	"time"

	"careerpath/internal/pkg/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

type AccessLogMiddleware struct {
	logger *logger.Logger
}

func NewAccessLogMiddleware(log *logger.Logger) *AccessLogMiddleware {
	return &AccessLogMiddleware{logger: log}
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(HeaderRequestID, rid)

		err := c.Next()

		if m != nil && m.logger != nil {
			m.logger.Info("http access",
				"request_id", rid,
				"ip", c.IP(),
				"method", c.Method(),
				"path", c.Path(),
				"status", c.Response().StatusCode(),
				"latency", time.Since(start).String(),
				"req_bytes", c.Request().Header.ContentLength(),
				"resp_bytes", len(c.Response().Body()),
				"ua", c.Get(fiber.HeaderUserAgent),
			)
		}

		return err
	}
}
