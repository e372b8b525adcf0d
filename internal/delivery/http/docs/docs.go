// Package docs serves the OpenAPI description of the /api surface and a
// Swagger UI page that renders it.
package docs

import (
	_ "embed"
	"strings"

	"github.com/gofiber/fiber/v3"
)

//go:embed openapi.json
var openAPI []byte

const swaggerUIVersion = "5.17.14"

const uiPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{title}}</title>
<link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@{{version}}/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@{{version}}/swagger-ui-bundle.js"></script>
<script>
window.ui = SwaggerUIBundle({url: "{{document}}", dom_id: "#swagger-ui"});
</script>
</body>
</html>
`

type Handler struct {
	page string
}

func NewHandler(title string) *Handler {
	page := strings.NewReplacer(
		"{{title}}", title,
		"{{version}}", swaggerUIVersion,
		"{{document}}", "/api-docs/openapi.json",
	).Replace(uiPage)
	return &Handler{page: page}
}

// OpenAPI returns the embedded document.
func OpenAPI() []byte {
	return openAPI
}

func (h *Handler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/api-docs", h.UI)
	r.Get("/api-docs/openapi.json", h.Document)
}

func (h *Handler) UI(c fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(h.page)
}

func (h *Handler) Document(c fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Send(openAPI)
}
