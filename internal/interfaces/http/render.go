package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/adrianbura/copie-stok/internal/application/reports"
)

// Renderers adaptadores de salida por formato (pdf, xlsx, html). json no necesita adaptador.
type Renderers map[string]reports.Renderer

// respond envía value como JSON o lo convierte con el renderer de ?format=.
// HTML se sirve inline (impresión desde el navegador); PDF y XLSX como adjunto.
func (rs Renderers) respond(c *fiber.Ctx, value interface{}, filename string, render func(reports.Renderer) ([]byte, error)) error {
	format := strings.ToLower(c.Query("format", "json"))
	if format == "json" {
		return c.JSON(value)
	}
	r, ok := rs[format]
	if !ok {
		return badRequest(c, "INVALID_FORMAT", fmt.Sprintf("formato %q no soportado (json|pdf|xlsx|html)", format))
	}
	body, err := render(r)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, r.ContentType())
	disposition := "attachment"
	if format == "html" {
		disposition = "inline"
	}
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`%s; filename="%s.%s"`, disposition, filename, r.Extension()))
	return c.Send(body)
}
