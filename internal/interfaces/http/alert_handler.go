package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/adrianbura/copie-stok/internal/application/alerts"
)

// AlertHandler alertas de stock bajo, caducidad y cumplimiento de una bodega.
type AlertHandler struct {
	uc *alerts.UseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *alerts.UseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// List godoc
// @Summary      Listar alertas de la bodega
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        warehouseId  path   string  true   "ID de la bodega"
// @Param        open         query  bool    false  "Solo alertas sin reconocer"  default(true)
// @Success      200  {object}  dto.AlertListResponse
// @Router       /api/warehouses/{warehouseId}/alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	p := page(c)
	out, err := h.uc.List(c.Context(), c.Params("warehouseId"), c.QueryBool("open", true), p.Limit, p.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Evaluate recorre el stock de la bodega y crea las alertas nuevas.
func (h *AlertHandler) Evaluate(c *fiber.Ctx) error {
	out, err := h.uc.EvaluateWarehouse(c.Context(), c.Params("warehouseId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Acknowledge godoc
// @Summary      Reconocer alerta
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        warehouseId  path  string  true  "ID de la bodega"
// @Param        id           path  string  true  "ID de la alerta"
// @Success      200  {object}  dto.AlertResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "ya reconocida"
// @Router       /api/warehouses/{warehouseId}/alerts/{id}/ack [post]
func (h *AlertHandler) Acknowledge(c *fiber.Ctx) error {
	out, err := h.uc.Acknowledge(c.Context(), c.Params("warehouseId"), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
