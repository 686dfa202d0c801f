package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/adrianbura/copie-stok/internal/application/reports"
)

// ReportHandler reportes de bodega en json, pdf, xlsx o html según ?format=.
type ReportHandler struct {
	uc        *reports.UseCase
	renderers Renderers
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase, renderers Renderers) *ReportHandler {
	return &ReportHandler{uc: uc, renderers: renderers}
}

// Ledger godoc
// @Summary      Ficha de movimientos con saldo corriente
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        warehouseId  path   string  true   "ID de la bodega"
// @Param        product_id   query  string  false  "Un solo producto"
// @Param        from         query  string  false  "YYYY-MM-DD"
// @Param        to           query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        format       query  string  false  "json | pdf | xlsx | html"
// @Success      200  {object}  dto.LedgerReport
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{warehouseId}/reports/ledger [get]
func (h *ReportHandler) Ledger(c *fiber.Ctx) error {
	loc := h.uc.Location()
	from, err := dateQuery(c, "from", loc)
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	to, err := dateQuery(c, "to", loc)
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	rep, err := h.uc.Ledger(c.Context(), reports.LedgerQuery{
		WarehouseID: c.Params("warehouseId"),
		ProductID:   c.Query("product_id"),
		From:        from,
		To:          to,
	})
	if err != nil {
		return writeError(c, err)
	}
	return h.renderers.respond(c, rep, "ficha-"+rep.GeneratedAt.In(loc).Format("20060102"), func(r reports.Renderer) ([]byte, error) {
		return r.RenderLedger(rep)
	})
}

// Snapshot godoc
// @Summary      Stock histórico al final de un día
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        warehouseId  path   string  true   "ID de la bodega"
// @Param        date         query  string  false  "YYYY-MM-DD (por defecto hoy)"
// @Param        format       query  string  false  "json | pdf | xlsx | html"
// @Success      200  {object}  dto.SnapshotReport
// @Router       /api/warehouses/{warehouseId}/reports/snapshot [get]
func (h *ReportHandler) Snapshot(c *fiber.Ctx) error {
	return h.snapshot(c, c.Params("warehouseId"))
}

// GlobalSnapshot foto histórica de todas las bodegas (solo admin).
func (h *ReportHandler) GlobalSnapshot(c *fiber.Ctx) error {
	return h.snapshot(c, "")
}

func (h *ReportHandler) snapshot(c *fiber.Ctx, warehouseID string) error {
	loc := h.uc.Location()
	date, err := dateQuery(c, "date", loc)
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	cutoff := time.Now().In(loc)
	if date != nil {
		cutoff = *date
	}
	rep, err := h.uc.Snapshot(c.Context(), warehouseID, cutoff)
	if err != nil {
		return writeError(c, err)
	}
	name := fmt.Sprintf("stock-%s", cutoff.Format("20060102"))
	return h.renderers.respond(c, rep, name, func(r reports.Renderer) ([]byte, error) {
		return r.RenderSnapshot(rep)
	})
}

// Stock godoc
// @Summary      Stock actual de la bodega
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        warehouseId  path   string  true   "ID de la bodega"
// @Param        format       query  string  false  "json | pdf | xlsx | html"
// @Success      200  {object}  dto.StockReport
// @Router       /api/warehouses/{warehouseId}/stock [get]
func (h *ReportHandler) Stock(c *fiber.Ctx) error {
	rep, err := h.uc.StockList(c.Context(), c.Params("warehouseId"))
	if err != nil {
		return writeError(c, err)
	}
	return h.renderers.respond(c, rep, "existencias", func(r reports.Renderer) ([]byte, error) {
		return r.RenderStock(rep)
	})
}

// Consistency godoc
// @Summary      Conciliación stock materializado vs libro
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        warehouseId  path  string  true  "ID de la bodega"
// @Success      200  {object}  dto.ConsistencyReport
// @Router       /api/warehouses/{warehouseId}/reports/consistency [get]
func (h *ReportHandler) Consistency(c *fiber.Ctx) error {
	rep, err := h.uc.Consistency(c.Context(), c.Params("warehouseId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(rep)
}
