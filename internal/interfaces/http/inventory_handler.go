package http

import (
	"bytes"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/adrianbura/copie-stok/internal/application/dto"
	"github.com/adrianbura/copie-stok/internal/application/inventory"
	"github.com/adrianbura/copie-stok/internal/application/reports"
	"github.com/adrianbura/copie-stok/internal/application/usecase"
	"github.com/adrianbura/copie-stok/internal/domain/entity"
	"github.com/adrianbura/copie-stok/internal/domain/ledger"
)

// maxImportSize tope del archivo CSV aceptado por /import.
const maxImportSize = 5 << 20

// InventoryHandler entradas, salidas, documentos, movimientos, importación y reinicio de una bodega.
type InventoryHandler struct {
	register  *inventory.RegisterTransactionUseCase
	importer  *inventory.ImportUseCase
	reset     *inventory.ResetUseCase
	query     *inventory.QueryUseCase
	users     *usecase.UserUseCase
	renderers Renderers
	loc       *time.Location
}

// NewInventoryHandler construye el handler. loc es la zona de los filtros de fecha.
func NewInventoryHandler(
	register *inventory.RegisterTransactionUseCase,
	importer *inventory.ImportUseCase,
	reset *inventory.ResetUseCase,
	query *inventory.QueryUseCase,
	users *usecase.UserUseCase,
	renderers Renderers,
	loc *time.Location,
) *InventoryHandler {
	if loc == nil {
		loc = time.Local
	}
	return &InventoryHandler{
		register: register, importer: importer, reset: reset, query: query,
		users: users, renderers: renderers, loc: loc,
	}
}

// RegisterEntry godoc
// @Summary      Registrar entrada de mercancía
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        warehouseId  path  string  true  "ID de la bodega"
// @Param        body  body  dto.RegisterTransactionRequest  true  "date, reference, notes, items"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/warehouses/{warehouseId}/entries [post]
func (h *InventoryHandler) RegisterEntry(c *fiber.Ctx) error {
	return h.registerTransaction(c, entity.MovementEntry)
}

// RegisterExit godoc
// @Summary      Registrar salida de mercancía
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        warehouseId  path  string  true  "ID de la bodega"
// @Param        body  body  dto.RegisterTransactionRequest  true  "date, reference, notes, items"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "stock insuficiente"
// @Router       /api/warehouses/{warehouseId}/exits [post]
func (h *InventoryHandler) RegisterExit(c *fiber.Ctx) error {
	return h.registerTransaction(c, entity.MovementExit)
}

func (h *InventoryHandler) registerTransaction(c *fiber.Ctx, movType entity.MovementType) error {
	var in dto.RegisterTransactionRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.register.RegisterFromRequest(c.Context(), c.Params("warehouseId"), h.operator(c), movType, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListDocuments godoc
// @Summary      Listar documentos de la bodega
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouseId  path   string  true   "ID de la bodega"
// @Param        type         query  string  false  "entry | exit"
// @Param        from         query  string  false  "YYYY-MM-DD"
// @Param        to           query  string  false  "YYYY-MM-DD (inclusive)"
// @Success      200  {object}  dto.DocumentListResponse
// @Router       /api/warehouses/{warehouseId}/documents [get]
func (h *InventoryHandler) ListDocuments(c *fiber.Ctx) error {
	movType := entity.MovementType(c.Query("type"))
	if movType != "" && !movType.Valid() {
		return badRequest(c, "VALIDATION", "type debe ser entry o exit")
	}
	from, to, err := h.dateRange(c)
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	p := page(c)
	out, err := h.query.ListDocuments(c.Context(), c.Params("warehouseId"), movType, from, to, p.Limit, p.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetDocument godoc
// @Summary      Obtener documento (json, pdf, xlsx o html)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouseId  path   string  true   "ID de la bodega"
// @Param        id           path   string  true   "ID del documento"
// @Param        format       query  string  false  "json | pdf | xlsx | html"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{warehouseId}/documents/{id} [get]
func (h *InventoryHandler) GetDocument(c *fiber.Ctx) error {
	doc, err := h.query.GetDocument(c.Context(), c.Params("warehouseId"), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return h.renderers.respond(c, doc, doc.Number, func(r reports.Renderer) ([]byte, error) {
		return r.RenderDocument(doc)
	})
}

// ListMovements movimientos de la bodega en orden cronológico.
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	from, to, err := h.dateRange(c)
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	p := page(c)
	out, err := h.query.ListMovements(c.Context(), c.Params("warehouseId"), c.Query("product_id"), from, to, p.Limit, p.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Import godoc
// @Summary      Importar entradas desde CSV
// @Description  Columnas: code, quantity, unit_price, reference, notes, name, category, supplier.
// @Description  Acepta multipart (campo "file") o el CSV como cuerpo de la petición.
// @Tags         inventory
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Param        warehouseId  path      string  true  "ID de la bodega"
// @Param        file         formData  file    false "archivo CSV"
// @Success      200  {object}  dto.ImportResultResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{warehouseId}/import [post]
func (h *InventoryHandler) Import(c *fiber.Ctx) error {
	var src io.Reader
	if fh, err := c.FormFile("file"); err == nil {
		if fh.Size > maxImportSize {
			return badRequest(c, "FILE_TOO_LARGE", "el archivo supera 5 MB")
		}
		f, err := fh.Open()
		if err != nil {
			return badRequest(c, "INVALID_FILE", "no se pudo leer el archivo")
		}
		defer f.Close()
		src = f
	} else {
		body := c.Body()
		if len(body) == 0 {
			return badRequest(c, "MISSING_FILE", "envíe el CSV en el campo file o como cuerpo")
		}
		if len(body) > maxImportSize {
			return badRequest(c, "FILE_TOO_LARGE", "el archivo supera 5 MB")
		}
		src = bytes.NewReader(body)
	}
	res, err := h.importer.Import(c.Context(), c.Params("warehouseId"), h.operator(c), src)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inventory.ToImportResultResponse(res))
}

// Reset godoc
// @Summary      Reiniciar bodega
// @Description  Borra movimientos y documentos de la bodega y deja su stock en cero. Solo admin.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouseId  path  string  true  "ID de la bodega"
// @Success      200  {object}  dto.ResetResultResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{warehouseId}/reset [post]
func (h *InventoryHandler) Reset(c *fiber.Ctx) error {
	res, err := h.reset.ResetWarehouse(c.Context(), c.Params("warehouseId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ResetResultResponse{
		WarehouseID:      res.WarehouseID,
		DeletedMovements: res.DeletedMovements,
		DeletedDocuments: res.DeletedDocuments,
	})
}

// operator nombre registrado en documentos y movimientos: email del usuario o su ID.
func (h *InventoryHandler) operator(c *fiber.Ctx) string {
	userID := GetUserID(c)
	if h.users != nil {
		if u, err := h.users.GetByID(c.Context(), userID); err == nil && u != nil {
			return u.Email
		}
	}
	return userID
}

// dateRange lee from/to; to se extiende hasta el final del día.
func (h *InventoryHandler) dateRange(c *fiber.Ctx) (from, to *time.Time, err error) {
	if from, err = dateQuery(c, "from", h.loc); err != nil {
		return nil, nil, err
	}
	if to, err = dateQuery(c, "to", h.loc); err != nil {
		return nil, nil, err
	}
	if to != nil {
		end := ledger.EndOfDay(*to, h.loc)
		to = &end
	}
	return from, to, nil
}
