package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/adrianbura/copie-stok/internal/application/alerts"
	"github.com/adrianbura/copie-stok/internal/application/auth"
	"github.com/adrianbura/copie-stok/internal/application/inventory"
	"github.com/adrianbura/copie-stok/internal/application/reports"
	"github.com/adrianbura/copie-stok/internal/application/usecase"
	"github.com/adrianbura/copie-stok/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	AccessUC    *usecase.AccessUseCase
	ProductUC   *usecase.ProductUseCase
	WarehouseUC *usecase.WarehouseUseCase
	Register    *inventory.RegisterTransactionUseCase
	Import      *inventory.ImportUseCase
	Reset       *inventory.ResetUseCase
	Query       *inventory.QueryUseCase
	Reports     *reports.UseCase
	Alerts      *alerts.UseCase
	Renderers   Renderers
	JWTSecret   string
}

// AppConfig configuración de Fiber para la API. Immutable copia params y query: los ids
// terminan como claves de mapa en el store en memoria y fasthttp reutiliza sus buffers.
func AppConfig(appName string) fiber.Config {
	return fiber.Config{
		AppName:      appName,
		Immutable:    true,
		BodyLimit:    6 * 1024 * 1024,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	}
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	var loc *time.Location
	if deps.Reports != nil {
		loc = deps.Reports.Location()
	}
	admin := RequireRole(entity.RoleAdmin)
	writer := RequireRole(entity.RoleAdmin, entity.RoleOperator)

	api := app.Group("/api")
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC, deps.AccessUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)
	protected.Get("/auth/me/warehouses", authHandler.MyWarehouses)

	// Users (solo admin)
	userHandler := NewUserHandler(deps.AuthUC, deps.UserUC, deps.AccessUC)
	users := protected.Group("/users", admin)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Get("/:id/warehouses", userHandler.Warehouses)
	users.Put("/:id/warehouses/:warehouseId", userHandler.GrantWarehouse)
	users.Delete("/:id/warehouses/:warehouseId", userHandler.RevokeWarehouse)

	// Products (catálogo global)
	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", writer, productHandler.Create)
	products.Put("/:id", writer, productHandler.Update)
	products.Delete("/:id", admin, productHandler.Delete)

	// Reports globales (solo admin)
	reportHandler := NewReportHandler(deps.Reports, deps.Renderers)
	protected.Get("/reports/snapshot", admin, reportHandler.GlobalSnapshot)

	// Warehouses
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC, deps.AccessUC)
	protected.Get("/warehouses", warehouseHandler.List)
	protected.Post("/warehouses", admin, warehouseHandler.Create)

	// Todo lo que cuelga de una bodega exige acceso explícito a ella.
	wh := protected.Group("/warehouses/:warehouseId", RequireWarehouseAccess(deps.AccessUC))
	wh.Get("/", warehouseHandler.GetByID)
	wh.Put("/", admin, warehouseHandler.Update)
	wh.Delete("/", admin, warehouseHandler.Delete)
	wh.Put("/stock/:productId/min", writer, warehouseHandler.SetMinStock)

	inventoryHandler := NewInventoryHandler(deps.Register, deps.Import, deps.Reset, deps.Query, deps.UserUC, deps.Renderers, loc)
	wh.Post("/entries", writer, inventoryHandler.RegisterEntry)
	wh.Post("/exits", writer, inventoryHandler.RegisterExit)
	wh.Post("/import", writer, inventoryHandler.Import)
	wh.Post("/reset", admin, inventoryHandler.Reset)
	wh.Get("/documents", inventoryHandler.ListDocuments)
	wh.Get("/documents/:id", inventoryHandler.GetDocument)
	wh.Get("/movements", inventoryHandler.ListMovements)

	wh.Get("/stock", reportHandler.Stock)
	wh.Get("/reports/ledger", reportHandler.Ledger)
	wh.Get("/reports/snapshot", reportHandler.Snapshot)
	wh.Get("/reports/consistency", reportHandler.Consistency)

	alertHandler := NewAlertHandler(deps.Alerts)
	wh.Get("/alerts", alertHandler.List)
	wh.Post("/alerts/evaluate", writer, alertHandler.Evaluate)
	wh.Post("/alerts/:id/ack", writer, alertHandler.Acknowledge)
}
