// Package app compone repositorios, casos de uso y renderers para los binarios de cmd/.
package app

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adrianbura/copie-stok/internal/application/alerts"
	"github.com/adrianbura/copie-stok/internal/application/auth"
	"github.com/adrianbura/copie-stok/internal/application/inventory"
	"github.com/adrianbura/copie-stok/internal/application/reports"
	"github.com/adrianbura/copie-stok/internal/application/usecase"
	"github.com/adrianbura/copie-stok/internal/domain/repository"
	"github.com/adrianbura/copie-stok/internal/infrastructure/excel"
	"github.com/adrianbura/copie-stok/internal/infrastructure/memory"
	infrapdf "github.com/adrianbura/copie-stok/internal/infrastructure/pdf"
	"github.com/adrianbura/copie-stok/internal/infrastructure/postgres"
	"github.com/adrianbura/copie-stok/internal/infrastructure/printhtml"
	httpRouter "github.com/adrianbura/copie-stok/internal/interfaces/http"
)

// Repositories adaptadores de persistencia de un driver (postgres o memoria).
type Repositories struct {
	Users      repository.UserRepository
	Grants     repository.UserWarehouseRepository
	Products   repository.ProductRepository
	Warehouses repository.WarehouseRepository
	Stock      repository.WarehouseStockRepository
	Movements  repository.StockMovementRepository
	Documents  repository.InventoryDocumentRepository
	Alerts     repository.AlertRepository
	Tx         inventory.TxRunner
}

// PostgresRepositories repositorios sobre el pool.
func PostgresRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:      postgres.NewUserRepository(pool),
		Grants:     postgres.NewUserWarehouseRepository(pool),
		Products:   postgres.NewProductRepository(pool),
		Warehouses: postgres.NewWarehouseRepository(pool),
		Stock:      postgres.NewWarehouseStockRepository(pool),
		Movements:  postgres.NewMovementRepository(pool),
		Documents:  postgres.NewDocumentRepository(pool),
		Alerts:     postgres.NewAlertRepository(pool),
		Tx:         postgres.NewTxRunner(pool),
	}
}

// MemoryRepositories repositorios en memoria (STORE_DRIVER=memory y tests).
func MemoryRepositories(s *memory.Store) Repositories {
	return Repositories{
		Users:      memory.NewUserRepository(s),
		Grants:     memory.NewUserWarehouseRepository(s),
		Products:   memory.NewProductRepository(s),
		Warehouses: memory.NewWarehouseRepository(s),
		Stock:      memory.NewWarehouseStockRepository(s),
		Movements:  memory.NewStockMovementRepository(s),
		Documents:  memory.NewInventoryDocumentRepository(s),
		Alerts:     memory.NewAlertRepository(s),
		Tx:         memory.NewTxRunner(s),
	}
}

// Options parámetros de composición que vienen de la configuración.
type Options struct {
	Name            string
	Location        *time.Location
	AlertExpiryDays int
	JWT             auth.JWTConfig
}

// Services casos de uso listos para usar.
type Services struct {
	Auth       *auth.AuthUseCase
	Users      *usecase.UserUseCase
	Access     *usecase.AccessUseCase
	Products   *usecase.ProductUseCase
	Warehouses *usecase.WarehouseUseCase
	Register   *inventory.RegisterTransactionUseCase
	Import     *inventory.ImportUseCase
	Reset      *inventory.ResetUseCase
	Query      *inventory.QueryUseCase
	Reports    *reports.UseCase
	Alerts     *alerts.UseCase
}

// NewServices construye los casos de uso sobre repos.
func NewServices(repos Repositories, opts Options) *Services {
	alertUC := alerts.NewUseCase(repos.Alerts, repos.Products, repos.Stock, repos.Warehouses, opts.AlertExpiryDays)
	register := inventory.NewRegisterTransactionUseCase(repos.Tx, repos.Products, repos.Warehouses, alertUC).
		WithLocation(opts.Location)
	return &Services{
		Auth:       auth.NewAuthUseCase(repos.Users, opts.JWT),
		Users:      usecase.NewUserUseCase(repos.Users),
		Access:     usecase.NewAccessUseCase(repos.Grants, repos.Users, repos.Warehouses),
		Products:   usecase.NewProductUseCase(repos.Products),
		Warehouses: usecase.NewWarehouseUseCase(repos.Warehouses, repos.Stock, repos.Products),
		Register:   register,
		Import:     inventory.NewImportUseCase(register, repos.Products, repos.Warehouses),
		Reset:      inventory.NewResetUseCase(repos.Tx, repos.Warehouses),
		Query:      inventory.NewQueryUseCase(repos.Documents, repos.Movements),
		Reports:    reports.NewUseCase(repos.Products, repos.Movements, repos.Stock, repos.Warehouses, opts.Location),
		Alerts:     alertUC,
	}
}

// Renderers adaptadores pdf, xlsx y html para ?format=.
func Renderers(name string) (httpRouter.Renderers, error) {
	composer, err := printhtml.NewComposer(name)
	if err != nil {
		return nil, err
	}
	return httpRouter.Renderers{
		"pdf":  infrapdf.NewMarotoReportGenerator(name),
		"xlsx": excel.NewExporter(),
		"html": composer,
	}, nil
}

// RouterDeps dependencias del router HTTP.
func (s *Services) RouterDeps(renderers httpRouter.Renderers, jwtSecret string) httpRouter.RouterDeps {
	return httpRouter.RouterDeps{
		AuthUC:      s.Auth,
		UserUC:      s.Users,
		AccessUC:    s.Access,
		ProductUC:   s.Products,
		WarehouseUC: s.Warehouses,
		Register:    s.Register,
		Import:      s.Import,
		Reset:       s.Reset,
		Query:       s.Query,
		Reports:     s.Reports,
		Alerts:      s.Alerts,
		Renderers:   renderers,
		JWTSecret:   jwtSecret,
	}
}
