package repository

import (
	"context"

	"github.com/adrianbura/copie-stok/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductFilter filtros del listado de productos.
type ProductFilter struct {
	Category entity.Category
	Search   string // código o nombre, sin distinguir mayúsculas
	Limit    int
	Offset   int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetByCode devuelven (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// UpdatePrice actualiza solo el precio unitario (usado por el motor de inventario).
	UpdatePrice(ctx context.Context, productID string, price decimal.Decimal) error
	// AdjustQuantity suma delta (con signo) a la cantidad global del producto.
	AdjustQuantity(ctx context.Context, productID string, delta int) error
	// RecalculateQuantities recalcula la cantidad global desde warehouse_stock.
	RecalculateQuantities(ctx context.Context) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	ListByIDs(ctx context.Context, ids []string) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
