package repository

import (
	"context"

	"github.com/adrianbura/copie-stok/internal/domain/entity"
)

// WarehouseStockRepository define el puerto para consultar/actualizar stock por bodega+producto.
// Get y GetForUpdate devuelven una fila en cero si no existe.
type WarehouseStockRepository interface {
	Get(ctx context.Context, warehouseID, productID string) (*entity.WarehouseStock, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) dentro de una transacción.
	GetForUpdate(ctx context.Context, warehouseID, productID string) (*entity.WarehouseStock, error)
	Upsert(ctx context.Context, stock *entity.WarehouseStock) error
	SetMinStock(ctx context.Context, warehouseID, productID string, minStock int) error
	ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.WarehouseStock, error)
	// ResetWarehouse deja en cero todas las filas de la bodega.
	ResetWarehouse(ctx context.Context, warehouseID string) error
}
