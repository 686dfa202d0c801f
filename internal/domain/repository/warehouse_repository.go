package repository

import (
	"context"

	"github.com/adrianbura/copie-stok/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	Update(ctx context.Context, warehouse *entity.Warehouse) error
	List(ctx context.Context, limit, offset int) ([]*entity.Warehouse, error)
	ListByIDs(ctx context.Context, ids []string) ([]*entity.Warehouse, error)
	Delete(ctx context.Context, id string) error
}
