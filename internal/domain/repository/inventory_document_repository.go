package repository

import (
	"context"
	"time"

	"github.com/adrianbura/copie-stok/internal/domain/entity"
)

// DocumentFilter filtros del listado de documentos de inventario.
type DocumentFilter struct {
	WarehouseID string
	Type        entity.MovementType
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
}

// InventoryDocumentRepository define el puerto de persistencia para InventoryDocument.
type InventoryDocumentRepository interface {
	Create(ctx context.Context, doc *entity.InventoryDocument) error
	GetByID(ctx context.Context, id string) (*entity.InventoryDocument, error)
	List(ctx context.Context, filter DocumentFilter) ([]*entity.InventoryDocument, error)
	DeleteByWarehouse(ctx context.Context, warehouseID string) (int64, error)
}
