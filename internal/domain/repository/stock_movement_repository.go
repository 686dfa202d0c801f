package repository

import (
	"context"
	"time"

	"github.com/adrianbura/copie-stok/internal/domain/entity"
)

// MovementFilter filtros del libro de movimientos. Campos vacíos no filtran.
// From y To son inclusivos.
type MovementFilter struct {
	WarehouseID string
	ProductID   string
	Type        entity.MovementType
	From        *time.Time
	To          *time.Time
	Limit       int // 0 = sin límite
	Offset      int
}

// StockMovementRepository define el puerto de persistencia del libro de movimientos.
// List devuelve los movimientos ordenados por fecha y orden de inserción (ascendente):
// ese orden es el desempate de los movimientos con la misma fecha.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, error)
	DeleteByWarehouse(ctx context.Context, warehouseID string) (int64, error)
}
