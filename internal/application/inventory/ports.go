package inventory

import (
	"context"

	"github.com/adrianbura/copie-stok/internal/domain/entity"
	"github.com/adrianbura/copie-stok/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Movimiento, documento y stock se escriben en la misma transacción: si fn devuelve error no queda nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.WarehouseStockRepository,
		productRepo repository.ProductRepository,
		docRepo repository.InventoryDocumentRepository,
	) error) error
}

// AlertEvaluator evalúa las reglas de alerta tras un movimiento confirmado.
type AlertEvaluator interface {
	Evaluate(ctx context.Context, warehouseID string, productIDs []string) ([]*entity.Alert, error)
}
