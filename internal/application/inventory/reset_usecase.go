package inventory

import (
	"context"
	"fmt"

	"github.com/adrianbura/copie-stok/internal/domain"
	"github.com/adrianbura/copie-stok/internal/domain/repository"
	"github.com/rs/zerolog/log"
)

// ResetResult filas eliminadas por el reinicio.
type ResetResult struct {
	WarehouseID      string
	DeletedMovements int64
	DeletedDocuments int64
}

// ResetUseCase reinicia una bodega: borra su libro y sus documentos, deja el stock en cero
// y recalcula las cantidades globales. Todo en una transacción.
type ResetUseCase struct {
	txRunner      TxRunner
	warehouseRepo repository.WarehouseRepository
}

// NewResetUseCase construye el caso de uso.
func NewResetUseCase(txRunner TxRunner, warehouseRepo repository.WarehouseRepository) *ResetUseCase {
	return &ResetUseCase{txRunner: txRunner, warehouseRepo: warehouseRepo}
}

// ResetWarehouse ejecuta el reinicio.
func (uc *ResetUseCase) ResetWarehouse(ctx context.Context, warehouseID string) (*ResetResult, error) {
	if warehouseID == "" {
		return nil, fmt.Errorf("%w: bodega requerida", domain.ErrInvalidInput)
	}
	wh, err := uc.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, fmt.Errorf("bodega %s: %w", warehouseID, domain.ErrNotFound)
	}
	res := &ResetResult{WarehouseID: warehouseID}
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.WarehouseStockRepository,
		productRepo repository.ProductRepository,
		docRepo repository.InventoryDocumentRepository,
	) error {
		// Movimientos antes que documentos (FK movement.document_id).
		n, err := movRepo.DeleteByWarehouse(ctx, warehouseID)
		if err != nil {
			return err
		}
		res.DeletedMovements = n
		if n, err = docRepo.DeleteByWarehouse(ctx, warehouseID); err != nil {
			return err
		}
		res.DeletedDocuments = n
		if err := stockRepo.ResetWarehouse(ctx, warehouseID); err != nil {
			return err
		}
		return productRepo.RecalculateQuantities(ctx)
	})
	if err != nil {
		return nil, err
	}
	log.Warn().
		Str("warehouse_id", warehouseID).
		Int64("movements", res.DeletedMovements).
		Int64("documents", res.DeletedDocuments).
		Msg("bodega reiniciada")
	return res, nil
}
