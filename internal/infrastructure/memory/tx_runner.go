package memory

import (
	"context"

	"github.com/adrianbura/copie-stok/internal/application/inventory"
	"github.com/adrianbura/copie-stok/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks de forma exclusiva y restaura productos, stock, movimientos y
// documentos si fn falla.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run copia las colecciones transaccionales, ejecuta fn con repositorios atados a la
// transacción y restaura la copia si devuelve error.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.WarehouseStockRepository,
	productRepo repository.ProductRepository,
	docRepo repository.InventoryDocumentRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.txMu.Lock()
	defer r.store.txMu.Unlock()

	r.store.mu.RLock()
	saved := r.store.data.snapshotTx()
	r.store.mu.RUnlock()

	err := fn(
		&StockMovementRepository{s: r.store, inTx: true},
		&WarehouseStockRepository{s: r.store, inTx: true},
		&ProductRepository{s: r.store, inTx: true},
		&InventoryDocumentRepository{s: r.store, inTx: true},
	)
	if err != nil {
		r.store.mu.Lock()
		r.store.data.restoreTx(saved)
		r.store.mu.Unlock()
		return err
	}
	return nil
}
