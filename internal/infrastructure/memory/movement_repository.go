package memory

import (
	"context"
	"sort"

	"github.com/adrianbura/copie-stok/internal/domain/entity"
	"github.com/adrianbura/copie-stok/internal/domain/repository"
)

// StockMovementRepository implementación en memoria del libro de movimientos.
type StockMovementRepository struct {
	s    *Store
	inTx bool // atado a TxRunner.Run, que ya tiene txMu
}

// NewStockMovementRepository construye el repositorio.
func NewStockMovementRepository(s *Store) *StockMovementRepository {
	return &StockMovementRepository{s: s}
}

var _ repository.StockMovementRepository = (*StockMovementRepository)(nil)

func (r *StockMovementRepository) Create(_ context.Context, m *entity.StockMovement) error {
	defer r.s.lockWrite(r.inTx)()
	c := *m
	r.s.data.movements = append(r.s.data.movements, &c)
	return nil
}

// List por fecha; los empates conservan el orden de inserción.
func (r *StockMovementRepository) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.StockMovement
	for _, m := range r.s.data.movements {
		if f.WarehouseID != "" && m.WarehouseID != f.WarehouseID {
			continue
		}
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		if f.From != nil && m.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && m.Date.After(*f.To) {
			continue
		}
		c := *m
		out = append(out, &c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	from, to := page(len(out), f.Limit, f.Offset)
	return out[from:to], nil
}

func (r *StockMovementRepository) DeleteByWarehouse(_ context.Context, warehouseID string) (int64, error) {
	defer r.s.lockWrite(r.inTx)()
	kept := r.s.data.movements[:0]
	var n int64
	for _, m := range r.s.data.movements {
		if m.WarehouseID == warehouseID {
			n++
			continue
		}
		kept = append(kept, m)
	}
	r.s.data.movements = kept
	return n, nil
}
