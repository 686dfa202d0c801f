package memory

import (
	"context"
	"sort"
	"time"

	"github.com/adrianbura/copie-stok/internal/domain/entity"
	"github.com/adrianbura/copie-stok/internal/domain/repository"
)

// WarehouseStockRepository implementación en memoria.
type WarehouseStockRepository struct {
	s    *Store
	inTx bool // atado a TxRunner.Run, que ya tiene txMu
}

// NewWarehouseStockRepository construye el repositorio.
func NewWarehouseStockRepository(s *Store) *WarehouseStockRepository {
	return &WarehouseStockRepository{s: s}
}

var _ repository.WarehouseStockRepository = (*WarehouseStockRepository)(nil)

// Get devuelve una fila en cero si no existe.
func (r *WarehouseStockRepository) Get(_ context.Context, warehouseID, productID string) (*entity.WarehouseStock, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if s, ok := r.s.data.stock[stockKey{warehouseID, productID}]; ok {
		c := *s
		return &c, nil
	}
	return &entity.WarehouseStock{WarehouseID: warehouseID, ProductID: productID}, nil
}

// GetForUpdate equivale a Get: el TxRunner ya serializa las transacciones.
func (r *WarehouseStockRepository) GetForUpdate(ctx context.Context, warehouseID, productID string) (*entity.WarehouseStock, error) {
	return r.Get(ctx, warehouseID, productID)
}

func (r *WarehouseStockRepository) Upsert(_ context.Context, s *entity.WarehouseStock) error {
	defer r.s.lockWrite(r.inTx)()
	c := *s
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = time.Now()
	}
	r.s.data.stock[stockKey{s.WarehouseID, s.ProductID}] = &c
	return nil
}

// SetMinStock crea la fila en cero si no existe.
func (r *WarehouseStockRepository) SetMinStock(_ context.Context, warehouseID, productID string, minStock int) error {
	defer r.s.lockWrite(r.inTx)()
	k := stockKey{warehouseID, productID}
	s, ok := r.s.data.stock[k]
	if !ok {
		s = &entity.WarehouseStock{WarehouseID: warehouseID, ProductID: productID}
		r.s.data.stock[k] = s
	}
	s.MinStock = minStock
	s.UpdatedAt = time.Now()
	return nil
}

// ListByWarehouse ordenado por producto.
func (r *WarehouseStockRepository) ListByWarehouse(_ context.Context, warehouseID string) ([]*entity.WarehouseStock, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.WarehouseStock
	for k, s := range r.s.data.stock {
		if k.warehouseID == warehouseID {
			c := *s
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

func (r *WarehouseStockRepository) ResetWarehouse(_ context.Context, warehouseID string) error {
	defer r.s.lockWrite(r.inTx)()
	now := time.Now()
	for k, s := range r.s.data.stock {
		if k.warehouseID == warehouseID {
			s.Quantity = 0
			s.UpdatedAt = now
		}
	}
	return nil
}
