package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/adrianbura/copie-stok/internal/domain"
	"github.com/adrianbura/copie-stok/internal/domain/entity"
	"github.com/adrianbura/copie-stok/internal/domain/repository"
)

// WarehouseRepository implementación en memoria.
type WarehouseRepository struct {
	s *Store
}

// NewWarehouseRepository construye el repositorio.
func NewWarehouseRepository(s *Store) *WarehouseRepository {
	return &WarehouseRepository{s: s}
}

var _ repository.WarehouseRepository = (*WarehouseRepository)(nil)

func (r *WarehouseRepository) Create(_ context.Context, w *entity.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.data.warehouses {
		if strings.EqualFold(e.Code, w.Code) {
			return domain.ErrDuplicate
		}
	}
	c := *w
	r.s.data.warehouses[w.ID] = &c
	return nil
}

func (r *WarehouseRepository) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	w, ok := r.s.data.warehouses[id]
	if !ok {
		return nil, nil
	}
	c := *w
	return &c, nil
}

func (r *WarehouseRepository) Update(_ context.Context, w *entity.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.warehouses[w.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *w
	r.s.data.warehouses[w.ID] = &c
	return nil
}

// List ordenado por código.
func (r *WarehouseRepository) List(_ context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Warehouse, 0, len(r.s.data.warehouses))
	for _, w := range r.s.data.warehouses {
		c := *w
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	from, to := page(len(out), limit, offset)
	return out[from:to], nil
}

func (r *WarehouseRepository) ListByIDs(_ context.Context, ids []string) ([]*entity.Warehouse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Warehouse, 0, len(ids))
	for _, id := range ids {
		if w, ok := r.s.data.warehouses[id]; ok {
			c := *w
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// Delete falla con ErrConflict si la bodega tiene movimientos.
func (r *WarehouseRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.warehouses[id]; !ok {
		return domain.ErrNotFound
	}
	for _, m := range r.s.data.movements {
		if m.WarehouseID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.data.warehouses, id)
	for k := range r.s.data.stock {
		if k.warehouseID == id {
			delete(r.s.data.stock, k)
		}
	}
	for k := range r.s.data.grants {
		if k.warehouseID == id {
			delete(r.s.data.grants, k)
		}
	}
	return nil
}
