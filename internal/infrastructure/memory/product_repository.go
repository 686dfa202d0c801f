package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/adrianbura/copie-stok/internal/domain"
	"github.com/adrianbura/copie-stok/internal/domain/entity"
	"github.com/adrianbura/copie-stok/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ProductRepository implementación en memoria.
type ProductRepository struct {
	s    *Store
	inTx bool // atado a TxRunner.Run, que ya tiene txMu
}

// NewProductRepository construye el repositorio.
func NewProductRepository(s *Store) *ProductRepository {
	return &ProductRepository{s: s}
}

var _ repository.ProductRepository = (*ProductRepository)(nil)

// Create inserta un producto; ErrDuplicate si el código ya existe.
func (r *ProductRepository) Create(_ context.Context, p *entity.Product) error {
	defer r.s.lockWrite(r.inTx)()
	for _, e := range r.s.data.products {
		if strings.EqualFold(e.Code, p.Code) {
			return domain.ErrDuplicate
		}
	}
	r.s.data.products[p.ID] = copyProduct(p)
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *ProductRepository) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.data.products[id]
	if !ok {
		return nil, nil
	}
	return copyProduct(p), nil
}

// GetByCode busca por código sin distinguir mayúsculas.
func (r *ProductRepository) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.data.products {
		if strings.EqualFold(p.Code, code) {
			return copyProduct(p), nil
		}
	}
	return nil, nil
}

func (r *ProductRepository) Update(_ context.Context, p *entity.Product) error {
	defer r.s.lockWrite(r.inTx)()
	if _, ok := r.s.data.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, e := range r.s.data.products {
		if id != p.ID && strings.EqualFold(e.Code, p.Code) {
			return domain.ErrDuplicate
		}
	}
	r.s.data.products[p.ID] = copyProduct(p)
	return nil
}

func (r *ProductRepository) UpdatePrice(_ context.Context, productID string, price decimal.Decimal) error {
	defer r.s.lockWrite(r.inTx)()
	p, ok := r.s.data.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.UnitPrice = price
	p.UpdatedAt = time.Now()
	return nil
}

func (r *ProductRepository) AdjustQuantity(_ context.Context, productID string, delta int) error {
	defer r.s.lockWrite(r.inTx)()
	p, ok := r.s.data.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity += delta
	p.UpdatedAt = time.Now()
	return nil
}

// RecalculateQuantities suma warehouse_stock por producto.
func (r *ProductRepository) RecalculateQuantities(_ context.Context) error {
	defer r.s.lockWrite(r.inTx)()
	totals := make(map[string]int)
	for k, s := range r.s.data.stock {
		totals[k.productID] += s.Quantity
	}
	for id, p := range r.s.data.products {
		p.Quantity = totals[id]
	}
	return nil
}

// List filtra por categoría y búsqueda, ordenado por código.
func (r *ProductRepository) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	search := strings.ToLower(strings.TrimSpace(f.Search))
	var out []*entity.Product
	for _, p := range r.s.data.products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Code), search) &&
			!strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		out = append(out, copyProduct(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	from, to := page(len(out), f.Limit, f.Offset)
	return out[from:to], nil
}

func (r *ProductRepository) ListByIDs(_ context.Context, ids []string) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.s.data.products[id]; ok {
			out = append(out, copyProduct(p))
		}
	}
	return out, nil
}

// Delete falla con ErrConflict si el producto tiene movimientos.
func (r *ProductRepository) Delete(_ context.Context, id string) error {
	defer r.s.lockWrite(r.inTx)()
	if _, ok := r.s.data.products[id]; !ok {
		return domain.ErrNotFound
	}
	for _, m := range r.s.data.movements {
		if m.ProductID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.data.products, id)
	for k := range r.s.data.stock {
		if k.productID == id {
			delete(r.s.data.stock, k)
		}
	}
	return nil
}
