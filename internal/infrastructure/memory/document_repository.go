package memory

import (
	"context"
	"sort"

	"github.com/adrianbura/copie-stok/internal/domain/entity"
	"github.com/adrianbura/copie-stok/internal/domain/repository"
)

// InventoryDocumentRepository implementación en memoria.
type InventoryDocumentRepository struct {
	s    *Store
	inTx bool // atado a TxRunner.Run, que ya tiene txMu
}

// NewInventoryDocumentRepository construye el repositorio.
func NewInventoryDocumentRepository(s *Store) *InventoryDocumentRepository {
	return &InventoryDocumentRepository{s: s}
}

var _ repository.InventoryDocumentRepository = (*InventoryDocumentRepository)(nil)

func (r *InventoryDocumentRepository) Create(_ context.Context, d *entity.InventoryDocument) error {
	defer r.s.lockWrite(r.inTx)()
	r.s.data.documents = append(r.s.data.documents, copyDocument(d))
	return nil
}

func (r *InventoryDocumentRepository) GetByID(_ context.Context, id string) (*entity.InventoryDocument, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, d := range r.s.data.documents {
		if d.ID == id {
			return copyDocument(d), nil
		}
	}
	return nil, nil
}

// List más recientes primero.
func (r *InventoryDocumentRepository) List(_ context.Context, f repository.DocumentFilter) ([]*entity.InventoryDocument, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.InventoryDocument
	for _, d := range r.s.data.documents {
		if f.WarehouseID != "" && d.WarehouseID != f.WarehouseID {
			continue
		}
		if f.Type != "" && d.Type != f.Type {
			continue
		}
		if f.From != nil && d.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && d.Date.After(*f.To) {
			continue
		}
		out = append(out, copyDocument(d))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	from, to := page(len(out), f.Limit, f.Offset)
	return out[from:to], nil
}

func (r *InventoryDocumentRepository) DeleteByWarehouse(_ context.Context, warehouseID string) (int64, error) {
	defer r.s.lockWrite(r.inTx)()
	kept := r.s.data.documents[:0]
	var n int64
	for _, d := range r.s.data.documents {
		if d.WarehouseID == warehouseID {
			n++
			continue
		}
		kept = append(kept, d)
	}
	r.s.data.documents = kept
	return n, nil
}
