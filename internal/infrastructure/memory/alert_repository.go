package memory

import (
	"context"
	"sort"
	"time"

	"github.com/adrianbura/copie-stok/internal/domain"
	"github.com/adrianbura/copie-stok/internal/domain/entity"
	"github.com/adrianbura/copie-stok/internal/domain/repository"
)

// AlertRepository implementación en memoria.
type AlertRepository struct {
	s *Store
}

// NewAlertRepository construye el repositorio.
func NewAlertRepository(s *Store) *AlertRepository {
	return &AlertRepository{s: s}
}

var _ repository.AlertRepository = (*AlertRepository)(nil)

func (r *AlertRepository) Create(_ context.Context, a *entity.Alert) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.alerts = append(r.s.data.alerts, copyAlert(a))
	return nil
}

func (r *AlertRepository) GetByID(_ context.Context, id string) (*entity.Alert, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.data.alerts {
		if a.ID == id {
			return copyAlert(a), nil
		}
	}
	return nil, nil
}

// List más recientes primero.
func (r *AlertRepository) List(_ context.Context, f repository.AlertFilter) ([]*entity.Alert, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Alert
	for _, a := range r.s.data.alerts {
		if f.WarehouseID != "" && a.WarehouseID != f.WarehouseID {
			continue
		}
		if f.OnlyOpen && a.Acknowledged {
			continue
		}
		out = append(out, copyAlert(a))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	from, to := page(len(out), f.Limit, f.Offset)
	return out[from:to], nil
}

func (r *AlertRepository) FindOpen(_ context.Context, warehouseID, productID string, t entity.AlertType) (*entity.Alert, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.data.alerts {
		if !a.Acknowledged && a.WarehouseID == warehouseID && a.ProductID == productID && a.Type == t {
			return copyAlert(a), nil
		}
	}
	return nil, nil
}

func (r *AlertRepository) Escalate(_ context.Context, id string, severity entity.AlertSeverity, message string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.data.alerts {
		if a.ID == id {
			a.Severity = severity
			a.Message = message
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *AlertRepository) Acknowledge(_ context.Context, id, userID string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.data.alerts {
		if a.ID == id {
			a.Acknowledged = true
			a.AcknowledgedBy = userID
			t := at
			a.AcknowledgedAt = &t
			return nil
		}
	}
	return domain.ErrNotFound
}
