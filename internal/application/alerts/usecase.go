package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/adrianbura/copie-stok/internal/application/dto"
	"github.com/adrianbura/copie-stok/internal/domain"
	alertrules "github.com/adrianbura/copie-stok/internal/domain/alerts"
	"github.com/adrianbura/copie-stok/internal/domain/entity"
	"github.com/adrianbura/copie-stok/internal/domain/repository"
	"github.com/google/uuid"
)

// UseCase evalúa reglas de alerta por bodega y gestiona su reconocimiento.
type UseCase struct {
	alertRepo     repository.AlertRepository
	productRepo   repository.ProductRepository
	stockRepo     repository.WarehouseStockRepository
	warehouseRepo repository.WarehouseRepository
	expiryWindow  time.Duration
	now           func() time.Time
}

// NewUseCase construye el caso de uso. expiryDays es la antelación del aviso de caducidad.
func NewUseCase(
	alertRepo repository.AlertRepository,
	productRepo repository.ProductRepository,
	stockRepo repository.WarehouseStockRepository,
	warehouseRepo repository.WarehouseRepository,
	expiryDays int,
) *UseCase {
	return &UseCase{
		alertRepo:     alertRepo,
		productRepo:   productRepo,
		stockRepo:     stockRepo,
		warehouseRepo: warehouseRepo,
		expiryWindow:  time.Duration(expiryDays) * 24 * time.Hour,
		now:           time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Evaluate aplica las reglas a los productos indicados (o a todos los que tienen fila de
// stock en la bodega si productIDs está vacío). Crea las alertas que no tengan ya una abierta
// del mismo tipo para el mismo producto y bodega, y sube la gravedad de las abiertas cuando la
// regla devuelve una mayor. Devuelve las creadas seguidas de las escaladas.
func (uc *UseCase) Evaluate(ctx context.Context, warehouseID string, productIDs []string) ([]*entity.Alert, error) {
	created, escalated, err := uc.evaluate(ctx, warehouseID, productIDs)
	return append(created, escalated...), err
}

func (uc *UseCase) evaluate(ctx context.Context, warehouseID string, productIDs []string) (created, escalated []*entity.Alert, err error) {
	stockByProduct := make(map[string]*entity.WarehouseStock)
	if len(productIDs) == 0 {
		rows, err := uc.stockRepo.ListByWarehouse(ctx, warehouseID)
		if err != nil {
			return nil, nil, err
		}
		for _, s := range rows {
			stockByProduct[s.ProductID] = s
			productIDs = append(productIDs, s.ProductID)
		}
	}
	products, err := uc.productRepo.ListByIDs(ctx, productIDs)
	if err != nil {
		return nil, nil, err
	}

	now := uc.now()
	for _, p := range products {
		stock, ok := stockByProduct[p.ID]
		if !ok {
			if stock, err = uc.stockRepo.Get(ctx, warehouseID, p.ID); err != nil {
				return created, escalated, err
			}
		}
		for _, f := range alertrules.Evaluate(p, stock, now, uc.expiryWindow) {
			open, err := uc.alertRepo.FindOpen(ctx, warehouseID, f.ProductID, f.Type)
			if err != nil {
				return created, escalated, err
			}
			if open != nil {
				if f.Severity.Rank() <= open.Severity.Rank() {
					continue
				}
				if err := uc.alertRepo.Escalate(ctx, open.ID, f.Severity, f.Message); err != nil {
					return created, escalated, err
				}
				open.Severity = f.Severity
				open.Message = f.Message
				escalated = append(escalated, open)
				continue
			}
			a := &entity.Alert{
				ID:          uuid.New().String(),
				WarehouseID: warehouseID,
				ProductID:   f.ProductID,
				Type:        f.Type,
				Severity:    f.Severity,
				Message:     f.Message,
				CreatedAt:   now,
			}
			if err := uc.alertRepo.Create(ctx, a); err != nil {
				return created, escalated, err
			}
			created = append(created, a)
		}
	}
	return created, escalated, nil
}

// EvaluateWarehouse evalúa todos los productos de la bodega y devuelve el DTO.
func (uc *UseCase) EvaluateWarehouse(ctx context.Context, warehouseID string) (*dto.EvaluateAlertsResponse, error) {
	wh, err := uc.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, fmt.Errorf("bodega %s: %w", warehouseID, domain.ErrNotFound)
	}
	created, escalated, err := uc.evaluate(ctx, warehouseID, nil)
	if err != nil {
		return nil, err
	}
	out := &dto.EvaluateAlertsResponse{
		Created:   make([]dto.AlertResponse, 0, len(created)),
		Escalated: make([]dto.AlertResponse, 0, len(escalated)),
	}
	for _, a := range created {
		out.Created = append(out.Created, toAlertResponse(a))
	}
	for _, a := range escalated {
		out.Escalated = append(out.Escalated, toAlertResponse(a))
	}
	return out, nil
}

// List alertas de la bodega; onlyOpen excluye las reconocidas.
func (uc *UseCase) List(ctx context.Context, warehouseID string, onlyOpen bool, limit, offset int) (*dto.AlertListResponse, error) {
	list, err := uc.alertRepo.List(ctx, repository.AlertFilter{
		WarehouseID: warehouseID,
		OnlyOpen:    onlyOpen,
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.AlertResponse, 0, len(list))
	for _, a := range list {
		items = append(items, toAlertResponse(a))
	}
	return &dto.AlertListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// Acknowledge marca la alerta como reconocida por userID. Reconocer dos veces es ErrConflict.
func (uc *UseCase) Acknowledge(ctx context.Context, warehouseID, alertID, userID string) (*dto.AlertResponse, error) {
	a, err := uc.alertRepo.GetByID(ctx, alertID)
	if err != nil {
		return nil, err
	}
	if a == nil || a.WarehouseID != warehouseID {
		return nil, fmt.Errorf("alerta %s: %w", alertID, domain.ErrNotFound)
	}
	if a.Acknowledged {
		return nil, fmt.Errorf("alerta %s ya reconocida: %w", alertID, domain.ErrConflict)
	}
	now := uc.now()
	if err := uc.alertRepo.Acknowledge(ctx, alertID, userID, now); err != nil {
		return nil, err
	}
	a.Acknowledged = true
	a.AcknowledgedBy = userID
	a.AcknowledgedAt = &now
	resp := toAlertResponse(a)
	return &resp, nil
}

func toAlertResponse(a *entity.Alert) dto.AlertResponse {
	return dto.AlertResponse{
		ID:             a.ID,
		WarehouseID:    a.WarehouseID,
		ProductID:      a.ProductID,
		Type:           string(a.Type),
		Severity:       string(a.Severity),
		Message:        a.Message,
		Acknowledged:   a.Acknowledged,
		AcknowledgedBy: a.AcknowledgedBy,
		AcknowledgedAt: a.AcknowledgedAt,
		CreatedAt:      a.CreatedAt,
	}
}
