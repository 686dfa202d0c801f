package repository

import (
	"context"
	"time"

	"github.com/adrianbura/copie-stok/internal/domain/entity"
)

// AlertFilter filtros del listado de alertas.
type AlertFilter struct {
	WarehouseID string
	OnlyOpen    bool
	Limit       int
	Offset      int
}

// AlertRepository define el puerto de persistencia para Alert.
type AlertRepository interface {
	Create(ctx context.Context, alert *entity.Alert) error
	GetByID(ctx context.Context, id string) (*entity.Alert, error)
	List(ctx context.Context, filter AlertFilter) ([]*entity.Alert, error)
	// FindOpen devuelve la alerta sin reconocer de (bodega, producto, tipo), o nil.
	FindOpen(ctx context.Context, warehouseID, productID string, alertType entity.AlertType) (*entity.Alert, error)
	// Escalate cambia gravedad y mensaje de una alerta abierta.
	Escalate(ctx context.Context, id string, severity entity.AlertSeverity, message string) error
	Acknowledge(ctx context.Context, id, userID string, at time.Time) error
}
