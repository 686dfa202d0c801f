package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/adrianbura/copie-stok/internal/domain"
	"github.com/adrianbura/copie-stok/internal/domain/entity"
	"github.com/adrianbura/copie-stok/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

var alertColumns = []string{
	"id::text AS id", "warehouse_id::text AS warehouse_id", "product_id::text AS product_id",
	"type", "severity", "message", "acknowledged", "acknowledged_by", "acknowledged_at", "created_at",
}

// AlertRepo implementación de AlertRepository sobre PostgreSQL.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

func (r *AlertRepo) Create(ctx context.Context, a *entity.Alert) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO alerts (id, warehouse_id, product_id, type, severity, message, acknowledged, acknowledged_by, acknowledged_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		a.ID, a.WarehouseID, a.ProductID, string(a.Type), string(a.Severity), a.Message,
		a.Acknowledged, a.AcknowledgedBy, a.AcknowledgedAt, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

func (r *AlertRepo) GetByID(ctx context.Context, id string) (*entity.Alert, error) {
	if !validID(id) {
		return nil, nil
	}
	sql, args, err := psql.Select(alertColumns...).From("alerts").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var a entity.Alert
	if err := pgxscan.Get(ctx, r.q, &a, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get alert: %w", err)
	}
	return &a, nil
}

// List más recientes primero.
func (r *AlertRepo) List(ctx context.Context, f repository.AlertFilter) ([]*entity.Alert, error) {
	q := psql.Select(alertColumns...).From("alerts").OrderBy("created_at DESC")
	if f.WarehouseID != "" {
		q = q.Where(squirrel.Eq{"warehouse_id": f.WarehouseID})
	}
	if f.OnlyOpen {
		q = q.Where(squirrel.Eq{"acknowledged": false})
	}
	sql, args, err := paginate(q, f.Limit, f.Offset).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var list []*entity.Alert
	if err := pgxscan.Select(ctx, r.q, &list, sql, args...); err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	return list, nil
}

func (r *AlertRepo) FindOpen(ctx context.Context, warehouseID, productID string, t entity.AlertType) (*entity.Alert, error) {
	if !validID(warehouseID) || !validID(productID) {
		return nil, nil
	}
	sql, args, err := psql.Select(alertColumns...).From("alerts").
		Where(squirrel.Eq{"warehouse_id": warehouseID, "product_id": productID, "type": string(t), "acknowledged": false}).
		OrderBy("created_at DESC").Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var a entity.Alert
	if err := pgxscan.Get(ctx, r.q, &a, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find open alert: %w", err)
	}
	return &a, nil
}

func (r *AlertRepo) Escalate(ctx context.Context, id string, severity entity.AlertSeverity, message string) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE alerts SET severity = $2, message = $3
		WHERE id = $1 AND NOT acknowledged`, id, string(severity), message)
	if err != nil {
		return fmt.Errorf("escalate alert: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AlertRepo) Acknowledge(ctx context.Context, id, userID string, at time.Time) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE alerts SET acknowledged = true, acknowledged_by = $2, acknowledged_at = $3
		WHERE id = $1`, id, userID, at)
	if err != nil {
		return fmt.Errorf("acknowledge alert: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
