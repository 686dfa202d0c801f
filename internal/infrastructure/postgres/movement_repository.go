package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/adrianbura/copie-stok/internal/domain/entity"
	"github.com/adrianbura/copie-stok/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de movimientos sobre PostgreSQL (solo inserción y borrado por bodega).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create registra un movimiento; seq lo asigna la base de datos.
func (r *MovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	sql, args, err := psql.Insert("stock_movements").Columns(
		"id", "product_id", "warehouse_id", "document_id", "type", "quantity", "unit_price",
		"date", "reference", "notes", "operator", "created_at",
	).Values(
		m.ID, m.ProductID, m.WarehouseID, nullIfEmpty(m.DocumentID), string(m.Type), m.Quantity, m.UnitPrice,
		m.Date, m.Reference, m.Notes, m.Operator, m.CreatedAt,
	).ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// List aplica los filtros y ordena por fecha y seq.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	q := psql.Select(
		"id::text AS id", "product_id::text AS product_id", "warehouse_id::text AS warehouse_id",
		"COALESCE(document_id::text, '') AS document_id", "type", "quantity", "unit_price",
		"date", "reference", "notes", "operator", "created_at",
	).From("stock_movements").OrderBy("date", "seq")
	if f.WarehouseID != "" {
		q = q.Where(squirrel.Eq{"warehouse_id": f.WarehouseID})
	}
	if f.ProductID != "" {
		q = q.Where(squirrel.Eq{"product_id": f.ProductID})
	}
	if f.Type != "" {
		q = q.Where(squirrel.Eq{"type": string(f.Type)})
	}
	if f.From != nil {
		q = q.Where(squirrel.GtOrEq{"date": *f.From})
	}
	if f.To != nil {
		// PostgreSQL redondea a microsegundos: 23:59:59.999999999 pasaría al día siguiente.
		q = q.Where(squirrel.LtOrEq{"date": f.To.Truncate(time.Microsecond)})
	}
	sql, args, err := paginate(q, f.Limit, f.Offset).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var list []*entity.StockMovement
	if err := pgxscan.Select(ctx, r.q, &list, sql, args...); err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return list, nil
}

// DeleteByWarehouse borra el libro de la bodega y devuelve cuántos movimientos eliminó.
func (r *MovementRepo) DeleteByWarehouse(ctx context.Context, warehouseID string) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM stock_movements WHERE warehouse_id = $1`, warehouseID)
	if err != nil {
		return 0, fmt.Errorf("delete movements: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
