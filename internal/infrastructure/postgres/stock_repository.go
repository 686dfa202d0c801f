package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/adrianbura/copie-stok/internal/domain/entity"
	"github.com/adrianbura/copie-stok/internal/domain/repository"
)

var _ repository.WarehouseStockRepository = (*WarehouseStockRepo)(nil)

// WarehouseStockRepo implementación de WarehouseStockRepository sobre PostgreSQL (usable con pool o tx).
type WarehouseStockRepo struct {
	q Querier
}

// NewWarehouseStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewWarehouseStockRepository(q Querier) *WarehouseStockRepo {
	return &WarehouseStockRepo{q: q}
}

// Get obtiene el stock actual de un producto en una bodega.
func (r *WarehouseStockRepo) Get(ctx context.Context, warehouseID, productID string) (*entity.WarehouseStock, error) {
	return r.get(ctx, warehouseID, productID, "")
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
func (r *WarehouseStockRepo) GetForUpdate(ctx context.Context, warehouseID, productID string) (*entity.WarehouseStock, error) {
	return r.get(ctx, warehouseID, productID, " FOR UPDATE")
}

func (r *WarehouseStockRepo) get(ctx context.Context, warehouseID, productID, suffix string) (*entity.WarehouseStock, error) {
	query := `
		SELECT warehouse_id::text, product_id::text, quantity, min_stock, updated_at
		FROM warehouse_stock WHERE warehouse_id = $1 AND product_id = $2` + suffix
	var s entity.WarehouseStock
	err := r.q.QueryRow(ctx, query, warehouseID, productID).Scan(
		&s.WarehouseID, &s.ProductID, &s.Quantity, &s.MinStock, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.WarehouseStock{WarehouseID: warehouseID, ProductID: productID}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad en stock (por bodega y producto).
func (r *WarehouseStockRepo) Upsert(ctx context.Context, s *entity.WarehouseStock) error {
	query := `
		INSERT INTO warehouse_stock (warehouse_id, product_id, quantity, min_stock, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (warehouse_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, min_stock = EXCLUDED.min_stock, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, s.WarehouseID, s.ProductID, s.Quantity, s.MinStock); err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// SetMinStock fija el umbral por bodega; crea la fila en cero si no existe.
func (r *WarehouseStockRepo) SetMinStock(ctx context.Context, warehouseID, productID string, minStock int) error {
	query := `
		INSERT INTO warehouse_stock (warehouse_id, product_id, quantity, min_stock, updated_at)
		VALUES ($1, $2, 0, $3, now())
		ON CONFLICT (warehouse_id, product_id)
		DO UPDATE SET min_stock = EXCLUDED.min_stock, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, warehouseID, productID, minStock); err != nil {
		return fmt.Errorf("set min stock: %w", err)
	}
	return nil
}

// ListByWarehouse devuelve las filas de la bodega ordenadas por producto.
func (r *WarehouseStockRepo) ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.WarehouseStock, error) {
	var list []*entity.WarehouseStock
	err := pgxscan.Select(ctx, r.q, &list, `
		SELECT warehouse_id::text AS warehouse_id, product_id::text AS product_id, quantity, min_stock, updated_at
		FROM warehouse_stock WHERE warehouse_id = $1 ORDER BY product_id`, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	return list, nil
}

// ResetWarehouse deja en cero las cantidades de la bodega (conserva los umbrales).
func (r *WarehouseStockRepo) ResetWarehouse(ctx context.Context, warehouseID string) error {
	if _, err := r.q.Exec(ctx,
		`UPDATE warehouse_stock SET quantity = 0, updated_at = now() WHERE warehouse_id = $1`, warehouseID,
	); err != nil {
		return fmt.Errorf("reset stock: %w", err)
	}
	return nil
}
