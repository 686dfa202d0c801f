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

var _ repository.InventoryDocumentRepository = (*DocumentRepo)(nil)

var documentColumns = []string{
	"id::text AS id", "number", "type", "warehouse_id::text AS warehouse_id", "date", "items",
	"total_value", "reference", "notes", "operator", "created_at",
}

// DocumentRepo documentos de entrada/salida; las líneas se guardan en JSONB.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

// Create persiste el documento. ErrDuplicate si el número ya existe.
func (r *DocumentRepo) Create(ctx context.Context, d *entity.InventoryDocument) error {
	items := d.Items
	if items == nil {
		items = []entity.DocumentItem{}
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_documents (id, number, type, warehouse_id, date, items, total_value, reference, notes, operator, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		d.ID, d.Number, string(d.Type), d.WarehouseID, d.Date, items, d.TotalValue,
		d.Reference, d.Notes, d.Operator, d.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// GetByID obtiene un documento; (nil, nil) si no existe.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.InventoryDocument, error) {
	if !validID(id) {
		return nil, nil
	}
	sql, args, err := psql.Select(documentColumns...).From("inventory_documents").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var d entity.InventoryDocument
	if err := pgxscan.Get(ctx, r.q, &d, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return &d, nil
}

// List más recientes primero.
func (r *DocumentRepo) List(ctx context.Context, f repository.DocumentFilter) ([]*entity.InventoryDocument, error) {
	q := psql.Select(documentColumns...).From("inventory_documents").OrderBy("date DESC", "created_at DESC")
	if f.WarehouseID != "" {
		q = q.Where(squirrel.Eq{"warehouse_id": f.WarehouseID})
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
	var list []*entity.InventoryDocument
	if err := pgxscan.Select(ctx, r.q, &list, sql, args...); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return list, nil
}

// DeleteByWarehouse borra los documentos de la bodega (después de sus movimientos).
func (r *DocumentRepo) DeleteByWarehouse(ctx context.Context, warehouseID string) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM inventory_documents WHERE warehouse_id = $1`, warehouseID)
	if err != nil {
		return 0, fmt.Errorf("delete documents: %w", err)
	}
	return cmd.RowsAffected(), nil
}
