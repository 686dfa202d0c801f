package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"github.com/adrianbura/copie-stok/internal/domain"
	"github.com/adrianbura/copie-stok/internal/domain/entity"
	"github.com/adrianbura/copie-stok/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

var productColumns = []string{
	"id::text AS id", "code", "name", "category", "quantity", "min_stock", "unit_price",
	"supplier", "location", "batch_number", "expiry_date", "created_at", "updated_at",
}

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. ErrDuplicate si el código ya existe.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, code, name, category, quantity, min_stock, unit_price, supplier, location, batch_number, expiry_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Code, p.Name, string(p.Category), p.Quantity, p.MinStock, p.UnitPrice,
		p.Supplier, p.Location, p.BatchNumber, p.ExpiryDate, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByCode busca por código sin distinguir mayúsculas.
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	return r.getOne(ctx, squirrel.Expr("lower(code) = lower(?)", code))
}

func (r *ProductRepo) getOne(ctx context.Context, where squirrel.Sqlizer) (*entity.Product, error) {
	sql, args, err := psql.Select(productColumns...).From("products").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var p entity.Product
	if err := pgxscan.Get(ctx, r.q, &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update actualiza los datos maestros. Cantidad global y precio cambian vía movimientos.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET code = $2, name = $3, category = $4, min_stock = $5, unit_price = $6,
			supplier = $7, location = $8, batch_number = $9, expiry_date = $10, updated_at = $11
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Code, p.Name, string(p.Category), p.MinStock, p.UnitPrice,
		p.Supplier, p.Location, p.BatchNumber, p.ExpiryDate, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdatePrice actualiza solo el precio unitario (usado por el motor de inventario).
func (r *ProductRepo) UpdatePrice(ctx context.Context, productID string, price decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET unit_price = $2, updated_at = now() WHERE id = $1`,
		productID, price,
	)
	if err != nil {
		return fmt.Errorf("update product price: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustQuantity suma delta a la cantidad global.
func (r *ProductRepo) AdjustQuantity(ctx context.Context, productID string, delta int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET quantity = quantity + $2, updated_at = now() WHERE id = $1`,
		productID, delta,
	)
	if err != nil {
		return fmt.Errorf("adjust product quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RecalculateQuantities recalcula la cantidad global desde warehouse_stock.
func (r *ProductRepo) RecalculateQuantities(ctx context.Context) error {
	query := `
		UPDATE products p SET quantity = COALESCE(s.total, 0), updated_at = now()
		FROM (
			SELECT pr.id, SUM(ws.quantity) AS total
			FROM products pr LEFT JOIN warehouse_stock ws ON ws.product_id = pr.id
			GROUP BY pr.id
		) s
		WHERE s.id = p.id`
	if _, err := r.q.Exec(ctx, query); err != nil {
		return fmt.Errorf("recalculate quantities: %w", err)
	}
	return nil
}

// List filtra por categoría y búsqueda (código o nombre), ordenado por código.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	q := psql.Select(productColumns...).From("products").OrderBy("code")
	if f.Category != "" {
		q = q.Where(squirrel.Eq{"category": string(f.Category)})
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		pattern := "%" + s + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"code": pattern},
			squirrel.ILike{"name": pattern},
		})
	}
	return r.selectMany(ctx, paginate(q, f.Limit, f.Offset))
}

// ListByIDs devuelve los productos existentes entre ids.
func (r *ProductRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := psql.Select(productColumns...).From("products").Where(squirrel.Eq{"id": ids}).OrderBy("code")
	return r.selectMany(ctx, q)
}

func (r *ProductRepo) selectMany(ctx context.Context, q squirrel.SelectBuilder) ([]*entity.Product, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var list []*entity.Product
	if err := pgxscan.Select(ctx, r.q, &list, sql, args...); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return list, nil
}

// Delete elimina un producto. ErrConflict si tiene movimientos.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
