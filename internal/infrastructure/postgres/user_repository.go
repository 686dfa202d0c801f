package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/adrianbura/copie-stok/internal/domain"
	"github.com/adrianbura/copie-stok/internal/domain/entity"
	"github.com/adrianbura/copie-stok/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)
var _ repository.UserWarehouseRepository = (*UserWarehouseRepo)(nil)

var userColumns = []string{
	"id::text AS id", "email", "password_hash", "name", "role", "status", "created_at", "updated_at",
}

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		user.ID, strings.ToLower(user.Email), user.PasswordHash, user.Name, user.Role, user.Status,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, squirrel.Eq{"email": strings.ToLower(email)})
}

func (r *UserRepo) getOne(ctx context.Context, where squirrel.Sqlizer) (*entity.User, error) {
	sql, args, err := psql.Select(userColumns...).From("users").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var u entity.User
	if err := pgxscan.Get(ctx, r.q, &u, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// List lista usuarios ordenados por email.
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	sql, args, err := paginate(psql.Select(userColumns...).From("users").OrderBy("email"), limit, offset).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var list []*entity.User
	if err := pgxscan.Select(ctx, r.q, &list, sql, args...); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return list, nil
}

// UserWarehouseRepo concesiones usuario → bodega.
type UserWarehouseRepo struct {
	q Querier
}

// NewUserWarehouseRepository construye el adaptador.
func NewUserWarehouseRepository(q Querier) *UserWarehouseRepo {
	return &UserWarehouseRepo{q: q}
}

// Grant es idempotente.
func (r *UserWarehouseRepo) Grant(ctx context.Context, g *entity.UserWarehouse) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO user_warehouses (user_id, warehouse_id, granted_at)
		VALUES ($1, $2, COALESCE($3, now()))
		ON CONFLICT (user_id, warehouse_id) DO NOTHING`,
		g.UserID, g.WarehouseID, nullTime(g),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("grant warehouse: %w", err)
	}
	return nil
}

func (r *UserWarehouseRepo) Revoke(ctx context.Context, userID, warehouseID string) error {
	if _, err := r.q.Exec(ctx,
		`DELETE FROM user_warehouses WHERE user_id = $1 AND warehouse_id = $2`, userID, warehouseID,
	); err != nil {
		return fmt.Errorf("revoke warehouse: %w", err)
	}
	return nil
}

func (r *UserWarehouseRepo) ListWarehouseIDs(ctx context.Context, userID string) ([]string, error) {
	if !validID(userID) {
		return nil, nil
	}
	var ids []string
	if err := pgxscan.Select(ctx, r.q, &ids,
		`SELECT warehouse_id::text FROM user_warehouses WHERE user_id = $1 ORDER BY warehouse_id`, userID,
	); err != nil {
		return nil, fmt.Errorf("list granted warehouses: %w", err)
	}
	return ids, nil
}

func (r *UserWarehouseRepo) HasAccess(ctx context.Context, userID, warehouseID string) (bool, error) {
	if !validID(userID) || !validID(warehouseID) {
		return false, nil
	}
	var ok bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM user_warehouses WHERE user_id = $1 AND warehouse_id = $2)`,
		userID, warehouseID,
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check warehouse access: %w", err)
	}
	return ok, nil
}

func nullTime(g *entity.UserWarehouse) any {
	if g.GrantedAt.IsZero() {
		return nil
	}
	return g.GrantedAt
}
