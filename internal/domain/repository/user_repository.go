package repository

import (
	"context"

	"github.com/adrianbura/copie-stok/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
}

// UserWarehouseRepository guarda las concesiones usuario → bodega.
type UserWarehouseRepository interface {
	Grant(ctx context.Context, grant *entity.UserWarehouse) error
	Revoke(ctx context.Context, userID, warehouseID string) error
	ListWarehouseIDs(ctx context.Context, userID string) ([]string, error)
	HasAccess(ctx context.Context, userID, warehouseID string) (bool, error)
}
