package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/adrianbura/copie-stok/internal/application/dto"
	"github.com/adrianbura/copie-stok/internal/domain"
	"github.com/adrianbura/copie-stok/internal/domain/entity"
	"github.com/adrianbura/copie-stok/internal/domain/repository"
)

// AccessUseCase concesiones usuario → bodega. Los administradores acceden a todas.
type AccessUseCase struct {
	grants        repository.UserWarehouseRepository
	userRepo      repository.UserRepository
	warehouseRepo repository.WarehouseRepository
}

// NewAccessUseCase construye el caso de uso.
func NewAccessUseCase(
	grants repository.UserWarehouseRepository,
	userRepo repository.UserRepository,
	warehouseRepo repository.WarehouseRepository,
) *AccessUseCase {
	return &AccessUseCase{grants: grants, userRepo: userRepo, warehouseRepo: warehouseRepo}
}

// Grant concede a userID el acceso a warehouseID.
func (uc *AccessUseCase) Grant(ctx context.Context, userID, warehouseID string) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("usuario %s: %w", userID, domain.ErrNotFound)
	}
	wh, err := uc.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		return err
	}
	if wh == nil {
		return fmt.Errorf("bodega %s: %w", warehouseID, domain.ErrNotFound)
	}
	return uc.grants.Grant(ctx, &entity.UserWarehouse{UserID: userID, WarehouseID: warehouseID, GrantedAt: time.Now()})
}

// Revoke retira el acceso.
func (uc *AccessUseCase) Revoke(ctx context.Context, userID, warehouseID string) error {
	return uc.grants.Revoke(ctx, userID, warehouseID)
}

// CanAccess indica si el usuario puede operar sobre la bodega.
func (uc *AccessUseCase) CanAccess(ctx context.Context, userID, role, warehouseID string) (bool, error) {
	if role == entity.RoleAdmin {
		return true, nil
	}
	return uc.grants.HasAccess(ctx, userID, warehouseID)
}

// ListForUser bodegas visibles para el usuario: todas si es administrador.
func (uc *AccessUseCase) ListForUser(ctx context.Context, userID, role string, limit, offset int) (*dto.WarehouseListResponse, error) {
	if role == entity.RoleAdmin {
		list, err := uc.warehouseRepo.List(ctx, limit, offset)
		if err != nil {
			return nil, err
		}
		return toWarehouseList(list, limit, offset), nil
	}
	ids, err := uc.grants.ListWarehouseIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	list, err := uc.warehouseRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return toWarehouseList(list, 0, 0), nil
}
