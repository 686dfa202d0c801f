package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/adrianbura/copie-stok/internal/domain"
	"github.com/adrianbura/copie-stok/internal/domain/entity"
	"github.com/adrianbura/copie-stok/internal/domain/repository"
)

// UserRepository implementación en memoria.
type UserRepository struct {
	s *Store
}

// NewUserRepository construye el repositorio.
func NewUserRepository(s *Store) *UserRepository {
	return &UserRepository{s: s}
}

var _ repository.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.data.users {
		if strings.EqualFold(e.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	c := *u
	r.s.data.users[u.ID] = &c
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.data.users[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.data.users {
		if strings.EqualFold(u.Email, email) {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

// List ordenado por email.
func (r *UserRepository) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.User, 0, len(r.s.data.users))
	for _, u := range r.s.data.users {
		c := *u
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	from, to := page(len(out), limit, offset)
	return out[from:to], nil
}

// UserWarehouseRepository implementación en memoria de las concesiones.
type UserWarehouseRepository struct {
	s *Store
}

// NewUserWarehouseRepository construye el repositorio.
func NewUserWarehouseRepository(s *Store) *UserWarehouseRepository {
	return &UserWarehouseRepository{s: s}
}

var _ repository.UserWarehouseRepository = (*UserWarehouseRepository)(nil)

// Grant es idempotente.
func (r *UserWarehouseRepository) Grant(_ context.Context, g *entity.UserWarehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := grantKey{g.UserID, g.WarehouseID}
	if _, ok := r.s.data.grants[k]; ok {
		return nil
	}
	c := *g
	if c.GrantedAt.IsZero() {
		c.GrantedAt = time.Now()
	}
	r.s.data.grants[k] = &c
	return nil
}

func (r *UserWarehouseRepository) Revoke(_ context.Context, userID, warehouseID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.data.grants, grantKey{userID, warehouseID})
	return nil
}

func (r *UserWarehouseRepository) ListWarehouseIDs(_ context.Context, userID string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var ids []string
	for k := range r.s.data.grants {
		if k.userID == userID {
			ids = append(ids, k.warehouseID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *UserWarehouseRepository) HasAccess(_ context.Context, userID, warehouseID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.data.grants[grantKey{userID, warehouseID}]
	return ok, nil
}
