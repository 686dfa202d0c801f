package entity

import "time"

// Warehouse representa un depósito de pirotecnia.
type Warehouse struct {
	ID        string
	Code      string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserWarehouse concede a un usuario acceso a una bodega.
type UserWarehouse struct {
	UserID      string
	WarehouseID string
	GrantedAt   time.Time
}
