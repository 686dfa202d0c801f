package entity

import "time"

// WarehouseStock stock materializado de un producto en una bodega.
// Se actualiza en la misma transacción que el movimiento, pero no se recalcula desde el libro.
type WarehouseStock struct {
	WarehouseID string
	ProductID   string
	Quantity    int
	MinStock    int
	UpdatedAt   time.Time
}
