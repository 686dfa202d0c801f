package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tipo de movimiento de inventario.
type MovementType string

const (
	MovementEntry MovementType = "entry" // entrada
	MovementExit  MovementType = "exit"  // salida
)

// Valid indica si el tipo es entrada o salida.
func (t MovementType) Valid() bool {
	return t == MovementEntry || t == MovementExit
}

// StockMovement es un evento fechado del libro de movimientos (solo inserción).
// Quantity siempre es positiva; el signo lo da Type.
type StockMovement struct {
	ID          string
	ProductID   string
	WarehouseID string
	DocumentID  string
	Type        MovementType
	Quantity    int
	UnitPrice   decimal.Decimal
	Date        time.Time
	Reference   string
	Notes       string
	Operator    string
	CreatedAt   time.Time
}

// Signed devuelve la cantidad con signo: +q para entradas, -q para salidas, 0 si el tipo es desconocido.
func (m StockMovement) Signed() int {
	switch m.Type {
	case MovementEntry:
		return m.Quantity
	case MovementExit:
		return -m.Quantity
	}
	return 0
}
