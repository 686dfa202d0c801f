package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo pirotécnico del catálogo.
// Quantity es el total de todas las bodegas; el stock por bodega vive en WarehouseStock.
type Product struct {
	ID          string
	Code        string // código único
	Name        string
	Category    Category
	Quantity    int
	MinStock    int
	UnitPrice   decimal.Decimal
	Supplier    string
	Location    string
	BatchNumber string
	ExpiryDate  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Value devuelve cantidad × precio unitario.
func (p *Product) Value() decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
