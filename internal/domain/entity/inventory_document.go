package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentItem línea desnormalizada de un documento de inventario.
type DocumentItem struct {
	ProductID   string          `json:"product_id"`
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// InventoryDocument comprobante de una entrada o salida.
type InventoryDocument struct {
	ID          string
	Number      string
	Type        MovementType
	WarehouseID string
	Date        time.Time
	Items       []DocumentItem
	TotalValue  decimal.Decimal
	Reference   string
	Notes       string
	Operator    string
	CreatedAt   time.Time
}
