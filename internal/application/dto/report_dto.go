package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntryDTO movimiento con saldo corriente.
type LedgerEntryDTO struct {
	MovementID  string    `json:"movement_id"`
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"`
	StockBefore int       `json:"stock_before"`
	StockAfter  int       `json:"stock_after"`
	Reference   string    `json:"reference"`
	Notes       string    `json:"notes"`
	Operator    string    `json:"operator"`
}

// ProductLedgerDTO libro de un producto.
type ProductLedgerDTO struct {
	ProductID      string           `json:"product_id"`
	ProductCode    string           `json:"product_code"`
	ProductName    string           `json:"product_name"`
	OpeningBalance int              `json:"opening_balance"`
	Entries        []LedgerEntryDTO `json:"entries"`
	TotalEntries   int              `json:"total_entries"`
	TotalExits     int              `json:"total_exits"`
	FinalStock     int              `json:"final_stock"`
}

// LedgerReport ficha de movimientos de una bodega (uno o todos los productos).
type LedgerReport struct {
	WarehouseID   string             `json:"warehouse_id"`
	WarehouseName string             `json:"warehouse_name"`
	From          *time.Time         `json:"from,omitempty"`
	To            *time.Time         `json:"to,omitempty"`
	Products      []ProductLedgerDTO `json:"products"`
	Ignored       int                `json:"ignored_movements"`
	GeneratedAt   time.Time          `json:"generated_at"`
}

// SnapshotRowDTO stock histórico de un producto.
type SnapshotRowDTO struct {
	ProductID string          `json:"product_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Value     decimal.Decimal `json:"value"`
}

// SnapshotReport stock reconstruido a una fecha.
type SnapshotReport struct {
	WarehouseID   string           `json:"warehouse_id,omitempty"`
	WarehouseName string           `json:"warehouse_name,omitempty"`
	Date          time.Time        `json:"date"`
	Rows          []SnapshotRowDTO `json:"rows"`
	TotalProducts int              `json:"total_products"`
	TotalUnits    int              `json:"total_units"`
	TotalValue    decimal.Decimal  `json:"total_value"`
	GeneratedAt   time.Time        `json:"generated_at"`
}

// StockRowDTO stock actual de un producto en una bodega.
type StockRowDTO struct {
	ProductID string          `json:"product_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Quantity  int             `json:"quantity"`
	MinStock  int             `json:"min_stock"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Value     decimal.Decimal `json:"value"`
	LowStock  bool            `json:"low_stock"`
	Location  string          `json:"location"`
}

// StockReport stock actual de una bodega.
type StockReport struct {
	WarehouseID   string          `json:"warehouse_id"`
	WarehouseName string          `json:"warehouse_name"`
	Rows          []StockRowDTO   `json:"rows"`
	TotalUnits    int             `json:"total_units"`
	TotalValue    decimal.Decimal `json:"total_value"`
	LowStockCount int             `json:"low_stock_count"`
	GeneratedAt   time.Time       `json:"generated_at"`
}

// DriftDTO diferencia entre stock materializado y libro.
type DriftDTO struct {
	ProductID   string `json:"product_id"`
	ProductCode string `json:"product_code"`
	Stored      int    `json:"stored"`
	FromLedger  int    `json:"from_ledger"`
	Difference  int    `json:"difference"`
}

// ConsistencyReport resultado de la conciliación stock vs libro.
type ConsistencyReport struct {
	WarehouseID string     `json:"warehouse_id"`
	Consistent  bool       `json:"consistent"`
	Drift       []DriftDTO `json:"drift"`
	CheckedAt   time.Time  `json:"checked_at"`
}
