package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionItemRequest línea de una entrada o salida.
type TransactionItemRequest struct {
	ProductID string           `json:"product_id" validate:"required"`
	Quantity  int              `json:"quantity" validate:"gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// RegisterTransactionRequest body para POST /api/warehouses/:warehouseId/entries|exits.
type RegisterTransactionRequest struct {
	Date      string                   `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Reference string                   `json:"reference" validate:"max=100"`
	Notes     string                   `json:"notes" validate:"max=500"`
	Items     []TransactionItemRequest `json:"items" validate:"required,min=1,dive"`
}

// DocumentItemResponse línea de documento.
type DocumentItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// DocumentResponse documento de inventario.
type DocumentResponse struct {
	ID          string                 `json:"id"`
	Number      string                 `json:"number"`
	Type        string                 `json:"type"`
	WarehouseID string                 `json:"warehouse_id"`
	Date        time.Time              `json:"date"`
	Items       []DocumentItemResponse `json:"items"`
	TotalValue  decimal.Decimal        `json:"total_value"`
	Reference   string                 `json:"reference"`
	Notes       string                 `json:"notes"`
	Operator    string                 `json:"operator"`
	CreatedAt   time.Time              `json:"created_at"`
}

// DocumentListResponse lista paginada de documentos.
type DocumentListResponse struct {
	Items []DocumentResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// MovementResponse movimiento del libro.
type MovementResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	DocumentID  string          `json:"document_id,omitempty"`
	Type        string          `json:"type"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Date        time.Time       `json:"date"`
	Reference   string          `json:"reference"`
	Notes       string          `json:"notes"`
	Operator    string          `json:"operator"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ImportSkipDTO fila descartada durante la importación.
type ImportSkipDTO struct {
	Line   int    `json:"line"`
	Raw    string `json:"raw"`
	Reason string `json:"reason"`
}

// ImportResultResponse resultado de POST /api/warehouses/:warehouseId/import.
type ImportResultResponse struct {
	Imported        int               `json:"imported"`
	CreatedProducts []string          `json:"created_products"`
	Skipped         []ImportSkipDTO   `json:"skipped"`
	Document        *DocumentResponse `json:"document,omitempty"`
}

// ResetResultResponse resultado del reinicio de una bodega.
type ResetResultResponse struct {
	WarehouseID      string `json:"warehouse_id"`
	DeletedMovements int64  `json:"deleted_movements"`
	DeletedDocuments int64  `json:"deleted_documents"`
}
