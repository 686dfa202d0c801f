package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. La cantidad solo cambia vía movimientos.
type CreateProductRequest struct {
	Code        string          `json:"code" validate:"required,min=1,max=64"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Category    string          `json:"category" validate:"required,max=2"`
	MinStock    int             `json:"min_stock" validate:"min=0"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Supplier    string          `json:"supplier" validate:"max=200"`
	Location    string          `json:"location" validate:"max=100"`
	BatchNumber string          `json:"batch_number" validate:"max=100"`
	ExpiryDate  string          `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateProductRequest entrada para actualizar un producto (sin cantidad).
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category    *string          `json:"category" validate:"omitempty,max=2"`
	MinStock    *int             `json:"min_stock" validate:"omitempty,min=0"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	Supplier    *string          `json:"supplier" validate:"omitempty,max=200"`
	Location    *string          `json:"location" validate:"omitempty,max=100"`
	BatchNumber *string          `json:"batch_number" validate:"omitempty,max=100"`
	ExpiryDate  *string          `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
	MinStock    int             `json:"min_stock"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Supplier    string          `json:"supplier"`
	Location    string          `json:"location"`
	BatchNumber string          `json:"batch_number"`
	ExpiryDate  *time.Time      `json:"expiry_date,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
