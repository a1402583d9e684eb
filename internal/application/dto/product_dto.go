package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto manualmente (stock inicial opcional).
type CreateProductRequest struct {
	Code        string          `json:"code" validate:"required,min=1,max=60"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	UnitMeasure string          `json:"unit_measure" validate:"required,max=10"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitValue   decimal.Decimal `json:"unit_value"`
}

// UpdateProductRequest entrada para actualizar un producto (sin Quantity: se maneja vía movimientos).
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	UnitMeasure *string          `json:"unit_measure" validate:"omitempty,max=10"`
	UnitValue   *decimal.Decimal `json:"unit_value"`
	Active      *bool            `json:"active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	UnitMeasure string          `json:"unit_measure"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitValue   decimal.Decimal `json:"unit_value"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ProductEntryResponse resultado de importar una factura de compra.
type ProductEntryResponse struct {
	ID              string    `json:"id"`
	InvoiceNumber   string    `json:"invoice_number"`
	Supplier        string    `json:"supplier"`
	IssuedAt        time.Time `json:"issued_at"`
	Lines           int       `json:"lines"`
	CreatedProducts int       `json:"created_products"`
	Digest          string    `json:"digest"`
}
