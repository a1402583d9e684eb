package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawRequest body para POST /api/movements (retiro de producto por un empleado).
type WithdrawRequest struct {
	EmployeeID   string          `json:"employee_id" validate:"required,uuid"`
	ProductID    string          `json:"product_id" validate:"required,uuid"`
	Quantity     decimal.Decimal `json:"quantity"`
	MovementDate *time.Time      `json:"movement_date"`
	Observation  string          `json:"observation" validate:"max=500"`
}

// UpdateMovementRequest body para PUT /api/movements/:id.
type UpdateMovementRequest struct {
	Quantity     decimal.Decimal `json:"quantity"`
	MovementDate *time.Time      `json:"movement_date"`
	Observation  *string         `json:"observation" validate:"omitempty,max=500"`
}

// ReturnRequest body para POST /api/movements/:id/return.
type ReturnRequest struct {
	ReturnDate *time.Time `json:"return_date"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	ProductID    string          `json:"product_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	MovementDate time.Time       `json:"movement_date"`
	ReturnDate   *time.Time      `json:"return_date"`
	Status       string          `json:"status"`
	Observation  string          `json:"observation"`
	CreatedBy    string          `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
