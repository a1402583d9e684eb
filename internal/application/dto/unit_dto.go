package dto

import "time"

// CreateUnitRequest entrada para crear una unidad.
type CreateUnitRequest struct {
	Code string `json:"code" validate:"required,min=1,max=30"`
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// UnitResponse salida de una unidad.
type UnitResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// UnitListResponse lista paginada de unidades.
type UnitListResponse struct {
	Items []UnitResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
