package dto

import "time"

// CreateEmployeeRequest entrada para registrar un empleado (inicio de la integración).
type CreateEmployeeRequest struct {
	Name        string     `json:"name" validate:"required,min=1,max=200"`
	Document    string     `json:"document" validate:"required,min=3,max=30"`
	JobTitle    string     `json:"job_title" validate:"max=120"`
	ArrivalDate *time.Time `json:"arrival_date"`
}

// UpdateEmployeeRequest entrada para actualizar datos personales (no asignación ni unidad).
type UpdateEmployeeRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Document *string `json:"document" validate:"omitempty,min=3,max=30"`
	JobTitle *string `json:"job_title" validate:"omitempty,max=120"`
}

// IntegrateRequest body para concluir la integración de un empleado.
type IntegrateRequest struct {
	ArrivalDate time.Time `json:"arrival_date" validate:"required"`
}

// DismissRequest body para desvincular a un empleado.
type DismissRequest struct {
	DepartureDate time.Time `json:"departure_date" validate:"required"`
}

// EmployeeResponse salida de un empleado.
type EmployeeResponse struct {
	ID              string     `json:"id"`
	UnitID          string     `json:"unit_id"`
	Name            string     `json:"name"`
	Document        string     `json:"document"`
	JobTitle        string     `json:"job_title"`
	AccommodationID *string    `json:"accommodation_id"`
	RoomID          *string    `json:"room_id"`
	Status          string     `json:"status"`
	Active          bool       `json:"active"`
	ArrivalDate     *time.Time `json:"arrival_date"`
	DepartureDate   *time.Time `json:"departure_date"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// EmployeeListResponse lista paginada de empleados.
type EmployeeListResponse struct {
	Items []EmployeeResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// TransferRequest body para POST /api/employees/:id/transfers.
type TransferRequest struct {
	ToUnitID    string    `json:"to_unit_id" validate:"required,uuid"`
	DepartureAt time.Time `json:"departure_at" validate:"required"`
	ArrivalAt   time.Time `json:"arrival_at" validate:"required"`
	Observation string    `json:"observation" validate:"max=500"`
}

// TransferResponse salida de un registro de transferencia.
type TransferResponse struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employee_id"`
	FromUnitID  string    `json:"from_unit_id"`
	ToUnitID    string    `json:"to_unit_id"`
	DepartureAt time.Time `json:"departure_at"`
	ArrivalAt   time.Time `json:"arrival_at"`
	Observation string    `json:"observation"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}
