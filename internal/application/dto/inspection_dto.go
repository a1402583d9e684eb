package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PhotoRequest foto de inspección (la imagen ya está en el almacenamiento externo).
type PhotoRequest struct {
	URL     string `json:"url" validate:"required,url"`
	Caption string `json:"caption" validate:"max=200"`
}

// CreateInspectionRequest entrada para registrar una inspección.
type CreateInspectionRequest struct {
	AccommodationID string         `json:"accommodation_id" validate:"required,uuid"`
	InspectedAt     *time.Time     `json:"inspected_at"`
	Result          string         `json:"result" validate:"required,oneof=APROBADA OBSERVADA REPROBADA"`
	Notes           string         `json:"notes" validate:"max=2000"`
	Photos          []PhotoRequest `json:"photos" validate:"dive"`
}

// PhotoResponse salida de una foto.
type PhotoResponse struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"created_at"`
}

// InspectionResponse salida de una inspección.
type InspectionResponse struct {
	ID              string          `json:"id"`
	AccommodationID string          `json:"accommodation_id"`
	InspectorID     string          `json:"inspector_id"`
	InspectedAt     time.Time       `json:"inspected_at"`
	Result          string          `json:"result"`
	Notes           string          `json:"notes"`
	Photos          []PhotoResponse `json:"photos"`
	CreatedAt       time.Time       `json:"created_at"`
}

// LogWorkHoursRequest body para POST /api/employees/:id/work-hours.
type LogWorkHoursRequest struct {
	WorkDate    time.Time       `json:"work_date" validate:"required"`
	Hours       decimal.Decimal `json:"hours"`
	Description string          `json:"description" validate:"max=500"`
}

// WorkHourResponse salida de un registro de horas.
type WorkHourResponse struct {
	ID          string          `json:"id"`
	EmployeeID  string          `json:"employee_id"`
	WorkDate    time.Time       `json:"work_date"`
	Hours       decimal.Decimal `json:"hours"`
	Description string          `json:"description"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

// WorkHourSummaryResponse registros de un período con el total de horas.
type WorkHourSummaryResponse struct {
	EmployeeID string             `json:"employee_id"`
	Total      decimal.Decimal    `json:"total"`
	Items      []WorkHourResponse `json:"items"`
}
