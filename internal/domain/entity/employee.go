package entity

import "time"

// Estados del ciclo de vida de un empleado.
const (
	EmployeeStatusPendingIntegration = "PENDIENTE_INTEGRACION" // recién registrado o transferido
	EmployeeStatusIntegrated         = "INTEGRADO"             // integración concluida, puede alojarse
	EmployeeStatusDismissed          = "DESVINCULADO"
)

// Employee representa a un empleado (ocupante). AccommodationID y RoomID son opcionales:
// el estado "sin asignar" es válido.
type Employee struct {
	ID              string
	UnitID          string
	Name            string
	Document        string // documento de identidad
	JobTitle        string
	AccommodationID *string
	RoomID          *string
	Status          string
	Active          bool
	ArrivalDate     *time.Time
	DepartureDate   *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Unassigned indica si el empleado no ocupa ninguna plaza.
func (e *Employee) Unassigned() bool {
	return e.AccommodationID == nil && e.RoomID == nil
}
