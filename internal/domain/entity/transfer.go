package entity

import "time"

// TransferRecord historial inmutable de la transferencia de un empleado entre unidades.
type TransferRecord struct {
	ID          string
	EmployeeID  string
	FromUnitID  string
	ToUnitID    string
	DepartureAt time.Time
	ArrivalAt   time.Time
	Observation string
	CreatedBy   string
	CreatedAt   time.Time
}
