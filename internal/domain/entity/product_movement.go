package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un movimiento de producto.
const (
	MovementStatusOutstanding = "PENDIENTE" // retirado y no devuelto
	MovementStatusReturned    = "DEVUELTO"
)

// MovementState es el estado de un retiro: Outstanding o Returned. La transición es única
// e irreversible (Outstanding → Returned).
type MovementState interface {
	Status() string
	isMovementState()
}

// Outstanding: el stock retirado aún no volvió al almacén.
type Outstanding struct{}

// Returned: el stock fue reintegrado en Date.
type Returned struct {
	Date time.Time
}

func (Outstanding) Status() string { return MovementStatusOutstanding }
func (Returned) Status() string    { return MovementStatusReturned }
func (Outstanding) isMovementState() {}
func (Returned) isMovementState()    {}

// ProductMovement representa un retiro de producto atribuido a un empleado.
type ProductMovement struct {
	ID           string
	EmployeeID   string
	ProductID    string
	Quantity     decimal.Decimal // siempre positivo
	MovementDate time.Time
	ReturnDate   *time.Time
	Observation  string
	Active       bool
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// State deriva el estado a partir de ReturnDate.
func (m *ProductMovement) State() MovementState {
	if m.ReturnDate == nil {
		return Outstanding{}
	}
	return Returned{Date: *m.ReturnDate}
}

// IsOutstanding indica si el movimiento sigue pendiente de devolución.
func (m *ProductMovement) IsOutstanding() bool {
	_, ok := m.State().(Outstanding)
	return ok
}
