package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkHourEntry registro de horas trabajadas por un empleado en un día.
type WorkHourEntry struct {
	ID          string
	EmployeeID  string
	WorkDate    time.Time
	Hours       decimal.Decimal // 0 < Hours <= 24
	Description string
	CreatedBy   string
	CreatedAt   time.Time
}
