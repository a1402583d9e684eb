package repository

import (
	"context"

	"github.com/jhoicas/Alojamientos-api/internal/domain/entity"
)

// EmployeeFilter filtros de listado de empleados.
type EmployeeFilter struct {
	UnitID          string
	Status          string
	AccommodationID string
	OnlyActive      bool
	Limit           int
	Offset          int
}

// EmployeeRepository define el puerto de persistencia para Employee (DIP).
type EmployeeRepository interface {
	Create(ctx context.Context, emp *entity.Employee) error
	GetByID(ctx context.Context, id string) (*entity.Employee, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Employee, error)
	// Update persiste todos los campos mutables, incluidas las referencias de alojamiento/habitación.
	Update(ctx context.Context, emp *entity.Employee) error
	List(ctx context.Context, filter EmployeeFilter) ([]*entity.Employee, error)
}
