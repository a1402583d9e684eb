package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Alojamientos-api/internal/domain/entity"
)

// InspectionRepository define el puerto de persistencia para inspecciones y su galería.
type InspectionRepository interface {
	Create(ctx context.Context, insp *entity.Inspection) error
	GetByID(ctx context.Context, id string) (*entity.Inspection, error)
	ListByAccommodation(ctx context.Context, accommodationID string, limit, offset int) ([]*entity.Inspection, error)
	AddPhoto(ctx context.Context, photo *entity.InspectionPhoto) error
}

// WorkHourRepository define el puerto de persistencia para registros de horas.
type WorkHourRepository interface {
	Create(ctx context.Context, entry *entity.WorkHourEntry) error
	ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]*entity.WorkHourEntry, error)
}
