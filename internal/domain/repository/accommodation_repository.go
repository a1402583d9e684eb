package repository

import (
	"context"

	"github.com/jhoicas/Alojamientos-api/internal/domain/entity"
)

// AccommodationRepository define el puerto de persistencia para alojamientos.
// GetForUpdate bloquea la fila (SELECT FOR UPDATE): serializa las asignaciones concurrentes
// al mismo alojamiento dentro de una transacción.
type AccommodationRepository interface {
	Create(ctx context.Context, acc *entity.Accommodation) error
	GetByID(ctx context.Context, id string) (*entity.Accommodation, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Accommodation, error)
	Update(ctx context.Context, acc *entity.Accommodation) error
	ListByUnit(ctx context.Context, unitID string, onlyActive bool, limit, offset int) ([]*entity.Accommodation, error)
	// CountOccupants cuenta empleados activos que referencian el alojamiento, excluyendo excludeEmployeeID si no es vacío.
	CountOccupants(ctx context.Context, accommodationID, excludeEmployeeID string) (int, error)
}

// RoomRepository define el puerto de persistencia para habitaciones.
type RoomRepository interface {
	Create(ctx context.Context, room *entity.Room) error
	GetByID(ctx context.Context, id string) (*entity.Room, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Room, error)
	Update(ctx context.Context, room *entity.Room) error
	ListByAccommodation(ctx context.Context, accommodationID string) ([]*entity.Room, error)
	// CountOccupants cuenta empleados activos en la habitación, excluyendo excludeEmployeeID si no es vacío.
	CountOccupants(ctx context.Context, roomID, excludeEmployeeID string) (int, error)
}
