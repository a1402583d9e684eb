package repository

import (
	"context"

	"github.com/jhoicas/Alojamientos-api/internal/domain/entity"
)

// UnitRepository define el puerto de persistencia para Unit (DIP).
type UnitRepository interface {
	Create(ctx context.Context, unit *entity.Unit) error
	GetByID(ctx context.Context, id string) (*entity.Unit, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Unit, error)
}
