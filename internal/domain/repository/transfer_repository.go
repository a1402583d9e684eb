package repository

import (
	"context"

	"github.com/jhoicas/Alojamientos-api/internal/domain/entity"
)

// TransferRepository define el puerto para el historial de transferencias (solo inserción).
type TransferRepository interface {
	Create(ctx context.Context, rec *entity.TransferRecord) error
	ListByEmployee(ctx context.Context, employeeID string) ([]*entity.TransferRecord, error)
}
