package repository

import (
	"context"

	"github.com/jhoicas/Alojamientos-api/internal/domain/entity"
)

// AuditRepository persiste registros de auditoría.
type AuditRepository interface {
	Record(ctx context.Context, entry entity.AuditEntry) error
}
