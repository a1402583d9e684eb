package postgres

import (
	"context"

	"github.com/jhoicas/Alojamientos-api/internal/domain/entity"
	"github.com/jhoicas/Alojamientos-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo persiste la auditoría en audit_logs.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el sink de auditoría sobre PostgreSQL.
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Record inserta un registro. before/after vacíos se guardan como NULL.
func (r *AuditRepo) Record(ctx context.Context, e entity.AuditEntry) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO audit_logs (table_name, record_id, operation, before_data, after_data, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.Table, e.RecordID, e.Operation, jsonOrNil(e.Before), jsonOrNil(e.After), e.ActorID, e.At,
	)
	return wrap("insert audit log", err)
}

func jsonOrNil(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
