package postgres

import (
	"context"

	"github.com/jhoicas/Alojamientos-api/internal/domain/entity"
	"github.com/jhoicas/Alojamientos-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo historial de transferencias (solo inserción).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

// Create inserta un registro de transferencia.
func (r *TransferRepo) Create(ctx context.Context, t *entity.TransferRecord) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO employee_transfers (id, employee_id, from_unit_id, to_unit_id, departure_at, arrival_at, observation, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.EmployeeID, t.FromUnitID, t.ToUnitID, t.DepartureAt, t.ArrivalAt, t.Observation, t.CreatedBy, t.CreatedAt,
	)
	return wrap("insert transfer", err)
}

// ListByEmployee devuelve el historial del empleado, más reciente primero.
func (r *TransferRepo) ListByEmployee(ctx context.Context, employeeID string) ([]*entity.TransferRecord, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, employee_id, from_unit_id, to_unit_id, departure_at, arrival_at, observation, created_by, created_at
		FROM employee_transfers WHERE employee_id = $1 ORDER BY departure_at DESC`, employeeID)
	if err != nil {
		return nil, wrap("list transfers", err)
	}
	defer rows.Close()
	var list []*entity.TransferRecord
	for rows.Next() {
		var t entity.TransferRecord
		if err := rows.Scan(&t.ID, &t.EmployeeID, &t.FromUnitID, &t.ToUnitID, &t.DepartureAt, &t.ArrivalAt,
			&t.Observation, &t.CreatedBy, &t.CreatedAt); err != nil {
			return nil, wrap("scan transfer", err)
		}
		list = append(list, &t)
	}
	return list, wrap("list transfers", rows.Err())
}
