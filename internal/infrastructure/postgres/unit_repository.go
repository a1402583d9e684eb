package postgres

import (
	"context"

	"github.com/jhoicas/Alojamientos-api/internal/domain/entity"
	"github.com/jhoicas/Alojamientos-api/internal/domain/repository"
)

var _ repository.UnitRepository = (*UnitRepo)(nil)

// UnitRepo implementación del puerto UnitRepository sobre PostgreSQL.
type UnitRepo struct {
	q Querier
}

// NewUnitRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUnitRepository(q Querier) *UnitRepo {
	return &UnitRepo{q: q}
}

// Create persiste una unidad.
func (r *UnitRepo) Create(ctx context.Context, u *entity.Unit) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO units (id, code, name, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Code, u.Name, u.Active, u.CreatedAt, u.UpdatedAt,
	)
	return wrap("insert unit", err)
}

// GetByID obtiene una unidad.
func (r *UnitRepo) GetByID(ctx context.Context, id string) (*entity.Unit, error) {
	var u entity.Unit
	err := r.q.QueryRow(ctx, `
		SELECT id, code, name, active, created_at, updated_at
		FROM units WHERE id = $1`, id,
	).Scan(&u.ID, &u.Code, &u.Name, &u.Active, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, wrap("get unit", err)
	}
	return &u, nil
}

// List lista unidades por código.
func (r *UnitRepo) List(ctx context.Context, limit, offset int) ([]*entity.Unit, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, code, name, active, created_at, updated_at
		FROM units ORDER BY code LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, wrap("list units", err)
	}
	defer rows.Close()
	var list []*entity.Unit
	for rows.Next() {
		var u entity.Unit
		if err := rows.Scan(&u.ID, &u.Code, &u.Name, &u.Active, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, wrap("scan unit", err)
		}
		list = append(list, &u)
	}
	return list, wrap("list units", rows.Err())
}
