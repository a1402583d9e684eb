package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Alojamientos-api/internal/domain/entity"
	"github.com/jhoicas/Alojamientos-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

const employeeColumns = `id, unit_id, name, document, job_title, accommodation_id, room_id, status, active,
	arrival_date, departure_date, created_at, updated_at`

// EmployeeRepo implementación del puerto EmployeeRepository sobre PostgreSQL.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

func scanEmployee(row interface{ Scan(...any) error }) (*entity.Employee, error) {
	var e entity.Employee
	err := row.Scan(&e.ID, &e.UnitID, &e.Name, &e.Document, &e.JobTitle, &e.AccommodationID, &e.RoomID,
		&e.Status, &e.Active, &e.ArrivalDate, &e.DepartureDate, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create persiste un empleado.
func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO employees (`+employeeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		e.ID, e.UnitID, e.Name, e.Document, e.JobTitle, e.AccommodationID, e.RoomID,
		e.Status, e.Active, e.ArrivalDate, e.DepartureDate, e.CreatedAt, e.UpdatedAt,
	)
	return wrap("insert employee", err)
}

// GetByID obtiene un empleado.
func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	e, err := scanEmployee(r.q.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id))
	return e, wrap("get employee", err)
}

// GetForUpdate obtiene el empleado bloqueando su fila.
func (r *EmployeeRepo) GetForUpdate(ctx context.Context, id string) (*entity.Employee, error) {
	e, err := scanEmployee(r.q.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1 FOR UPDATE`, id))
	return e, wrap("lock employee", err)
}

// Update persiste todos los campos mutables.
func (r *EmployeeRepo) Update(ctx context.Context, e *entity.Employee) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE employees SET unit_id = $2, name = $3, document = $4, job_title = $5,
			accommodation_id = $6, room_id = $7, status = $8, active = $9,
			arrival_date = $10, departure_date = $11, updated_at = $12
		WHERE id = $1`,
		e.ID, e.UnitID, e.Name, e.Document, e.JobTitle, e.AccommodationID, e.RoomID,
		e.Status, e.Active, e.ArrivalDate, e.DepartureDate, e.UpdatedAt,
	)
	if err != nil {
		return wrap("update employee", err)
	}
	return notFoundIfNone(tag.RowsAffected())
}

// List lista empleados según el filtro.
func (r *EmployeeRepo) List(ctx context.Context, f repository.EmployeeFilter) ([]*entity.Employee, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.UnitID != "" {
		add("unit_id = $%d", f.UnitID)
	}
	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.AccommodationID != "" {
		add("accommodation_id = $%d", f.AccommodationID)
	}
	if f.OnlyActive {
		where = append(where, "active")
	}
	query := `SELECT ` + employeeColumns + ` FROM employees`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit, f.Offset)
	query += fmt.Sprintf(` ORDER BY name LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("list employees", err)
	}
	defer rows.Close()
	var list []*entity.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, wrap("scan employee", err)
		}
		list = append(list, e)
	}
	return list, wrap("list employees", rows.Err())
}
