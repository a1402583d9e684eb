package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Alojamientos-api/internal/domain/entity"
	"github.com/jhoicas/Alojamientos-api/internal/domain/repository"
)

var (
	_ repository.InspectionRepository = (*InspectionRepo)(nil)
	_ repository.WorkHourRepository   = (*WorkHourRepo)(nil)
)

// InspectionRepo inspecciones y su galería de fotos.
type InspectionRepo struct {
	q Querier
}

// NewInspectionRepository construye el adaptador.
func NewInspectionRepository(q Querier) *InspectionRepo {
	return &InspectionRepo{q: q}
}

// Create inserta la inspección y sus fotos iniciales en una misma transacción.
func (r *InspectionRepo) Create(ctx context.Context, i *entity.Inspection) error {
	return pgx.BeginFunc(ctx, r.q, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO inspections (id, accommodation_id, inspector_id, inspected_at, result, notes, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			i.ID, i.AccommodationID, i.InspectorID, i.InspectedAt, i.Result, i.Notes, i.CreatedAt,
		)
		if err != nil {
			return wrap("insert inspection", err)
		}
		photos := NewInspectionRepository(tx)
		for idx := range i.Photos {
			if err := photos.AddPhoto(ctx, &i.Photos[idx]); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID obtiene la inspección con sus fotos.
func (r *InspectionRepo) GetByID(ctx context.Context, id string) (*entity.Inspection, error) {
	var i entity.Inspection
	err := r.q.QueryRow(ctx, `
		SELECT id, accommodation_id, inspector_id, inspected_at, result, notes, created_at
		FROM inspections WHERE id = $1`, id,
	).Scan(&i.ID, &i.AccommodationID, &i.InspectorID, &i.InspectedAt, &i.Result, &i.Notes, &i.CreatedAt)
	if err != nil {
		return nil, wrap("get inspection", err)
	}
	photos, err := r.photos(ctx, i.ID)
	if err != nil {
		return nil, err
	}
	i.Photos = photos
	return &i, nil
}

// ListByAccommodation lista inspecciones (sin fotos) más recientes primero.
func (r *InspectionRepo) ListByAccommodation(ctx context.Context, accommodationID string, limit, offset int) ([]*entity.Inspection, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, accommodation_id, inspector_id, inspected_at, result, notes, created_at
		FROM inspections WHERE accommodation_id = $1
		ORDER BY inspected_at DESC LIMIT $2 OFFSET $3`, accommodationID, limit, offset)
	if err != nil {
		return nil, wrap("list inspections", err)
	}
	defer rows.Close()
	var list []*entity.Inspection
	for rows.Next() {
		var i entity.Inspection
		if err := rows.Scan(&i.ID, &i.AccommodationID, &i.InspectorID, &i.InspectedAt, &i.Result, &i.Notes, &i.CreatedAt); err != nil {
			return nil, wrap("scan inspection", err)
		}
		list = append(list, &i)
	}
	return list, wrap("list inspections", rows.Err())
}

// AddPhoto inserta una foto.
func (r *InspectionRepo) AddPhoto(ctx context.Context, p *entity.InspectionPhoto) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inspection_photos (id, inspection_id, url, caption, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.InspectionID, p.URL, p.Caption, p.CreatedAt,
	)
	return wrap("insert inspection photo", err)
}

func (r *InspectionRepo) photos(ctx context.Context, inspectionID string) ([]entity.InspectionPhoto, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, inspection_id, url, caption, created_at
		FROM inspection_photos WHERE inspection_id = $1 ORDER BY created_at`, inspectionID)
	if err != nil {
		return nil, wrap("list inspection photos", err)
	}
	defer rows.Close()
	var out []entity.InspectionPhoto
	for rows.Next() {
		var p entity.InspectionPhoto
		if err := rows.Scan(&p.ID, &p.InspectionID, &p.URL, &p.Caption, &p.CreatedAt); err != nil {
			return nil, wrap("scan inspection photo", err)
		}
		out = append(out, p)
	}
	return out, wrap("list inspection photos", rows.Err())
}

// WorkHourRepo registros de horas trabajadas.
type WorkHourRepo struct {
	q Querier
}

// NewWorkHourRepository construye el adaptador.
func NewWorkHourRepository(q Querier) *WorkHourRepo {
	return &WorkHourRepo{q: q}
}

// Create inserta un registro de horas.
func (r *WorkHourRepo) Create(ctx context.Context, e *entity.WorkHourEntry) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO work_hours (id, employee_id, work_date, hours, description, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.EmployeeID, e.WorkDate, e.Hours, e.Description, e.CreatedBy, e.CreatedAt,
	)
	return wrap("insert work hours", err)
}

// ListByEmployee lista registros del empleado en [from, to]; nil = sin límite.
func (r *WorkHourRepo) ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]*entity.WorkHourEntry, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, employee_id, work_date, hours, description, created_by, created_at
		FROM work_hours
		WHERE employee_id = $1
		  AND ($2::date IS NULL OR work_date >= $2::date)
		  AND ($3::date IS NULL OR work_date <= $3::date)
		ORDER BY work_date`, employeeID, from, to)
	if err != nil {
		return nil, wrap("list work hours", err)
	}
	defer rows.Close()
	var list []*entity.WorkHourEntry
	for rows.Next() {
		var e entity.WorkHourEntry
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.WorkDate, &e.Hours, &e.Description, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, wrap("scan work hours", err)
		}
		list = append(list, &e)
	}
	return list, wrap("list work hours", rows.Err())
}
