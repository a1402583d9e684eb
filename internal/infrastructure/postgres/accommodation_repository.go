package postgres

import (
	"context"

	"github.com/jhoicas/Alojamientos-api/internal/domain/entity"
	"github.com/jhoicas/Alojamientos-api/internal/domain/repository"
)

var (
	_ repository.AccommodationRepository = (*AccommodationRepo)(nil)
	_ repository.RoomRepository          = (*RoomRepo)(nil)
)

const accommodationColumns = `id, unit_id, name, address, capacity, active, created_at, updated_at`

// AccommodationRepo implementación del puerto AccommodationRepository sobre PostgreSQL.
type AccommodationRepo struct {
	q Querier
}

// NewAccommodationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccommodationRepository(q Querier) *AccommodationRepo {
	return &AccommodationRepo{q: q}
}

func scanAccommodation(row interface{ Scan(...any) error }) (*entity.Accommodation, error) {
	var a entity.Accommodation
	err := row.Scan(&a.ID, &a.UnitID, &a.Name, &a.Address, &a.Capacity, &a.Active, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create persiste un alojamiento.
func (r *AccommodationRepo) Create(ctx context.Context, a *entity.Accommodation) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO accommodations (`+accommodationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.UnitID, a.Name, a.Address, a.Capacity, a.Active, a.CreatedAt, a.UpdatedAt,
	)
	return wrap("insert accommodation", err)
}

// GetByID obtiene un alojamiento.
func (r *AccommodationRepo) GetByID(ctx context.Context, id string) (*entity.Accommodation, error) {
	a, err := scanAccommodation(r.q.QueryRow(ctx, `SELECT `+accommodationColumns+` FROM accommodations WHERE id = $1`, id))
	return a, wrap("get accommodation", err)
}

// GetForUpdate obtiene el alojamiento bloqueando su fila hasta el fin de la transacción.
func (r *AccommodationRepo) GetForUpdate(ctx context.Context, id string) (*entity.Accommodation, error) {
	a, err := scanAccommodation(r.q.QueryRow(ctx, `SELECT `+accommodationColumns+` FROM accommodations WHERE id = $1 FOR UPDATE`, id))
	return a, wrap("lock accommodation", err)
}

// Update persiste nombre, dirección, capacidad y estado.
func (r *AccommodationRepo) Update(ctx context.Context, a *entity.Accommodation) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE accommodations SET name = $2, address = $3, capacity = $4, active = $5, updated_at = $6
		WHERE id = $1`,
		a.ID, a.Name, a.Address, a.Capacity, a.Active, a.UpdatedAt,
	)
	if err != nil {
		return wrap("update accommodation", err)
	}
	return notFoundIfNone(tag.RowsAffected())
}

// ListByUnit lista alojamientos de una unidad.
func (r *AccommodationRepo) ListByUnit(ctx context.Context, unitID string, onlyActive bool, limit, offset int) ([]*entity.Accommodation, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+accommodationColumns+` FROM accommodations
		WHERE unit_id = $1 AND (NOT $2 OR active)
		ORDER BY name LIMIT $3 OFFSET $4`, unitID, onlyActive, limit, offset)
	if err != nil {
		return nil, wrap("list accommodations", err)
	}
	defer rows.Close()
	var list []*entity.Accommodation
	for rows.Next() {
		a, err := scanAccommodation(rows)
		if err != nil {
			return nil, wrap("scan accommodation", err)
		}
		list = append(list, a)
	}
	return list, wrap("list accommodations", rows.Err())
}

// CountOccupants cuenta empleados activos del alojamiento, excluyendo uno opcional.
func (r *AccommodationRepo) CountOccupants(ctx context.Context, accommodationID, excludeEmployeeID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM employees
		WHERE accommodation_id = $1 AND active AND ($2::uuid IS NULL OR id <> $2::uuid)`,
		accommodationID, nullable(excludeEmployeeID),
	).Scan(&n)
	return n, wrap("count accommodation occupants", err)
}

const roomColumns = `id, accommodation_id, name, bed_count, active, created_at, updated_at`

// RoomRepo implementación del puerto RoomRepository sobre PostgreSQL.
type RoomRepo struct {
	q Querier
}

// NewRoomRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRoomRepository(q Querier) *RoomRepo {
	return &RoomRepo{q: q}
}

func scanRoom(row interface{ Scan(...any) error }) (*entity.Room, error) {
	var rm entity.Room
	err := row.Scan(&rm.ID, &rm.AccommodationID, &rm.Name, &rm.BedCount, &rm.Active, &rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rm, nil
}

// Create persiste una habitación.
func (r *RoomRepo) Create(ctx context.Context, rm *entity.Room) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO rooms (`+roomColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rm.ID, rm.AccommodationID, rm.Name, rm.BedCount, rm.Active, rm.CreatedAt, rm.UpdatedAt,
	)
	return wrap("insert room", err)
}

// GetByID obtiene una habitación.
func (r *RoomRepo) GetByID(ctx context.Context, id string) (*entity.Room, error) {
	rm, err := scanRoom(r.q.QueryRow(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = $1`, id))
	return rm, wrap("get room", err)
}

// GetForUpdate obtiene la habitación bloqueando su fila.
func (r *RoomRepo) GetForUpdate(ctx context.Context, id string) (*entity.Room, error) {
	rm, err := scanRoom(r.q.QueryRow(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = $1 FOR UPDATE`, id))
	return rm, wrap("lock room", err)
}

// Update persiste nombre, camas y estado.
func (r *RoomRepo) Update(ctx context.Context, rm *entity.Room) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE rooms SET name = $2, bed_count = $3, active = $4, updated_at = $5 WHERE id = $1`,
		rm.ID, rm.Name, rm.BedCount, rm.Active, rm.UpdatedAt,
	)
	if err != nil {
		return wrap("update room", err)
	}
	return notFoundIfNone(tag.RowsAffected())
}

// ListByAccommodation lista las habitaciones de un alojamiento.
func (r *RoomRepo) ListByAccommodation(ctx context.Context, accommodationID string) ([]*entity.Room, error) {
	rows, err := r.q.Query(ctx, `SELECT `+roomColumns+` FROM rooms WHERE accommodation_id = $1 ORDER BY name`, accommodationID)
	if err != nil {
		return nil, wrap("list rooms", err)
	}
	defer rows.Close()
	var list []*entity.Room
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, wrap("scan room", err)
		}
		list = append(list, rm)
	}
	return list, wrap("list rooms", rows.Err())
}

// CountOccupants cuenta empleados activos en la habitación, excluyendo uno opcional.
func (r *RoomRepo) CountOccupants(ctx context.Context, roomID, excludeEmployeeID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM employees
		WHERE room_id = $1 AND active AND ($2::uuid IS NULL OR id <> $2::uuid)`,
		roomID, nullable(excludeEmployeeID),
	).Scan(&n)
	return n, wrap("count room occupants", err)
}
