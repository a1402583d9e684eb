package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Alojamientos-api/internal/domain/entity"
	"github.com/jhoicas/Alojamientos-api/internal/domain/repository"
)

var (
	_ repository.ProductMovementRepository = (*MovementRepo)(nil)
	_ repository.ProductEntryRepository    = (*EntryRepo)(nil)
)

const movementColumns = `id, employee_id, product_id, quantity, movement_date, return_date, observation,
	active, created_by, created_at, updated_at`

// MovementRepo implementación del puerto ProductMovementRepository sobre PostgreSQL.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

func scanMovement(row interface{ Scan(...any) error }) (*entity.ProductMovement, error) {
	var m entity.ProductMovement
	err := row.Scan(&m.ID, &m.EmployeeID, &m.ProductID, &m.Quantity, &m.MovementDate, &m.ReturnDate,
		&m.Observation, &m.Active, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create persiste un movimiento.
func (r *MovementRepo) Create(ctx context.Context, m *entity.ProductMovement) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO product_movements (`+movementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		m.ID, m.EmployeeID, m.ProductID, m.Quantity, m.MovementDate, m.ReturnDate,
		m.Observation, m.Active, m.CreatedBy, m.CreatedAt, m.UpdatedAt,
	)
	return wrap("insert movement", err)
}

// GetByID obtiene un movimiento.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.ProductMovement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM product_movements WHERE id = $1`, id))
	return m, wrap("get movement", err)
}

// GetForUpdate obtiene el movimiento bloqueando su fila.
func (r *MovementRepo) GetForUpdate(ctx context.Context, id string) (*entity.ProductMovement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM product_movements WHERE id = $1 FOR UPDATE`, id))
	return m, wrap("lock movement", err)
}

// Update persiste cantidad, fechas, observación y estado.
func (r *MovementRepo) Update(ctx context.Context, m *entity.ProductMovement) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE product_movements SET quantity = $2, movement_date = $3, return_date = $4,
			observation = $5, active = $6, updated_at = $7
		WHERE id = $1`,
		m.ID, m.Quantity, m.MovementDate, m.ReturnDate, m.Observation, m.Active, m.UpdatedAt,
	)
	if err != nil {
		return wrap("update movement", err)
	}
	return notFoundIfNone(tag.RowsAffected())
}

// List lista movimientos activos según el filtro, más recientes primero.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.ProductMovement, error) {
	where := []string{"active"}
	var args []any
	if f.EmployeeID != "" {
		args = append(args, f.EmployeeID)
		where = append(where, fmt.Sprintf("employee_id = $%d", len(args)))
	}
	if f.ProductID != "" {
		args = append(args, f.ProductID)
		where = append(where, fmt.Sprintf("product_id = $%d", len(args)))
	}
	if f.OnlyOutstanding {
		where = append(where, "return_date IS NULL")
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit, f.Offset)
	query := `SELECT ` + movementColumns + ` FROM product_movements WHERE ` + strings.Join(where, " AND ") +
		fmt.Sprintf(` ORDER BY movement_date DESC, created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("list movements", err)
	}
	defer rows.Close()
	var list []*entity.ProductMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, wrap("scan movement", err)
		}
		list = append(list, m)
	}
	return list, wrap("list movements", rows.Err())
}

// SumOutstanding suma las cantidades pendientes de devolución del producto.
func (r *MovementRepo) SumOutstanding(ctx context.Context, productID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(quantity), 0) FROM product_movements
		WHERE product_id = $1 AND active AND return_date IS NULL`, productID,
	).Scan(&sum)
	return sum, wrap("sum outstanding", err)
}

// EntryRepo implementación del puerto ProductEntryRepository sobre PostgreSQL.
type EntryRepo struct {
	q Querier
}

// NewEntryRepository construye el adaptador. Debe usarse con tx: inserta cabecera y líneas.
func NewEntryRepository(q Querier) *EntryRepo {
	return &EntryRepo{q: q}
}

// Create persiste la entrada y sus líneas. Digest repetido → domain.ErrDuplicate.
func (r *EntryRepo) Create(ctx context.Context, e *entity.ProductEntry) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO product_entries (id, invoice_number, supplier, issued_at, digest, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.InvoiceNumber, e.Supplier, e.IssuedAt, e.Digest, e.CreatedBy, e.CreatedAt,
	)
	if err != nil {
		return wrap("insert product entry", err)
	}
	for i, l := range e.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO product_entry_lines (entry_id, line_no, product_id, product_code, quantity, unit_value)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			e.ID, i+1, l.ProductID, l.ProductCode, l.Quantity, l.UnitValue,
		)
		if err != nil {
			return wrap("insert product entry line", err)
		}
	}
	return nil
}

// GetByDigest obtiene la cabecera de una entrada por digest (sin líneas).
func (r *EntryRepo) GetByDigest(ctx context.Context, digest string) (*entity.ProductEntry, error) {
	var e entity.ProductEntry
	err := r.q.QueryRow(ctx, `
		SELECT id, invoice_number, supplier, issued_at, digest, created_by, created_at
		FROM product_entries WHERE digest = $1`, digest,
	).Scan(&e.ID, &e.InvoiceNumber, &e.Supplier, &e.IssuedAt, &e.Digest, &e.CreatedBy, &e.CreatedAt)
	if err != nil {
		return nil, wrap("get product entry", err)
	}
	return &e, nil
}
