package postgres

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Alojamientos-api/internal/domain/entity"
	"github.com/jhoicas/Alojamientos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, code, name, unit_measure, quantity, unit_value, active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row interface{ Scan(...any) error }) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Code, &p.Name, &p.UnitMeasure, &p.Quantity, &p.UnitValue, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto. Código repetido → domain.ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.Code, p.Name, p.UnitMeasure, p.Quantity, p.UnitValue, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	return wrap("insert product", err)
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	return p, wrap("get product", err)
}

// GetByCode obtiene un producto por código.
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE code = $1`, code))
	return p, wrap("get product by code", err)
}

// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) dentro de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id))
	return p, wrap("lock product", err)
}

// GetByCodeForUpdate bloquea la fila del producto identificado por código.
func (r *ProductRepo) GetByCodeForUpdate(ctx context.Context, code string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE code = $1 FOR UPDATE`, code))
	return p, wrap("lock product by code", err)
}

// Update actualiza datos descriptivos; no toca quantity.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE products SET name = $2, unit_measure = $3, unit_value = $4, active = $5, updated_at = $6
		WHERE id = $1`,
		p.ID, p.Name, p.UnitMeasure, p.UnitValue, p.Active, p.UpdatedAt,
	)
	if err != nil {
		return wrap("update product", err)
	}
	return notFoundIfNone(tag.RowsAffected())
}

// UpdateQuantity fija el disponible. El CHECK (quantity >= 0) de la tabla es la última barrera.
func (r *ProductRepo) UpdateQuantity(ctx context.Context, productID string, quantity decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `UPDATE products SET quantity = $2, updated_at = now() WHERE id = $1`, productID, quantity)
	if err != nil {
		return wrap("update product quantity", err)
	}
	return notFoundIfNone(tag.RowsAffected())
}

// List lista productos; search filtra por código o nombre (ILIKE).
func (r *ProductRepo) List(ctx context.Context, search string, limit, offset int) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE $1 = '' OR code ILIKE '%' || $1 || '%' OR name ILIKE '%' || $1 || '%'
		ORDER BY name LIMIT $2 OFFSET $3`, search, limit, offset)
	if err != nil {
		return nil, wrap("list products", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, wrap("scan product", err)
		}
		list = append(list, p)
	}
	return list, wrap("list products", rows.Err())
}
