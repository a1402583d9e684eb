package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Alojamientos-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	// GetForUpdate / GetByCodeForUpdate bloquean la fila del producto hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetByCodeForUpdate(ctx context.Context, code string) (*entity.Product, error)
	// Update no modifica Quantity (se maneja vía UpdateQuantity dentro del libro de stock).
	Update(ctx context.Context, product *entity.Product) error
	UpdateQuantity(ctx context.Context, productID string, quantity decimal.Decimal) error
	List(ctx context.Context, search string, limit, offset int) ([]*entity.Product, error)
}
