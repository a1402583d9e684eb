package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Alojamientos-api/internal/domain/entity"
)

// MovementFilter filtros de listado de movimientos.
type MovementFilter struct {
	EmployeeID      string
	ProductID       string
	OnlyOutstanding bool
	Limit           int
	Offset          int
}

// ProductMovementRepository define el puerto de persistencia para retiros de producto.
type ProductMovementRepository interface {
	Create(ctx context.Context, mov *entity.ProductMovement) error
	GetByID(ctx context.Context, id string) (*entity.ProductMovement, error)
	GetForUpdate(ctx context.Context, id string) (*entity.ProductMovement, error)
	Update(ctx context.Context, mov *entity.ProductMovement) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.ProductMovement, error)
	// SumOutstanding suma las cantidades pendientes de devolución de un producto.
	SumOutstanding(ctx context.Context, productID string) (decimal.Decimal, error)
}

// ProductEntryRepository define el puerto para entradas de stock por factura.
type ProductEntryRepository interface {
	// Create devuelve domain.ErrDuplicate si ya existe una entrada con el mismo Digest.
	Create(ctx context.Context, entry *entity.ProductEntry) error
	GetByDigest(ctx context.Context, digest string) (*entity.ProductEntry, error)
}
