package stock

import (
	"context"

	"github.com/jhoicas/Alojamientos-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el libro de stock. empRepo permite bloquear al empleado que retira.
type TxRunner interface {
	RunLedger(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.ProductMovementRepository,
		entryRepo repository.ProductEntryRepository,
		empRepo repository.EmployeeRepository,
	) error) error
}
