package transfer

import (
	"context"

	"github.com/jhoicas/Alojamientos-api/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción: el historial y la mutación del empleado
// se confirman juntos o no se confirman.
type TxRunner interface {
	RunTransfer(ctx context.Context, fn func(
		empRepo repository.EmployeeRepository,
		transferRepo repository.TransferRepository,
	) error) error
}
