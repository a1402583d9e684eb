package accommodation

import (
	"context"

	"github.com/jhoicas/Alojamientos-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD con repositorios atados a esa tx.
// Un error de fn provoca Rollback; nil provoca Commit.
type TxRunner interface {
	RunAssignment(ctx context.Context, fn func(
		accRepo repository.AccommodationRepository,
		roomRepo repository.RoomRepository,
		empRepo repository.EmployeeRepository,
	) error) error
}
