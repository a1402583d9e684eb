package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Alojamientos-api/internal/application/accommodation"
	"github.com/jhoicas/Alojamientos-api/internal/application/stock"
	"github.com/jhoicas/Alojamientos-api/internal/application/transfer"
	"github.com/jhoicas/Alojamientos-api/internal/domain/repository"
)

// Ensure TxRunner implementa los runners de cada módulo transaccional.
var (
	_ accommodation.TxRunner = (*TxRunner)(nil)
	_ stock.TxRunner         = (*TxRunner)(nil)
	_ transfer.TxRunner      = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// run inicia una transacción, ejecuta fn con la tx y hace Commit o Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return wrap("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return wrap("commit transaction", err)
	}
	return nil
}

// RunAssignment transacción del control de capacidad (alojamientos, habitaciones, empleados).
func (r *TxRunner) RunAssignment(ctx context.Context, fn func(
	accRepo repository.AccommodationRepository,
	roomRepo repository.RoomRepository,
	empRepo repository.EmployeeRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewAccommodationRepository(tx), NewRoomRepository(tx), NewEmployeeRepository(tx))
	})
}

// RunLedger transacción del libro de stock (productos, movimientos, entradas, empleado que retira).
func (r *TxRunner) RunLedger(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.ProductMovementRepository,
	entryRepo repository.ProductEntryRepository,
	empRepo repository.EmployeeRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewProductRepository(tx), NewMovementRepository(tx), NewEntryRepository(tx), NewEmployeeRepository(tx))
	})
}

// RunTransfer transacción de la transferencia (empleado + historial).
func (r *TxRunner) RunTransfer(ctx context.Context, fn func(
	empRepo repository.EmployeeRepository,
	transferRepo repository.TransferRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewEmployeeRepository(tx), NewTransferRepository(tx))
	})
}
