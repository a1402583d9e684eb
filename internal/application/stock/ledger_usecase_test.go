package stock_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Alojamientos-api/internal/application/dto"
	"github.com/jhoicas/Alojamientos-api/internal/application/stock"
	"github.com/jhoicas/Alojamientos-api/internal/application/usecase"
	"github.com/jhoicas/Alojamientos-api/internal/domain"
	"github.com/jhoicas/Alojamientos-api/internal/domain/entity"
	"github.com/jhoicas/Alojamientos-api/internal/domain/repository"
	"github.com/jhoicas/Alojamientos-api/internal/testutil/memstore"
)

const actorID = "00000000-0000-0000-0000-0000000000aa"

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type ledgerFixture struct {
	store *memstore.Store
	uc    *stock.LedgerUseCase
	unit  *entity.Unit
	emp   *entity.Employee
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	s := memstore.New()
	unit := s.SeedUnit("U1")
	emp := s.SeedEmployee(unit.ID, "Operario")
	uc := stock.NewLedgerUseCase(s, s.Products(), s.Movements(), s.Employees(), nil)
	return &ledgerFixture{store: s, uc: uc, unit: unit, emp: emp}
}

func (f *ledgerFixture) withdraw(productID, qty string) (string, error) {
	out, err := f.uc.Withdraw(context.Background(), stock.WithdrawInput{
		UnitID: f.unit.ID, ActorID: actorID, EmployeeID: f.emp.ID, ProductID: productID, Quantity: dec(qty),
	})
	if err != nil {
		return "", err
	}
	return out.ID, nil
}

func (f *ledgerFixture) giveBack(movementID string) error {
	_, err := f.uc.ReturnMovement(context.Background(), stock.ReturnInput{
		UnitID: f.unit.ID, ActorID: actorID, MovementID: movementID,
	})
	return err
}

// assertConserved verifica disponible + Σ pendientes == q0.
func (f *ledgerFixture) assertConserved(t *testing.T, productID string, q0 decimal.Decimal) {
	t.Helper()
	p := f.store.Product(productID)
	require.NotNil(t, p)
	assert.False(t, p.Quantity.IsNegative(), "el disponible nunca es negativo")
	outstanding, err := f.store.Movements().SumOutstanding(context.Background(), productID)
	require.NoError(t, err)
	assert.True(t, p.Quantity.Add(outstanding).Equal(q0),
		"disponible %s + pendiente %s debe ser %s", p.Quantity, outstanding, q0)
}

// Producto con 10: retiro 4 → 6; retiro 7 falla; devolución → 10; segunda devolución falla.
func TestLedger_EscenarioRetiroYDevolucion(t *testing.T) {
	f := newLedgerFixture(t)
	p := f.store.SeedProduct("GUANTE", dec("10"))

	movID, err := f.withdraw(p.ID, "4")
	require.NoError(t, err)
	assert.True(t, f.store.Product(p.ID).Quantity.Equal(dec("6")))
	f.assertConserved(t, p.ID, dec("10"))

	_, err = f.withdraw(p.ID, "7")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, f.store.Product(p.ID).Quantity.Equal(dec("6")), "un retiro rechazado no altera el stock")

	require.NoError(t, f.giveBack(movID))
	assert.True(t, f.store.Product(p.ID).Quantity.Equal(dec("10")))
	mov, err := f.store.Movements().GetByID(context.Background(), movID)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementStatusReturned, mov.State().Status())

	assert.ErrorIs(t, f.giveBack(movID), domain.ErrAlreadyReturned)
	assert.True(t, f.store.Product(p.ID).Quantity.Equal(dec("10")), "la segunda devolución no acredita stock")
	f.assertConserved(t, p.ID, dec("10"))
}

// La conservación se mantiene tras cualquier secuencia de retiros, ediciones y devoluciones.
func TestLedger_ConservacionEnSecuencia(t *testing.T) {
	f := newLedgerFixture(t)
	q0 := dec("20")
	p := f.store.SeedProduct("CASCO", q0)

	var movs []string
	for _, q := range []string{"3", "0.5", "7", "2.25"} {
		id, err := f.withdraw(p.ID, q)
		require.NoError(t, err)
		movs = append(movs, id)
		f.assertConserved(t, p.ID, q0)
	}

	_, err := f.uc.UpdateMovement(context.Background(), stock.UpdateMovementInput{
		UnitID: f.unit.ID, ActorID: actorID, MovementID: movs[2], Quantity: dec("1"),
	})
	require.NoError(t, err)
	f.assertConserved(t, p.ID, q0)

	require.NoError(t, f.giveBack(movs[0]))
	f.assertConserved(t, p.ID, q0)

	// 20 - (0.5 + 1 + 2.25) = 16.25 disponibles; pedir más falla sin alterar nada.
	_, err = f.withdraw(p.ID, "16.26")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	f.assertConserved(t, p.ID, q0)

	_, err = f.withdraw(p.ID, "16.25")
	require.NoError(t, err)
	assert.True(t, f.store.Product(p.ID).Quantity.IsZero())
	f.assertConserved(t, p.ID, q0)
}

func TestLedger_EditarMovimiento(t *testing.T) {
	f := newLedgerFixture(t)
	p := f.store.SeedProduct("BOTA", dec("10"))
	movID, err := f.withdraw(p.ID, "4")
	require.NoError(t, err)

	obs := "talla 42"
	out, err := f.uc.UpdateMovement(context.Background(), stock.UpdateMovementInput{
		UnitID: f.unit.ID, ActorID: actorID, MovementID: movID, Quantity: dec("9"), Observation: &obs,
	})
	require.NoError(t, err)
	assert.True(t, out.Quantity.Equal(dec("9")))
	assert.Equal(t, obs, out.Observation)
	assert.True(t, f.store.Product(p.ID).Quantity.Equal(dec("1")))

	_, err = f.uc.UpdateMovement(context.Background(), stock.UpdateMovementInput{
		UnitID: f.unit.ID, ActorID: actorID, MovementID: movID, Quantity: dec("11"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, f.store.Product(p.ID).Quantity.Equal(dec("1")))

	require.NoError(t, f.giveBack(movID))
	_, err = f.uc.UpdateMovement(context.Background(), stock.UpdateMovementInput{
		UnitID: f.unit.ID, ActorID: actorID, MovementID: movID, Quantity: dec("2"),
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyReturned, "un movimiento devuelto no se edita")
}

// Devoluciones concurrentes del mismo movimiento: solo una acredita el stock.
func TestLedger_DevolucionConcurrenteUnaSolaVez(t *testing.T) {
	f := newLedgerFixture(t)
	p := f.store.SeedProduct("LINTERNA", dec("5"))
	movID, err := f.withdraw(p.ID, "5")
	require.NoError(t, err)

	const n = 10
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- f.giveBack(movID)
		}()
	}
	wg.Wait()
	close(errs)

	var ok, already int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrAlreadyReturned):
			already++
		default:
			t.Errorf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, already)
	assert.True(t, f.store.Product(p.ID).Quantity.Equal(dec("5")))
}

// Retiros concurrentes nunca dejan el stock negativo.
func TestLedger_RetirosConcurrentes(t *testing.T) {
	f := newLedgerFixture(t)
	q0 := dec("10")
	p := f.store.SeedProduct("PILAS", q0)

	const n = 25
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.withdraw(p.ID, "1")
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)
	assert.True(t, f.store.Product(p.ID).Quantity.IsZero())
	f.assertConserved(t, p.ID, q0)
}

func TestLedger_ProductoInactivo(t *testing.T) {
	f := newLedgerFixture(t)
	p := f.store.SeedProduct("OBSOLETO", dec("3"))
	p.Active = false
	require.NoError(t, f.store.Products().Update(context.Background(), p))

	_, err := f.withdraw(p.ID, "1")
	assert.ErrorIs(t, err, domain.ErrResourceInactive)
}

func TestLedger_Validaciones(t *testing.T) {
	f := newLedgerFixture(t)
	p := f.store.SeedProduct("X", dec("3"))

	_, err := f.withdraw(p.ID, "0")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.withdraw("no-existe", "1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, f.giveBack("no-existe"), domain.ErrNotFound)

	other := f.store.SeedUnit("U2")
	_, err = f.uc.Withdraw(context.Background(), stock.WithdrawInput{
		UnitID: other.ID, ActorID: actorID, EmployeeID: f.emp.ID, ProductID: p.ID, Quantity: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Un fallo al crear el movimiento revierte el descuento de stock.
func TestLedger_FalloAlCrearMovimientoRevierte(t *testing.T) {
	f := newLedgerFixture(t)
	p := f.store.SeedProduct("CUERDA", dec("8"))
	f.store.FailOn("movements.Create", domain.ErrTransientIO)

	_, err := f.withdraw(p.ID, "3")
	assert.ErrorIs(t, err, domain.ErrTransientIO)
	assert.True(t, f.store.Product(p.ID).Quantity.Equal(dec("8")))
}

func TestLedger_ListadoPorEmpleado(t *testing.T) {
	f := newLedgerFixture(t)
	p := f.store.SeedProduct("MASCARILLA", dec("10"))
	first, err := f.withdraw(p.ID, "1")
	require.NoError(t, err)
	_, err = f.withdraw(p.ID, "2")
	require.NoError(t, err)
	require.NoError(t, f.giveBack(first))

	all, err := f.uc.ListByEmployee(context.Background(), f.unit.ID, f.emp.ID, false, 20, 0)
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	pending, err := f.uc.ListByEmployee(context.Background(), f.unit.ID, f.emp.ID, true, 20, 0)
	require.NoError(t, err)
	require.Len(t, pending.Items, 1)
	assert.Equal(t, entity.MovementStatusOutstanding, pending.Items[0].Status)

	byProduct, err := f.uc.ListByProduct(context.Background(), p.ID, false, 20, 0)
	require.NoError(t, err)
	assert.Len(t, byProduct.Items, 2)
}

// racingLedger confirma otra operación justo antes de abrir la primera transacción.
type racingLedger struct {
	*memstore.Store
	once   sync.Once
	before func()
}

func (r *racingLedger) RunLedger(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.ProductMovementRepository,
	entryRepo repository.ProductEntryRepository,
	empRepo repository.EmployeeRepository,
) error) error {
	r.once.Do(r.before)
	return r.Store.RunLedger(ctx, fn)
}

// Una desvinculación confirmada antes del retiro lo rechaza: el empleado se verifica bajo bloqueo.
func TestLedger_RetiroTrasDesvinculacion(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	unit := s.SeedUnit("U1")
	emp := s.SeedEmployee(unit.ID, "Operario")
	p := s.SeedProduct("GUANTE", dec("10"))

	tx := &racingLedger{Store: s, before: func() {
		_, err := usecase.NewEmployeeUseCase(s, s.Employees(), nil).
			Dismiss(ctx, unit.ID, actorID, emp.ID, dto.DismissRequest{DepartureDate: time.Now()})
		require.NoError(t, err)
	}}
	uc := stock.NewLedgerUseCase(tx, s.Products(), s.Movements(), s.Employees(), nil)

	_, err := uc.Withdraw(ctx, stock.WithdrawInput{
		UnitID: unit.ID, ActorID: actorID, EmployeeID: emp.ID, ProductID: p.ID, Quantity: dec("3"),
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.True(t, s.Product(p.ID).Quantity.Equal(dec("10")))

	list, err := uc.ListByEmployee(ctx, unit.ID, emp.ID, false, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}
