package transfer_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Alojamientos-api/internal/application/audit"
	"github.com/jhoicas/Alojamientos-api/internal/application/transfer"
	"github.com/jhoicas/Alojamientos-api/internal/domain"
	"github.com/jhoicas/Alojamientos-api/internal/domain/entity"
	"github.com/jhoicas/Alojamientos-api/internal/testutil/memstore"
	"github.com/jhoicas/Alojamientos-api/pkg/logger"
)

const actorID = "00000000-0000-0000-0000-0000000000aa"

var (
	departure = time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	arrival   = time.Date(2026, 5, 2, 18, 0, 0, 0, time.UTC)
)

type fixture struct {
	store    *memstore.Store
	uc       *transfer.UseCase
	audit    *audit.Dispatcher
	from, to *entity.Unit
	emp      *entity.Employee
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memstore.New()
	from := s.SeedUnit("NORTE")
	to := s.SeedUnit("SUR")
	acc := s.SeedAccommodation(from.ID, "Casa 1", 4)
	room := s.SeedRoom(acc.ID, "H1", 2)

	emp := s.SeedEmployee(from.ID, "Viajero")
	emp.AccommodationID = &acc.ID
	emp.RoomID = &room.ID
	require.NoError(t, s.Employees().Update(context.Background(), emp))

	d := audit.NewDispatcher(s, logger.Nop())
	uc := transfer.NewUseCase(s, s.Units(), s.Employees(), s.Transfers(), d)
	return &fixture{store: s, uc: uc, audit: d, from: from, to: to, emp: emp}
}

func (f *fixture) input() transfer.Input {
	return transfer.Input{
		FromUnitID:  f.from.ID,
		ActorID:     actorID,
		EmployeeID:  f.emp.ID,
		ToUnitID:    f.to.ID,
		DepartureAt: departure,
		ArrivalAt:   arrival,
		Observation: "rotación de turno",
	}
}

func TestTransfer_MueveEmpleadoYRegistraHistorial(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.Transfer(context.Background(), f.input())
	require.NoError(t, err)
	assert.Equal(t, f.from.ID, out.FromUnitID)
	assert.Equal(t, f.to.ID, out.ToUnitID)

	got := f.store.Employee(f.emp.ID)
	assert.Equal(t, f.to.ID, got.UnitID)
	assert.Equal(t, entity.EmployeeStatusPendingIntegration, got.Status)
	assert.Nil(t, got.AccommodationID, "la plaza en origen queda libre")
	assert.Nil(t, got.RoomID)
	require.NotNil(t, got.DepartureDate)
	assert.True(t, got.DepartureDate.Equal(departure))
	assert.Equal(t, 1, f.store.TransferCount())

	f.audit.Wait()
	tables := map[string]int{}
	for _, e := range f.store.AuditEntries() {
		tables[e.Table]++
	}
	assert.Equal(t, 1, tables["transfers"])
	assert.Equal(t, 1, tables["employees"])
}

// Si falla la actualización del empleado, tampoco queda historial.
func TestTransfer_AtomicidadAnteFallo(t *testing.T) {
	f := newFixture(t)
	f.store.FailOn("employees.Update", domain.ErrTransientIO)

	_, err := f.uc.Transfer(context.Background(), f.input())
	assert.ErrorIs(t, err, domain.ErrTransientIO)

	assert.Equal(t, 0, f.store.TransferCount())
	got := f.store.Employee(f.emp.ID)
	assert.Equal(t, f.from.ID, got.UnitID)
	assert.Equal(t, entity.EmployeeStatusIntegrated, got.Status)
	assert.NotNil(t, got.RoomID, "la asignación original se conserva")

	f.audit.Wait()
	assert.Empty(t, f.store.AuditEntries())
}

func TestTransfer_FalloAlGuardarHistorial(t *testing.T) {
	f := newFixture(t)
	f.store.FailOn("transfers.Create", domain.ErrTransientIO)

	_, err := f.uc.Transfer(context.Background(), f.input())
	assert.ErrorIs(t, err, domain.ErrTransientIO)
	assert.Equal(t, f.from.ID, f.store.Employee(f.emp.ID).UnitID)
}

func TestTransfer_Validaciones(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name   string
		mutate func(*transfer.Input)
		want   error
	}{
		{"misma unidad", func(in *transfer.Input) { in.ToUnitID = f.from.ID }, domain.ErrInvalidInput},
		{"llegada antes de salida", func(in *transfer.Input) { in.ArrivalAt = departure.Add(-time.Hour) }, domain.ErrInvalidInput},
		{"sin fechas", func(in *transfer.Input) { in.DepartureAt = time.Time{} }, domain.ErrInvalidInput},
		{"sin empleado", func(in *transfer.Input) { in.EmployeeID = "" }, domain.ErrInvalidInput},
		{"unidad destino inexistente", func(in *transfer.Input) { in.ToUnitID = "no-existe" }, domain.ErrNotFound},
		{"empleado de otra unidad", func(in *transfer.Input) {
			other := f.store.SeedUnit("ESTE")
			in.FromUnitID = other.ID
		}, domain.ErrForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := f.input()
			tc.mutate(&in)
			_, err := f.uc.Transfer(context.Background(), in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Equal(t, 0, f.store.TransferCount())
}

func TestTransfer_DestinoInactivo(t *testing.T) {
	f := newFixture(t)
	closed := &entity.Unit{ID: "unidad-cerrada", Code: "CERRADA", Name: "Cerrada", Active: false}
	require.NoError(t, f.store.Units().Create(context.Background(), closed))

	in := f.input()
	in.ToUnitID = closed.ID
	_, err := f.uc.Transfer(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrResourceInactive)
}

func TestTransfer_EmpleadoDesvinculado(t *testing.T) {
	f := newFixture(t)
	emp := f.store.Employee(f.emp.ID)
	emp.Status = entity.EmployeeStatusDismissed
	require.NoError(t, f.store.Employees().Update(context.Background(), emp))

	_, err := f.uc.Transfer(context.Background(), f.input())
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// El historial es visible desde la unidad de origen y la de destino, no desde una tercera.
func TestHistory_Visibilidad(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Transfer(context.Background(), f.input())
	require.NoError(t, err)

	for _, unitID := range []string{f.from.ID, f.to.ID} {
		list, err := f.uc.History(context.Background(), unitID, f.emp.ID)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	}

	third := f.store.SeedUnit("OESTE")
	_, err = f.uc.History(context.Background(), third.ID, f.emp.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
