package accommodation_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Alojamientos-api/internal/application/accommodation"
	"github.com/jhoicas/Alojamientos-api/internal/domain"
	"github.com/jhoicas/Alojamientos-api/internal/domain/entity"
	"github.com/jhoicas/Alojamientos-api/internal/testutil/memstore"
)

const actorID = "00000000-0000-0000-0000-0000000000aa"

type fixture struct {
	store *memstore.Store
	uc    *accommodation.AssignmentUseCase
	unit  *entity.Unit
	acc   *entity.Accommodation
}

func newFixture(t *testing.T, accCapacity int) *fixture {
	t.Helper()
	s := memstore.New()
	unit := s.SeedUnit("U1")
	acc := s.SeedAccommodation(unit.ID, "Casa 1", accCapacity)
	uc := accommodation.NewAssignmentUseCase(s, s.Accommodations(), s.Rooms(), s.Employees(), nil)
	return &fixture{store: s, uc: uc, unit: unit, acc: acc}
}

func (f *fixture) assignRoom(empID, roomID string) error {
	_, err := f.uc.AssignRoom(context.Background(), accommodation.AssignInput{
		UnitID: f.unit.ID, ActorID: actorID, EmployeeID: empID, RoomID: roomID,
	})
	return err
}

// Habitación de 2 camas: A y B entran, C no; al liberar A, C entra.
func TestAssignRoom_EscenarioCapacidadDos(t *testing.T) {
	f := newFixture(t, 10)
	room := f.store.SeedRoom(f.acc.ID, "H1", 2)
	a := f.store.SeedEmployee(f.unit.ID, "A")
	b := f.store.SeedEmployee(f.unit.ID, "B")
	c := f.store.SeedEmployee(f.unit.ID, "C")

	require.NoError(t, f.assignRoom(a.ID, room.ID))
	require.NoError(t, f.assignRoom(b.ID, room.ID))

	err := f.assignRoom(c.ID, room.ID)
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	assert.Nil(t, f.store.Employee(c.ID).RoomID, "C no debe quedar asignado")

	_, err = f.uc.Unassign(context.Background(), f.unit.ID, actorID, a.ID)
	require.NoError(t, err)

	require.NoError(t, f.assignRoom(c.ID, room.ID))
	got := f.store.Employee(c.ID)
	require.NotNil(t, got.RoomID)
	assert.Equal(t, room.ID, *got.RoomID)
	assert.Equal(t, f.acc.ID, *got.AccommodationID, "asignar habitación fija también el alojamiento")
}

// N asignaciones concurrentes por la última plaza: exactamente C tienen éxito.
func TestAssignRoom_ConcurrenciaNoSuperaCapacidad(t *testing.T) {
	const capacity, contenders = 3, 20
	f := newFixture(t, 50)
	room := f.store.SeedRoom(f.acc.ID, "H1", capacity)

	ids := make([]string, contenders)
	for i := range ids {
		ids[i] = f.store.SeedEmployee(f.unit.ID, "E").ID
	}

	var ok, full atomic.Int32
	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			err := f.assignRoom(id, room.ID)
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, domain.ErrCapacityExceeded):
				full.Add(1)
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}(id)
	}
	wg.Wait()

	assert.EqualValues(t, capacity, ok.Load())
	assert.EqualValues(t, contenders-capacity, full.Load())

	n, err := f.store.Rooms().CountOccupants(context.Background(), room.ID, "")
	require.NoError(t, err)
	assert.Equal(t, capacity, n)
}

// La capacidad del alojamiento limita aunque la habitación tenga camas libres.
func TestAssignRoom_CapacidadDelAlojamiento(t *testing.T) {
	f := newFixture(t, 1)
	room := f.store.SeedRoom(f.acc.ID, "H1", 4)
	a := f.store.SeedEmployee(f.unit.ID, "A")
	b := f.store.SeedEmployee(f.unit.ID, "B")

	require.NoError(t, f.assignRoom(a.ID, room.ID))
	assert.ErrorIs(t, f.assignRoom(b.ID, room.ID), domain.ErrCapacityExceeded)
	assert.Nil(t, f.store.Employee(b.ID).AccommodationID)
}

// Cambiar de habitación dentro del mismo alojamiento no consume otra plaza del alojamiento.
func TestAssignRoom_MovimientoDentroDelAlojamiento(t *testing.T) {
	f := newFixture(t, 1)
	h1 := f.store.SeedRoom(f.acc.ID, "H1", 1)
	h2 := f.store.SeedRoom(f.acc.ID, "H2", 1)
	a := f.store.SeedEmployee(f.unit.ID, "A")

	require.NoError(t, f.assignRoom(a.ID, h1.ID))
	require.NoError(t, f.assignRoom(a.ID, h2.ID))
	assert.Equal(t, h2.ID, *f.store.Employee(a.ID).RoomID)

	// Reasignar a la misma habitación es un no-op.
	require.NoError(t, f.assignRoom(a.ID, h2.ID))
}

func TestAssignRoom_RecursoInactivo(t *testing.T) {
	f := newFixture(t, 5)
	room := f.store.SeedRoom(f.acc.ID, "H1", 2)
	a := f.store.SeedEmployee(f.unit.ID, "A")

	room.Active = false
	require.NoError(t, f.store.Rooms().Update(context.Background(), room))
	assert.ErrorIs(t, f.assignRoom(a.ID, room.ID), domain.ErrResourceInactive)

	acc := *f.acc
	acc.Active = false
	require.NoError(t, f.store.Accommodations().Update(context.Background(), &acc))
	_, err := f.uc.AssignAccommodation(context.Background(), accommodation.AssignInput{
		UnitID: f.unit.ID, ActorID: actorID, EmployeeID: a.ID, AccommodationID: acc.ID,
	})
	assert.ErrorIs(t, err, domain.ErrResourceInactive)
}

func TestAssignRoom_HabitacionInexistente(t *testing.T) {
	f := newFixture(t, 5)
	a := f.store.SeedEmployee(f.unit.ID, "A")
	assert.ErrorIs(t, f.assignRoom(a.ID, "no-existe"), domain.ErrNotFound)
}

func TestAssign_OtraUnidadProhibida(t *testing.T) {
	f := newFixture(t, 5)
	room := f.store.SeedRoom(f.acc.ID, "H1", 2)
	other := f.store.SeedUnit("U2")
	e := f.store.SeedEmployee(other.ID, "Ajeno")

	assert.ErrorIs(t, f.assignRoom(e.ID, room.ID), domain.ErrForbidden)
}

func TestAssignAccommodation_LiberaHabitacion(t *testing.T) {
	f := newFixture(t, 2)
	room := f.store.SeedRoom(f.acc.ID, "H1", 2)
	a := f.store.SeedEmployee(f.unit.ID, "A")
	require.NoError(t, f.assignRoom(a.ID, room.ID))

	out, err := f.uc.Assign(context.Background(), accommodation.AssignInput{
		UnitID: f.unit.ID, ActorID: actorID, EmployeeID: a.ID, AccommodationID: f.acc.ID,
	})
	require.NoError(t, err)
	assert.Nil(t, out.RoomID)
	require.NotNil(t, out.AccommodationID)
	assert.Equal(t, f.acc.ID, *out.AccommodationID)
}

func TestAssign_SinDestinoEsInvalido(t *testing.T) {
	f := newFixture(t, 2)
	a := f.store.SeedEmployee(f.unit.ID, "A")
	_, err := f.uc.Assign(context.Background(), accommodation.AssignInput{UnitID: f.unit.ID, EmployeeID: a.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUnassign_Idempotente(t *testing.T) {
	f := newFixture(t, 2)
	a := f.store.SeedEmployee(f.unit.ID, "A")

	out, err := f.uc.Unassign(context.Background(), f.unit.ID, actorID, a.ID)
	require.NoError(t, err)
	assert.Nil(t, out.AccommodationID)

	_, err = f.uc.Unassign(context.Background(), f.unit.ID, actorID, a.ID)
	require.NoError(t, err)
}

// Reducir la capacidad por debajo de la ocupación no expulsa a nadie, pero bloquea nuevas altas.
func TestOccupancy_CapacidadReducida(t *testing.T) {
	f := newFixture(t, 3)
	for _, name := range []string{"A", "B", "C"} {
		e := f.store.SeedEmployee(f.unit.ID, name)
		_, err := f.uc.AssignAccommodation(context.Background(), accommodation.AssignInput{
			UnitID: f.unit.ID, ActorID: actorID, EmployeeID: e.ID, AccommodationID: f.acc.ID,
		})
		require.NoError(t, err)
	}

	acc := *f.acc
	acc.Capacity = 2
	require.NoError(t, f.store.Accommodations().Update(context.Background(), &acc))

	occ, err := f.uc.Occupancy(context.Background(), f.unit.ID, f.acc.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, occ.Occupied)
	assert.Equal(t, 0, occ.Free)
	assert.True(t, occ.OverCapacity)

	d := f.store.SeedEmployee(f.unit.ID, "D")
	_, err = f.uc.AssignAccommodation(context.Background(), accommodation.AssignInput{
		UnitID: f.unit.ID, ActorID: actorID, EmployeeID: d.ID, AccommodationID: f.acc.ID,
	})
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
}

// Una lectura de ocupación se reintenta ante un fallo transitorio; persistente, se propaga tipado.
func TestOccupancy_FalloTransitorio(t *testing.T) {
	f := newFixture(t, 3)
	f.store.FailOn("accommodations.CountOccupants", domain.ErrTransientIO)

	_, err := f.uc.Occupancy(context.Background(), f.unit.ID, f.acc.ID)
	assert.ErrorIs(t, err, domain.ErrTransientIO)

	f.store.FailOn("accommodations.CountOccupants", nil)
	occ, err := f.uc.Occupancy(context.Background(), f.unit.ID, f.acc.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, occ.Free)
}

// Un fallo al escribir el empleado revierte la asignación.
func TestAssignRoom_FalloDeEscrituraNoAsigna(t *testing.T) {
	f := newFixture(t, 3)
	room := f.store.SeedRoom(f.acc.ID, "H1", 2)
	a := f.store.SeedEmployee(f.unit.ID, "A")
	f.store.FailOn("employees.Update", domain.ErrTransientIO)

	assert.ErrorIs(t, f.assignRoom(a.ID, room.ID), domain.ErrTransientIO)
	assert.True(t, f.store.Employee(a.ID).Unassigned())
}
