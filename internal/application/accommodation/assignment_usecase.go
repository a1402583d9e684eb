// Package accommodation implementa el control de capacidad: asignación de empleados a
// alojamientos y habitaciones sin superar nunca la capacidad declarada.
package accommodation

import (
	"context"
	"time"

	"github.com/jhoicas/Alojamientos-api/internal/application/audit"
	"github.com/jhoicas/Alojamientos-api/internal/application/dto"
	"github.com/jhoicas/Alojamientos-api/internal/application/retry"
	"github.com/jhoicas/Alojamientos-api/internal/domain"
	"github.com/jhoicas/Alojamientos-api/internal/domain/entity"
	"github.com/jhoicas/Alojamientos-api/internal/domain/occupancy"
	"github.com/jhoicas/Alojamientos-api/internal/domain/repository"
)

// AssignmentUseCase asigna y libera plazas. Toda verificación de capacidad y la escritura
// de la referencia ocurren en la misma transacción, con las filas del alojamiento y de la
// habitación bloqueadas (orden fijo: alojamiento → habitación).
type AssignmentUseCase struct {
	txRunner TxRunner
	accRepo  repository.AccommodationRepository
	roomRepo repository.RoomRepository
	empRepo  repository.EmployeeRepository
	audit    audit.Recorder
	retry    retry.Policy
}

// NewAssignmentUseCase construye el caso de uso. Los repositorios sin tx se usan solo para lecturas.
func NewAssignmentUseCase(
	txRunner TxRunner,
	accRepo repository.AccommodationRepository,
	roomRepo repository.RoomRepository,
	empRepo repository.EmployeeRepository,
	rec audit.Recorder,
) *AssignmentUseCase {
	if rec == nil {
		rec = audit.Nop{}
	}
	return &AssignmentUseCase{
		txRunner: txRunner,
		accRepo:  accRepo,
		roomRepo: roomRepo,
		empRepo:  empRepo,
		audit:    rec,
		retry:    retry.DefaultPolicy,
	}
}

// AssignInput datos de una asignación. RoomID vacío asigna solo el alojamiento.
type AssignInput struct {
	UnitID          string
	ActorID         string
	EmployeeID      string
	AccommodationID string
	RoomID          string
}

// Assign despacha a AssignRoom o AssignAccommodation según la entrada.
func (uc *AssignmentUseCase) Assign(ctx context.Context, in AssignInput) (*dto.EmployeeResponse, error) {
	if in.RoomID != "" {
		return uc.AssignRoom(ctx, in)
	}
	if in.AccommodationID != "" {
		return uc.AssignAccommodation(ctx, in)
	}
	return nil, domain.ErrInvalidInput
}

// AssignRoom asigna al empleado una cama en la habitación indicada (y su alojamiento).
// Si el empleado ya está en otra habitación del mismo alojamiento, la plaza del alojamiento
// no se consume dos veces.
func (uc *AssignmentUseCase) AssignRoom(ctx context.Context, in AssignInput) (*dto.EmployeeResponse, error) {
	if in.EmployeeID == "" || in.RoomID == "" {
		return nil, domain.ErrInvalidInput
	}
	var before, after entity.Employee
	err := uc.txRunner.RunAssignment(ctx, func(
		accRepo repository.AccommodationRepository,
		roomRepo repository.RoomRepository,
		empRepo repository.EmployeeRepository,
	) error {
		emp, err := lockAssignable(ctx, empRepo, in.UnitID, in.EmployeeID)
		if err != nil {
			return err
		}
		before = *emp

		// La habitación se lee sin bloqueo solo para conocer su alojamiento.
		located, err := roomRepo.GetByID(ctx, in.RoomID)
		if err != nil {
			return err
		}
		if in.AccommodationID != "" && in.AccommodationID != located.AccommodationID {
			return domain.ErrInvalidInput
		}
		acc, err := lockAccommodation(ctx, accRepo, in.UnitID, located.AccommodationID)
		if err != nil {
			return err
		}
		room, err := roomRepo.GetForUpdate(ctx, in.RoomID)
		if err != nil {
			return err
		}
		if !room.Active {
			return domain.ErrResourceInactive
		}

		if emp.RoomID != nil && *emp.RoomID == room.ID {
			after = *emp
			return nil
		}
		if err := tryAssign(ctx, roomCounter(roomRepo), room.ID, room.BedCount, emp.ID); err != nil {
			return err
		}
		if emp.AccommodationID == nil || *emp.AccommodationID != acc.ID {
			if err := tryAssign(ctx, accCounter(accRepo), acc.ID, acc.Capacity, emp.ID); err != nil {
				return err
			}
		}

		accID, roomID := acc.ID, room.ID
		emp.AccommodationID = &accID
		emp.RoomID = &roomID
		emp.UpdatedAt = time.Now()
		if err := empRepo.Update(ctx, emp); err != nil {
			return err
		}
		after = *emp
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, "employees", after.ID, entity.AuditUpdate, in.ActorID, before, after)
	return ToEmployeeResponse(&after), nil
}

// AssignAccommodation asigna al empleado un alojamiento sin habitación concreta.
// Libera la habitación que tuviera.
func (uc *AssignmentUseCase) AssignAccommodation(ctx context.Context, in AssignInput) (*dto.EmployeeResponse, error) {
	if in.EmployeeID == "" || in.AccommodationID == "" {
		return nil, domain.ErrInvalidInput
	}
	var before, after entity.Employee
	err := uc.txRunner.RunAssignment(ctx, func(
		accRepo repository.AccommodationRepository,
		_ repository.RoomRepository,
		empRepo repository.EmployeeRepository,
	) error {
		emp, err := lockAssignable(ctx, empRepo, in.UnitID, in.EmployeeID)
		if err != nil {
			return err
		}
		before = *emp
		acc, err := lockAccommodation(ctx, accRepo, in.UnitID, in.AccommodationID)
		if err != nil {
			return err
		}
		if emp.AccommodationID == nil || *emp.AccommodationID != acc.ID {
			if err := tryAssign(ctx, accCounter(accRepo), acc.ID, acc.Capacity, emp.ID); err != nil {
				return err
			}
		}
		accID := acc.ID
		emp.AccommodationID = &accID
		emp.RoomID = nil
		emp.UpdatedAt = time.Now()
		if err := empRepo.Update(ctx, emp); err != nil {
			return err
		}
		after = *emp
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, "employees", after.ID, entity.AuditUpdate, in.ActorID, before, after)
	return ToEmployeeResponse(&after), nil
}

// Unassign libera alojamiento y habitación del empleado. Idempotente.
func (uc *AssignmentUseCase) Unassign(ctx context.Context, unitID, actorID, employeeID string) (*dto.EmployeeResponse, error) {
	var before, after entity.Employee
	err := uc.txRunner.RunAssignment(ctx, func(
		_ repository.AccommodationRepository,
		_ repository.RoomRepository,
		empRepo repository.EmployeeRepository,
	) error {
		emp, err := empRepo.GetForUpdate(ctx, employeeID)
		if err != nil {
			return err
		}
		if emp.UnitID != unitID {
			return domain.ErrForbidden
		}
		before = *emp
		if emp.Unassigned() {
			after = *emp
			return nil
		}
		emp.AccommodationID = nil
		emp.RoomID = nil
		emp.UpdatedAt = time.Now()
		if err := empRepo.Update(ctx, emp); err != nil {
			return err
		}
		after = *emp
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !before.Unassigned() {
		uc.audit.Record(ctx, "employees", after.ID, entity.AuditUpdate, actorID, before, after)
	}
	return ToEmployeeResponse(&after), nil
}

// Occupancy devuelve capacidad, ocupación y plazas libres del alojamiento y de cada habitación.
// Es una lectura pura: se reintenta ante fallos transitorios.
func (uc *AssignmentUseCase) Occupancy(ctx context.Context, unitID, accommodationID string) (*dto.OccupancyResponse, error) {
	return retry.Read(ctx, uc.retry, func(ctx context.Context) (*dto.OccupancyResponse, error) {
		acc, err := uc.accRepo.GetByID(ctx, accommodationID)
		if err != nil {
			return nil, err
		}
		if acc.UnitID != unitID {
			return nil, domain.ErrForbidden
		}
		occupied, err := uc.accRepo.CountOccupants(ctx, acc.ID, "")
		if err != nil {
			return nil, err
		}
		rooms, err := uc.roomRepo.ListByAccommodation(ctx, acc.ID)
		if err != nil {
			return nil, err
		}
		out := &dto.OccupancyResponse{
			AccommodationID: acc.ID,
			Name:            acc.Name,
			Capacity:        acc.Capacity,
			Occupied:        occupied,
			Free:            occupancy.FreeSlots(occupied, acc.Capacity),
			OverCapacity:    occupancy.OverCapacity(occupied, acc.Capacity),
			Rooms:           make([]dto.RoomOccupancy, 0, len(rooms)),
		}
		for _, r := range rooms {
			n, err := uc.roomRepo.CountOccupants(ctx, r.ID, "")
			if err != nil {
				return nil, err
			}
			out.Rooms = append(out.Rooms, dto.RoomOccupancy{
				RoomID:   r.ID,
				Name:     r.Name,
				BedCount: r.BedCount,
				Occupied: n,
				Free:     occupancy.FreeSlots(n, r.BedCount),
				Active:   r.Active,
			})
		}
		return out, nil
	})
}

// occupantCounter cuenta ocupantes de un recurso excluyendo a un empleado.
type occupantCounter func(ctx context.Context, resourceID, excludeEmployeeID string) (int, error)

func accCounter(r repository.AccommodationRepository) occupantCounter { return r.CountOccupants }
func roomCounter(r repository.RoomRepository) occupantCounter         { return r.CountOccupants }

// tryAssign verifica que el recurso (ya bloqueado por el llamador) admita al ocupante.
// excludeEmployeeID evita contar al propio ocupante cuando ya estaba asignado.
func tryAssign(ctx context.Context, count occupantCounter, resourceID string, capacity int, excludeEmployeeID string) error {
	occupied, err := count(ctx, resourceID, excludeEmployeeID)
	if err != nil {
		return err
	}
	return occupancy.CheckCapacity(occupied, capacity)
}

func lockAssignable(ctx context.Context, empRepo repository.EmployeeRepository, unitID, employeeID string) (*entity.Employee, error) {
	emp, err := empRepo.GetForUpdate(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if emp.UnitID != unitID {
		return nil, domain.ErrForbidden
	}
	if !emp.Active || emp.Status == entity.EmployeeStatusDismissed {
		return nil, domain.ErrConflict
	}
	return emp, nil
}

func lockAccommodation(ctx context.Context, accRepo repository.AccommodationRepository, unitID, accommodationID string) (*entity.Accommodation, error) {
	acc, err := accRepo.GetForUpdate(ctx, accommodationID)
	if err != nil {
		return nil, err
	}
	if acc.UnitID != unitID {
		return nil, domain.ErrForbidden
	}
	if !acc.Active {
		return nil, domain.ErrResourceInactive
	}
	return acc, nil
}

// ToEmployeeResponse mapea la entidad al DTO de salida.
func ToEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:              e.ID,
		UnitID:          e.UnitID,
		Name:            e.Name,
		Document:        e.Document,
		JobTitle:        e.JobTitle,
		AccommodationID: e.AccommodationID,
		RoomID:          e.RoomID,
		Status:          e.Status,
		Active:          e.Active,
		ArrivalDate:     e.ArrivalDate,
		DepartureDate:   e.DepartureDate,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}
