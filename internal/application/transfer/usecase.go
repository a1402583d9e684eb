// Package transfer implementa la transferencia de empleados entre unidades.
package transfer

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Alojamientos-api/internal/application/audit"
	"github.com/jhoicas/Alojamientos-api/internal/application/dto"
	"github.com/jhoicas/Alojamientos-api/internal/domain"
	"github.com/jhoicas/Alojamientos-api/internal/domain/entity"
	"github.com/jhoicas/Alojamientos-api/internal/domain/repository"
)

// UseCase mueve un empleado a otra unidad: inserta el historial, libera su plaza y
// lo devuelve a PENDIENTE_INTEGRACION en la unidad destino.
type UseCase struct {
	txRunner     TxRunner
	unitRepo     repository.UnitRepository
	empRepo      repository.EmployeeRepository
	transferRepo repository.TransferRepository
	audit        audit.Recorder
	now          func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	unitRepo repository.UnitRepository,
	empRepo repository.EmployeeRepository,
	transferRepo repository.TransferRepository,
	rec audit.Recorder,
) *UseCase {
	if rec == nil {
		rec = audit.Nop{}
	}
	return &UseCase{
		txRunner:     txRunner,
		unitRepo:     unitRepo,
		empRepo:      empRepo,
		transferRepo: transferRepo,
		audit:        rec,
		now:          time.Now,
	}
}

// Input datos de una transferencia. FromUnitID es la unidad del operador.
type Input struct {
	FromUnitID  string
	ActorID     string
	EmployeeID  string
	ToUnitID    string
	DepartureAt time.Time
	ArrivalAt   time.Time
	Observation string
}

// Transfer ejecuta la transferencia en una sola transacción.
func (uc *UseCase) Transfer(ctx context.Context, in Input) (*dto.TransferResponse, error) {
	if in.EmployeeID == "" || in.ToUnitID == "" || in.DepartureAt.IsZero() || in.ArrivalAt.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if in.ToUnitID == in.FromUnitID || in.ArrivalAt.Before(in.DepartureAt) {
		return nil, domain.ErrInvalidInput
	}
	target, err := uc.unitRepo.GetByID(ctx, in.ToUnitID)
	if err != nil {
		return nil, err
	}
	if !target.Active {
		return nil, domain.ErrResourceInactive
	}

	now := uc.now()
	rec := &entity.TransferRecord{
		ID:          uuid.New().String(),
		EmployeeID:  in.EmployeeID,
		FromUnitID:  in.FromUnitID,
		ToUnitID:    target.ID,
		DepartureAt: in.DepartureAt,
		ArrivalAt:   in.ArrivalAt,
		Observation: in.Observation,
		CreatedBy:   in.ActorID,
		CreatedAt:   now,
	}
	var before, after entity.Employee
	err = uc.txRunner.RunTransfer(ctx, func(
		empRepo repository.EmployeeRepository,
		transferRepo repository.TransferRepository,
	) error {
		emp, err := empRepo.GetForUpdate(ctx, in.EmployeeID)
		if err != nil {
			return err
		}
		if emp.UnitID != in.FromUnitID {
			return domain.ErrForbidden
		}
		if !emp.Active || emp.Status == entity.EmployeeStatusDismissed {
			return domain.ErrConflict
		}
		before = *emp
		if err := transferRepo.Create(ctx, rec); err != nil {
			return err
		}
		departure := in.DepartureAt
		emp.UnitID = target.ID
		emp.AccommodationID = nil
		emp.RoomID = nil
		emp.Status = entity.EmployeeStatusPendingIntegration
		emp.DepartureDate = &departure
		emp.UpdatedAt = now
		if err := empRepo.Update(ctx, emp); err != nil {
			return err
		}
		after = *emp
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, "transfers", rec.ID, entity.AuditCreate, in.ActorID, nil, rec)
	uc.audit.Record(ctx, "employees", after.ID, entity.AuditUpdate, in.ActorID, before, after)
	return ToTransferResponse(rec), nil
}

// History devuelve las transferencias de un empleado. El empleado debe estar hoy en la unidad
// del operador o haber salido de ella.
func (uc *UseCase) History(ctx context.Context, unitID, employeeID string) ([]dto.TransferResponse, error) {
	emp, err := uc.empRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	list, err := uc.transferRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	visible := emp.UnitID == unitID
	out := make([]dto.TransferResponse, 0, len(list))
	for _, r := range list {
		if r.FromUnitID == unitID || r.ToUnitID == unitID {
			visible = true
		}
		out = append(out, *ToTransferResponse(r))
	}
	if !visible {
		return nil, domain.ErrForbidden
	}
	return out, nil
}

// ToTransferResponse mapea la entidad al DTO de salida.
func ToTransferResponse(r *entity.TransferRecord) *dto.TransferResponse {
	return &dto.TransferResponse{
		ID:          r.ID,
		EmployeeID:  r.EmployeeID,
		FromUnitID:  r.FromUnitID,
		ToUnitID:    r.ToUnitID,
		DepartureAt: r.DepartureAt,
		ArrivalAt:   r.ArrivalAt,
		Observation: r.Observation,
		CreatedBy:   r.CreatedBy,
		CreatedAt:   r.CreatedAt,
	}
}
