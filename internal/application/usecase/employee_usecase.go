package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Alojamientos-api/internal/application/accommodation"
	"github.com/jhoicas/Alojamientos-api/internal/application/audit"
	"github.com/jhoicas/Alojamientos-api/internal/application/dto"
	"github.com/jhoicas/Alojamientos-api/internal/domain"
	"github.com/jhoicas/Alojamientos-api/internal/domain/entity"
	"github.com/jhoicas/Alojamientos-api/internal/domain/repository"
)

// EmployeeUseCase integración de empleados: alta, conclusión de la integración,
// desvinculación y consulta.
type EmployeeUseCase struct {
	txRunner accommodation.TxRunner
	repo     repository.EmployeeRepository
	audit    audit.Recorder
}

// NewEmployeeUseCase construye el caso de uso. Toda escritura del empleado pasa por
// txRunner, bajo el mismo bloqueo de fila que las asignaciones.
func NewEmployeeUseCase(txRunner accommodation.TxRunner, repo repository.EmployeeRepository, rec audit.Recorder) *EmployeeUseCase {
	if rec == nil {
		rec = audit.Nop{}
	}
	return &EmployeeUseCase{txRunner: txRunner, repo: repo, audit: rec}
}

// Create registra un empleado en PENDIENTE_INTEGRACION, sin alojamiento.
func (uc *EmployeeUseCase) Create(ctx context.Context, unitID, actorID string, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	now := time.Now()
	emp := &entity.Employee{
		ID:          uuid.New().String(),
		UnitID:      unitID,
		Name:        in.Name,
		Document:    in.Document,
		JobTitle:    in.JobTitle,
		Status:      entity.EmployeeStatusPendingIntegration,
		Active:      true,
		ArrivalDate: in.ArrivalDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, emp); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, "employees", emp.ID, entity.AuditCreate, actorID, nil, emp)
	return accommodation.ToEmployeeResponse(emp), nil
}

// GetByID obtiene un empleado de la unidad.
func (uc *EmployeeUseCase) GetByID(ctx context.Context, unitID, id string) (*dto.EmployeeResponse, error) {
	emp, err := uc.owned(ctx, unitID, id)
	if err != nil {
		return nil, err
	}
	return accommodation.ToEmployeeResponse(emp), nil
}

// Update modifica datos personales. Asignación, unidad y estado tienen operaciones propias;
// la fila se relee bloqueada para no pisar una asignación o un traslado confirmados entre medio.
func (uc *EmployeeUseCase) Update(ctx context.Context, unitID, actorID, id string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	before, after, err := uc.mutate(ctx, unitID, id, func(emp *entity.Employee) error {
		if in.Name != nil {
			emp.Name = *in.Name
		}
		if in.Document != nil {
			emp.Document = *in.Document
		}
		if in.JobTitle != nil {
			emp.JobTitle = *in.JobTitle
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, "employees", after.ID, entity.AuditUpdate, actorID, before, after)
	return accommodation.ToEmployeeResponse(&after), nil
}

// Integrate concluye la integración: PENDIENTE_INTEGRACION → INTEGRADO.
func (uc *EmployeeUseCase) Integrate(ctx context.Context, unitID, actorID, id string, in dto.IntegrateRequest) (*dto.EmployeeResponse, error) {
	before, after, err := uc.mutate(ctx, unitID, id, func(emp *entity.Employee) error {
		if emp.Status != entity.EmployeeStatusPendingIntegration {
			return domain.ErrConflict
		}
		arrival := in.ArrivalDate
		emp.Status = entity.EmployeeStatusIntegrated
		emp.ArrivalDate = &arrival
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, "employees", after.ID, entity.AuditUpdate, actorID, before, after)
	return accommodation.ToEmployeeResponse(&after), nil
}

// mutate aplica change sobre la fila bloqueada del empleado, en la misma transacción
// que las asignaciones.
func (uc *EmployeeUseCase) mutate(ctx context.Context, unitID, id string, change func(*entity.Employee) error) (before, after entity.Employee, err error) {
	err = uc.txRunner.RunAssignment(ctx, func(
		_ repository.AccommodationRepository,
		_ repository.RoomRepository,
		empRepo repository.EmployeeRepository,
	) error {
		emp, err := empRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if emp.UnitID != unitID {
			return domain.ErrForbidden
		}
		before = *emp
		if err := change(emp); err != nil {
			return err
		}
		emp.UpdatedAt = time.Now()
		if err := empRepo.Update(ctx, emp); err != nil {
			return err
		}
		after = *emp
		return nil
	})
	return before, after, err
}

// Dismiss desvincula al empleado: queda inactivo y libera su plaza en la misma transacción.
func (uc *EmployeeUseCase) Dismiss(ctx context.Context, unitID, actorID, id string, in dto.DismissRequest) (*dto.EmployeeResponse, error) {
	before, after, err := uc.mutate(ctx, unitID, id, func(emp *entity.Employee) error {
		if emp.Status == entity.EmployeeStatusDismissed {
			return domain.ErrConflict
		}
		departure := in.DepartureDate
		emp.Status = entity.EmployeeStatusDismissed
		emp.Active = false
		emp.AccommodationID = nil
		emp.RoomID = nil
		emp.DepartureDate = &departure
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, "employees", after.ID, entity.AuditUpdate, actorID, before, after)
	return accommodation.ToEmployeeResponse(&after), nil
}

// List lista empleados de la unidad con filtros.
func (uc *EmployeeUseCase) List(ctx context.Context, filter repository.EmployeeFilter) (*dto.EmployeeListResponse, error) {
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *accommodation.ToEmployeeResponse(e))
	}
	return &dto.EmployeeListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

func (uc *EmployeeUseCase) owned(ctx context.Context, unitID, id string) (*entity.Employee, error) {
	emp, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if emp.UnitID != unitID {
		return nil, domain.ErrForbidden
	}
	return emp, nil
}
