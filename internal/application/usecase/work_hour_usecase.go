package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Alojamientos-api/internal/application/dto"
	"github.com/jhoicas/Alojamientos-api/internal/domain"
	"github.com/jhoicas/Alojamientos-api/internal/domain/entity"
	"github.com/jhoicas/Alojamientos-api/internal/domain/repository"
)

// WorkHourUseCase registro de horas trabajadas por empleado.
type WorkHourUseCase struct {
	repo    repository.WorkHourRepository
	empRepo repository.EmployeeRepository
}

// NewWorkHourUseCase construye el caso de uso.
func NewWorkHourUseCase(repo repository.WorkHourRepository, empRepo repository.EmployeeRepository) *WorkHourUseCase {
	return &WorkHourUseCase{repo: repo, empRepo: empRepo}
}

var maxDailyHours = decimal.NewFromInt(24)

// Log registra horas (0 < horas <= 24) para un empleado activo de la unidad.
func (uc *WorkHourUseCase) Log(ctx context.Context, unitID, actorID, employeeID string, in dto.LogWorkHoursRequest) (*dto.WorkHourResponse, error) {
	if !in.Hours.IsPositive() || in.Hours.GreaterThan(maxDailyHours) {
		return nil, domain.ErrInvalidInput
	}
	emp, err := uc.empRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if emp.UnitID != unitID {
		return nil, domain.ErrForbidden
	}
	if !emp.Active {
		return nil, domain.ErrConflict
	}
	entry := &entity.WorkHourEntry{
		ID:          uuid.New().String(),
		EmployeeID:  emp.ID,
		WorkDate:    in.WorkDate,
		Hours:       in.Hours,
		Description: in.Description,
		CreatedBy:   actorID,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return toWorkHourResponse(entry), nil
}

// ListByEmployee devuelve los registros del período [from, to] y su total.
func (uc *WorkHourUseCase) ListByEmployee(ctx context.Context, unitID, employeeID string, from, to *time.Time) (*dto.WorkHourSummaryResponse, error) {
	emp, err := uc.empRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if emp.UnitID != unitID {
		return nil, domain.ErrForbidden
	}
	list, err := uc.repo.ListByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	out := &dto.WorkHourSummaryResponse{EmployeeID: employeeID, Total: decimal.Zero}
	out.Items = make([]dto.WorkHourResponse, 0, len(list))
	for _, e := range list {
		out.Total = out.Total.Add(e.Hours)
		out.Items = append(out.Items, *toWorkHourResponse(e))
	}
	return out, nil
}

func toWorkHourResponse(e *entity.WorkHourEntry) *dto.WorkHourResponse {
	return &dto.WorkHourResponse{
		ID:          e.ID,
		EmployeeID:  e.EmployeeID,
		WorkDate:    e.WorkDate,
		Hours:       e.Hours,
		Description: e.Description,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
	}
}
