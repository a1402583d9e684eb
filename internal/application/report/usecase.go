// Package report arma los datos de los documentos PDF (informe de ocupación y
// comprobante de retiros) y delega el layout al adaptador de PDF.
package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Alojamientos-api/internal/application/accommodation"
	"github.com/jhoicas/Alojamientos-api/internal/application/dto"
	"github.com/jhoicas/Alojamientos-api/internal/application/ports"
	"github.com/jhoicas/Alojamientos-api/internal/application/stock"
	"github.com/jhoicas/Alojamientos-api/internal/domain"
	"github.com/jhoicas/Alojamientos-api/internal/domain/entity"
	"github.com/jhoicas/Alojamientos-api/internal/domain/repository"
)

const maxReceiptLines = 500

// UseCase genera los PDF. Las lecturas independientes se hacen en paralelo.
type UseCase struct {
	assignments *accommodation.AssignmentUseCase
	unitRepo    repository.UnitRepository
	empRepo     repository.EmployeeRepository
	productRepo repository.ProductRepository
	movRepo     repository.ProductMovementRepository
	renderer    ports.ReportRenderer
	now         func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	assignments *accommodation.AssignmentUseCase,
	unitRepo repository.UnitRepository,
	empRepo repository.EmployeeRepository,
	productRepo repository.ProductRepository,
	movRepo repository.ProductMovementRepository,
	renderer ports.ReportRenderer,
) *UseCase {
	return &UseCase{
		assignments: assignments,
		unitRepo:    unitRepo,
		empRepo:     empRepo,
		productRepo: productRepo,
		movRepo:     movRepo,
		renderer:    renderer,
		now:         time.Now,
	}
}

// OccupancyPDF informe de ocupación del alojamiento con la lista de ocupantes.
func (uc *UseCase) OccupancyPDF(ctx context.Context, unitID, accommodationID string) ([]byte, error) {
	var (
		occ       *dto.OccupancyResponse
		unit      *entity.Unit
		occupants []*entity.Employee
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		occ, err = uc.assignments.Occupancy(gctx, unitID, accommodationID)
		return err
	})
	g.Go(func() error {
		var err error
		unit, err = uc.unitRepo.GetByID(gctx, unitID)
		return err
	})
	g.Go(func() error {
		var err error
		occupants, err = uc.empRepo.List(gctx, repository.EmployeeFilter{
			UnitID:          unitID,
			AccommodationID: accommodationID,
			OnlyActive:      true,
			Limit:           1000,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	data := &dto.OccupancyReport{
		UnitName:    unit.Name,
		GeneratedAt: uc.now(),
		Occupancy:   *occ,
		Occupants:   make([]dto.EmployeeResponse, 0, len(occupants)),
	}
	for _, e := range occupants {
		data.Occupants = append(data.Occupants, *accommodation.ToEmployeeResponse(e))
	}
	return uc.renderer.RenderOccupancy(ctx, data)
}

// WithdrawalReceiptPDF comprobante de retiros del empleado con el total pendiente.
func (uc *UseCase) WithdrawalReceiptPDF(ctx context.Context, unitID, employeeID string) ([]byte, error) {
	emp, err := uc.empRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if emp.UnitID != unitID {
		return nil, domain.ErrForbidden
	}
	var (
		unit *entity.Unit
		movs []*entity.ProductMovement
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		unit, err = uc.unitRepo.GetByID(gctx, unitID)
		return err
	})
	g.Go(func() error {
		var err error
		movs, err = uc.movRepo.List(gctx, repository.MovementFilter{EmployeeID: employeeID, Limit: maxReceiptLines})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Un producto por goroutine, con límite de concurrencia.
	products := make([]*entity.Product, len(movs))
	pg, pctx := errgroup.WithContext(ctx)
	pg.SetLimit(8)
	for i, m := range movs {
		pg.Go(func() error {
			p, err := uc.productRepo.GetByID(pctx, m.ProductID)
			if err != nil {
				return err
			}
			products[i] = p
			return nil
		})
	}
	if err := pg.Wait(); err != nil {
		return nil, err
	}

	data := &dto.WithdrawalReceipt{
		UnitName:    unit.Name,
		GeneratedAt: uc.now(),
		Employee:    *accommodation.ToEmployeeResponse(emp),
		Outstanding: decimal.Zero,
	}
	for i, m := range movs {
		p := products[i]
		line := *stock.ToMovementResponse(m)
		data.Lines = append(data.Lines, dto.ReceiptLine{
			ProductCode:  p.Code,
			ProductName:  p.Name,
			UnitMeasure:  p.UnitMeasure,
			Quantity:     line.Quantity,
			MovementDate: line.MovementDate,
			Status:       line.Status,
		})
		if m.IsOutstanding() {
			data.Outstanding = data.Outstanding.Add(m.Quantity)
		}
	}
	return uc.renderer.RenderWithdrawalReceipt(ctx, data)
}
