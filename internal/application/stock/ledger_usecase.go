// Package stock implementa el libro de stock: retiros de producto por empleados,
// su edición, su devolución y la entrada de mercadería por factura.
package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Alojamientos-api/internal/application/audit"
	"github.com/jhoicas/Alojamientos-api/internal/application/dto"
	"github.com/jhoicas/Alojamientos-api/internal/application/retry"
	"github.com/jhoicas/Alojamientos-api/internal/domain"
	"github.com/jhoicas/Alojamientos-api/internal/domain/entity"
	"github.com/jhoicas/Alojamientos-api/internal/domain/repository"
	ledger "github.com/jhoicas/Alojamientos-api/internal/domain/stock"
)

// LedgerUseCase mantiene el invariante: disponible + Σ pendientes == stock total conocido.
// Cada operación bloquea la fila del producto (SELECT FOR UPDATE) antes de leer el disponible,
// de modo que dos retiros concurrentes nunca dejan el stock negativo.
type LedgerUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.ProductMovementRepository
	empRepo     repository.EmployeeRepository
	audit       audit.Recorder
	retry       retry.Policy
	now         func() time.Time
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movRepo repository.ProductMovementRepository,
	empRepo repository.EmployeeRepository,
	rec audit.Recorder,
) *LedgerUseCase {
	if rec == nil {
		rec = audit.Nop{}
	}
	return &LedgerUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		movRepo:     movRepo,
		empRepo:     empRepo,
		audit:       rec,
		retry:       retry.DefaultPolicy,
		now:         time.Now,
	}
}

// WithdrawInput entrada de un retiro.
type WithdrawInput struct {
	UnitID       string
	ActorID      string
	EmployeeID   string
	ProductID    string
	Quantity     decimal.Decimal
	MovementDate *time.Time
	Observation  string
}

// UpdateMovementInput edición de un movimiento pendiente. Solo cantidad, fecha y observación son editables.
type UpdateMovementInput struct {
	UnitID       string
	ActorID      string
	MovementID   string
	Quantity     decimal.Decimal
	MovementDate *time.Time
	Observation  *string
}

// ReturnInput devolución de un movimiento.
type ReturnInput struct {
	UnitID     string
	ActorID    string
	MovementID string
	ReturnDate *time.Time
}

// Withdraw descuenta quantity del producto y crea un movimiento pendiente.
func (uc *LedgerUseCase) Withdraw(ctx context.Context, in WithdrawInput) (*dto.MovementResponse, error) {
	if in.EmployeeID == "" || in.ProductID == "" || !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	date := now
	if in.MovementDate != nil {
		date = *in.MovementDate
	}
	var mov *entity.ProductMovement
	err := uc.txRunner.RunLedger(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.ProductMovementRepository,
		_ repository.ProductEntryRepository,
		empRepo repository.EmployeeRepository,
	) error {
		// Orden de bloqueo: empleado → producto. Una desvinculación o un traslado
		// confirmados antes quedan visibles aquí.
		emp, err := empRepo.GetForUpdate(ctx, in.EmployeeID)
		if err != nil {
			return err
		}
		if emp.UnitID != in.UnitID {
			return domain.ErrForbidden
		}
		if !emp.Active {
			return domain.ErrConflict
		}
		product, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if !product.Active {
			return domain.ErrResourceInactive
		}
		available, err := ledger.Withdraw(product.Quantity, in.Quantity)
		if err != nil {
			return err
		}
		if err := productRepo.UpdateQuantity(ctx, product.ID, available); err != nil {
			return err
		}
		mov = &entity.ProductMovement{
			ID:           uuid.New().String(),
			EmployeeID:   emp.ID,
			ProductID:    product.ID,
			Quantity:     in.Quantity,
			MovementDate: date,
			Observation:  in.Observation,
			Active:       true,
			CreatedBy:    in.ActorID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return movRepo.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, "product_movements", mov.ID, entity.AuditCreate, in.ActorID, nil, mov)
	return ToMovementResponse(mov), nil
}

// UpdateMovement edita un movimiento pendiente reconciliando el stock:
// restaura la cantidad anterior y retira la nueva en la misma transacción.
func (uc *LedgerUseCase) UpdateMovement(ctx context.Context, in UpdateMovementInput) (*dto.MovementResponse, error) {
	if in.MovementID == "" || !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	var before, after entity.ProductMovement
	err := uc.txRunner.RunLedger(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.ProductMovementRepository,
		_ repository.ProductEntryRepository,
		empRepo repository.EmployeeRepository,
	) error {
		mov, err := lockOwnedMovement(ctx, movRepo, empRepo, in.UnitID, in.MovementID)
		if err != nil {
			return err
		}
		before = *mov
		if !mov.IsOutstanding() {
			return domain.ErrAlreadyReturned
		}
		product, err := productRepo.GetForUpdate(ctx, mov.ProductID)
		if err != nil {
			return err
		}
		if !mov.Quantity.Equal(in.Quantity) {
			available, err := ledger.Reconcile(product.Quantity, mov.Quantity, in.Quantity)
			if err != nil {
				return err
			}
			if err := productRepo.UpdateQuantity(ctx, product.ID, available); err != nil {
				return err
			}
			mov.Quantity = in.Quantity
		}
		if in.MovementDate != nil {
			mov.MovementDate = *in.MovementDate
		}
		if in.Observation != nil {
			mov.Observation = *in.Observation
		}
		mov.UpdatedAt = uc.now()
		if err := movRepo.Update(ctx, mov); err != nil {
			return err
		}
		after = *mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, "product_movements", after.ID, entity.AuditUpdate, in.ActorID, before, after)
	return ToMovementResponse(&after), nil
}

// ReturnMovement reintegra el stock de un movimiento pendiente exactamente una vez.
// Una segunda llamada devuelve domain.ErrAlreadyReturned sin tocar el stock.
func (uc *LedgerUseCase) ReturnMovement(ctx context.Context, in ReturnInput) (*dto.MovementResponse, error) {
	if in.MovementID == "" {
		return nil, domain.ErrInvalidInput
	}
	var before, after entity.ProductMovement
	err := uc.txRunner.RunLedger(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.ProductMovementRepository,
		_ repository.ProductEntryRepository,
		empRepo repository.EmployeeRepository,
	) error {
		mov, err := lockOwnedMovement(ctx, movRepo, empRepo, in.UnitID, in.MovementID)
		if err != nil {
			return err
		}
		before = *mov
		if !mov.IsOutstanding() {
			return domain.ErrAlreadyReturned
		}
		product, err := productRepo.GetForUpdate(ctx, mov.ProductID)
		if err != nil {
			return err
		}
		available, err := ledger.Return(product.Quantity, mov.Quantity)
		if err != nil {
			return err
		}
		if err := productRepo.UpdateQuantity(ctx, product.ID, available); err != nil {
			return err
		}
		now := uc.now()
		returned := now
		if in.ReturnDate != nil {
			returned = *in.ReturnDate
		}
		mov.ReturnDate = &returned
		mov.UpdatedAt = now
		if err := movRepo.Update(ctx, mov); err != nil {
			return err
		}
		after = *mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, "product_movements", after.ID, entity.AuditUpdate, in.ActorID, before, after)
	return ToMovementResponse(&after), nil
}

// ListByEmployee lista los movimientos de un empleado de la unidad.
func (uc *LedgerUseCase) ListByEmployee(ctx context.Context, unitID, employeeID string, onlyOutstanding bool, limit, offset int) (*dto.MovementListResponse, error) {
	emp, err := uc.empRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if emp.UnitID != unitID {
		return nil, domain.ErrForbidden
	}
	return uc.list(ctx, repository.MovementFilter{
		EmployeeID:      employeeID,
		OnlyOutstanding: onlyOutstanding,
		Limit:           limit,
		Offset:          offset,
	})
}

// ListByProduct lista los movimientos de un producto.
func (uc *LedgerUseCase) ListByProduct(ctx context.Context, productID string, onlyOutstanding bool, limit, offset int) (*dto.MovementListResponse, error) {
	return uc.list(ctx, repository.MovementFilter{
		ProductID:       productID,
		OnlyOutstanding: onlyOutstanding,
		Limit:           limit,
		Offset:          offset,
	})
}

func (uc *LedgerUseCase) list(ctx context.Context, f repository.MovementFilter) (*dto.MovementListResponse, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	list, err := retry.Read(ctx, uc.retry, func(ctx context.Context) ([]*entity.ProductMovement, error) {
		return uc.movRepo.List(ctx, f)
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *ToMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}, nil
}

// lockOwnedMovement bloquea el movimiento y comprueba que su empleado pertenezca a la unidad.
func lockOwnedMovement(ctx context.Context, movRepo repository.ProductMovementRepository, empRepo repository.EmployeeRepository, unitID, movementID string) (*entity.ProductMovement, error) {
	mov, err := movRepo.GetForUpdate(ctx, movementID)
	if err != nil {
		return nil, err
	}
	if !mov.Active {
		return nil, domain.ErrNotFound
	}
	emp, err := empRepo.GetByID(ctx, mov.EmployeeID)
	if err != nil {
		return nil, err
	}
	if emp.UnitID != unitID {
		return nil, domain.ErrForbidden
	}
	return mov, nil
}

// ToMovementResponse mapea la entidad al DTO de salida.
func ToMovementResponse(m *entity.ProductMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:           m.ID,
		EmployeeID:   m.EmployeeID,
		ProductID:    m.ProductID,
		Quantity:     m.Quantity,
		MovementDate: m.MovementDate,
		ReturnDate:   m.ReturnDate,
		Status:       m.State().Status(),
		Observation:  m.Observation,
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt,
	}
}
