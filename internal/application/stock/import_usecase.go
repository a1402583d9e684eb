package stock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Alojamientos-api/internal/application/audit"
	"github.com/jhoicas/Alojamientos-api/internal/application/dto"
	"github.com/jhoicas/Alojamientos-api/internal/application/ports"
	"github.com/jhoicas/Alojamientos-api/internal/domain"
	"github.com/jhoicas/Alojamientos-api/internal/domain/entity"
	"github.com/jhoicas/Alojamientos-api/internal/domain/repository"
	ledger "github.com/jhoicas/Alojamientos-api/internal/domain/stock"
)

// ImportEntryUseCase ingresa mercadería a partir del XML de una factura de compra.
// Productos desconocidos se crean por código; los existentes incrementan su disponible.
// Una factura ya importada (mismo digest canónico) se rechaza con domain.ErrDuplicate.
type ImportEntryUseCase struct {
	txRunner TxRunner
	parser   ports.InvoiceParser
	audit    audit.Recorder
	now      func() time.Time
}

// NewImportEntryUseCase construye el caso de uso.
func NewImportEntryUseCase(txRunner TxRunner, parser ports.InvoiceParser, rec audit.Recorder) *ImportEntryUseCase {
	if rec == nil {
		rec = audit.Nop{}
	}
	return &ImportEntryUseCase{txRunner: txRunner, parser: parser, audit: rec, now: time.Now}
}

// Import procesa el XML completo en una sola transacción.
func (uc *ImportEntryUseCase) Import(ctx context.Context, actorID string, xmlData []byte) (*dto.ProductEntryResponse, error) {
	if len(xmlData) == 0 {
		return nil, domain.ErrInvalidInput
	}
	inv, err := uc.parser.Parse(xmlData)
	if err != nil {
		return nil, errors.Join(domain.ErrInvalidInput, err)
	}
	if len(inv.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, l := range inv.Lines {
		if l.Code == "" || !l.Quantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
	}

	now := uc.now()
	entry := &entity.ProductEntry{
		ID:            uuid.New().String(),
		InvoiceNumber: inv.Number,
		Supplier:      inv.Supplier,
		IssuedAt:      inv.IssuedAt,
		Digest:        inv.Digest,
		CreatedBy:     actorID,
		CreatedAt:     now,
	}
	created := 0
	err = uc.txRunner.RunLedger(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.ProductMovementRepository,
		entryRepo repository.ProductEntryRepository,
		_ repository.EmployeeRepository,
	) error {
		// Un digest repetido falla al insertar la entrada y revierte los incrementos.
		for _, l := range inv.Lines {
			product, err := productRepo.GetByCodeForUpdate(ctx, l.Code)
			switch {
			case errors.Is(err, domain.ErrNotFound):
				product = &entity.Product{
					ID:          uuid.New().String(),
					Code:        l.Code,
					Name:        l.Name,
					UnitMeasure: l.UnitMeasure,
					Quantity:    l.Quantity,
					UnitValue:   l.UnitValue,
					Active:      true,
					CreatedAt:   now,
					UpdatedAt:   now,
				}
				if err := productRepo.Create(ctx, product); err != nil {
					return err
				}
				created++
			case err != nil:
				return err
			default:
				available, err := ledger.Receive(product.Quantity, l.Quantity)
				if err != nil {
					return err
				}
				if l.UnitValue.IsPositive() {
					product.UnitValue = ledger.WeightedUnitValue(product.Quantity, product.UnitValue, l.Quantity, l.UnitValue)
					product.UpdatedAt = now
					if err := productRepo.Update(ctx, product); err != nil {
						return err
					}
				}
				if err := productRepo.UpdateQuantity(ctx, product.ID, available); err != nil {
					return err
				}
			}
			entry.Lines = append(entry.Lines, entity.ProductEntryLine{
				ProductID:   product.ID,
				ProductCode: product.Code,
				Quantity:    l.Quantity,
				UnitValue:   l.UnitValue,
			})
		}
		return entryRepo.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, "product_entries", entry.ID, entity.AuditCreate, actorID, nil, entry)
	return &dto.ProductEntryResponse{
		ID:              entry.ID,
		InvoiceNumber:   entry.InvoiceNumber,
		Supplier:        entry.Supplier,
		IssuedAt:        entry.IssuedAt,
		Lines:           len(entry.Lines),
		CreatedProducts: created,
		Digest:          entry.Digest,
	}, nil
}
