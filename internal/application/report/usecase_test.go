package report_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Alojamientos-api/internal/application/accommodation"
	"github.com/jhoicas/Alojamientos-api/internal/application/dto"
	"github.com/jhoicas/Alojamientos-api/internal/application/report"
	"github.com/jhoicas/Alojamientos-api/internal/application/stock"
	"github.com/jhoicas/Alojamientos-api/internal/domain"
	"github.com/jhoicas/Alojamientos-api/internal/testutil/memstore"
)

// captureRenderer guarda los datos recibidos en lugar de dibujar el PDF.
type captureRenderer struct {
	occupancy *dto.OccupancyReport
	receipt   *dto.WithdrawalReceipt
}

func (r *captureRenderer) RenderOccupancy(_ context.Context, data *dto.OccupancyReport) ([]byte, error) {
	r.occupancy = data
	return []byte("%PDF-fake"), nil
}

func (r *captureRenderer) RenderWithdrawalReceipt(_ context.Context, data *dto.WithdrawalReceipt) ([]byte, error) {
	r.receipt = data
	return []byte("%PDF-fake"), nil
}

func TestOccupancyPDF_IncluyeOcupantes(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	unit := s.SeedUnit("U1")
	acc := s.SeedAccommodation(unit.ID, "Casa", 3)
	assignments := accommodation.NewAssignmentUseCase(s, s.Accommodations(), s.Rooms(), s.Employees(), nil)
	for _, name := range []string{"A", "B"} {
		e := s.SeedEmployee(unit.ID, name)
		_, err := assignments.AssignAccommodation(ctx, accommodation.AssignInput{UnitID: unit.ID, EmployeeID: e.ID, AccommodationID: acc.ID})
		require.NoError(t, err)
	}
	s.SeedEmployee(unit.ID, "Sin plaza")

	r := &captureRenderer{}
	uc := report.NewUseCase(assignments, s.Units(), s.Employees(), s.Products(), s.Movements(), r)

	out, err := uc.OccupancyPDF(ctx, unit.ID, acc.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	require.NotNil(t, r.occupancy)
	assert.Equal(t, unit.Name, r.occupancy.UnitName)
	assert.Equal(t, 2, r.occupancy.Occupancy.Occupied)
	assert.Equal(t, 1, r.occupancy.Occupancy.Free)
	assert.Len(t, r.occupancy.Occupants, 2)

	other := s.SeedUnit("U2")
	_, err = uc.OccupancyPDF(ctx, other.ID, acc.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestWithdrawalReceiptPDF_TotalPendiente(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	unit := s.SeedUnit("U1")
	emp := s.SeedEmployee(unit.ID, "A")
	guante := s.SeedProduct("GUANTE", decimal.NewFromInt(10))
	casco := s.SeedProduct("CASCO", decimal.NewFromInt(10))

	ledger := stock.NewLedgerUseCase(s, s.Products(), s.Movements(), s.Employees(), nil)
	withdraw := func(productID string, qty int64) string {
		out, err := ledger.Withdraw(ctx, stock.WithdrawInput{UnitID: unit.ID, EmployeeID: emp.ID, ProductID: productID, Quantity: decimal.NewFromInt(qty)})
		require.NoError(t, err)
		return out.ID
	}
	withdraw(guante.ID, 2)
	returned := withdraw(casco.ID, 1)
	withdraw(casco.ID, 3)
	_, err := ledger.ReturnMovement(ctx, stock.ReturnInput{UnitID: unit.ID, MovementID: returned})
	require.NoError(t, err)

	r := &captureRenderer{}
	uc := report.NewUseCase(nil, s.Units(), s.Employees(), s.Products(), s.Movements(), r)
	_, err = uc.WithdrawalReceiptPDF(ctx, unit.ID, emp.ID)
	require.NoError(t, err)

	require.NotNil(t, r.receipt)
	assert.Len(t, r.receipt.Lines, 3)
	assert.True(t, r.receipt.Outstanding.Equal(decimal.NewFromInt(5)), "pendiente: %s", r.receipt.Outstanding)
	codes := map[string]bool{}
	for _, l := range r.receipt.Lines {
		codes[l.ProductCode] = true
	}
	assert.True(t, codes["GUANTE"] && codes["CASCO"])

	other := s.SeedUnit("U2")
	_, err = uc.WithdrawalReceiptPDF(ctx, other.ID, emp.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
