package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Alojamientos-api/internal/application/dto"
	"github.com/jhoicas/Alojamientos-api/internal/domain/entity"
)

var issued = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

func TestRenderOccupancy_GeneraPDF(t *testing.T) {
	data := &dto.OccupancyReport{
		UnitName:    "Unidad Norte",
		GeneratedAt: issued,
		Occupancy: dto.OccupancyResponse{
			AccommodationID: "a1",
			Name:            "Casa 1",
			Capacity:        2,
			Occupied:        3,
			Free:            0,
			OverCapacity:    true,
			Rooms: []dto.RoomOccupancy{
				{RoomID: "r1", Name: "H1", BedCount: 2, Occupied: 2, Active: true},
				{RoomID: "r2", Name: "H2", BedCount: 1, Occupied: 1, Active: false},
			},
		},
		Occupants: []dto.EmployeeResponse{
			{ID: "e1", Name: "Ana", Document: "123", JobTitle: "Soldadora", Status: entity.EmployeeStatusIntegrated},
			{ID: "e2", Name: "Luis", Document: "456", Status: entity.EmployeeStatusPendingIntegration},
		},
	}

	out, err := NewMarotoReportGenerator().RenderOccupancy(context.Background(), data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "la salida debe ser un PDF")
}

func TestRenderWithdrawalReceipt_GeneraPDF(t *testing.T) {
	data := &dto.WithdrawalReceipt{
		UnitName:    "Unidad Norte",
		GeneratedAt: issued,
		Employee:    dto.EmployeeResponse{ID: "e1", UnitID: "u1", Name: "Ana", Document: "123"},
		Lines: []dto.ReceiptLine{
			{ProductCode: "GUANTE", ProductName: "Guante", UnitMeasure: "PAR", Quantity: decimal.NewFromInt(2), MovementDate: issued, Status: entity.MovementStatusOutstanding},
			{ProductCode: "CASCO", ProductName: "Casco", UnitMeasure: "UN", Quantity: decimal.NewFromInt(1), MovementDate: issued, Status: entity.MovementStatusReturned},
		},
		Outstanding: decimal.NewFromInt(2),
	}

	out, err := NewMarotoReportGenerator().RenderWithdrawalReceipt(context.Background(), data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

// Un comprobante sin líneas se genera igual (empleado sin retiros).
func TestRenderWithdrawalReceipt_SinLineas(t *testing.T) {
	out, err := NewMarotoReportGenerator().RenderWithdrawalReceipt(context.Background(), &dto.WithdrawalReceipt{
		UnitName:    "U",
		GeneratedAt: issued,
		Employee:    dto.EmployeeResponse{ID: "e1", Name: "Ana"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
