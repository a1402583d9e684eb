package ports

import (
	"context"

	"github.com/jhoicas/Alojamientos-api/internal/application/dto"
)

// ReportRenderer define el puerto de salida para documentos PDF.
// La aplicación solo arma los datos; el adaptador decide el layout.
type ReportRenderer interface {
	RenderOccupancy(ctx context.Context, data *dto.OccupancyReport) ([]byte, error)
	RenderWithdrawalReceipt(ctx context.Context, data *dto.WithdrawalReceipt) ([]byte, error)
}
