package report

import (
	"context"

	"github.com/jhoicas/Ganancias-api/internal/application/dto"
)

// EarningsPDFGenerator puerto para generar el PDF del reporte de ganancias (infra: maroto).
type EarningsPDFGenerator interface {
	GenerateEarningsPDF(ctx context.Context, report *dto.EarningsReportResponse) ([]byte, error)
}
