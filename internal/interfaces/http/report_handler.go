package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ganancias-api/internal/application/report"
)

const (
	mimeCSV = "text/csv; charset=utf-8"
	mimePDF = "application/pdf"
)

// ReportHandler reporte de ganancias y exportaciones CSV.
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func (h *ReportHandler) rangeOf(c *fiber.Ctx) (report.Range, error) {
	return h.uc.ParseRange(c.Query("from"), c.Query("to"))
}

// Earnings godoc
// @Summary      Reporte de ganancias por socio
// @Description  Sin fechas: desde el primer día del mes hasta hoy.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "YYYY-MM-DD"
// @Param        to    query  string  false  "YYYY-MM-DD"
// @Success      200   {object}  dto.EarningsReportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/earnings [get]
func (h *ReportHandler) Earnings(c *fiber.Ctx) error {
	r, err := h.rangeOf(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Earnings(c.UserContext(), r)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// EarningsPDF godoc
// @Summary      Reporte de ganancias en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        from  query  string  false  "YYYY-MM-DD"
// @Param        to    query  string  false  "YYYY-MM-DD"
// @Success      200   {file}  binary
// @Router       /api/reports/earnings.pdf [get]
func (h *ReportHandler) EarningsPDF(c *fiber.Ctx) error {
	return h.download(c, mimePDF, h.uc.EarningsPDF)
}

// EarningsCSV godoc
// @Summary      Reporte de ganancias en CSV
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Param        from  query  string  false  "YYYY-MM-DD"
// @Param        to    query  string  false  "YYYY-MM-DD"
// @Success      200   {file}  binary
// @Router       /api/reports/earnings.csv [get]
func (h *ReportHandler) EarningsCSV(c *fiber.Ctx) error {
	return h.download(c, mimeCSV, h.uc.EarningsCSV)
}

// OrdersCSV godoc
// @Summary      Exportar pedidos en CSV
// @Tags         exports
// @Security     Bearer
// @Produce      text/csv
// @Param        from  query  string  false  "YYYY-MM-DD"
// @Param        to    query  string  false  "YYYY-MM-DD"
// @Success      200   {file}  binary
// @Router       /api/exports/orders.csv [get]
func (h *ReportHandler) OrdersCSV(c *fiber.Ctx) error {
	return h.download(c, mimeCSV, h.uc.OrdersCSV)
}

// ExpensesCSV godoc
// @Summary      Exportar gastos en CSV
// @Tags         exports
// @Security     Bearer
// @Produce      text/csv
// @Param        from  query  string  false  "YYYY-MM-DD"
// @Param        to    query  string  false  "YYYY-MM-DD"
// @Success      200   {file}  binary
// @Router       /api/exports/expenses.csv [get]
func (h *ReportHandler) ExpensesCSV(c *fiber.Ctx) error {
	return h.download(c, mimeCSV, h.uc.ExpensesCSV)
}

func (h *ReportHandler) download(c *fiber.Ctx, mime string, fn func(context.Context, report.Range) ([]byte, string, error)) error {
	r, err := h.rangeOf(c)
	if err != nil {
		return respondError(c, err)
	}
	body, filename, err := fn(c.UserContext(), r)
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, mime, filename, body)
}
