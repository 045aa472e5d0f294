// Package report agrega pedidos y gastos persistidos en reportes por socio y exportaciones.
// El reparto se recalcula desde el snapshot de cada pedido con el motor de profit.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Ganancias-api/internal/application/dto"
	"github.com/jhoicas/Ganancias-api/internal/domain"
	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
	"github.com/jhoicas/Ganancias-api/internal/domain/pricing"
	"github.com/jhoicas/Ganancias-api/internal/domain/profit"
	"github.com/jhoicas/Ganancias-api/internal/domain/repository"
)

const dayLayout = "2006-01-02"

// Range período de un reporte: From al inicio del día, To al final del día (inclusivo).
type Range struct {
	From time.Time
	To   time.Time
}

// UseCase reportes y exportaciones.
type UseCase struct {
	orders   repository.OrderRepository
	expenses repository.ExpenseRepository
	partners profit.Participants
	pdf      EarningsPDFGenerator
	loc      *time.Location
	now      func() time.Time
}

// NewUseCase construye el caso de uso. pdf puede ser nil si no se exporta a PDF.
func NewUseCase(
	orders repository.OrderRepository,
	expenses repository.ExpenseRepository,
	partners profit.Participants,
	pdf EarningsPDFGenerator,
	loc *time.Location,
) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &UseCase{orders: orders, expenses: expenses, partners: partners, pdf: pdf, loc: loc, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// ParseRange interpreta fechas YYYY-MM-DD en la zona de la tienda.
// Sin from: primer día del mes en curso. Sin to: hoy.
func (uc *UseCase) ParseRange(from, to string) (Range, error) {
	today := uc.now().In(uc.loc)
	y, m, dd := today.Date()
	r := Range{
		From: time.Date(y, m, 1, 0, 0, 0, 0, uc.loc),
		To:   endOfDay(time.Date(y, m, dd, 0, 0, 0, 0, uc.loc)),
	}
	if from != "" {
		t, err := time.ParseInLocation(dayLayout, from, uc.loc)
		if err != nil {
			return Range{}, fmt.Errorf("%w: fecha inválida %q (se espera YYYY-MM-DD)", domain.ErrInvalidInput, from)
		}
		r.From = t
	}
	if to != "" {
		t, err := time.ParseInLocation(dayLayout, to, uc.loc)
		if err != nil {
			return Range{}, fmt.Errorf("%w: fecha inválida %q (se espera YYYY-MM-DD)", domain.ErrInvalidInput, to)
		}
		r.To = endOfDay(t)
	}
	if r.From.After(r.To) {
		return Range{}, fmt.Errorf("%w: el inicio del período es posterior al fin", domain.ErrInvalidInput)
	}
	return r, nil
}

func endOfDay(t time.Time) time.Time {
	return t.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// Earnings reporte de ganancias del período: totales del negocio y parte de cada socio
// antes y después de gastos.
func (uc *UseCase) Earnings(ctx context.Context, r Range) (*dto.EarningsReportResponse, error) {
	orders, err := uc.orders.ListByDateRange(ctx, r.From, r.To)
	if err != nil {
		return nil, fmt.Errorf("listar pedidos: %w", err)
	}
	expenses, err := uc.expenses.ListByDateRange(ctx, r.From, r.To)
	if err != nil {
		return nil, fmt.Errorf("listar gastos: %w", err)
	}

	rep := &dto.EarningsReportResponse{
		From:        r.From.Format(dayLayout),
		To:          r.To.Format(dayLayout),
		OrdersCount: len(orders),
	}
	owners := newOwnerTotals(uc.partners.Owners())

	for _, o := range orders {
		rep.Revenue = rep.Revenue.Add(o.Total)
		rep.Subtotal = rep.Subtotal.Add(o.Subtotal)
		rep.ShippingCost = rep.ShippingCost.Add(o.ShippingCost)
		rep.PaymentFees = rep.PaymentFees.Add(o.PaymentFees)
		rep.Discounts = rep.Discounts.Add(o.DiscountAmount)
		rep.NetProfit = rep.NetProfit.Add(o.NetProfit)

		res := profit.Distribute(o.Items, pricing.SharedCostsOf(o))
		for _, s := range res.Shares {
			t := owners.get(s.Owner)
			t.NetProfit = t.NetProfit.Add(s.NetProfit)
			t.ProductCost = t.ProductCost.Add(s.ProductCost)
		}
		for _, it := range o.Items {
			owners.get(it.Product.Owner).ItemsSold += it.Quantity
		}
	}

	for _, e := range expenses {
		rep.TotalExpenses = rep.TotalExpenses.Add(e.Amount)
		// Los porcentajes explícitos solo admiten socios configurados: el orden de ownerTotals no depende del mapa.
		for owner, amt := range uc.partners.SplitExpense(*e) {
			t := owners.get(owner)
			t.Expenses = t.Expenses.Add(amt)
		}
	}

	rep.Owners = owners.list()
	return rep, nil
}

// EarningsPDF genera el PDF del reporte.
func (uc *UseCase) EarningsPDF(ctx context.Context, r Range) (pdfBytes []byte, filename string, err error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("%w: exportación PDF no configurada", domain.ErrConflict)
	}
	rep, err := uc.Earnings(ctx, r)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.pdf.GenerateEarningsPDF(ctx, rep)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("ganancias_%s_%s.pdf", rep.From, rep.To), nil
}

// ownerTotals acumula por socio conservando el orden: socios configurados primero,
// luego cualquier dueño desconocido en orden de aparición.
type ownerTotals struct {
	order []entity.Owner
	byKey map[entity.Owner]*dto.OwnerEarningsDTO
}

func newOwnerTotals(partners []entity.Owner) *ownerTotals {
	t := &ownerTotals{byKey: make(map[entity.Owner]*dto.OwnerEarningsDTO)}
	for _, p := range partners {
		t.get(p)
	}
	return t
}

func (t *ownerTotals) get(o entity.Owner) *dto.OwnerEarningsDTO {
	if x, ok := t.byKey[o]; ok {
		return x
	}
	x := &dto.OwnerEarningsDTO{Owner: string(o)}
	t.byKey[o] = x
	t.order = append(t.order, o)
	return x
}

func (t *ownerTotals) list() []dto.OwnerEarningsDTO {
	out := make([]dto.OwnerEarningsDTO, 0, len(t.order))
	for _, o := range t.order {
		x := *t.byKey[o]
		x.TotalEarnings = x.NetProfit.Add(x.ProductCost)
		x.NetAfterExpenses = x.NetProfit.Sub(x.Expenses)
		out = append(out, x)
	}
	return out
}
