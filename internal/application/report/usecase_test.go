package report_test

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ganancias-api/internal/application/dto"
	"github.com/jhoicas/Ganancias-api/internal/application/report"
	"github.com/jhoicas/Ganancias-api/internal/domain"
	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
	"github.com/jhoicas/Ganancias-api/internal/domain/pricing"
	"github.com/jhoicas/Ganancias-api/internal/domain/profit"
	"github.com/jhoicas/Ganancias-api/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal, msg ...any) {
	t.Helper()
	assert.True(t, got.Equal(d(want)), append([]any{"esperado %s, obtenido %s", want, got.String()}, msg...)...)
}

var (
	serum = entity.Product{ID: "p1", Name: "Serum", Cost: d("30"), SellingPrice: d("60"), Owner: entity.OwnerYassir}
	cream = entity.Product{ID: "p2", Name: "Cream", Cost: d("20"), SellingPrice: d("35"), Owner: entity.OwnerBasim}
	now   = time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
)

type fakePDF struct{ got *dto.EarningsReportResponse }

func (f *fakePDF) GenerateEarningsPDF(_ context.Context, rep *dto.EarningsReportResponse) ([]byte, error) {
	f.got = rep
	return []byte("%PDF"), nil
}

func saveOrder(t *testing.T, repo *memory.OrderRepo, number, customer string, date time.Time, items []entity.OrderItem, shipping string) {
	t.Helper()
	calc := pricing.CalculateCompleteOrder(pricing.OrderInput{
		Items:                 items,
		ShippingMethod:        &entity.ShippingMethod{ID: "s1", Name: "Aramex", Cost: d(shipping)},
		FreeShippingThreshold: d("200"),
		FreeShipping:          pricing.FreeShippingPolicy{AutoDetect: true},
	})
	o := &entity.Order{OrderNumber: number, CustomerName: customer, Date: date, Items: items,
		ShippingMethod: &entity.ShippingMethod{ID: "s1", Name: "Aramex", Cost: d(shipping)}, Source: entity.OrderSourceManual}
	calc.ApplyTo(o)
	o.Stamp(number, date)
	require.NoError(t, repo.Upsert(context.Background(), o))
}

func saveExpense(t *testing.T, repo *memory.ExpenseRepo, id string, owner entity.Owner, amount string, date time.Time, splits map[entity.Owner]decimal.Decimal) {
	t.Helper()
	e := &entity.Expense{Category: entity.ExpenseMarketing, Description: "gasto " + id, Amount: d(amount), Owner: owner, Splits: splits, Date: date}
	e.Stamp(id, date)
	require.NoError(t, repo.Upsert(context.Background(), e))
}

func newUseCase(t *testing.T, pdf report.EarningsPDFGenerator) *report.UseCase {
	t.Helper()
	orders := memory.NewOrderRepository()
	expenses := memory.NewExpenseRepository()

	march := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 20, 10, 0, 0, 0, time.UTC)
	saveOrder(t, orders, "1001", "Ali, Jr.", march,
		[]entity.OrderItem{{Product: serum, Quantity: 1}, {Product: cream, Quantity: 2}}, "13")
	saveOrder(t, orders, "0900", "Sara", feb, []entity.OrderItem{{Product: serum, Quantity: 1}}, "15")

	saveExpense(t, expenses, "e1", entity.OwnerShared, "100", march, nil)
	saveExpense(t, expenses, "e2", entity.OwnerYassir, "10", march, nil)
	saveExpense(t, expenses, "e3", entity.OwnerShared, "200", march,
		map[entity.Owner]decimal.Decimal{entity.OwnerYassir: d("70"), entity.OwnerBasim: d("30")})
	saveExpense(t, expenses, "e4", entity.OwnerBasim, "999", feb, nil)

	uc := report.NewUseCase(orders, expenses, profit.DefaultParticipants(), pdf, time.UTC)
	return uc.WithClock(func() time.Time { return now })
}

// ──────────────────────────────────────────────────────────────────────────────
// Período
// ──────────────────────────────────────────────────────────────────────────────

func TestParseRange_PorDefectoMesEnCurso(t *testing.T) {
	uc := newUseCase(t, nil)
	r, err := uc.ParseRange("", "")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), r.From)
	assert.Equal(t, "2024-03-20", r.To.Format("2006-01-02"))
	assert.True(t, r.To.After(now), "el fin del período cubre el día completo")
}

func TestParseRange_Invalidos(t *testing.T) {
	uc := newUseCase(t, nil)
	_, err := uc.ParseRange("2024/03/01", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.ParseRange("2024-03-10", "2024-03-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reporte de ganancias
// ──────────────────────────────────────────────────────────────────────────────

func TestEarnings_PorSocio(t *testing.T) {
	uc := newUseCase(t, nil)
	r, err := uc.ParseRange("2024-03-01", "2024-03-31")
	require.NoError(t, err)

	rep, err := uc.Earnings(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.OrdersCount)
	assertDec(t, "143", rep.Revenue)
	assertDec(t, "130", rep.Subtotal)
	assertDec(t, "13", rep.ShippingCost)
	assertDec(t, "47", rep.NetProfit)
	assertDec(t, "310", rep.TotalExpenses)

	require.Len(t, rep.Owners, 2)
	y, b := rep.Owners[0], rep.Owners[1]
	assert.Equal(t, "yassir", y.Owner)
	assertDec(t, "24", y.NetProfit, "60-30 menos 13*60/130")
	assertDec(t, "30", y.ProductCost)
	assertDec(t, "54", y.TotalEarnings)
	assertDec(t, "200", y.Expenses, "50 compartido + 10 propio + 140 con porcentajes")
	assertDec(t, "-176", y.NetAfterExpenses)
	assert.Equal(t, 1, y.ItemsSold)

	assert.Equal(t, "basim", b.Owner)
	assertDec(t, "23", b.NetProfit)
	assertDec(t, "40", b.ProductCost)
	assertDec(t, "110", b.Expenses)
	assert.Equal(t, 2, b.ItemsSold)

	assertDec(t, rep.NetProfit.String(), y.NetProfit.Add(b.NetProfit))
}

func TestEarnings_PeriodoVacio_ListaSocios(t *testing.T) {
	uc := newUseCase(t, nil)
	r, err := uc.ParseRange("2023-01-01", "2023-01-31")
	require.NoError(t, err)

	rep, err := uc.Earnings(context.Background(), r)
	require.NoError(t, err)
	assert.Zero(t, rep.OrdersCount)
	require.Len(t, rep.Owners, 2)
	assertDec(t, "0", rep.Owners[0].TotalEarnings)
}

func TestEarningsPDF(t *testing.T) {
	pdf := &fakePDF{}
	uc := newUseCase(t, pdf)
	r, _ := uc.ParseRange("2024-03-01", "2024-03-31")

	b, name, err := uc.EarningsPDF(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(b))
	assert.Equal(t, "ganancias_2024-03-01_2024-03-31.pdf", name)
	require.NotNil(t, pdf.got)
	assert.Equal(t, 1, pdf.got.OrdersCount)
}

func TestEarningsPDF_SinGenerador(t *testing.T) {
	uc := newUseCase(t, nil)
	r, _ := uc.ParseRange("", "")
	_, _, err := uc.EarningsPDF(context.Background(), r)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Exportaciones CSV
// ──────────────────────────────────────────────────────────────────────────────

func readCSV(t *testing.T, b []byte) [][]string {
	t.Helper()
	rows, err := csv.NewReader(strings.NewReader(string(b))).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestOrdersCSV(t *testing.T) {
	uc := newUseCase(t, nil)
	r, _ := uc.ParseRange("2024-03-01", "2024-03-31")

	b, name, err := uc.OrdersCSV(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, "pedidos_2024-03-01_2024-03-31.csv", name)
	assert.Contains(t, string(b), `"Ali, Jr."`, "los campos con coma van entre comillas")

	rows := readCSV(t, b)
	require.Len(t, rows, 2)
	assert.Equal(t, "order_number", rows[0][0])
	assert.Equal(t, "1001", rows[1][0])
	assert.Equal(t, "Ali, Jr.", rows[1][2])
	assert.Equal(t, "Serum x1; Cream x2", rows[1][4])
	assert.Equal(t, "143.00", rows[1][10])
}

func TestExpensesCSV(t *testing.T) {
	uc := newUseCase(t, nil)
	r, _ := uc.ParseRange("2024-03-01", "2024-03-31")

	b, _, err := uc.ExpensesCSV(context.Background(), r)
	require.NoError(t, err)
	rows := readCSV(t, b)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"date", "category", "description", "owner", "amount"}, rows[0])
	assert.Equal(t, []string{"2024-03-05", "marketing", "gasto e1", "shared", "100.00"}, rows[1])
}

func TestEarningsCSV(t *testing.T) {
	uc := newUseCase(t, nil)
	r, _ := uc.ParseRange("2024-03-01", "2024-03-31")

	b, _, err := uc.EarningsCSV(context.Background(), r)
	require.NoError(t, err)
	rows := readCSV(t, b)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"yassir", "24.00", "30.00", "54.00", "200.00", "-176.00", "1"}, rows[1])
}
