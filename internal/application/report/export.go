package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
	"github.com/jhoicas/Ganancias-api/pkg/money"
)

var (
	ordersHeader = []string{
		"order_number", "date", "customer_name", "source", "items",
		"subtotal", "discount_amount", "shipping_cost", "is_free_shipping", "customer_fee",
		"total", "payment_fees", "net_profit", "shipping_method", "payment_method", "source_total",
	}
	expensesHeader = []string{"date", "category", "description", "owner", "amount"}
	earningsHeader = []string{
		"owner", "net_profit", "product_cost", "total_earnings", "expenses", "net_after_expenses", "items_sold",
	}
)

// OrdersCSV exporta los pedidos del período (un pedido por fila, líneas como "nombre x cantidad").
func (uc *UseCase) OrdersCSV(ctx context.Context, r Range) ([]byte, string, error) {
	orders, err := uc.orders.ListByDateRange(ctx, r.From, r.To)
	if err != nil {
		return nil, "", fmt.Errorf("listar pedidos: %w", err)
	}
	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []string{
			o.OrderNumber,
			o.Date.In(uc.loc).Format("2006-01-02 15:04"),
			o.CustomerName,
			o.Source,
			itemsCell(o.Items),
			money.Plain(o.Subtotal),
			money.Plain(o.DiscountAmount),
			money.Plain(o.ShippingCost),
			strconv.FormatBool(o.IsFreeShipping),
			money.Plain(o.CustomerFee),
			money.Plain(o.Total),
			money.Plain(o.PaymentFees),
			money.Plain(o.NetProfit),
			shippingName(o),
			paymentName(o),
			sourceTotal(o),
		})
	}
	b, err := writeCSV(ordersHeader, rows)
	if err != nil {
		return nil, "", err
	}
	return b, uc.filename("pedidos", r), nil
}

// ExpensesCSV exporta los gastos del período.
func (uc *UseCase) ExpensesCSV(ctx context.Context, r Range) ([]byte, string, error) {
	expenses, err := uc.expenses.ListByDateRange(ctx, r.From, r.To)
	if err != nil {
		return nil, "", fmt.Errorf("listar gastos: %w", err)
	}
	rows := make([][]string, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, []string{
			e.Date.Format(dayLayout),
			string(e.Category),
			e.Description,
			string(e.Owner),
			money.Plain(e.Amount),
		})
	}
	b, err := writeCSV(expensesHeader, rows)
	if err != nil {
		return nil, "", err
	}
	return b, uc.filename("gastos", r), nil
}

// EarningsCSV exporta la tabla por socio del reporte de ganancias.
func (uc *UseCase) EarningsCSV(ctx context.Context, r Range) ([]byte, string, error) {
	rep, err := uc.Earnings(ctx, r)
	if err != nil {
		return nil, "", err
	}
	rows := make([][]string, 0, len(rep.Owners))
	for _, o := range rep.Owners {
		rows = append(rows, []string{
			o.Owner,
			money.Plain(o.NetProfit),
			money.Plain(o.ProductCost),
			money.Plain(o.TotalEarnings),
			money.Plain(o.Expenses),
			money.Plain(o.NetAfterExpenses),
			strconv.Itoa(o.ItemsSold),
		})
	}
	b, err := writeCSV(earningsHeader, rows)
	if err != nil {
		return nil, "", err
	}
	return b, uc.filename("ganancias", r), nil
}

func (uc *UseCase) filename(prefix string, r Range) string {
	return fmt.Sprintf("%s_%s_%s.csv", prefix, r.From.Format(dayLayout), r.To.Format(dayLayout))
}

func writeCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	return buf.Bytes(), nil
}

func itemsCell(items []entity.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s x%d", it.Product.Name, it.Quantity))
	}
	return strings.Join(parts, "; ")
}

func shippingName(o *entity.Order) string {
	if o.ShippingMethod == nil {
		return ""
	}
	return o.ShippingMethod.Name
}

func paymentName(o *entity.Order) string {
	if o.PaymentMethod == nil {
		return ""
	}
	return o.PaymentMethod.Name
}

func sourceTotal(o *entity.Order) string {
	if o.SourceTotal == nil {
		return ""
	}
	return money.Plain(*o.SourceTotal)
}
