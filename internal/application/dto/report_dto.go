package dto

import "github.com/shopspring/decimal"

// OwnerEarningsDTO ganancias de un socio en el período.
type OwnerEarningsDTO struct {
	Owner            string          `json:"owner"`
	NetProfit        decimal.Decimal `json:"net_profit"`
	ProductCost      decimal.Decimal `json:"product_cost"`
	TotalEarnings    decimal.Decimal `json:"total_earnings"`
	Expenses         decimal.Decimal `json:"expenses"`
	NetAfterExpenses decimal.Decimal `json:"net_after_expenses"`
	ItemsSold        int             `json:"items_sold"`
}

// EarningsReportResponse reporte de ganancias por socio.
type EarningsReportResponse struct {
	From          string             `json:"from"`
	To            string             `json:"to"`
	OrdersCount   int                `json:"orders_count"`
	Revenue       decimal.Decimal    `json:"revenue"` // total cobrado a clientes
	Subtotal      decimal.Decimal    `json:"subtotal"`
	ShippingCost  decimal.Decimal    `json:"shipping_cost"`
	PaymentFees   decimal.Decimal    `json:"payment_fees"`
	Discounts     decimal.Decimal    `json:"discounts"`
	NetProfit     decimal.Decimal    `json:"net_profit"`
	TotalExpenses decimal.Decimal    `json:"total_expenses"`
	Owners        []OwnerEarningsDTO `json:"owners"`
}
