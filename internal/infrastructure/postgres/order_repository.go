package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
	"github.com/jhoicas/Ganancias-api/internal/domain/repository"
)

const dayLayout = "2006-01-02"

var _ repository.OrderRepository = (*OrderRepo)(nil)

// Snapshots JSONB: copia de lo que valía cada referencia al momento del pedido.

type productSnapshot struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku,omitempty"`
	Cost         decimal.Decimal `json:"cost"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Owner        string          `json:"owner"`
}

type itemSnapshot struct {
	Product  productSnapshot `json:"product"`
	Quantity int             `json:"quantity"`
}

type shippingSnapshot struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Cost decimal.Decimal `json:"cost"`
}

type paymentSnapshot struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	FeePercentage decimal.Decimal `json:"fee_percentage"`
	FeeFixed      decimal.Decimal `json:"fee_fixed"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	CustomerFee   decimal.Decimal `json:"customer_fee"`
}

type discountSnapshot struct {
	Type  string          `json:"type"`
	Value decimal.Decimal `json:"value"`
	Code  string          `json:"code,omitempty"`
}

type appliedOfferSnapshot struct {
	OfferID          string          `json:"offer_id"`
	OfferName        string          `json:"offer_name"`
	TriggerProductID string          `json:"trigger_product_id"`
	TargetProductID  string          `json:"target_product_id"`
	UnitDiscount     decimal.Decimal `json:"unit_discount"`
	Quantity         int             `json:"quantity"`
	DiscountAmount   decimal.Decimal `json:"discount_amount"`
}

type orderRow struct {
	ID             string              `db:"id"`
	OrderNumber    string              `db:"order_number"`
	CustomerName   string              `db:"customer_name"`
	OrderDate      time.Time           `db:"order_date"`
	Items          []byte              `db:"items"`
	ShippingMethod []byte              `db:"shipping_method"`
	PaymentMethod  []byte              `db:"payment_method"`
	Discount       []byte              `db:"discount"`
	AppliedOffer   []byte              `db:"applied_offer"`
	Subtotal       decimal.Decimal     `db:"subtotal"`
	ShippingCost   decimal.Decimal     `db:"shipping_cost"`
	PaymentFees    decimal.Decimal     `db:"payment_fees"`
	DiscountAmount decimal.Decimal     `db:"discount_amount"`
	CustomerFee    decimal.Decimal     `db:"customer_fee"`
	Total          decimal.Decimal     `db:"total"`
	NetProfit      decimal.Decimal     `db:"net_profit"`
	IsFreeShipping bool                `db:"is_free_shipping"`
	Source         string              `db:"source"`
	SourceTotal    decimal.NullDecimal `db:"source_total"`
	CreatedAt      time.Time           `db:"created_at"`
	UpdatedAt      time.Time           `db:"updated_at"`
}

var orderTable = table[entity.Order, orderRow]{
	name: "orders",
	columns: []string{"id", "order_number", "customer_name", "order_date", "items", "shipping_method",
		"payment_method", "discount", "applied_offer", "subtotal", "shipping_cost", "payment_fees",
		"discount_amount", "customer_fee", "total", "net_profit", "is_free_shipping", "source",
		"source_total", "created_at", "updated_at"},
	orderBy:    "order_date, order_number",
	toExternal: orderToRow,
	args: func(r orderRow) []any {
		return []any{r.ID, r.OrderNumber, r.CustomerName, r.OrderDate, r.Items, r.ShippingMethod,
			r.PaymentMethod, r.Discount, r.AppliedOffer, r.Subtotal, r.ShippingCost, r.PaymentFees,
			r.DiscountAmount, r.CustomerFee, r.Total, r.NetProfit, r.IsFreeShipping, r.Source,
			r.SourceTotal, r.CreatedAt, r.UpdatedAt}
	},
	toInternal: rowToOrder,
}

// OrderRepo pedidos sobre PostgreSQL con líneas y métodos guardados como snapshot JSONB.
type OrderRepo struct {
	*Store[entity.Order, orderRow]
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{newStore(q, orderTable)}
}

// GetByOrderNumber (nil, nil) si no existe.
func (r *OrderRepo) GetByOrderNumber(ctx context.Context, number string) (*entity.Order, error) {
	return r.one(ctx, "order_number = $1", number)
}

// ListByDateRange pedidos con order_date en [from, to].
func (r *OrderRepo) ListByDateRange(ctx context.Context, from, to time.Time) ([]*entity.Order, error) {
	return r.list(ctx, "order_date BETWEEN $1 AND $2", []any{from, to})
}

func orderToRow(o *entity.Order) (orderRow, error) {
	row := orderRow{
		ID: o.ID, OrderNumber: o.OrderNumber, CustomerName: o.CustomerName, OrderDate: o.Date,
		Subtotal: o.Subtotal, ShippingCost: o.ShippingCost, PaymentFees: o.PaymentFees,
		DiscountAmount: o.DiscountAmount, CustomerFee: o.CustomerFee, Total: o.Total, NetProfit: o.NetProfit,
		IsFreeShipping: o.IsFreeShipping, Source: o.Source, CreatedAt: o.CreatedAt, UpdatedAt: o.UpdatedAt,
	}
	if o.SourceTotal != nil {
		row.SourceTotal = decimal.NullDecimal{Decimal: *o.SourceTotal, Valid: true}
	}

	items := make([]itemSnapshot, len(o.Items))
	for i, it := range o.Items {
		p := it.Product
		items[i] = itemSnapshot{
			Product:  productSnapshot{p.ID, p.Name, p.SKU, p.Cost, p.SellingPrice, string(p.Owner)},
			Quantity: it.Quantity,
		}
	}
	var err error
	if row.Items, err = json.Marshal(items); err != nil {
		return orderRow{}, err
	}
	if s := o.ShippingMethod; s != nil {
		if row.ShippingMethod, err = json.Marshal(shippingSnapshot{s.ID, s.Name, s.Cost}); err != nil {
			return orderRow{}, err
		}
	}
	if p := o.PaymentMethod; p != nil {
		snap := paymentSnapshot{p.ID, p.Name, p.FeePercentage, p.FeeFixed, p.TaxRate, p.CustomerFee}
		if row.PaymentMethod, err = json.Marshal(snap); err != nil {
			return orderRow{}, err
		}
	}
	if d := o.Discount; d != nil {
		if row.Discount, err = json.Marshal(discountSnapshot{string(d.Type), d.Value, d.Code}); err != nil {
			return orderRow{}, err
		}
	}
	if a := o.AppliedOffer; a != nil {
		snap := appliedOfferSnapshot{a.OfferID, a.OfferName, a.TriggerProductID, a.TargetProductID,
			a.UnitDiscount, a.Quantity, a.DiscountAmount}
		if row.AppliedOffer, err = json.Marshal(snap); err != nil {
			return orderRow{}, err
		}
	}
	return row, nil
}

func rowToOrder(r orderRow) (*entity.Order, error) {
	o := &entity.Order{
		ID: r.ID, OrderNumber: r.OrderNumber, CustomerName: r.CustomerName, Date: r.OrderDate,
		Subtotal: r.Subtotal, ShippingCost: r.ShippingCost, PaymentFees: r.PaymentFees,
		DiscountAmount: r.DiscountAmount, CustomerFee: r.CustomerFee, Total: r.Total, NetProfit: r.NetProfit,
		IsFreeShipping: r.IsFreeShipping, Source: r.Source, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
	if r.SourceTotal.Valid {
		st := r.SourceTotal.Decimal
		o.SourceTotal = &st
	}

	var items []itemSnapshot
	if len(r.Items) > 0 {
		if err := json.Unmarshal(r.Items, &items); err != nil {
			return nil, err
		}
	}
	o.Items = make([]entity.OrderItem, len(items))
	for i, it := range items {
		p := it.Product
		o.Items[i] = entity.OrderItem{
			Product: entity.Product{
				ID: p.ID, Name: p.Name, SKU: p.SKU, Cost: p.Cost, SellingPrice: p.SellingPrice,
				Owner: entity.Owner(p.Owner),
			},
			Quantity: it.Quantity,
		}
	}
	if len(r.ShippingMethod) > 0 {
		var s shippingSnapshot
		if err := json.Unmarshal(r.ShippingMethod, &s); err != nil {
			return nil, err
		}
		o.ShippingMethod = &entity.ShippingMethod{ID: s.ID, Name: s.Name, Cost: s.Cost, Active: true}
	}
	if len(r.PaymentMethod) > 0 {
		var p paymentSnapshot
		if err := json.Unmarshal(r.PaymentMethod, &p); err != nil {
			return nil, err
		}
		o.PaymentMethod = &entity.PaymentMethod{
			ID: p.ID, Name: p.Name, FeePercentage: p.FeePercentage, FeeFixed: p.FeeFixed,
			TaxRate: p.TaxRate, CustomerFee: p.CustomerFee, Active: true,
		}
	}
	if len(r.Discount) > 0 {
		var d discountSnapshot
		if err := json.Unmarshal(r.Discount, &d); err != nil {
			return nil, err
		}
		o.Discount = &entity.Discount{Type: entity.DiscountType(d.Type), Value: d.Value, Code: d.Code}
	}
	if len(r.AppliedOffer) > 0 {
		var a appliedOfferSnapshot
		if err := json.Unmarshal(r.AppliedOffer, &a); err != nil {
			return nil, err
		}
		o.AppliedOffer = &entity.AppliedOffer{
			OfferID: a.OfferID, OfferName: a.OfferName, TriggerProductID: a.TriggerProductID,
			TargetProductID: a.TargetProductID, UnitDiscount: a.UnitDiscount, Quantity: a.Quantity,
			DiscountAmount: a.DiscountAmount,
		}
	}
	return o, nil
}
