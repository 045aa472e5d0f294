package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea pedida: producto del catálogo + cantidad.
type OrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=0"`
}

// DiscountDTO descuento manual.
type DiscountDTO struct {
	Type  string          `json:"type" validate:"required,oneof=percentage fixed"`
	Value decimal.Decimal `json:"value"`
	Code  string          `json:"code,omitempty"`
}

// OrderRequest entrada para calcular, crear o actualizar un pedido.
// FreeShipping es la marca manual; solo se respeta si la detección automática está desactivada.
type OrderRequest struct {
	OrderNumber      string             `json:"order_number"`
	CustomerName     string             `json:"customer_name"`
	Date             *time.Time         `json:"date"`
	Items            []OrderItemRequest `json:"items"`
	ShippingMethodID string             `json:"shipping_method_id"`
	PaymentMethodID  string             `json:"payment_method_id"`
	Discount         *DiscountDTO       `json:"discount"`
	FreeShipping     *bool              `json:"free_shipping"`
}

// AppliedOfferResponse oferta aplicada automáticamente.
type AppliedOfferResponse struct {
	OfferID          string          `json:"offer_id"`
	OfferName        string          `json:"offer_name"`
	TriggerProductID string          `json:"trigger_product_id"`
	TargetProductID  string          `json:"target_product_id"`
	UnitDiscount     decimal.Decimal `json:"unit_discount"`
	Quantity         int             `json:"quantity"`
	DiscountAmount   decimal.Decimal `json:"discount_amount"`
}

// ItemProfitResponse reparto por línea.
type ItemProfitResponse struct {
	ProductID         string          `json:"product_id"`
	ProductName       string          `json:"product_name"`
	Owner             string          `json:"owner"`
	Revenue           decimal.Decimal `json:"revenue"`
	Cost              decimal.Decimal `json:"cost"`
	GrossProfit       decimal.Decimal `json:"gross_profit"`
	RevenueProportion decimal.Decimal `json:"revenue_proportion"`
	ExpenseShare      decimal.Decimal `json:"expense_share"`
	NetProfit         decimal.Decimal `json:"net_profit"`
}

// OwnerShareResponse parte de un socio.
type OwnerShareResponse struct {
	Owner         string          `json:"owner"`
	NetProfit     decimal.Decimal `json:"net_profit"`
	ProductCost   decimal.Decimal `json:"product_cost"`
	TotalEarnings decimal.Decimal `json:"total_earnings"`
}

// OrderCalculationResponse resultado del orquestador (vista previa, no se persiste).
type OrderCalculationResponse struct {
	Subtotal           decimal.Decimal       `json:"subtotal"`
	ManualDiscount     decimal.Decimal       `json:"manual_discount"`
	DiscountAmount     decimal.Decimal       `json:"discount_amount"`
	AppliedOffer       *AppliedOfferResponse `json:"applied_offer,omitempty"`
	IsFreeShipping     bool                  `json:"is_free_shipping"`
	FreeShippingLimit  decimal.Decimal       `json:"free_shipping_threshold"`
	ShippingCost       decimal.Decimal       `json:"shipping_cost"`
	ActualShippingCost decimal.Decimal       `json:"actual_shipping_cost"`
	CustomerFee        decimal.Decimal       `json:"customer_fee"`
	CustomerTotal      decimal.Decimal       `json:"customer_total"`
	PaymentFees        decimal.Decimal       `json:"payment_fees"`
	NetProfit          decimal.Decimal       `json:"net_profit"`
	Items              []ItemProfitResponse  `json:"items"`
	Shares             []OwnerShareResponse  `json:"shares"`
}

// OrderLineResponse línea persistida (snapshot del producto).
type OrderLineResponse struct {
	ProductID    string          `json:"product_id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	Owner        string          `json:"owner"`
	Cost         decimal.Decimal `json:"cost"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Quantity     int             `json:"quantity"`
}

// OrderResponse salida de un pedido persistido.
type OrderResponse struct {
	ID                 string                `json:"id"`
	OrderNumber        string                `json:"order_number"`
	CustomerName       string                `json:"customer_name"`
	Date               time.Time             `json:"date"`
	Items              []OrderLineResponse   `json:"items"`
	ShippingMethodID   string                `json:"shipping_method_id,omitempty"`
	ShippingMethodName string                `json:"shipping_method_name,omitempty"`
	PaymentMethodID    string                `json:"payment_method_id,omitempty"`
	PaymentMethodName  string                `json:"payment_method_name,omitempty"`
	Discount           *DiscountDTO          `json:"discount,omitempty"`
	AppliedOffer       *AppliedOfferResponse `json:"applied_offer,omitempty"`
	Subtotal           decimal.Decimal       `json:"subtotal"`
	ShippingCost       decimal.Decimal       `json:"shipping_cost"`
	PaymentFees        decimal.Decimal       `json:"payment_fees"`
	DiscountAmount     decimal.Decimal       `json:"discount_amount"`
	CustomerFee        decimal.Decimal       `json:"customer_fee"`
	Total              decimal.Decimal       `json:"total"`
	NetProfit          decimal.Decimal       `json:"net_profit"`
	IsFreeShipping     bool                  `json:"is_free_shipping"`
	Source             string                `json:"source"`
	SourceTotal        *decimal.Decimal      `json:"source_total,omitempty"`
	Shares             []OwnerShareResponse  `json:"shares"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
}
