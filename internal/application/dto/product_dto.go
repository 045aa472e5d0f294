package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest entrada para crear o reemplazar un producto.
type ProductRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	SKU          string          `json:"sku" validate:"max=100"`
	Cost         decimal.Decimal `json:"cost"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Owner        string          `json:"owner" validate:"required"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	Cost         decimal.Decimal `json:"cost"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Owner        string          `json:"owner"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ShippingMethodRequest entrada para un método de envío.
type ShippingMethodRequest struct {
	Name   string          `json:"name" validate:"required"`
	Cost   decimal.Decimal `json:"cost"`
	Active *bool           `json:"active"`
}

// ShippingMethodResponse salida de un método de envío.
type ShippingMethodResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Cost      decimal.Decimal `json:"cost"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// PaymentMethodRequest entrada para un método de pago.
type PaymentMethodRequest struct {
	Name          string          `json:"name" validate:"required"`
	FeePercentage decimal.Decimal `json:"fee_percentage"`
	FeeFixed      decimal.Decimal `json:"fee_fixed"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	CustomerFee   decimal.Decimal `json:"customer_fee"`
	DisplayOrder  int             `json:"display_order"`
	Active        *bool           `json:"active"`
}

// PaymentMethodResponse salida de un método de pago.
type PaymentMethodResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	FeePercentage decimal.Decimal `json:"fee_percentage"`
	FeeFixed      decimal.Decimal `json:"fee_fixed"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	CustomerFee   decimal.Decimal `json:"customer_fee"`
	DisplayOrder  int             `json:"display_order"`
	Active        bool            `json:"active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// OfferRequest entrada para una oferta. Fechas en formato YYYY-MM-DD, opcionales.
type OfferRequest struct {
	Name             string          `json:"name" validate:"required"`
	TriggerProductID string          `json:"trigger_product_id" validate:"required"`
	TargetProductID  string          `json:"target_product_id" validate:"required"`
	DiscountType     string          `json:"discount_type" validate:"required,oneof=percentage fixed"`
	DiscountValue    decimal.Decimal `json:"discount_value"`
	Active           *bool           `json:"active"`
	StartDate        string          `json:"start_date"`
	EndDate          string          `json:"end_date"`
}

// OfferResponse salida de una oferta.
type OfferResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	TriggerProductID string          `json:"trigger_product_id"`
	TargetProductID  string          `json:"target_product_id"`
	DiscountType     string          `json:"discount_type"`
	DiscountValue    decimal.Decimal `json:"discount_value"`
	Active           bool            `json:"active"`
	StartDate        string          `json:"start_date,omitempty"`
	EndDate          string          `json:"end_date,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
