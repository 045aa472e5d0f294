package dto

import "github.com/shopspring/decimal"

// QuickDiscountDTO botón de descuento preconfigurado.
type QuickDiscountDTO struct {
	Label string          `json:"label"`
	Type  string          `json:"type"`
	Value decimal.Decimal `json:"value"`
	Code  string          `json:"code,omitempty"`
}

// SettingsResponse configuración de negocio vigente.
type SettingsResponse struct {
	FreeShippingThreshold  decimal.Decimal    `json:"free_shipping_threshold"`
	AutoDetectFreeShipping bool               `json:"auto_detect_free_shipping"`
	QuickDiscounts         []QuickDiscountDTO `json:"quick_discounts"`
}

// UpdateSettingsRequest campos opcionales; los ausentes no se tocan.
type UpdateSettingsRequest struct {
	FreeShippingThreshold *decimal.Decimal   `json:"free_shipping_threshold"`
	QuickDiscounts        []QuickDiscountDTO `json:"quick_discounts"`
}
