package entity

import "time"

// Claves de configuración de negocio guardadas en la tabla settings.
const (
	SettingFreeShippingThreshold = "free_shipping_threshold"
	SettingQuickDiscounts        = "quick_discounts"
)

// Setting par clave/valor (valor serializado como texto).
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
