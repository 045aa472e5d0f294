package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseRequest entrada para un gasto. Splits (porcentajes por socio) solo para owner = "shared".
type ExpenseRequest struct {
	Category    string                     `json:"category" validate:"required,oneof=marketing packaging subscription other"`
	Description string                     `json:"description"`
	Amount      decimal.Decimal            `json:"amount"`
	Owner       string                     `json:"owner" validate:"required"`
	Splits      map[string]decimal.Decimal `json:"splits,omitempty"`
	Date        string                     `json:"date"` // YYYY-MM-DD; vacío = hoy
}

// ExpenseResponse salida de un gasto.
type ExpenseResponse struct {
	ID          string                     `json:"id"`
	Category    string                     `json:"category"`
	Description string                     `json:"description"`
	Amount      decimal.Decimal            `json:"amount"`
	Owner       string                     `json:"owner"`
	Splits      map[string]decimal.Decimal `json:"splits,omitempty"`
	Date        string                     `json:"date"`
	CreatedAt   time.Time                  `json:"created_at"`
	UpdatedAt   time.Time                  `json:"updated_at"`
}

// NameMappingRequest entrada para un mapeo nombre externo → entidad interna.
type NameMappingRequest struct {
	Kind         string `json:"kind" validate:"required,oneof=product shipping payment"`
	ExternalName string `json:"external_name" validate:"required"`
	InternalID   string `json:"internal_id" validate:"required"`
}

// NameMappingResponse salida de un mapeo.
type NameMappingResponse struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	ExternalName string    `json:"external_name"`
	InternalID   string    `json:"internal_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
