package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ImportLogEntryDTO entrada del log de parseo.
type ImportLogEntryDTO struct {
	Level       string `json:"level"`
	Row         int    `json:"row,omitempty"`
	Message     string `json:"message"`
	Raw         string `json:"raw,omitempty"`
	ColumnCount int    `json:"column_count,omitempty"`
}

// ImportSummaryDTO conteos del parseo.
type ImportSummaryDTO struct {
	TotalRows  int    `json:"total_rows"`
	ParsedRows int    `json:"parsed_rows"`
	ErrorRows  int    `json:"error_rows"`
	Warnings   int    `json:"warnings"`
	Delimiter  string `json:"delimiter"`
}

// ImportRowDTO fila parseada con su estado de conciliación.
type ImportRowDTO struct {
	Row          int             `json:"row"`
	OrderNumber  string          `json:"order_number"`
	CustomerName string          `json:"customer_name"`
	Total        decimal.Decimal `json:"total"`
	Products     int             `json:"products"`
	Importable   bool            `json:"importable"`
	Problems     []string        `json:"problems,omitempty"`
}

// ImportResultDTO resultado de confirmar la importación.
type ImportResultDTO struct {
	Imported []string `json:"imported"`
	Skipped  []string `json:"skipped"`
	Failed   []string `json:"failed"`
}

// ImportSessionResponse estado completo de una sesión de importación.
type ImportSessionResponse struct {
	ID               string              `json:"id"`
	State            string              `json:"state"`
	FileName         string              `json:"file_name"`
	Summary          ImportSummaryDTO    `json:"summary"`
	Log              []ImportLogEntryDTO `json:"log"`
	Rows             []ImportRowDTO      `json:"rows"`
	UnmappedProducts []string            `json:"unmapped_products"`
	UnmappedShipping []string            `json:"unmapped_shipping"`
	UnmappedPayments []string            `json:"unmapped_payments"`
	Blocked          bool                `json:"blocked"`
	ImportableCount  int                 `json:"importable_count"`
	Result           *ImportResultDTO    `json:"result,omitempty"`
	Error            string              `json:"error,omitempty"`
	UpdatedAt        time.Time           `json:"updated_at"`
}
