package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ListResponse envoltorio de listados (los catálogos son pequeños, sin paginación).
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// NewList construye un ListResponse; nunca serializa items como null.
func NewList[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Total: len(items)}
}

// DateRangeQuery filtro de fechas (YYYY-MM-DD, inclusivo) para listados y reportes.
type DateRangeQuery struct {
	From string `query:"from"`
	To   string `query:"to"`
}
