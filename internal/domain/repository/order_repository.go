package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
)

// OrderRepository persistencia de pedidos (cabecera + snapshot de líneas y métodos).
type OrderRepository interface {
	Store[entity.Order]
	GetByOrderNumber(ctx context.Context, number string) (*entity.Order, error)
	// ListByDateRange pedidos con fecha en [from, to], ordenados por fecha ascendente.
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*entity.Order, error)
}
