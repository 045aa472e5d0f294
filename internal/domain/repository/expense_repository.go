package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
)

// ExpenseRepository persistencia de gastos.
type ExpenseRepository interface {
	Store[entity.Expense]
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*entity.Expense, error)
}
