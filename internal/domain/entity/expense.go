package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory categoría de gasto.
type ExpenseCategory string

const (
	ExpenseMarketing    ExpenseCategory = "marketing"
	ExpensePackaging    ExpenseCategory = "packaging"
	ExpenseSubscription ExpenseCategory = "subscription"
	ExpenseOther        ExpenseCategory = "other"
)

// Valid indica si la categoría es una de las conocidas.
func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseMarketing, ExpensePackaging, ExpenseSubscription, ExpenseOther:
		return true
	}
	return false
}

// Expense gasto del negocio. Owner es un socio o OwnerShared.
// Splits (porcentajes por socio) solo aplica a gastos compartidos; vacío = reparto por pesos de socios.
type Expense struct {
	ID          string
	Category    ExpenseCategory
	Description string
	Amount      decimal.Decimal
	Owner       Owner
	Splits      map[Owner]decimal.Decimal
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (e *Expense) Key() string { return e.ID }

func (e *Expense) Stamp(id string, now time.Time) {
	e.ID, e.CreatedAt, e.UpdatedAt = stamp(e.ID, e.CreatedAt, id, now)
}
