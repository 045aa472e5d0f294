package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ganancias-api/internal/application/dto"
	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
	"github.com/jhoicas/Ganancias-api/internal/domain/profit"
	"github.com/jhoicas/Ganancias-api/internal/domain/repository"
)

// ExpenseUseCase CRUD de gastos del negocio.
type ExpenseUseCase struct {
	catalog[entity.Expense, *entity.Expense]
	expenses repository.ExpenseRepository
	partners profit.Participants
	loc      *time.Location
	now      func() time.Time
}

// ExpenseOption configura ExpenseUseCase.
type ExpenseOption func(*ExpenseUseCase)

// WithStoreLocation zona del calendario de la tienda; define el día por defecto de un gasto.
func WithStoreLocation(loc *time.Location) ExpenseOption {
	return func(uc *ExpenseUseCase) {
		if loc != nil {
			uc.loc = loc
		}
	}
}

// WithExpenseClock reloj fijo para tests.
func WithExpenseClock(now func() time.Time) ExpenseOption {
	return func(uc *ExpenseUseCase) { uc.now = now }
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(repo repository.ExpenseRepository, partners profit.Participants, opts ...ExpenseOption) *ExpenseUseCase {
	uc := &ExpenseUseCase{
		catalog:  newCatalog[entity.Expense, *entity.Expense](repo),
		expenses: repo,
		partners: partners,
		loc:      time.UTC,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// today día actual en la zona de la tienda, con la misma forma que parseDay (medianoche UTC).
func (uc *ExpenseUseCase) today() time.Time {
	y, m, d := uc.now().In(uc.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Create registra un gasto.
func (uc *ExpenseUseCase) Create(ctx context.Context, in dto.ExpenseRequest) (*dto.ExpenseResponse, error) {
	return uc.store(ctx, &entity.Expense{}, in)
}

// Update reemplaza un gasto.
func (uc *ExpenseUseCase) Update(ctx context.Context, id string, in dto.ExpenseRequest) (*dto.ExpenseResponse, error) {
	e, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.store(ctx, e, in)
}

// GetByID obtiene un gasto.
func (uc *ExpenseUseCase) GetByID(ctx context.Context, id string) (*dto.ExpenseResponse, error) {
	e, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toExpenseResponse(e), nil
}

// List lista gastos; con rango de fechas filtra por día (inclusivo).
func (uc *ExpenseUseCase) List(ctx context.Context, from, to *time.Time) ([]dto.ExpenseResponse, error) {
	var (
		list []*entity.Expense
		err  error
	)
	if from != nil && to != nil {
		list, err = uc.expenses.ListByDateRange(ctx, *from, *to)
	} else {
		list, err = uc.repo.GetAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	return mapAll(list, func(e *entity.Expense) dto.ExpenseResponse { return *toExpenseResponse(e) }), nil
}

// Delete elimina un gasto.
func (uc *ExpenseUseCase) Delete(ctx context.Context, id string) error {
	return uc.delete(ctx, id)
}

func (uc *ExpenseUseCase) store(ctx context.Context, e *entity.Expense, in dto.ExpenseRequest) (*dto.ExpenseResponse, error) {
	category := entity.ExpenseCategory(in.Category)
	if !category.Valid() {
		return nil, invalid("categoría desconocida %q", in.Category)
	}
	if !in.Amount.IsPositive() {
		return nil, invalid("el monto debe ser positivo")
	}
	owner := entity.Owner(in.Owner)
	if owner != entity.OwnerShared && !isPartner(uc.partners, owner) {
		return nil, invalid("dueño desconocido %q", in.Owner)
	}
	splits, err := uc.validateSplits(owner, in.Splits)
	if err != nil {
		return nil, err
	}
	date := uc.today()
	if d, err := parseDay(in.Date); err != nil {
		return nil, err
	} else if d != nil {
		date = *d
	}

	e.Category = category
	e.Description = strings.TrimSpace(in.Description)
	e.Amount = in.Amount
	e.Owner = owner
	e.Splits = splits
	e.Date = date
	if err := uc.save(ctx, e); err != nil {
		return nil, err
	}
	return toExpenseResponse(e), nil
}

// validateSplits: solo gastos compartidos, socios conocidos, suma exacta de 100.
func (uc *ExpenseUseCase) validateSplits(owner entity.Owner, in map[string]decimal.Decimal) (map[entity.Owner]decimal.Decimal, error) {
	if len(in) == 0 {
		return nil, nil
	}
	if owner != entity.OwnerShared {
		return nil, invalid("splits solo aplica a gastos compartidos")
	}
	out := make(map[entity.Owner]decimal.Decimal, len(in))
	sum := decimal.Zero
	for name, pct := range in {
		o := entity.Owner(name)
		if !isPartner(uc.partners, o) {
			return nil, invalid("socio desconocido en splits %q", name)
		}
		if pct.IsNegative() {
			return nil, invalid("porcentaje negativo para %q", name)
		}
		out[o] = pct
		sum = sum.Add(pct)
	}
	if !sum.Equal(hundred) {
		return nil, invalid("los porcentajes de splits deben sumar 100 (suman %s)", sum)
	}
	return out, nil
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	var splits map[string]decimal.Decimal
	if len(e.Splits) > 0 {
		splits = make(map[string]decimal.Decimal, len(e.Splits))
		for o, pct := range e.Splits {
			splits[string(o)] = pct
		}
	}
	return &dto.ExpenseResponse{
		ID:          e.ID,
		Category:    string(e.Category),
		Description: e.Description,
		Amount:      e.Amount,
		Owner:       string(e.Owner),
		Splits:      splits,
		Date:        e.Date.Format(dayLayout),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
