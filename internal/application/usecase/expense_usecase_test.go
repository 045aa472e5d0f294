package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ganancias-api/internal/application/dto"
	"github.com/jhoicas/Ganancias-api/internal/application/usecase"
	"github.com/jhoicas/Ganancias-api/internal/domain/profit"
	"github.com/jhoicas/Ganancias-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fecha por defecto de un gasto
// ──────────────────────────────────────────────────────────────────────────────

func newExpenseUC(loc *time.Location, now time.Time) *usecase.ExpenseUseCase {
	return usecase.NewExpenseUseCase(memory.NewExpenseRepository(), profit.DefaultParticipants(),
		usecase.WithStoreLocation(loc), usecase.WithExpenseClock(func() time.Time { return now }))
}

func expenseReq(date string) dto.ExpenseRequest {
	return dto.ExpenseRequest{Category: "marketing", Amount: decimal.NewFromInt(100), Owner: "shared", Date: date}
}

func TestExpense_SinFecha_UsaElDiaDeLaTienda(t *testing.T) {
	casos := []struct {
		nombre string
		loc    *time.Location
		now    time.Time
		want   string
	}{
		{"zona negativa, aún es el día anterior", time.FixedZone("EST", -5*60*60), time.Date(2024, 3, 1, 3, 0, 0, 0, time.UTC), "2024-02-29"},
		{"zona positiva, ya es el día siguiente", time.FixedZone("AST", 3*60*60), time.Date(2024, 3, 1, 22, 0, 0, 0, time.UTC), "2024-03-02"},
		{"UTC", time.UTC, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), "2024-03-01"},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			uc := newExpenseUC(c.loc, c.now)
			got, err := uc.Create(context.Background(), expenseReq(""))
			require.NoError(t, err)
			assert.Equal(t, c.want, got.Date)
		})
	}
}

func TestExpense_SinFecha_EntraEnElRangoDelDia(t *testing.T) {
	loc := time.FixedZone("EST", -5*60*60)
	uc := newExpenseUC(loc, time.Date(2024, 3, 1, 3, 0, 0, 0, time.UTC))
	ctx := context.Background()
	_, err := uc.Create(ctx, expenseReq(""))
	require.NoError(t, err)

	day := time.Date(2024, 2, 29, 0, 0, 0, 0, loc)
	list, err := uc.List(ctx, &day, &day)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestExpense_FechaExplicita_SeRespeta(t *testing.T) {
	uc := newExpenseUC(time.UTC, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	got, err := uc.Create(context.Background(), expenseReq("2024-01-15"))
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", got.Date)
}
