package settings_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ganancias-api/internal/application/dto"
	"github.com/jhoicas/Ganancias-api/internal/application/settings"
	"github.com/jhoicas/Ganancias-api/internal/domain"
	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
	"github.com/jhoicas/Ganancias-api/internal/infrastructure/memory"
	"github.com/jhoicas/Ganancias-api/pkg/logger"
)

// countingRepo cuenta lecturas y puede fallar a pedido.
type countingRepo struct {
	*memory.SettingRepo
	reads atomic.Int32
	fail  atomic.Bool
}

func (r *countingRepo) Get(ctx context.Context, key string) (*entity.Setting, error) {
	r.reads.Add(1)
	if r.fail.Load() {
		return nil, errors.New("base no disponible")
	}
	return r.SettingRepo.Get(ctx, key)
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newService(t *testing.T) (*settings.Service, *countingRepo, *clock) {
	t.Helper()
	repo := &countingRepo{SettingRepo: memory.NewSettingRepository()}
	clk := &clock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	cache := settings.NewCache(repo, time.Minute, settings.WithClock(clk.now))
	return settings.NewService(repo, cache, decimal.NewFromInt(200), logger.Nop()), repo, clk
}

// ──────────────────────────────────────────────────────────────────────────────
// Caché
// ──────────────────────────────────────────────────────────────────────────────

func TestCache_DentroDelTTL_NoReconsulta(t *testing.T) {
	_, repo, clk := newService(t)
	cache := settings.NewCache(repo, time.Minute, settings.WithClock(clk.now))
	ctx := context.Background()

	_, err := cache.Get(ctx, "x")
	require.NoError(t, err)
	_, err = cache.Get(ctx, "x")
	require.NoError(t, err)
	assert.EqualValues(t, 1, repo.reads.Load(), "la clave ausente también se cachea")

	clk.advance(61 * time.Second)
	_, err = cache.Get(ctx, "x")
	require.NoError(t, err)
	assert.EqualValues(t, 2, repo.reads.Load())
}

func TestCache_ErroresNoSeCachean(t *testing.T) {
	_, repo, clk := newService(t)
	cache := settings.NewCache(repo, time.Minute, settings.WithClock(clk.now))
	ctx := context.Background()

	repo.fail.Store(true)
	_, err := cache.Get(ctx, "x")
	require.Error(t, err)

	repo.fail.Store(false)
	require.NoError(t, repo.Set(ctx, &entity.Setting{Key: "x", Value: "1"}))
	s, err := cache.Get(ctx, "x")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "1", s.Value)
}

func TestCache_Invalidate(t *testing.T) {
	_, repo, clk := newService(t)
	cache := settings.NewCache(repo, time.Minute, settings.WithClock(clk.now))
	ctx := context.Background()

	_, _ = cache.Get(ctx, "x")
	require.NoError(t, repo.Set(ctx, &entity.Setting{Key: "x", Value: "nuevo"}))
	s, _ := cache.Get(ctx, "x")
	assert.Nil(t, s, "sigue el valor cacheado hasta invalidar")

	cache.Invalidate("x")
	s, _ = cache.Get(ctx, "x")
	require.NotNil(t, s)
	assert.Equal(t, "nuevo", s.Value)

	cache.InvalidateAll()
	_, _ = cache.Get(ctx, "x")
	assert.EqualValues(t, 3, repo.reads.Load())
}

// ──────────────────────────────────────────────────────────────────────────────
// Umbral de envío gratis
// ──────────────────────────────────────────────────────────────────────────────

func TestUmbral_SinValor_UsaRespaldo(t *testing.T) {
	svc, _, _ := newService(t)
	assert.True(t, svc.FreeShippingThreshold(context.Background()).Equal(decimal.NewFromInt(200)))
}

func TestUmbral_GuardarInvalidaElCache(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()
	_ = svc.FreeShippingThreshold(ctx)

	require.NoError(t, svc.SetFreeShippingThreshold(ctx, decimal.NewFromInt(150)))
	assert.True(t, svc.FreeShippingThreshold(ctx).Equal(decimal.NewFromInt(150)))
}

func TestUmbral_Negativo_Rechazado(t *testing.T) {
	svc, _, _ := newService(t)
	err := svc.SetFreeShippingThreshold(context.Background(), decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUmbral_ErrorDeBase_UsaRespaldo(t *testing.T) {
	svc, repo, _ := newService(t)
	repo.fail.Store(true)
	assert.True(t, svc.FreeShippingThreshold(context.Background()).Equal(decimal.NewFromInt(200)))
}

func TestUmbral_ValorCorrupto_UsaRespaldo(t *testing.T) {
	svc, repo, _ := newService(t)
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, &entity.Setting{Key: entity.SettingFreeShippingThreshold, Value: "abc"}))
	assert.True(t, svc.FreeShippingThreshold(ctx).Equal(decimal.NewFromInt(200)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Descuentos rápidos
// ──────────────────────────────────────────────────────────────────────────────

func TestDescuentosRapidos_GuardarYLeer(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	list, err := svc.QuickDiscounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	err = svc.SetQuickDiscounts(ctx, []settings.QuickDiscount{
		{Label: "10%", Discount: entity.Discount{Type: entity.DiscountPercentage, Value: decimal.NewFromInt(10)}},
		{Label: "-20", Discount: entity.Discount{Type: entity.DiscountFixed, Value: decimal.NewFromInt(20), Code: "VIP"}},
	})
	require.NoError(t, err)

	list, err = svc.QuickDiscounts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, entity.DiscountPercentage, list[0].Discount.Type)
	assert.Equal(t, "VIP", list[1].Discount.Code)
	assert.True(t, list[1].Discount.Value.Equal(decimal.NewFromInt(20)))
}

func TestDescuentosRapidos_Invalidos(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	err := svc.SetQuickDiscounts(ctx, []settings.QuickDiscount{{Discount: entity.Discount{Type: entity.DiscountFixed, Value: decimal.NewFromInt(5)}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin etiqueta")

	err = svc.SetQuickDiscounts(ctx, []settings.QuickDiscount{{Label: "x", Discount: entity.Discount{Type: entity.DiscountPercentage, Value: decimal.NewFromInt(150)}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "porcentaje fuera de rango")
}

// ──────────────────────────────────────────────────────────────────────────────
// Vista y actualización parcial
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_SoloCamposPresentes(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	threshold := decimal.NewFromInt(300)
	require.NoError(t, svc.Apply(ctx, dto.UpdateSettingsRequest{FreeShippingThreshold: &threshold}))

	view, err := svc.View(ctx, true)
	require.NoError(t, err)
	assert.True(t, view.FreeShippingThreshold.Equal(threshold))
	assert.True(t, view.AutoDetectFreeShipping)
	assert.NotNil(t, view.QuickDiscounts)
	assert.Empty(t, view.QuickDiscounts)

	require.NoError(t, svc.Apply(ctx, dto.UpdateSettingsRequest{
		QuickDiscounts: []dto.QuickDiscountDTO{{Label: "5%", Type: "percentage", Value: decimal.NewFromInt(5)}},
	}))
	view, err = svc.View(ctx, false)
	require.NoError(t, err)
	assert.True(t, view.FreeShippingThreshold.Equal(threshold), "el umbral no se toca")
	require.Len(t, view.QuickDiscounts, 1)
	assert.Equal(t, "percentage", view.QuickDiscounts[0].Type)
}

func TestApply_UmbralNegativo(t *testing.T) {
	svc, _, _ := newService(t)
	neg := decimal.NewFromInt(-1)
	err := svc.Apply(context.Background(), dto.UpdateSettingsRequest{FreeShippingThreshold: &neg})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
