package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ganancias-api/internal/application/dto"
	"github.com/jhoicas/Ganancias-api/internal/domain"
	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
	"github.com/jhoicas/Ganancias-api/internal/domain/repository"
	"github.com/jhoicas/Ganancias-api/pkg/logger"
)

// QuickDiscount botón de descuento preconfigurado (distinto de las ofertas).
type QuickDiscount struct {
	Label    string
	Discount entity.Discount
}

type quickDiscountJSON struct {
	Label string          `json:"label"`
	Type  string          `json:"type"`
	Value decimal.Decimal `json:"value"`
	Code  string          `json:"code,omitempty"`
}

// Service acceso tipado a la configuración de negocio.
type Service struct {
	repo             repository.SettingRepository
	cache            *Cache
	defaultThreshold decimal.Decimal
	log              *logger.Logger
}

// NewService construye el servicio. defaultThreshold es el respaldo cuando la base no responde o no tiene valor.
func NewService(repo repository.SettingRepository, cache *Cache, defaultThreshold decimal.Decimal, log *logger.Logger) *Service {
	return &Service{repo: repo, cache: cache, defaultThreshold: defaultThreshold, log: log}
}

// FreeShippingThreshold umbral vigente; nunca falla (usa el respaldo y registra el motivo).
func (s *Service) FreeShippingThreshold(ctx context.Context) decimal.Decimal {
	setting, err := s.cache.Get(ctx, entity.SettingFreeShippingThreshold)
	if err != nil {
		s.log.Warn().Err(err).Msg("no se pudo leer el umbral de envío gratis, se usa el valor por defecto")
		return s.defaultThreshold
	}
	if setting == nil {
		return s.defaultThreshold
	}
	v, err := decimal.NewFromString(setting.Value)
	if err != nil || v.IsNegative() {
		s.log.Warn().Str("value", setting.Value).Msg("umbral de envío gratis inválido, se usa el valor por defecto")
		return s.defaultThreshold
	}
	return v
}

// SetFreeShippingThreshold guarda el umbral e invalida el caché local.
func (s *Service) SetFreeShippingThreshold(ctx context.Context, v decimal.Decimal) error {
	if v.IsNegative() {
		return fmt.Errorf("%w: el umbral no puede ser negativo", domain.ErrInvalidInput)
	}
	err := s.repo.Set(ctx, &entity.Setting{
		Key:       entity.SettingFreeShippingThreshold,
		Value:     v.String(),
		UpdatedAt: time.Now(),
	})
	if err != nil {
		return err
	}
	s.cache.Invalidate(entity.SettingFreeShippingThreshold)
	return nil
}

// QuickDiscounts lista de descuentos rápidos (vacía si no hay configuración).
func (s *Service) QuickDiscounts(ctx context.Context) ([]QuickDiscount, error) {
	setting, err := s.cache.Get(ctx, entity.SettingQuickDiscounts)
	if err != nil {
		return nil, err
	}
	if setting == nil || setting.Value == "" {
		return []QuickDiscount{}, nil
	}
	var raw []quickDiscountJSON
	if err := json.Unmarshal([]byte(setting.Value), &raw); err != nil {
		return nil, fmt.Errorf("quick_discounts: %w", err)
	}
	out := make([]QuickDiscount, 0, len(raw))
	for _, r := range raw {
		out = append(out, QuickDiscount{
			Label:    r.Label,
			Discount: entity.Discount{Type: entity.DiscountType(r.Type), Value: r.Value, Code: r.Code},
		})
	}
	return out, nil
}

// SetQuickDiscounts valida y guarda la lista completa.
func (s *Service) SetQuickDiscounts(ctx context.Context, list []QuickDiscount) error {
	raw := make([]quickDiscountJSON, 0, len(list))
	for i, q := range list {
		if q.Label == "" {
			return fmt.Errorf("%w: descuento rápido %d sin etiqueta", domain.ErrInvalidInput, i+1)
		}
		if err := q.Discount.Validate(); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		raw = append(raw, quickDiscountJSON{
			Label: q.Label, Type: string(q.Discount.Type), Value: q.Discount.Value, Code: q.Discount.Code,
		})
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	if err := s.repo.Set(ctx, &entity.Setting{Key: entity.SettingQuickDiscounts, Value: string(b), UpdatedAt: time.Now()}); err != nil {
		return err
	}
	s.cache.Invalidate(entity.SettingQuickDiscounts)
	return nil
}

// View configuración vigente en formato de la API. autoDetect viene de la configuración de arranque.
func (s *Service) View(ctx context.Context, autoDetect bool) (*dto.SettingsResponse, error) {
	quick, err := s.QuickDiscounts(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.SettingsResponse{
		FreeShippingThreshold:  s.FreeShippingThreshold(ctx),
		AutoDetectFreeShipping: autoDetect,
		QuickDiscounts:         make([]dto.QuickDiscountDTO, 0, len(quick)),
	}
	for _, q := range quick {
		out.QuickDiscounts = append(out.QuickDiscounts, dto.QuickDiscountDTO{
			Label: q.Label, Type: string(q.Discount.Type), Value: q.Discount.Value, Code: q.Discount.Code,
		})
	}
	return out, nil
}

// Apply guarda los campos presentes en la petición.
func (s *Service) Apply(ctx context.Context, in dto.UpdateSettingsRequest) error {
	if in.FreeShippingThreshold != nil {
		if err := s.SetFreeShippingThreshold(ctx, *in.FreeShippingThreshold); err != nil {
			return err
		}
	}
	if in.QuickDiscounts != nil {
		list := make([]QuickDiscount, 0, len(in.QuickDiscounts))
		for _, q := range in.QuickDiscounts {
			list = append(list, QuickDiscount{
				Label:    q.Label,
				Discount: entity.Discount{Type: entity.DiscountType(q.Type), Value: q.Value, Code: q.Code},
			})
		}
		if err := s.SetQuickDiscounts(ctx, list); err != nil {
			return err
		}
	}
	return nil
}
