package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/Ganancias-api/internal/application/dto"
	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
	"github.com/jhoicas/Ganancias-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ShippingMethodUseCase CRUD de métodos de envío.
type ShippingMethodUseCase struct {
	catalog[entity.ShippingMethod, *entity.ShippingMethod]
}

// NewShippingMethodUseCase construye el caso de uso.
func NewShippingMethodUseCase(repo repository.ShippingMethodRepository) *ShippingMethodUseCase {
	return &ShippingMethodUseCase{catalog: newCatalog[entity.ShippingMethod, *entity.ShippingMethod](repo)}
}

// Create crea un método de envío (activo por defecto).
func (uc *ShippingMethodUseCase) Create(ctx context.Context, in dto.ShippingMethodRequest) (*dto.ShippingMethodResponse, error) {
	return uc.store(ctx, &entity.ShippingMethod{}, in)
}

// Update reemplaza un método de envío.
func (uc *ShippingMethodUseCase) Update(ctx context.Context, id string, in dto.ShippingMethodRequest) (*dto.ShippingMethodResponse, error) {
	s, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.store(ctx, s, in)
}

// GetByID obtiene un método de envío.
func (uc *ShippingMethodUseCase) GetByID(ctx context.Context, id string) (*dto.ShippingMethodResponse, error) {
	s, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toShippingMethodResponse(s), nil
}

// List lista los métodos de envío.
func (uc *ShippingMethodUseCase) List(ctx context.Context) ([]dto.ShippingMethodResponse, error) {
	list, err := uc.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapAll(list, func(s *entity.ShippingMethod) dto.ShippingMethodResponse { return *toShippingMethodResponse(s) }), nil
}

// Delete elimina un método de envío.
func (uc *ShippingMethodUseCase) Delete(ctx context.Context, id string) error {
	return uc.delete(ctx, id)
}

func (uc *ShippingMethodUseCase) store(ctx context.Context, s *entity.ShippingMethod, in dto.ShippingMethodRequest) (*dto.ShippingMethodResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("el nombre es obligatorio")
	}
	if in.Cost.IsNegative() {
		return nil, invalid("el costo de envío no puede ser negativo")
	}
	s.Name = name
	s.Cost = in.Cost
	s.Active = boolOr(in.Active, true)
	if err := uc.save(ctx, s); err != nil {
		return nil, err
	}
	return toShippingMethodResponse(s), nil
}

func toShippingMethodResponse(s *entity.ShippingMethod) *dto.ShippingMethodResponse {
	return &dto.ShippingMethodResponse{
		ID:        s.ID,
		Name:      s.Name,
		Cost:      s.Cost,
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// PaymentMethodUseCase CRUD de métodos de pago.
type PaymentMethodUseCase struct {
	catalog[entity.PaymentMethod, *entity.PaymentMethod]
}

// NewPaymentMethodUseCase construye el caso de uso.
func NewPaymentMethodUseCase(repo repository.PaymentMethodRepository) *PaymentMethodUseCase {
	return &PaymentMethodUseCase{catalog: newCatalog[entity.PaymentMethod, *entity.PaymentMethod](repo)}
}

// Create crea un método de pago.
func (uc *PaymentMethodUseCase) Create(ctx context.Context, in dto.PaymentMethodRequest) (*dto.PaymentMethodResponse, error) {
	return uc.store(ctx, &entity.PaymentMethod{}, in)
}

// Update reemplaza un método de pago. Los pedidos guardados conservan la comisión vigente al crearse.
func (uc *PaymentMethodUseCase) Update(ctx context.Context, id string, in dto.PaymentMethodRequest) (*dto.PaymentMethodResponse, error) {
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.store(ctx, p, in)
}

// GetByID obtiene un método de pago.
func (uc *PaymentMethodUseCase) GetByID(ctx context.Context, id string) (*dto.PaymentMethodResponse, error) {
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPaymentMethodResponse(p), nil
}

// List lista los métodos de pago por DisplayOrder.
func (uc *PaymentMethodUseCase) List(ctx context.Context) ([]dto.PaymentMethodResponse, error) {
	list, err := uc.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapAll(list, func(p *entity.PaymentMethod) dto.PaymentMethodResponse { return *toPaymentMethodResponse(p) }), nil
}

// Delete elimina un método de pago.
func (uc *PaymentMethodUseCase) Delete(ctx context.Context, id string) error {
	return uc.delete(ctx, id)
}

func (uc *PaymentMethodUseCase) store(ctx context.Context, p *entity.PaymentMethod, in dto.PaymentMethodRequest) (*dto.PaymentMethodResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("el nombre es obligatorio")
	}
	if in.FeePercentage.IsNegative() || in.FeePercentage.GreaterThan(hundred) {
		return nil, invalid("fee_percentage debe estar entre 0 y 100")
	}
	if in.TaxRate.IsNegative() || in.TaxRate.GreaterThan(hundred) {
		return nil, invalid("tax_rate debe estar entre 0 y 100")
	}
	if in.FeeFixed.IsNegative() || in.CustomerFee.IsNegative() {
		return nil, invalid("fee_fixed y customer_fee no pueden ser negativos")
	}
	p.Name = name
	p.FeePercentage = in.FeePercentage
	p.FeeFixed = in.FeeFixed
	p.TaxRate = in.TaxRate
	p.CustomerFee = in.CustomerFee
	p.DisplayOrder = in.DisplayOrder
	p.Active = boolOr(in.Active, true)
	if err := uc.save(ctx, p); err != nil {
		return nil, err
	}
	return toPaymentMethodResponse(p), nil
}

func toPaymentMethodResponse(p *entity.PaymentMethod) *dto.PaymentMethodResponse {
	return &dto.PaymentMethodResponse{
		ID:            p.ID,
		Name:          p.Name,
		FeePercentage: p.FeePercentage,
		FeeFixed:      p.FeeFixed,
		TaxRate:       p.TaxRate,
		CustomerFee:   p.CustomerFee,
		DisplayOrder:  p.DisplayOrder,
		Active:        p.Active,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
