package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ganancias-api/internal/application/dto"
	"github.com/jhoicas/Ganancias-api/internal/domain"
	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
	"github.com/jhoicas/Ganancias-api/internal/domain/pricing"
	"github.com/jhoicas/Ganancias-api/internal/domain/profit"
	"github.com/jhoicas/Ganancias-api/internal/domain/repository"
)

// UseCase casos de uso de pedidos: validar → calcular (solo vía orquestador) → persistir snapshot.
type UseCase struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	shipping repository.ShippingMethodRepository
	payments repository.PaymentMethodRepository
	calc     *Calculator
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	shipping repository.ShippingMethodRepository,
	payments repository.PaymentMethodRepository,
	calc *Calculator,
) *UseCase {
	return &UseCase{orders: orders, products: products, shipping: shipping, payments: payments, calc: calc}
}

// Calculate vista previa: no exige número de pedido ni persiste nada.
func (uc *UseCase) Calculate(ctx context.Context, req dto.OrderRequest) (*dto.OrderCalculationResponse, error) {
	d, err := uc.resolve(ctx, req)
	if err != nil {
		return nil, err
	}
	in, err := uc.calc.Input(ctx, d)
	if err != nil {
		return nil, err
	}
	return toCalculationResponse(pricing.CalculateCompleteOrder(in), in.FreeShippingThreshold), nil
}

// Create crea un pedido manual.
func (uc *UseCase) Create(ctx context.Context, req dto.OrderRequest) (*dto.OrderResponse, error) {
	d, err := uc.resolve(ctx, req)
	if err != nil {
		return nil, err
	}
	o, err := uc.Save(ctx, d, entity.OrderSourceManual, nil)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(o), nil
}

// Save valida el borrador, calcula y persiste un pedido nuevo. Lo usa también la importación.
func (uc *UseCase) Save(ctx context.Context, d Draft, source string, sourceTotal *decimal.Decimal) (*entity.Order, error) {
	if err := validateDraft(d); err != nil {
		return nil, err
	}
	if err := uc.ensureUniqueNumber(ctx, d.OrderNumber, ""); err != nil {
		return nil, err
	}
	calc, err := uc.calc.Calculate(ctx, d)
	if err != nil {
		return nil, err
	}
	o := &entity.Order{Source: source, SourceTotal: sourceTotal}
	fill(o, d, uc.calc)
	calc.ApplyTo(o)
	o.Stamp(uuid.New().String(), time.Now())
	if err := uc.orders.Upsert(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// Update recalcula y reemplaza un pedido existente. Origen y total externo se conservan.
func (uc *UseCase) Update(ctx context.Context, id string, req dto.OrderRequest) (*dto.OrderResponse, error) {
	o, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	d, err := uc.resolve(ctx, req)
	if err != nil {
		return nil, err
	}
	if d.Date.IsZero() {
		d.Date = o.Date
	}
	if err := validateDraft(d); err != nil {
		return nil, err
	}
	if err := uc.ensureUniqueNumber(ctx, d.OrderNumber, o.ID); err != nil {
		return nil, err
	}
	calc, err := uc.calc.Calculate(ctx, d)
	if err != nil {
		return nil, err
	}
	fill(o, d, uc.calc)
	calc.ApplyTo(o)
	o.Stamp("", time.Now())
	if err := uc.orders.Upsert(ctx, o); err != nil {
		return nil, err
	}
	return ToOrderResponse(o), nil
}

// GetByID obtiene un pedido.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	o, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(o), nil
}

// List lista pedidos; con rango filtra por fecha (inclusivo).
func (uc *UseCase) List(ctx context.Context, from, to *time.Time) ([]dto.OrderResponse, error) {
	var (
		list []*entity.Order
		err  error
	)
	if from != nil && to != nil {
		list, err = uc.orders.ListByDateRange(ctx, *from, *to)
	} else {
		list, err = uc.orders.GetAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *ToOrderResponse(o))
	}
	return out, nil
}

// Delete elimina un pedido.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.orders.Delete(ctx, id)
}

func (uc *UseCase) get(ctx context.Context, id string) (*entity.Order, error) {
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

func (uc *UseCase) ensureUniqueNumber(ctx context.Context, number, selfID string) error {
	existing, err := uc.orders.GetByOrderNumber(ctx, number)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return fmt.Errorf("%w: el pedido %s ya existe", domain.ErrDuplicate, number)
	}
	return nil
}

// resolve convierte la petición en un borrador con snapshots del catálogo.
// Las líneas con cantidad 0 se descartan; un mismo producto repetido se acumula.
func (uc *UseCase) resolve(ctx context.Context, req dto.OrderRequest) (Draft, error) {
	d := Draft{
		OrderNumber:        strings.TrimSpace(req.OrderNumber),
		CustomerName:       strings.TrimSpace(req.CustomerName),
		ManualFreeShipping: req.FreeShipping,
	}
	if req.Date != nil {
		d.Date = *req.Date
	}

	index := make(map[string]int)
	for _, it := range req.Items {
		if it.Quantity < 0 {
			return Draft{}, invalid("cantidad negativa para el producto %q", it.ProductID)
		}
		if it.Quantity == 0 {
			continue
		}
		if i, ok := index[it.ProductID]; ok {
			d.Items[i].Quantity += it.Quantity
			continue
		}
		p, err := uc.products.GetByID(ctx, it.ProductID)
		if err != nil {
			return Draft{}, err
		}
		if p == nil {
			return Draft{}, invalid("producto %q no existe", it.ProductID)
		}
		index[it.ProductID] = len(d.Items)
		d.Items = append(d.Items, entity.OrderItem{Product: *p, Quantity: it.Quantity})
	}
	if len(d.Items) == 0 {
		return Draft{}, invalid("el pedido no tiene productos")
	}

	if req.ShippingMethodID != "" {
		s, err := uc.shipping.GetByID(ctx, req.ShippingMethodID)
		if err != nil {
			return Draft{}, err
		}
		if s == nil {
			return Draft{}, invalid("método de envío %q no existe", req.ShippingMethodID)
		}
		d.ShippingMethod = s
	}
	if req.PaymentMethodID != "" {
		p, err := uc.payments.GetByID(ctx, req.PaymentMethodID)
		if err != nil {
			return Draft{}, err
		}
		if p == nil {
			return Draft{}, invalid("método de pago %q no existe", req.PaymentMethodID)
		}
		d.PaymentMethod = p
	}
	if req.Discount != nil {
		disc := &entity.Discount{Type: entity.DiscountType(req.Discount.Type), Value: req.Discount.Value, Code: req.Discount.Code}
		if err := disc.Validate(); err != nil {
			return Draft{}, invalid("%v", err)
		}
		d.Discount = disc
	}
	return d, nil
}

// validateDraft reglas previas al cálculo de un pedido persistible.
func validateDraft(d Draft) error {
	if d.OrderNumber == "" {
		return invalid("el número de pedido es obligatorio")
	}
	n := 0
	for _, it := range d.Items {
		if it.Quantity < 0 {
			return invalid("cantidad negativa en %q", it.Product.Name)
		}
		n += it.Quantity
	}
	if n == 0 {
		return invalid("el pedido no tiene productos")
	}
	if d.Discount != nil {
		if err := d.Discount.Validate(); err != nil {
			return invalid("%v", err)
		}
	}
	return nil
}

// fill copia los datos no financieros del borrador al pedido. Las líneas con cantidad 0 no se guardan.
func fill(o *entity.Order, d Draft, calc *Calculator) {
	o.OrderNumber = d.OrderNumber
	o.CustomerName = d.CustomerName
	o.Date = calc.orderDate(d.Date)
	o.Items = make([]entity.OrderItem, 0, len(d.Items))
	for _, it := range d.Items {
		if it.Quantity > 0 {
			o.Items = append(o.Items, it)
		}
	}
	o.ShippingMethod = d.ShippingMethod
	o.PaymentMethod = d.PaymentMethod
	o.Discount = d.Discount
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
}

// IsValidation indica si el error es de validación (para reportar por fila en la importación).
func IsValidation(err error) bool {
	return errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrDuplicate)
}

func toShares(res profit.Result) []dto.OwnerShareResponse {
	out := make([]dto.OwnerShareResponse, 0, len(res.Shares))
	for _, s := range res.Shares {
		out = append(out, dto.OwnerShareResponse{
			Owner:         string(s.Owner),
			NetProfit:     s.NetProfit,
			ProductCost:   s.ProductCost,
			TotalEarnings: s.TotalEarnings(),
		})
	}
	return out
}

func toAppliedOffer(a *entity.AppliedOffer) *dto.AppliedOfferResponse {
	if a == nil {
		return nil
	}
	return &dto.AppliedOfferResponse{
		OfferID:          a.OfferID,
		OfferName:        a.OfferName,
		TriggerProductID: a.TriggerProductID,
		TargetProductID:  a.TargetProductID,
		UnitDiscount:     a.UnitDiscount,
		Quantity:         a.Quantity,
		DiscountAmount:   a.DiscountAmount,
	}
}

func toCalculationResponse(c pricing.OrderCalculation, threshold decimal.Decimal) *dto.OrderCalculationResponse {
	items := make([]dto.ItemProfitResponse, 0, len(c.Profit.Items))
	for _, it := range c.Profit.Items {
		items = append(items, dto.ItemProfitResponse{
			ProductID:         it.ProductID,
			ProductName:       it.ProductName,
			Owner:             string(it.Owner),
			Revenue:           it.Revenue,
			Cost:              it.Cost,
			GrossProfit:       it.GrossProfit,
			RevenueProportion: it.RevenueProportion,
			ExpenseShare:      it.ExpenseShare,
			NetProfit:         it.NetProfit,
		})
	}
	return &dto.OrderCalculationResponse{
		Subtotal:           c.Subtotal,
		ManualDiscount:     c.ManualDiscount,
		DiscountAmount:     c.DiscountAmount,
		AppliedOffer:       toAppliedOffer(c.AppliedOffer),
		IsFreeShipping:     c.IsFreeShipping,
		FreeShippingLimit:  threshold,
		ShippingCost:       c.ShippingCost,
		ActualShippingCost: c.ActualShippingCost,
		CustomerFee:        c.CustomerFee,
		CustomerTotal:      c.CustomerTotal,
		PaymentFees:        c.PaymentFees,
		NetProfit:          c.NetProfit,
		Items:              items,
		Shares:             toShares(c.Profit),
	}
}

// ToOrderResponse convierte un pedido persistido; el reparto se recalcula desde el snapshot.
func ToOrderResponse(o *entity.Order) *dto.OrderResponse {
	lines := make([]dto.OrderLineResponse, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, dto.OrderLineResponse{
			ProductID:    it.Product.ID,
			Name:         it.Product.Name,
			SKU:          it.Product.SKU,
			Owner:        string(it.Product.Owner),
			Cost:         it.Product.Cost,
			SellingPrice: it.Product.SellingPrice,
			Quantity:     it.Quantity,
		})
	}
	out := &dto.OrderResponse{
		ID:             o.ID,
		OrderNumber:    o.OrderNumber,
		CustomerName:   o.CustomerName,
		Date:           o.Date,
		Items:          lines,
		AppliedOffer:   toAppliedOffer(o.AppliedOffer),
		Subtotal:       o.Subtotal,
		ShippingCost:   o.ShippingCost,
		PaymentFees:    o.PaymentFees,
		DiscountAmount: o.DiscountAmount,
		CustomerFee:    o.CustomerFee,
		Total:          o.Total,
		NetProfit:      o.NetProfit,
		IsFreeShipping: o.IsFreeShipping,
		Source:         o.Source,
		SourceTotal:    o.SourceTotal,
		Shares:         toShares(profit.Distribute(o.Items, pricing.SharedCostsOf(o))),
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
	if o.ShippingMethod != nil {
		out.ShippingMethodID = o.ShippingMethod.ID
		out.ShippingMethodName = o.ShippingMethod.Name
	}
	if o.PaymentMethod != nil {
		out.PaymentMethodID = o.PaymentMethod.ID
		out.PaymentMethodName = o.PaymentMethod.Name
	}
	if o.Discount != nil {
		out.Discount = &dto.DiscountDTO{Type: string(o.Discount.Type), Value: o.Discount.Value, Code: o.Discount.Code}
	}
	return out
}

// WithOrders copia del caso de uso atada a otro repositorio de pedidos (ej. dentro de una transacción).
func (uc *UseCase) WithOrders(repo repository.OrderRepository) *UseCase {
	c := *uc
	c.orders = repo
	return &c
}
