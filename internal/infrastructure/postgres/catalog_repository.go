package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
	"github.com/jhoicas/Ganancias-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository        = (*ProductRepo)(nil)
	_ repository.ShippingMethodRepository = (*Store[entity.ShippingMethod, shippingMethodRow])(nil)
	_ repository.PaymentMethodRepository  = (*Store[entity.PaymentMethod, paymentMethodRow])(nil)
	_ repository.OfferRepository          = (*Store[entity.Offer, offerRow])(nil)
	_ repository.ExpenseRepository        = (*ExpenseRepo)(nil)
	_ repository.NameMappingRepository    = (*NameMappingRepo)(nil)
)

// ── Productos ─────────────────────────────────────────────────────────────────

type productRow struct {
	ID           string          `db:"id"`
	Name         string          `db:"name"`
	SKU          string          `db:"sku"`
	Cost         decimal.Decimal `db:"cost"`
	SellingPrice decimal.Decimal `db:"selling_price"`
	Owner        string          `db:"owner"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

var productTable = table[entity.Product, productRow]{
	name:    "products",
	columns: []string{"id", "name", "sku", "cost", "selling_price", "owner", "created_at", "updated_at"},
	orderBy: "name",
	toExternal: func(p *entity.Product) (productRow, error) {
		return productRow{p.ID, p.Name, p.SKU, p.Cost, p.SellingPrice, string(p.Owner), p.CreatedAt, p.UpdatedAt}, nil
	},
	args: func(r productRow) []any {
		return []any{r.ID, r.Name, r.SKU, r.Cost, r.SellingPrice, r.Owner, r.CreatedAt, r.UpdatedAt}
	},
	toInternal: func(r productRow) (*entity.Product, error) {
		return &entity.Product{
			ID: r.ID, Name: r.Name, SKU: r.SKU, Cost: r.Cost, SellingPrice: r.SellingPrice,
			Owner: entity.Owner(r.Owner), CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
		}, nil
	},
}

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	*Store[entity.Product, productRow]
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{newStore(q, productTable)}
}

// GetBySKU obtiene un producto por SKU; (nil, nil) si no existe.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.one(ctx, "sku = $1", sku)
}

// ── Métodos de envío y pago ───────────────────────────────────────────────────

type shippingMethodRow struct {
	ID        string          `db:"id"`
	Name      string          `db:"name"`
	Cost      decimal.Decimal `db:"cost"`
	Active    bool            `db:"active"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

var shippingMethodTable = table[entity.ShippingMethod, shippingMethodRow]{
	name:    "shipping_methods",
	columns: []string{"id", "name", "cost", "active", "created_at", "updated_at"},
	orderBy: "name",
	toExternal: func(s *entity.ShippingMethod) (shippingMethodRow, error) {
		return shippingMethodRow{s.ID, s.Name, s.Cost, s.Active, s.CreatedAt, s.UpdatedAt}, nil
	},
	args: func(r shippingMethodRow) []any {
		return []any{r.ID, r.Name, r.Cost, r.Active, r.CreatedAt, r.UpdatedAt}
	},
	toInternal: func(r shippingMethodRow) (*entity.ShippingMethod, error) {
		return &entity.ShippingMethod{ID: r.ID, Name: r.Name, Cost: r.Cost, Active: r.Active, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}, nil
	},
}

// NewShippingMethodRepository construye el adaptador de métodos de envío.
func NewShippingMethodRepository(q Querier) *Store[entity.ShippingMethod, shippingMethodRow] {
	return newStore(q, shippingMethodTable)
}

type paymentMethodRow struct {
	ID            string          `db:"id"`
	Name          string          `db:"name"`
	FeePercentage decimal.Decimal `db:"fee_percentage"`
	FeeFixed      decimal.Decimal `db:"fee_fixed"`
	TaxRate       decimal.Decimal `db:"tax_rate"`
	CustomerFee   decimal.Decimal `db:"customer_fee"`
	DisplayOrder  int             `db:"display_order"`
	Active        bool            `db:"active"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

var paymentMethodTable = table[entity.PaymentMethod, paymentMethodRow]{
	name: "payment_methods",
	columns: []string{"id", "name", "fee_percentage", "fee_fixed", "tax_rate", "customer_fee",
		"display_order", "active", "created_at", "updated_at"},
	orderBy: "display_order, name",
	toExternal: func(p *entity.PaymentMethod) (paymentMethodRow, error) {
		return paymentMethodRow{p.ID, p.Name, p.FeePercentage, p.FeeFixed, p.TaxRate, p.CustomerFee,
			p.DisplayOrder, p.Active, p.CreatedAt, p.UpdatedAt}, nil
	},
	args: func(r paymentMethodRow) []any {
		return []any{r.ID, r.Name, r.FeePercentage, r.FeeFixed, r.TaxRate, r.CustomerFee,
			r.DisplayOrder, r.Active, r.CreatedAt, r.UpdatedAt}
	},
	toInternal: func(r paymentMethodRow) (*entity.PaymentMethod, error) {
		return &entity.PaymentMethod{
			ID: r.ID, Name: r.Name, FeePercentage: r.FeePercentage, FeeFixed: r.FeeFixed, TaxRate: r.TaxRate,
			CustomerFee: r.CustomerFee, DisplayOrder: r.DisplayOrder, Active: r.Active,
			CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
		}, nil
	},
}

// NewPaymentMethodRepository construye el adaptador de métodos de pago.
func NewPaymentMethodRepository(q Querier) *Store[entity.PaymentMethod, paymentMethodRow] {
	return newStore(q, paymentMethodTable)
}

// ── Ofertas ───────────────────────────────────────────────────────────────────

type offerRow struct {
	ID               string          `db:"id"`
	Name             string          `db:"name"`
	TriggerProductID string          `db:"trigger_product_id"`
	TargetProductID  string          `db:"target_product_id"`
	DiscountType     string          `db:"discount_type"`
	DiscountValue    decimal.Decimal `db:"discount_value"`
	Active           bool            `db:"active"`
	StartDate        *time.Time      `db:"start_date"`
	EndDate          *time.Time      `db:"end_date"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
}

var offerTable = table[entity.Offer, offerRow]{
	name: "offers",
	columns: []string{"id", "name", "trigger_product_id", "target_product_id", "discount_type", "discount_value",
		"active", "start_date", "end_date", "created_at", "updated_at"},
	orderBy: "created_at",
	toExternal: func(o *entity.Offer) (offerRow, error) {
		return offerRow{o.ID, o.Name, o.TriggerProductID, o.TargetProductID, string(o.DiscountType), o.DiscountValue,
			o.Active, o.StartDate, o.EndDate, o.CreatedAt, o.UpdatedAt}, nil
	},
	args: func(r offerRow) []any {
		return []any{r.ID, r.Name, r.TriggerProductID, r.TargetProductID, r.DiscountType, r.DiscountValue,
			r.Active, r.StartDate, r.EndDate, r.CreatedAt, r.UpdatedAt}
	},
	toInternal: func(r offerRow) (*entity.Offer, error) {
		return &entity.Offer{
			ID: r.ID, Name: r.Name, TriggerProductID: r.TriggerProductID, TargetProductID: r.TargetProductID,
			DiscountType: entity.DiscountType(r.DiscountType), DiscountValue: r.DiscountValue, Active: r.Active,
			StartDate: r.StartDate, EndDate: r.EndDate, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
		}, nil
	},
}

// NewOfferRepository construye el adaptador de ofertas.
func NewOfferRepository(q Querier) *Store[entity.Offer, offerRow] {
	return newStore(q, offerTable)
}

// ── Gastos ────────────────────────────────────────────────────────────────────

type expenseRow struct {
	ID          string          `db:"id"`
	Category    string          `db:"category"`
	Description string          `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
	Owner       string          `db:"owner"`
	Splits      []byte          `db:"splits"` // JSONB {"socio": porcentaje}
	Date        time.Time       `db:"expense_date"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

var expenseTable = table[entity.Expense, expenseRow]{
	name: "expenses",
	columns: []string{"id", "category", "description", "amount", "owner", "splits", "expense_date",
		"created_at", "updated_at"},
	orderBy: "expense_date, created_at",
	toExternal: func(e *entity.Expense) (expenseRow, error) {
		var splits []byte
		if len(e.Splits) > 0 {
			var err error
			if splits, err = json.Marshal(e.Splits); err != nil {
				return expenseRow{}, err
			}
		}
		return expenseRow{e.ID, string(e.Category), e.Description, e.Amount, string(e.Owner), splits, e.Date,
			e.CreatedAt, e.UpdatedAt}, nil
	},
	args: func(r expenseRow) []any {
		return []any{r.ID, r.Category, r.Description, r.Amount, r.Owner, r.Splits, r.Date, r.CreatedAt, r.UpdatedAt}
	},
	toInternal: func(r expenseRow) (*entity.Expense, error) {
		e := &entity.Expense{
			ID: r.ID, Category: entity.ExpenseCategory(r.Category), Description: r.Description, Amount: r.Amount,
			Owner: entity.Owner(r.Owner), Date: r.Date, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
		}
		if len(r.Splits) > 0 {
			if err := json.Unmarshal(r.Splits, &e.Splits); err != nil {
				return nil, err
			}
		}
		return e, nil
	},
}

// ExpenseRepo gastos sobre PostgreSQL.
type ExpenseRepo struct {
	*Store[entity.Expense, expenseRow]
}

// NewExpenseRepository construye el adaptador de gastos.
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{newStore(q, expenseTable)}
}

// ListByDateRange gastos cuyo día está entre los días de from y to (inclusivo).
func (r *ExpenseRepo) ListByDateRange(ctx context.Context, from, to time.Time) ([]*entity.Expense, error) {
	return r.list(ctx, "expense_date BETWEEN $1::date AND $2::date",
		[]any{from.Format(dayLayout), to.Format(dayLayout)})
}

// ── Mapeos de nombres ─────────────────────────────────────────────────────────

type nameMappingRow struct {
	ID           string    `db:"id"`
	Kind         string    `db:"kind"`
	ExternalName string    `db:"external_name"`
	InternalID   string    `db:"internal_id"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

var nameMappingTable = table[entity.NameMapping, nameMappingRow]{
	name:    "name_mappings",
	columns: []string{"id", "kind", "external_name", "internal_id", "created_at", "updated_at"},
	orderBy: "kind, external_name",
	toExternal: func(m *entity.NameMapping) (nameMappingRow, error) {
		return nameMappingRow{m.ID, string(m.Kind), m.ExternalName, m.InternalID, m.CreatedAt, m.UpdatedAt}, nil
	},
	args: func(r nameMappingRow) []any {
		return []any{r.ID, r.Kind, r.ExternalName, r.InternalID, r.CreatedAt, r.UpdatedAt}
	},
	toInternal: func(r nameMappingRow) (*entity.NameMapping, error) {
		return &entity.NameMapping{
			ID: r.ID, Kind: entity.MappingKind(r.Kind), ExternalName: r.ExternalName, InternalID: r.InternalID,
			CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
		}, nil
	},
}

// NameMappingRepo mapeos Salla → entidades internas.
type NameMappingRepo struct {
	*Store[entity.NameMapping, nameMappingRow]
}

// NewNameMappingRepository construye el adaptador de mapeos.
func NewNameMappingRepository(q Querier) *NameMappingRepo {
	return &NameMappingRepo{newStore(q, nameMappingTable)}
}

// FindByExternalName coincidencia exacta por tipo y nombre; (nil, nil) si no hay mapeo.
func (r *NameMappingRepo) FindByExternalName(ctx context.Context, kind entity.MappingKind, name string) (*entity.NameMapping, error) {
	return r.one(ctx, "kind = $1 AND external_name = $2", string(kind), name)
}
