package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Ganancias-api/internal/domain"
	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
	"github.com/jhoicas/Ganancias-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository        = (*ProductRepo)(nil)
	_ repository.ShippingMethodRepository = (*Store[entity.ShippingMethod, *entity.ShippingMethod])(nil)
	_ repository.PaymentMethodRepository  = (*Store[entity.PaymentMethod, *entity.PaymentMethod])(nil)
	_ repository.OfferRepository          = (*Store[entity.Offer, *entity.Offer])(nil)
	_ repository.OrderRepository          = (*OrderRepo)(nil)
	_ repository.ExpenseRepository        = (*ExpenseRepo)(nil)
	_ repository.NameMappingRepository    = (*NameMappingRepo)(nil)
	_ repository.SettingRepository        = (*SettingRepo)(nil)
	_ repository.UserRepository           = (*UserRepo)(nil)
)

// ProductRepo productos en memoria.
type ProductRepo struct {
	*Store[entity.Product, *entity.Product]
}

// NewProductRepository crea el repositorio.
func NewProductRepository() *ProductRepo {
	return &ProductRepo{NewStore[entity.Product, *entity.Product]()}
}

// GetBySKU busca por SKU exacto.
func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	return r.find(func(p *entity.Product) bool { return p.SKU == sku }), nil
}

// NewShippingMethodRepository crea el repositorio de métodos de envío.
func NewShippingMethodRepository() *Store[entity.ShippingMethod, *entity.ShippingMethod] {
	return NewStore[entity.ShippingMethod, *entity.ShippingMethod]()
}

// NewPaymentMethodRepository crea el repositorio de métodos de pago.
func NewPaymentMethodRepository() *Store[entity.PaymentMethod, *entity.PaymentMethod] {
	return NewStore[entity.PaymentMethod, *entity.PaymentMethod]()
}

// NewOfferRepository crea el repositorio de ofertas.
func NewOfferRepository() *Store[entity.Offer, *entity.Offer] {
	return NewStore[entity.Offer, *entity.Offer]()
}

// OrderRepo pedidos en memoria. El número de pedido es único como en la tabla.
type OrderRepo struct {
	*Store[entity.Order, *entity.Order]
}

// NewOrderRepository crea el repositorio.
func NewOrderRepository() *OrderRepo {
	return &OrderRepo{NewStore[entity.Order, *entity.Order]()}
}

// Upsert rechaza un número de pedido repetido con ErrDuplicate.
func (r *OrderRepo) Upsert(ctx context.Context, o *entity.Order) error {
	if other := r.find(func(x *entity.Order) bool { return x.OrderNumber == o.OrderNumber && x.ID != o.ID }); other != nil {
		return domain.ErrDuplicate
	}
	return r.Store.Upsert(ctx, o)
}

// GetByOrderNumber busca por número exacto.
func (r *OrderRepo) GetByOrderNumber(_ context.Context, number string) (*entity.Order, error) {
	return r.find(func(o *entity.Order) bool { return o.OrderNumber == number }), nil
}

// ListByDateRange pedidos con fecha en [from, to], por fecha ascendente.
func (r *OrderRepo) ListByDateRange(_ context.Context, from, to time.Time) ([]*entity.Order, error) {
	out := r.filter(func(o *entity.Order) bool { return !o.Date.Before(from) && !o.Date.After(to) })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// ExpenseRepo gastos en memoria.
type ExpenseRepo struct {
	*Store[entity.Expense, *entity.Expense]
}

// NewExpenseRepository crea el repositorio.
func NewExpenseRepository() *ExpenseRepo {
	return &ExpenseRepo{NewStore[entity.Expense, *entity.Expense]()}
}

// ListByDateRange gastos cuyo día está entre los días de from y to (inclusivo).
func (r *ExpenseRepo) ListByDateRange(_ context.Context, from, to time.Time) ([]*entity.Expense, error) {
	lo, hi := from.Format("2006-01-02"), to.Format("2006-01-02")
	out := r.filter(func(e *entity.Expense) bool {
		d := e.Date.Format("2006-01-02")
		return d >= lo && d <= hi
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// NameMappingRepo mapeos en memoria.
type NameMappingRepo struct {
	*Store[entity.NameMapping, *entity.NameMapping]
}

// NewNameMappingRepository crea el repositorio.
func NewNameMappingRepository() *NameMappingRepo {
	return &NameMappingRepo{NewStore[entity.NameMapping, *entity.NameMapping]()}
}

// FindByExternalName coincidencia exacta.
func (r *NameMappingRepo) FindByExternalName(_ context.Context, kind entity.MappingKind, name string) (*entity.NameMapping, error) {
	return r.find(func(m *entity.NameMapping) bool { return m.Kind == kind && m.ExternalName == name }), nil
}

// SettingRepo settings en memoria.
type SettingRepo struct {
	mu    sync.RWMutex
	items map[string]entity.Setting
}

// NewSettingRepository crea el repositorio.
func NewSettingRepository() *SettingRepo {
	return &SettingRepo{items: make(map[string]entity.Setting)}
}

// Get devuelve (nil, nil) si la clave no existe.
func (r *SettingRepo) Get(_ context.Context, key string) (*entity.Setting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.items[key]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

// Set inserta o reemplaza.
func (r *SettingRepo) Set(_ context.Context, s *entity.Setting) error {
	r.mu.Lock()
	r.items[s.Key] = *s
	r.mu.Unlock()
	return nil
}

// UserRepo usuarios en memoria.
type UserRepo struct {
	mu    sync.RWMutex
	items map[string]entity.User
}

// NewUserRepository crea el repositorio.
func NewUserRepository() *UserRepo {
	return &UserRepo{items: make(map[string]entity.User)}
}

// Create falla con ErrDuplicate si el email ya existe.
func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.items {
		if x.Email == u.Email {
			return domain.ErrDuplicate
		}
	}
	r.items[u.ID] = *u
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// FindByEmail devuelve (nil, nil) si no existe.
func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.items {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

// Update reemplaza el usuario.
func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.items[u.ID] = *u
	return nil
}

// TxRunner simula la transacción del lote: si fn falla, los pedidos vuelven al estado previo.
type TxRunner struct {
	Orders *OrderRepo
}

// RunImport ejecuta fn con el repositorio de pedidos y revierte en caso de error.
func (t *TxRunner) RunImport(_ context.Context, fn func(orders repository.OrderRepository) error) error {
	items, order := t.Orders.snapshot()
	if err := fn(t.Orders); err != nil {
		t.Orders.restore(items, order)
		return err
	}
	return nil
}
