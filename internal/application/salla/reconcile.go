// Package salla importa pedidos desde la exportación CSV de Salla: lectura (sallacsv), conciliación
// de nombres contra los mapeos del usuario y alta de pedidos a través del orquestador.
package salla

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ganancias-api/internal/application/orders"
	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
	"github.com/jhoicas/Ganancias-api/internal/domain/repository"
	"github.com/jhoicas/Ganancias-api/internal/domain/sallacsv"
	"github.com/jhoicas/Ganancias-api/pkg/logger"
)

// RowCheck estado de conciliación de una fila.
type RowCheck struct {
	Line         int             `json:"line"`
	OrderNumber  string          `json:"order_number"`
	CustomerName string          `json:"customer_name"`
	Total        decimal.Decimal `json:"total"`
	Products     int             `json:"products"`
	Importable   bool            `json:"importable"`
	Problems     []string        `json:"problems,omitempty"`
}

// Preview resultado de conciliar todas las filas. Un nombre sin mapear bloquea el lote completo.
type Preview struct {
	Rows             []RowCheck `json:"rows"`
	UnmappedProducts []string   `json:"unmapped_products"`
	UnmappedShipping []string   `json:"unmapped_shipping"`
	UnmappedPayments []string   `json:"unmapped_payments"`
	Blocked          bool       `json:"blocked"`
	ImportableCount  int        `json:"importable_count"`
}

// resolved fila conciliada con su borrador listo para el orquestador.
type resolved struct {
	row   sallacsv.Row
	draft orders.Draft
	check RowCheck
}

// Reconciler busca cada nombre externo en los mapeos y carga la entidad interna.
// Una consulta por fila y por nombre, en secuencia; un fallo de consulta cuenta como "sin mapear".
type Reconciler struct {
	mappings repository.NameMappingRepository
	products repository.ProductRepository
	shipping repository.ShippingMethodRepository
	payments repository.PaymentMethodRepository
	log      *logger.Logger
}

// NewReconciler construye el conciliador.
func NewReconciler(
	mappings repository.NameMappingRepository,
	products repository.ProductRepository,
	shipping repository.ShippingMethodRepository,
	payments repository.PaymentMethodRepository,
	log *logger.Logger,
) *Reconciler {
	return &Reconciler{mappings: mappings, products: products, shipping: shipping, payments: payments, log: log}
}

// Reconcile concilia las filas leídas.
func (r *Reconciler) Reconcile(ctx context.Context, rows []sallacsv.Row) (Preview, []resolved) {
	p := Preview{
		Rows:             make([]RowCheck, 0, len(rows)),
		UnmappedProducts: []string{},
		UnmappedShipping: []string{},
		UnmappedPayments: []string{},
	}
	seen := map[entity.MappingKind]map[string]bool{
		entity.MappingProduct:  {},
		entity.MappingShipping: {},
		entity.MappingPayment:  {},
	}
	unmapped := func(kind entity.MappingKind, name string, list *[]string) {
		if !seen[kind][name] {
			seen[kind][name] = true
			*list = append(*list, name)
		}
	}

	out := make([]resolved, 0, len(rows))
	for _, row := range rows {
		res := resolved{row: row, check: RowCheck{
			Line:         row.Line,
			OrderNumber:  row.OrderNumber,
			CustomerName: row.CustomerName,
			Total:        row.Total,
		}}
		d := orders.Draft{OrderNumber: row.OrderNumber, CustomerName: row.CustomerName, Date: row.Date}
		var problems []string

		index := make(map[string]int)
		for _, sp := range row.Products {
			if sp.Quantity <= 0 {
				continue
			}
			res.check.Products++
			prod := r.product(ctx, sp.Name)
			if prod == nil {
				unmapped(entity.MappingProduct, sp.Name, &p.UnmappedProducts)
				problems = append(problems, fmt.Sprintf("producto sin mapear: %s", sp.Name))
				continue
			}
			if i, ok := index[prod.ID]; ok {
				d.Items[i].Quantity += sp.Quantity
				continue
			}
			index[prod.ID] = len(d.Items)
			d.Items = append(d.Items, entity.OrderItem{Product: *prod, Quantity: sp.Quantity})
		}

		// Un nombre vacío no bloquea el lote (no hay nada que mapear), pero la fila no se importa.
		if row.ShippingCompany == "" {
			problems = append(problems, "sin empresa de envío")
		} else if s := r.shippingMethod(ctx, row.ShippingCompany); s != nil {
			d.ShippingMethod = s
			free := row.ShippingCost.IsZero()
			d.ManualFreeShipping = &free
		} else {
			unmapped(entity.MappingShipping, row.ShippingCompany, &p.UnmappedShipping)
			problems = append(problems, fmt.Sprintf("envío sin mapear: %s", row.ShippingCompany))
		}
		if row.PaymentMethod == "" {
			problems = append(problems, "sin método de pago")
		} else if pm := r.paymentMethod(ctx, row.PaymentMethod); pm != nil {
			d.PaymentMethod = pm
		} else {
			unmapped(entity.MappingPayment, row.PaymentMethod, &p.UnmappedPayments)
			problems = append(problems, fmt.Sprintf("pago sin mapear: %s", row.PaymentMethod))
		}
		if row.Discount.IsPositive() {
			d.Discount = &entity.Discount{Type: entity.DiscountFixed, Value: row.Discount}
		}

		problems = append(problems, validateRow(row, res.check.Products)...)
		res.check.Problems = problems
		res.check.Importable = len(problems) == 0
		if res.check.Importable {
			p.ImportableCount++
		}
		res.draft = d
		p.Rows = append(p.Rows, res.check)
		out = append(out, res)
	}
	p.Blocked = len(p.UnmappedProducts)+len(p.UnmappedShipping)+len(p.UnmappedPayments) > 0
	return p, out
}

// validateRow reglas individuales: número, cliente, al menos un producto, total positivo.
func validateRow(row sallacsv.Row, products int) []string {
	var out []string
	if row.OrderNumber == "" {
		out = append(out, "sin número de pedido")
	}
	if row.CustomerName == "" {
		out = append(out, "sin nombre de cliente")
	}
	if products == 0 {
		out = append(out, "sin productos")
	}
	if !row.Total.IsPositive() {
		out = append(out, "total no positivo")
	}
	return out
}

func (r *Reconciler) lookup(ctx context.Context, kind entity.MappingKind, name string) string {
	m, err := r.mappings.FindByExternalName(ctx, kind, name)
	if err != nil {
		r.log.Warn().Err(err).Str("kind", string(kind)).Str("name", name).Msg("fallo la búsqueda de mapeo, se trata como sin mapear")
		return ""
	}
	if m == nil {
		return ""
	}
	return m.InternalID
}

func (r *Reconciler) product(ctx context.Context, name string) *entity.Product {
	id := r.lookup(ctx, entity.MappingProduct, name)
	if id == "" {
		return nil
	}
	p, err := r.products.GetByID(ctx, id)
	if err != nil {
		r.log.Warn().Err(err).Str("product_id", id).Msg("no se pudo cargar el producto mapeado")
		return nil
	}
	return p
}

func (r *Reconciler) shippingMethod(ctx context.Context, name string) *entity.ShippingMethod {
	id := r.lookup(ctx, entity.MappingShipping, name)
	if id == "" {
		return nil
	}
	s, err := r.shipping.GetByID(ctx, id)
	if err != nil {
		r.log.Warn().Err(err).Str("shipping_method_id", id).Msg("no se pudo cargar el método de envío mapeado")
		return nil
	}
	return s
}

func (r *Reconciler) paymentMethod(ctx context.Context, name string) *entity.PaymentMethod {
	id := r.lookup(ctx, entity.MappingPayment, name)
	if id == "" {
		return nil
	}
	p, err := r.payments.GetByID(ctx, id)
	if err != nil {
		r.log.Warn().Err(err).Str("payment_method_id", id).Msg("no se pudo cargar el método de pago mapeado")
		return nil
	}
	return p
}
