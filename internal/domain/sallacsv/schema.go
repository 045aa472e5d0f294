// Package sallacsv lee la exportación de pedidos de Salla: CSV con delimitador ambiguo
// (tabulador, coma o punto y coma), registros que pueden ocupar varias líneas físicas y
// una columna de productos codificada como JSON escapado.
//
// El formato se describe de forma declarativa en columns: un cambio de formato se corrige aquí.
package sallacsv

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Row pedido leído del CSV. Los montos son los que informa Salla (solo referencia).
type Row struct {
	Line            int // línea física donde empieza el registro
	OrderNumber     string
	CustomerName    string
	Subtotal        decimal.Decimal
	Discount        decimal.Decimal
	ShippingCost    decimal.Decimal
	PaymentMethod   string
	CODCommission   decimal.Decimal
	Total           decimal.Decimal
	Date            time.Time
	ShippingCompany string
	Products        []Product
}

// Product línea de producto tal como la nombra Salla.
type Product struct {
	Name     string
	Quantity int
	SKU      string
}

// column describe una columna del formato. parse asigna el valor en la fila;
// un error es una advertencia: la fila sigue con el valor sustituto que dejó parse.
type column struct {
	name  string
	parse func(r *Row, raw string, env *env) error
}

// env datos de contexto para las columnas (zona horaria, reloj).
type env struct {
	loc *time.Location
	now func() time.Time
}

// columns orden fijo de la exportación.
var columns = []column{
	{"order_number", func(r *Row, raw string, _ *env) error { r.OrderNumber = text(raw); return nil }},
	{"customer_name", func(r *Row, raw string, _ *env) error { r.CustomerName = text(raw); return nil }},
	{"subtotal", amountInto(func(r *Row) *decimal.Decimal { return &r.Subtotal })},
	{"discount", amountInto(func(r *Row) *decimal.Decimal { return &r.Discount })},
	{"shipping_cost", amountInto(func(r *Row) *decimal.Decimal { return &r.ShippingCost })},
	{"payment_method", func(r *Row, raw string, _ *env) error { r.PaymentMethod = text(raw); return nil }},
	{"cod_commission", amountInto(func(r *Row) *decimal.Decimal { return &r.CODCommission })},
	{"total", amountInto(func(r *Row) *decimal.Decimal { return &r.Total })},
	{"date", parseDate},
	{"shipping_company", func(r *Row, raw string, _ *env) error { r.ShippingCompany = text(raw); return nil }},
	{"products", parseProducts},
}

// ColumnCount columnas obligatorias por registro.
var ColumnCount = len(columns)

// text quita espacios y comillas envolventes.
func text(raw string) string {
	s := strings.TrimSpace(raw)
	for len(s) >= 1 && (strings.HasPrefix(s, `"`) || strings.HasPrefix(s, `'`)) {
		s = s[1:]
	}
	for len(s) >= 1 && (strings.HasSuffix(s, `"`) || strings.HasSuffix(s, `'`)) {
		s = s[:len(s)-1]
	}
	return strings.TrimSpace(s)
}

// Texto de moneda que puede acompañar a un monto.
var currencyText = regexp.MustCompile(`(?i)ر\.س|ريال|SAR|SR|USD|\$`)

var (
	plainAmount     = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
	thousandsAmount = regexp.MustCompile(`^-?\d{1,3}(,\d{3})+(\.\d+)?$`)
	commaDecimal    = regexp.MustCompile(`^-?\d+,\d{1,2}$`)
)

// asciiDigits pasa dígitos arábigo-índicos (U+0660 y U+06F0) y los separadores árabes a ASCII.
func asciiDigits(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '\u0660' && r <= '\u0669':
			return '0' + (r - '\u0660')
		case r >= '\u06F0' && r <= '\u06F9':
			return '0' + (r - '\u06F0')
		case r == '\u066B':
			return '.'
		case r == '\u066C', r == '\u060C':
			return ','
		}
		return r
	}, s)
}

// parseAmount acepta moneda, espacios y separadores de miles. Una coma seguida de uno o dos
// dígitos es separador decimal ("12,50"). Vacío = 0; cualquier otro texto es un error.
func parseAmount(raw string) (decimal.Decimal, error) {
	s := text(raw)
	if s == "" {
		return decimal.Zero, nil
	}
	s = currencyText.ReplaceAllString(asciiDigits(s), "")
	s = strings.Join(strings.Fields(s), "")
	switch {
	case s == "":
		return decimal.Zero, fmt.Errorf("sin dígitos")
	case plainAmount.MatchString(s):
	case thousandsAmount.MatchString(s):
		s = strings.ReplaceAll(s, ",", "")
	case commaDecimal.MatchString(s):
		s = strings.Replace(s, ",", ".", 1)
	default:
		return decimal.Zero, fmt.Errorf("formato no reconocido %q", s)
	}
	return decimal.NewFromString(s)
}

func amountInto(field func(*Row) *decimal.Decimal) func(*Row, string, *env) error {
	return func(r *Row, raw string, _ *env) error {
		v, err := parseAmount(raw)
		if err != nil {
			*field(r) = decimal.Zero
			return fmt.Errorf("monto inválido %q, se usa 0", strings.TrimSpace(raw))
		}
		*field(r) = v
		return nil
	}
}

// Formatos de fecha aceptados; el primero es el de la exportación (M/D/YYYY H:mm).
var dateLayouts = []string{
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseDate(r *Row, raw string, e *env) error {
	s := text(raw)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, e.loc); err == nil {
			r.Date = t
			return nil
		}
	}
	r.Date = e.now().In(e.loc)
	return fmt.Errorf("fecha inválida %q, se usa la fecha actual", s)
}

// parseProducts lee la lista de productos: JSON de ternas [nombre, cantidad, sku].
// También acepta objetos {"name","quantity","sku"}. Si falla, la lista queda vacía.
func parseProducts(r *Row, raw string, _ *env) error {
	r.Products = []Product{}
	s := unescapeJSON(raw)
	if s == "" {
		return fmt.Errorf("columna de productos vacía")
	}
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(s), &elems); err != nil {
		return fmt.Errorf("JSON de productos inválido: %v", err)
	}
	out := make([]Product, 0, len(elems))
	for i, el := range elems {
		p, err := decodeProduct(el)
		if err != nil {
			return fmt.Errorf("producto %d: %v", i+1, err)
		}
		out = append(out, p)
	}
	r.Products = out
	return nil
}

// unescapeJSON devuelve el primer candidato que sea JSON válido: tal cual, sin comillas
// envolventes con escape CSV ("" → "), o con escape de barra (\" → ").
func unescapeJSON(raw string) string {
	s := strings.TrimSpace(raw)
	inner := s
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		inner = s[1 : len(s)-1]
	}
	candidates := []string{
		s,
		strings.ReplaceAll(inner, `""`, `"`),
		strings.ReplaceAll(s, `""`, `"`),
		strings.ReplaceAll(inner, `\"`, `"`),
	}
	for _, c := range candidates {
		if !json.Valid([]byte(c)) {
			continue
		}
		// Un string JSON que envuelve el arreglo (doble codificación).
		var wrapped string
		if json.Unmarshal([]byte(c), &wrapped) == nil {
			return strings.TrimSpace(wrapped)
		}
		return strings.TrimSpace(c)
	}
	return strings.TrimSpace(candidates[1])
}

func decodeProduct(raw json.RawMessage) (Product, error) {
	var name, qty, sku json.RawMessage
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return Product{}, fmt.Errorf("producto vacío")
	}
	switch trimmed[0] {
	case '[':
		var triple []json.RawMessage
		if err := json.Unmarshal(raw, &triple); err != nil {
			return Product{}, err
		}
		if len(triple) < 2 {
			return Product{}, fmt.Errorf("se esperan [nombre, cantidad, sku]")
		}
		name, qty = triple[0], triple[1]
		if len(triple) > 2 {
			sku = triple[2]
		}
	case '{':
		var obj struct {
			Name     json.RawMessage `json:"name"`
			Quantity json.RawMessage `json:"quantity"`
			SKU      json.RawMessage `json:"sku"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return Product{}, err
		}
		name, qty, sku = obj.Name, obj.Quantity, obj.SKU
	default:
		return Product{}, fmt.Errorf("formato de producto desconocido")
	}

	p := Product{Name: strings.TrimSpace(scalar(name)), SKU: strings.TrimSpace(scalar(sku))}
	if p.Name == "" {
		return Product{}, fmt.Errorf("nombre vacío")
	}
	n, err := decimal.NewFromString(strings.TrimSpace(scalar(qty)))
	if err != nil || !n.IsInteger() || n.IsNegative() {
		return Product{}, fmt.Errorf("cantidad inválida %s", string(qty))
	}
	p.Quantity = int(n.IntPart())
	return p, nil
}

// scalar valor JSON como texto: string sin comillas, número tal cual, null vacío.
func scalar(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
