// Package money formatea montos para reportes y exportaciones.
// El cálculo nunca redondea; el redondeo a 2 decimales ocurre solo aquí.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter imprime montos con separadores del idioma configurado.
type Formatter struct {
	p        *message.Printer
	currency string
}

// NewFormatter crea un formateador. lang es una etiqueta BCP 47 ("en", "ar-SA", "es-CO").
// Una etiqueta inválida cae a inglés.
func NewFormatter(lang, currency string) *Formatter {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return &Formatter{p: message.NewPrinter(tag), currency: currency}
}

// Amount monto con 2 decimales y separador de miles, sin moneda.
func (f *Formatter) Amount(v decimal.Decimal) string {
	fv, _ := v.Round(2).Float64()
	return f.p.Sprint(number.Decimal(fv, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// WithCurrency monto seguido del código de moneda.
func (f *Formatter) WithCurrency(v decimal.Decimal) string {
	if f.currency == "" {
		return f.Amount(v)
	}
	return f.Amount(v) + " " + f.currency
}

// Plain monto con 2 decimales sin separadores (CSV).
func Plain(v decimal.Decimal) string {
	return v.StringFixed(2)
}
