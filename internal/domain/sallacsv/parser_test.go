package sallacsv_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ganancias-api/internal/domain"
	"github.com/jhoicas/Ganancias-api/internal/domain/sallacsv"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

var (
	riyadh   = time.FixedZone("AST", 3*60*60)
	fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	opts     = sallacsv.Options{Location: riyadh, Now: func() time.Time { return fixedNow }}
)

const tabHeader = "Order Number\tCustomer\tSubtotal\tDiscount\tShipping\tPayment Method\tCOD Fee\tTotal\tDate\tShipping Company\tProducts"

const commaHeader = "order,customer,subtotal,discount,shipping,payment,cod,total,date,company,products"

func tabRow(fields ...string) string { return strings.Join(fields, "\t") }

func tabFile() string {
	return strings.Join([]string{
		tabHeader,
		tabRow("1001", "Ahmed Ali", "130", "0", "15", "Mada", "0", "145", "3/7/2024 9:05", `"Aramex"`,
			`"[[""Serum"",1,""SR-1""],[""Cream"",2,""CR-2""]]"`),
		tabRow("1002", "Sara", "SAR 1,234.50", "20", "0", "Cash On Delivery", "10", "1224.50", "12/25/2024 18:30", "SMSA",
			`"[[""Mask"",1,""MK-1""]]"`),
	}, "\n")
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, d(want).Equal(got), append([]interface{}{"esperado %s, obtenido %s", want, got.String()}, msgAndArgs...)...)
}

func levels(log []sallacsv.LogEntry, level sallacsv.Level) []sallacsv.LogEntry {
	var out []sallacsv.LogEntry
	for _, e := range log {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Delimitador
// ──────────────────────────────────────────────────────────────────────────────

func TestParseWithLog_EscenarioE_DetectaTabulador(t *testing.T) {
	require.Equal(t, 10, strings.Count(tabHeader, "\t"))

	res := sallacsv.ParseWithLog(tabFile(), opts)
	assert.Equal(t, "\t", res.Summary.Delimiter)

	b, err := json.Marshal(res.Summary)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"delimiter":"\t"`)
}

func TestParseWithLog_DetectaPuntoYComa(t *testing.T) {
	header := strings.ReplaceAll(commaHeader, ",", ";")
	row := `2001;Nora;50;0;15;Mada;0;65;1/2/2024 10:00;SMSA;"[[""Mask"",1,""MK-1""]]"`

	res := sallacsv.ParseWithLog(header+"\n"+row, opts)
	assert.Equal(t, ";", res.Summary.Delimiter)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Nora", res.Rows[0].CustomerName)
}

func TestParseWithLog_SinMinimo_EligeElMasFrecuente(t *testing.T) {
	// Cabecera corta: ningún delimitador llega a 10, gana el más frecuente.
	res := sallacsv.ParseWithLog("a;b;c,d\n", opts)
	assert.Equal(t, ";", res.Summary.Delimiter)

	res = sallacsv.ParseWithLog("solo-una-columna\n", opts)
	assert.Equal(t, ",", res.Summary.Delimiter)
}

// ──────────────────────────────────────────────────────────────────────────────
// Filas
// ──────────────────────────────────────────────────────────────────────────────

func TestParseWithLog_ArchivoTabulado(t *testing.T) {
	res := sallacsv.ParseWithLog(tabFile(), opts)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, 2, res.Summary.TotalRows)
	assert.Equal(t, 2, res.Summary.ParsedRows)
	assert.Zero(t, res.Summary.ErrorRows)
	assert.Zero(t, res.Summary.Warnings)

	r := res.Rows[0]
	assert.Equal(t, 2, r.Line)
	assert.Equal(t, "1001", r.OrderNumber)
	assert.Equal(t, "Ahmed Ali", r.CustomerName)
	assertDec(t, "130", r.Subtotal)
	assertDec(t, "15", r.ShippingCost)
	assertDec(t, "145", r.Total)
	assert.Equal(t, "Mada", r.PaymentMethod)
	assert.Equal(t, "Aramex", r.ShippingCompany, "se quitan las comillas envolventes")
	assert.True(t, r.Date.Equal(time.Date(2024, 3, 7, 9, 5, 0, 0, riyadh)))
	assert.Equal(t, []sallacsv.Product{
		{Name: "Serum", Quantity: 1, SKU: "SR-1"},
		{Name: "Cream", Quantity: 2, SKU: "CR-2"},
	}, r.Products)

	r = res.Rows[1]
	assertDec(t, "1234.50", r.Subtotal, "moneda y separador de miles se eliminan")
	assertDec(t, "20", r.Discount)
	assertDec(t, "10", r.CODCommission)
	assert.True(t, r.Date.Equal(time.Date(2024, 12, 25, 18, 30, 0, 0, riyadh)))
}

func TestParseWithLog_RegistroMultilinea(t *testing.T) {
	content := commaHeader + "\n" +
		`1002,Sara,80,0,15,Cash On Delivery,10,105,12/25/2024 18:30,SMSA,"[[""Mask"",1,""MK-1""],` + "\n" +
		`[""Oil"",3,""OL-3""]]"` + "\n" +
		`1003,Omar,40,0,15,Mada,0,55,1/5/2024 8:00,SMSA,"[[""Oil"",1,""OL-3""]]"` + "\n"

	res := sallacsv.ParseWithLog(content, opts)
	require.Len(t, res.Rows, 2, "el salto de línea dentro de comillas no parte el registro")
	assert.Equal(t, 2, res.Summary.TotalRows)
	assert.Equal(t, ",", res.Summary.Delimiter)

	first := res.Rows[0]
	assert.Equal(t, "1002", first.OrderNumber)
	assert.Equal(t, []sallacsv.Product{
		{Name: "Mask", Quantity: 1, SKU: "MK-1"},
		{Name: "Oil", Quantity: 3, SKU: "OL-3"},
	}, first.Products)
	assert.Equal(t, 4, res.Rows[1].Line, "el número de línea es el físico")
}

func TestParseWithLog_FilaCorta_ErrorConDiagnostico(t *testing.T) {
	content := tabFile() + "\n" + tabRow("1003", "Omar", "50")

	res := sallacsv.ParseWithLog(content, opts)
	assert.Len(t, res.Rows, 2, "la fila con error se excluye sin abortar el archivo")
	assert.Equal(t, 3, res.Summary.TotalRows)
	assert.Equal(t, 1, res.Summary.ErrorRows)

	errs := levels(res.Log, sallacsv.LevelError)
	require.Len(t, errs, 1)
	assert.Equal(t, 4, errs[0].Line)
	assert.Equal(t, 3, errs[0].ColumnCount)
	assert.Equal(t, tabRow("1003", "Omar", "50"), errs[0].Raw)
}

func TestParse_FilaCorta_DevuelveErrRowsFailed(t *testing.T) {
	rows, err := sallacsv.Parse(tabFile()+"\n"+tabRow("x", "y"), opts)
	assert.ErrorIs(t, err, domain.ErrRowsFailed)
	assert.Nil(t, rows)

	rows, err = sallacsv.Parse(tabFile(), opts)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestParseWithLog_ColumnasSobrantes_Advertencia(t *testing.T) {
	row := tabRow("1004", "Lina", "50", "0", "15", "Mada", "0", "65", "1/2/2024 10:00", "SMSA", `[["Mask",1,"MK-1"]]`, "extra")
	res := sallacsv.ParseWithLog(tabHeader+"\n"+row, opts)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, 1, res.Summary.Warnings)
	assert.Len(t, res.Rows[0].Products, 1)
}

func TestParseWithLog_FechaInvalida_UsaAhora(t *testing.T) {
	row := tabRow("1005", "Lina", "50", "0", "15", "Mada", "0", "65", "ayer", "SMSA", `[["Mask",1,"MK-1"]]`)
	res := sallacsv.ParseWithLog(tabHeader+"\n"+row, opts)
	require.Len(t, res.Rows, 1)
	assert.True(t, res.Rows[0].Date.Equal(fixedNow))
	assert.Len(t, levels(res.Log, sallacsv.LevelWarning), 1)
}

func TestParseWithLog_ProductosInvalidos_ListaVacia(t *testing.T) {
	row := tabRow("1006", "Lina", "50", "0", "15", "Mada", "0", "65", "1/2/2024 10:00", "SMSA", "no es json")
	res := sallacsv.ParseWithLog(tabHeader+"\n"+row, opts)
	require.Len(t, res.Rows, 1)
	assert.NotNil(t, res.Rows[0].Products)
	assert.Empty(t, res.Rows[0].Products)
	assert.Equal(t, 1, res.Summary.Warnings)
}

func TestParseWithLog_ProductosConEscapeDeBarra(t *testing.T) {
	row := tabRow("1007", "Lina", "50", "0", "15", "Mada", "0", "65", "1/2/2024 10:00", "SMSA", `[[\"Mask\",\"2\",123]]`)
	res := sallacsv.ParseWithLog(tabHeader+"\n"+row, opts)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, []sallacsv.Product{{Name: "Mask", Quantity: 2, SKU: "123"}}, res.Rows[0].Products,
		"cantidad como texto y sku numérico se aceptan")
}

func TestParseWithLog_Montos_FormatosAceptados(t *testing.T) {
	casos := []struct {
		raw  string
		want string
	}{
		{"130", "130"},
		{"SAR 1,234.50", "1234.50"},
		{"1,250", "1250"},
		{"12,50", "12.50"},
		{"12,5", "12.5"},
		{"١٣٠", "130"},
		{"١٬٢٣٤٫٥٠ ر.س", "1234.50"},
		{"۴۵", "45"},
		{"-20 SAR", "-20"},
		{"", "0"},
	}
	for _, c := range casos {
		t.Run(c.raw, func(t *testing.T) {
			row := tabRow("2001", "Lina", c.raw, "0", "15", "Mada", "0", "65", "1/2/2024 10:00", "SMSA", `[["Mask",1,"MK-1"]]`)
			res := sallacsv.ParseWithLog(tabHeader+"\n"+row, opts)
			require.Len(t, res.Rows, 1)
			assertDec(t, c.want, res.Rows[0].Subtotal)
			assert.Zero(t, res.Summary.Warnings)
		})
	}
}

func TestParseWithLog_Montos_TextoInvalidoAdvierte(t *testing.T) {
	for _, raw := range []string{"N/A", "SAR", "12.5.0", "1,2345", "12abc", "12,345,67"} {
		t.Run(raw, func(t *testing.T) {
			row := tabRow("2002", "Lina", "50", raw, "15", "Mada", "0", "65", "1/2/2024 10:00", "SMSA", `[["Mask",1,"MK-1"]]`)
			res := sallacsv.ParseWithLog(tabHeader+"\n"+row, opts)
			require.Len(t, res.Rows, 1)
			assert.True(t, res.Rows[0].Discount.IsZero())
			warns := levels(res.Log, sallacsv.LevelWarning)
			require.Len(t, warns, 1)
			assert.Contains(t, warns[0].Message, "discount")
		})
	}
}

func TestParseWithLog_Montos_FilaMixta(t *testing.T) {
	row := tabRow("2003", "Lina", "١٣٠", "N/A", "15", "Mada", "0", "12,50", "1/2/2024 10:00", "SMSA", `[["Mask",1,"MK-1"]]`)
	res := sallacsv.ParseWithLog(tabHeader+"\n"+row, opts)
	require.Len(t, res.Rows, 1)
	r := res.Rows[0]
	assertDec(t, "130", r.Subtotal)
	assertDec(t, "0", r.Discount)
	assertDec(t, "12.50", r.Total)
	assert.Equal(t, 1, res.Summary.Warnings, "solo el descuento N/A advierte")
}

func TestParseWithLog_CabeceraIncompleta_SoloAdvierte(t *testing.T) {
	header := "a\tb\tc\td\te\tf\tg\th\ti\tj"
	row := tabRow("1008", "Lina", "50", "0", "15", "Mada", "0", "65", "1/2/2024 10:00", "SMSA", `[["Mask",1,"MK-1"]]`)
	res := sallacsv.ParseWithLog(header+"\n"+row, opts)
	assert.Len(t, res.Rows, 1)
	assert.Equal(t, 1, res.Summary.Warnings)
}

func TestParseWithLog_Idempotente(t *testing.T) {
	content := tabFile() + "\n" + tabRow("bad")
	a := sallacsv.ParseWithLog(content, opts)
	b := sallacsv.ParseWithLog(content, opts)
	assert.Equal(t, a.Rows, b.Rows)
	assert.Equal(t, a.Summary, b.Summary)
}

func TestParseWithLog_ArchivoVacio(t *testing.T) {
	res := sallacsv.ParseWithLog("\n\n", opts)
	assert.Empty(t, res.Rows)
	assert.Len(t, levels(res.Log, sallacsv.LevelError), 1)
}
