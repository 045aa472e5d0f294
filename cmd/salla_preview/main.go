// salla_preview lee una exportación CSV de pedidos de Salla sin guardar nada e imprime
// el resumen y el log de parseo. Sirve para diagnosticar archivos que no se importan.
//
// Uso: go run ./cmd/salla_preview [-tz Asia/Riyadh] [-encoding windows-1256] [-catalog catalogo.json] [-json] pedidos.csv
//
// Con -catalog (productos, métodos y mapeos en JSON) además concilia las filas contra
// repositorios en memoria y lista los nombres sin mapear.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Ganancias-api/internal/application/salla"
	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
	"github.com/jhoicas/Ganancias-api/internal/domain/sallacsv"
	"github.com/jhoicas/Ganancias-api/internal/infrastructure/memory"
	"github.com/jhoicas/Ganancias-api/pkg/logger"
)

// catalogFile formato de -catalog.
type catalogFile struct {
	Products []struct {
		ID           string          `json:"id"`
		Name         string          `json:"name"`
		SKU          string          `json:"sku"`
		Cost         decimal.Decimal `json:"cost"`
		SellingPrice decimal.Decimal `json:"selling_price"`
		Owner        string          `json:"owner"`
	} `json:"products"`
	ShippingMethods []struct {
		ID   string          `json:"id"`
		Name string          `json:"name"`
		Cost decimal.Decimal `json:"cost"`
	} `json:"shipping_methods"`
	PaymentMethods []struct {
		ID            string          `json:"id"`
		Name          string          `json:"name"`
		FeePercentage decimal.Decimal `json:"fee_percentage"`
		FeeFixed      decimal.Decimal `json:"fee_fixed"`
		TaxRate       decimal.Decimal `json:"tax_rate"`
		CustomerFee   decimal.Decimal `json:"customer_fee"`
	} `json:"payment_methods"`
	Mappings []struct {
		Kind         string `json:"kind"`
		ExternalName string `json:"external_name"`
		InternalID   string `json:"internal_id"`
	} `json:"mappings"`
}

func main() {
	tz := flag.String("tz", "Asia/Riyadh", "zona horaria de las fechas del archivo")
	encoding := flag.String("encoding", "utf-8", "codificación del archivo: utf-8, windows-1256 o iso-8859-1")
	catalogPath := flag.String("catalog", "", "catálogo JSON para conciliar las filas (opcional)")
	asJSON := flag.Bool("json", false, "imprimir el resultado como JSON")
	level := flag.String("log-level", "warn", "nivel de log del conciliador")
	flag.Parse()

	log := logger.New(logger.Config{Env: "development", Level: *level})

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: salla_preview [flags] pedidos.csv")
		flag.PrintDefaults()
		os.Exit(2)
	}
	loc, err := time.LoadLocation(*tz)
	if err != nil {
		log.Fatal().Err(err).Str("tz", *tz).Msg("zona horaria inválida")
	}
	content, err := readFile(flag.Arg(0), *encoding)
	if err != nil {
		log.Fatal().Err(err).Str("file", flag.Arg(0)).Msg("no se pudo leer el CSV")
	}

	res := sallacsv.ParseWithLog(content, sallacsv.Options{Location: loc})

	var preview *salla.Preview
	if *catalogPath != "" {
		p, err := reconcile(*catalogPath, res.Rows, log)
		if err != nil {
			log.Fatal().Err(err).Str("catalog", *catalogPath).Msg("no se pudo cargar el catálogo")
		}
		preview = &p
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(struct {
			Summary sallacsv.Summary    `json:"summary"`
			Log     []sallacsv.LogEntry `json:"log"`
			Preview *salla.Preview      `json:"preview,omitempty"`
		}{res.Summary, res.Log, preview})
		return
	}
	printText(res, preview)
	if res.Summary.ErrorRows > 0 {
		os.Exit(1)
	}
}

// readFile lee el archivo y lo pasa a UTF-8. Quita el BOM que agrega Excel.
func readFile(path, encoding string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var r io.Reader = f
	switch strings.ToLower(encoding) {
	case "", "utf-8", "utf8":
	case "windows-1256", "cp1256":
		r = transform.NewReader(f, charmap.Windows1256.NewDecoder())
	case "iso-8859-1", "latin1":
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	default:
		return "", fmt.Errorf("codificación no soportada %q", encoding)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(bytes.TrimPrefix(b, []byte("\xef\xbb\xbf"))), nil
}

func reconcile(path string, rows []sallacsv.Row, log *logger.Logger) (salla.Preview, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return salla.Preview{}, err
	}
	var cat catalogFile
	if err := json.Unmarshal(raw, &cat); err != nil {
		return salla.Preview{}, err
	}

	ctx := context.Background()
	now := time.Now()
	products := memory.NewProductRepository()
	shipping := memory.NewShippingMethodRepository()
	payments := memory.NewPaymentMethodRepository()
	mappings := memory.NewNameMappingRepository()

	for _, p := range cat.Products {
		if err := products.Upsert(ctx, &entity.Product{
			ID: p.ID, Name: p.Name, SKU: p.SKU, Cost: p.Cost, SellingPrice: p.SellingPrice,
			Owner: entity.Owner(p.Owner), CreatedAt: now, UpdatedAt: now,
		}); err != nil {
			return salla.Preview{}, err
		}
	}
	for _, s := range cat.ShippingMethods {
		if err := shipping.Upsert(ctx, &entity.ShippingMethod{ID: s.ID, Name: s.Name, Cost: s.Cost, Active: true}); err != nil {
			return salla.Preview{}, err
		}
	}
	for _, p := range cat.PaymentMethods {
		if err := payments.Upsert(ctx, &entity.PaymentMethod{
			ID: p.ID, Name: p.Name, FeePercentage: p.FeePercentage, FeeFixed: p.FeeFixed,
			TaxRate: p.TaxRate, CustomerFee: p.CustomerFee, Active: true,
		}); err != nil {
			return salla.Preview{}, err
		}
	}
	for i, m := range cat.Mappings {
		nm := &entity.NameMapping{Kind: entity.MappingKind(m.Kind), ExternalName: m.ExternalName, InternalID: m.InternalID}
		nm.Stamp(fmt.Sprintf("m%d", i+1), now)
		if err := mappings.Upsert(ctx, nm); err != nil {
			return salla.Preview{}, err
		}
	}

	log.Debug().Int("products", len(cat.Products)).Int("mappings", len(cat.Mappings)).Msg("catálogo cargado")
	rec := salla.NewReconciler(mappings, products, shipping, payments, log.Component("reconciler"))
	preview, _ := rec.Reconcile(ctx, rows)
	return preview, nil
}

func printText(res sallacsv.Result, preview *salla.Preview) {
	s := res.Summary
	fmt.Printf("Delimitador: %q\n", s.Delimiter)
	fmt.Printf("Filas: %d  leídas: %d  con error: %d  advertencias: %d\n\n", s.TotalRows, s.ParsedRows, s.ErrorRows, s.Warnings)

	for _, e := range res.Log {
		line := ""
		if e.Line > 0 {
			line = fmt.Sprintf("línea %d: ", e.Line)
		}
		fmt.Printf("[%-7s] %s%s\n", e.Level, line, e.Message)
		if e.Raw != "" {
			fmt.Printf("          %d columnas: %q\n", e.ColumnCount, e.Raw)
		}
	}

	if preview == nil {
		return
	}
	fmt.Printf("\nImportables: %d de %d\n", preview.ImportableCount, len(preview.Rows))
	if preview.Blocked {
		fmt.Println("Lote BLOQUEADO: crear los mapeos faltantes antes de importar.")
	}
	printNames("Productos sin mapear", preview.UnmappedProducts)
	printNames("Envíos sin mapear", preview.UnmappedShipping)
	printNames("Pagos sin mapear", preview.UnmappedPayments)
	for _, r := range preview.Rows {
		if len(r.Problems) > 0 {
			fmt.Printf("  pedido %s (línea %d): %s\n", r.OrderNumber, r.Line, strings.Join(r.Problems, "; "))
		}
	}
}

func printNames(title string, names []string) {
	if len(names) == 0 {
		return
	}
	fmt.Printf("%s:\n", title)
	for _, n := range names {
		fmt.Printf("  - %s\n", n)
	}
}
