package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ganancias-api/internal/application/auth"
	"github.com/jhoicas/Ganancias-api/internal/application/dto"
	"github.com/jhoicas/Ganancias-api/internal/application/orders"
	"github.com/jhoicas/Ganancias-api/internal/application/report"
	"github.com/jhoicas/Ganancias-api/internal/application/salla"
	"github.com/jhoicas/Ganancias-api/internal/application/settings"
	"github.com/jhoicas/Ganancias-api/internal/application/usecase"
	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
	"github.com/jhoicas/Ganancias-api/internal/domain/profit"
	"github.com/jhoicas/Ganancias-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/Ganancias-api/internal/interfaces/http"
	"github.com/jhoicas/Ganancias-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// API completa sobre repositorios en memoria
// ──────────────────────────────────────────────────────────────────────────────

type api struct {
	app    *fiber.App
	tokens map[string]string // rol → "Bearer ..."
}

func newAPI(t *testing.T) *api {
	t.Helper()
	ctx := context.Background()
	partners := profit.DefaultParticipants()

	users := memory.NewUserRepository()
	products := memory.NewProductRepository()
	shipping := memory.NewShippingMethodRepository()
	payments := memory.NewPaymentMethodRepository()
	offers := memory.NewOfferRepository()
	expenses := memory.NewExpenseRepository()
	mappings := memory.NewNameMappingRepository()
	orderRepo := memory.NewOrderRepository()
	settingRepo := memory.NewSettingRepository()

	require.NoError(t, products.Upsert(ctx, &entity.Product{ID: "p1", Name: "Serum", Cost: decimal.NewFromInt(30), SellingPrice: decimal.NewFromInt(60), Owner: entity.OwnerYassir}))
	require.NoError(t, shipping.Upsert(ctx, &entity.ShippingMethod{ID: "s1", Name: "Aramex", Cost: decimal.NewFromInt(15), Active: true}))
	require.NoError(t, payments.Upsert(ctx, &entity.PaymentMethod{ID: "m1", Name: "COD", CustomerFee: decimal.NewFromInt(10), Active: true}))

	settingsSvc := settings.NewService(settingRepo, settings.NewCache(settingRepo, time.Minute), decimal.NewFromInt(200), logger.Nop())
	calc := orders.NewCalculator(settingsSvc, offers, true)
	orderUC := orders.NewUseCase(orderRepo, products, shipping, payments, calc)
	reconciler := salla.NewReconciler(mappings, products, shipping, payments, logger.Nop())
	authUC := auth.NewAuthUseCase(users, partners, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:                 authUC,
		UserUC:                 usecase.NewUserUseCase(users),
		ProductUC:              usecase.NewProductUseCase(products, partners),
		ShippingMethodUC:       usecase.NewShippingMethodUseCase(shipping),
		PaymentMethodUC:        usecase.NewPaymentMethodUseCase(payments),
		OfferUC:                usecase.NewOfferUseCase(offers, products),
		ExpenseUC:              usecase.NewExpenseUseCase(expenses, partners),
		MappingUC:              usecase.NewNameMappingUseCase(mappings, products, shipping, payments),
		Settings:               settingsSvc,
		AutoDetectFreeShipping: true,
		OrderUC:                orderUC,
		ImportUC:               salla.NewImportUseCase(salla.NewMemoryStore(0), reconciler, orderUC, &memory.TxRunner{Orders: orderRepo}, time.UTC, logger.Nop()),
		ReportUC:               report.NewUseCase(orderRepo, expenses, partners, nil, time.UTC),
		JWTSecret:              testJWTSecret,
	})

	a := &api{app: app, tokens: map[string]string{}}
	for role, owner := range map[string]string{entity.RoleAdmin: "", entity.RolePartner: "basim", entity.RoleViewer: ""} {
		email := role + "@tienda.test"
		_, err := authUC.RegisterUser(ctx, dto.RegisterRequest{Email: email, Password: "secreto123", Role: role, Owner: owner})
		require.NoError(t, err)
		out, err := authUC.Login(ctx, dto.LoginRequest{Email: email, Password: "secreto123"})
		require.NoError(t, err)
		a.tokens[role] = "Bearer " + out.Token
	}
	return a
}

func (a *api) do(t *testing.T, method, path, role string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", a.tokens[role])
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_LoginYPerfil(t *testing.T) {
	a := newAPI(t)

	resp := a.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "partner@tienda.test", Password: "secreto123"})
	body := decode(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["token"])

	resp = a.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "partner@tienda.test", Password: "incorrecta"})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = a.do(t, http.MethodGet, "/api/auth/me", entity.RolePartner, nil)
	body = decode(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "basim", body["owner"])
}

func TestRouter_RegistroSoloAdmin(t *testing.T) {
	a := newAPI(t)
	in := dto.RegisterRequest{Email: "nuevo@tienda.test", Password: "secreto123"}

	resp := a.do(t, http.MethodPost, "/api/auth/register", entity.RolePartner, in)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = a.do(t, http.MethodPost, "/api/auth/register", entity.RoleAdmin, in)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = a.do(t, http.MethodPost, "/api/auth/register", entity.RoleAdmin, in)
	body := decode(t, resp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", body["code"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_Productos_PermisosYValidacion(t *testing.T) {
	a := newAPI(t)
	in := dto.ProductRequest{Name: "Cream", Cost: decimal.NewFromInt(20), SellingPrice: decimal.NewFromInt(35), Owner: "basim"}

	resp := a.do(t, http.MethodPost, "/api/products", entity.RoleViewer, in)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "viewer solo lee")

	resp = a.do(t, http.MethodPost, "/api/products", entity.RolePartner, in)
	created := decode(t, resp)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	in.Owner = "desconocido"
	resp = a.do(t, http.MethodPost, "/api/products", entity.RoleAdmin, in)
	body := decode(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body["code"])

	resp = a.do(t, http.MethodGet, "/api/products", entity.RoleViewer, nil)
	body = decode(t, resp)
	assert.Equal(t, float64(2), body["total"])

	resp = a.do(t, http.MethodDelete, "/api/products/"+id, entity.RoleAdmin, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = a.do(t, http.MethodGet, "/api/products/"+id, entity.RoleAdmin, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_SinToken(t *testing.T) {
	a := newAPI(t)
	resp := a.do(t, http.MethodGet, "/api/products", "", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pedidos, configuración y reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_CalcularPedido(t *testing.T) {
	a := newAPI(t)
	in := dto.OrderRequest{
		Items:            []dto.OrderItemRequest{{ProductID: "p1", Quantity: 1}},
		ShippingMethodID: "s1",
		PaymentMethodID:  "m1",
	}
	resp := a.do(t, http.MethodPost, "/api/orders/calculate", entity.RoleViewer, in)
	body := decode(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "60", body["subtotal"])
	assert.Equal(t, "85", body["customer_total"], "60 + envío 15 + recargo 10")
	assert.Equal(t, false, body["is_free_shipping"])
}

func TestRouter_Configuracion_UmbralAfectaCalculo(t *testing.T) {
	a := newAPI(t)
	threshold := decimal.NewFromInt(50)

	resp := a.do(t, http.MethodPut, "/api/settings", entity.RolePartner, dto.UpdateSettingsRequest{FreeShippingThreshold: &threshold})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = a.do(t, http.MethodPut, "/api/settings", entity.RoleAdmin, dto.UpdateSettingsRequest{FreeShippingThreshold: &threshold})
	body := decode(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "50", body["free_shipping_threshold"])

	in := dto.OrderRequest{Items: []dto.OrderItemRequest{{ProductID: "p1", Quantity: 1}}, ShippingMethodID: "s1"}
	resp = a.do(t, http.MethodPost, "/api/orders/calculate", entity.RoleAdmin, in)
	body = decode(t, resp)
	assert.Equal(t, true, body["is_free_shipping"])
	assert.Equal(t, "60", body["customer_total"])
}

func TestRouter_Reportes(t *testing.T) {
	a := newAPI(t)

	resp := a.do(t, http.MethodGet, "/api/reports/earnings?from=2024-13-01", entity.RoleViewer, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = a.do(t, http.MethodGet, "/api/reports/earnings?from=2024-03-01&to=2024-03-31", entity.RoleViewer, nil)
	body := decode(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), body["orders_count"])

	resp = a.do(t, http.MethodGet, "/api/exports/orders.csv?from=2024-03-01&to=2024-03-31", entity.RoleViewer, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "pedidos_2024-03-01_2024-03-31.csv")

	resp = a.do(t, http.MethodGet, "/api/reports/earnings.pdf", entity.RoleViewer, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "sin generador de PDF configurado")
}

// ──────────────────────────────────────────────────────────────────────────────
// Importación
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_Importacion_SubirYConsultar(t *testing.T) {
	a := newAPI(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "salla.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(strings.Join([]string{
		"Order Number\tCustomer\tSubtotal\tDiscount\tShipping\tPayment Method\tCOD Fee\tTotal\tDate\tShipping Company\tProducts",
		"1001\tAhmed\t60\t0\t15\tCash On Delivery\t10\t85\t3/7/2024 9:05\tAramex\t" + `"[[""Serum"",1,""SR-1""]]"`,
	}, "\n")))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/imports/salla", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", a.tokens[entity.RoleAdmin])
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	body := decode(t, resp)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "preview", body["state"])
	assert.Equal(t, true, body["blocked"], "sin mapeos el lote queda bloqueado")
	id, _ := body["id"].(string)

	resp = a.do(t, http.MethodPost, "/api/imports/salla/"+id+"/confirm", entity.RoleAdmin, nil)
	body = decode(t, resp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "IMPORT_BLOCKED", body["code"])

	resp = a.do(t, http.MethodGet, "/api/imports/salla/no-existe", entity.RoleAdmin, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = a.do(t, http.MethodGet, "/api/imports/salla/"+id, entity.RoleViewer, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
