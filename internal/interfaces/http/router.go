package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ganancias-api/internal/application/auth"
	"github.com/jhoicas/Ganancias-api/internal/application/orders"
	"github.com/jhoicas/Ganancias-api/internal/application/report"
	"github.com/jhoicas/Ganancias-api/internal/application/salla"
	"github.com/jhoicas/Ganancias-api/internal/application/settings"
	"github.com/jhoicas/Ganancias-api/internal/application/usecase"
	"github.com/jhoicas/Ganancias-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC                 *auth.AuthUseCase
	UserUC                 *usecase.UserUseCase
	ProductUC              *usecase.ProductUseCase
	ShippingMethodUC       *usecase.ShippingMethodUseCase
	PaymentMethodUC        *usecase.PaymentMethodUseCase
	OfferUC                *usecase.OfferUseCase
	ExpenseUC              *usecase.ExpenseUseCase
	MappingUC              *usecase.NameMappingUseCase
	Settings               *settings.Service
	AutoDetectFreeShipping bool
	OrderUC                *orders.UseCase
	ImportUC               *salla.ImportUseCase
	ReportUC               *report.UseCase
	JWTSecret              string
}

// Router registra las rutas de la API.
//
// Lectura: cualquier rol autenticado. Escritura de catálogo, pedidos, gastos e importación:
// admin y partner. Alta de usuarios y configuración: solo admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	admin := RequireRole(entity.RoleAdmin)
	editor := RequireRole(entity.RoleAdmin, entity.RolePartner)

	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/register", admin, authHandler.Register)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", editor, productHandler.Create)
	products.Put("/:id", editor, productHandler.Update)
	products.Delete("/:id", editor, productHandler.Delete)

	methodHandler := NewMethodHandler(deps.ShippingMethodUC, deps.PaymentMethodUC)
	shipping := protected.Group("/shipping-methods")
	shipping.Get("/", methodHandler.ListShipping)
	shipping.Get("/:id", methodHandler.GetShipping)
	shipping.Post("/", editor, methodHandler.CreateShipping)
	shipping.Put("/:id", editor, methodHandler.UpdateShipping)
	shipping.Delete("/:id", editor, methodHandler.DeleteShipping)

	payment := protected.Group("/payment-methods")
	payment.Get("/", methodHandler.ListPayment)
	payment.Get("/:id", methodHandler.GetPayment)
	payment.Post("/", editor, methodHandler.CreatePayment)
	payment.Put("/:id", editor, methodHandler.UpdatePayment)
	payment.Delete("/:id", editor, methodHandler.DeletePayment)

	offers := protected.Group("/offers")
	offerHandler := NewOfferHandler(deps.OfferUC)
	offers.Get("/", offerHandler.List)
	offers.Get("/:id", offerHandler.GetByID)
	offers.Post("/", editor, offerHandler.Create)
	offers.Put("/:id", editor, offerHandler.Update)
	offers.Delete("/:id", editor, offerHandler.Delete)

	expenses := protected.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC, deps.ReportUC)
	expenses.Get("/", expenseHandler.List)
	expenses.Get("/:id", expenseHandler.GetByID)
	expenses.Post("/", editor, expenseHandler.Create)
	expenses.Put("/:id", editor, expenseHandler.Update)
	expenses.Delete("/:id", editor, expenseHandler.Delete)

	mappings := protected.Group("/mappings")
	mappingHandler := NewMappingHandler(deps.MappingUC)
	mappings.Get("/", mappingHandler.List)
	mappings.Get("/:id", mappingHandler.GetByID)
	mappings.Post("/", editor, mappingHandler.Create)
	mappings.Put("/:id", editor, mappingHandler.Update)
	mappings.Delete("/:id", editor, mappingHandler.Delete)

	settingsHandler := NewSettingsHandler(deps.Settings, deps.AutoDetectFreeShipping)
	protected.Get("/settings", settingsHandler.Get)
	protected.Put("/settings", admin, settingsHandler.Update)

	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.ReportUC)
	ordersGroup.Post("/calculate", orderHandler.Calculate)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Post("/", editor, orderHandler.Create)
	ordersGroup.Put("/:id", editor, orderHandler.Update)
	ordersGroup.Delete("/:id", editor, orderHandler.Delete)

	imports := protected.Group("/imports/salla", editor)
	importHandler := NewImportHandler(deps.ImportUC)
	imports.Post("/", importHandler.Upload)
	imports.Get("/:id", importHandler.Get)
	imports.Post("/:id/refresh", importHandler.Refresh)
	imports.Post("/:id/confirm", importHandler.Confirm)
	imports.Post("/:id/reset", importHandler.Reset)

	reportHandler := NewReportHandler(deps.ReportUC)
	reports := protected.Group("/reports")
	reports.Get("/earnings", reportHandler.Earnings)
	reports.Get("/earnings.pdf", reportHandler.EarningsPDF)
	reports.Get("/earnings.csv", reportHandler.EarningsCSV)

	exports := protected.Group("/exports")
	exports.Get("/orders.csv", reportHandler.OrdersCSV)
	exports.Get("/expenses.csv", reportHandler.ExpensesCSV)
}
