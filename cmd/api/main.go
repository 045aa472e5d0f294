package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ganancias-api/internal/application/auth"
	"github.com/jhoicas/Ganancias-api/internal/application/orders"
	"github.com/jhoicas/Ganancias-api/internal/application/report"
	"github.com/jhoicas/Ganancias-api/internal/application/salla"
	"github.com/jhoicas/Ganancias-api/internal/application/settings"
	"github.com/jhoicas/Ganancias-api/internal/application/usecase"
	"github.com/jhoicas/Ganancias-api/internal/domain/profit"
	infrapdf "github.com/jhoicas/Ganancias-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Ganancias-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Ganancias-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/Ganancias-api/internal/interfaces/http"
	"github.com/jhoicas/Ganancias-api/pkg/config"
	"github.com/jhoicas/Ganancias-api/pkg/logger"
	"github.com/jhoicas/Ganancias-api/pkg/money"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("timezone", cfg.App.Timezone).
		Msg("iniciando aplicación")

	partners, err := profit.ParseParticipants(cfg.Business.Partners)
	if err != nil {
		log.Fatal().Err(err).Str("partners", cfg.Business.Partners).Msg("socios inválidos")
	}
	defaultThreshold, err := decimal.NewFromString(cfg.Business.FreeShippingThresholdDefault)
	if err != nil {
		log.Fatal().Err(err).Msg("FREE_SHIPPING_THRESHOLD inválido")
	}
	loc := cfg.App.Location()

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	shippingRepo := postgres.NewShippingMethodRepository(pool)
	paymentRepo := postgres.NewPaymentMethodRepository(pool)
	offerRepo := postgres.NewOfferRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	mappingRepo := postgres.NewNameMappingRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	settingRepo := postgres.NewSettingRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Configuración de negocio con caché local (TTL corto: un cambio se ve en todas las instancias).
	settingsCache := settings.NewCache(settingRepo, cfg.Business.SettingsCacheTTL)
	settingsSvc := settings.NewService(settingRepo, settingsCache, defaultThreshold, log.Component("settings"))

	calculator := orders.NewCalculator(settingsSvc, offerRepo, cfg.Business.AutoDetectFreeShipping,
		orders.WithLocation(loc))
	orderUC := orders.NewUseCase(orderRepo, productRepo, shippingRepo, paymentRepo, calculator)

	// Sesiones de importación: Redis si está configurado, si no en memoria (una sola instancia).
	var sessions salla.SessionStore
	if cfg.Redis.URL != "" {
		client, err := infraredis.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		sessions = infraredis.NewImportSessionStore(client, cfg.Redis.ImportSessionTTL)
	} else {
		log.Warn().Msg("REDIS_URL vacío: sesiones de importación en memoria")
		sessions = salla.NewMemoryStore(cfg.Redis.ImportSessionTTL)
	}
	reconciler := salla.NewReconciler(mappingRepo, productRepo, shippingRepo, paymentRepo, log)
	importUC := salla.NewImportUseCase(sessions, reconciler, orderUC, txRunner, loc, log)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name, money.NewFormatter(cfg.App.Locale, cfg.App.Currency))
	reportUC := report.NewUseCase(orderRepo, expenseRepo, partners, pdfGenerator, loc)

	authUC := auth.NewAuthUseCase(userRepo, partners, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Ganancias API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:                 authUC,
		UserUC:                 usecase.NewUserUseCase(userRepo),
		ProductUC:              usecase.NewProductUseCase(productRepo, partners),
		ShippingMethodUC:       usecase.NewShippingMethodUseCase(shippingRepo),
		PaymentMethodUC:        usecase.NewPaymentMethodUseCase(paymentRepo),
		OfferUC:                usecase.NewOfferUseCase(offerRepo, productRepo),
		ExpenseUC:              usecase.NewExpenseUseCase(expenseRepo, partners, usecase.WithStoreLocation(loc)),
		MappingUC:              usecase.NewNameMappingUseCase(mappingRepo, productRepo, shippingRepo, paymentRepo),
		Settings:               settingsSvc,
		AutoDetectFreeShipping: cfg.Business.AutoDetectFreeShipping,
		OrderUC:                orderUC,
		ImportUC:               importUC,
		ReportUC:               reportUC,
		JWTSecret:              cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
