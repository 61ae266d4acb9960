package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/naimarket-api/docs"
	"github.com/jhoicas/naimarket-api/internal/application/auth"
	"github.com/jhoicas/naimarket-api/internal/application/payment"
	"github.com/jhoicas/naimarket-api/internal/application/ports"
	"github.com/jhoicas/naimarket-api/internal/application/usecase"
	"github.com/jhoicas/naimarket-api/internal/domain/repository"
	"github.com/jhoicas/naimarket-api/internal/infrastructure/cache"
	"github.com/jhoicas/naimarket-api/internal/infrastructure/memory"
	"github.com/jhoicas/naimarket-api/internal/infrastructure/paystack"
	infrapdf "github.com/jhoicas/naimarket-api/internal/infrastructure/pdf"
	"github.com/jhoicas/naimarket-api/internal/infrastructure/postgres"
	"github.com/jhoicas/naimarket-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/naimarket-api/internal/interfaces/http"
	"github.com/jhoicas/naimarket-api/pkg/config"
	"github.com/jhoicas/naimarket-api/pkg/logger"
	"github.com/jhoicas/naimarket-api/pkg/password"
)

// stores repositorios según STORE_DRIVER.
type stores struct {
	tx        auth.RegistrationTxRunner
	users     repository.UserRepository
	vendors   repository.VendorRepository
	customers repository.CustomerRepository
	services  repository.ServiceRepository
	orders    repository.OrderRepository
}

func postgresStores(pool *pgxpool.Pool) stores {
	return stores{
		tx:        postgres.NewTxRunner(pool),
		users:     postgres.NewUserRepository(pool),
		vendors:   postgres.NewVendorRepository(pool),
		customers: postgres.NewCustomerRepository(pool),
		services:  postgres.NewServiceRepository(pool),
		orders:    postgres.NewOrderRepository(pool),
	}
}

func memoryStores() stores {
	m := memory.NewStore()
	return stores{
		tx:        m,
		users:     m.Users(),
		vendors:   m.Vendors(),
		customers: m.Customers(),
		services:  m.Services(),
		orders:    m.Orders(),
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
		File:  cfg.Log.File,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.StoreDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var repos stores
	if cfg.App.StoreDriver == "memory" {
		log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
		repos = memoryStores()
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		repos = postgresStores(pool)
	}

	images, err := storage.NewLocalStore(cfg.Upload.Dir, cfg.Upload.MaxBytes)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Upload.Dir).Msg("directorio de uploads")
	}

	gateway, err := paystack.NewClient(paystack.Config{
		SecretKey:   cfg.Paystack.SecretKey,
		BaseURL:     cfg.Paystack.BaseURL,
		Currency:    cfg.Paystack.Currency,
		CallbackURL: cfg.Paystack.CallbackURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("cliente Paystack")
	}
	if cfg.Paystack.SecretKey == "" {
		log.Warn().Msg("PAYSTACK_SECRET vacío: los pagos fallarán en la pasarela")
	}

	// Idempotencia de POST /api/orders y /api/pay/paystack solo con Redis configurado.
	var idempotency ports.IdempotencyStore
	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		defer rdb.Close()
		idempotency = cache.NewRedisIdempotencyStore(rdb)
	}

	if cfg.SecureFile.IssuerKey == "" || cfg.SecureFile.TokenSecret == "" {
		log.Warn().Msg("SECURE_FILE_ISSUER_KEY o FILE_TOKEN_SECRET vacíos: la descarga segura queda deshabilitada")
	}

	hasher := password.NewHasher(cfg.Security.BcryptCost)

	authUC := auth.NewAuthUseCase(repos.tx, repos.users, repos.vendors, repos.customers, hasher).WithImages(images)
	userUC := usecase.NewUserUseCase(repos.users, hasher)
	vendorUC := usecase.NewVendorUseCase(repos.vendors, images)
	catalogUC := usecase.NewCatalogUseCase(repos.services, images)
	orderUC := usecase.NewOrderUseCase(repos.orders, infrapdf.NewMarotoReceiptGenerator(cfg.Paystack.Currency))
	fileAccessUC := usecase.NewFileAccessUseCase(images, usecase.FileAccessConfig{
		IssuerKey:   cfg.SecureFile.IssuerKey,
		TokenSecret: cfg.SecureFile.TokenSecret,
		Issuer:      cfg.SecureFile.Issuer,
		TTL:         cfg.SecureFile.TokenTTL,
	})
	paymentUC := payment.NewUseCase(gateway)

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:           cfg.App.Name,
		CORSOrigins:    cfg.HTTP.CORSOrigins,
		UploadMaxBytes: cfg.Upload.MaxBytes,
	}, log)

	// Swagger UI: http://localhost:<port>/docs
	if cfg.App.SwaggerEnabled {
		app.Use(swagger.New(swagger.Config{
			BasePath:    "/",
			FileContent: docs.SwaggerJSON,
			Path:        "docs",
			Title:       "NaiMarket API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		UserUC:         userUC,
		VendorUC:       vendorUC,
		CatalogUC:      catalogUC,
		OrderUC:        orderUC,
		FileAccessUC:   fileAccessUC,
		PaymentUC:      paymentUC,
		Idempotency:    idempotency,
		IdempotencyTTL: cfg.Redis.IdempotencyTTL,
		UploadDir:      images.Dir(),
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
