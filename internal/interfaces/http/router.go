package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/naimarket-api/internal/application/auth"
	"github.com/jhoicas/naimarket-api/internal/application/payment"
	"github.com/jhoicas/naimarket-api/internal/application/ports"
	"github.com/jhoicas/naimarket-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	VendorUC     *usecase.VendorUseCase
	CatalogUC    *usecase.CatalogUseCase
	OrderUC      *usecase.OrderUseCase
	FileAccessUC *usecase.FileAccessUseCase
	PaymentUC    *payment.UseCase
	// Idempotency es opcional; sin store los POST no se deduplican.
	Idempotency    ports.IdempotencyStore
	IdempotencyTTL time.Duration
	// UploadDir se sirve en /uploads cuando no está vacío.
	UploadDir string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("NaiMarket API is running!")
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": c.App().Config().AppName})
	})
	if deps.UploadDir != "" {
		app.Static("/uploads", deps.UploadDir)
	}

	api := app.Group("/api")
	idem := Idempotency(deps.Idempotency, deps.IdempotencyTTL)

	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/logout", authHandler.Logout)

	users := api.Group("/users")
	userHandler := NewUserHandler(deps.UserUC, deps.AuthUC)
	users.Get("/", userHandler.List)
	users.Get("/admins", userHandler.Admins)
	users.Get("/counts", userHandler.Counts)
	users.Post("/register", userHandler.Register)
	users.Post("/reset-password", userHandler.ResetPassword)
	users.Delete("/:id", userHandler.Delete)

	vendors := api.Group("/vendors")
	vendorHandler := NewVendorHandler(deps.VendorUC)
	vendors.Get("/", vendorHandler.List)
	vendors.Post("/update-logo", vendorHandler.UpdateLogo)
	vendors.Post("/logout", vendorHandler.Logout)
	vendors.Get("/:id", vendorHandler.GetByID)

	services := api.Group("/services")
	serviceHandler := NewServiceHandler(deps.CatalogUC, deps.FileAccessUC)
	services.Get("/", serviceHandler.List)
	services.Get("/count", serviceHandler.Count)
	services.Post("/", serviceHandler.Create)
	services.Get("/secure-file/token", serviceHandler.SecureFileToken)
	services.Get("/secure-file", serviceHandler.SecureFile)
	services.Delete("/:id", serviceHandler.Delete)
	// Alias histórico de la descarga segura.
	api.Get("/secure-file/token", serviceHandler.SecureFileToken)
	api.Get("/secure-file", serviceHandler.SecureFile)

	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/", idem, orderHandler.Place)
	orders.Get("/", orderHandler.ListForCustomer)
	orders.Get("/vendor-orders", orderHandler.ListForVendor)
	orders.Patch("/:id", orderHandler.UpdateStatus)
	orders.Get("/:id/receipt", orderHandler.Receipt)

	pay := api.Group("/pay/paystack")
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	pay.Post("/", idem, paymentHandler.Initialize)
	pay.Get("/verify/:reference", paymentHandler.Verify)
}
