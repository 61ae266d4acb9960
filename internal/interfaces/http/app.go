package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/naimarket-api/pkg/logger"
)

// AppConfig parámetros del servidor Fiber.
type AppConfig struct {
	Name           string
	CORSOrigins    string
	UploadMaxBytes int64
}

// bodyHeadroom margen sobre el límite de imagen para los demás campos multipart.
const bodyHeadroom = 1 << 20

// NewApp crea la app Fiber con los middlewares comunes. Las rutas se registran con Router.
func NewApp(cfg AppConfig, log *logger.Logger) *fiber.App {
	maxBytes := cfg.UploadMaxBytes
	if maxBytes <= 0 {
		maxBytes = 2 << 20
	}
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		// Los archivos grandes deben llegar al validador de uploads (413 propio) en vez de cortar la conexión.
		BodyLimit:    int(maxBytes) + bodyHeadroom,
		ErrorHandler: ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	origins := cfg.CORSOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Idempotency-Key",
	}))
	app.Use(RequestLogger(log))
	return app
}
