package http

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/naimarket-api/internal/application/dto"
	"github.com/jhoicas/naimarket-api/internal/application/ports"
)

// IdempotencyHeader cabecera con la clave de idempotencia del cliente.
const IdempotencyHeader = "Idempotency-Key"

// Idempotency devuelve la respuesta guardada cuando se repite una petición con el mismo Idempotency-Key.
// Solo se guardan respuestas 2xx. Sin store (Redis no configurado) es un pass-through.
// Si el store falla la petición se procesa normalmente.
// Reusar la clave con otro cuerpo devuelve 422 sin ejecutar la petición.
func Idempotency(store ports.IdempotencyStore, ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get(IdempotencyHeader)
		if store == nil || key == "" {
			return c.Next()
		}
		scoped := c.Method() + ":" + c.Path() + ":" + key
		sum := sha256.Sum256(c.Body())
		bodyHash := hex.EncodeToString(sum[:])

		cached, err := store.Get(c.UserContext(), scoped)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("idempotencia: lectura fallida")
		}
		if cached != nil && cached.BodyHash != bodyHash {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
				Code:    "IDEMPOTENCY_KEY_REUSED",
				Message: "Idempotency-Key already used with a different request body",
			})
		}
		if cached != nil {
			c.Set("Idempotent-Replayed", "true")
			if cached.ContentType != "" {
				c.Set(fiber.HeaderContentType, cached.ContentType)
			}
			return c.Status(cached.Status).Send(cached.Body)
		}

		if err := c.Next(); err != nil {
			return err
		}
		status := c.Response().StatusCode()
		if status < 200 || status > 299 {
			return nil
		}
		resp := &ports.CachedResponse{
			Status:      status,
			ContentType: string(c.Response().Header.ContentType()),
			Body:        append([]byte(nil), c.Response().Body()...),
			BodyHash:    bodyHash,
		}
		if err := store.Set(c.UserContext(), scoped, resp, ttl); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("idempotencia: escritura fallida")
		}
		return nil
	}
}
