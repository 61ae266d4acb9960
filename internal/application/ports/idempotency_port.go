package ports

import (
	"context"
	"time"
)

// CachedResponse respuesta HTTP guardada para reintentos con el mismo Idempotency-Key.
type CachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
	// BodyHash SHA-256 (hex) del cuerpo de la petición original.
	BodyHash string `json:"body_hash"`
}

// IdempotencyStore persiste respuestas por clave de idempotencia.
type IdempotencyStore interface {
	// Get devuelve (nil, nil) si la clave no existe.
	Get(ctx context.Context, key string) (*CachedResponse, error)
	Set(ctx context.Context, key string, resp *CachedResponse, ttl time.Duration) error
}
