// Package cache implementa el almacén de idempotencia sobre Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/naimarket-api/internal/application/ports"
)

var _ ports.IdempotencyStore = (*RedisIdempotencyStore)(nil)

const keyPrefix = "naimarket:idempotency:"

// RedisIdempotencyStore guarda respuestas serializadas en JSON con TTL.
type RedisIdempotencyStore struct {
	client redis.UniversalClient
}

// NewRedisClient construye el cliente y comprueba la conexión.
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return rdb, nil
}

// NewRedisIdempotencyStore construye el store sobre un cliente existente.
func NewRedisIdempotencyStore(client redis.UniversalClient) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{client: client}
}

// Get devuelve la respuesta guardada o (nil, nil) si no hay.
func (s *RedisIdempotencyStore) Get(ctx context.Context, key string) (*ports.CachedResponse, error) {
	raw, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return decode(raw)
}

// Set guarda la respuesta con expiración ttl.
func (s *RedisIdempotencyStore) Set(ctx context.Context, key string, resp *ports.CachedResponse, ttl time.Duration) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("serializar respuesta: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func decode(raw []byte) (*ports.CachedResponse, error) {
	var resp ports.CachedResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("deserializar respuesta: %w", err)
	}
	return &resp, nil
}
