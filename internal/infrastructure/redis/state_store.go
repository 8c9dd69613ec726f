// Package redis implementa el almacenamiento de sesiones de la tienda sobre Redis.
// Cada sesión es un HASH "storefront:session:<id>" con TTL renovado en cada escritura.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/autoparts-storefront/internal/domain/repository"
)

var _ repository.StateStore = (*StateStore)(nil)

const defaultKeyPrefix = "storefront:session:"

// Config conexión a Redis.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// StateStore implementación de StateStore sobre Redis.
type StateStore struct {
	client    *goredis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewClient crea el cliente y verifica la conexión.
func NewClient(cfg Config) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("conexión a redis: %w", err)
	}
	return client, nil
}

// NewStateStore construye el adaptador con un cliente existente. ttl <= 0 desactiva la expiración.
func NewStateStore(client *goredis.Client, ttl time.Duration) *StateStore {
	return &StateStore{client: client, keyPrefix: defaultKeyPrefix, ttl: ttl}
}

func (s *StateStore) key(sessionID string) string {
	return s.keyPrefix + sessionID
}

// Get obtiene el valor de una clave de la sesión.
func (s *StateStore) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	v, err := s.client.HGet(ctx, s.key(sessionID), key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis hget: %w", err)
	}
	return v, true, nil
}

// Set guarda el valor y renueva el TTL de la sesión.
func (s *StateStore) Set(ctx context.Context, sessionID, key, value string) error {
	k := s.key(sessionID)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, k, key, value)
	if s.ttl > 0 {
		pipe.Expire(ctx, k, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis hset: %w", err)
	}
	return nil
}

// Delete elimina las claves indicadas de la sesión.
func (s *StateStore) Delete(ctx context.Context, sessionID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.HDel(ctx, s.key(sessionID), keys...).Err(); err != nil {
		return fmt.Errorf("redis hdel: %w", err)
	}
	return nil
}

// Clear elimina la sesión completa.
func (s *StateStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Close cierra el cliente subyacente.
func (s *StateStore) Close() error {
	return s.client.Close()
}
