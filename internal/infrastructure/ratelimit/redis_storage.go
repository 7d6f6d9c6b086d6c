// Package ratelimit provee el almacenamiento compartido del limitador de Fiber.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Permuta-api/pkg/config"
)

const (
	defaultPrefix = "permuta:ratelimit:"
	opTimeout     = 2 * time.Second
)

var _ fiber.Storage = (*RedisStorage)(nil)

// NewRedisClient crea el cliente y verifica la conexión con un ping corto.
// Devuelve error si el servidor no responde; el llamador decide si degradar
// a almacenamiento en memoria.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// RedisStorage implementa fiber.Storage sobre Redis para que varias réplicas
// compartan los contadores del limitador.
type RedisStorage struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStorage envuelve un cliente ya conectado. Todas las claves llevan prefix.
func NewRedisStorage(rdb *redis.Client, prefix string) *RedisStorage {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &RedisStorage{rdb: rdb, prefix: prefix}
}

// Get devuelve nil, nil si la clave no existe (contrato de fiber.Storage).
func (s *RedisStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	val, err := s.rdb.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

// Set guarda val; exp 0 significa sin expiración.
func (s *RedisStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return s.rdb.Set(ctx, s.prefix+key, val, exp).Err()
}

// Delete borra una clave.
func (s *RedisStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return s.rdb.Del(ctx, s.prefix+key).Err()
}

// Reset borra solo las claves con el prefijo propio.
func (s *RedisStorage) Reset() error {
	ctx := context.Background()
	iter := s.rdb.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close cierra el cliente de Redis.
func (s *RedisStorage) Close() error {
	return s.rdb.Close()
}
