package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/klabeseguimientos-netizen/intranet-sub005/config"
)

// Client envoltorio del cliente Redis
// Se usa para la limitación de tasa del API; ampliable a caché si hace falta.
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient crea la conexión a Redis con comprobación de salud
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("fallo al conectar con Redis: %w", err)
	}

	logger.Info("conexión a Redis establecida", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── Limitación de tasa ──

// CheckRateLimit ventana deslizante sencilla basada en INCR + EXPIRE.
// Devuelve false cuando la clave supera el límite dentro de la ventana.
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	n, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return n <= int64(limit), nil
}

// Close cierra la conexión
func (c *Client) Close() error {
	return c.rdb.Close()
}
