package prefs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/biciros/internal/domain/repository"
	"github.com/jhoicas/biciros/pkg/config"
)

var _ repository.PreferenceStore = (*RedisStore)(nil)

// Cmdable subconjunto de comandos de go-redis que usa el almacén.
type Cmdable interface {
	Get(context.Context, string) *redis.StringCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// RedisStore preferencias compartidas en Redis (varias instancias del mismo puesto).
type RedisStore struct {
	store  Cmdable
	raw    *redis.Client
	prefix string
}

// NewRedis conecta con Redis y verifica la conexión.
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*RedisStore, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStore{store: raw, raw: raw, prefix: cfg.Prefix}, nil
}

// NewRedisWithClient usa un cliente ya construido (pruebas, clientes compartidos).
func NewRedisWithClient(client Cmdable, prefix string) *RedisStore {
	rs := &RedisStore{store: client, prefix: prefix}
	if raw, ok := client.(*redis.Client); ok {
		rs.raw = raw
	}
	return rs
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL == "" && cfg.Address == "" {
		return nil, errors.New("redis url or address is required")
	}
	if cfg.URL != "" {
		opts, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		if opts.DB == 0 {
			opts.DB = cfg.DB
		}
		return opts, nil
	}
	return &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	}, nil
}

// Key clave completa en Redis: <prefix>:prefs:<key>.
func (s *RedisStore) Key(key string) string {
	if s.prefix == "" {
		return "prefs:" + key
	}
	return s.prefix + ":prefs:" + key
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.store.Get(ctx, s.Key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("leer preferencia %s: %w", key, err)
	}
	return v, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.store.Set(ctx, s.Key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("guardar preferencia %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, key string) error {
	if err := s.store.Del(ctx, s.Key(key)).Err(); err != nil {
		return fmt.Errorf("borrar preferencia %s: %w", key, err)
	}
	return nil
}

// Close cierra la conexión si el cliente es propio.
func (s *RedisStore) Close() error {
	if s.raw == nil {
		return nil
	}
	return s.raw.Close()
}
