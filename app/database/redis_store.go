package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/lysyi3m/bgg-plays/app/cfg"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each collection in one hash and top-level values in plain keys.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(ctx context.Context, c *cfg.Cfg) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         c.RedisAddr,
		Password:     c.RedisPassword,
		DB:           c.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Debug("Connected to Redis", "addr", c.RedisAddr, "db", c.RedisDB)

	return &RedisStore{client: client, prefix: c.RedisPrefix}, nil
}

func (s *RedisStore) collectionKey(collection string) string {
	return fmt.Sprintf("%s:%s", s.prefix, collection)
}

func (s *RedisStore) valueKey(key string) string {
	return fmt.Sprintf("%s:value:%s", s.prefix, key)
}

func (s *RedisStore) Get(ctx context.Context, path string) ([]byte, bool, error) {
	collection, key := splitPath(path)

	var (
		val []byte
		err error
	)
	if collection == "" {
		val, err = s.client.Get(ctx, s.valueKey(key)).Bytes()
	} else {
		val, err = s.client.HGet(ctx, s.collectionKey(collection), key).Bytes()
	}

	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get %s: %w", path, err)
	}

	return val, true, nil
}

func (s *RedisStore) Set(ctx context.Context, path string, value []byte) error {
	collection, key := splitPath(path)

	var err error
	if collection == "" {
		err = s.client.Set(ctx, s.valueKey(key), value, 0).Err()
	} else {
		err = s.client.HSet(ctx, s.collectionKey(collection), key, value).Err()
	}
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", path, err)
	}

	return nil
}

func (s *RedisStore) Append(ctx context.Context, collection string, value []byte) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}

	key := id.String()
	if err := s.Set(ctx, collection+"/"+key, value); err != nil {
		return "", err
	}

	return key, nil
}

func (s *RedisStore) Scan(ctx context.Context, collection, field, value string) ([][]byte, error) {
	all, err := s.client.HGetAll(ctx, s.collectionKey(collection)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", collection, err)
	}

	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var values [][]byte
	for _, k := range keys {
		v := []byte(all[k])
		if field == "" || fieldEquals(v, field, value) {
			values = append(values, v)
		}
	}

	return values, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
