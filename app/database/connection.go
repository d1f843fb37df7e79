package database

import (
	"context"
	"fmt"

	"github.com/lysyi3m/bgg-plays/app/cfg"
)

// Open connects to the configured cache store. It returns nil when no store is configured.
func Open(ctx context.Context, c *cfg.Cfg) (Store, error) {
	switch c.Store {
	case cfg.StoreSQLite:
		store, err := NewSQLiteStore(c.SQLitePath)
		if err != nil {
			return nil, err
		}
		return store, nil
	case cfg.StoreRedis:
		store, err := NewRedisStore(ctx, c)
		if err != nil {
			return nil, err
		}
		return store, nil
	case cfg.StoreNone, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown store %q", c.Store)
	}
}
