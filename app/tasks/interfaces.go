package tasks

import (
	"context"

	"github.com/lysyi3m/bgg-plays/app/bgg"
	"github.com/lysyi3m/bgg-plays/app/plays"
)

// Catalog is the part of the catalog client the tasks need on top of what the collector uses.
type Catalog interface {
	plays.Catalog
	GetUser(ctx context.Context, username string) (*bgg.User, error)
	GetGames(ctx context.Context, ids []string) ([]bgg.ThingItem, error)
}

var _ Catalog = (*bgg.Client)(nil)
