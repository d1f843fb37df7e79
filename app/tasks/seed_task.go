package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/lysyi3m/bgg-plays/app/cfg"
	"github.com/lysyi3m/bgg-plays/app/database"
	"github.com/lysyi3m/bgg-plays/app/plays"
)

// SeedTask fills the cache store with newly announced lists, the games the
// user has played and the user's entries in known lists.
type SeedTask struct {
	Task
	cfg       *cfg.Cfg
	catalog   Catalog
	collector *plays.Collector
	repo      *database.Repository
}

func NewSeedTask(c *cfg.Cfg, catalog Catalog, repo *database.Repository) *SeedTask {
	return &SeedTask{
		Task:      NewTask(TaskTypeSeed),
		cfg:       c,
		catalog:   catalog,
		collector: plays.NewCollector(catalog, c),
		repo:      repo,
	}
}

func (t *SeedTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if t.cfg.Username == "" {
		return ErrNoUsername
	}

	watermark, err := t.repo.GetLastListPostID(ctx)
	if err != nil {
		return err
	}

	newLists, err := t.collector.FindNewLists(ctx, watermark)
	if err != nil {
		return err
	}
	if newLists.Watermark != "" {
		if err := t.repo.SetLastListPostID(ctx, newLists.Watermark); err != nil {
			return err
		}
	}
	if err := t.repo.AddLists(ctx, newLists.ListIDs); err != nil {
		return err
	}

	user, err := t.catalog.GetUser(ctx, t.cfg.Username)
	if err != nil {
		return err
	}

	posts, err := t.collector.CollectFromFeed(ctx, user.ID, false)
	if err != nil {
		return err
	}

	newGames, err := t.storeNewGames(ctx, posts)
	if err != nil {
		return err
	}

	newEntries, err := t.storeNewEntries(ctx, posts)
	if err != nil {
		return err
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"username", t.cfg.Username,
		"new_lists", len(newLists.ListIDs),
		"new_games", newGames,
		"new_entries", newEntries,
		"duration", t.GetDuration())

	return nil
}

func (t *SeedTask) storeNewGames(ctx context.Context, posts []plays.Entry) (int, error) {
	known, err := t.repo.GetAllGames(ctx)
	if err != nil {
		return 0, err
	}

	knownIDs := make(map[string]bool, len(known))
	for _, game := range known {
		knownIDs[game.ID] = true
	}

	var unknown []string
	for _, post := range posts {
		if !knownIDs[post.GameID] && !slices.Contains(unknown, post.GameID) {
			unknown = append(unknown, post.GameID)
		}
	}

	if len(unknown) == 0 {
		return 0, nil
	}

	items, err := t.catalog.GetGames(ctx, unknown)
	if err != nil {
		return 0, fmt.Errorf("failed to look up new games: %w", err)
	}

	games := make([]plays.Game, 0, len(items))
	for _, item := range items {
		games = append(games, plays.GameFromThing(item))
	}

	if err := t.repo.AddGames(ctx, games); err != nil {
		return 0, err
	}

	return len(games), nil
}

func (t *SeedTask) storeNewEntries(ctx context.Context, posts []plays.Entry) (int, error) {
	lists, err := t.repo.GetAllLists(ctx)
	if err != nil {
		return 0, err
	}

	existing, err := t.repo.GetAllEntries(ctx)
	if err != nil {
		return 0, err
	}

	existingIDs := make(map[string]bool, len(existing))
	for _, entry := range existing {
		existingIDs[entry.ID] = true
	}

	var entries []plays.Entry
	for _, post := range plays.FilterByLists(posts, lists) {
		if !existingIDs[post.ID] {
			entries = append(entries, post)
		}
	}

	if err := t.repo.AddEntries(ctx, entries); err != nil {
		return 0, err
	}

	return len(entries), nil
}
