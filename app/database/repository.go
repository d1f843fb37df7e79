package database

import (
	"context"
	"fmt"
	"slices"

	"github.com/goccy/go-json"
	"github.com/lysyi3m/bgg-plays/app/plays"
)

const (
	gamesPath          = "games"
	entriesPath        = "entries"
	listsPath          = "lists"
	lastListPostIDPath = "last_list_post_id"
)

// Repository stores games, entries, known lists and the thread watermark.
type Repository struct {
	store Store
}

func NewRepository(store Store) *Repository {
	return &Repository{store: store}
}

func (r *Repository) GetLastListPostID(ctx context.Context) (string, error) {
	var id string
	if _, err := r.getValue(ctx, lastListPostIDPath, &id); err != nil {
		return "", err
	}
	return id, nil
}

func (r *Repository) SetLastListPostID(ctx context.Context, id string) error {
	return r.setValue(ctx, lastListPostIDPath, id)
}

func (r *Repository) AddLists(ctx context.Context, ids []string) error {
	for _, id := range ids {
		data, err := json.Marshal(id)
		if err != nil {
			return fmt.Errorf("failed to encode list %s: %w", id, err)
		}
		if _, err := r.store.Append(ctx, listsPath, data); err != nil {
			return fmt.Errorf("failed to add list %s: %w", id, err)
		}
	}
	return nil
}

func (r *Repository) GetAllLists(ctx context.Context) ([]string, error) {
	return scanAll[string](ctx, r.store, listsPath, "", "")
}

func (r *Repository) AddGames(ctx context.Context, games []plays.Game) error {
	for _, game := range games {
		if err := r.setValue(ctx, gamesPath+"/"+game.ID, game); err != nil {
			return err
		}
	}
	return nil
}

// GetGame returns nil when the game is not cached.
func (r *Repository) GetGame(ctx context.Context, id string) (*plays.Game, error) {
	var game plays.Game
	found, err := r.getValue(ctx, gamesPath+"/"+id, &game)
	if err != nil || !found {
		return nil, err
	}
	return &game, nil
}

func (r *Repository) GetAllGames(ctx context.Context) ([]plays.Game, error) {
	return scanAll[plays.Game](ctx, r.store, gamesPath, "", "")
}

// GetMatchingGames returns the cached game with the given id followed by every
// cached game that declares itself an expansion for it.
func (r *Repository) GetMatchingGames(ctx context.Context, id string) ([]plays.Game, error) {
	games, err := r.GetAllGames(ctx)
	if err != nil {
		return nil, err
	}

	var exact []plays.Game
	var expansions []plays.Game
	for _, game := range games {
		switch {
		case game.ID == id:
			exact = append(exact, game)
		case slices.Contains(game.ExpansionFor, id):
			expansions = append(expansions, game)
		}
	}

	return append(exact, expansions...), nil
}

func (r *Repository) AddEntries(ctx context.Context, entries []plays.Entry) error {
	for _, entry := range entries {
		record := EntryRecord{
			ID:   entry.ID,
			Date: entry.Date,
			Game: entry.GameID,
			Link: entry.Link,
		}
		if err := r.setValue(ctx, entriesPath+"/"+entry.ID, record); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) GetAllEntries(ctx context.Context) ([]EntryRecord, error) {
	return scanAll[EntryRecord](ctx, r.store, entriesPath, "", "")
}

func (r *Repository) GetEntriesWithGameID(ctx context.Context, id string) ([]EntryRecord, error) {
	return scanAll[EntryRecord](ctx, r.store, entriesPath, "game", id)
}

func (r *Repository) getValue(ctx context.Context, path string, v any) (bool, error) {
	data, found, err := r.store.Get(ctx, path)
	if err != nil || !found {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return true, nil
}

func (r *Repository) setValue(ctx context.Context, path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return r.store.Set(ctx, path, data)
}

func scanAll[T any](ctx context.Context, store Store, collection, field, value string) ([]T, error) {
	values, err := store.Scan(ctx, collection, field, value)
	if err != nil {
		return nil, err
	}

	result := make([]T, 0, len(values))
	for _, data := range values {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("failed to decode %s item: %w", collection, err)
		}
		result = append(result, v)
	}

	return result, nil
}
