package plays

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/lysyi3m/bgg-plays/app/bgg"
	"github.com/lysyi3m/bgg-plays/app/cfg"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
)

const siteURL = "https://boardgamegeek.com"

var listURLPattern = regexp.MustCompile(`boardgamegeek\.com/geeklist/(\d+)`)

// Catalog is the subset of the catalog client the collector depends on.
type Catalog interface {
	GetUserListItems(ctx context.Context, userID string) ([]bgg.ListItem, error)
	GetGeeklist(ctx context.Context, listID string) (*bgg.Geeklist, error)
	GetThread(ctx context.Context, threadID, minArticleID string) (*bgg.Thread, error)
	ResolveExpansionFamily(ctx context.Context, gameID string) ([]string, error)
}

var _ Catalog = (*bgg.Client)(nil)

type Collector struct {
	catalog     Catalog
	threadID    string
	concurrency int
}

func NewCollector(catalog Catalog, c *cfg.Cfg) *Collector {
	concurrency := c.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	return &Collector{
		catalog:     catalog,
		threadID:    c.ThreadID,
		concurrency: concurrency,
	}
}

// CollectFromFeed returns every play the user posted, as listed by the personal feed.
// When resolveFamilies is set each entry is enriched with its expansion family,
// costing one catalog lookup per entry.
func (c *Collector) CollectFromFeed(ctx context.Context, userID string, resolveFamilies bool) ([]Entry, error) {
	items, err := c.catalog.GetUserListItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch list items for user %s: %w", userID, err)
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		if item.Item.ID == "" {
			slog.Warn("Skipping list item without game", "id", item.ID)
			continue
		}

		entry := Entry{
			ID:     item.ID,
			GameID: item.Item.ID,
			Link:   siteURL + item.Href,
			Date:   item.PostDate,
		}
		if item.ListID != "" {
			entry.ListID = stringPtr(item.ListID)
		}
		entries = append(entries, entry)
	}

	slog.Debug("Feed collected", "user_id", userID, "entries", len(entries))

	if !resolveFamilies {
		return entries, nil
	}

	return c.resolveFamilies(ctx, entries)
}

func (c *Collector) resolveFamilies(ctx context.Context, entries []Entry) ([]Entry, error) {
	resolved := make([]Entry, len(entries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, entry := range entries {
		g.Go(func() error {
			family, err := c.family(ctx, entry.GameID)
			if err != nil {
				return err
			}
			resolved[i] = entry.WithExpansionFor(family)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return resolved, nil
}

// family resolves a game's expansion family. A game the catalog no longer
// knows is treated as having no family.
func (c *Collector) family(ctx context.Context, gameID string) ([]string, error) {
	family, err := c.catalog.ResolveExpansionFamily(ctx, gameID)
	if errors.Is(err, bgg.ErrNotFound) {
		slog.Warn("Game not found in catalog", "game_id", gameID)
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve expansion family for game %s: %w", gameID, err)
	}
	return family, nil
}

// CollectFromLists scans the given community lists for items posted by username.
// Entries come back grouped by list in the order the lists were given.
func (c *Collector) CollectFromLists(ctx context.Context, username string, lists []string) ([]Entry, error) {
	perList := make([][]Entry, len(lists))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, listID := range lists {
		g.Go(func() error {
			entries, err := c.collectFromList(ctx, username, listID)
			if err != nil {
				return err
			}
			perList[i] = entries
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var entries []Entry
	for _, listEntries := range perList {
		for _, entry := range listEntries {
			if seen[entry.ID] {
				continue
			}
			seen[entry.ID] = true
			entries = append(entries, entry)
		}
	}

	slog.Debug("Lists collected", "username", username, "lists", len(lists), "entries", len(entries))

	return entries, nil
}

func (c *Collector) collectFromList(ctx context.Context, username, listID string) ([]Entry, error) {
	list, err := c.catalog.GetGeeklist(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch list %s: %w", listID, err)
	}

	// Caser is stateful, so each list scan gets its own.
	fold := cases.Fold()
	target := fold.String(username)

	var entries []Entry
	for _, item := range list.Item {
		if fold.String(item.Username) != target || item.ObjectID == "" {
			continue
		}

		family, err := c.family(ctx, item.ObjectID)
		if err != nil {
			return nil, err
		}

		entryListID := listID
		if item.ListID != "" {
			entryListID = item.ListID
		}

		date, err := toISODate(item.PostDate)
		if err != nil {
			slog.Warn("Keeping unparseable post date", "list_id", listID, "item_id", item.ID, "date", item.PostDate)
			date = item.PostDate
		}

		entry := Entry{
			ID:     item.ID,
			ListID: stringPtr(entryListID),
			GameID: item.ObjectID,
			Link:   entryLink(entryListID, item.ID),
			Date:   date,
		}
		entries = append(entries, entry.WithExpansionFor(family))
	}

	return entries, nil
}

func entryLink(listID, itemID string) string {
	return fmt.Sprintf("%s/geeklist/%s/?itemid=%s#%s", siteURL, listID, itemID, itemID)
}

// FindNewLists scans the new-lists forum thread for list links posted after
// watermark. An empty thread leaves the watermark unchanged.
func (c *Collector) FindNewLists(ctx context.Context, watermark string) (NewLists, error) {
	thread, err := c.catalog.GetThread(ctx, c.threadID, watermark)
	if err != nil {
		return NewLists{}, fmt.Errorf("failed to scan thread %s: %w", c.threadID, err)
	}

	result := NewLists{Watermark: watermark}

	posts := thread.Articles.Article
	if len(posts) == 0 {
		slog.Debug("No new posts in thread", "thread_id", c.threadID, "watermark", watermark)
		return result, nil
	}

	for _, post := range posts {
		if post.ID == watermark {
			continue
		}
		if match := listURLPattern.FindStringSubmatch(post.Body); match != nil {
			result.ListIDs = append(result.ListIDs, match[1])
		}
	}
	result.Watermark = posts[len(posts)-1].ID

	slog.Info("Thread scanned", "thread_id", c.threadID, "posts", len(posts), "new_lists", len(result.ListIDs), "watermark", result.Watermark)

	return result, nil
}
