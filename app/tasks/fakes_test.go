package tasks

import (
	"context"
	"sync"

	"github.com/lysyi3m/bgg-plays/app/bgg"
)

type fakeCatalog struct {
	users     map[string]string
	listItems []bgg.ListItem
	lists     map[string]*bgg.Geeklist
	posts     []bgg.ThreadArticle
	families  map[string][]string
	things    map[string]bgg.ThingItem

	mu        sync.Mutex
	gameCalls [][]string
}

func (f *fakeCatalog) GetUser(ctx context.Context, username string) (*bgg.User, error) {
	id, ok := f.users[username]
	if !ok {
		return nil, bgg.ErrNotFound
	}
	return &bgg.User{ID: id, Name: username}, nil
}

func (f *fakeCatalog) GetGames(ctx context.Context, ids []string) ([]bgg.ThingItem, error) {
	f.mu.Lock()
	f.gameCalls = append(f.gameCalls, ids)
	f.mu.Unlock()

	var items []bgg.ThingItem
	for _, id := range ids {
		if item, ok := f.things[id]; ok {
			items = append(items, item)
		}
	}
	return items, nil
}

func (f *fakeCatalog) GetUserListItems(ctx context.Context, userID string) ([]bgg.ListItem, error) {
	return f.listItems, nil
}

func (f *fakeCatalog) GetGeeklist(ctx context.Context, listID string) (*bgg.Geeklist, error) {
	list, ok := f.lists[listID]
	if !ok {
		return nil, bgg.ErrUnexpectedStatus
	}
	return list, nil
}

// GetThread returns posts from minArticleID on, like the catalog does. Ids share one length.
func (f *fakeCatalog) GetThread(ctx context.Context, threadID, minArticleID string) (*bgg.Thread, error) {
	thread := &bgg.Thread{ID: threadID}
	for _, post := range f.posts {
		if post.ID >= minArticleID {
			thread.Articles.Article = append(thread.Articles.Article, post)
		}
	}
	return thread, nil
}

func (f *fakeCatalog) ResolveExpansionFamily(ctx context.Context, gameID string) ([]string, error) {
	family, ok := f.families[gameID]
	if !ok {
		return nil, bgg.ErrNotFound
	}
	return family, nil
}

type captureWriter struct {
	text string
}

func (w *captureWriter) Write(text string) error {
	w.text = text
	return nil
}
