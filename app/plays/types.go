package plays

import (
	"slices"

	"github.com/lysyi3m/bgg-plays/app/bgg"
)

// Entry is one logged play, either from the user's personal feed or from a community list.
type Entry struct {
	ID string `json:"id"`
	// ListID is nil for feed entries the source did not attach to a list.
	ListID *string `json:"listId,omitempty"`
	GameID string  `json:"gameId"`
	// ExpansionFor is nil until the entry's expansion family has been resolved.
	ExpansionFor []string `json:"expansionFor,omitempty"`
	Link         string   `json:"link"`
	Date         string   `json:"date"`
}

// WithExpansionFor returns a copy of the entry carrying the given family.
// The entry's own game id is never part of its family.
func (e Entry) WithExpansionFor(ids []string) Entry {
	family := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != e.GameID && !slices.Contains(family, id) {
			family = append(family, id)
		}
	}
	e.ExpansionFor = family
	return e
}

func (e Entry) InList(lists []string) bool {
	return e.ListID != nil && slices.Contains(lists, *e.ListID)
}

type Game struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Image        string   `json:"image,omitempty"`
	ExpansionFor []string `json:"expansionFor,omitempty"`
}

func GameFromThing(item bgg.ThingItem) Game {
	game := Game{
		ID:    item.ID,
		Name:  item.PrimaryName(),
		Image: item.Image,
	}
	for _, id := range item.ExpansionFamily() {
		if id != item.ID {
			game.ExpansionFor = append(game.ExpansionFor, id)
		}
	}
	return game
}

// NewLists is the outcome of a scan of the new-lists forum thread.
type NewLists struct {
	ListIDs   []string
	Watermark string
}

func stringPtr(s string) *string {
	return &s
}
