package plays

import (
	"slices"
	"testing"

	"github.com/lysyi3m/bgg-plays/app/bgg"
)

func entryIDs(entries []Entry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}

func TestReconcileRules(t *testing.T) {
	tests := []struct {
		name     string
		entry    Entry
		target   string
		family   []string
		retained bool
	}{
		{"exact match", Entry{ID: "a", GameID: "5", ExpansionFor: []string{}}, "5", nil, true},
		{"base game of target", Entry{ID: "b", GameID: "9", ExpansionFor: []string{}}, "5", []string{"9"}, true},
		{"expansion of target", Entry{ID: "c", GameID: "20", ExpansionFor: []string{"5"}}, "5", nil, true},
		{"sibling expansion", Entry{ID: "d", GameID: "21", ExpansionFor: []string{"9"}}, "5", []string{"9"}, true},
		{"unrelated", Entry{ID: "e", GameID: "99", ExpansionFor: []string{}}, "5", []string{}, false},
		{"unresolved family", Entry{ID: "f", GameID: "99"}, "5", []string{"9"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Reconcile([]Entry{tt.entry}, tt.target, tt.family)
			if retained := len(result) == 1; retained != tt.retained {
				t.Errorf("Expected retained=%t, got %t", tt.retained, retained)
			}
		})
	}
}

func TestReconcileSubsetAndIdempotent(t *testing.T) {
	entries := []Entry{
		{ID: "1", GameID: "99"},
		{ID: "2", GameID: "5"},
		{ID: "3", GameID: "21", ExpansionFor: []string{"9"}},
		{ID: "4", GameID: "30", ExpansionFor: []string{"31"}},
		{ID: "5", GameID: "9"},
		{ID: "6", GameID: "20", ExpansionFor: []string{"5"}},
	}
	family := []string{"9"}

	once := Reconcile(entries, "5", family)
	if !slices.Equal(entryIDs(once), []string{"2", "3", "5", "6"}) {
		t.Errorf("Expected [2 3 5 6] in input order, got %v", entryIDs(once))
	}

	twice := Reconcile(once, "5", family)
	if !slices.Equal(entryIDs(twice), entryIDs(once)) {
		t.Errorf("Expected reconcile to be idempotent, got %v then %v", entryIDs(once), entryIDs(twice))
	}
}

func TestReconcileFamiliesResolvedIndependently(t *testing.T) {
	// The target claims 9 as its base but the entry for 9 knows nothing about 5.
	entries := []Entry{{ID: "1", GameID: "9", ExpansionFor: []string{}}}

	if len(Reconcile(entries, "5", []string{"9"})) != 1 {
		t.Error("Expected base game entry to match through target family")
	}
	if len(Reconcile(entries, "5", nil)) != 0 {
		t.Error("Expected no match without target family")
	}
}

func TestFilterByLists(t *testing.T) {
	entries := []Entry{
		{ID: "1", ListID: stringPtr("100")},
		{ID: "2"},
		{ID: "3", ListID: stringPtr("200")},
		{ID: "4", ListID: stringPtr("300")},
	}

	result := FilterByLists(entries, []string{"100", "300"})
	if !slices.Equal(entryIDs(result), []string{"1", "4"}) {
		t.Errorf("Expected [1 4], got %v", entryIDs(result))
	}
}

func TestSortByDateDesc(t *testing.T) {
	entries := []Entry{
		{ID: "old", Date: "2021-03-01T10:00:00+00:00"},
		{ID: "new", Date: "2023-01-15T08:30:00+00:00"},
		{ID: "mid-a", Date: "2022-06-01T00:00:00.000Z"},
		{ID: "mid-b", Date: "2022-06-01T00:00:00.000Z"},
	}

	sorted := SortByDateDesc(entries)

	expected := []string{"new", "mid-a", "mid-b", "old"}
	if !slices.Equal(entryIDs(sorted), expected) {
		t.Errorf("Expected %v, got %v", expected, entryIDs(sorted))
	}
	if entries[0].ID != "old" {
		t.Error("Expected input slice to be left untouched")
	}
}

func TestSortByDateDescMixedOffsets(t *testing.T) {
	entries := []Entry{
		{ID: "a", Date: "2022-01-01T10:00:00+02:00"},
		{ID: "b", Date: "2022-01-01T09:00:00Z"},
	}

	sorted := SortByDateDesc(entries)
	if sorted[0].ID != "b" {
		t.Errorf("Expected 'b' (09:00Z) before 'a' (08:00Z), got %v", entryIDs(sorted))
	}
}

func TestWithExpansionForDropsOwnID(t *testing.T) {
	original := Entry{ID: "1", GameID: "5"}
	enriched := original.WithExpansionFor([]string{"5", "9", "9", "12"})

	if !slices.Equal(enriched.ExpansionFor, []string{"9", "12"}) {
		t.Errorf("Expected [9 12], got %v", enriched.ExpansionFor)
	}
	if original.ExpansionFor != nil {
		t.Error("Expected original entry to stay unresolved")
	}

	empty := original.WithExpansionFor(nil)
	if empty.ExpansionFor == nil || len(empty.ExpansionFor) != 0 {
		t.Errorf("Expected resolved empty family, got %v", empty.ExpansionFor)
	}
}

func TestParseGameID(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"13", "13"},
		{" 13 ", "13"},
		{"https://boardgamegeek.com/boardgame/13/catan", "13"},
		{"https://boardgamegeek.com/boardgameexpansion/325/seafarers", "325"},
		{"boardgamegeek.com/boardgame/174430", "174430"},
	}

	for _, tt := range tests {
		if got := ParseGameID(tt.input); got != tt.expected {
			t.Errorf("ParseGameID(%q): expected '%s', got '%s'", tt.input, tt.expected, got)
		}
	}
}

func TestGameFromThing(t *testing.T) {
	game := GameFromThing(bgg.ThingItem{
		ID:    "20",
		Image: "cover.png",
		Name:  []bgg.ThingName{{Type: "alternate", Value: "Alt"}, {Type: "primary", Value: "Big Box"}},
		Link: []bgg.ThingLink{
			{Type: bgg.LinkTypeExpansion, ID: "7", Inbound: "true"},
			{Type: bgg.LinkTypeExpansion, ID: "8"},
		},
	})

	if game.Name != "Big Box" || game.Image != "cover.png" {
		t.Errorf("Unexpected game: %+v", game)
	}
	if !slices.Equal(game.ExpansionFor, []string{"7"}) {
		t.Errorf("Expected expansionFor [7], got %v", game.ExpansionFor)
	}
}
