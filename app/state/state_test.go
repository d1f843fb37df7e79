package state

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	data, err := Load(filepath.Join(t.TempDir(), "data.json"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if data.Username != "" || data.LastThreadPostID != "" || len(data.ListIDs) != 0 {
		t.Errorf("Expected empty state, got %+v", data)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	original := &Data{
		Username:                "alice",
		LastThreadPostID:        "503",
		ListIDs:                 []string{"222", "333"},
		FirstKnownThreadForUser: "111",
	}
	if err := Save(path, original); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}

	if loaded.Username != "alice" || loaded.LastThreadPostID != "503" || loaded.FirstKnownThreadForUser != "111" {
		t.Errorf("Unexpected state: %+v", loaded)
	}
	if !slices.Equal(loaded.ListIDs, []string{"222", "333"}) {
		t.Errorf("Expected lists [222 333], got %v", loaded.ListIDs)
	}
}

func TestLoadExistingFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	content := `{
  "username": "bob",
  "lastThreadPostId": "42",
  "listIds": ["1"]
}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	data, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if data.Username != "bob" || data.LastThreadPostID != "42" || !slices.Equal(data.ListIDs, []string{"1"}) {
		t.Errorf("Unexpected state: %+v", data)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	os.WriteFile(path, []byte("{not json"), 0644)

	if _, err := Load(path); err == nil {
		t.Error("Expected error for invalid state file")
	}
}

func TestAddLists(t *testing.T) {
	data := &Data{ListIDs: []string{"1", "2"}}

	added := data.AddLists([]string{"2", "3", "4", "3"})

	if added != 2 {
		t.Errorf("Expected 2 lists added, got %d", added)
	}
	if !slices.Equal(data.ListIDs, []string{"1", "2", "3", "4"}) {
		t.Errorf("Expected [1 2 3 4], got %v", data.ListIDs)
	}
}
