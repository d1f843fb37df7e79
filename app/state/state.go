package state

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/goccy/go-json"
)

// Data is the small amount of state carried between runs.
type Data struct {
	Username                string   `json:"username,omitempty"`
	LastThreadPostID        string   `json:"lastThreadPostId,omitempty"`
	ListIDs                 []string `json:"listIds,omitempty"`
	FirstKnownThreadForUser string   `json:"firstKnownThreadForUser,omitempty"`
}

// AddLists appends ids not already known, keeping discovery order.
func (d *Data) AddLists(ids []string) int {
	added := 0
	for _, id := range ids {
		if !slices.Contains(d.ListIDs, id) {
			d.ListIDs = append(d.ListIDs, id)
			added++
		}
	}
	return added
}

// Load reads the state file. A missing file yields empty state.
func Load(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Data{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file %s: %w", path, err)
	}

	var data Data
	if len(raw) == 0 {
		return &data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse state file %s: %w", path, err)
	}

	return &data, nil
}

func Save(path string, data *Data) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	if err := os.WriteFile(path, append(raw, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write state file %s: %w", path, err)
	}

	return nil
}
