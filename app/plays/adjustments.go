package plays

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Adjustments maps entry ids to the date that should be shown instead of the posted one.
type Adjustments map[string]string

type adjustment struct {
	EntryID string `yaml:"entry_id"`
	Date    string `yaml:"date"`
}

// LoadAdjustments reads date overrides from a YAML file. A missing file means no overrides.
func LoadAdjustments(path string) (Adjustments, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Adjustments{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read adjustments file %s: %w", path, err)
	}

	var list []adjustment
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse adjustments file %s: %w", path, err)
	}

	adjustments := make(Adjustments, len(list))
	for i, a := range list {
		if a.EntryID == "" || a.Date == "" {
			return nil, fmt.Errorf("invalid adjustment #%d in %s: entry_id and date are required", i+1, path)
		}
		if _, err := parseDate(a.Date); err != nil {
			return nil, fmt.Errorf("invalid adjustment for entry %s: %w", a.EntryID, err)
		}
		adjustments[a.EntryID] = a.Date
	}

	slog.Debug("Date adjustments loaded", "path", path, "count", len(adjustments))

	return adjustments, nil
}
