package plays

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAdjustments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adjustments.yml")
	content := `- entry_id: "9270123"
  date: "2021-12-25"
- entry_id: "9270456"
  date: "2022-01-01T20:00:00Z"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write adjustments file: %v", err)
	}

	adjustments, err := LoadAdjustments(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(adjustments) != 2 {
		t.Fatalf("Expected 2 adjustments, got %d", len(adjustments))
	}
	if adjustments["9270123"] != "2021-12-25" {
		t.Errorf("Expected '2021-12-25', got '%s'", adjustments["9270123"])
	}
}

func TestLoadAdjustmentsMissingFile(t *testing.T) {
	adjustments, err := LoadAdjustments(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("Expected no error for missing file, got %v", err)
	}
	if len(adjustments) != 0 {
		t.Errorf("Expected no adjustments, got %d", len(adjustments))
	}
}

func TestLoadAdjustmentsInvalid(t *testing.T) {
	tests := map[string]string{
		"not a list":   "entry_id: 1\n",
		"missing date": "- entry_id: \"1\"\n",
		"bad date":     "- entry_id: \"1\"\n  date: \"yesterday\"\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "adjustments.yml")
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatalf("Failed to write adjustments file: %v", err)
			}

			if _, err := LoadAdjustments(path); err == nil {
				t.Error("Expected error for invalid adjustments")
			}
		})
	}
}
