package database

import (
	"context"
	"strings"

	"github.com/goccy/go-json"
)

// Store is a path-addressed document store. A path is "<collection>/<key>",
// or a bare key for top-level values.
type Store interface {
	Get(ctx context.Context, path string) ([]byte, bool, error)
	Set(ctx context.Context, path string, value []byte) error
	// Append adds value to collection under a generated key and returns that key.
	Append(ctx context.Context, collection string, value []byte) (string, error)
	// Scan returns the values of collection whose top-level field equals value,
	// or every value when field is empty. Values come back ordered by key.
	Scan(ctx context.Context, collection, field, value string) ([][]byte, error)
	Close() error
}

func splitPath(path string) (string, string) {
	path = strings.Trim(path, "/")
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return "", path
	}
	return path[:i], path[i+1:]
}

func fieldEquals(data []byte, field, value string) bool {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return false
	}
	s, ok := doc[field].(string)
	return ok && s == value
}
