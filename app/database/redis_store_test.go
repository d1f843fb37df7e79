package database

import (
	"context"
	"os"
	"testing"

	"github.com/lysyi3m/bgg-plays/app/cfg"
)

func TestRedisStoreKeys(t *testing.T) {
	store := &RedisStore{prefix: "bggplays"}

	if key := store.collectionKey("games"); key != "bggplays:games" {
		t.Errorf("Expected 'bggplays:games', got '%s'", key)
	}
	if key := store.valueKey("last_list_post_id"); key != "bggplays:value:last_list_post_id" {
		t.Errorf("Expected 'bggplays:value:last_list_post_id', got '%s'", key)
	}
}

func TestFieldEquals(t *testing.T) {
	data := []byte(`{"id":"1","game":"13","count":13}`)

	if !fieldEquals(data, "game", "13") {
		t.Error("Expected game field to match")
	}
	if fieldEquals(data, "game", "14") {
		t.Error("Expected different game not to match")
	}
	if fieldEquals(data, "count", "13") {
		t.Error("Expected non-string field not to match")
	}
	if fieldEquals([]byte(`"13"`), "game", "13") {
		t.Error("Expected non-object value not to match")
	}
}

// Runs against a real server when REDIS_TEST_ADDR is set.
func TestRedisStoreRoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	ctx := context.Background()
	store, err := NewRedisStore(ctx, &cfg.Cfg{RedisAddr: addr, RedisPrefix: "bggplays-test-" + t.Name()})
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer store.Close()
	defer store.client.Del(ctx, store.collectionKey("entries"), store.valueKey("last_list_post_id"))

	store.Set(ctx, "entries/1", []byte(`{"id":"1","game":"13"}`))
	store.Set(ctx, "entries/2", []byte(`{"id":"2","game":"14"}`))
	store.Set(ctx, "last_list_post_id", []byte(`"500"`))

	values, err := store.Scan(ctx, "entries", "game", "14")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(values) != 1 || string(values[0]) != `{"id":"2","game":"14"}` {
		t.Errorf("Unexpected scan result: %q", values)
	}

	value, found, err := store.Get(ctx, "last_list_post_id")
	if err != nil || !found || string(value) != `"500"` {
		t.Errorf("Expected watermark, got %s found=%t err=%v", value, found, err)
	}
}
