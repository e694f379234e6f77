package json

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
)

func TestStoreRoundTripAcrossReopen(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "settings.json")

	store, err := NewStore(filename)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	blob := json.RawMessage(`{"direction":"output"}`)
	if err := store.Set("ctx", blob); err != nil {
		t.Fatalf("set: %v", err)
	}

	// cancelled looper does the shutdown flush and closes the file
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := store.SaveLooper(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("save looper: %v", err)
	}

	reopened, err := NewStore(filename)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}

	got, err := reopened.Get("ctx")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != string(blob) {
		t.Errorf("get = %s, want %s", got, blob)
	}
}

func TestStoreMissingContext(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "settings.json"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	got, err := store.Get("nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("unknown context = %q, want nil", got)
	}
}
