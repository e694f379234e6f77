package memory

import (
	"encoding/json"
	"testing"
)

func TestStore(t *testing.T) {
	store := NewStore()

	got, err := store.Get("ctx")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("unknown context = %q, want nil", got)
	}

	blob := json.RawMessage(`{"direction":"output"}`)
	if err := store.Set("ctx", blob); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err = store.Get("ctx")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != string(blob) {
		t.Errorf("get = %s, want %s", got, blob)
	}
}
