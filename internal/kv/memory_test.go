package kv

import (
	"context"
	"testing"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	defer store.Close()

	if _, ok, err := store.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok=%v err=%v, want miss", ok, err)
	}

	if err := store.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := store.Get(ctx, "k")
	if err != nil || !ok || v != "v1" {
		t.Fatalf("Get(k) = %q ok=%v err=%v", v, ok, err)
	}

	// Set overwrites.
	if err := store.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, _, _ = store.Get(ctx, "k")
	if v != "v2" {
		t.Fatalf("Get(k) after overwrite = %q", v)
	}

	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "k"); ok {
		t.Fatal("key survived Delete")
	}

	// Deleting an absent key is a no-op.
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete(absent): %v", err)
	}
}
