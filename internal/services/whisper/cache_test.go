package whisper

import (
	"os"
	"testing"
)

func TestCacheRoundTrip(t *testing.T) {
	cache := NewCache(t.TempDir())

	if _, ok := cache.Lookup("111122223333"); ok {
		t.Fatal("expected cache miss for fresh cache")
	}

	if err := cache.Store("111122223333", "buy the thing"); err != nil {
		t.Fatalf("Store: %v", err)
	}
	text, ok := cache.Lookup("111122223333")
	if !ok || text != "buy the thing" {
		t.Fatalf("Lookup = %q, %v", text, ok)
	}
}

func TestCacheIgnoresEmptyFiles(t *testing.T) {
	cache := NewCache(t.TempDir())
	if err := os.WriteFile(cache.Path("1"), []byte("  \n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, ok := cache.Lookup("1"); ok {
		t.Fatal("blank cache file must be a miss")
	}
}

func TestDisabledCache(t *testing.T) {
	cache := NewCache("")
	if cache.Enabled() {
		t.Fatal("empty dir must disable the cache")
	}
	if err := cache.Store("1", "text"); err != nil {
		t.Fatalf("Store on disabled cache: %v", err)
	}
	if _, ok := cache.Lookup("1"); ok {
		t.Fatal("disabled cache must always miss")
	}
}
