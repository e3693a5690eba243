package drivercache

import (
	"path/filepath"
	"testing"

	"github.com/covenant-lang/covenant/internal/lower"
)

func TestKey_StableForIdenticalInputs(t *testing.T) {
	opts := lower.DefaultOptions()
	k1 := Key([]byte("fn a() -> Int { 1 }"), opts)
	k2 := Key([]byte("fn a() -> Int { 1 }"), opts)
	if k1 != k2 {
		t.Fatalf("expected identical content+options to hash the same, got %q vs %q", k1, k2)
	}
}

func TestKey_DiffersOnOptions(t *testing.T) {
	content := []byte("fn a() -> Int { 1 }")
	trusted := lower.DefaultOptions()
	trusted.Verify = lower.VerifyTrusted
	full := lower.DefaultOptions()

	if Key(content, trusted) == Key(content, full) {
		t.Fatalf("expected different verify levels to produce different cache keys")
	}
}

func TestKey_DiffersOnContent(t *testing.T) {
	opts := lower.DefaultOptions()
	if Key([]byte("fn a() -> Int { 1 }"), opts) == Key([]byte("fn a() -> Int { 2 }"), opts) {
		t.Fatalf("expected different content to produce different cache keys")
	}
}

func TestDiskCache_PutThenGetRoundTrips(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	key := Key([]byte("fn a() -> Int { 1 }"), lower.DefaultOptions())
	entry := Entry{Output: "function a() { return 1; }", HasErrors: false}
	if err := c.Put(key, entry); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok := c.Get(key)
	if !ok {
		t.Fatalf("expected a cache hit after Put")
	}
	if got.Output != entry.Output {
		t.Fatalf("expected output %q, got %q", entry.Output, got.Output)
	}
	if got.Key != key {
		t.Fatalf("expected Put to stamp the entry's key, got %q", got.Key)
	}
}

func TestDiskCache_GetMissReturnsFalse(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, ok := c.Get("nonexistent-key"); ok {
		t.Fatalf("expected a miss for a key never written")
	}
}

func TestDiskCache_DropAllClearsEntries(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	key := Key([]byte("x"), lower.DefaultOptions())
	if err := c.Put(key, Entry{Output: "x"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := c.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if _, ok := c.Get(key); ok {
		t.Fatalf("expected no entries to survive DropAll")
	}
}
