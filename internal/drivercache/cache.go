// Package drivercache implements an on-disk cache of lowered output,
// keyed by a single file's content hash plus the lowering options that
// produced it — the single-file analogue of a build cache, grounded on the
// disk-cache-keyed-by-hash pattern but re-keyed for a pipeline with no
// module graph to hash (the compiler is a pure function of one
// file's bytes plus its compilation options).
package drivercache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/covenant-lang/covenant/internal/diag"
	"github.com/covenant-lang/covenant/internal/lower"
)

// Entry is one cached compilation outcome.
type Entry struct {
	Key          string
	Output       string
	Diagnostics  []diag.Diagnostic
	HasErrors    bool
}

// DiskCache persists Entry values under dir, one file per key.
type DiskCache struct {
	mu  sync.Mutex
	dir string
}

// Open returns a DiskCache rooted at dir, creating it if absent.
func Open(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("drivercache: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// Key derives a cache key from a file's content and the compilation
// options it was (or would be) lowered with — two files with identical
// bytes and options always collide onto the same entry, by design.
func Key(content []byte, opts lower.Options) string {
	h := sha256.New()
	h.Write(content)
	fmt.Fprintf(h, "|dialect=%d|module=%d|contracts=%t|verify=%d", opts.Dialect, opts.Module, opts.RuntimeContracts, opts.Verify)
	return hex.EncodeToString(h.Sum(nil))
}

func (c *DiskCache) pathFor(key string) string {
	return filepath.Join(c.dir, key+".covcache")
}

// Get returns the cached Entry for key, if present and readable.
func (c *DiskCache) Get(key string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		return Entry{}, false
	}
	var e Entry
	if err := msgpack.Unmarshal(raw, &e); err != nil {
		return Entry{}, false
	}
	return e, true
}

// Put writes e under key, overwriting any previous entry.
func (c *DiskCache) Put(key string, e Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	e.Key = key
	raw, err := msgpack.Marshal(e)
	if err != nil {
		return fmt.Errorf("drivercache: encode: %w", err)
	}
	tmp := c.pathFor(key) + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("drivercache: write: %w", err)
	}
	return os.Rename(tmp, c.pathFor(key))
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return err
	}
	for _, ent := range entries {
		if err := os.Remove(filepath.Join(c.dir, ent.Name())); err != nil {
			return err
		}
	}
	return nil
}
