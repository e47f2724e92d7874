package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when cacheEntry changes
const cacheSchemaVersion uint16 = 1

// Digest is a SHA-256 sum.
type Digest [32]byte

// Cache remembers files already known to be formatted, so later runs can
// skip them. Entries are keyed by path, content and options; any change to
// one of them misses. Thread-safe for concurrent access. A nil *Cache is a
// valid cache that never hits.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

type cacheEntry struct {
	Schema      uint16
	Path        string
	Fingerprint string
	Hash        Digest
	Stored      time.Time
}

// OpenCache opens the cache under $XDG_CACHE_HOME/app (or ~/.cache/app).
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenCacheDir(filepath.Join(base, app))
}

// OpenCacheDir opens a cache rooted at dir.
func OpenCacheDir(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func cacheKey(path, fingerprint string, hash Digest) Digest {
	h := sha256.New()
	_, _ = h.Write([]byte(path))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(fingerprint))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(hash[:])
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func (c *Cache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталоги по первому байту, чтобы не держать всё в одном каталоге
	return filepath.Join(c.dir, "fmt", hexKey[:2], hexKey+".mp")
}

// Formatted reports whether content with the given hash was recorded as
// formatted for path under fingerprint.
func (c *Cache) Formatted(path, fingerprint string, hash Digest) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(cacheKey(path, fingerprint, hash)))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	var entry cacheEntry
	if err := msgpack.NewDecoder(f).Decode(&entry); err != nil {
		// битая запись равносильна промаху
		return false, nil
	}
	ok := entry.Schema == cacheSchemaVersion &&
		entry.Path == path &&
		entry.Fingerprint == fingerprint &&
		entry.Hash == hash
	return ok, nil
}

// Record marks content with the given hash as formatted.
func (c *Cache) Record(path, fingerprint string, hash Digest) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(cacheKey(path, fingerprint, hash))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(f.Name()) }()

	err = msgpack.NewEncoder(f).Encode(&cacheEntry{
		Schema:      cacheSchemaVersion,
		Path:        path,
		Fingerprint: fingerprint,
		Hash:        hash,
		Stored:      time.Now().UTC(),
	})
	if err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// DropAll removes every entry.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func digestOf(data []byte) Digest {
	return sha256.Sum256(data)
}
