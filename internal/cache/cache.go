// Package cache remembers which files are already stable under a profile,
// so unchanged files skip the pipeline on the next run.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"csfix/internal/rule"
	"csfix/internal/version"
)

// FileName is the cache file created in the project root.
const FileName = ".csfix.cache"

// Current schema version - increment when payload format changes
const schemaVersion uint16 = 1

// Cache is safe for concurrent use by driver workers.
type Cache struct {
	mu      sync.RWMutex
	path    string
	payload payload
	dirty   bool
}

type payload struct {
	Schema    uint16            `msgpack:"schema"`
	Signature string            `msgpack:"signature"`
	Hashes    map[string]string `msgpack:"hashes"`
}

// Signature identifies a rule set: a file stable under one profile may
// change under another, and rules change between csfix releases.
func Signature(ruleNames []string, level rule.Level, maxPasses int) string {
	names := slices.Clone(ruleNames)
	slices.Sort(names)
	h := sha256.New()
	h.Write([]byte(version.Version))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(names, ",")))
	h.Write([]byte{0})
	h.Write([]byte(level.String()))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(maxPasses)))
	return hex.EncodeToString(h.Sum(nil))
}

// Hash is the content key stored per path.
func Hash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Open loads the cache at path. A missing file, an old schema or another
// signature yields an empty cache; a corrupt file is an error.
func Open(path, signature string) (*Cache, error) {
	c := &Cache{
		path:    path,
		payload: payload{Schema: schemaVersion, Signature: signature, Hashes: make(map[string]string)},
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return nil, err
	}

	var stored payload
	if err := msgpack.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("%s: corrupt cache: %w", path, err)
	}
	if stored.Schema != schemaVersion || stored.Signature != signature {
		// профиль изменился: всё пересчитываем
		c.dirty = true
		return c, nil
	}
	if stored.Hashes != nil {
		c.payload.Hashes = stored.Hashes
	}
	return c, nil
}

// Fresh reports whether content is the stable output last recorded for path.
func (c *Cache) Fresh(path string, content []byte) bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	h, ok := c.payload.Hashes[path]
	return ok && h == Hash(content)
}

// Store records content as the stable output for path.
func (c *Cache) Store(path string, content []byte) {
	if c == nil {
		return
	}
	h := Hash(content)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.payload.Hashes[path] != h {
		c.payload.Hashes[path] = h
		c.dirty = true
	}
}

// Forget drops path, e.g. after a failure.
func (c *Cache) Forget(path string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.payload.Hashes[path]; ok {
		delete(c.payload.Hashes, path)
		c.dirty = true
	}
}

func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.payload.Hashes)
}

// Save writes the cache if it changed. The file is replaced atomically.
func (c *Cache) Save() (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dirty {
		return nil
	}

	data, err := msgpack.Marshal(&c.payload)
	if err != nil {
		return err
	}
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".csfix-cache-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	if err := os.Rename(f.Name(), c.path); err != nil {
		return err
	}
	c.dirty = false
	return nil
}
