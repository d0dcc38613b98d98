package phonetics

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"

	"github.com/pthm/prosody/internal/parser"
	"github.com/pthm/prosody/internal/poem"
)

// Cache stores annotation documents on disk keyed by the BLAKE3 hash of
// the source namespace and the poem text. Entries live at
// <dir>/<first2>/<hash>.json.
type Cache struct {
	dir       string
	namespace string
	source    Source
	logger    *slog.Logger
}

// NewCache wraps source with an on-disk cache rooted at dir. namespace
// identifies the source and the options that change its answers; caches
// sharing a dir never see each other's entries unless it matches.
func NewCache(dir, namespace string, source Source, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{dir: dir, namespace: namespace, source: source, logger: logger}
}

// Key returns the cache key for a poem text annotated under namespace
func Key(namespace, text string) string {
	h := blake3.New()
	_, _ = h.Write([]byte(namespace))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key[:2], key+".json")
}

// Annotate returns the cached document for text, or asks the wrapped
// source and stores its answer
func (c *Cache) Annotate(ctx context.Context, text string) (*poem.Poem, error) {
	key := Key(c.namespace, text)
	path := c.path(key)

	p, err := c.load(path)
	switch {
	case err == nil:
		c.logger.Debug("phonetic cache hit", "key", key)
		return p, nil
	case errors.Is(err, fs.ErrNotExist):
	default:
		c.logger.Warn("ignoring unreadable cache entry", "path", path, "error", err)
	}

	p, err = c.source.Annotate(ctx, text)
	if err != nil {
		return nil, err
	}

	if err := c.store(path, p); err != nil {
		c.logger.Warn("failed to write cache entry", "path", path, "error", err)
	} else {
		c.logger.Debug("phonetic cache store", "key", key)
	}
	return p, nil
}

func (c *Cache) load(path string) (*poem.Poem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := parser.DecodeJSON(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return doc.Poem()
}

func (c *Cache) store(path string, p *poem.Poem) error {
	data, err := json.MarshalIndent(parser.FromPoem(p), "", "  ")
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	// A private temp file per write keeps concurrent stores of the same
	// entry from clobbering each other before the rename
	tmp, err := os.CreateTemp(filepath.Dir(path), "*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}
