// Package cache stores rendered HTML in a bbolt database, keyed by the
// content hash of the source and a fingerprint of the render options.
package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/yaklabco/gomdparse/pkg/html"
	"github.com/yaklabco/gomdparse/pkg/parser"
)

// schemaVersion changes whenever rendering changes output for the same
// options. A database with another version is emptied on open.
const schemaVersion = "1"

// DefaultFileName is the database name inside the cache directory.
const DefaultFileName = "render.db"

const openTimeout = time.Second

// entryMarker prefixes stored values so an empty output is still a hit.
const entryMarker = 'h'

//nolint:gochecknoglobals // Read-only lookup table.
var (
	bucketMeta   = []byte("meta")
	bucketRender = []byte("render")
	keyVersion   = []byte("version")
)

// ErrClosed is returned by operations on a closed cache.
var ErrClosed = errors.New("cache closed")

// Cache is a persistent render cache. It is safe for concurrent use.
type Cache struct {
	db *bolt.DB
}

// Open opens or creates the cache database at path, creating its directory.
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("open cache %s: %w", path, err)
	}

	if err := db.Update(initSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init cache %s: %w", path, err)
	}

	return &Cache{db: db}, nil
}

func initSchema(tx *bolt.Tx) error {
	meta, err := tx.CreateBucketIfNotExists(bucketMeta)
	if err != nil {
		return err
	}

	if version := meta.Get(keyVersion); !bytes.Equal(version, []byte(schemaVersion)) {
		if tx.Bucket(bucketRender) != nil {
			if err := tx.DeleteBucket(bucketRender); err != nil {
				return err
			}
		}
		if err := meta.Put(keyVersion, []byte(schemaVersion)); err != nil {
			return err
		}
	}

	_, err = tx.CreateBucketIfNotExists(bucketRender)
	return err
}

// Path returns the database file path.
func (c *Cache) Path() string {
	return c.db.Path()
}

// Close releases the database.
func (c *Cache) Close() error {
	if err := c.db.Close(); err != nil {
		return fmt.Errorf("close cache: %w", err)
	}
	return nil
}

// Get returns the cached output for key.
func (c *Cache) Get(key []byte) ([]byte, bool, error) {
	var out []byte
	err := c.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketRender).Get(key); len(v) > 0 && v[0] == entryMarker {
			// Values are only valid inside the transaction.
			out = append(make([]byte, 0, len(v)-1), v[1:]...)
		}
		return nil
	})
	if err != nil {
		return nil, false, wrap("get", err)
	}
	return out, out != nil, nil
}

// Put stores output under key.
func (c *Cache) Put(key, output []byte) error {
	err := c.db.Update(func(tx *bolt.Tx) error {
		value := make([]byte, 0, len(output)+1)
		value = append(value, entryMarker)
		return tx.Bucket(bucketRender).Put(key, append(value, output...))
	})
	return wrap("put", err)
}

// Len returns the number of cached entries.
func (c *Cache) Len() (int, error) {
	var n int
	err := c.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucketRender).Stats().KeyN
		return nil
	})
	return n, wrap("len", err)
}

// Clear drops every entry.
func (c *Cache) Clear() error {
	err := c.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketRender); err != nil {
			return err
		}
		_, err := tx.CreateBucket(bucketRender)
		return err
	})
	return wrap("clear", err)
}

func wrap(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bolt.ErrDatabaseNotOpen):
		return fmt.Errorf("cache %s: %w", op, ErrClosed)
	default:
		return fmt.Errorf("cache %s: %w", op, err)
	}
}

// Fingerprint digests everything besides the source that changes output.
func Fingerprint(parseOpts parser.Options, htmlOpts html.Options) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s\x00%#v\x00%#v", schemaVersion, parseOpts, htmlOpts))
	return hex.EncodeToString(sum[:8])
}

// Key joins a source content hash and an options fingerprint.
func Key(sourceHash [32]byte, fingerprint string) []byte {
	key := make([]byte, 0, hex.EncodedLen(len(sourceHash))+1+len(fingerprint))
	key = hex.AppendEncode(key, sourceHash[:])
	key = append(key, ':')
	return append(key, fingerprint...)
}
