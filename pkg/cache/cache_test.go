package cache_test

import (
	"crypto/sha256"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdparse/pkg/cache"
	"github.com/yaklabco/gomdparse/pkg/html"
	"github.com/yaklabco/gomdparse/pkg/parser"
)

func openTemp(t *testing.T) *cache.Cache {
	t.Helper()
	c, err := cache.Open(filepath.Join(t.TempDir(), "nested", cache.DefaultFileName))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCache_GetPut(t *testing.T) {
	t.Parallel()

	c := openTemp(t)
	key := cache.Key(sha256.Sum256([]byte("# a")), "fp")

	_, ok, err := c.Get(key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(key, []byte("<h1>a</h1>\n")))

	got, ok, err := c.Get(key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "<h1>a</h1>\n", string(got))

	n, err := c.Len()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, c.Clear())
	n, err = c.Len()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCache_EmptyOutput(t *testing.T) {
	t.Parallel()

	c := openTemp(t)
	key := cache.Key(sha256.Sum256(nil), "fp")
	require.NoError(t, c.Put(key, []byte{}))

	got, ok, err := c.Get(key)
	require.NoError(t, err)
	assert.True(t, ok, "an empty document renders to empty output and still hits")
	assert.Empty(t, got)
}

func TestCache_Persists(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), cache.DefaultFileName)
	key := cache.Key(sha256.Sum256([]byte("x")), "fp")

	c, err := cache.Open(path)
	require.NoError(t, err)
	assert.Equal(t, path, c.Path())
	require.NoError(t, c.Put(key, []byte("<p>x</p>\n")))
	require.NoError(t, c.Close())

	c, err = cache.Open(path)
	require.NoError(t, err)
	defer c.Close()

	got, ok, err := c.Get(key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "<p>x</p>\n", string(got))
}

func TestCache_Closed(t *testing.T) {
	t.Parallel()

	c, err := cache.Open(filepath.Join(t.TempDir(), cache.DefaultFileName))
	require.NoError(t, err)
	require.NoError(t, c.Close())

	_, _, err = c.Get([]byte("k"))
	require.ErrorIs(t, err, cache.ErrClosed)
}

func TestCache_Concurrent(t *testing.T) {
	t.Parallel()

	c := openTemp(t)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := cache.Key(sha256.Sum256([]byte{byte(i)}), "fp")
			assert.NoError(t, c.Put(key, []byte{byte(i)}))
			got, ok, err := c.Get(key)
			assert.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, []byte{byte(i)}, got)
		}()
	}
	wg.Wait()

	n, err := c.Len()
	require.NoError(t, err)
	assert.Equal(t, 8, n)
}

func TestFingerprint(t *testing.T) {
	t.Parallel()

	base := cache.Fingerprint(parser.DefaultOptions(), html.DefaultOptions())
	assert.Len(t, base, 16)
	assert.Equal(t, base, cache.Fingerprint(parser.DefaultOptions(), html.DefaultOptions()))

	assert.NotEqual(t, base, cache.Fingerprint(parser.GFMOptions(), html.DefaultOptions()))

	dangerous := html.DefaultOptions()
	dangerous.AllowDangerousHTML = true
	assert.NotEqual(t, base, cache.Fingerprint(parser.DefaultOptions(), dangerous))
}

func TestKey(t *testing.T) {
	t.Parallel()

	key := string(cache.Key(sha256.Sum256([]byte("a")), "fp"))
	hash, fp, ok := strings.Cut(key, ":")
	require.True(t, ok)
	assert.Len(t, hash, 64)
	assert.Equal(t, "fp", fp)
}
