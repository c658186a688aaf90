package iocache

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/triage/schema"
)

func newSQLiteCacheStore(t *testing.T) *CacheStoreImpl {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	store, err := NewCacheStore("index_cache", schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*CacheStoreImpl)
}

func TestCacheStoreRoundTrip(t *testing.T) {
	store := newSQLiteCacheStore(t)

	err := store.Set("core/graph.go", []byte(`{"p":"core/graph.go"}`), "deadbeef00000000", time.Now().Unix())
	require.NoError(t, err)

	value, fingerprint, err := store.Get("core/graph.go")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"p":"core/graph.go"}`), value)
	assert.Equal(t, "deadbeef00000000", fingerprint)
}

func TestCacheStoreGetMissing(t *testing.T) {
	store := newSQLiteCacheStore(t)

	_, _, err := store.Get("no/such/file.go")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestCacheStoreSetOverwrites(t *testing.T) {
	store := newSQLiteCacheStore(t)

	require.NoError(t, store.Set("a.go", []byte("old"), "1111111111111111", 100))
	require.NoError(t, store.Set("a.go", []byte("new"), "2222222222222222", 200))

	value, fingerprint, err := store.Get("a.go")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), value)
	assert.Equal(t, "2222222222222222", fingerprint)
}

func TestCacheStoreKeysAndDelete(t *testing.T) {
	store := newSQLiteCacheStore(t)

	require.NoError(t, store.Set("b.go", []byte("x"), "f1", 1))
	require.NoError(t, store.Set("a.go", []byte("y"), "f2", 2))

	keys, err := store.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.go", "b.go"}, keys)

	require.NoError(t, store.Delete("a.go"))
	keys, err = store.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"b.go"}, keys)

	// Deleting a missing key is not an error
	assert.NoError(t, store.Delete("a.go"))
}

func TestCacheStoreStatus(t *testing.T) {
	store := newSQLiteCacheStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Zero(t, status.TotalEntries)

	require.NoError(t, store.Set("a.go", []byte("x"), "f1", 100))
	require.NoError(t, store.Set("b.go", []byte("y"), "f2", 200))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 2, status.TotalEntries)
	assert.Equal(t, time.Unix(200, 0), status.LastEntryTime)
	assert.Equal(t, time.Unix(100, 0), status.OldestEntryTime)
}

func TestCacheStoreNoneBackend(t *testing.T) {
	store, err := NewCacheStore("index_cache", schema.NoneBackend, "")
	require.NoError(t, err)

	// Writes are silently dropped and reads always miss
	assert.NoError(t, store.Set("a.go", []byte("x"), "f1", 1))
	_, _, err = store.Get("a.go")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	keys, err := store.Keys()
	assert.NoError(t, err)
	assert.Empty(t, keys)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.False(t, status.Connected)
	assert.NoError(t, store.Close())
}

func TestCacheStoreRejectsBadTableName(t *testing.T) {
	_, err := NewCacheStore("bad name; DROP TABLE", schema.SQLiteBackend, filepath.Join(t.TempDir(), "x.db"))
	assert.Error(t, err)
}
