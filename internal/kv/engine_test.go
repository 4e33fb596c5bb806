package kv_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/stretchr/testify/require"

	"github.com/maxicode2/surrealdb/internal/kv"
)

func tempEngine(t *testing.T) *kv.Engine {
	t.Helper()

	ng, err := kv.NewEngine("test", &pebble.Options{FS: vfs.NewMem()})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, ng.Close())
	})

	return ng
}

func fill(t *testing.T, ng *kv.Engine, n int) [][]byte {
	t.Helper()

	s := ng.NewSession()
	keys := make([][]byte, n)
	for i := 0; i < n; i++ {
		keys[i] = []byte(fmt.Sprintf("key-%04d", i))
		require.NoError(t, s.Put(keys[i], []byte(fmt.Sprintf("value-%04d", i))))
	}
	require.NoError(t, s.Commit())

	return keys
}

func TestSession(t *testing.T) {
	ng := tempEngine(t)

	s := ng.NewSession()
	require.NoError(t, s.Put([]byte("a"), []byte("1")))

	// Pending writes are visible within the session.
	v, err := s.Get([]byte("a"))
	require.NoError(t, err)
	require.Equal(t, []byte("1"), v)

	// But not outside it until commit.
	_, err = ng.Get([]byte("a"))
	require.ErrorIs(t, err, kv.ErrKeyNotFound)

	require.Error(t, s.Put(nil, []byte("x")))

	require.NoError(t, s.Insert([]byte("b"), []byte("2")))
	require.ErrorIs(t, s.Insert([]byte("a"), []byte("dup")), kv.ErrKeyAlreadyExists)

	require.NoError(t, s.Delete([]byte("b")))
	require.ErrorIs(t, s.Delete([]byte("b")), kv.ErrKeyNotFound)

	require.NoError(t, s.Commit())

	v, err = ng.Get([]byte("a"))
	require.NoError(t, err)
	require.Equal(t, []byte("1"), v)

	ok, err := ng.Exists([]byte("b"))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSessionRollback(t *testing.T) {
	ng := tempEngine(t)

	s := ng.NewSession()
	require.NoError(t, s.Put([]byte("a"), []byte("1")))
	require.NoError(t, s.Close())

	_, err := ng.Get([]byte("a"))
	require.ErrorIs(t, err, kv.ErrKeyNotFound)

	require.Error(t, s.Commit())
}

func TestFetchPage(t *testing.T) {
	ng := tempEngine(t)
	fill(t, ng, 120)

	// The default page size applies; the first page stops there and hands
	// back the resume key.
	items, next, err := ng.FetchPage([]byte("key-"), []byte("key-9999"))
	require.NoError(t, err)
	require.Len(t, items, 50)
	require.Equal(t, []byte("key-0000"), items[0].Key)
	require.Equal(t, []byte("value-0049"), items[49].Value)
	require.Equal(t, []byte("key-0050"), next)

	items, next, err = ng.FetchPage(next, []byte("key-9999"))
	require.NoError(t, err)
	require.Len(t, items, 50)
	require.Equal(t, []byte("key-0050"), items[0].Key)

	items, next, err = ng.FetchPage(next, []byte("key-9999"))
	require.NoError(t, err)
	require.Len(t, items, 20)
	require.Nil(t, next)
}

func TestStream(t *testing.T) {
	ng := tempEngine(t)
	keys := fill(t, ng, 75)

	var got [][]byte
	err := ng.Stream([]byte("key-"), []byte("key-9999"), func(k, v []byte) error {
		got = append(got, append([]byte(nil), k...))
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, keys, got)
}

func TestExport(t *testing.T) {
	ng := tempEngine(t)
	keys := fill(t, ng, 40)

	var count int
	err := ng.Export([]byte("key-"), []byte("key-9999"), func(k, v []byte) error {
		count++
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, len(keys), count)
}

func TestIndexInBatches(t *testing.T) {
	ng := tempEngine(t)

	keys := make([][]byte, 600)
	for i := range keys {
		keys[i] = []byte(fmt.Sprintf("key-%04d", i))
	}

	var mu sync.Mutex
	var sizes []int
	seen := make(map[string]int)

	err := ng.IndexInBatches(context.Background(), keys, func(ctx context.Context, batch [][]byte) error {
		mu.Lock()
		defer mu.Unlock()
		sizes = append(sizes, len(batch))
		for _, k := range batch {
			seen[string(k)]++
		}
		return nil
	})
	require.NoError(t, err)

	// Every key visited exactly once, in batches no larger than the
	// configured indexing batch size.
	require.Len(t, seen, 600)
	for _, n := range seen {
		require.Equal(t, 1, n)
	}
	for _, n := range sizes {
		require.LessOrEqual(t, n, 250)
	}
}

func TestIndexInBatchesError(t *testing.T) {
	ng := tempEngine(t)

	keys := make([][]byte, 10)
	for i := range keys {
		keys[i] = []byte(fmt.Sprintf("key-%d", i))
	}

	err := ng.IndexInBatches(context.Background(), keys, func(ctx context.Context, batch [][]byte) error {
		return fmt.Errorf("boom")
	})
	require.Error(t, err)
}
