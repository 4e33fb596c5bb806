package kv

import (
	"context"

	"github.com/cockroachdb/pebble"
	"golang.org/x/sync/errgroup"
)

// Item is a decoded key-value pair returned by a scan page.
type Item struct {
	Key   []byte
	Value []byte
}

// FetchPage scans up to the engine's normal fetch size of keys in
// [start, end), returning the page and the key to resume from. A nil next
// key means the range is exhausted.
func (e *Engine) FetchPage(start, end []byte) ([]Item, []byte, error) {
	return e.page(start, end, e.fetchSize)
}

func (e *Engine) page(start, end []byte, limit uint32) ([]Item, []byte, error) {
	it := e.DB.NewIter(&pebble.IterOptions{
		LowerBound: start,
		UpperBound: end,
	})
	defer it.Close()

	var items []Item
	var next []byte

	for valid := it.First(); valid; valid = it.Next() {
		if uint32(len(items)) == limit {
			next = append([]byte(nil), it.Key()...)
			break
		}

		items = append(items, Item{
			Key:   append([]byte(nil), it.Key()...),
			Value: append([]byte(nil), it.Value()...),
		})
	}

	if err := it.Error(); err != nil {
		return nil, nil, err
	}

	return items, next, nil
}

// Stream walks [start, end) in pages of the engine's streaming batch size,
// calling fn for every pair in order.
func (e *Engine) Stream(start, end []byte, fn func(k, v []byte) error) error {
	return e.walk(start, end, e.streamBatch, fn)
}

// Export walks [start, end) in pages of the engine's export batch size,
// calling fn for every pair in order.
func (e *Engine) Export(start, end []byte, fn func(k, v []byte) error) error {
	return e.walk(start, end, e.exportBatch, fn)
}

func (e *Engine) walk(start, end []byte, batch uint32, fn func(k, v []byte) error) error {
	for {
		items, next, err := e.page(start, end, batch)
		if err != nil {
			return err
		}

		for _, it := range items {
			if err := fn(it.Key, it.Value); err != nil {
				return err
			}
		}

		if next == nil {
			return nil
		}
		start = next
	}
}

// IndexInBatches splits keys into batches of the engine's indexing batch
// size and runs fn over them concurrently, bounded by the maximum number of
// concurrent tasks. The first error cancels the remaining batches.
func (e *Engine) IndexInBatches(ctx context.Context, keys [][]byte, fn func(ctx context.Context, batch [][]byte) error) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.maxWorkers)

	size := int(e.indexBatch)
	for i := 0; i < len(keys); i += size {
		batch := keys[i:min(i+size, len(keys))]
		g.Go(func() error {
			return fn(ctx, batch)
		})
	}

	return g.Wait()
}
