// Package kv implements a Pebble-backed key-value store whose scan page
// sizes and indexing batch sizes are fixed at engine initialization from
// the resolved resource limits.
package kv

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"

	"github.com/maxicode2/surrealdb/cnf"
)

// Common errors returned by the engine.
var (
	// ErrKeyNotFound is returned when the targeted key doesn't exist.
	ErrKeyNotFound = errors.New("key not found")

	// ErrKeyAlreadyExists is returned when the targeted key already exists.
	ErrKeyAlreadyExists = errors.New("key already exists")
)

// Engine represents a Pebble key-value store. Batch and page sizes are read
// from the limit registry once, when the engine is created, and stay fixed
// for its lifetime.
type Engine struct {
	DB *pebble.DB

	fetchSize   uint32
	exportBatch uint32
	streamBatch uint32
	indexBatch  uint32
	maxWorkers  int
}

// NewEngine opens a Pebble store. It takes the same arguments as Pebble's
// Open function.
func NewEngine(path string, opts *pebble.Options) (*Engine, error) {
	db, err := pebble.Open(path, opts)
	if err != nil {
		return nil, err
	}

	return &Engine{
		DB:          db,
		fetchSize:   cnf.NormalFetchSize(),
		exportBatch: cnf.ExportBatchSize(),
		streamBatch: cnf.MaxStreamBatchSize(),
		indexBatch:  cnf.IndexingBatchSize(),
		maxWorkers:  cnf.MaxConcurrentTasks(),
	}, nil
}

// Close closes the underlying store.
func (e *Engine) Close() error {
	return e.DB.Close()
}

// Get returns the value associated with the given key. If not found,
// returns ErrKeyNotFound.
func (e *Engine) Get(k []byte) ([]byte, error) {
	return get(e.DB, k)
}

// Exists returns whether a key exists in the store.
func (e *Engine) Exists(k []byte) (bool, error) {
	return exists(e.DB, k)
}

func get(r pebble.Reader, k []byte) ([]byte, error) {
	value, closer, err := r.Get(k)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, errors.WithStack(ErrKeyNotFound)
		}

		return nil, err
	}

	cp := make([]byte, len(value))
	copy(cp, value)

	err = closer.Close()
	if err != nil {
		return nil, err
	}

	return cp, nil
}

func exists(r pebble.Reader, k []byte) (bool, error) {
	_, closer, err := r.Get(k)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return false, nil
		}

		return false, err
	}
	err = closer.Close()
	if err != nil {
		return false, err
	}
	return true, nil
}
