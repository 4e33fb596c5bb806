package kv

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
)

// Session is a set of writes applied atomically on commit, with reads
// observing the session's own pending writes.
type Session struct {
	ng     *Engine
	batch  *pebble.Batch
	closed bool
}

// NewSession begins a writable session backed by an indexed Pebble batch.
func (e *Engine) NewSession() *Session {
	return &Session{
		ng:    e,
		batch: e.DB.NewIndexedBatch(),
	}
}

// Commit applies all pending writes and closes the session.
func (s *Session) Commit() error {
	if s.closed {
		return errors.New("already closed")
	}

	err := s.batch.Commit(nil)
	if err != nil {
		return err
	}

	return s.Close()
}

// Close discards any uncommitted writes.
func (s *Session) Close() error {
	if s.closed {
		return errors.New("already closed")
	}
	s.closed = true

	return s.batch.Close()
}

// Put stores a key-value pair. If it already exists, it overrides it.
func (s *Session) Put(k, v []byte) error {
	if len(k) == 0 {
		return errors.New("cannot store empty key")
	}

	return s.batch.Set(k, v, nil)
}

// Insert inserts a key-value pair. If it already exists, it returns
// ErrKeyAlreadyExists.
func (s *Session) Insert(k, v []byte) error {
	ok, err := exists(s.batch, k)
	if err != nil {
		return err
	}
	if ok {
		return errors.WithStack(ErrKeyAlreadyExists)
	}

	return s.Put(k, v)
}

// Get returns a value associated with the given key, observing the
// session's pending writes. If not found, returns ErrKeyNotFound.
func (s *Session) Get(k []byte) ([]byte, error) {
	return get(s.batch, k)
}

// Delete removes a key. If not found, returns ErrKeyNotFound.
func (s *Session) Delete(k []byte) error {
	ok, err := exists(s.batch, k)
	if err != nil {
		return err
	}
	if !ok {
		return errors.WithStack(ErrKeyNotFound)
	}

	return s.batch.Delete(k, nil)
}
