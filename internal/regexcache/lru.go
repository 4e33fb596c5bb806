package regexcache

import (
	"regexp"
	"sync"

	"github.com/cockroachdb/errors"
)

var _ Cache = (*lru)(nil)

// lru evicts the least recently used pattern once the capacity is reached.
type lru struct {
	mu        sync.Mutex
	capacity  int
	sizeLimit int
	entries   map[string]*element
	list      *regexList
}

func newLRU(capacity, sizeLimit int) *lru {
	return &lru{
		capacity:  capacity,
		sizeLimit: sizeLimit,
		entries:   make(map[string]*element),
		list:      newRegexList(),
	}
}

func (c *lru) Add(pattern string, r *regexp.Regexp) {
	if c.capacity <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[pattern]; ok {
		e.value = r
		c.list.moveToFront(e)
		return
	}

	if c.list.len >= c.capacity {
		last := c.list.back()
		c.list.remove(last)
		delete(c.entries, last.key)
	}

	c.entries[pattern] = c.list.pushFront(entry{key: pattern, value: r})
}

func (c *lru) Get(pattern string) (*regexp.Regexp, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[pattern]
	if !ok {
		return nil, false
	}

	c.list.moveToFront(e)
	return e.value, true
}

// Compile returns the cached regex for pattern, compiling and caching it on
// a miss. Patterns longer than the size limit are refused before
// compilation.
func (c *lru) Compile(pattern string) (*regexp.Regexp, error) {
	if r, ok := c.Get(pattern); ok {
		return r, nil
	}

	if len(pattern) > c.sizeLimit {
		return nil, errors.WithStack(ErrPatternTooLarge)
	}

	r, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}

	c.Add(pattern, r)
	return r, nil
}
