// Package regexcache bounds the number and size of compiled regular
// expressions held by the engine.
package regexcache

import (
	"regexp"

	"github.com/cockroachdb/errors"

	"github.com/maxicode2/surrealdb/cnf"
)

// ErrPatternTooLarge is returned when a pattern exceeds the configured
// compilation size limit.
var ErrPatternTooLarge = errors.New("regular expression too large")

// Cache is storage of compiled regular expressions.
type Cache interface {
	Add(pattern string, r *regexp.Regexp)
	Get(pattern string) (*regexp.Regexp, bool)
	Compile(pattern string) (*regexp.Regexp, error)
}

// New returns a cache whose capacity and pattern size limit are fixed from
// the resolved resource limits.
func New() Cache {
	return newLRU(cnf.RegexCacheSize(), cnf.RegexSizeLimit())
}
