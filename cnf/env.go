package cnf

import (
	"os"
	"strconv"
	"sync"

	"golang.org/x/exp/constraints"
)

// lookupInt resolves an integer limit from the environment. A missing or
// malformed variable yields the default: a bad tuning knob must never
// prevent the engine from starting.
func lookupInt[T constraints.Integer](key string, def T) T {
	s, ok := os.LookupEnv(key)
	if !ok {
		return def
	}

	x, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return def
	}

	// A value that does not fit the limit's type counts as malformed.
	if int64(T(x)) != x {
		return def
	}

	return T(x)
}

// lookupBool resolves a boolean limit from the environment, falling back
// to the default on a missing or malformed variable.
func lookupBool(key string, def bool) bool {
	s, ok := os.LookupEnv(key)
	if !ok {
		return def
	}

	x, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}

	return x
}

// lazyInt returns a race-safe accessor which resolves the limit on first
// call and returns the same value for the remainder of the process.
func lazyInt[T constraints.Integer](key string, def T) func() T {
	return sync.OnceValue(func() T {
		return lookupInt(key, def)
	})
}

func lazyBool(key string, def bool) func() bool {
	return sync.OnceValue(func() bool {
		return lookupBool(key, def)
	})
}
