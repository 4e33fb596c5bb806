package types

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// DurationToken tags durations in structured debug output.
const DurationToken = "$surrealdb::private::sql::Duration"

// ErrInvalidDuration is returned when a textual literal does not match the
// duration grammar.
var ErrInvalidDuration = errors.New("invalid duration")

const (
	nanosPerSecond = 1_000_000_000
	secondsPerMin  = 60
	secondsPerHour = 60 * secondsPerMin
	secondsPerDay  = 24 * secondsPerHour
	secondsPerWeek = 7 * secondsPerDay
	secondsPerYear = 365 * secondsPerDay
)

var _ Value = Duration{}

// Duration is a non-negative elapsed-time magnitude. Unlike time.Duration it
// spans the full range produced by subtracting two datetimes.
type Duration struct {
	secs  uint64
	nanos uint32
}

// NewDuration converts a standard library duration, clamping negative
// values to zero.
func NewDuration(d time.Duration) Duration {
	if d < 0 {
		return Duration{}
	}
	return Duration{
		secs:  uint64(d / time.Second),
		nanos: uint32(d % time.Second),
	}
}

// DurationFromParts builds a duration from whole seconds and a sub-second
// nanosecond component, carrying overflowing nanoseconds into seconds.
func DurationFromParts(secs uint64, nanos uint32) Duration {
	return Duration{
		secs:  secs + uint64(nanos/nanosPerSecond),
		nanos: nanos % nanosPerSecond,
	}
}

// Secs returns the whole-second component.
func (d Duration) Secs() uint64 {
	return d.secs
}

// SubsecNanos returns the sub-second nanosecond component.
func (d Duration) SubsecNanos() uint32 {
	return d.nanos
}

// IsZero reports whether the duration is exactly zero.
func (d Duration) IsZero() bool {
	return d.secs == 0 && d.nanos == 0
}

// Std converts the duration to a time.Duration, reporting false when the
// magnitude exceeds what int64 nanoseconds can hold.
func (d Duration) Std() (time.Duration, bool) {
	if d.secs > uint64(math.MaxInt64/nanosPerSecond) {
		return 0, false
	}

	n := int64(d.secs) * nanosPerSecond
	if n > math.MaxInt64-int64(d.nanos) {
		return 0, false
	}

	return time.Duration(n + int64(d.nanos)), true
}

// Compare returns -1, 0 or 1 depending on whether d is shorter than, equal
// to or longer than other.
func (d Duration) Compare(other Duration) int {
	switch {
	case d.secs != other.secs:
		if d.secs < other.secs {
			return -1
		}
		return 1
	case d.nanos != other.nanos:
		if d.nanos < other.nanos {
			return -1
		}
		return 1
	}
	return 0
}

func (d Duration) Type() Type {
	return TypeDuration
}

// ToRaw renders the duration as a query literal, largest unit first,
// omitting zero components. The zero duration renders as "0ns".
func (d Duration) ToRaw() string {
	if d.IsZero() {
		return "0ns"
	}

	var b strings.Builder
	secs := d.secs
	writeUnit := func(span uint64, unit string) {
		if n := secs / span; n > 0 {
			b.WriteString(strconv.FormatUint(n, 10))
			b.WriteString(unit)
			secs %= span
		}
	}

	writeUnit(secondsPerYear, "y")
	writeUnit(secondsPerWeek, "w")
	writeUnit(secondsPerDay, "d")
	writeUnit(secondsPerHour, "h")
	writeUnit(secondsPerMin, "m")
	writeUnit(1, "s")

	switch nanos := uint64(d.nanos); {
	case nanos == 0:
	case nanos%1_000_000 == 0:
		b.WriteString(strconv.FormatUint(nanos/1_000_000, 10))
		b.WriteString("ms")
	case nanos%1_000 == 0:
		b.WriteString(strconv.FormatUint(nanos/1_000, 10))
		b.WriteString("µs")
	default:
		b.WriteString(strconv.FormatUint(nanos, 10))
		b.WriteString("ns")
	}

	return b.String()
}

func (d Duration) String() string {
	return d.ToRaw()
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.ToRaw()), nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(QuoteStr(d.ToRaw())), nil
}

// ParseDuration parses a duration literal: one or more <count><unit> pairs,
// units spanning y, w, d, h, m, s, ms, µs/us and ns. Anything else is
// rejected with ErrInvalidDuration.
func ParseDuration(s string) (Duration, error) {
	if s == "" {
		return Duration{}, errors.WithStack(ErrInvalidDuration)
	}

	var out Duration
	for len(s) > 0 {
		i := 0
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == 0 {
			return Duration{}, errors.WithStack(ErrInvalidDuration)
		}

		n, err := strconv.ParseUint(s[:i], 10, 64)
		if err != nil {
			return Duration{}, errors.WithStack(ErrInvalidDuration)
		}
		s = s[i:]

		var unit string
		for _, u := range []string{"ns", "µs", "us", "ms", "s", "m", "h", "d", "w", "y"} {
			if strings.HasPrefix(s, u) {
				unit = u
				break
			}
		}
		if unit == "" {
			return Duration{}, errors.WithStack(ErrInvalidDuration)
		}
		s = s[len(unit):]

		switch unit {
		case "ns":
			out = addNanos(out, n)
		case "µs", "us":
			if n > math.MaxUint64/1_000 {
				return Duration{}, errors.WithStack(ErrInvalidDuration)
			}
			out = addNanos(out, n*1_000)
		case "ms":
			if n > math.MaxUint64/1_000_000 {
				return Duration{}, errors.WithStack(ErrInvalidDuration)
			}
			out = addNanos(out, n*1_000_000)
		default:
			var span uint64
			switch unit {
			case "s":
				span = 1
			case "m":
				span = secondsPerMin
			case "h":
				span = secondsPerHour
			case "d":
				span = secondsPerDay
			case "w":
				span = secondsPerWeek
			case "y":
				span = secondsPerYear
			}
			if n > math.MaxUint64/span || out.secs > math.MaxUint64-n*span {
				return Duration{}, errors.WithStack(ErrInvalidDuration)
			}
			out.secs += n * span
		}
	}

	return out, nil
}

func addNanos(d Duration, nanos uint64) Duration {
	total := uint64(d.nanos) + nanos
	d.secs += total / nanosPerSecond
	d.nanos = uint32(total % nanosPerSecond)
	return d
}
