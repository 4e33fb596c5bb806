package types

import (
	"encoding/binary"
	"hash/fnv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dromara/carbon/v2"
)

// DatetimeToken tags datetimes in structured debug output, distinguishing
// them from plain strings of the same shape.
const DatetimeToken = "$surrealdb::private::sql::Datetime"

var (
	// ErrInvalidDatetime is returned when a textual literal does not match
	// the datetime grammar.
	ErrInvalidDatetime = errors.New("invalid datetime")

	// ErrDatetimeOutOfRange is returned when an instant falls outside the
	// representable range or a numeric pair does not identify exactly one
	// valid instant.
	ErrDatetimeOutOfRange = errors.New("datetime out of range")
)

// MinDatetime and MaxDatetime bound the representable range of instants.
var (
	MinDatetime = NewDatetime(time.Date(-262144, time.January, 1, 0, 0, 0, 0, time.UTC))
	MaxDatetime = NewDatetime(time.Date(262143, time.December, 31, 23, 59, 59, 999_999_999, time.UTC))
)

var _ Value = Datetime{}
var _ Subber[Datetime, Duration] = Datetime{}
var _ TrySubber[Datetime, Duration] = Datetime{}

// Datetime is a single UTC-normalized instant with nanosecond resolution.
type Datetime time.Time

// NewDatetime returns a datetime value normalized to UTC.
func NewDatetime(x time.Time) Datetime {
	return Datetime(x.UTC())
}

// Now returns the current instant as a datetime value.
func Now() Datetime {
	return NewDatetime(time.Now())
}

// ParseDatetime parses a textual datetime literal. The grammar failure is
// reported as a generic ErrInvalidDatetime; callers needing diagnostics must
// re-parse through a diagnostic-producing path.
func ParseDatetime(s string) (Datetime, error) {
	if s == "" {
		return Datetime{}, errors.WithStack(ErrInvalidDatetime)
	}

	c := carbon.Parse(s, "UTC")
	if c.Error != nil {
		return Datetime{}, errors.WithStack(ErrInvalidDatetime)
	}

	d := NewDatetime(c.StdTime())
	if d.Before(MinDatetime) || d.After(MaxDatetime) {
		return Datetime{}, errors.WithStack(ErrDatetimeOutOfRange)
	}

	return d, nil
}

// DatetimeFromUnix converts a (seconds, nanoseconds) pair into a datetime.
// The pair must identify exactly one valid instant: nanoseconds outside
// [0, 999999999] would alias another pair and are rejected rather than
// normalized, as are pairs outside the representable range.
func DatetimeFromUnix(sec int64, nsec int64) (Datetime, error) {
	if nsec < 0 || nsec > 999_999_999 {
		return Datetime{}, errors.WithStack(ErrDatetimeOutOfRange)
	}

	d := NewDatetime(time.Unix(sec, nsec))
	if d.Before(MinDatetime) || d.After(MaxDatetime) {
		return Datetime{}, errors.WithStack(ErrDatetimeOutOfRange)
	}

	return d, nil
}

func (d Datetime) Type() Type {
	return TypeDatetime
}

// ToRaw renders the instant as canonical RFC 3339 text, using the shortest
// fractional-second form that round-trips exactly and an explicit UTC
// designator.
func (d Datetime) ToRaw() string {
	t := time.Time(d)
	switch ns := t.Nanosecond(); {
	case ns == 0:
		return t.Format("2006-01-02T15:04:05Z07:00")
	case ns%1_000_000 == 0:
		return t.Format("2006-01-02T15:04:05.000Z07:00")
	case ns%1_000 == 0:
		return t.Format("2006-01-02T15:04:05.000000Z07:00")
	default:
		return t.Format("2006-01-02T15:04:05.000000000Z07:00")
	}
}

// String renders the datetime as a query literal: the canonical text behind
// a `d` sigil, quoted.
func (d Datetime) String() string {
	return "d" + QuoteStr(d.ToRaw())
}

func (d Datetime) MarshalText() ([]byte, error) {
	return []byte(d.ToRaw()), nil
}

func (d Datetime) MarshalJSON() ([]byte, error) {
	return []byte(QuoteStr(d.ToRaw())), nil
}

// ToUnixNanos converts the instant to an unsigned nanosecond timestamp.
// Instants that cannot be expressed as 64-bit nanoseconds since the epoch
// yield zero rather than an error.
func (d Datetime) ToUnixNanos() uint64 {
	t := time.Time(d)
	if t.Before(minNanoTime) || t.After(maxNanoTime) {
		return 0
	}
	return uint64(t.UnixNano())
}

var (
	minNanoTime = time.Unix(0, -1<<63).UTC()
	maxNanoTime = time.Unix(0, 1<<63-1).UTC()
)

// Equal reports whether both datetimes designate the same instant.
func (d Datetime) Equal(other Datetime) bool {
	return time.Time(d).Equal(time.Time(other))
}

// Before reports whether d precedes other.
func (d Datetime) Before(other Datetime) bool {
	return time.Time(d).Before(time.Time(other))
}

// After reports whether d follows other.
func (d Datetime) After(other Datetime) bool {
	return time.Time(d).After(time.Time(other))
}

// Compare returns -1, 0 or 1 depending on whether d is before, equal to or
// after other. Together with Equal it defines a total order over instants.
func (d Datetime) Compare(other Datetime) int {
	return time.Time(d).Compare(time.Time(other))
}

// Hash returns a digest of the normalized instant. Equal datetimes hash
// identically regardless of how they were constructed.
func (d Datetime) Hash() uint64 {
	t := time.Time(d)

	var buf [12]byte
	binary.BigEndian.PutUint64(buf[:8], uint64(t.Unix()))
	binary.BigEndian.PutUint32(buf[8:], uint32(t.Nanosecond()))

	h := fnv.New64a()
	h.Write(buf[:])
	return h.Sum64()
}

// Sub returns the elapsed time from other to d. A negative difference
// cannot be expressed as a duration and yields the zero duration.
func (d Datetime) Sub(other Datetime) Duration {
	diff, ok := d.elapsedSince(other)
	if !ok {
		return Duration{}
	}
	return diff
}

// TrySub returns the elapsed time from other to d, or an *ArithmeticError
// carrying both rendered operands when the difference is negative. It agrees
// with Sub on every non-negative result.
func (d Datetime) TrySub(other Datetime) (Duration, error) {
	diff, ok := d.elapsedSince(other)
	if !ok {
		return Duration{}, errors.WithStack(negativeOverflow(d, other))
	}
	return diff, nil
}

// elapsedSince computes the difference without going through time.Time.Sub,
// whose int64-nanosecond result would saturate on widely separated instants.
func (d Datetime) elapsedSince(other Datetime) (Duration, bool) {
	a := time.Time(d)
	b := time.Time(other)
	if a.Before(b) {
		return Duration{}, false
	}

	secs := a.Unix() - b.Unix()
	nanos := int64(a.Nanosecond()) - int64(b.Nanosecond())
	if nanos < 0 {
		secs--
		nanos += 1_000_000_000
	}

	return Duration{secs: uint64(secs), nanos: uint32(nanos)}, true
}
