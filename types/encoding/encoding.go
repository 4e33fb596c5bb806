// Package encoding implements the revisioned binary codec for engine values.
//
// Every encoded value starts with a type tag byte and a uvarint revision
// number, followed by the fields of that revision in a fixed order. A reader
// built against revision N decodes any revision <= N by applying, in order,
// the migration steps that upgrade an older layout to the current in-memory
// shape. Revisions above N are rejected with ErrUnsupportedRevision, never
// interpreted best-effort: the encoded form is the on-disk and on-wire
// contract that must stay readable across engine versions.
package encoding

import (
	"encoding/binary"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/maxicode2/surrealdb/types"
)

// Type tags identifying each encodable type on disk and on the wire.
const (
	DatetimeValue byte = 0x10
	DurationValue byte = 0x11
)

// Current revision of each encodable type.
const (
	DatetimeRevision = 2
	DurationRevision = 1
)

var (
	// ErrUnsupportedRevision is returned when the encoded revision exceeds
	// what this reader knows how to decode.
	ErrUnsupportedRevision = errors.New("unsupported revision")

	// ErrMalformedEncoding is returned when the input is truncated or its
	// fields fall outside their valid ranges.
	ErrMalformedEncoding = errors.New("malformed encoding")
)

// EncodeValue appends the tagged, revisioned encoding of v to dst.
func EncodeValue(dst []byte, v types.Value) ([]byte, error) {
	switch v := v.(type) {
	case types.Datetime:
		return EncodeDatetime(dst, v), nil
	case types.Duration:
		return EncodeDuration(dst, v), nil
	}

	return nil, errors.Errorf("unsupported value type: %s", v.Type())
}

// DecodeValue decodes a single tagged value from b, returning the value and
// the number of bytes consumed.
func DecodeValue(b []byte) (types.Value, int, error) {
	if len(b) == 0 {
		return nil, 0, errors.WithStack(ErrMalformedEncoding)
	}

	switch b[0] {
	case DatetimeValue:
		d, n, err := DecodeDatetime(b[1:])
		return d, n + 1, err
	case DurationValue:
		d, n, err := DecodeDuration(b[1:])
		return d, n + 1, err
	}

	return nil, 0, errors.Errorf("unknown type tag %#x", b[0])
}

// EncodeDatetime appends the current-revision encoding of d: the type tag,
// the revision, then zigzag-varint unix seconds and uvarint nanoseconds.
func EncodeDatetime(dst []byte, d types.Datetime) []byte {
	t := time.Time(d)
	dst = append(dst, DatetimeValue)
	dst = binary.AppendUvarint(dst, DatetimeRevision)
	dst = binary.AppendVarint(dst, t.Unix())
	dst = binary.AppendUvarint(dst, uint64(t.Nanosecond()))
	return dst
}

// datetimeWire is a decoded datetime field layout prior to migration into
// the current shape.
type datetimeWire struct {
	secs  int64
	nanos uint64
}

// datetimeMigrations[i] upgrades the field layout of revision i+1 to
// revision i+2.
var datetimeMigrations = []func(*datetimeWire){
	// Revision 1 stored a single microsecond count in secs, limiting
	// precision; widen it into whole seconds and nanoseconds.
	func(w *datetimeWire) {
		micros := w.secs
		secs := micros / 1_000_000
		rem := micros % 1_000_000
		if rem < 0 {
			secs--
			rem += 1_000_000
		}
		w.secs = secs
		w.nanos = uint64(rem) * 1_000
	},
}

// DecodeDatetime decodes a datetime payload written by any revision up to
// DatetimeRevision. The tag byte must already have been consumed.
func DecodeDatetime(b []byte) (types.Datetime, int, error) {
	rev, n := binary.Uvarint(b)
	if n <= 0 {
		return types.Datetime{}, 0, errors.WithStack(ErrMalformedEncoding)
	}
	if rev == 0 || rev > DatetimeRevision {
		return types.Datetime{}, 0, errors.Wrapf(ErrUnsupportedRevision, "datetime revision %d", rev)
	}

	var w datetimeWire
	switch rev {
	case 1:
		micros, m := binary.Varint(b[n:])
		if m <= 0 {
			return types.Datetime{}, 0, errors.WithStack(ErrMalformedEncoding)
		}
		n += m
		w.secs = micros
	case 2:
		secs, m := binary.Varint(b[n:])
		if m <= 0 {
			return types.Datetime{}, 0, errors.WithStack(ErrMalformedEncoding)
		}
		n += m

		nanos, m := binary.Uvarint(b[n:])
		if m <= 0 || nanos > 999_999_999 {
			return types.Datetime{}, 0, errors.WithStack(ErrMalformedEncoding)
		}
		n += m
		w.secs = secs
		w.nanos = nanos
	}

	for i := rev; i < DatetimeRevision; i++ {
		datetimeMigrations[i-1](&w)
	}

	return types.NewDatetime(time.Unix(w.secs, int64(w.nanos))), n, nil
}

// EncodeDuration appends the current-revision encoding of d: the type tag,
// the revision, then uvarint whole seconds and uvarint nanoseconds.
func EncodeDuration(dst []byte, d types.Duration) []byte {
	dst = append(dst, DurationValue)
	dst = binary.AppendUvarint(dst, DurationRevision)
	dst = binary.AppendUvarint(dst, d.Secs())
	dst = binary.AppendUvarint(dst, uint64(d.SubsecNanos()))
	return dst
}

// DecodeDuration decodes a duration payload written by any revision up to
// DurationRevision. The tag byte must already have been consumed.
func DecodeDuration(b []byte) (types.Duration, int, error) {
	rev, n := binary.Uvarint(b)
	if n <= 0 {
		return types.Duration{}, 0, errors.WithStack(ErrMalformedEncoding)
	}
	if rev == 0 || rev > DurationRevision {
		return types.Duration{}, 0, errors.Wrapf(ErrUnsupportedRevision, "duration revision %d", rev)
	}

	secs, m := binary.Uvarint(b[n:])
	if m <= 0 {
		return types.Duration{}, 0, errors.WithStack(ErrMalformedEncoding)
	}
	n += m

	nanos, m := binary.Uvarint(b[n:])
	if m <= 0 || nanos > 999_999_999 {
		return types.Duration{}, 0, errors.WithStack(ErrMalformedEncoding)
	}
	n += m

	return types.DurationFromParts(secs, uint32(nanos)), n, nil
}
