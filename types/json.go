package types

import (
	"github.com/buger/jsonparser"
	"github.com/cockroachdb/errors"
)

// ErrInvalidTaggedValue is returned when structured debug input carries no
// recognized type token.
var ErrInvalidTaggedValue = errors.New("invalid tagged value")

// AppendTagged appends the structured debug form of v: a single-key JSON
// object whose key is the stable type token and whose value is the raw
// canonical text. The token keeps rich values distinguishable from ordinary
// strings of the same shape.
func AppendTagged(dst []byte, v Value) ([]byte, error) {
	switch v := v.(type) {
	case Datetime:
		dst = append(dst, '{')
		dst = append(dst, QuoteStr(DatetimeToken)...)
		dst = append(dst, ':')
		dst = append(dst, QuoteStr(v.ToRaw())...)
		return append(dst, '}'), nil
	case Duration:
		dst = append(dst, '{')
		dst = append(dst, QuoteStr(DurationToken)...)
		dst = append(dst, ':')
		dst = append(dst, QuoteStr(v.ToRaw())...)
		return append(dst, '}'), nil
	}

	return nil, errors.Errorf("unsupported value type: %s", v.Type())
}

// ParseTagged reads back a value produced by AppendTagged, dispatching on
// the type token.
func ParseTagged(data []byte) (Value, error) {
	if s, err := jsonparser.GetString(data, DatetimeToken); err == nil {
		d, err := ParseDatetime(s)
		if err != nil {
			return nil, err
		}
		return d, nil
	}

	if s, err := jsonparser.GetString(data, DurationToken); err == nil {
		d, err := ParseDuration(s)
		if err != nil {
			return nil, err
		}
		return d, nil
	}

	return nil, errors.WithStack(ErrInvalidTaggedValue)
}
