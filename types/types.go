package types

import "fmt"

// Type represents a value type supported by the engine.
type Type uint8

// List of supported types.
const (
	// TypeAny denotes the absence of type
	TypeAny Type = iota
	TypeDatetime
	TypeDuration
)

func (t Type) String() string {
	switch t {
	case TypeDatetime:
		return "datetime"
	case TypeDuration:
		return "duration"
	}

	panic(fmt.Sprintf("unsupported type %#v", t))
}

// Value is a single immutable engine value.
type Value interface {
	Type() Type

	// String renders the value as a query literal.
	String() string

	MarshalText() ([]byte, error)
	MarshalJSON() ([]byte, error)
}
