package types

import "fmt"

// Subber is implemented by value types supporting best-effort subtraction:
// when the mathematical result cannot be represented, the zero value of the
// result type is returned instead of an error.
type Subber[T, R any] interface {
	Sub(other T) R
}

// TrySubber is the strict counterpart of Subber. TrySub must agree with Sub
// on every representable result and return an *ArithmeticError otherwise.
type TrySubber[T, R any] interface {
	TrySub(other T) (R, error)
}

// ArithmeticError is returned when a checked arithmetic operation cannot
// represent its result. Expr carries both operands rendered as query
// literals so callers can report the failing expression verbatim.
type ArithmeticError struct {
	Expr string
}

func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("failed to compute: %q, as the result is a negative value", e.Expr)
}

func negativeOverflow(a, b Value) *ArithmeticError {
	return &ArithmeticError{Expr: fmt.Sprintf("%s - %s", a, b)}
}
