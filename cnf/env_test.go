package cnf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupInt(t *testing.T) {
	tests := []struct {
		name string
		env  string
		set  bool
		want int
	}{
		{"unset", "", false, 120},
		{"valid override", "200", true, 200},
		{"malformed override", "abc", true, 120},
		{"empty override", "", true, 120},
		{"fractional override", "1.5", true, 120},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if test.set {
				t.Setenv("SURREAL_TEST_LIMIT", test.env)
			}
			require.Equal(t, test.want, lookupInt("SURREAL_TEST_LIMIT", 120))
		})
	}
}

func TestLookupIntOutOfRange(t *testing.T) {
	// A value that does not fit the declared type is malformed, not wrapped.
	t.Setenv("SURREAL_TEST_LIMIT", "-5")
	require.Equal(t, uint32(120), lookupInt("SURREAL_TEST_LIMIT", uint32(120)))

	t.Setenv("SURREAL_TEST_LIMIT", "5000000000")
	require.Equal(t, uint32(120), lookupInt("SURREAL_TEST_LIMIT", uint32(120)))
}

func TestLookupBool(t *testing.T) {
	tests := []struct {
		name string
		env  string
		set  bool
		want bool
	}{
		{"unset", "", false, false},
		{"true", "true", true, true},
		{"malformed", "yes", true, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if test.set {
				t.Setenv("SURREAL_TEST_FLAG", test.env)
			}
			require.Equal(t, test.want, lookupBool("SURREAL_TEST_FLAG", false))
		})
	}
}

func TestLazyIntResolvesOnce(t *testing.T) {
	t.Setenv("SURREAL_TEST_ONCE", "42")
	limit := lazyInt("SURREAL_TEST_ONCE", 7)

	require.Equal(t, 42, limit())

	// The resolved value must survive later environment changes.
	t.Setenv("SURREAL_TEST_ONCE", "99")
	require.Equal(t, 42, limit())
}

func TestGenerationAllocationExponent(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  uint
	}{
		{"unset", "", 20},
		{"valid", "10", 10},
		{"malformed", "abc", 20},
		{"negative", "-3", 20},
		{"saturating", "80", 62},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.want, generationAllocationExponent(test.input))
		})
	}
}
