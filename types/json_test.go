package types_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/maxicode2/surrealdb/types"
)

func TestTaggedRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		value types.Value
		want  string
	}{
		{
			"datetime",
			types.NewDatetime(time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)),
			`{"$surrealdb::private::sql::Datetime":"2024-01-15T10:00:00Z"}`,
		},
		{
			"duration",
			types.NewDuration(90 * time.Minute),
			`{"$surrealdb::private::sql::Duration":"1h30m"}`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			data, err := types.AppendTagged(nil, test.value)
			require.NoError(t, err)
			require.Equal(t, test.want, string(data))

			got, err := types.ParseTagged(data)
			require.NoError(t, err)
			require.Equal(t, test.value, got)
		})
	}
}

func TestParseTaggedUnknownToken(t *testing.T) {
	_, err := types.ParseTagged([]byte(`{"$surrealdb::private::sql::Other":"x"}`))
	require.ErrorIs(t, err, types.ErrInvalidTaggedValue)

	_, err = types.ParseTagged([]byte(`"2024-01-15T10:00:00Z"`))
	require.ErrorIs(t, err, types.ErrInvalidTaggedValue)
}

func TestMarshalJSON(t *testing.T) {
	d := types.NewDatetime(time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC))
	data, err := d.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `"2024-01-15T10:00:00Z"`, string(data))

	data, err = types.NewDuration(time.Second).MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `"1s"`, string(data))
}
