package counter

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueConversions(t *testing.T) {
	t.Run("unsigned", func(t *testing.T) {
		v := UnsignedValue(42)
		assert.Equal(t, uint64(42), v.Uint64())
		assert.Equal(t, int64(42), v.Int64())
		assert.Equal(t, 42.0, v.Float64())
		assert.False(t, v.IsZero())
		assert.Equal(t, "42", v.String())
	})

	t.Run("unsigned clamps to int64", func(t *testing.T) {
		v := UnsignedValue(math.MaxUint64)
		assert.Equal(t, int64(math.MaxInt64), v.Int64())
	})

	t.Run("signed", func(t *testing.T) {
		v := SignedValue(-7)
		assert.Equal(t, int64(-7), v.Int64())
		assert.Equal(t, -7.0, v.Float64())
		assert.Equal(t, "-7", v.String())
	})

	t.Run("negative signed floors to zero unsigned", func(t *testing.T) {
		assert.Equal(t, uint64(0), SignedValue(-1).Uint64())
	})

	t.Run("float truncates toward zero", func(t *testing.T) {
		assert.Equal(t, uint64(3), FloatValue(3.9).Uint64())
		assert.Equal(t, int64(3), FloatValue(3.9).Int64())
		assert.Equal(t, uint64(0), FloatValue(-3.9).Uint64())
	})

	t.Run("zero values", func(t *testing.T) {
		assert.True(t, UnsignedValue(0).IsZero())
		assert.True(t, SignedValue(0).IsZero())
		assert.True(t, FloatValue(0).IsZero())
		assert.False(t, FloatValue(0.1).IsZero())
	})
}

func TestValueJSON(t *testing.T) {
	t.Run("marshals as a bare number", func(t *testing.T) {
		b, err := json.Marshal(UnsignedValue(42))
		require.NoError(t, err)
		assert.Equal(t, "42", string(b))

		b, err = json.Marshal(SignedValue(-3))
		require.NoError(t, err)
		assert.Equal(t, "-3", string(b))

		b, err = json.Marshal(FloatValue(1.5))
		require.NoError(t, err)
		assert.Equal(t, "1.5", string(b))
	})

	t.Run("unmarshals by shape", func(t *testing.T) {
		var v Value
		require.NoError(t, json.Unmarshal([]byte("42"), &v))
		assert.Equal(t, UnsignedValue(42), v)

		require.NoError(t, json.Unmarshal([]byte("-3"), &v))
		assert.Equal(t, SignedValue(-3), v)

		require.NoError(t, json.Unmarshal([]byte("1.5"), &v))
		assert.Equal(t, FloatValue(1.5), v)
	})

	t.Run("rejects non-numbers", func(t *testing.T) {
		var v Value
		assert.Error(t, json.Unmarshal([]byte(`"nope"`), &v))
	})

	t.Run("round trips inside a struct", func(t *testing.T) {
		type sample struct {
			Name  string `json:"name"`
			Value Value  `json:"value"`
		}
		b, err := json.Marshal(sample{Name: "requests", Value: UnsignedValue(42)})
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"requests","value":42}`, string(b))

		var got sample
		require.NoError(t, json.Unmarshal(b, &got))
		assert.Equal(t, uint64(42), got.Value.Uint64())
	})
}
