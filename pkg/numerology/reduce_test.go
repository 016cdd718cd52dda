package numerology

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduce(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 0},
		{7, 7},
		{11, 11},
		{22, 22},
		{12, 3},
		{29, 11},
		{39, 3},
		{994, 22},
		{2884, 22},
		{111_111, 6},
		{33, 6},
		{1990, 1},
	}
	for _, tt := range tests {
		got, err := Reduce(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "Reduce(%d)", tt.in)
	}
}

func TestReduce_Negative(t *testing.T) {
	_, err := Reduce(-5)
	assert.ErrorIs(t, err, ErrInvalidNumber)

	_, err = ReduceIgnoringMasters(-1)
	assert.ErrorIs(t, err, ErrInvalidNumber)
}

func TestReduce_IdempotentAndInRange(t *testing.T) {
	for n := 0; n <= 20_000; n++ {
		once, err := Reduce(n)
		require.NoError(t, err)
		twice, err := Reduce(once)
		require.NoError(t, err)
		require.Equal(t, once, twice, "Reduce not idempotent for %d", n)
		require.True(t, IsDigitValue(once), "Reduce(%d) = %d out of range", n, once)
		if n > 0 {
			require.NotZero(t, once, "Reduce(%d)", n)
		}
	}
}

func TestReduce_LargeInput(t *testing.T) {
	got, err := Reduce(math.MaxInt64)
	require.NoError(t, err)
	assert.True(t, IsDigitValue(got))
}

func TestReduceIgnoringMasters(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{4, 4},
		{11, 2},
		{22, 4},
		{40, 4},
		{994, 4},
		{29, 2},
	}
	for _, tt := range tests {
		got, err := ReduceIgnoringMasters(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "ReduceIgnoringMasters(%d)", tt.in)
	}
}

func TestReduceFloat(t *testing.T) {
	got, err := ReduceFloat(994)
	require.NoError(t, err)
	assert.Equal(t, 22, got)

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 1.5, -3, 1e300} {
		_, err := ReduceFloat(bad)
		assert.ErrorIs(t, err, ErrInvalidNumber, "ReduceFloat(%v)", bad)
	}
}

func TestMaturity(t *testing.T) {
	got, err := Maturity(3, 8)
	require.NoError(t, err)
	assert.Equal(t, 11, got)

	got, err = Maturity(9, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestIsMasterNumber(t *testing.T) {
	assert.True(t, IsMasterNumber(11))
	assert.True(t, IsMasterNumber(22))
	assert.False(t, IsMasterNumber(33))
	assert.False(t, IsMasterNumber(2))
}
