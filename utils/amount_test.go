package utils

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaleToSmallestUnit(t *testing.T) {
	t.Run("WholeAmount18Decimals", func(t *testing.T) {
		out, err := ScaleToSmallestUnit("100", "18")
		require.NoError(t, err)
		assert.Equal(t, "100000000000000000000", out.String())
	})

	t.Run("FractionalAmount", func(t *testing.T) {
		out, err := ScaleToSmallestUnit("1.5", "18")
		require.NoError(t, err)
		assert.Equal(t, "1500000000000000000", out.String())
	})

	t.Run("SixDecimals", func(t *testing.T) {
		out, err := ScaleToSmallestUnit("0.000001", "6")
		require.NoError(t, err)
		assert.Equal(t, "1", out.String())
	})

	t.Run("HugeAmountNoPrecisionLoss", func(t *testing.T) {
		// 10^30 scaled by 18 decimals = 10^48, far beyond float64 range
		out, err := ScaleToSmallestUnit("1000000000000000000000000000000", "18")
		require.NoError(t, err)

		expected := new(big.Int).Exp(big.NewInt(10), big.NewInt(48), nil)
		assert.Equal(t, expected.String(), out.String())
	})

	t.Run("TrailingZeroFractionAccepted", func(t *testing.T) {
		out, err := ScaleToSmallestUnit("2.500000000", "6")
		require.NoError(t, err)
		assert.Equal(t, "2500000", out.String())
	})

	t.Run("TooMuchPrecisionRejected", func(t *testing.T) {
		_, err := ScaleToSmallestUnit("0.0000001", "6")
		assert.Error(t, err)
	})

	t.Run("NegativeRejected", func(t *testing.T) {
		_, err := ScaleToSmallestUnit("-5", "18")
		assert.Error(t, err)
	})

	t.Run("NonNumericRejected", func(t *testing.T) {
		_, err := ScaleToSmallestUnit("abc", "18")
		assert.Error(t, err)
		_, err = ScaleToSmallestUnit("1.2.3", "18")
		assert.Error(t, err)
	})

	t.Run("EmptyRejected", func(t *testing.T) {
		_, err := ScaleToSmallestUnit("", "18")
		assert.Error(t, err)
	})

	t.Run("BadDecimalsRejected", func(t *testing.T) {
		_, err := ScaleToSmallestUnit("1", "x")
		assert.Error(t, err)
	})

	t.Run("ExactSumOfRepeatedGrants", func(t *testing.T) {
		total := big.NewInt(0)
		for i := 0; i < 100; i++ {
			out, err := ScaleToSmallestUnit("0.1", "18")
			require.NoError(t, err)
			total.Add(total, out)
		}
		// 100 × 0.1 = exactly 10 tokens, no float drift
		assert.Equal(t, "10000000000000000000", total.String())
	})
}

func TestParseSmallestUnit(t *testing.T) {
	out, err := ParseSmallestUnit("12345")
	require.NoError(t, err)
	assert.Equal(t, int64(12345), out.Int64())

	out, err = ParseSmallestUnit("")
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.Int64())

	_, err = ParseSmallestUnit("-1")
	assert.Error(t, err)

	_, err = ParseSmallestUnit("1.5")
	assert.Error(t, err)
}
