package cton

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatDecimalNormalization(t *testing.T) {
	cases := []struct {
		in   float64
		mode DecimalMode
		want string
	}{
		{1.0, DecimalFast, "1"},
		{0.5, DecimalFast, "0.5"},
		{1200000, DecimalFast, "1200000"},
		{math.Copysign(0, -1), DecimalFast, "0"},
		{0, DecimalFast, "0"},
	}
	for _, c := range cases {
		got := formatDecimal(c.in, c.mode)
		require.Equal(t, c.want, got, "formatDecimal(%v)", c.in)
	}
}

func TestFormatDecimalScientificFallsThroughToPrecise(t *testing.T) {
	got := formatDecimal(1.2e6, DecimalFast)
	require.Equal(t, "1200000", got)
	require.NotContains(t, got, "e")
	require.NotContains(t, got, "E")
}

func TestFormatDecimalNeverContainsExponentOrPlus(t *testing.T) {
	for _, f := range []float64{1e21, 1e-21, 123456789.123456, -42.5} {
		got := formatDecimal(f, DecimalPrecise)
		require.NotContains(t, got, "e")
		require.NotContains(t, got, "E")
		require.False(t, len(got) > 0 && got[0] == '+')
	}
}

func TestPreciseDecimalStringExactExpansion(t *testing.T) {
	// 0.1 has no exact finite binary representation as the decimal 0.1,
	// but its exact float64 value does have a finite decimal expansion;
	// preciseDecimalString must reproduce it exactly, not a rounded guess.
	s := preciseDecimalString(0.1)
	r, ok := new(big.Rat).SetString(s)
	require.True(t, ok)
	exact := new(big.Rat).SetFloat64(0.1)
	require.Zero(t, r.Cmp(exact))
}

func TestFormatInteger(t *testing.T) {
	require.Equal(t, "0", formatInteger(big.NewInt(0)))
	require.Equal(t, "-42", formatInteger(big.NewInt(-42)))
	require.Equal(t, "0", formatInteger(nil))

	huge, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	require.Equal(t, "123456789012345678901234567890", formatInteger(huge))
}

func TestIsAllZero(t *testing.T) {
	for _, s := range []string{"0", "-0", "0.0", "-0.000"} {
		require.True(t, isAllZero(s), s)
	}
	for _, s := range []string{"1", "0.1", "-0.01"} {
		require.False(t, isAllZero(s), s)
	}
}
