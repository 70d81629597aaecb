package cton

import (
	"math/big"
	"strconv"
	"strings"
)

// DecimalMode selects how the encoder produces a Decimal value's
// fixed-point textual expansion: from the host's shortest round-trip
// formatting where that has no exponent, or always by exact
// arbitrary-precision expansion.
type DecimalMode int

const (
	// DecimalFast uses the host's shortest-round-trip float formatting and
	// only falls through to arbitrary-precision expansion when that
	// produces scientific notation.
	DecimalFast DecimalMode = iota
	// DecimalPrecise always expands via arbitrary-precision decimal
	// arithmetic to a full fixed-point representation.
	DecimalPrecise
)

// formatDecimal renders f as canonical CTON decimal text per the §4.1
// formatter. f must be finite; callers substitute null for NaN/±Inf
// before reaching here.
func formatDecimal(f float64, mode DecimalMode) string {
	var s string
	switch mode {
	case DecimalPrecise:
		s = preciseDecimalString(f)
	default:
		s = strconv.FormatFloat(f, 'g', -1, 64)
		if strings.ContainsAny(s, "eE") {
			s = preciseDecimalString(f)
		}
	}
	return normalizeDecimalString(s)
}

// preciseDecimalString expands f to its exact, terminating fixed-point
// decimal representation. A float64's value is m * 2^e for integer m, e;
// as a reduced fraction its denominator is always a power of two (or one),
// so the decimal expansion always terminates and big.Rat.FloatString can
// produce it exactly by asking for precisely that many fractional digits,
// the same coefficient-and-scale technique the teacher's 128-bit decimal
// type uses for lossless arithmetic.
func preciseDecimalString(f float64) string {
	r := new(big.Rat).SetFloat64(f)
	denom := r.Denom()
	prec := 0
	if denom.Cmp(big.NewInt(1)) != 0 {
		prec = denom.BitLen() - 1
	}
	return r.FloatString(prec)
}

// normalizeDecimalString applies the canonical-decimal cleanup rules
// shared by both modes: strip a leading '+', collapse an all-zero value
// (with optional sign and trailing .0+) to "0", strip trailing fractional
// zeros and a dangling '.', and collapse "-0" to "0".
func normalizeDecimalString(s string) string {
	s = strings.TrimPrefix(s, "+")

	if isAllZero(s) {
		return "0"
	}

	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}

	if s == "-0" {
		return "0"
	}
	return s
}

// isAllZero reports whether s denotes zero: an optional sign, all-zero
// integer part, and an optional all-zero fractional part.
func isAllZero(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	if intPart == "" {
		return false
	}
	for i := 0; i < len(intPart); i++ {
		if intPart[i] != '0' {
			return false
		}
	}
	if hasFrac {
		for i := 0; i < len(fracPart); i++ {
			if fracPart[i] != '0' {
				return false
			}
		}
	}
	return true
}

// formatInteger renders n as canonical CTON integer text. big.Int's own
// String already has no leading zeros (other than the single digit "0")
// and an optional leading '-', which is exactly the canonical form §3
// asks for.
func formatInteger(n *big.Int) string {
	if n == nil {
		return "0"
	}
	return n.String()
}
