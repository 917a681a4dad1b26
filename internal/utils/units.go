// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"math/big"
	"strings"
)

// FormatUnits renders an integer token amount with the given number of
// decimals, keeping at most precision fractional digits and trimming trailing
// zeros. A nil amount renders as "0".
//
// Example usage:
//
//	utils.FormatUnits(big.NewInt(1_500_000_000_000_000_000), 18, 2) // "1.5"
func FormatUnits(amount *big.Int, decimals, precision int) string {
	if amount == nil {
		return "0"
	}

	sign := ""
	abs := new(big.Int).Set(amount)
	if abs.Sign() < 0 {
		sign = "-"
		abs.Neg(abs)
	}

	if decimals <= 0 {
		return sign + abs.String()
	}

	base := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole, frac := new(big.Int).QuoRem(abs, base, new(big.Int))

	fracStr := frac.String()
	fracStr = strings.Repeat("0", decimals-len(fracStr)) + fracStr
	if precision >= 0 && precision < len(fracStr) {
		fracStr = fracStr[:precision]
	}
	fracStr = strings.TrimRight(fracStr, "0")

	if fracStr == "" {
		if whole.Sign() == 0 {
			return "0"
		}
		return sign + whole.String()
	}

	return sign + whole.String() + "." + fracStr
}

// ParseUnits is the inverse of FormatUnits: "1.5" with 18 decimals yields
// 1500000000000000000. Extra fractional digits are rejected.
func ParseUnits(value string, decimals int) (*big.Int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, false
	}

	neg := strings.HasPrefix(value, "-")
	value = strings.TrimPrefix(value, "-")

	whole, frac, _ := strings.Cut(value, ".")
	if len(frac) > decimals || (whole == "" && frac == "") {
		return nil, false
	}
	if whole == "" {
		whole = "0"
	}

	digits := whole + frac + strings.Repeat("0", decimals-len(frac))
	out, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, false
	}
	if neg {
		out.Neg(out)
	}

	return out, true
}
