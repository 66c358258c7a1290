// utils/amount.go
package utils

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// ScaleToSmallestUnit converts a human-unit decimal string (e.g. "1.5") into
// the token's smallest-unit integer (e.g. 1500000000000000000 for 18 decimals).
// All arithmetic is big.Int on the digit strings — amounts never touch
// float64. Amounts whose fractional part does not fit in the token's decimals
// are rejected rather than rounded.
func ScaleToSmallestUnit(humanAmount string, decimals string) (*big.Int, error) {
	humanAmount = strings.TrimSpace(humanAmount)
	if humanAmount == "" {
		return nil, fmt.Errorf("amount is empty")
	}
	if strings.HasPrefix(humanAmount, "-") {
		return nil, fmt.Errorf("amount %q is negative", humanAmount)
	}

	dec, err := strconv.Atoi(strings.TrimSpace(decimals))
	if err != nil || dec < 0 || dec > 77 {
		return nil, fmt.Errorf("invalid token decimals %q", decimals)
	}

	intPart := humanAmount
	fracPart := ""
	if i := strings.IndexByte(humanAmount, '.'); i >= 0 {
		intPart = humanAmount[:i]
		fracPart = humanAmount[i+1:]
	}
	if intPart == "" {
		intPart = "0"
	}
	if !isDigits(intPart) || (fracPart != "" && !isDigits(fracPart)) {
		return nil, fmt.Errorf("amount %q is not a decimal number", humanAmount)
	}

	if len(fracPart) > dec {
		if strings.Trim(fracPart[dec:], "0") != "" {
			return nil, fmt.Errorf("amount %q has more precision than %d decimals", humanAmount, dec)
		}
		fracPart = fracPart[:dec]
	}
	// Pad the fraction out to exactly `dec` digits and glue: "1.5" @ 18
	// becomes "1" + "500000000000000000".
	fracPart += strings.Repeat("0", dec-len(fracPart))

	out, ok := new(big.Int).SetString(intPart+fracPart, 10)
	if !ok {
		return nil, fmt.Errorf("amount %q did not parse", humanAmount)
	}
	return out, nil
}

// ParseSmallestUnit parses a stored smallest-unit decimal string into big.Int.
// Empty strings read as zero (a balance row that was never incremented).
func ParseSmallestUnit(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return big.NewInt(0), nil
	}
	out, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("balance value %q is not an integer", s)
	}
	if out.Sign() < 0 {
		return nil, fmt.Errorf("balance value %q is negative", s)
	}
	return out, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
