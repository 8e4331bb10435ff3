package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// moneyPattern matches a monetary token: optional sign, optional dollar
// sign, thousands separators, two decimal places, optional trailing minus
// (some bank exports print "58.86-" for negatives).
var moneyPattern = regexp.MustCompile(`-?\$?\s?-?\(?\$?[\d,]+\.\d{2}\)?-?`)

// ParseMoney converts a monetary string like "$1,234.56", "(45.00)" or
// "58.86-" to a signed float64. Malformed input is an error, never a
// silent zero.
func ParseMoney(s string) (float64, error) {
	orig := s
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	}
	if strings.HasSuffix(s, "-") {
		negative = true
		s = strings.TrimSuffix(s, "-")
	}
	if strings.HasPrefix(s, "-") {
		negative = true
		s = strings.TrimPrefix(s, "-")
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	// A second minus can survive inside "$-45.00".
	if strings.HasPrefix(s, "-") {
		negative = true
		s = strings.TrimPrefix(s, "-")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed amount %q: %w", orig, err)
	}
	if negative {
		v = -v
	}
	return v, nil
}

// findMoney returns every monetary token on a line, parsed, in order.
// Tokens that fail to parse are skipped.
func findMoney(line string) []float64 {
	var out []float64
	for _, m := range moneyPattern.FindAllString(line, -1) {
		v, err := ParseMoney(m)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

// stripMoney removes all monetary tokens from a line.
func stripMoney(line string) string {
	return moneyPattern.ReplaceAllString(line, "")
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
