package utils

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeName folds a place name for index comparison: lower case, no diacritics,
// single spaces. "  Córdoba   Capital" -> "cordoba capital".
func NormalizeName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

var addressPattern = regexp.MustCompile(`^(.*\S)\s+(\d+)$`)

// SplitAddress splits "<street name> <door number>" into its parts.
func SplitAddress(address string) (string, int, bool) {
	m := addressPattern.FindStringSubmatch(strings.TrimSpace(address))
	if m == nil {
		return "", 0, false
	}
	number, err := strconv.Atoi(m[2])
	if err != nil || number <= 0 {
		return "", 0, false
	}
	return m[1], number, true
}
