package common

import "strings"

// NormalizePlace folds a free-text place name for comparisons.
func NormalizePlace(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

func SamePlace(a, b string) bool {
	return NormalizePlace(a) == NormalizePlace(b)
}
