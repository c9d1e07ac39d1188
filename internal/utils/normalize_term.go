package utils

import "strings"

// NormalizeTerm prepares a search term for case-insensitive matching.
func NormalizeTerm(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
