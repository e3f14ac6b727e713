package core

import "strings"

// CleanString strips leading and trailing whitespace from s; pass lower=true
// to also case-fold the result.
func CleanString(s string, lower ...bool) string {
	cleaned := strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		cleaned = strings.ToLower(cleaned)
	}
	return cleaned
}
