package succession

import "strings"

// NamesMatch reports whether two extracted names refer to the same person.
// After trimming surrounding whitespace, either name must contain the other.
// The relation is symmetric.
func NamesMatch(x, y string) bool {
	x = strings.TrimSpace(x)
	y = strings.TrimSpace(y)
	return strings.Contains(x, y) || strings.Contains(y, x)
}

// anyNameMatches reports whether name matches any of candidates.
func anyNameMatches(name string, candidates []string) bool {
	for _, c := range candidates {
		if NamesMatch(name, c) {
			return true
		}
	}
	return false
}
