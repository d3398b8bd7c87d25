package util

import (
	"fmt"
	"regexp"
	"sort"
)

var invalidIdentRegexp = regexp.MustCompile(`\W`)

// VarName sanitizes a user-supplied name into a valid signal/dataset
// identifier, replacing every non-word character with an underscore.
func VarName(input string) string {
	return invalidIdentRegexp.ReplaceAllString(input, "_")
}

// Dedup returns the input strings with duplicates removed, first occurrence
// order preserved.
func Dedup(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// SetEqual reports whether two string slices contain the same set of values,
// ignoring order and duplicates.
func SetEqual(a, b []string) bool {
	a, b = Dedup(a), Dedup(b)
	if len(a) != len(b) {
		return false
	}
	sort.Strings(a)
	sort.Strings(b)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Contains reports whether a string slice contains a value.
func Contains(values []string, v string) bool {
	for _, existing := range values {
		if existing == v {
			return true
		}
	}
	return false
}

// Error creates an error with a formatted message
func Error(msg string) error {
	return fmt.Errorf("Internal Error: %s", msg)
}
