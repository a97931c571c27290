package helpers

import "strings"

// CollapseSpace trims a string and collapses every run of whitespace,
// including newlines and tabs, into a single space.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
