package connector

import "strings"

var failureMarkers = []string{"error", "fail", "exception"}

// LooksLikeFailure reports whether an opaque text response reads as a failure.
// Only used where a remote service answers with free text instead of a structured status.
func LooksLikeFailure(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range failureMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
