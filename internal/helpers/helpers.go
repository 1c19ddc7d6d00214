package helpers

import "math/rand/v2"

func Ptr[T any](v T) *T {
	return &v
}

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// SyntheticDuration returns a plausible processing time in [1000, 3000)
// milliseconds.
func SyntheticDuration() int {
	return 1000 + rand.IntN(2000)
}
