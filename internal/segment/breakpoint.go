package segment

import (
	"strings"
	"unicode/utf8"
)

// Boundaries returns the byte offsets just past every occurrence of sep in text,
// in ascending order. Each offset is a position where text may be cut without
// splitting the separator from the preceding content.
func Boundaries(text string, sep byte) []int {
	var offsets []int
	for start := 0; start < len(text); {
		i := strings.IndexByte(text[start:], sep)
		if i < 0 {
			break
		}
		start += i + 1
		offsets = append(offsets, start)
	}
	return offsets
}

// FindBreakpoint binary-searches ascending byte offsets for the largest one whose
// prefix fits into maxLen bytes. It reports false when no candidate fits.
func FindBreakpoint(candidates []int, maxLen int) (int, bool) {
	best, found := 0, false
	left, right := 0, len(candidates)-1
	for left <= right {
		mid := (left + right) / 2
		if candidates[mid] <= maxLen {
			best, found = candidates[mid], true
			left = mid + 1
		} else {
			right = mid - 1
		}
	}
	return best, found
}

// LinearCut extends a prefix one character at a time and returns the byte offset
// right before the first character that would overflow maxLen. It never splits a
// UTF-8 sequence; invalid bytes count as one-byte characters.
func LinearCut(text string, maxLen int) int {
	cut := 0
	for cut < len(text) {
		_, width := utf8.DecodeRuneInString(text[cut:])
		if cut+width > maxLen {
			break
		}
		cut += width
	}
	return cut
}
