package bingo

import (
	"strings"
	"unicode"
)

// Fragments below this confidence carry no usable signal for cell content.
const acceptanceThreshold = 0.3

/*
AcceptFragment decides whether a raw OCR fragment is worth feeding into the
spatial pipeline. Pure predicate, no side effects.

Rules, in order:
  - "FREE" / "SPACE" (any case) are always kept, even at low confidence,
    so the center cell keeps its content on degraded images.
  - A single character from the B/I/N/G/O header row is always dropped;
    headers are not cell content.
  - Anything below the acceptance threshold is dropped.
  - Everything else must contain at least one digit and yield at least one
    candidate bingo number.
*/
func AcceptFragment(f Fragment) bool {
	text := strings.TrimSpace(f.Text)
	upper := strings.ToUpper(text)

	if upper == "FREE" || upper == "SPACE" {
		return true
	}
	if len(upper) == 1 && strings.Contains("BINGO", upper) {
		return false
	}
	if f.Confidence < acceptanceThreshold {
		return false
	}
	if !containsDigit(text) {
		return false
	}
	return len(ExtractNumbers(text)) > 0
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
