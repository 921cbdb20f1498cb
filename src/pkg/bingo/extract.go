package bingo

import (
	"regexp"
	"strconv"
	"strings"
)

// digitRunPattern matches runs of 1-2 digits in a fragment's text.
// Non-overlapping matching splits a longer run like "6063" into 60 and 63;
// the sliding-window scan later adds the substrings at the other offsets.
var digitRunPattern = regexp.MustCompile(`\d{1,2}`)

/*
ocrCorrections maps characters the OCR providers routinely misread to the
digit they usually stand for on a printed bingo card. Built once, never
mutated.
*/
var ocrCorrections = map[rune]rune{
	'O': '0', 'o': '0', 'Q': '0',
	'l': '1', 'I': '1', '|': '1', 'i': '1',
	'Z': '2', 'z': '2',
	'S': '5', 's': '5',
	'G': '6', 'b': '6',
	'T': '7', 't': '7',
	'B': '8',
	'g': '9',
}

// extraction accumulates candidates deduplicated but in discovery order, so
// a clean direct read like "17" ranks ahead of the window fallbacks 1 and 7.
type extraction struct {
	seen    map[int]bool
	numbers []int
}

/*
ExtractNumbers returns every plausible bingo number the given OCR text could
represent, deduplicated, in discovery order. Every returned value is in
[1,75].

Three strategies are unioned:
 1. Direct: scan the raw text for 1-2 digit runs.
 2. Corrected: apply the character-confusion table first, then scan again.
 3. Sliding window: test the 1- and 2-digit substring at every position of
    the raw text, which recovers the parts of merged multi-cell reads like
    "6063".

The redundancy is deliberate: it trades occasional false positives (pruned
later by column-range validation) for resilience against merged digits and
single-character misreads.
*/
func ExtractNumbers(text string) []int {
	found := &extraction{seen: map[int]bool{}}

	scanDigitRuns(text, found)
	scanDigitRuns(correctText(text), found)
	scanSlidingWindow(text, found)

	return found.numbers
}

// scanDigitRuns adds every in-range 1-2 digit run of text into found.
func scanDigitRuns(text string, found *extraction) {
	for _, run := range digitRunPattern.FindAllString(text, -1) {
		addIfValid(run, found)
	}
}

// correctText rewrites commonly confused characters into digits.
func correctText(text string) string {
	return strings.Map(func(r rune) rune {
		if corrected, ok := ocrCorrections[r]; ok {
			return corrected
		}
		return r
	}, text)
}

/*
scanSlidingWindow walks the raw text byte by byte. At each digit it tests the
single-digit substring and, when the next byte is also a digit, the two-digit
substring. This is what splits merged cell reads: "6063" yields 60 and 63 (and
6 and 3, which column validation discards later).
*/
func scanSlidingWindow(text string, found *extraction) {
	for i := 0; i < len(text); i++ {
		if !isDigitByte(text[i]) {
			continue
		}
		addIfValid(text[i:i+1], found)
		if i+1 < len(text) && isDigitByte(text[i+1]) {
			addIfValid(text[i:i+2], found)
		}
	}
}

func addIfValid(digits string, found *extraction) {
	value, err := strconv.Atoi(digits)
	if err != nil {
		return
	}
	if value < minBingoNumber || value > maxBingoNumber {
		return
	}
	if !found.seen[value] {
		found.seen[value] = true
		found.numbers = append(found.numbers, value)
	}
}

func isDigitByte(b byte) bool {
	return b >= '0' && b <= '9'
}
