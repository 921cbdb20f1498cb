package bingo

import (
	"sort"
	"strings"
)

const freeRow, freeCol = 2, 2

/*
resolveCells walks all 25 cells and picks at most one winning number per
non-center cell.

For the center cell the trimmed text of its highest-confidence fragment
becomes the free-space content ("FREE" when the cell is empty); the center
never contributes a number, even when its text parses to one.

For every other cell, candidates from all of its fragments are pooled after
column-range validation, and the candidate backed by the highest fragment
confidence wins. Cells where nothing validates stay empty; holes are expected
on degraded images.
*/
func resolveCells(grid Grid) (numbers []ResolvedNumber, freeSpaceContent string) {
	freeSpaceContent = defaultFreeSpace

	for row := 0; row < gridSize; row++ {
		for col := 0; col < gridSize; col++ {
			fragments := byConfidenceDescending(grid[row][col])

			if row == freeRow && col == freeCol {
				if len(fragments) > 0 {
					freeSpaceContent = strings.TrimSpace(fragments[0].Text)
				}
				continue
			}

			if winner, ok := pickWinner(fragments, row, col); ok {
				numbers = append(numbers, winner)
			}
		}
	}

	return numbers, freeSpaceContent
}

/*
pickWinner pools the column-validated candidates of every fragment in the
cell and returns the one with the highest source-fragment confidence.

Fragments arrive sorted by confidence descending, so the strictly-greater
comparison keeps the first (highest-confidence) source on ties, which makes
repeat runs over the same input deterministic.
*/
func pickWinner(fragments []Fragment, row, col int) (winner ResolvedNumber, ok bool) {
	bestConfidence := -1.0

	for _, f := range fragments {
		for _, value := range ExtractNumbers(f.Text) {
			if !InColumnRange(value, col) {
				continue
			}
			if f.Confidence > bestConfidence {
				bestConfidence = f.Confidence
				winner = ResolvedNumber{
					Value:      value,
					IsOdd:      value%2 == 1,
					Row:        row,
					Col:        col,
					Confidence: f.Confidence,
				}
				ok = true
			}
		}
	}

	return winner, ok
}

// byConfidenceDescending returns a confidence-sorted copy; the input order is
// preserved on ties and the grid itself is never reordered.
func byConfidenceDescending(fragments []Fragment) []Fragment {
	sorted := make([]Fragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Confidence > sorted[j].Confidence
	})
	return sorted
}
