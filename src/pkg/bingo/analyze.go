// Package bingo turns noisy OCR fragments into a validated 5x5 bingo card
// with odd/even counts. The pipeline is pure and stateless: every call builds
// its own grid from the given fragments, so concurrent analyses need no
// locking.
package bingo

import (
	"errors"
	"fmt"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
)

// ErrNoSignal means zero fragments survived the token filter. Distinct from
// a low-detection card, which is a successful result with a warning flag.
var ErrNoSignal = errors.New("no valid text detected")

/*
AnalyzeFragments runs the full interpretation pipeline over one OCR response:

	token filter -> grid location -> per-cell resolution -> aggregation

It is deterministic for a fixed fragment set. The only error it returns is
ErrNoSignal; partial detection comes back as a Card with LowDetection set.
*/
func AnalyzeFragments(fragments []Fragment) (card Card, err error) {
	accepted := make([]Fragment, 0, len(fragments))
	for _, f := range fragments {
		if AcceptFragment(f) {
			accepted = append(accepted, f)
		}
	}

	tl.Log(
		tl.Info1, palette.Cyan, "Token filter kept '%v' of '%v' fragments",
		len(accepted), len(fragments),
	)

	if len(accepted) == 0 {
		return Card{}, ErrNoSignal
	}

	grid := LocateGrid(fragments, accepted)
	numbers, freeSpaceContent := resolveCells(grid)
	card = aggregateCard(numbers, freeSpaceContent)

	if card.LowDetection {
		tl.Log(
			tl.Warning, palette.YellowBold, "Resolved only '%v' of '%v' expected numbers; low-detection result",
			card.TotalNumbers, expectedNumbers,
		)
	} else {
		tl.Log(
			tl.Info1, palette.Green, "Resolved '%v' numbers ('%v' odd, '%v' even), confidence '%s'",
			card.TotalNumbers, card.OddsCount, card.EvensCount, fmt.Sprintf("%.2f", card.Confidence),
		)
	}

	return card, nil
}
