package bingo

import (
	"math"
	"sort"
	"strings"

	"bingo-checker/src/pkg/util"
)

// Grid owns, per (row, col) cell, the accepted fragments whose centers map
// into that cell.
type Grid [gridSize][gridSize][]Fragment

// Fragments needed before the density fallback trusts the numeric subset as
// the working set for the relaxed bounding-box method.
const densityFallbackMinimum = 20

// Bounding-box expansion applied per side so centers sitting on an edge
// still land inside the lattice.
const boxExpansionRatio = 0.10

/*
LocateGrid partitions image space into the 5x5 cell lattice and assigns every
accepted fragment to a cell. Exactly one strategy runs per call, chosen by
priority rather than by comparing outputs:

 1. Header-based: when at least 3 of the B/I/N/G/O column headers survive in
    the raw fragment set, their horizontal centers fix the column geometry.
    Fragments falling outside the lattice are discarded, not clamped.
 2. Density fallback: when at least 20 accepted fragments carry an extractable
    number, that numeric subset becomes the working set for the relaxed
    bounding-box method.
 3. Relaxed bounding box (default): uniform lattice over the 10%-expanded
    bounding box of the accepted fragments, with out-of-bounds rows and
    columns clamped into [0,4].

The raw set is consulted only for header detection and the vertical extent;
headers themselves are rejected by the token filter and never become cell
content.
*/
func LocateGrid(all, accepted []Fragment) Grid {
	if grid, ok := locateByHeaders(all, accepted); ok {
		return grid
	}

	numeric := make([]Fragment, 0, len(accepted))
	for _, f := range accepted {
		if len(ExtractNumbers(f.Text)) > 0 {
			numeric = append(numeric, f)
		}
	}
	if len(numeric) >= densityFallbackMinimum {
		return locateByBoundingBox(numeric)
	}

	return locateByBoundingBox(accepted)
}

/*
locateByHeaders derives the lattice from the detected B/I/N/G/O header
fragments. Column width comes from the spread of the header centers, row
height from the vertical spread of the whole raw fragment set. Returns
ok=false when fewer than 3 headers exist or the geometry degenerates.
*/
func locateByHeaders(all, accepted []Fragment) (grid Grid, ok bool) {
	headers := make([]Fragment, 0, gridSize)
	for _, f := range all {
		text := strings.TrimSpace(f.Text)
		if len(text) == 1 && strings.Contains("BINGO", text) {
			headers = append(headers, f)
		}
	}
	if len(headers) < 3 {
		return grid, false
	}

	sort.SliceStable(headers, func(i, j int) bool {
		xi, _ := headers[i].Center()
		xj, _ := headers[j].Center()
		return xi < xj
	})

	firstX, _ := headers[0].Center()
	lastX, _ := headers[len(headers)-1].Center()
	colWidth := (lastX - firstX) / float64(len(headers)-1)
	if colWidth <= 0 {
		return grid, false
	}

	minY, maxY := verticalExtent(all)
	rowHeight := (maxY - minY) / gridSize
	if rowHeight <= 0 {
		return grid, false
	}

	// Half a column to the left of the first header is the lattice edge.
	leftEdge := firstX - colWidth/2

	for _, f := range accepted {
		x, y := f.Center()
		col := int(math.Floor((x - leftEdge) / colWidth))
		row := int(math.Floor((y - minY) / rowHeight))
		if row < 0 || row >= gridSize || col < 0 || col >= gridSize {
			continue // outside the lattice, discard for this strategy
		}
		grid[row][col] = append(grid[row][col], f)
	}

	return grid, true
}

/*
locateByBoundingBox divides the expanded bounding box of the given fragments
into a uniform 5x5 lattice and clamps every fragment into it, so the grid
covers the full working set even when centers sit past an edge.
*/
func locateByBoundingBox(fragments []Fragment) (grid Grid) {
	if len(fragments) == 0 {
		return grid
	}

	minX, minY := fragments[0].Center()
	maxX, maxY := minX, minY
	for _, f := range fragments[1:] {
		x, y := f.Center()
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}

	expandX := (maxX - minX) * boxExpansionRatio
	expandY := (maxY - minY) * boxExpansionRatio
	minX -= expandX
	maxX += expandX
	minY -= expandY
	maxY += expandY

	cellWidth := (maxX - minX) / gridSize
	cellHeight := (maxY - minY) / gridSize

	for _, f := range fragments {
		x, y := f.Center()
		col, row := 0, 0
		if cellWidth > 0 {
			col = util.Clamp(int(math.Floor((x-minX)/cellWidth)), 0, gridSize-1)
		}
		if cellHeight > 0 {
			row = util.Clamp(int(math.Floor((y-minY)/cellHeight)), 0, gridSize-1)
		}
		grid[row][col] = append(grid[row][col], f)
	}

	return grid
}

func verticalExtent(fragments []Fragment) (minY, maxY float64) {
	if len(fragments) == 0 {
		return 0, 0
	}
	_, minY = fragments[0].Center()
	maxY = minY
	for _, f := range fragments[1:] {
		_, y := f.Center()
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}
	return minY, maxY
}
