package bingo

import "testing"

// fragmentAt builds a small square fragment whose center sits at (x, y).
func fragmentAt(x, y float64, text string, confidence float64) Fragment {
	return Fragment{
		Text:       text,
		Confidence: confidence,
		Polygon: []Point{
			{X: x - 5, Y: y - 5},
			{X: x + 5, Y: y - 5},
			{X: x + 5, Y: y + 5},
			{X: x - 5, Y: y + 5},
		},
	}
}

func countGridFragments(grid Grid) (total int) {
	for row := 0; row < gridSize; row++ {
		for col := 0; col < gridSize; col++ {
			total += len(grid[row][col])
		}
	}
	return total
}

func TestLocateByHeaders(t *testing.T) {
	headers := []Fragment{
		fragmentAt(50, 10, "B", 0.9),
		fragmentAt(150, 10, "I", 0.9),
		fragmentAt(250, 10, "N", 0.9),
		fragmentAt(350, 10, "G", 0.9),
		fragmentAt(450, 10, "O", 0.9),
	}
	accepted := []Fragment{
		fragmentAt(150, 60, "20", 0.9),
		fragmentAt(250, 260, "33", 0.9),
		fragmentAt(650, 60, "10", 0.9), // past the O column
	}
	// Raw-only fragment fixing the bottom of the vertical extent.
	extent := fragmentAt(250, 510, "x", 0.1)

	all := append(append([]Fragment{}, headers...), accepted...)
	all = append(all, extent)

	// Header centers 50..450 give a 100-wide column starting at x=0; the raw
	// vertical extent 10..510 gives a 100-tall row starting at y=10.
	grid, ok := locateByHeaders(all, accepted)
	if !ok {
		t.Fatal("locateByHeaders should succeed with 5 headers")
	}

	if len(grid[0][1]) != 1 || grid[0][1][0].Text != "20" {
		t.Errorf("cell (0,1) = %v, want the \"20\" fragment", grid[0][1])
	}
	if len(grid[2][2]) != 1 || grid[2][2][0].Text != "33" {
		t.Errorf("cell (2,2) = %v, want the \"33\" fragment", grid[2][2])
	}
	if got := countGridFragments(grid); got != 2 {
		t.Errorf("grid holds %d fragments, want 2 (out-of-lattice fragment discarded)", got)
	}
}

func TestLocateByHeadersNeedsThreeHeaders(t *testing.T) {
	all := []Fragment{
		fragmentAt(50, 10, "B", 0.9),
		fragmentAt(150, 10, "I", 0.9),
		fragmentAt(150, 60, "20", 0.9),
	}

	if _, ok := locateByHeaders(all, all[2:]); ok {
		t.Error("locateByHeaders should fail with only 2 headers")
	}
}

func TestLocateByHeadersDegenerateGeometry(t *testing.T) {
	// All headers stacked at one x: no column width to derive.
	all := []Fragment{
		fragmentAt(50, 10, "B", 0.9),
		fragmentAt(50, 10, "I", 0.9),
		fragmentAt(50, 10, "N", 0.9),
		fragmentAt(50, 60, "20", 0.9),
	}

	if _, ok := locateByHeaders(all, all[3:]); ok {
		t.Error("locateByHeaders should fail when header centers coincide")
	}
}

func TestLocateByBoundingBox(t *testing.T) {
	fragments := []Fragment{
		fragmentAt(0, 0, "5", 0.9),
		fragmentAt(100, 100, "70", 0.9),
	}

	// Bounding box 0..100 expands to -10..110; cells are 24 wide.
	grid := locateByBoundingBox(fragments)

	if len(grid[0][0]) != 1 || grid[0][0][0].Text != "5" {
		t.Errorf("cell (0,0) = %v, want the \"5\" fragment", grid[0][0])
	}
	if len(grid[4][4]) != 1 || grid[4][4][0].Text != "70" {
		t.Errorf("cell (4,4) = %v, want the \"70\" fragment", grid[4][4])
	}
}

func TestLocateByBoundingBoxCoincidentCenters(t *testing.T) {
	fragments := []Fragment{
		fragmentAt(250, 250, "5", 0.9),
		fragmentAt(250, 250, "7", 0.9),
	}

	grid := locateByBoundingBox(fragments)
	if len(grid[0][0]) != 2 {
		t.Errorf("degenerate box should map everything to (0,0), got %d there", len(grid[0][0]))
	}
}

func TestLocateGridDensityFallback(t *testing.T) {
	// 20 numeric fragments clustered in four corners, plus a far-away FREE
	// marker. The numeric subset must become the working set, so the FREE
	// fragment is dropped instead of stretching the lattice toward it.
	accepted := make([]Fragment, 0, 21)
	corners := [][2]float64{{10, 10}, {90, 10}, {10, 90}, {90, 90}}
	for _, corner := range corners {
		for i := 0; i < 5; i++ {
			accepted = append(accepted, fragmentAt(corner[0], corner[1], "7", 0.9))
		}
	}
	accepted = append(accepted, fragmentAt(1000, 1000, "FREE", 0.9))

	grid := LocateGrid(accepted, accepted)

	if got := countGridFragments(grid); got != 20 {
		t.Fatalf("grid holds %d fragments, want the 20 numeric ones", got)
	}
	if len(grid[0][0]) != 5 || len(grid[0][4]) != 5 || len(grid[4][0]) != 5 || len(grid[4][4]) != 5 {
		t.Errorf("corner cells hold %d/%d/%d/%d fragments, want 5 each",
			len(grid[0][0]), len(grid[0][4]), len(grid[4][0]), len(grid[4][4]))
	}
}

func TestLocateGridEmptyAccepted(t *testing.T) {
	grid := LocateGrid(nil, nil)
	if got := countGridFragments(grid); got != 0 {
		t.Errorf("empty input produced %d fragments in the grid", got)
	}
}
