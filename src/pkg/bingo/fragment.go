package bingo

// Point is a single vertex of a fragment's bounding polygon, in image pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

/*
Fragment is one OCR-detected text span: the raw text, the provider's
confidence in [0,1], and the bounding polygon in image coordinates.

Fragments come straight from the OCR provider and are never modified by the
pipeline; every analysis builds its own derived state from them.
*/
type Fragment struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Polygon    []Point `json:"polygon"`
}

// BoundingBox returns the axis-aligned min/max over the polygon vertices.
// A fragment with no polygon reports a zero box at the origin.
func (f Fragment) BoundingBox() (minX, minY, maxX, maxY float64) {
	if len(f.Polygon) == 0 {
		return 0, 0, 0, 0
	}

	minX, minY = f.Polygon[0].X, f.Polygon[0].Y
	maxX, maxY = minX, minY
	for _, p := range f.Polygon[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return minX, minY, maxX, maxY
}

// Center returns the midpoint of the fragment's axis-aligned bounding box.
func (f Fragment) Center() (x, y float64) {
	minX, minY, maxX, maxY := f.BoundingBox()
	return (minX + maxX) / 2, (minY + maxY) / 2
}
