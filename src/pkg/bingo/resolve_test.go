package bingo

import "testing"

func TestPickWinner(t *testing.T) {
	cases := []struct {
		name      string
		fragments []Fragment
		col       int
		wantValue int
		wantOk    bool
	}{
		{
			name: "single valid fragment",
			fragments: []Fragment{
				{Text: "12", Confidence: 0.9},
			},
			col: 0, wantValue: 12, wantOk: true,
		},
		{
			name: "higher confidence wins",
			fragments: []Fragment{
				{Text: "9", Confidence: 0.9},
				{Text: "12", Confidence: 0.5},
			},
			col: 0, wantValue: 9, wantOk: true,
		},
		{
			// "20" fails column B directly, but its split digit 2 validates
			// and carries the higher fragment confidence.
			name: "split digit from the stronger fragment wins",
			fragments: []Fragment{
				{Text: "20", Confidence: 0.99},
				{Text: "7", Confidence: 0.5},
			},
			col: 0, wantValue: 2, wantOk: true,
		},
		{
			name: "direct reading beats split digits",
			fragments: []Fragment{
				{Text: "17", Confidence: 0.9},
			},
			col: 1, wantValue: 17, wantOk: true,
		},
		{
			name: "split digit rescues out-of-column direct reading",
			fragments: []Fragment{
				{Text: "17", Confidence: 0.9},
			},
			col: 0, wantValue: 1, wantOk: true,
		},
		{
			name: "out-of-column reading rescued by its split digit",
			fragments: []Fragment{
				{Text: "70", Confidence: 0.9},
			},
			col: 0, wantValue: 7, wantOk: true,
		},
		{
			// No candidate of "12" (12, 1, 2) reaches the O range.
			name: "nothing validates",
			fragments: []Fragment{
				{Text: "12", Confidence: 0.9},
			},
			col: 4, wantOk: false,
		},
		{
			name:      "empty cell",
			fragments: nil,
			col:       0, wantOk: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sorted := byConfidenceDescending(tc.fragments)
			winner, ok := pickWinner(sorted, 1, tc.col)
			if ok != tc.wantOk {
				t.Fatalf("pickWinner ok = %v, want %v", ok, tc.wantOk)
			}
			if !ok {
				return
			}
			if winner.Value != tc.wantValue {
				t.Errorf("winner.Value = %d, want %d", winner.Value, tc.wantValue)
			}
			if winner.IsOdd != (tc.wantValue%2 == 1) {
				t.Errorf("winner.IsOdd = %v for value %d", winner.IsOdd, winner.Value)
			}
			if winner.Row != 1 || winner.Col != tc.col {
				t.Errorf("winner at (%d,%d), want (1,%d)", winner.Row, winner.Col, tc.col)
			}
		})
	}
}

func TestResolveCellsCenter(t *testing.T) {
	var grid Grid
	grid[2][2] = []Fragment{
		{Text: " 17 ", Confidence: 0.6},
		{Text: "FREE", Confidence: 0.9},
	}
	grid[0][0] = []Fragment{{Text: "4", Confidence: 0.8}}

	numbers, freeSpaceContent := resolveCells(grid)

	if freeSpaceContent != "FREE" {
		t.Errorf("freeSpaceContent = %q, want the highest-confidence center text", freeSpaceContent)
	}
	if len(numbers) != 1 || numbers[0].Value != 4 {
		t.Errorf("numbers = %v, want only the (0,0) cell's 4", numbers)
	}
}

func TestResolveCellsCenterNeverANumber(t *testing.T) {
	var grid Grid
	grid[2][2] = []Fragment{{Text: "17", Confidence: 0.9}}

	numbers, freeSpaceContent := resolveCells(grid)

	if freeSpaceContent != "17" {
		t.Errorf("freeSpaceContent = %q, want \"17\"", freeSpaceContent)
	}
	if len(numbers) != 0 {
		t.Errorf("center cell text leaked into numbers: %v", numbers)
	}
}

func TestResolveCellsEmptyCenterDefaults(t *testing.T) {
	var grid Grid
	_, freeSpaceContent := resolveCells(grid)
	if freeSpaceContent != "FREE" {
		t.Errorf("freeSpaceContent = %q, want default FREE", freeSpaceContent)
	}
}
