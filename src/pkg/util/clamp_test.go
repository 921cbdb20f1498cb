package util

import "testing"

func TestClamp(t *testing.T) {
	cases := []struct {
		name           string
		val, min, max  int
		want           int
	}{
		{name: "inside range", val: 3, min: 0, max: 4, want: 3},
		{name: "below min", val: -1, min: 0, max: 4, want: 0},
		{name: "above max", val: 7, min: 0, max: 4, want: 4},
		{name: "at min", val: 0, min: 0, max: 4, want: 0},
		{name: "at max", val: 4, min: 0, max: 4, want: 4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Clamp(tc.val, tc.min, tc.max); got != tc.want {
				t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tc.val, tc.min, tc.max, got, tc.want)
			}
		})
	}
}

func TestClampFloat(t *testing.T) {
	if got := Clamp(1.5, 0.0, 1.0); got != 1.0 {
		t.Errorf("Clamp(1.5, 0, 1) = %v, want 1", got)
	}
}
