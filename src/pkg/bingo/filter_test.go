package bingo

import "testing"

func TestAcceptFragment(t *testing.T) {
	cases := []struct {
		name       string
		text       string
		confidence float64
		want       bool
	}{
		{name: "plain number", text: "42", confidence: 0.9, want: true},
		{name: "number with ocr noise", text: "4Z", confidence: 0.8, want: true},
		{name: "free marker low confidence", text: "FREE", confidence: 0.1, want: true},
		{name: "space marker mixed case", text: "Space", confidence: 0.2, want: true},
		{name: "free marker padded", text: "  free ", confidence: 0.5, want: true},
		{name: "header letter B", text: "B", confidence: 0.99, want: false},
		{name: "header letter lowercase", text: "o", confidence: 0.99, want: false},
		{name: "below threshold", text: "42", confidence: 0.2, want: false},
		{name: "at threshold boundary", text: "42", confidence: 0.3, want: true},
		{name: "no digits", text: "hello", confidence: 0.9, want: false},
		{name: "digits but out of range", text: "0", confidence: 0.9, want: false},
		{name: "empty text", text: "", confidence: 0.9, want: false},
		{name: "two header letters is not a header", text: "15", confidence: 0.9, want: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := Fragment{Text: tc.text, Confidence: tc.confidence}
			if got := AcceptFragment(f); got != tc.want {
				t.Errorf("AcceptFragment(%q, %.2f) = %v, want %v", tc.text, tc.confidence, got, tc.want)
			}
		})
	}
}
