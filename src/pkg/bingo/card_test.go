package bingo

import (
	"math"
	"testing"
)

func TestInColumnRange(t *testing.T) {
	cases := []struct {
		name  string
		value int
		col   int
		want  bool
	}{
		{name: "B low edge", value: 1, col: 0, want: true},
		{name: "B high edge", value: 15, col: 0, want: true},
		{name: "B overflow", value: 16, col: 0, want: false},
		{name: "I in range", value: 22, col: 1, want: true},
		{name: "N low edge", value: 31, col: 2, want: true},
		{name: "G high edge", value: 60, col: 3, want: true},
		{name: "O high edge", value: 75, col: 4, want: true},
		{name: "O underflow", value: 60, col: 4, want: false},
		{name: "negative column", value: 10, col: -1, want: false},
		{name: "column past grid", value: 10, col: 5, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := InColumnRange(tc.value, tc.col); got != tc.want {
				t.Errorf("InColumnRange(%d, %d) = %v, want %v", tc.value, tc.col, got, tc.want)
			}
		})
	}
}

func TestColumnLetter(t *testing.T) {
	want := []string{"B", "I", "N", "G", "O"}
	for col, letter := range want {
		if got := ColumnLetter(col); got != letter {
			t.Errorf("ColumnLetter(%d) = %q, want %q", col, got, letter)
		}
	}
	if got := ColumnLetter(-1); got != "" {
		t.Errorf("ColumnLetter(-1) = %q, want empty", got)
	}
	if got := ColumnLetter(5); got != "" {
		t.Errorf("ColumnLetter(5) = %q, want empty", got)
	}
}

func TestAggregateCard(t *testing.T) {
	numbers := []ResolvedNumber{
		{Value: 3, IsOdd: true, Row: 0, Col: 0, Confidence: 0.9},
		{Value: 22, IsOdd: false, Row: 1, Col: 1, Confidence: 0.8},
		{Value: 45, IsOdd: true, Row: 2, Col: 2, Confidence: 0.7},
	}

	card := aggregateCard(numbers, "FREE")

	if card.TotalNumbers != 3 {
		t.Errorf("TotalNumbers = %d, want 3", card.TotalNumbers)
	}
	if card.OddsCount != 2 || card.EvensCount != 1 {
		t.Errorf("odds/evens = %d/%d, want 2/1", card.OddsCount, card.EvensCount)
	}
	if math.Abs(card.Confidence-0.8) > 1e-9 {
		t.Errorf("Confidence = %f, want 0.8", card.Confidence)
	}
	if !card.LowDetection {
		t.Error("3 resolved numbers should flag LowDetection")
	}
	if card.FreeSpaceContent != "FREE" {
		t.Errorf("FreeSpaceContent = %q, want FREE", card.FreeSpaceContent)
	}
}

func TestAggregateCardEmpty(t *testing.T) {
	card := aggregateCard(nil, "FREE")

	if card.TotalNumbers != 0 || card.OddsCount != 0 || card.EvensCount != 0 {
		t.Errorf("empty card counts = %d/%d/%d, want zeros",
			card.TotalNumbers, card.OddsCount, card.EvensCount)
	}
	if card.Confidence != 0 {
		t.Errorf("empty card Confidence = %f, want 0", card.Confidence)
	}
	if !card.LowDetection {
		t.Error("empty card should flag LowDetection")
	}
}

func TestAggregateCardFullCardNotLowDetection(t *testing.T) {
	numbers := make([]ResolvedNumber, 0, 24)
	for i := 0; i < 24; i++ {
		numbers = append(numbers, ResolvedNumber{Value: i + 1, IsOdd: (i+1)%2 == 1, Confidence: 1})
	}

	card := aggregateCard(numbers, "FREE")
	if card.LowDetection {
		t.Error("24 resolved numbers must not flag LowDetection")
	}
	if card.OddsCount != 12 || card.EvensCount != 12 {
		t.Errorf("odds/evens = %d/%d, want 12/12", card.OddsCount, card.EvensCount)
	}
}
