package bingo

const (
	gridSize = 5

	minBingoNumber = 1
	maxBingoNumber = 75

	// A full card resolves 24 numbers (25 cells minus the free space).
	expectedNumbers = 24

	// Below this many resolved numbers the card is flagged as a
	// low-detection result. Still a success, but the caller should warn.
	lowDetectionFloor = 15

	defaultFreeSpace = "FREE"
)

// ColumnRange is the inclusive numeric interval a column may legally contain.
type ColumnRange struct {
	Low  int
	High int
}

// columnRanges maps column index 0..4 to the B/I/N/G/O interval.
var columnRanges = [gridSize]ColumnRange{
	{1, 15},  // B
	{16, 30}, // I
	{31, 45}, // N
	{46, 60}, // G
	{61, 75}, // O
}

var columnLetters = [gridSize]string{"B", "I", "N", "G", "O"}

// ColumnLetter returns the letter heading column col. Out-of-range columns
// return an empty string.
func ColumnLetter(col int) string {
	if col < 0 || col >= gridSize {
		return ""
	}
	return columnLetters[col]
}

// InColumnRange reports whether value is legal for column col.
func InColumnRange(value, col int) bool {
	if col < 0 || col >= gridSize {
		return false
	}
	r := columnRanges[col]
	return value >= r.Low && value <= r.High
}

// ResolvedNumber is the single winning number chosen for one non-center cell.
type ResolvedNumber struct {
	Value      int     `json:"value"`
	IsOdd      bool    `json:"is_odd"`
	Row        int     `json:"row"`
	Col        int     `json:"col"`
	Confidence float64 `json:"confidence"`
}

/*
Card is the final result of one analysis: the resolved numbers, the text found
in the free space, odd/even tallies, and an overall confidence estimate.

LowDetection marks cards where fewer than 15 of the expected 24 numbers were
resolved. That is a caller-visible warning, not an error; the card is still
usable.
*/
type Card struct {
	Numbers          []ResolvedNumber `json:"numbers"`
	FreeSpaceContent string           `json:"free_space_content"`
	OddsCount        int              `json:"odds_count"`
	EvensCount       int              `json:"evens_count"`
	TotalNumbers     int              `json:"total_numbers"`
	Confidence       float64          `json:"confidence"`
	LowDetection     bool             `json:"low_detection"`
}

/*
aggregateCard collects the resolved numbers into the final Card: odd/even
counts, the mean winner confidence (0 when nothing resolved), and the
low-detection flag.
*/
func aggregateCard(numbers []ResolvedNumber, freeSpaceContent string) Card {
	card := Card{
		Numbers:          numbers,
		FreeSpaceContent: freeSpaceContent,
		TotalNumbers:     len(numbers),
	}

	confidenceSum := 0.0
	for _, n := range numbers {
		if n.IsOdd {
			card.OddsCount++
		} else {
			card.EvensCount++
		}
		confidenceSum += n.Confidence
	}

	if card.TotalNumbers > 0 {
		card.Confidence = confidenceSum / float64(card.TotalNumbers)
	}
	card.LowDetection = card.TotalNumbers < lowDetectionFloor

	return card
}
