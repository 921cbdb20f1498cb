package bingo

// Annotator produces OCR fragments for an encoded image. The network
// provider and the local tesseract provider both satisfy this shape, which
// keeps the pipeline itself testable on fixture fragments.
type Annotator func(imageBytes []byte) ([]Fragment, error)
