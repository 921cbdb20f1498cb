package vision

// ----- Request types we send -----

type annotateRequest struct {
	Requests []annotationRequest `json:"requests"`
}

type annotationRequest struct {
	Image        imageContent  `json:"image"`
	Features     []feature     `json:"features"`
	ImageContext *imageContext `json:"imageContext,omitempty"`
}

type imageContent struct {
	Content string `json:"content"` // base64-encoded image bytes
}

type feature struct {
	Type       string `json:"type"`
	MaxResults int    `json:"maxResults,omitempty"`
}

type imageContext struct {
	LanguageHints       []string             `json:"languageHints,omitempty"`
	TextDetectionParams *textDetectionParams `json:"textDetectionParams,omitempty"`
}

type textDetectionParams struct {
	EnableTextDetectionConfidenceScore bool `json:"enableTextDetectionConfidenceScore"`
}

// ----- Response types we parse -----
// Only the fields the pipeline consumes; the provider sends far more.

type annotateResponse struct {
	Responses []annotationResponse `json:"responses"`
}

type annotationResponse struct {
	TextAnnotations []textAnnotation `json:"textAnnotations"`
	Error           *statusError     `json:"error,omitempty"`
}

// textAnnotation is one detected text span. The first annotation in a
// response is the concatenated full-page text; the rest are individual spans.
type textAnnotation struct {
	Description  string       `json:"description"`
	Confidence   float64      `json:"confidence"`
	BoundingPoly boundingPoly `json:"boundingPoly"`
}

type boundingPoly struct {
	Vertices []vertex `json:"vertices"`
}

type vertex struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// statusError is the error object the provider embeds in an otherwise
// successful HTTP response.
type statusError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}
