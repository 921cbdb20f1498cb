// Package vision is a small REST client for the Google Vision images:annotate
// endpoint. It is the only network collaborator of the pipeline: it turns an
// encoded image plus an API key into the fragment list the core consumes, and
// maps provider failures into the domain error taxonomy.
package vision

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"

	"bingo-checker/src/pkg/bingo"
)

const (
	VisionAPIURL    = "https://vision.googleapis.com/v1"
	AnnotateTimeout = 60 * time.Second

	// Per-feature cap on returned annotations. A 5x5 card plus headers and
	// logo noise sits far below this.
	maxAnnotationResults = 50
)

// Domain error taxonomy for provider failures. Callers classify with
// errors.Is; the wrapped message carries the provider detail.
var (
	ErrQuotaExceeded     = errors.New("vision quota exceeded")
	ErrInvalidCredential = errors.New("vision credential rejected")
	ErrMalformedRequest  = errors.New("malformed vision request")
	ErrProvider          = errors.New("vision provider error")
)

/*
Client talks to the images:annotate endpoint. The zero-value-adjacent
NewClient is production-ready; BaseURL exists so tests can point the client at
a local httptest server.
*/
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient() *Client {
	return &Client{
		BaseURL:    VisionAPIURL,
		HTTPClient: &http.Client{Timeout: AnnotateTimeout},
	}
}

/*
AnnotateImage requests both general and document-structured text detection on
the image and returns the detected fragments.

The first annotation in the provider response is the concatenated full-page
text; it is discarded. Every other annotation maps directly onto a
bingo.Fragment.

Failures come back wrapped around the package sentinels:
  - 429 -> ErrQuotaExceeded
  - 403 -> ErrInvalidCredential
  - 400 -> ErrMalformedRequest (with provider detail)
  - anything else non-2xx, a transport failure, or an error object embedded
    in the response body -> ErrProvider (with provider detail)
*/
func (c *Client) AnnotateImage(imageBytes []byte, apiKey string) ([]bingo.Fragment, error) {
	url := fmt.Sprintf("%s/images:annotate?key=%s", c.BaseURL, apiKey)
	tl.Log(tl.Info, palette.Blue, "%s %s to '%s/images:annotate'", "Requesting", "text annotations", c.BaseURL)

	payload := annotateRequest{
		Requests: []annotationRequest{{
			Image: imageContent{Content: base64.StdEncoding.EncodeToString(imageBytes)},
			Features: []feature{
				{Type: "TEXT_DETECTION", MaxResults: maxAnnotationResults},
				{Type: "DOCUMENT_TEXT_DETECTION", MaxResults: maxAnnotationResults},
			},
			ImageContext: &imageContext{
				LanguageHints:       []string{"en"},
				TextDetectionParams: &textDetectionParams{EnableTextDetectionConfidenceScore: true},
			},
		}},
	}

	encoded, marshalErr := json.Marshal(payload)
	if marshalErr != nil {
		return nil, fmt.Errorf("%w: marshal annotate request: %v", ErrProvider, marshalErr)
	}

	req, newReqErr := http.NewRequest("POST", url, bytes.NewBuffer(encoded))
	if newReqErr != nil {
		return nil, fmt.Errorf("%w: create HTTP request: %v", ErrProvider, newReqErr)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, httpErr := c.HTTPClient.Do(req)
	if httpErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, httpErr)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, mapStatusError(resp)
	}

	respBody, readErr := readBody(resp, c.BaseURL+"/images:annotate")
	if readErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, readErr)
	}

	var parsed annotateResponse
	if decodeErr := json.Unmarshal(respBody, &parsed); decodeErr != nil {
		return nil, fmt.Errorf("%w: decode annotate response: %v", ErrProvider, decodeErr)
	}
	if len(parsed.Responses) == 0 {
		return nil, fmt.Errorf("%w: empty annotate response", ErrProvider)
	}

	annotation := parsed.Responses[0]
	if annotation.Error != nil {
		return nil, fmt.Errorf("%w: %s (status %s)", ErrProvider, annotation.Error.Message, annotation.Error.Status)
	}

	fragments := toFragments(annotation.TextAnnotations)
	tl.Log(tl.Info1, palette.Green, "Provider returned '%v' text fragments", len(fragments))

	return fragments, nil
}

/*
mapStatusError converts a non-2xx provider response into the domain taxonomy.
The body is read plainly here; error payloads are small and uncompressed.
*/
func mapStatusError(resp *http.Response) error {
	detailBytes, _ := io.ReadAll(resp.Body)
	detail := strings.TrimSpace(string(detailBytes))

	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrQuotaExceeded, resp.Status)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrInvalidCredential, resp.Status)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s: %s", ErrMalformedRequest, resp.Status, detail)
	default:
		return fmt.Errorf("%w: %s: %s", ErrProvider, resp.Status, detail)
	}
}

/*
toFragments maps provider annotations onto the pipeline's Fragment type,
skipping the leading full-page annotation.
*/
func toFragments(annotations []textAnnotation) []bingo.Fragment {
	if len(annotations) <= 1 {
		return nil
	}

	fragments := make([]bingo.Fragment, 0, len(annotations)-1)
	for _, a := range annotations[1:] {
		polygon := make([]bingo.Point, 0, len(a.BoundingPoly.Vertices))
		for _, v := range a.BoundingPoly.Vertices {
			polygon = append(polygon, bingo.Point{X: float64(v.X), Y: float64(v.Y)})
		}
		fragments = append(fragments, bingo.Fragment{
			Text:       a.Description,
			Confidence: a.Confidence,
			Polygon:    polygon,
		})
	}
	return fragments
}
