package main

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"bingo-checker/src/pkg/bingo"
	"bingo-checker/src/pkg/ocr"
	"bingo-checker/src/pkg/vision"
)

func TestStatusForError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{name: "bad image", err: ocr.ErrBadImage, want: http.StatusBadRequest},
		{name: "wrapped bad image", err: fmt.Errorf("%w: not a png", ocr.ErrBadImage), want: http.StatusBadRequest},
		{name: "no signal", err: bingo.ErrNoSignal, want: http.StatusUnprocessableEntity},
		{name: "quota", err: vision.ErrQuotaExceeded, want: http.StatusServiceUnavailable},
		{name: "credential", err: vision.ErrInvalidCredential, want: http.StatusBadGateway},
		{name: "malformed request", err: vision.ErrMalformedRequest, want: http.StatusBadGateway},
		{name: "provider", err: vision.ErrProvider, want: http.StatusBadGateway},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := statusForError(tc.err); got != tc.want {
				t.Errorf("statusForError(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}

// cardFragments is a minimal fragment set that resolves to a 4-number card.
func cardFragments() []bingo.Fragment {
	square := func(x, y float64) []bingo.Point {
		return []bingo.Point{{X: x - 5, Y: y - 5}, {X: x + 5, Y: y - 5}, {X: x + 5, Y: y + 5}, {X: x - 5, Y: y + 5}}
	}
	return []bingo.Fragment{
		{Text: "3", Confidence: 0.9, Polygon: square(50, 50)},
		{Text: "70", Confidence: 0.9, Polygon: square(450, 50)},
		{Text: "14", Confidence: 0.9, Polygon: square(50, 450)},
		{Text: "66", Confidence: 0.9, Polygon: square(450, 450)},
	}
}

func performAnalyze(t *testing.T, annotate bingo.Annotator, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()

	if err := analyzeHandler(annotate)(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func jsonImageBody(imageBytes []byte) string {
	body, _ := json.Marshal(analyzeRequest{Image: base64.StdEncoding.EncodeToString(imageBytes)})
	return string(body)
}

func TestAnalyzeHandler(t *testing.T) {
	var gotImage []byte
	annotate := func(imageBytes []byte) ([]bingo.Fragment, error) {
		gotImage = imageBytes
		return cardFragments(), nil
	}

	rec := performAnalyze(t, annotate, echo.MIMEApplicationJSON, jsonImageBody([]byte("fake-image")))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if string(gotImage) != "fake-image" {
		t.Errorf("annotator received %q, want the decoded payload", gotImage)
	}

	var card bingo.Card
	if err := json.Unmarshal(rec.Body.Bytes(), &card); err != nil {
		t.Fatalf("response is not a Card: %v", err)
	}
	if card.TotalNumbers != 4 {
		t.Errorf("card.TotalNumbers = %d, want 4", card.TotalNumbers)
	}
	if !card.LowDetection {
		t.Error("4 resolved numbers should come back flagged low_detection")
	}
}

func TestAnalyzeHandlerDataURL(t *testing.T) {
	annotate := func(imageBytes []byte) ([]bingo.Fragment, error) {
		return cardFragments(), nil
	}
	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("fake-image"))
	body, _ := json.Marshal(analyzeRequest{Image: payload})

	rec := performAnalyze(t, annotate, echo.MIMEApplicationJSON, string(body))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 for a data-URL payload; body: %s", rec.Code, rec.Body.String())
	}
}

func TestAnalyzeHandlerBadPayloads(t *testing.T) {
	annotate := func(imageBytes []byte) ([]bingo.Fragment, error) {
		t.Error("annotator must not run on a rejected payload")
		return nil, nil
	}

	cases := []struct {
		name string
		body string
	}{
		{name: "invalid base64", body: `{"image":"not-base64!!"}`},
		{name: "empty image field", body: `{"image":""}`},
		{name: "not json", body: `hello`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := performAnalyze(t, annotate, echo.MIMEApplicationJSON, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAnalyzeHandlerErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "quota", err: fmt.Errorf("%w: 429", vision.ErrQuotaExceeded), wantStatus: http.StatusServiceUnavailable},
		{name: "credential", err: fmt.Errorf("%w: 403", vision.ErrInvalidCredential), wantStatus: http.StatusBadGateway},
		{name: "bad image", err: fmt.Errorf("%w: truncated", ocr.ErrBadImage), wantStatus: http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			annotate := func(imageBytes []byte) ([]bingo.Fragment, error) {
				return nil, tc.err
			}
			rec := performAnalyze(t, annotate, echo.MIMEApplicationJSON, jsonImageBody([]byte("fake-image")))
			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}

func TestAnalyzeHandlerNoSignal(t *testing.T) {
	annotate := func(imageBytes []byte) ([]bingo.Fragment, error) {
		return nil, nil
	}

	rec := performAnalyze(t, annotate, echo.MIMEApplicationJSON, jsonImageBody([]byte("fake-image")))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422 when no fragments survive; body: %s", rec.Code, rec.Body.String())
	}
}

func TestHealthzHandler(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	if err := healthzHandler(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
