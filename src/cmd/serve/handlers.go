package main

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"

	"bingo-checker/src/pkg/bingo"
	"bingo-checker/src/pkg/ocr"
	"bingo-checker/src/pkg/vision"
)

// analyzeRequest is the JSON body shape: the card photo as base64, with or
// without a data-URL prefix.
type analyzeRequest struct {
	Image string `json:"image"`
}

func healthzHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

/*
analyzeHandler accepts a card photo (JSON base64 or multipart "image" file),
runs OCR through the injected annotator, interprets the fragments, and
returns the Card as JSON. Low-detection cards still return 200; the
low_detection flag in the body is the caller-visible warning.
*/
func analyzeHandler(annotate bingo.Annotator) echo.HandlerFunc {
	return func(c echo.Context) error {
		imageBytes, payloadErr := readImagePayload(c)
		if payloadErr != nil {
			tl.Log(tl.Warning, palette.YellowBold, "Rejecting analyze request: '%s'", payloadErr)
			return c.JSON(http.StatusBadRequest, map[string]string{"error": payloadErr.Error()})
		}

		fragments, annotateErr := annotate(imageBytes)
		if annotateErr != nil {
			status := statusForError(annotateErr)
			tl.Log(tl.Error, palette.RedBold, "Annotation failed (status '%v'): '%s'", status, annotateErr)
			return c.JSON(status, map[string]string{"error": annotateErr.Error()})
		}

		card, analyzeErr := bingo.AnalyzeFragments(fragments)
		if analyzeErr != nil {
			status := statusForError(analyzeErr)
			return c.JSON(status, map[string]string{"error": analyzeErr.Error()})
		}

		return c.JSON(http.StatusOK, card)
	}
}

/*
readImagePayload extracts the image bytes from either a multipart upload
(field "image") or a JSON body with a base64 payload.
*/
func readImagePayload(c echo.Context) ([]byte, error) {
	contentType := c.Request().Header.Get(echo.HeaderContentType)

	if strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		fileHeader, formErr := c.FormFile("image")
		if formErr != nil {
			return nil, errors.New("multipart request is missing the 'image' file")
		}
		file, openErr := fileHeader.Open()
		if openErr != nil {
			return nil, openErr
		}
		defer file.Close()
		return io.ReadAll(file)
	}

	request := analyzeRequest{}
	if bindErr := c.Bind(&request); bindErr != nil {
		return nil, errors.New("body must be JSON with a base64 'image' field")
	}

	payload := request.Image
	// Tolerate data URLs like "data:image/png;base64,...."
	if comma := strings.Index(payload, ","); comma != -1 && strings.HasPrefix(payload, "data:") {
		payload = payload[comma+1:]
	}

	imageBytes, decodeErr := base64.StdEncoding.DecodeString(payload)
	if decodeErr != nil {
		return nil, errors.New("'image' field is not valid base64")
	}
	if len(imageBytes) == 0 {
		return nil, errors.New("'image' field is empty")
	}
	return imageBytes, nil
}

/*
statusForError maps the domain error taxonomy onto HTTP statuses:

	bad image payload      -> 400
	no text detected       -> 422
	provider quota         -> 503 (retry later)
	anything provider-side -> 502
*/
func statusForError(err error) int {
	switch {
	case errors.Is(err, ocr.ErrBadImage):
		return http.StatusBadRequest
	case errors.Is(err, bingo.ErrNoSignal):
		return http.StatusUnprocessableEntity
	case errors.Is(err, vision.ErrQuotaExceeded):
		return http.StatusServiceUnavailable
	case errors.Is(err, vision.ErrInvalidCredential),
		errors.Is(err, vision.ErrMalformedRequest),
		errors.Is(err, vision.ErrProvider):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
