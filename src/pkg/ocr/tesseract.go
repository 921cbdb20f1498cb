package ocr

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"

	"bingo-checker/src/pkg/bingo"
)

/*
DetectFragments runs local tesseract OCR over an encoded image and returns
word-level fragments with confidence and bounding polygons. It is the offline
counterpart of the network provider: both satisfy bingo.Annotator, so the
rest of the pipeline cannot tell them apart.

The image is preprocessed in memory before recognition. Tesseract reports
confidence on a 0-100 scale; fragments carry it rescaled into [0,1].
*/
func DetectFragments(imageBytes []byte) (fragments []bingo.Fragment, err error) {
	tl.Log(tl.Info1, palette.Cyan, "Running local OCR over '%v' image bytes", len(imageBytes))

	originalImage, decodeErr := imaging.Decode(bytes.NewReader(imageBytes))
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadImage, decodeErr)
	}

	processedImage := processForOCR(originalImage)

	var processedBuffer bytes.Buffer
	if encodeErr := imaging.Encode(&processedBuffer, processedImage, imaging.PNG); encodeErr != nil {
		return nil, fmt.Errorf("encode processed image: %w", encodeErr)
	}

	client := gosseract.NewClient()
	defer func() {
		_ = client.Close()
	}()

	if langErr := client.SetLanguage("eng"); langErr != nil {
		return nil, fmt.Errorf("unable to client.SetLanguage(\"eng\"): %w", langErr)
	}

	// Cards only carry digits, the header letters, and the free-space words.
	if wlErr := client.SetWhitelist("0123456789BINGOFRESPAC"); wlErr != nil {
		return nil, fmt.Errorf("unable to client.SetWhitelist: %w", wlErr)
	}

	// Sparse text: cell contents are scattered, not a uniform block.
	if psmErr := client.SetPageSegMode(gosseract.PSM_SPARSE_TEXT); psmErr != nil {
		return nil, fmt.Errorf("unable to client.SetPageSegMode(PSM_SPARSE_TEXT): %w", psmErr)
	}

	if imgErr := client.SetImageFromBytes(processedBuffer.Bytes()); imgErr != nil {
		return nil, fmt.Errorf("unable to client.SetImageFromBytes: %w", imgErr)
	}

	boxes, ocrErr := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if ocrErr != nil {
		return nil, fmt.Errorf("unable to get word bounding boxes: %w", ocrErr)
	}

	fragments = make([]bingo.Fragment, 0, len(boxes))
	for _, box := range boxes {
		fragments = append(fragments, bingo.Fragment{
			Text:       box.Word,
			Confidence: box.Confidence / 100.0,
			Polygon: []bingo.Point{
				{X: float64(box.Box.Min.X), Y: float64(box.Box.Min.Y)},
				{X: float64(box.Box.Max.X), Y: float64(box.Box.Min.Y)},
				{X: float64(box.Box.Max.X), Y: float64(box.Box.Max.Y)},
				{X: float64(box.Box.Min.X), Y: float64(box.Box.Max.Y)},
			},
		})
	}

	tl.Log(tl.Info1, palette.Green, "Local OCR found '%v' word fragments", len(fragments))

	return fragments, nil
}
