package ocr

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

/*
processForOCR applies the preprocessing that makes printed bingo digits easy
for tesseract to read:
  - Convert to grayscale.
  - Resize to double height (keeping aspect ratio) so small digits gain pixels.
  - Apply a mild sharpening.
  - Strongly increase contrast.
  - Apply a hard threshold to produce a pure black/white image.
*/
func processForOCR(originalImage image.Image) *image.NRGBA {
	grayscaleImage := imaging.Grayscale(originalImage)

	bounds := grayscaleImage.Bounds()
	targetHeight := bounds.Dy() * 2
	resizedImage := imaging.Resize(grayscaleImage, 0, targetHeight, imaging.Lanczos)

	sharpenedImage := imaging.Sharpen(resizedImage, 1.0)
	highContrastImage := imaging.AdjustContrast(sharpenedImage, 100.0)

	// Hard threshold into pure black/white. Printed cards have strong ink,
	// so a fairly high cutoff keeps digits solid and drops paper texture.
	thresholdValue := uint8(200)
	binarizedImage := imaging.AdjustFunc(highContrastImage, func(c color.NRGBA) color.NRGBA {
		// Already grayscale, so the red channel is a brightness proxy.
		if c.R > thresholdValue {
			return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
		}
		return color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	})

	return binarizedImage
}

/*
CreateProcessedImage reads the source image, applies the OCR preprocessing,
and saves the result to the destination path as a PNG.

If any step fails, it returns a *xerr.Error.
*/
func CreateProcessedImage(sourcePath string, destinationPath string) (e *xerr.Error) {
	tl.Log(
		tl.Info1, palette.Blue, "Creating processed image from '%s' into '%s'",
		sourcePath, destinationPath,
	)

	originalImage, openErr := imaging.Open(sourcePath)
	if openErr != nil {
		e = xerr.NewError(openErr, "open source image for processing", sourcePath)
		return
	}

	processedImage := processForOCR(originalImage)

	saveErr := imaging.Save(processedImage, destinationPath)
	if saveErr != nil {
		e = xerr.NewError(saveErr, "save processed image", destinationPath)
		return
	}

	tl.Log(
		tl.Info1, palette.Green, "Saved processed image to '%s'",
		destinationPath,
	)

	return
}
