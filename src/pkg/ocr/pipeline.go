package ocr

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"bingo-checker/src/pkg/bingo"
)

/*
ProcessImage orchestrates one full card analysis run.

It performs the following steps:
 1. Validates the input image path.
 2. Ensures the root output directory exists.
 3. Creates a per-run directory under the root, named by timestamp.
 4. Copies the original image into that run directory as orig.<ext>.
 5. Creates a processed version of the image in that run directory as clean.png.
 6. Feeds the original image bytes to the given annotator (network provider
    or local tesseract) and saves the fragments as fragments.json.
 7. Runs the interpretation pipeline and saves the result as card.json.

If any step fails, it returns a *xerr.Error describing the problem.
*/
func ProcessImage(imagePath string, outputDirPath string, annotate bingo.Annotator) (runDirPath string, card bingo.Card, e *xerr.Error) {
	e = validateImagePath(imagePath)
	if e != nil {
		return
	}

	// Normalize and log initial intent.
	normalizedOutputDirPath := strings.TrimSpace(outputDirPath)
	if normalizedOutputDirPath == "" {
		normalizedOutputDirPath = "./out"
	}

	tl.Log(
		tl.Notice, palette.BlueBold, "%s card analysis for '%s' into root '%s'",
		"Starting", imagePath, normalizedOutputDirPath,
	)

	// Ensure root output directory exists (e.g. ./out).
	e = ensureOutputDirectory(normalizedOutputDirPath)
	if e != nil {
		return "", card, e
	}

	// Generate a timestamp-based directory name with filename-safe characters only.
	// Example: 2025-11-26_16-35-31
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	runDirPath = filepath.Join(normalizedOutputDirPath, timestamp)

	e = ensureOutputDirectory(runDirPath)
	if e != nil {
		return runDirPath, card, e
	}

	// Determine original extension (keep the dot).
	originalExt := strings.ToLower(filepath.Ext(imagePath))
	if originalExt == "" {
		originalExt = ".jpg"
	}

	// Build all output paths inside the per-run directory.
	originalOutPath := filepath.Join(runDirPath, "orig"+originalExt)
	processedOutPath := filepath.Join(runDirPath, "clean.png")
	fragmentsOutPath := filepath.Join(runDirPath, "fragments.json")
	cardOutPath := filepath.Join(runDirPath, "card.json")

	e = copyOriginalImage(imagePath, originalOutPath)
	if e != nil {
		return runDirPath, card, e
	}

	// Keep a processed copy alongside the result for debugging bad reads.
	e = CreateProcessedImage(imagePath, processedOutPath)
	if e != nil {
		return runDirPath, card, e
	}

	imageBytes, readErr := os.ReadFile(imagePath)
	if readErr != nil {
		e = xerr.NewError(readErr, "read image for annotation", imagePath)
		return runDirPath, card, e
	}

	fragments, annotateErr := annotate(imageBytes)
	if annotateErr != nil {
		e = xerr.NewError(annotateErr, "detect text fragments", imagePath)
		return runDirPath, card, e
	}

	e = saveJSONToFile(fragmentsOutPath, fragments)
	if e != nil {
		return runDirPath, card, e
	}

	card, analyzeErr := bingo.AnalyzeFragments(fragments)
	if analyzeErr != nil {
		e = xerr.NewError(analyzeErr, "interpret card from fragments", imagePath)
		return runDirPath, card, e
	}

	e = saveJSONToFile(cardOutPath, card)
	if e != nil {
		return runDirPath, card, e
	}

	tl.Log(
		tl.Info1, palette.Green, "Finished card analysis for '%s'. Free space: '%s', numbers: '%v' ('%v' odd / '%v' even)",
		imagePath, card.FreeSpaceContent, card.TotalNumbers, card.OddsCount, card.EvensCount,
	)

	return runDirPath, card, e
}

/*
validateImagePath ensures the image path is not empty and exists.
Right now it just checks for empty input and wraps that into *xerr.Error,
but can be extended to os.Stat, extension checks, etc.
*/
func validateImagePath(imagePath string) (e *xerr.Error) {
	if imagePath == "" {
		err := fmt.Errorf("image path flag '-image' is empty")
		e = xerr.NewError(err, "no input image path provided", imagePath)
		tl.Log(
			tl.Important, palette.PurpleBold, "Exiting early: '%s'",
			"no input image (-image) provided",
		)
	}
	return
}
