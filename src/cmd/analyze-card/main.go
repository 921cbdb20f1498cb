package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"bingo-checker/src/pkg/bingo"
	"bingo-checker/src/pkg/config"
	"bingo-checker/src/pkg/ocr"
	"bingo-checker/src/pkg/util"
	"bingo-checker/src/pkg/vision"
)

/*
main runs the full card analysis flow.

-image can be:
  - a single image file (.jpg/.jpeg/.png)
  - a directory containing images (.jpg/.jpeg/.png)

For each image:
 1. Detect text fragments via the chosen provider (Google Vision or local
    tesseract).
 2. Interpret the fragments into a 5x5 card with odd/even counts.
 3. Save fragments.json and card.json into a per-run output directory.
*/
func main() {
	// Common flags.
	configPath := flag.String("config", "./cfg/config.json", "Path to your configuration file.")

	// Program-specific flags.
	imagePath := flag.String("image", "", "Path to a card photo OR a directory with photos (.jpg/.jpeg/.png).")
	outputDirPath := flag.String("out", "", "Directory where artifacts and card results will be stored. Defaults to the configured out_dir.")
	providerName := flag.String("provider", "vision", "OCR provider: vision (needs GOOGLE_VISION_API_KEY) or tesseract (local).")

	flag.Parse()
	util.RequiredFlag(imagePath, "image")
	util.EnsureFlags()
	config.InitializeConfig(*configPath)

	if *outputDirPath == "" {
		*outputDirPath = config.Cfg.OutDir
	}

	annotate, e := buildAnnotator(*providerName)
	e.QuitIf(xerr.ErrorTypeError)

	// Build year-month suffix like "september-2006".
	currentTime := time.Now()
	monthName := strings.ToLower(currentTime.Month().String())
	yearValue := currentTime.Year()
	yearMonthDirName := fmt.Sprintf("%s-%04d", monthName, yearValue)

	finalOutputDirPath := filepath.Join(*outputDirPath, yearMonthDirName)

	tl.Log(
		tl.Notice, palette.BlueBold, "%s card analysis. Provider: '%s', config path: '%s'",
		"Running", *providerName, *configPath,
	)
	tl.Log(
		tl.Info1, palette.Cyan, "%s '%s'",
		"Using output directory", finalOutputDirPath,
	)

	imagesToProcess, e := resolveImagesToProcess(*imagePath)
	e.QuitIf(xerr.ErrorTypeError)

	if len(imagesToProcess) == 0 {
		tl.Log(
			tl.Warning, palette.PurpleBold, "No .jpg/.jpeg/.png files found at: '%s'",
			*imagePath,
		)
		os.Exit(0)
	}

	if len(imagesToProcess) > 1 {
		tl.Log(
			tl.Notice1, palette.GreenBold, "Found '%v' card photos to process",
			len(imagesToProcess),
		)
	}

	processedCount := 0
	skippedCount := 0

	for _, imgPath := range imagesToProcess {
		tl.Log(tl.Notice, palette.BlueBold, "%s '%s'", "Processing card photo", imgPath)

		runDirPath, card, runErr := ocr.ProcessImage(imgPath, finalOutputDirPath, annotate)
		if runErr != nil {
			skippedCount++
			tl.Log(
				tl.Error, palette.RedBold, "Failed processing '%s': '%s'",
				imgPath, runErr,
			)
			continue
		}

		processedCount++
		if card.LowDetection {
			tl.Log(
				tl.Warning, palette.YellowBold, "Low-detection card for '%s': only '%v' numbers resolved. Try taking a sharper photo.",
				imgPath, card.TotalNumbers,
			)
		}
		tl.Log(
			tl.Notice1, palette.GreenBold, "%s. '%v' numbers ('%v' odd / '%v' even), free space '%s'. Results in '%s'",
			"Card analysis completed", card.TotalNumbers, card.OddsCount, card.EvensCount, card.FreeSpaceContent, runDirPath,
		)
	}

	tl.Log(
		tl.Notice, palette.GreenBold, "Done. Processed: '%v', skipped: '%v'",
		processedCount, skippedCount,
	)
}

/*
buildAnnotator wires the chosen OCR provider behind the common annotator
shape. The rest of the flow never knows which one it got.
*/
func buildAnnotator(providerName string) (annotate bingo.Annotator, e *xerr.Error) {
	switch strings.ToLower(strings.TrimSpace(providerName)) {
	case "vision":
		config.CheckIfEnvVarsPresent("GOOGLE_VISION_API_KEY")
		apiKey := os.Getenv("GOOGLE_VISION_API_KEY")
		if apiKey == "" {
			err := fmt.Errorf("GOOGLE_VISION_API_KEY is empty")
			return nil, xerr.NewError(err, "vision provider needs GOOGLE_VISION_API_KEY", providerName)
		}
		client := vision.NewClient()
		annotate = func(imageBytes []byte) ([]bingo.Fragment, error) {
			return client.AnnotateImage(imageBytes, apiKey)
		}
		return annotate, nil
	case "tesseract":
		return ocr.DetectFragments, nil
	default:
		err := fmt.Errorf("unknown provider '%s'", providerName)
		return nil, xerr.NewError(err, "provider must be vision or tesseract", providerName)
	}
}

func resolveImagesToProcess(inputPath string) (images []string, e *xerr.Error) {
	trimmed := strings.TrimSpace(inputPath)
	if trimmed == "" {
		err := fmt.Errorf("input path is empty")
		e = xerr.NewError(err, "missing -image input", inputPath)
		return
	}

	info, statErr := os.Stat(trimmed)
	if statErr != nil {
		e = xerr.NewError(statErr, "stat -image input path", trimmed)
		return
	}

	if info.IsDir() {
		return listImagesInDir(trimmed)
	}

	// File path
	ext := strings.ToLower(filepath.Ext(trimmed))
	if !isAllowedImageExt(ext) {
		err := fmt.Errorf("unsupported image extension: %s", ext)
		e = xerr.NewError(err, "input file is not .jpg/.jpeg/.png", trimmed)
		return
	}

	return []string{trimmed}, nil
}

func listImagesInDir(dirPath string) (images []string, e *xerr.Error) {
	entries, readErr := os.ReadDir(dirPath)
	if readErr != nil {
		e = xerr.NewError(readErr, "read directory", dirPath)
		return
	}

	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(ent.Name()))
		if !isAllowedImageExt(ext) {
			continue
		}

		images = append(images, filepath.Join(dirPath, ent.Name()))
	}

	sort.Strings(images)
	return
}

func isAllowedImageExt(ext string) bool {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg", ".png":
		return true
	default:
		return false
	}
}
