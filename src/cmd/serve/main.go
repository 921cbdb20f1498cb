package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/labstack/echo/v4"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"bingo-checker/src/pkg/bingo"
	"bingo-checker/src/pkg/config"
	echomw "bingo-checker/src/pkg/echo-middleware"
	"bingo-checker/src/pkg/ocr"
	"bingo-checker/src/pkg/vision"
)

/*
main starts the card-checker HTTP service.

Routes:
  - GET  /healthz      liveness probe, no auth
  - POST /api/analyze  card photo in, Card JSON out; bearer-token protected

The OCR provider is chosen once at startup and injected into the handler, so
the handler itself stays testable with fixture annotators.
*/
func main() {
	configPath := flag.String("config", "./cfg/config.json", "Path to your configuration file.")
	providerName := flag.String("provider", "vision", "OCR provider: vision (needs GOOGLE_VISION_API_KEY) or tesseract (local).")

	flag.Parse()
	config.InitializeConfig(*configPath)
	initializeMiddlewareConfig()

	annotate, e := buildAnnotator(*providerName)
	e.QuitIf(xerr.ErrorTypeError)

	server := echo.New()
	server.HideBanner = true
	server.Use(echomw.RouteAccessLoggerMiddleware)
	server.Use(echomw.RateLimiterMiddleware)

	server.GET("/healthz", healthzHandler)

	api := server.Group("/api", echomw.RequireBearerToken)
	api.POST("/analyze", analyzeHandler(annotate))

	address := fmt.Sprintf("%s:%d", echomw.Cfg.Address, echomw.Cfg.Port)
	tl.Log(tl.Notice, palette.BlueBold, "%s card-checker service at '%s' with provider '%s'", "Starting", address, *providerName)

	startErr := server.Start(address)
	xerr.QuitIfError(startErr, "Unable to start the HTTP server")
}

/*
initializeMiddlewareConfig decodes the echo-middleware section of the shared
config (when present) and pushes the resulting limits into the rate limiter.
*/
func initializeMiddlewareConfig() {
	var middlewareConfig *echomw.Config
	if len(config.Cfg.EchoMiddleware) > 0 {
		parsed := echomw.Config{}
		parseErr := json.Unmarshal(config.Cfg.EchoMiddleware, &parsed)
		xerr.QuitIfError(parseErr, "Unable to parse the echo_middleware config section")
		middlewareConfig = &parsed
	}

	echomw.InitializeConfig(middlewareConfig)
	echomw.UpdateRateLimits(echomw.Cfg.MiddlewareRateLimit, echomw.Cfg.MiddlewareBurst)
}

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
