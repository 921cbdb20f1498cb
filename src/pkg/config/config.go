// Package config loads the shared JSON configuration file and checks for the
// environment variables each entrypoint needs before doing any real work.
package config

import (
	"encoding/json"
	"os"
	"runtime"
	"strings"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
)

/*
Config is the top-level configuration shared by all entrypoints. Package-local
sections (like the echo middleware one) stay raw here and are decoded by the
package that owns them, so config does not have to import everyone.
*/
type Config struct {
	OutDir string `json:"out_dir,omitempty"`

	EchoMiddleware json.RawMessage `json:"echo_middleware,omitempty"`
	Email          EmailConfig     `json:"email,omitempty"`
}

// EmailConfig holds report-delivery defaults.
type EmailConfig struct {
	Provider   string   `json:"provider,omitempty"`
	Sender     string   `json:"sender,omitempty"`
	Recipients []string `json:"recipients,omitempty"`
}

func DefaultValueConfig() Config {
	return Config{
		OutDir: "./out",
	}
}

// Cfg is usable before InitializeConfig runs; it starts with defaults.
var Cfg Config = DefaultValueConfig()

/*
InitializeConfig loads the JSON config file at configPath into Cfg.

A missing file is not an error: entrypoints are expected to run with defaults
on a fresh checkout. A file that exists but does not parse is fatal.
*/
func InitializeConfig(configPath string) {
	fileBytes, readErr := os.ReadFile(configPath)
	if readErr != nil {
		tl.Log(
			tl.Info, palette.Purple, "Config file '%s' is %s, keeping %s",
			configPath, "not readable", "default configuration",
		)
		return
	}

	loaded := DefaultValueConfig()
	if parseErr := json.Unmarshal(fileBytes, &loaded); parseErr != nil {
		tl.Log(tl.Error, palette.Red, "Unable to parse config file '%s': '%s'", configPath, parseErr)
		os.Exit(1)
	}

	Cfg = loaded
	tl.Log(tl.Info, palette.Green, "Config file '%s' was %s", configPath, "loaded")
	tl.LogJSON(tl.Verbose, palette.CyanDim, "configuration", Cfg)
}

/*
CheckIfEnvVarsPresent warns about every missing environment variable from the
given list. It does not exit: some entrypoints list the vars of every provider
while only one of them ends up used.
*/
func CheckIfEnvVarsPresent(envVarNames ...string) (missing []string) {
	for _, name := range envVarNames {
		if strings.TrimSpace(os.Getenv(name)) == "" {
			missing = append(missing, name)
			tl.Log(tl.Warning, palette.YellowBold, "Environment variable %s is %s", name, "not set")
		}
	}
	return missing
}

/*
GetPackageName returns the package name of the caller, for log messages that
want to say which package's configuration they are talking about.
*/
func GetPackageName() string {
	pc, _, _, ok := runtime.Caller(1)
	if !ok {
		return "unknown"
	}

	fullName := runtime.FuncForPC(pc).Name() // e.g. bingo-checker/src/pkg/echo-middleware.InitializeConfig
	lastSlash := strings.LastIndex(fullName, "/")
	trimmed := fullName[lastSlash+1:]
	if dot := strings.Index(trimmed, "."); dot != -1 {
		return trimmed[:dot]
	}
	return trimmed
}
