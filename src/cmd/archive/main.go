package main

import (
	"flag"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"

	"bingo-checker/src/pkg/archive"
	"bingo-checker/src/pkg/config"
	"bingo-checker/src/pkg/util"
)

/*
main uploads one finished run directory (orig image, clean.png,
fragments.json, card.json) to S3 for retention.
*/
func main() {
	config.CheckIfEnvVarsPresent("AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "AWS_REGION")

	configPath := flag.String("config", "./cfg/config.json", "Path to your configuration file.")
	runDirPath := flag.String("run", "", "Path to the run directory to upload.")
	bucket := flag.String("bucket", "", "Target S3 bucket.")
	keyPrefix := flag.String("prefix", "card-runs", "Key prefix inside the bucket.")

	flag.Parse()
	util.RequiredFlag(runDirPath, "run")
	util.RequiredFlag(bucket, "bucket")
	util.EnsureFlags()
	config.InitializeConfig(*configPath)

	tl.Log(
		tl.Notice, palette.BlueBold, "%s run directory '%s' into bucket '%s'",
		"Archiving", *runDirPath, *bucket,
	)

	uploadedCount, e := archive.UploadRunDirectory(*bucket, *keyPrefix, *runDirPath)
	e.QuitIf(xerr.ErrorTypeError)

	tl.Log(tl.Notice1, palette.GreenBold, "Archive completed: '%v' files uploaded", uploadedCount)
}
