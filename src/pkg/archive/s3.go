// Package archive uploads finished run directories to S3 for retention, so
// analyzed cards and their artifacts survive local cleanup.
package archive

import (
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
)

/*
UploadRunDirectory uploads every regular file inside runDirPath to
s3://bucket/keyPrefix/<run-dir-name>/<file-name>.

Credentials and region come from the standard AWS environment. Subdirectories
are skipped: run directories are flat by construction.
*/
func UploadRunDirectory(bucket string, keyPrefix string, runDirPath string) (uploadedCount int, e *xerr.Error) {
	sess, sessionErr := session.NewSession(&aws.Config{})
	if sessionErr != nil {
		e = xerr.NewError(sessionErr, "create AWS session for S3 upload", bucket)
		return 0, e
	}

	uploader := s3manager.NewUploader(sess)
	runDirName := filepath.Base(runDirPath)

	entries, readErr := os.ReadDir(runDirPath)
	if readErr != nil {
		e = xerr.NewError(readErr, "read run directory for upload", runDirPath)
		return 0, e
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		filePath := filepath.Join(runDirPath, entry.Name())
		file, openErr := os.Open(filePath)
		if openErr != nil {
			e = xerr.NewError(openErr, "open artifact for upload", filePath)
			return uploadedCount, e
		}

		key := filepath.ToSlash(filepath.Join(keyPrefix, runDirName, entry.Name()))
		_, uploadErr := uploader.Upload(&s3manager.UploadInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
			Body:   file,
		})
		_ = file.Close()

		if uploadErr != nil {
			e = xerr.NewError(uploadErr, "upload artifact to S3", key)
			return uploadedCount, e
		}

		uploadedCount++
		tl.Log(tl.Info1, palette.Green, "Uploaded '%s' to 's3://%s/%s'", entry.Name(), bucket, key)
	}

	tl.Log(
		tl.Notice1, palette.GreenBold, "Archived '%v' artifacts from '%s' into 's3://%s/%s/%s'",
		uploadedCount, runDirPath, bucket, keyPrefix, runDirName,
	)

	return uploadedCount, nil
}
