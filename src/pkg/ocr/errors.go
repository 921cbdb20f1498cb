package ocr

import "errors"

// ErrBadImage means the payload could not be decoded as an image at all.
// Fatal: there is no partial result to salvage.
var ErrBadImage = errors.New("image payload is not a decodable image")
