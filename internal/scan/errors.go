package scan

import "errors"

var (
	// ErrWalkFailed indicates filesystem traversal of the image root failed.
	ErrWalkFailed = errors.New("image directory walk failed")

	// ErrInvalidRelativePath indicates a locator could not be computed for an image.
	ErrInvalidRelativePath = errors.New("invalid relative path calculation")
)
