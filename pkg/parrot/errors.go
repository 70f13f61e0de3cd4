// errors.go - Error kinds.
package parrot

import "errors"

// Error kinds. Every error returned by this package and its collaborators
// wraps exactly one of these; test with errors.Is.
var (
	// ErrConfig reports a missing or invalid base configuration.
	ErrConfig = errors.New("parrot: invalid configuration")
	// ErrLoad reports an overlay or frame source that could not be read.
	ErrLoad = errors.New("parrot: load failed")
	// ErrDecode reports input that was read but could not be decoded.
	ErrDecode = errors.New("parrot: decode failed")
	// ErrMisuse reports a Constructor call made out of order.
	ErrMisuse = errors.New("parrot: misuse")
)
