package cache

import "errors"

// Sentinel error kinds for cache operations.
var (
	ErrUnavailable = errors.New("cache: unavailable")
	ErrClosed      = errors.New("cache: closed")
	ErrEncode      = errors.New("cache: encode failed")
	ErrDecode      = errors.New("cache: decode failed")
)
