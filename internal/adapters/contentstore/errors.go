package contentstore

import "errors"

// Sentinel error kinds for content store queries.
var (
	ErrNotConfigured = errors.New("contentstore: no project id or base url")
	ErrTransport     = errors.New("contentstore: transport failure")
	ErrStatus        = errors.New("contentstore: unexpected status")
	ErrMalformed     = errors.New("contentstore: malformed response")
	ErrQuery         = errors.New("contentstore: query rejected")
)
