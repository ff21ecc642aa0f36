package github

import "errors"

// Sentinel error kinds for pinned repository fetches.
var (
	ErrTransport = errors.New("github: transport failure")
	ErrStatus    = errors.New("github: unexpected status")
	ErrMalformed = errors.New("github: malformed response")
	ErrQuery     = errors.New("github: query rejected")
)
