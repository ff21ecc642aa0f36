package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrForbidden          = errors.New("forbidden")
	ErrRevalidateDisabled = errors.New("revalidation is disabled")
)
