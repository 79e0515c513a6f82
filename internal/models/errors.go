package models

import "errors"

var (
	// ErrUnsupportedPlatform is returned when a request names a platform
	// with no registered adapter.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrInvalidIdentifier is returned when a blogger identifier does not
	// match any accepted shape for the platform.
	ErrInvalidIdentifier = errors.New("invalid blogger identifier")

	// ErrDuplicateContent is returned by the repository when an insert hits
	// the (platform, content_url) unique index.
	ErrDuplicateContent = errors.New("content already exists")

	// ErrContentNotFound is returned by keyed lookups that match no row.
	ErrContentNotFound = errors.New("content not found")
)
