package sanitizer

import "errors"

// Errors returned while configuring or registering streamcore's sanitize
// tag handlers (see ResetSanitizers in default.go for the built-in set).
var (
	// ErrInvalidSanitizerConfiguration is returned when a sanitizer is configured incorrectly.
	ErrInvalidSanitizerConfiguration = errors.New("invalid sanitizer configuration")
	// ErrUnknownSanitizer names an unregistered sanitizer tag. SanitizeStruct
	// does not return it: unknown tags are skipped.
	ErrUnknownSanitizer = errors.New("unknown sanitizer")
)
