package coverletter

import "errors"

// Sentinel errors for library operations.
var (
	// Validation errors: user-correctable preconditions.
	ErrMissingTemplate = errors.New("template is required")
	ErrMissingName     = errors.New("client name is required")
	ErrMissingCompany  = errors.New("company name is required")
	ErrMissingAddress  = errors.New("address line 1 is required")
	ErrInvalidFormat   = errors.New("invalid output format")

	// ErrNoConverter is returned when PDF output is requested but the
	// generator was built without an API key or injected converter.
	ErrNoConverter = errors.New("PDF output requires a conversion API key")
)
