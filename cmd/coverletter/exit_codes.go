package main

import (
	"errors"
	"os"

	coverletter "github.com/alnah/go-coverletter"
	"github.com/alnah/go-coverletter/internal/cloudconvert"
	"github.com/alnah/go-coverletter/internal/config"
	"github.com/alnah/go-coverletter/internal/docx"
)

// Exit codes for the coverletter CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess    = 0 // Successful generation
	ExitGeneral    = 1 // General/unexpected error
	ExitUsage      = 2 // Invalid flags, config, or validation
	ExitIO         = 3 // File not found, permission denied
	ExitConversion = 4 // Remote conversion failure
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Conversion errors (exit 4)
	if errors.Is(err, cloudconvert.ErrJobFailed) ||
		errors.Is(err, cloudconvert.ErrPollTimeout) ||
		errors.Is(err, cloudconvert.ErrUploadRejected) ||
		errors.Is(err, cloudconvert.ErrMalformedResponse) ||
		errors.Is(err, cloudconvert.ErrRequestFailed) {
		return ExitConversion
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadTemplate) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrInvalidArgs) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidFormat) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, coverletter.ErrMissingTemplate) ||
		errors.Is(err, coverletter.ErrMissingName) ||
		errors.Is(err, coverletter.ErrMissingCompany) ||
		errors.Is(err, coverletter.ErrMissingAddress) ||
		errors.Is(err, coverletter.ErrInvalidFormat) ||
		errors.Is(err, coverletter.ErrNoConverter) ||
		errors.Is(err, cloudconvert.ErrMissingAPIKey) ||
		errors.Is(err, docx.ErrNotArchive) ||
		errors.Is(err, docx.ErrMissingDocumentPart) {
		return ExitUsage
	}

	return ExitGeneral
}
