package main

import (
	"errors"
	"os"

	catalogo "github.com/galvez/go-catalogo"
)

// Exit codes for the catalogo CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful generation
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied, storage failure
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, catalogo.ErrStorage) ||
		errors.Is(err, ErrReadTable) ||
		errors.Is(err, ErrReadImages) ||
		errors.Is(err, ErrReadLogo) ||
		errors.Is(err, ErrReadCoverSpec) ||
		errors.Is(err, ErrReadCoverBG) ||
		errors.Is(err, ErrWritePDF) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrInvalidFlags) ||
		errors.Is(err, ErrNoTable) ||
		errors.Is(err, ErrConfigNotFound) ||
		errors.Is(err, ErrEmptyConfigName) ||
		errors.Is(err, ErrConfigParse) ||
		errors.Is(err, catalogo.ErrParse) ||
		errors.Is(err, catalogo.ErrNoRows) ||
		errors.Is(err, catalogo.ErrNoInput) ||
		errors.Is(err, catalogo.ErrNilCover) ||
		errors.Is(err, catalogo.ErrInvalidShapeKind) ||
		errors.Is(err, catalogo.ErrInvalidShapeSize) ||
		errors.Is(err, catalogo.ErrInvalidOpacity) ||
		errors.Is(err, catalogo.ErrInvalidColor) ||
		errors.Is(err, catalogo.ErrInvalidTitlePosition) ||
		errors.Is(err, catalogo.ErrInvalidLogoPosition) ||
		errors.Is(err, catalogo.ErrInvalidLogoSize) {
		return ExitUsage
	}

	return ExitGeneral
}
