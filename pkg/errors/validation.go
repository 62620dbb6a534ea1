package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxPathLength bounds user-supplied file paths.
const maxPathLength = 4096

// ValidatePath validates a local file path supplied on the command line or in
// a config file.
//
// Validation rules:
//   - Path cannot be empty or whitespace only
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateCSVPath validates an input table path. In addition to the
// [ValidatePath] rules, the file name must carry a .csv extension
// (case-insensitive).
func ValidateCSVPath(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		return New(ErrCodeInvalidPath, "input %q must be a .csv file", filepath.Base(path))
	}
	return nil
}
