package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateFileName validates an export file name (without directory) for safety.
// It rejects names that could escape the output directory.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - No hidden files
//   - Maximum length of 255 characters
func ValidateFileName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "file name cannot be empty")
	}

	if len(name) > 255 {
		return New(ErrCodeInvalidPath, "file name too long (max 255 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "file name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPath, "file name cannot contain path separators")
	}

	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidPath, "file name cannot contain path traversal sequences (..)")
	}

	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidPath, "file name cannot be a hidden file")
	}

	return nil
}

// productNameRegex matches product names usable as file name prefixes.
var productNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// ValidateProductName validates the product name used in export file names.
func ValidateProductName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "product name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidInput, "product name too long (max 64 characters)")
	}
	if !productNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid product name: %q", name)
	}
	return nil
}

// ValidatePercent checks that v is a usable percentage in [0, max].
func ValidatePercent(field string, v, max float64) error {
	if v < 0 || v > max {
		return New(ErrCodeInvalidMargin, "%s must be between 0 and %g, got %g", field, max, v)
	}
	return nil
}
