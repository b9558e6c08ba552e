package errors

import (
	"strings"
	"unicode"
)

// ValidatePath validates an input or output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters: %q", path)
		}
	}

	return nil
}

// ValidateColumnName validates a column name of the survey contract.
// Embedded newlines are allowed because the questionnaire headers use them
// to separate question and slot number.
func ValidateColumnName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "column name cannot be empty")
	}
	for _, r := range name {
		if r == '\n' || r == '\r' {
			continue
		}
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "column name contains invalid control characters: %q", name)
		}
	}
	return nil
}
