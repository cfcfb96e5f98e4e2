package errors

import (
	"regexp"
	"strings"
	"unicode"
)

const maxNameLength = 64

// layerNameRegex matches names usable as map keys, DOT identifiers and
// SVG text without quoting surprises.
var layerNameRegex = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.-]*$`)

// ValidateLayerName validates a layer name from a diagram document.
//
// Validation rules:
//   - Name cannot be empty
//   - Maximum length of 64 characters
//   - Letters, digits, '_', '.', '-' only, not starting with '.' or '-'
func ValidateLayerName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidDiagram, "layer name cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidDiagram, "layer name too long (max %d characters)", maxNameLength)
	}
	if !layerNameRegex.MatchString(name) {
		return New(ErrCodeInvalidDiagram, "invalid layer name: %q", name)
	}
	return nil
}

// ValidatePath validates a user-supplied file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
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

// ValidateRedisURL validates a redis connection URL.
// It ensures the URL uses the redis or rediss scheme.
func ValidateRedisURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "redis URL cannot be empty")
	}
	if !strings.HasPrefix(rawURL, "redis://") && !strings.HasPrefix(rawURL, "rediss://") {
		return New(ErrCodeInvalidInput, "redis URL must use redis or rediss scheme")
	}
	return nil
}
