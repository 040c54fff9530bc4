package errors

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

// symbolNameRegex matches recipe symbol names: a letter or underscore
// followed by letters, digits, underscores, dashes or dots.
var symbolNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// ValidateSymbolName validates a name used as a recipe storeAs or operand.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - Maximum length of 128 characters
//   - Must start with a letter or underscore
//   - Only letters, digits, '_', '-' and '.' afterwards
func ValidateSymbolName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidRecipe, "symbol name cannot be empty")
	}

	const maxSymbolLength = 128
	if len(name) > maxSymbolLength {
		return New(ErrCodeInvalidRecipe, "symbol name too long (max %d characters)", maxSymbolLength)
	}

	if !symbolNameRegex.MatchString(name) {
		return New(ErrCodeInvalidRecipe, "invalid symbol name: %q", name)
	}

	return nil
}

// ValidateChar validates a drawing character supplied as a string.
// An empty string is accepted and means "use the default".
// Anything else must be exactly one printable code point.
func ValidateChar(s string) error {
	if s == "" {
		return nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return New(ErrCodeInvalidInput, "char must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsPrint(r) {
		return New(ErrCodeInvalidInput, "char must be printable, got %q", s)
	}
	return nil
}

// ValidateDimensions checks that width and height are positive and that the
// cell count stays below limit. A limit of zero disables the size check.
func ValidateDimensions(width, height, limit int) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidInput, "dimensions must be positive, got %dx%d", width, height)
	}
	if limit > 0 && (width > limit || height > limit/width) {
		return New(ErrCodeInvalidInput, "grid too large: %dx%d exceeds %d cells", width, height, limit)
	}
	return nil
}
