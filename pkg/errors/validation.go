package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds family names and sample ids.
const maxNameLength = 128

// SanitizeFamilyName lowercases name and keeps only letters, digits, '-' and
// '_'. The result is safe to embed in a file name.
func SanitizeFamilyName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateFamilyName validates a family name used as a storage key.
//
// The validation rules are intentionally conservative:
//   - No empty names (after sanitization)
//   - No characters removed by sanitization
//   - Maximum length of 128 characters
func ValidateFamilyName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidName, "family name cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "family name too long (max %d characters)", maxNameLength)
	}
	if SanitizeFamilyName(name) != strings.ToLower(name) {
		return New(ErrCodeInvalidName, "family name contains invalid characters: %q", name)
	}
	return nil
}

// ValidatePersonID validates a person identifier from a family document.
// Identifiers must be non-empty and free of control characters.
func ValidatePersonID(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidFamily, "person id cannot be empty")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidFamily, "person id %q contains control characters", id)
		}
	}
	return nil
}

// ValidatePhotoURL validates a photo reference.
// Empty references are allowed; otherwise only http(s) URLs and
// site-relative paths are accepted.
func ValidatePhotoURL(ref string) error {
	if ref == "" {
		return nil
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return nil
	}
	if strings.HasPrefix(ref, "/") && !strings.Contains(ref, "..") {
		return nil
	}
	return New(ErrCodeInvalidInput, "photo must be an http(s) URL or a site path: %q", ref)
}
