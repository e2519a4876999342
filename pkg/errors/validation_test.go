package errors

import (
	"strings"
	"testing"
)

func TestSanitizeFamilyName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Kennedy", "kennedy"},
		{"van-der_Berg", "van-der_berg"},
		{"../etc/passwd", "etcpasswd"},
		{"o'brien family", "obrienfamily"},
		{"Åsa", "sa"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := SanitizeFamilyName(tt.input); got != tt.want {
			t.Errorf("SanitizeFamilyName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestValidateFamilyName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "stark", false},
		{"mixed case", "Stark", false},
		{"with dash", "house-stark", false},
		{"with underscore", "house_stark", false},
		{"digits", "family2", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"too long", strings.Repeat("a", 200), true},
		{"path traversal", "../stark", true},
		{"slash", "a/b", true},
		{"space", "house stark", true},
		{"null byte", "stark\x00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFamilyName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFamilyName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidName) {
				t.Errorf("ValidateFamilyName(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidatePersonID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "p_1a2b3c", false},
		{"numeric", "42", false},
		{"unicode", "jón", false},

		{"empty", "", true},
		{"blank", " ", true},
		{"newline", "a\nb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePersonID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePersonID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePhotoURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", false},
		{"https", "https://example.com/a.jpg", false},
		{"http", "http://example.com/a.jpg", false},
		{"site path", "/static/photos/a.jpg", false},

		{"javascript", "javascript:alert(1)", true},
		{"file", "file:///etc/passwd", true},
		{"traversal", "/static/../../secret", true},
		{"relative", "photos/a.jpg", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePhotoURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePhotoURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidFormat,
		ErrCodeInvalidStyle,
		ErrCodeInvalidFamily,
		ErrCodeInvalidName,
		ErrCodeSelfParent,
		ErrCodeCycle,
		ErrCodeNotFound,
		ErrCodeFamilyNotFound,
		ErrCodeSampleNotFound,
		ErrCodeForbidden,
		ErrCodeInternal,
		ErrCodeUnavailable,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
