package errors

import (
	"strings"
	"testing"
)

func TestValidateSymbolName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "circle", false},
		{"with digits", "circle2", false},
		{"with underscore prefix", "_tmp", false},
		{"with dash and dot", "big-box.v2", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 200), true},
		{"leading digit", "1circle", true},
		{"space", "my circle", true},
		{"slash", "a/b", true},
		{"newline", "a\nb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSymbolName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSymbolName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidRecipe) {
				t.Errorf("expected INVALID_RECIPE code, got %v", GetCode(err))
			}
		})
	}
}

func TestValidateChar(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty means default", "", false},
		{"star", "*", false},
		{"hash", "#", false},
		{"unicode block", "█", false},

		{"two chars", "**", true},
		{"tab", "\t", true},
		{"newline", "\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChar(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateChar(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		limit         int
		wantErr       bool
	}{
		{"ok", 10, 5, 0, false},
		{"ok within limit", 10, 10, 100, false},
		{"zero width", 0, 5, 0, true},
		{"negative height", 5, -1, 0, true},
		{"over limit", 100, 100, 1000, true},
		{"at limit", 10, 100, 1000, false},
		{"product overflows", 1 << 32, 1 << 32, 1 << 20, true},
		{"one side over limit", 1 << 21, 1, 1 << 20, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimensions(tt.width, tt.height, tt.limit)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDimensions(%d, %d, %d) error = %v, wantErr %v", tt.width, tt.height, tt.limit, err, tt.wantErr)
			}
		})
	}
}
