package errors

import (
	"strings"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"relative", "familiarity-network.png", false},
		{"nested", "out/familiarity-network.png", false},
		{"absolute", "/tmp/out.png", false},
		{"empty", "", true},
		{"blank", "   ", true},
		{"null byte", "out\x00.png", true},
		{"control char", "out\x07.png", true},
		{"too long", strings.Repeat("a", 4097), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidatePath(%q) code = %v, want %v", tt.path, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateColumnName(t *testing.T) {
	tests := []struct {
		name    string
		column  string
		wantErr bool
	}{
		{"plain", "整理番号", false},
		{"slot header with newline", "Q27\n-01", false},
		{"empty", "", true},
		{"tab", "Q27\t-01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateColumnName(tt.column)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColumnName(%q) error = %v, wantErr %v", tt.column, err, tt.wantErr)
			}
		})
	}
}
