package errors

import (
	"strings"
	"testing"
)

func TestValidateModulePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "random_wgsl::lib", false},
		{"scoped", "lygia__shader_utils::color::rgb2hsv", false},
		{"single segment", "vec3f", false},
		{"constants", "constants::num_lights", false},

		{"empty", "", true},
		{"empty segment", "foo::::bar", true},
		{"leading separator", "::foo", true},
		{"trailing separator", "foo::", true},
		{"slash", "foo/bar::baz", true},
		{"backslash", "foo\\bar", true},
		{"space", "foo:: bar", true},
		{"control char", "foo\x01::bar", true},
		{"too long", strings.Repeat("a", 600), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateModulePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateModulePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidModulePath) {
				t.Errorf("ValidateModulePath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidModulePath)
			}
		})
	}
}

func TestValidatePackageName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "random_wgsl", false},
		{"valid with dash", "random-wgsl", false},
		{"valid scoped npm", "@scope/package", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"path traversal ..", "foo/../bar", true},
		{"path traversal //", "foo//bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePackageName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePackageName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateNpmPackageName(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"random_wgsl", false},
		{"random-wgsl", false},
		{"@lygia/shader-utils", false},
		{"wesl", false},

		{"Random", true},
		{"@scope", true},
		{"@/pkg", true},
		{"has space", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateNpmPackageName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNpmPackageName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
