package sanitizer

import (
	"reflect"
	"testing"
)

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Modern Loft", "Modern Loft"},
		{"surrounding space", "  Modern Loft  ", "Modern Loft"},
		{"internal runs", "Modern \t  Loft", "Modern Loft"},
		{"newlines", "Modern\nLoft", "Modern Loft"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Jane.Doe@Example.COM "); got != "jane.doe@example.com" {
		t.Errorf("NormalizeEmail = %q", got)
	}
}

func TestNormalizeTags(t *testing.T) {
	in := []string{" Pool ", "GYM", "pool", "", "Washer  Dryer"}
	want := []string{"pool", "gym", "washer dryer"}
	if got := NormalizeTags(in); !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeTags = %v, want %v", got, want)
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"us e164", "+12125551234", "+12125551234"},
		{"us national", "(212) 555-1234", "+12125551234"},
		{"garbage", "not-a-phone", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePhone(tt.input); got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeForComparison(t *testing.T) {
	if NormalizeForComparison(" San  Francisco ") != "san francisco" {
		t.Error("expected folded comparison form")
	}
}
