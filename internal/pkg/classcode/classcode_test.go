package classcode

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := Generate()
		if len(code) != Length {
			t.Fatalf("Generate() length = %d, want %d", len(code), Length)
		}
		for _, c := range code {
			if !strings.ContainsRune(Alphabet, c) {
				t.Fatalf("Generate() = %q, contains %q outside alphabet", code, c)
			}
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercase", in: "abc123", want: "ABC123"},
		{name: "mixed case", in: "aBc123", want: "ABC123"},
		{name: "surrounding space", in: "  ABC123 ", want: "ABC123"},
		{name: "already normal", in: "XYZ789", want: "XYZ789"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
