package validation

import "testing"

func TestClassCodePattern(t *testing.T) {
	tests := []struct {
		name string
		code string
		want bool
	}{
		{name: "valid letters and digits", code: "ABC123", want: true},
		{name: "valid all letters", code: "QWERTY", want: true},
		{name: "valid all digits", code: "000000", want: true},
		{name: "lowercase rejected", code: "abc123", want: false},
		{name: "too short", code: "ABC12", want: false},
		{name: "too long", code: "ABC1234", want: false},
		{name: "symbol rejected", code: "ABC-12", want: false},
		{name: "empty", code: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompiledPatterns.ClassCode.MatchString(tt.code); got != tt.want {
				t.Errorf("ClassCode.MatchString(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestStringValidation(t *testing.T) {
	tests := []struct {
		name string
		v    *StringValidation
		want bool
	}{
		{name: "required empty", v: NewStringValidation(""), want: false},
		{name: "optional empty", v: NewStringValidation("").WithRequired(false), want: true},
		{name: "within lengths", v: NewStringValidation("Algebra I").WithMinLength(NameMinLength).WithMaxLength(NameMaxLength), want: true},
		{name: "below min", v: NewStringValidation("A").WithMinLength(NameMinLength), want: false},
		{name: "pattern match", v: NewStringValidation("ZZ99AA").WithPattern(CompiledPatterns.ClassCode), want: true},
		{name: "pattern mismatch", v: NewStringValidation("nope").WithPattern(CompiledPatterns.ClassCode), want: false},
		{name: "email match", v: NewStringValidation("student@school.edu").WithPattern(CompiledPatterns.Email), want: true},
		{name: "email mismatch", v: NewStringValidation("not-an-email").WithPattern(CompiledPatterns.Email), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Validate(); got != tt.want {
				t.Errorf("Validate() = %v, want %v", got, tt.want)
			}
		})
	}
}
