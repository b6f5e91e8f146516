package validation

import (
	"testing"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid email", email: "parent@example.com", wantErr: false},
		{name: "valid email with plus", email: "parent+kids@example.co.uk", wantErr: false},
		{name: "empty email", email: "", wantErr: true},
		{name: "whitespace only", email: "   ", wantErr: true},
		{name: "missing at sign", email: "parentexample.com", wantErr: true},
		{name: "missing domain", email: "parent@", wantErr: true},
		{name: "missing tld", email: "parent@example", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "valid password", password: "longenough", wantErr: false},
		{name: "exactly eight chars", password: "12345678", wantErr: false},
		{name: "empty password", password: "", wantErr: true},
		{name: "too short", password: "short", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid name", input: "Sam", wantErr: false},
		{name: "empty name", input: "", wantErr: true},
		{name: "whitespace only", input: "  ", wantErr: true},
		{name: "single character", input: "S", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateWordText(t *testing.T) {
	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}

	tests := []struct {
		name    string
		word    string
		wantErr bool
	}{
		{name: "valid word", word: "butterfly", wantErr: false},
		{name: "empty word", word: "", wantErr: true},
		{name: "whitespace only", word: "   ", wantErr: true},
		{name: "too long", word: string(long), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWordText(tt.word)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWordText() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateTrim(t *testing.T) {
	ptr := func(f float64) *float64 { return &f }

	tests := []struct {
		name    string
		start   *float64
		end     *float64
		wantErr bool
	}{
		{name: "no offsets", start: nil, end: nil, wantErr: false},
		{name: "start only", start: ptr(1.0), end: nil, wantErr: false},
		{name: "ordered offsets", start: ptr(1.0), end: ptr(4.5), wantErr: false},
		{name: "negative start", start: ptr(-0.5), end: nil, wantErr: true},
		{name: "negative end", start: nil, end: ptr(-1.0), wantErr: true},
		{name: "end before start", start: ptr(3.0), end: ptr(2.0), wantErr: true},
		{name: "end equals start", start: ptr(3.0), end: ptr(3.0), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTrim(tt.start, tt.end)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTrim() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
