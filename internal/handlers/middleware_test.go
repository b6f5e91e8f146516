package handlers

import (
	"net/http/httptest"
	"testing"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"valid bearer", "Bearer abc123", "abc123"},
		{"lowercase scheme", "bearer abc123", "abc123"},
		{"missing header", "", ""},
		{"wrong scheme", "Basic abc123", ""},
		{"scheme only", "Bearer", ""},
		{"extra whitespace", "Bearer   abc123", "abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			if got := bearerToken(request); got != tt.want {
				t.Errorf("bearerToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQueryLimit(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want int
	}{
		{"default when absent", "/words", defaultListLimit},
		{"explicit limit", "/words?limit=10", 10},
		{"zero falls back", "/words?limit=0", defaultListLimit},
		{"negative falls back", "/words?limit=-5", defaultListLimit},
		{"over cap falls back", "/words?limit=9999", defaultListLimit},
		{"garbage falls back", "/words?limit=ten", defaultListLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", tt.url, nil)
			if got := queryLimit(request); got != tt.want {
				t.Errorf("queryLimit() = %d, want %d", got, tt.want)
			}
		})
	}
}
