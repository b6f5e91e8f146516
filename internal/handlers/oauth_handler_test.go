package handlers

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestAudienceContains(t *testing.T) {
	audience := jwt.ClaimStrings{"com.example.readingnest", "com.example.other"}

	if !audienceContains(audience, "com.example.readingnest") {
		t.Fatal("expected audience match")
	}
	if audienceContains(audience, "com.example.missing") {
		t.Fatal("expected no match for absent client id")
	}
	if audienceContains(jwt.ClaimStrings{}, "com.example.readingnest") {
		t.Fatal("expected no match for empty audience")
	}
}
