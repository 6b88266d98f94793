package auth

import (
	"strings"
	"testing"
	"time"
)

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	ts, err := NewTokenService("test-secret-at-least-16-chars!!")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return ts
}

func TestNewTokenService_ShortSecret(t *testing.T) {
	if _, err := NewTokenService("short"); err == nil {
		t.Fatal("NewTokenService() should reject secrets shorter than 16 chars")
	}
}

func TestValidate_RoundTrip(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.Generate("user-abc-123")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Errorf("token %q doesn't look like a JWT", token)
	}

	got, err := ts.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got != "user-abc-123" {
		t.Errorf("Validate() userID = %q, want %q", got, "user-abc-123")
	}
}

func TestValidate_ExpiredToken(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.GenerateWithDuration("user-123", -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateWithDuration() error = %v", err)
	}

	if _, err := ts.Validate(token); err == nil {
		t.Fatal("Validate() should reject an expired token")
	}
}

func TestValidate_TamperedToken(t *testing.T) {
	ts := newTestTokenService(t)

	token, _ := ts.Generate("user-123")

	// flip the last signature character
	last := token[len(token)-1]
	flipped := byte('A')
	if last == 'A' {
		flipped = 'B'
	}
	tampered := token[:len(token)-1] + string(flipped)

	if _, err := ts.Validate(tampered); err == nil {
		t.Fatal("Validate() should reject a tampered token")
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	ts := newTestTokenService(t)
	token, _ := ts.Generate("user-123")

	other, err := NewTokenService("another-secret-entirely!!")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	if _, err := other.Validate(token); err == nil {
		t.Fatal("Validate() should reject a token signed with a different secret")
	}
}

func TestValidate_Garbage(t *testing.T) {
	ts := newTestTokenService(t)

	for _, input := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := ts.Validate(input); err == nil {
			t.Errorf("Validate(%q) should error", input)
		}
	}
}

func TestSessionLifetime_ThirtyDays(t *testing.T) {
	if SessionLifetime != 30*24*time.Hour {
		t.Errorf("SessionLifetime = %v, want 30 days", SessionLifetime)
	}
}
