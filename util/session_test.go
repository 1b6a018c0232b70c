package util

import "testing"

func TestSessionLifecycle(t *testing.T) {
	token, err := CreateSession("u-alice")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if got := GetUserIDFromSession(token); got != "u-alice" {
		t.Fatalf("expected u-alice, got %q", got)
	}

	DeleteSession(token)
	if got := GetUserIDFromSession(token); got != "" {
		t.Fatalf("deleted session still resolves: %q", got)
	}
}

func TestTokensAreUnique(t *testing.T) {
	a, _ := GenerateSessionToken()
	b, _ := GenerateSessionToken()
	if a == b {
		t.Fatal("two generated tokens collided")
	}
}
