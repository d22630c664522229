package utils

import "testing"

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	if hash == "secret123" {
		t.Fatal("hash must not equal the plain password")
	}
	if !CheckPasswordHash("secret123", hash) {
		t.Error("correct password should verify")
	}
	if CheckPasswordHash("wrongpass", hash) {
		t.Error("wrong password should not verify")
	}
}
