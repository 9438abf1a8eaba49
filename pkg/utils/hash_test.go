package utils

import "testing"

func TestHashPassword(t *testing.T) {
	hash := HashPassword("hunter22", "game-review-salt")

	if hash == "hunter22" {
		t.Fatal("hash equals the plaintext")
	}
	if len(hash) != 64 {
		t.Fatalf("hex digest length = %d, want 64", len(hash))
	}

	// Deterministic: same inputs, same digest.
	if again := HashPassword("hunter22", "game-review-salt"); again != hash {
		t.Fatalf("hash not deterministic: %s vs %s", hash, again)
	}

	// The secret keys the digest.
	if other := HashPassword("hunter22", "another-secret"); other == hash {
		t.Fatal("different secrets produced the same digest")
	}
}

func TestCheckPasswordHash(t *testing.T) {
	hash := HashPassword("hunter22", "game-review-salt")

	if !CheckPasswordHash("hunter22", "game-review-salt", hash) {
		t.Fatal("correct password rejected")
	}
	if CheckPasswordHash("hunter23", "game-review-salt", hash) {
		t.Fatal("wrong password accepted")
	}
	if CheckPasswordHash("hunter22", "another-secret", hash) {
		t.Fatal("wrong secret accepted")
	}
}
