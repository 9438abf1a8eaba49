package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashPassword derives a hex digest from the password and the
// application secret. The digest is deterministic so it stays
// comparable with the hashes already stored for existing accounts.
// Note: this is weaker than a per-user-salted KDF such as bcrypt;
// existing credential rows pin the scheme.
func HashPassword(password, secret string) string {
	sum := sha256.Sum256([]byte(password + secret))
	return hex.EncodeToString(sum[:])
}

// CheckPasswordHash compares a candidate password against a stored
// digest in constant time.
func CheckPasswordHash(password, secret, hash string) bool {
	candidate := HashPassword(password, secret)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(hash)) == 1
}
