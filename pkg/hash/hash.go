// Package hash provides one-way password digests.
package hash

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns a salted bcrypt digest of password.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash reports whether password matches digest.
// Besides bcrypt it accepts unsalted hex SHA-256 digests written by older user files;
// those are compared in constant time.
func CheckPasswordHash(password, digest string) bool {
	if isLegacySHA256(digest) {
		sum := sha256.Sum256([]byte(password))
		want := hex.EncodeToString(sum[:])
		return subtle.ConstantTimeCompare([]byte(want), []byte(strings.ToLower(digest))) == 1
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

func isLegacySHA256(digest string) bool {
	if len(digest) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(digest)
	return err == nil
}
