// Package auth covers credentials and session identity: one-way password
// hashing and the signed tokens that carry a logged-in user between
// requests.
package auth

import "golang.org/x/crypto/bcrypt"

// BcryptCost is the cost factor for bcrypt password hashing.
const BcryptCost = 12

// HashPassword returns the bcrypt hash of a plaintext password. Input that
// is already a bcrypt hash passes through unchanged, so saving a record
// whose password field was never rewritten cannot double-hash it.
func HashPassword(plaintext string) (string, error) {
	if IsHashed(plaintext) {
		return plaintext, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// IsHashed reports whether s is already in bcrypt hash format.
func IsHashed(s string) bool {
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}

// CheckPassword reports whether plaintext hashes to hash under the same
// scheme. A malformed hash is never an error, just a failed check.
func CheckPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
