package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword bcrypt-hashes a plain credential with the given cost.
// Seeded users store only the resulting hash.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword compares a stored bcrypt hash against a plain credential.
// It returns false for any mismatch or malformed hash.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
