package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword produces a salted bcrypt digest of pw at the default
// work factor (cost=10).
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

// CheckPassword reports whether pw matches the stored bcrypt digest.
// Comparison goes through bcrypt's own verifier; raw strings are never
// compared.
func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
