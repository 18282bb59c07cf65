package auth

import "golang.org/x/crypto/bcrypt"

// BcryptCost is the fixed bcrypt cost factor for password hashing.
const BcryptCost = 10

// HashPassword returns the bcrypt hash of a plaintext password.
// The plaintext is never persisted; only the hash crosses into the repo layer.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
