package utility

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

const (
	passwordSaltBytes = 16
	passwordKeyBytes  = 32
	passwordIterCount = 100000
)

// GenerateSalt sinh salt ngẫu nhiên (hex) cho việc hash password.
func GenerateSalt() (string, error) {
	salt := make([]byte, passwordSaltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	return hex.EncodeToString(salt), nil
}

// HashPassword hash password với PBKDF2-SHA256 (100000 vòng lặp), trả về chuỗi hex.
func HashPassword(password string, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), passwordIterCount, passwordKeyBytes, sha256.New)
	return hex.EncodeToString(key)
}

// ComparePassword so sánh password với hash đã lưu (constant time).
func ComparePassword(password string, salt string, hash string) bool {
	computed := HashPassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}
