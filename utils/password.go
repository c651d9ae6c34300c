package utils

import (
	"crypto/sha256"
	"encoding/base64"
)

func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return base64.StdEncoding.EncodeToString(sum[:])
}

func CheckPasswordHash(password, storedHash string) bool {
	return HashPassword(password) == storedHash
}
