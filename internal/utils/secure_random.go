package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateSecurePassword returns a random URL-safe string built from
// lengthInBytes random bytes. 12 bytes give a 16 character password.
func GenerateSecurePassword(lengthInBytes int) (string, error) {
	if lengthInBytes < 8 {
		return "", fmt.Errorf("lengthInBytes must be at least 8, got %d", lengthInBytes)
	}
	b := make([]byte, lengthInBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
