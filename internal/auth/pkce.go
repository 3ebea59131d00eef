package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

const (
	verifierLength   = 64
	verifierAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// NewVerifier returns a PKCE code verifier: 64 characters drawn uniformly
// from [A-Za-z0-9] using a cryptographic RNG.
//
// Bytes >= 248 are rejected and resampled; 248 is the largest multiple of 62
// below 256, so the modulo below stays uniform.
func NewVerifier() (string, error) {
	out := make([]byte, 0, verifierLength)
	buf := make([]byte, verifierLength)

	for len(out) < verifierLength {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		for _, b := range buf {
			if b >= 248 {
				continue
			}
			out = append(out, verifierAlphabet[int(b)%len(verifierAlphabet)])
			if len(out) == verifierLength {
				break
			}
		}
	}

	return string(out), nil
}

// Challenge derives the S256 code challenge for a verifier: the unpadded
// URL-safe base64 encoding of its SHA-256 digest.
func Challenge(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
