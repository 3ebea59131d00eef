// package store persists the Spotify credential record as string key/value pairs.
//
// The key names and value encodings are load-bearing: existing user sessions
// depend on them surviving upgrades. expires_at is stored as decimal
// milliseconds since the Unix epoch.
package store

import (
	"fmt"
	"strconv"
)

// Keys present in a credential store.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyExpiresAt    = "token_expires_at"
	KeyCodeVerifier = "code_verifier"
)

// Store is a durable string key/value facility for credential material.
//
// Get reports ok=false when the key is absent. No concurrency contract
// beyond last-writer-wins.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Put(key, value string) error
	Delete(key string) error
}

// BatchStore is implemented by stores that can write several keys in one
// atomic operation.
type BatchStore interface {
	PutAll(pairs map[string]string) error
}

// SetTokens writes the access token and its absolute expiry together, in one
// transaction when the backend supports it.
func SetTokens(s Store, accessToken string, expiresAtMS int64) error {
	pairs := map[string]string{
		KeyAccessToken: accessToken,
		KeyExpiresAt:   strconv.FormatInt(expiresAtMS, 10),
	}

	if bs, ok := s.(BatchStore); ok {
		return bs.PutAll(pairs)
	}

	for _, key := range []string{KeyAccessToken, KeyExpiresAt} {
		if err := s.Put(key, pairs[key]); err != nil {
			return err
		}
	}
	return nil
}

// ExpiresAt reads the stored token expiry. ok is false when no expiry is
// stored or the stored value doesn't parse.
func ExpiresAt(s Store) (ms int64, ok bool, err error) {
	raw, ok, err := s.Get(KeyExpiresAt)
	if err != nil || !ok {
		return 0, false, err
	}

	ms, parseErr := strconv.ParseInt(raw, 10, 64)
	if parseErr != nil {
		return 0, false, nil
	}
	return ms, true, nil
}

// Clear removes every credential key. Used by logout.
func Clear(s Store) error {
	for _, key := range []string{KeyAccessToken, KeyRefreshToken, KeyExpiresAt, KeyCodeVerifier} {
		if err := s.Delete(key); err != nil {
			return fmt.Errorf("failed to remove %s: %w", key, err)
		}
	}
	return nil
}
