package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
)

// KeySize is the signing key length in bytes, matching the SHA-512 block
// size used by HS512.
const KeySize = 64

var ErrEmptyKey = errors.New("signing key must not be empty")

// GenerateKey produces a fresh random HMAC-SHA-512 signing key. A failure
// here is fatal for startup: the server must not serve requests without a
// usable key.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate signing key: %w", err)
	}
	return key, nil
}

// LoadOrGenerateKey returns the configured hex-encoded key, or a fresh
// ephemeral one when the configuration is empty. Ephemeral keys die with
// the process and take all outstanding tokens with them.
func LoadOrGenerateKey(configured string) (key []byte, ephemeral bool, err error) {
	if configured == "" {
		key, err = GenerateKey()
		return key, true, err
	}

	key, err = hex.DecodeString(configured)
	if err != nil {
		return nil, false, fmt.Errorf("invalid AUTH_SIGNING_KEY: %w", err)
	}
	if len(key) == 0 {
		return nil, false, ErrEmptyKey
	}
	return key, false, nil
}
