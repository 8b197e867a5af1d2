package auth

import (
	"crypto/subtle"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/sha3"

	"github.com/avoelk/pfennig/internal/config"
)

var ErrUnknownPasswordScheme = errors.New("unknown password scheme")

// PasswordHasher turns a plaintext credential into a storable string and
// checks a plaintext against a stored one.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, stored string) bool

	// Deterministic reports whether equal passwords always produce equal
	// stored strings. Deterministic hashers allow credential lookup by
	// (username, hash); salted ones require lookup by username first.
	Deterministic() bool
}

// NewPasswordHasher returns the hasher selected by configuration.
func NewPasswordHasher(cfg config.Auth) (PasswordHasher, error) {
	switch cfg.PasswordScheme {
	case config.PasswordSchemeSHA3, "":
		return SHA3Hasher{}, nil
	case config.PasswordSchemeBcrypt:
		cost := cfg.BcryptCost
		if cost == 0 {
			cost = bcrypt.DefaultCost
		}
		return BcryptHasher{Cost: cost}, nil
	default:
		return nil, ErrUnknownPasswordScheme
	}
}

// SHA3Hasher is the deterministic scheme: a single SHA3-512 digest of the
// UTF-8 password, rendered as 128 lowercase hex characters. No salt, so
// equal passwords always hash identically.
type SHA3Hasher struct{}

func (SHA3Hasher) Hash(password string) (string, error) {
	digest := sha3.Sum512([]byte(password))
	return hex.EncodeToString(digest[:]), nil
}

func (h SHA3Hasher) Verify(password, stored string) bool {
	digest, _ := h.Hash(password)
	return subtle.ConstantTimeCompare([]byte(digest), []byte(stored)) == 1
}

func (SHA3Hasher) Deterministic() bool { return true }

// BcryptHasher is the salted scheme. Stored strings embed the salt and
// cost, so hashing the same password twice yields different strings.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (BcryptHasher) Verify(password, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

func (BcryptHasher) Deterministic() bool { return false }
