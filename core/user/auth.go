package user

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/edunexus/core/record"
)

// Verifier is the authentication seam: it decides how submitted secrets are
// stored and checked, so that a hardened implementation can replace the
// legacy one without touching any caller.
type Verifier interface {
	// Hash returns the storable form of a plaintext secret.
	Hash(secret string) (string, error)
	// Verify checks a submitted secret against a user's stored one.
	Verify(usr record.User, secret string) error
}

// PlainVerifier stores and compares passwords in plain text. This is the
// legacy storage format and the default; documents in the field hold
// plaintext passwords.
type PlainVerifier struct{}

var _ Verifier = (*PlainVerifier)(nil)

func (PlainVerifier) Hash(secret string) (string, error) { return secret, nil }

func (PlainVerifier) Verify(usr record.User, secret string) error {
	if usr.Password == "" || usr.Password != secret {
		return ErrAuthenticationFailed
	}
	return nil
}

// BcryptVerifier stores bcrypt hashes instead. Opt-in via config; documents
// persisted with plaintext passwords must be re-provisioned before enabling it.
type BcryptVerifier struct{}

var _ Verifier = (*BcryptVerifier)(nil)

func (BcryptVerifier) Hash(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (BcryptVerifier) Verify(usr record.User, secret string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(usr.Password), []byte(secret)); err != nil {
		return ErrAuthenticationFailed
	}
	return nil
}
