package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sync/atomic"

	"github.com/fupbi/followup-shell/internal/apperrors"
)

// Signer computes and checks HMAC-SHA-256 signatures over payload bytes.
//
// It keeps a one-entry memo of the most recently used secret's key bytes so
// repeated signing does not re-derive key material per call. The memo is a
// last-write-wins atomic slot: concurrent use with different secrets just
// re-derives, which is harmless.
type Signer struct {
	cached atomic.Pointer[signingKey]
}

type signingKey struct {
	secret string
	key    []byte
}

func NewSigner() *Signer {
	return &Signer{}
}

func (s *Signer) keyFor(secret string) []byte {
	if k := s.cached.Load(); k != nil && k.secret == secret {
		return k.key
	}
	k := &signingKey{secret: secret, key: []byte(secret)}
	s.cached.Store(k)
	return k.key
}

// Sign returns the lowercase-hex HMAC-SHA-256 of payloadBytes keyed by
// secret. An empty secret is a fatal configuration error.
func (s *Signer) Sign(payloadBytes []byte, secret string) (string, error) {
	if secret == "" {
		return "", apperrors.ErrMissingSecret
	}
	mac := hmac.New(sha256.New, s.keyFor(secret))
	mac.Write(payloadBytes)
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// Verify recomputes the expected signature and compares in constant time.
// A length mismatch fails without further comparison.
func (s *Signer) Verify(payloadBytes []byte, secret, signatureHex string) (bool, error) {
	expected, err := s.Sign(payloadBytes, secret)
	if err != nil {
		return false, err
	}
	return hmac.Equal([]byte(expected), []byte(signatureHex)), nil
}
