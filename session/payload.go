package session

import (
	"encoding/base64"
	"encoding/json"

	"github.com/fupbi/followup-shell/internal/apperrors"
)

// Payload is the minimal identity+expiry record embedded in a token.
// Exp is an absolute timestamp in milliseconds since epoch; a payload is
// valid only while Exp is strictly in the future.
type Payload struct {
	Email string `json:"email"`
	Exp   int64  `json:"exp"`
}

// payloadEncoding is URL-safe base64 with padding stripped, so tokens can
// live in cookies and URLs without escaping.
var payloadEncoding = base64.RawURLEncoding

// EncodePayload serializes p to its wire form. Field order is fixed by the
// struct declaration, so the byte sequence is deterministic for a given
// payload and the signature stays stable.
func EncodePayload(p Payload) (string, []byte, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", nil, apperrors.Wrapf(err, "session: encode payload")
	}
	return payloadEncoding.EncodeToString(raw), raw, nil
}

// DecodePayload reverses EncodePayload and returns the exact payload bytes
// the signature was computed over. Any structural problem collapses to
// ErrMalformedToken.
func DecodePayload(encoded string) (Payload, []byte, error) {
	raw, err := payloadEncoding.DecodeString(encoded)
	if err != nil {
		return Payload{}, nil, apperrors.Wrapf(apperrors.ErrMalformedToken, "session: base64 decode")
	}

	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Payload{}, nil, apperrors.Wrapf(apperrors.ErrMalformedToken, "session: json decode")
	}
	if p.Email == "" || p.Exp == 0 {
		return Payload{}, nil, apperrors.Wrapf(apperrors.ErrMalformedToken, "session: missing payload fields")
	}
	return p, raw, nil
}
