package session_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fupbi/followup-shell/internal/apperrors"
	"github.com/fupbi/followup-shell/session"
)

const testSecret = "test-secret"

func TestSignerSignAndVerify(t *testing.T) {
	signer := session.NewSigner()
	payload := []byte(`{"email":"a@b.c","exp":123}`)

	sig, err := signer.Sign(payload, testSecret)
	require.NoError(t, err)
	require.Regexp(t, "^[0-9a-f]{64}$", sig)

	ok, err := signer.Verify(payload, testSecret, sig)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestSignerIsDeterministic(t *testing.T) {
	signer := session.NewSigner()
	payload := []byte(`{"email":"a@b.c","exp":123}`)

	first, err := signer.Sign(payload, testSecret)
	require.NoError(t, err)
	second, err := signer.Sign(payload, testSecret)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestSignerRejectsTampering(t *testing.T) {
	signer := session.NewSigner()
	payload := []byte(`{"email":"a@b.c","exp":123}`)
	sig, err := signer.Sign(payload, testSecret)
	require.NoError(t, err)

	t.Run("any flipped signature character fails", func(t *testing.T) {
		for i := range sig {
			tampered := []byte(sig)
			tampered[i] ^= 0x01
			ok, err := signer.Verify(payload, testSecret, string(tampered))
			require.NoError(t, err)
			require.False(t, ok, "flipped signature byte %d still verified", i)
		}
	})

	t.Run("any flipped payload bit fails", func(t *testing.T) {
		for i := range payload {
			tampered := append([]byte(nil), payload...)
			tampered[i] ^= 0x01
			ok, err := signer.Verify(tampered, testSecret, sig)
			require.NoError(t, err)
			require.False(t, ok, "flipped payload byte %d still verified", i)
		}
	})

	t.Run("truncated signature fails", func(t *testing.T) {
		ok, err := signer.Verify(payload, testSecret, sig[:len(sig)-2])
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("different secret fails", func(t *testing.T) {
		ok, err := signer.Verify(payload, "other-secret", sig)
		require.NoError(t, err)
		require.False(t, ok)
	})
}

func TestSignerMissingSecret(t *testing.T) {
	signer := session.NewSigner()
	payload := []byte("payload")

	_, err := signer.Sign(payload, "")
	require.ErrorIs(t, err, apperrors.ErrMissingSecret)

	_, err = signer.Verify(payload, "", "deadbeef")
	require.ErrorIs(t, err, apperrors.ErrMissingSecret)
}

func TestSignerKeyMemoSurvivesSecretChanges(t *testing.T) {
	// The memo holds one entry; alternating secrets must still produce
	// correct signatures on every call.
	signer := session.NewSigner()
	payload := []byte("payload")

	sigA, err := signer.Sign(payload, "secret-a")
	require.NoError(t, err)
	sigB, err := signer.Sign(payload, "secret-b")
	require.NoError(t, err)
	require.NotEqual(t, sigA, sigB)

	ok, err := signer.Verify(payload, "secret-a", sigA)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = signer.Verify(payload, "secret-b", sigB)
	require.NoError(t, err)
	require.True(t, ok)
}
