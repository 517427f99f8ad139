package envelope_test

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelrule/engine/internal/envelope"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	signer := envelope.JWS{PrivateKey: priv}
	payload := []byte(`{"hello":"world"}`)

	env, err := signer.Sign(payload)
	require.NoError(t, err)

	got, err := envelope.VerifyEnvelope(pub, env)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	otherPub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	signer := envelope.JWS{PrivateKey: priv}
	env, err := signer.Sign([]byte("payload"))
	require.NoError(t, err)

	_, err = envelope.VerifyEnvelope(otherPub, env)
	assert.Error(t, err)
}

func TestVerifyRejectsMalformedEnvelope(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	_, err = envelope.VerifyEnvelope(pub, []byte("not-an-envelope"))
	assert.Error(t, err)
}
