// Package envelope is the default, swappable implementation of the
// out-of-scope "cryptographic envelope serialization" collaborator
// spec.md §1 names: sign(bytes) -> bytes, verify(bytes) -> bytes. The
// envelope carries its payload inline as the middle segment; it is not a
// detached-payload form. Signing goes through the Signer/RawSigner
// interfaces, so a KMS-backed or HSM-backed signer can be swapped in
// without touching the protocol engine; verification is done by the
// VerifyEnvelope function, which internal/offchain calls directly.
package envelope

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Signer produces a signed envelope wrapping payload.
type Signer interface {
	Sign(payload []byte) ([]byte, error)
}

// Verifier recovers the original payload from an envelope, authenticating
// it against the given public key.
type Verifier interface {
	Verify(publicKey ed25519.PublicKey, envelope []byte) ([]byte, error)
}

// RawSigner produces a bare detached Ed25519 signature over payload, for
// document-level signature fields (Payment.RecipientSignature) that are
// distinct from the request/response envelope and carry no header.
type RawSigner interface {
	SignRaw(payload []byte) ([]byte, error)
}

// SignRaw implements RawSigner.
func (j JWS) SignRaw(payload []byte) ([]byte, error) {
	if len(j.PrivateKey) != ed25519.PrivateKeySize {
		return nil, errors.New("envelope: invalid private key size")
	}
	return ed25519.Sign(j.PrivateKey, payload), nil
}

type header struct {
	Alg string `json:"alg"`
	Typ string `json:"typ"`
}

var envelopeHeader = header{Alg: "EdDSA", Typ: "OFFC-ENVELOPE"}

// JWS is a compact, three-segment "header.payload.signature" envelope in
// the shape of a JWS compact serialization (RFC 7515 §3.1), signed with
// Ed25519 via golang-jwt's SigningMethodEdDSA. Unlike a bare JWS, callers
// never construct jwt.Claims — Sign/Verify operate directly on the
// signing string golang-jwt already knows how to produce and check, which
// is what lets an arbitrary byte payload (our canonical command JSON)
// ride inside it undisturbed.
type JWS struct {
	PrivateKey ed25519.PrivateKey
}

var signingMethod = jwt.SigningMethodEdDSA

// Sign implements Signer.
func (j JWS) Sign(payload []byte) ([]byte, error) {
	headerJSON, err := json.Marshal(envelopeHeader)
	if err != nil {
		return nil, errors.Wrap(err, "envelope: encode header")
	}
	signingString := b64(headerJSON) + "." + b64(payload)
	sig, err := signingMethod.Sign(signingString, j.PrivateKey)
	if err != nil {
		return nil, errors.Wrap(err, "envelope: sign")
	}
	return []byte(signingString + "." + b64(sig)), nil
}

// VerifyEnvelope recovers the payload from env, authenticating it against
// publicKey. It is a free function (not a JWS method) because the
// verifying side never holds the signer's private key — only its public
// key, resolved at call time via the RPC collaborator.
func VerifyEnvelope(publicKey ed25519.PublicKey, env []byte) ([]byte, error) {
	parts := strings.Split(string(env), ".")
	if len(parts) != 3 {
		return nil, errors.New("envelope: malformed envelope, expected 3 segments")
	}
	signingString := parts[0] + "." + parts[1]
	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, errors.Wrap(err, "envelope: decode signature")
	}
	if err := signingMethod.Verify(signingString, sig, publicKey); err != nil {
		return nil, errors.Wrap(err, "envelope: signature verification failed")
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, errors.Wrap(err, "envelope: decode payload")
	}
	return payload, nil
}

// DefaultVerifier adapts VerifyEnvelope to the Verifier interface.
type DefaultVerifier struct{}

func (DefaultVerifier) Verify(publicKey ed25519.PublicKey, env []byte) ([]byte, error) {
	return VerifyEnvelope(publicKey, env)
}

func b64(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}
