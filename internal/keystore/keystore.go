// Package keystore retrieves the Ed25519 signing key the engine uses to
// sign outbound envelopes and recipient_signature: an ARN-addressed
// Secrets Manager entry with a direct-env-var fallback for local runs.
package keystore

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/travelrule/engine/internal/logger"
)

// SigningKeyArnEnvVar names the environment variable holding the Secrets
// Manager ARN for the VASP's Ed25519 signing key.
const SigningKeyArnEnvVar = "VASP_SIGNING_KEY_SECRET_ARN"

// SigningKeyFallbackEnvVar names the environment variable holding the
// hex-encoded private key directly, used when no ARN is configured (local
// development and tests).
const SigningKeyFallbackEnvVar = "VASP_SIGNING_KEY_HEX"

// Client wraps an AWS Secrets Manager client scoped to signing-key
// retrieval.
type Client struct {
	svc *secretsmanager.Client
}

// NewClient builds a Client using the default AWS SDK config chain
// (environment variables, shared config, IAM role).
func NewClient(ctx context.Context) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("keystore: unable to load AWS SDK config: %w", err)
	}
	return &Client{svc: secretsmanager.NewFromConfig(cfg)}, nil
}

// SigningKey resolves the VASP's Ed25519 private key: Secrets Manager
// first if SigningKeyArnEnvVar is set, falling back to
// SigningKeyFallbackEnvVar (a hex-encoded 64-byte seed+public key) for
// local runs and tests.
func (c *Client) SigningKey(ctx context.Context) (ed25519.PrivateKey, error) {
	log := logger.For(logger.ComponentKeystore)
	secretArn := os.Getenv(SigningKeyArnEnvVar)

	if secretArn != "" {
		input := &secretsmanager.GetSecretValueInput{SecretId: aws.String(secretArn)}
		result, err := c.svc.GetSecretValue(ctx, input)
		if err == nil && result.SecretString != nil && *result.SecretString != "" {
			key, parseErr := parseHexPrivateKey(*result.SecretString)
			if parseErr == nil {
				log.Info("loaded signing key from Secrets Manager")
				return key, nil
			}
			log.Warn("signing key secret was not a valid hex Ed25519 key, falling back")
		} else {
			log.Warn("failed to fetch signing key from Secrets Manager, falling back")
		}
	}

	fallback := os.Getenv(SigningKeyFallbackEnvVar)
	if fallback == "" {
		return nil, fmt.Errorf("keystore: no signing key available via %s or %s", SigningKeyArnEnvVar, SigningKeyFallbackEnvVar)
	}
	key, err := parseHexPrivateKey(fallback)
	if err != nil {
		return nil, fmt.Errorf("keystore: %s is not a valid hex Ed25519 private key: %w", SigningKeyFallbackEnvVar, err)
	}
	log.Info("loaded signing key from environment fallback")
	return key, nil
}

func parseHexPrivateKey(s string) (ed25519.PrivateKey, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("expected %d bytes, got %d", ed25519.PrivateKeySize, len(raw))
	}
	return ed25519.PrivateKey(raw), nil
}
