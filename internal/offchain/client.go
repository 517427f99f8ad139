// Package offchain implements the off-chain client of spec.md §4.5: it
// signs outbound requests, verifies inbound envelopes, resolves
// counterparty base URL + public key, and classifies responses.
package offchain

import (
	"bytes"
	"context"
	"encoding/hex"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/travelrule/engine/internal/envelope"
	"github.com/travelrule/engine/internal/logger"
	"github.com/travelrule/engine/internal/offchainerror"
	"github.com/travelrule/engine/internal/payment"
)

const (
	connectTimeout = 2 * time.Second
	totalTimeout   = 5 * time.Second
	commandPath    = "/v1/command"
)

// CommandResponseFailure is returned by SendRequest when the peer replies
// with status=failure; it carries the full response so callers can
// inspect the embedded OffChainErrors.
type CommandResponseFailure struct {
	Response payment.CommandResponse
}

func (e *CommandResponseFailure) Error() string {
	return "offchain: peer returned a failure response"
}

// Client is the off-chain client: it depends only on an RPC collaborator
// and a Signer; Verifier is a free function since the verifying side
// never holds its own private key.
type Client struct {
	rpc                  RPC
	signer               envelope.Signer
	localParentAccountID string
	httpClient           *http.Client
}

// NewClient builds a Client. localParentAccountID identifies this VASP in
// the X-Verification-Key-Address header and in MyRole's locality check.
func NewClient(rpc RPC, signer envelope.Signer, localParentAccountID string) *Client {
	dialer := &net.Dialer{Timeout: connectTimeout}
	transport := &http.Transport{DialContext: dialer.DialContext}
	return &Client{
		rpc:                  rpc,
		signer:               signer,
		localParentAccountID: localParentAccountID,
		httpClient:           &http.Client{Transport: transport, Timeout: totalTimeout},
	}
}

// SendRequest signs and POSTs request to the counterparty identified by
// the opposite actor's address, verifies the response envelope, and
// returns the decoded CommandResponse. A status=failure response is
// returned alongside a *CommandResponseFailure error; transport failures,
// non-2xx statuses, and envelope-verification failures are wrapped with
// github.com/pkg/errors for stack context.
func (c *Client) SendRequest(ctx context.Context, localRole payment.Role, req payment.CommandRequest) (payment.CommandResponse, error) {
	counterpartyAddress := req.Command.Payment.Actor(localRole.Opposite()).Address

	baseURL, verificationKey, err := c.rpc.ResolveCounterparty(ctx, counterpartyAddress)
	if err != nil {
		return payment.CommandResponse{}, errors.Wrap(err, "offchain: resolve counterparty")
	}

	payloadBytes, err := payment.EncodeCommandRequest(req)
	if err != nil {
		return payment.CommandResponse{}, errors.Wrap(err, "offchain: encode request")
	}
	envBytes, err := c.signer.Sign(payloadBytes)
	if err != nil {
		return payment.CommandResponse{}, errors.Wrap(err, "offchain: sign request")
	}

	ctx, cancel := context.WithTimeout(ctx, totalTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+commandPath, bytes.NewReader(envBytes))
	if err != nil {
		return payment.CommandResponse{}, errors.Wrap(err, "offchain: build request")
	}
	httpReq.Header.Set("X-Request-ID", newHexID())
	httpReq.Header.Set("X-Verification-Key-Address", c.localParentAccountID)

	logger.For(logger.ComponentOffchain).Info("sending command request",
		zap.String("reference_id", req.Command.Payment.ReferenceID),
	)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return payment.CommandResponse{}, errors.Wrap(err, "offchain: transport error")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return payment.CommandResponse{}, errors.Wrap(err, "offchain: read response body")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return payment.CommandResponse{}, errors.Errorf("offchain: unexpected HTTP status %d", resp.StatusCode)
	}

	verifiedPayload, err := envelope.VerifyEnvelope(verificationKey, respBody)
	if err != nil {
		return payment.CommandResponse{}, errors.Wrap(err, "offchain: verify response envelope")
	}

	response, err := payment.DecodeCommandResponse(verifiedPayload)
	if err != nil {
		return payment.CommandResponse{}, errors.Wrap(err, "offchain: decode response")
	}
	if response.Status == payment.ResponseFailure {
		return response, &CommandResponseFailure{Response: response}
	}
	return response, nil
}

// VerifyRequest resolves signerAddress's verification key via RPC,
// verifies env, and decodes the enclosed CommandRequest.
func (c *Client) VerifyRequest(ctx context.Context, signerAddress string, env []byte) (payment.CommandRequest, error) {
	key, err := c.rpc.ResolveVerificationKey(ctx, signerAddress)
	if err != nil {
		return payment.CommandRequest{}, offchainerror.NewProtocolError(offchainerror.CodeInvalidRequest, "could not resolve signer verification key: "+err.Error())
	}
	payload, err := envelope.VerifyEnvelope(key, env)
	if err != nil {
		return payment.CommandRequest{}, offchainerror.NewProtocolError(offchainerror.CodeInvalidRequest, "envelope verification failed: "+err.Error())
	}
	req, err := payment.DecodeCommandRequest(payload)
	if err != nil {
		return payment.CommandRequest{}, offchainerror.NewProtocolError(offchainerror.CodeInvalidRequest, "malformed command request: "+err.Error())
	}
	return req, nil
}

// MyRole returns SENDER if p.Sender.Address resolves to the local parent
// VASP, RECEIVER if p.Receiver.Address does. An address resolves locally
// iff it equals the local parent VASP's account id directly, or its
// RPC-looked-up parent account does.
func (c *Client) MyRole(ctx context.Context, p payment.Payment) (payment.Role, error) {
	if c.isLocal(ctx, p.Sender.Address) {
		return payment.RoleSender, nil
	}
	if c.isLocal(ctx, p.Receiver.Address) {
		return payment.RoleReceiver, nil
	}
	return "", offchainerror.NewCommandError(offchainerror.CodeInvalidRequest, "neither sender nor receiver address resolves to this VASP")
}

func (c *Client) isLocal(ctx context.Context, accountAddress string) bool {
	if accountAddress == c.localParentAccountID {
		return true
	}
	parent, err := c.rpc.AccountParent(ctx, accountAddress)
	if err != nil {
		return false
	}
	return parent == c.localParentAccountID
}

func newHexID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}
