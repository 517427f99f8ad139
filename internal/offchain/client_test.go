package offchain_test

import (
	"context"
	"crypto/ed25519"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelrule/engine/internal/envelope"
	"github.com/travelrule/engine/internal/offchain"
	"github.com/travelrule/engine/internal/payment"
)

// stubRPC is a minimal hand-authored test double for this package's tests.
type stubRPC struct {
	baseURL         string
	verificationKey ed25519.PublicKey
	parents         map[string]string
}

func (s *stubRPC) ResolveCounterparty(ctx context.Context, accountAddress string) (string, ed25519.PublicKey, error) {
	return s.baseURL, s.verificationKey, nil
}

func (s *stubRPC) ResolveVerificationKey(ctx context.Context, accountAddress string) (ed25519.PublicKey, error) {
	return s.verificationKey, nil
}

func (s *stubRPC) AccountParent(ctx context.Context, accountAddress string) (string, error) {
	return s.parents[accountAddress], nil
}

func (s *stubRPC) SubmitTransaction(ctx context.Context, p payment.Payment) error {
	return nil
}

func testPayment() payment.Payment {
	return payment.Payment{
		ReferenceID: "ref-1",
		Sender:      payment.PaymentActor{Address: "vasp1$alice", Status: payment.StatusNeedsKycData},
		Receiver:    payment.PaymentActor{Address: "vasp2$bob", Status: payment.StatusNone},
		Action:      payment.NewPaymentAction(100, "USD", 1),
	}
}

func TestSendRequestRoundTrip(t *testing.T) {
	serverPub, serverPriv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	clientPub, clientPriv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	serverSigner := envelope.JWS{PrivateKey: serverPriv}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/command", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		assert.Equal(t, "vasp1", r.Header.Get("X-Verification-Key-Address"))

		resp := payment.NewSuccessResponse(nil)
		body, err := payment.EncodeCommandResponse(resp)
		require.NoError(t, err)
		env, err := serverSigner.Sign(body)
		require.NoError(t, err)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(env)
	}))
	defer srv.Close()

	rpc := &stubRPC{baseURL: srv.URL, verificationKey: serverPub}
	clientSigner := envelope.JWS{PrivateKey: clientPriv}
	_ = clientPub
	client := offchain.NewClient(rpc, clientSigner, "vasp1")

	p := testPayment()
	req := payment.NewCommandRequest("cid-1", payment.NewCommand(p))

	resp, err := client.SendRequest(context.Background(), payment.RoleSender, req)
	require.NoError(t, err)
	assert.Equal(t, payment.ResponseSuccess, resp.Status)
}

func TestSendRequestReturnsFailureResponse(t *testing.T) {
	serverPub, serverPriv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	_, clientPriv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	serverSigner := envelope.JWS{PrivateKey: serverPriv}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := payment.NewFailureResponse(nil, payment.OffChainError{
			Type: payment.ErrorTypeCommand,
			Code: "rejected",
		})
		body, err := payment.EncodeCommandResponse(resp)
		require.NoError(t, err)
		env, err := serverSigner.Sign(body)
		require.NoError(t, err)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(env)
	}))
	defer srv.Close()

	rpc := &stubRPC{baseURL: srv.URL, verificationKey: serverPub}
	client := offchain.NewClient(rpc, envelope.JWS{PrivateKey: clientPriv}, "vasp1")

	p := testPayment()
	req := payment.NewCommandRequest("cid-1", payment.NewCommand(p))

	resp, err := client.SendRequest(context.Background(), payment.RoleSender, req)
	require.Error(t, err)
	var failure *offchain.CommandResponseFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, payment.ResponseFailure, resp.Status)
}

func TestVerifyRequestRoundTrip(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	signer := envelope.JWS{PrivateKey: priv}
	p := testPayment()
	req := payment.NewCommandRequest("cid-1", payment.NewCommand(p))
	body, err := payment.EncodeCommandRequest(req)
	require.NoError(t, err)
	env, err := signer.Sign(body)
	require.NoError(t, err)

	rpc := &stubRPC{verificationKey: pub}
	client := offchain.NewClient(rpc, signer, "vasp1")

	got, err := client.VerifyRequest(context.Background(), "vasp2$bob", env)
	require.NoError(t, err)
	assert.Equal(t, "ref-1", got.Command.Payment.ReferenceID)
}

func TestMyRoleResolvesDirectAndViaParent(t *testing.T) {
	rpc := &stubRPC{parents: map[string]string{
		"vasp1$alice": "vasp1",
		"vasp2$bob":   "vasp2",
	}}
	client := offchain.NewClient(rpc, envelope.JWS{}, "vasp1")

	p := testPayment()
	p.Sender.Address = "vasp1"
	role, err := client.MyRole(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, payment.RoleSender, role)

	p2 := testPayment()
	p2.Sender.Address = "other$carol"
	p2.Receiver.Address = "vasp1$dave"
	rpc.parents["vasp1$dave"] = "vasp1"
	role2, err := client.MyRole(context.Background(), p2)
	require.NoError(t, err)
	assert.Equal(t, payment.RoleReceiver, role2)
}

func TestMyRoleRejectsUnresolvedAddresses(t *testing.T) {
	rpc := &stubRPC{parents: map[string]string{}}
	client := offchain.NewClient(rpc, envelope.JWS{}, "vasp1")

	p := testPayment()
	p.Sender.Address = "other$carol"
	p.Receiver.Address = "another$dave"

	_, err := client.MyRole(context.Background(), p)
	assert.Error(t, err)
}
