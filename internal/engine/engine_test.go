package engine_test

import (
	"context"
	"crypto/ed25519"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelrule/engine/internal/engine"
	"github.com/travelrule/engine/internal/envelope"
	"github.com/travelrule/engine/internal/offchain"
	"github.com/travelrule/engine/internal/payment"
	"github.com/travelrule/engine/internal/paymentmachine"
)

// fakeRPC resolves addresses of the shape "<parent>$<local>" against maps
// keyed by parent VASP id, standing in for the out-of-scope on-chain RPC
// client (spec.md §1).
type fakeRPC struct {
	baseURLByParent map[string]string
	keyByParent     map[string]ed25519.PublicKey
	submitted       []payment.Payment
}

func parentOf(address string) string {
	if i := strings.Index(address, "$"); i >= 0 {
		return address[:i]
	}
	return address
}

func (r *fakeRPC) ResolveCounterparty(ctx context.Context, accountAddress string) (string, ed25519.PublicKey, error) {
	parent := parentOf(accountAddress)
	return r.baseURLByParent[parent], r.keyByParent[parent], nil
}

func (r *fakeRPC) ResolveVerificationKey(ctx context.Context, accountAddress string) (ed25519.PublicKey, error) {
	return r.keyByParent[accountAddress], nil
}

func (r *fakeRPC) AccountParent(ctx context.Context, accountAddress string) (string, error) {
	return parentOf(accountAddress), nil
}

func (r *fakeRPC) SubmitTransaction(ctx context.Context, p payment.Payment) error {
	r.submitted = append(r.submitted, p)
	return nil
}

// passingDispatcher always evaluates/reviews to PASS and merges an
// additional_kyc_data payload when clearing a soft match. It stands in
// for the out-of-scope wallet KYC policy.
type passingDispatcher struct{}

func (passingDispatcher) EvaluateKycData(ctx context.Context, p payment.Payment, localRole payment.Role) (engine.ActionResult, error) {
	return engine.ActionResult{Outcome: paymentmachine.OutcomePass, KycData: payment.NewKycData(payment.KycTypeIndividual)}, nil
}

func (passingDispatcher) ReviewKycData(ctx context.Context, p payment.Payment, localRole payment.Role) (engine.ActionResult, error) {
	return engine.ActionResult{Outcome: paymentmachine.OutcomePass, KycData: payment.NewKycData(payment.KycTypeIndividual)}, nil
}

func (passingDispatcher) ClearSoftMatch(ctx context.Context, p payment.Payment, localRole payment.Role) (engine.ActionResult, error) {
	kyc := *p.Actor(localRole).KycData
	kyc.AdditionalKycData = []byte(`{"resolution":"test-cleared"}`)
	return engine.ActionResult{Outcome: paymentmachine.OutcomePass, KycData: &kyc}, nil
}

// harness wires two engines (sender VASP and receiver VASP) back to back
// over real HTTP, each proxying inbound requests straight to the other's
// ProcessInbound.
type harness struct {
	sender   *engine.Engine
	receiver *engine.Engine
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	senderPub, senderPriv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	receiverPub, receiverPriv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	var senderEngine, receiverEngine *engine.Engine

	receiverSigner := envelope.JWS{PrivateKey: receiverPriv}
	senderSigner := envelope.JWS{PrivateKey: senderPriv}

	receiverSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serveInbound(w, r, receiverEngine, receiverSigner)
	}))
	t.Cleanup(receiverSrv.Close)
	senderSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serveInbound(w, r, senderEngine, senderSigner)
	}))
	t.Cleanup(senderSrv.Close)

	rpc := &fakeRPC{
		baseURLByParent: map[string]string{"vaspA": senderSrv.URL, "vaspB": receiverSrv.URL},
		keyByParent:     map[string]ed25519.PublicKey{"vaspA": senderPub, "vaspB": receiverPub},
	}

	senderClient := offchain.NewClient(rpc, senderSigner, "vaspA")
	receiverClient := offchain.NewClient(rpc, receiverSigner, "vaspB")

	senderEngine = engine.New(senderClient, rpc, senderSigner, passingDispatcher{})
	receiverEngine = engine.New(receiverClient, rpc, receiverSigner, passingDispatcher{})

	return &harness{sender: senderEngine, receiver: receiverEngine}
}

func serveInbound(w http.ResponseWriter, r *http.Request, e *engine.Engine, signer envelope.Signer) {
	signerAddress := r.Header.Get("X-Verification-Key-Address")
	body, _ := io.ReadAll(r.Body)
	status, respBody, err := e.ProcessInbound(r.Context(), signerAddress, body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	env, signErr := signer.Sign(respBody)
	if signErr != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	_, _ = w.Write(env)
}

// drain runs RunOnceBackground on both engines, interleaved, until both
// queues report TaskNone twice in a row (a simple fixed-point drain for
// tests; production runs each engine's loop independently).
func drain(ctx context.Context, h *harness) []engine.TaskResult {
	var results []engine.TaskResult
	idleStreak := 0
	for idleStreak < 2 {
		progressed := false
		if r := h.sender.RunOnceBackground(ctx); r.Kind != engine.TaskNone {
			results = append(results, r)
			progressed = true
		}
		if r := h.receiver.RunOnceBackground(ctx); r.Kind != engine.TaskNone {
			results = append(results, r)
			progressed = true
		}
		if progressed {
			idleStreak = 0
		} else {
			idleStreak++
		}
	}
	return results
}

func TestHappyPathEvaluatesAndSubmits(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	referenceID, err := h.sender.Pay(ctx, engine.PaymentIntent{
		SenderAccount:   "vaspA$alice",
		ReceiverAccount: "vaspB$bob",
		Amount:          1_000_000_000,
		Currency:        "USD",
		SenderKyc:       payment.NewKycData(payment.KycTypeIndividual),
	})
	require.NoError(t, err)
	require.NotEmpty(t, referenceID)

	results := drain(ctx, h)

	var sawEvaluate, sawSubmit bool
	for _, r := range results {
		if r.Kind == engine.TaskAction && r.Action == paymentmachine.EvaluateKycData {
			sawEvaluate = true
			assert.Equal(t, paymentmachine.OutcomePass, r.Outcome)
		}
		if r.Kind == engine.TaskAction && r.Action == paymentmachine.SubmitTxn {
			sawSubmit = true
		}
	}
	assert.True(t, sawEvaluate, "expected at least one EVALUATE_KYC_DATA task")
	assert.True(t, sawSubmit, "expected the sender to submit the on-chain transaction at READY")
}

func TestRunOnceBackgroundOnEmptyQueueReturnsNone(t *testing.T) {
	h := newHarness(t)
	result := h.sender.RunOnceBackground(context.Background())
	assert.Equal(t, engine.TaskNone, result.Kind)
}
