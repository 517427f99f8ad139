package engine

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/travelrule/engine/internal/condition"
	"github.com/travelrule/engine/internal/envelope"
	"github.com/travelrule/engine/internal/logger"
	"github.com/travelrule/engine/internal/offchain"
	"github.com/travelrule/engine/internal/offchainerror"
	"github.com/travelrule/engine/internal/payment"
	"github.com/travelrule/engine/internal/paymentmachine"
	"github.com/travelrule/engine/internal/validator"
)

// PaymentIntent is the local request to start a new exchange. SenderKyc
// is the sender's own KYC payload, prepared by the wallet layer — S_INIT
// requires sender.kyc_data present, so the engine cannot start a payment
// without it.
type PaymentIntent struct {
	SenderAccount   string
	ReceiverAccount string
	Amount          uint64
	Currency        string
	SenderKyc       *payment.KycData
}

// Engine is the dual-role protocol engine (spec.md §4.6). One Engine
// instance runs per VASP; it plays both sender and receiver roles across
// its records, one role per reference_id.
type Engine struct {
	store      *Store
	tasks      *taskQueue
	client     *offchain.Client
	rpc        offchain.RPC
	rawSigner  envelope.RawSigner
	dispatcher ActionDispatcher
	machine    *condition.Machine
	validator  *validator.Validator
}

// New builds an Engine. client drives signed outbound requests and
// response verification; rpc submits the on-chain transaction at READY;
// rawSigner produces recipient_signature; dispatcher implements the
// wallet's KYC evaluation policy.
func New(client *offchain.Client, rpc offchain.RPC, rawSigner envelope.RawSigner, dispatcher ActionDispatcher) *Engine {
	return &Engine{
		store:      NewStore(),
		tasks:      newTaskQueue(),
		client:     client,
		rpc:        rpc,
		rawSigner:  rawSigner,
		dispatcher: dispatcher,
		machine:    paymentmachine.New(),
		validator:  validator.New(),
	}
}

func newHexID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

// Pay builds an S_INIT payment for the given intent, persists it locally
// as sender, attempts to send it synchronously, and returns its
// reference_id. A failed send is reported asynchronously: a retry
// closure is enqueued rather than propagated (spec.md §4.6 pay).
func (e *Engine) Pay(ctx context.Context, intent PaymentIntent) (string, error) {
	referenceID := newHexID()

	p := payment.Payment{
		ReferenceID: referenceID,
		Sender: payment.PaymentActor{
			Address: intent.SenderAccount,
			Status:  payment.StatusNeedsKycData,
			KycData: intent.SenderKyc,
		},
		Receiver: payment.PaymentActor{
			Address: intent.ReceiverAccount,
			Status:  payment.StatusNone,
		},
		Action: payment.NewPaymentAction(intent.Amount, intent.Currency, time.Now().Unix()),
	}

	cmdJSON, err := payment.CanonicalJSON(payment.NewCommand(p))
	if err != nil {
		return "", offchainerror.NewCommandError(offchainerror.CodeInvalidRequest, "failed to encode initial command: "+err.Error())
	}

	cid := newHexID()
	e.store.Put(&Record{ReferenceID: referenceID, Cid: cid, Role: payment.RoleSender, CmdJSON: cmdJSON})

	req := payment.NewCommandRequest(cid, payment.NewCommand(p))
	if _, err := e.client.SendRequest(ctx, payment.RoleSender, req); err != nil {
		logger.For(logger.ComponentEngine).Warn("initial send failed, queuing retry",
			zap.String("reference_id", referenceID), zap.Error(err))
		e.enqueueSend(payment.RoleSender, req)
	}

	return referenceID, nil
}

// ProcessInbound implements spec.md §4.6 process_inbound: verify, check
// idempotent replay, validate, persist, schedule a follow-up, and build
// the reply. envBytes is the raw signed envelope off the wire; VerifyRequest
// unwraps and authenticates it. The return is the HTTP status to send and
// the plain (unsigned) CommandResponse JSON — the HTTP handler signs it
// into an outbound envelope before writing to the wire, the same way the
// engine signs any other outbound send. A caught *offchainerror.Error
// becomes a failure response at its natural status; any other error
// should be mapped by the caller to HTTP 500 (spec.md §4.6 step 7, §7).
func (e *Engine) ProcessInbound(ctx context.Context, signerAddress string, envBytes []byte) (int, []byte, error) {
	req, err := e.client.VerifyRequest(ctx, signerAddress, envBytes)
	if err != nil {
		return e.failureResponse(nil, err)
	}

	referenceID := req.Command.Payment.ReferenceID
	unlock := e.store.Lock(referenceID)
	defer unlock()

	prior, hasPrior := e.store.Get(referenceID)

	newCmdJSON, err := payment.CanonicalJSON(req.Command)
	if err != nil {
		return e.failureResponse(&req.Cid, offchainerror.NewProtocolError(offchainerror.CodeInvalidRequest, "could not canonicalize command"))
	}

	if hasPrior && payment.SameCommand(prior.CmdJSON, newCmdJSON) {
		return e.successResponse(req.Cid)
	}

	localRole, err := e.client.MyRole(ctx, req.Command.Payment)
	if err != nil {
		return e.failureResponse(&req.Cid, err)
	}
	eventRole := localRole.Opposite()

	var priorPayment *payment.Payment
	if hasPrior {
		var priorCmd payment.Command
		if decodeErr := json.Unmarshal(prior.CmdJSON, &priorCmd); decodeErr != nil {
			return e.failureResponse(&req.Cid, offchainerror.NewProtocolError(offchainerror.CodeInvalidRequest, "stored prior command is corrupt"))
		}
		priorPayment = &priorCmd.Payment
	}

	if _, err := e.validator.Validate(req.Command.Payment, eventRole, priorPayment); err != nil {
		return e.failureResponse(&req.Cid, err)
	}

	e.store.Put(&Record{ReferenceID: referenceID, Cid: req.Cid, Role: localRole, CmdJSON: newCmdJSON})

	if newState, err := e.machine.MatchState(req.Command.Payment); err == nil {
		if action, ok := paymentmachine.FollowUpFor(localRole, newState.ID); ok {
			e.enqueueAction(action, referenceID)
		}
	}

	return e.successResponse(req.Cid)
}

func (e *Engine) successResponse(cid string) (int, []byte, error) {
	c := cid
	body, err := payment.EncodeCommandResponse(payment.NewSuccessResponse(&c))
	if err != nil {
		return http.StatusInternalServerError, nil, err
	}
	return http.StatusOK, body, nil
}

// failureResponse converts err into a failure CommandResponse and HTTP
// 400, unless err is not an *offchainerror.Error, in which case it is
// returned unwrapped for the caller to surface as HTTP 500.
func (e *Engine) failureResponse(cid *string, err error) (int, []byte, error) {
	offErr, ok := err.(*offchainerror.Error)
	if !ok {
		return http.StatusInternalServerError, nil, err
	}
	resp := payment.NewFailureResponse(cid, offErr.ToOffChainError())
	body, encErr := payment.EncodeCommandResponse(resp)
	if encErr != nil {
		return http.StatusInternalServerError, nil, encErr
	}
	return http.StatusBadRequest, body, nil
}

// RunOnceBackground pops and executes one queued task. An empty queue
// returns TaskResult{Kind: TaskNone}.
func (e *Engine) RunOnceBackground(ctx context.Context) TaskResult {
	t, ok := e.tasks.pop()
	if !ok {
		return TaskResult{Kind: TaskNone}
	}
	return t(ctx)
}
