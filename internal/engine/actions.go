package engine

import (
	"context"
	"encoding/hex"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/travelrule/engine/internal/logger"
	"github.com/travelrule/engine/internal/payment"
	"github.com/travelrule/engine/internal/paymentmachine"
)

// enqueueAction schedules the background task that runs a follow-up
// action for referenceID. Per spec.md §9, the closure captures only
// (engine, action, reference_id) and re-fetches the record when it runs.
func (e *Engine) enqueueAction(action paymentmachine.ActionName, referenceID string) {
	e.tasks.push(func(ctx context.Context) TaskResult {
		return e.runAction(ctx, action, referenceID)
	})
}

// enqueueSend schedules the pure retry task that (re-)sends req. Retry
// closures close over the original (request, role) (spec.md §9); a
// re-send that the peer already accepted is a no-op by byte-equality.
func (e *Engine) enqueueSend(role payment.Role, req payment.CommandRequest) {
	e.tasks.push(func(ctx context.Context) TaskResult {
		return e.runSend(ctx, role, req)
	})
}

func (e *Engine) runSend(ctx context.Context, role payment.Role, req payment.CommandRequest) TaskResult {
	if _, err := e.client.SendRequest(ctx, role, req); err != nil {
		logger.For(logger.ComponentEngine).Warn("retry send failed, re-queuing",
			zap.String("reference_id", req.Command.Payment.ReferenceID), zap.Error(err))
		e.enqueueSend(role, req)
		return TaskResult{Kind: TaskSendFailed}
	}
	return TaskResult{Kind: TaskSendSucceeded}
}

// runAction re-loads referenceID's record, invokes the dispatcher (or the
// RPC client for SUBMIT_TXN), applies the resulting mutation, persists
// it, and schedules the send of the updated command to the peer and, if
// the new state has a further local follow-up, that action too (spec.md §4.6 process_inbound step 5, generalized to every
// site an action completes).
func (e *Engine) runAction(ctx context.Context, action paymentmachine.ActionName, referenceID string) TaskResult {
	unlock := e.store.Lock(referenceID)
	defer unlock()

	record, ok := e.store.Get(referenceID)
	if !ok {
		logger.For(logger.ComponentEngine).Error("action task: record vanished", zap.String("reference_id", referenceID))
		return TaskResult{Kind: TaskAction, Action: action}
	}

	var cmd payment.Command
	if err := json.Unmarshal(record.CmdJSON, &cmd); err != nil {
		logger.For(logger.ComponentEngine).Error("action task: stored command is corrupt", zap.Error(err))
		return TaskResult{Kind: TaskAction, Action: action}
	}
	p := cmd.Payment
	localRole := record.Role

	if action == paymentmachine.SubmitTxn {
		if err := e.rpc.SubmitTransaction(ctx, p); err != nil {
			logger.For(logger.ComponentEngine).Error("submit transaction failed",
				zap.String("reference_id", referenceID), zap.Error(err))
		}
		return TaskResult{Kind: TaskAction, Action: action, Outcome: paymentmachine.OutcomeTxnExecuted}
	}

	var result ActionResult
	var err error
	switch action {
	case paymentmachine.EvaluateKycData:
		result, err = e.dispatcher.EvaluateKycData(ctx, p, localRole)
	case paymentmachine.ReviewKycData:
		result, err = e.dispatcher.ReviewKycData(ctx, p, localRole)
	case paymentmachine.ClearSoftMatch:
		result, err = e.dispatcher.ClearSoftMatch(ctx, p, localRole)
	default:
		logger.For(logger.ComponentEngine).Error("action task: unknown action", zap.String("action", string(action)))
		return TaskResult{Kind: TaskAction, Action: action}
	}
	if err != nil {
		logger.For(logger.ComponentEngine).Error("dispatcher action failed",
			zap.String("reference_id", referenceID), zap.String("action", string(action)), zap.Error(err))
		return TaskResult{Kind: TaskAction, Action: action}
	}

	var next payment.Payment
	if action == paymentmachine.ClearSoftMatch {
		next = e.applyClearSoftMatch(localRole, p, result)
	} else {
		next = e.applyEvaluationOutcome(localRole, p, result)
	}

	cmdJSON, err := payment.CanonicalJSON(payment.NewCommand(next))
	if err != nil {
		logger.For(logger.ComponentEngine).Error("action task: failed to encode updated command", zap.Error(err))
		return TaskResult{Kind: TaskAction, Action: action, Outcome: result.Outcome}
	}
	cid := newHexID()
	e.store.Put(&Record{ReferenceID: referenceID, Cid: cid, Role: localRole, CmdJSON: cmdJSON})

	// A further local follow-up (e.g. READY's SUBMIT_TXN) is enqueued ahead
	// of the status-update send, so it runs before the send is attempted —
	// matching the reference scenario where SUBMIT_TXN's result is observed
	// before the send that reports it fails (spec.md §8 scenario 6; see
	// SPEC_FULL.md's note preserving this ordering rather than "fixing" it).
	if newState, err := e.machine.MatchState(next); err == nil {
		if followUp, ok := paymentmachine.FollowUpFor(localRole, newState.ID); ok {
			e.enqueueAction(followUp, referenceID)
		}
	}

	req := payment.NewCommandRequest(cid, payment.NewCommand(next))
	e.enqueueSend(localRole, req)

	return TaskResult{Kind: TaskAction, Action: action, Outcome: result.Outcome}
}

// applyEvaluationOutcome implements the shared effect shape of
// EVALUATE_KYC_DATA and REVIEW_KYC_DATA (spec.md §4.3): PASS advances the
// local actor to ready_for_settlement; for the receiver only it also
// attaches the result's KycData and a recipient_signature (the sender
// already attached its own KycData at creation); SOFT_MATCH marks the local
// actor soft_match; REJECT aborts with the "rejected" code.
func (e *Engine) applyEvaluationOutcome(localRole payment.Role, p payment.Payment, result ActionResult) payment.Payment {
	switch result.Outcome {
	case paymentmachine.OutcomePass:
		ready := payment.StatusReadyForSettlement
		c := changes{Status: &ready}
		if localRole == payment.RoleReceiver {
			c.KycData = result.KycData
			if p.RecipientSignature == nil {
				sig := e.signRecipientSignature(p)
				c.RecipientSignature = &sig
			}
		}
		return updatePayment(localRole, p, c)
	case paymentmachine.OutcomeSoftMatch:
		soft := payment.StatusSoftMatch
		return updatePayment(localRole, p, changes{Status: &soft})
	default: // REJECT
		abort := payment.StatusAbort
		code := paymentmachine.RejectCode
		msg := result.AbortMessage
		return updatePayment(localRole, p, changes{Status: &abort, AbortCode: &code, AbortMessage: &msg})
	}
}

// applyClearSoftMatch attaches additional_kyc_data to the local actor's
// KycData without changing status (spec.md §4.3 CLEAR_SOFT_MATCH).
func (e *Engine) applyClearSoftMatch(localRole payment.Role, p payment.Payment, result ActionResult) payment.Payment {
	return updatePayment(localRole, p, changes{KycData: result.KycData})
}

// signRecipientSignature signs the canonical travel-rule metadata (the
// reference id and the receiver's KYC payload) with the engine's raw
// signer, returning the hex-encoded signature recorded as
// recipient_signature (spec.md §3, §GLOSSARY).
func (e *Engine) signRecipientSignature(p payment.Payment) string {
	metadata, err := json.Marshal(struct {
		ReferenceID string           `json:"reference_id"`
		KycData     *payment.KycData `json:"kyc_data"`
	}{ReferenceID: p.ReferenceID, KycData: p.Receiver.KycData})
	if err != nil {
		logger.For(logger.ComponentEngine).Error("failed to encode travel-rule metadata for signing", zap.Error(err))
		return ""
	}
	sig, err := e.rawSigner.SignRaw(metadata)
	if err != nil {
		logger.For(logger.ComponentEngine).Error("failed to sign travel-rule metadata", zap.Error(err))
		return ""
	}
	return hex.EncodeToString(sig)
}
