// Package validator implements the validation pipeline of spec.md §4.4:
// it accepts an incoming payment against an optional prior payment,
// returning the local role or rejecting with a command_error.
package validator

import (
	"github.com/travelrule/engine/internal/condition"
	"github.com/travelrule/engine/internal/offchainerror"
	"github.com/travelrule/engine/internal/payment"
	"github.com/travelrule/engine/internal/paymentmachine"
)

// Validator gates inbound payment documents against the payment state
// machine.
type Validator struct {
	machine *condition.Machine
}

// New builds a Validator over the payment protocol's state machine.
func New() *Validator {
	return &Validator{machine: paymentmachine.New()}
}

// Validate runs the four-step procedure of spec.md §4.4 and returns the
// local role (the opposite of eventRole, the role attributed to the
// envelope signer) on success.
//
//  1. match_state(newPayment) — fail invalid-request on none or many.
//  2. expected_role = trigger_role(new_state); fail if eventRole differs.
//  3. if prior is non-nil: fail unless is_valid_transition(prior_state, new_state, newPayment).
//  4. if prior is nil: fail unless is_initial(new_state).
//
// checkImmutableFields additionally guards reference_id, action, and the
// write-once fields (spec.md §4.4 "may be elided... implementation here").
func (v *Validator) Validate(newPayment payment.Payment, eventRole payment.Role, prior *payment.Payment) (payment.Role, error) {
	newState, err := v.machine.MatchState(newPayment)
	if err != nil {
		return "", offchainerror.NewCommandError(offchainerror.CodeInvalidRequest, "payment does not match any valid states")
	}

	expectedRole, ok := paymentmachine.TriggerRole(newState.ID)
	if !ok || eventRole != expectedRole {
		return "", offchainerror.NewCommandFieldError(offchainerror.CodeInvalidRequest, "sender.status",
			"command was not authored by the expected role for state "+newState.ID)
	}

	if prior != nil {
		priorState, err := v.machine.MatchState(*prior)
		if err != nil {
			return "", offchainerror.NewCommandError(offchainerror.CodeInvalidRequest, "prior payment does not match any valid states")
		}
		if !v.machine.IsValidTransition(priorState.ID, newState.ID, newPayment) {
			return "", offchainerror.NewCommandError(offchainerror.CodeInvalidRequest,
				"illegal transition "+priorState.ID+" -> "+newState.ID)
		}
		if err := checkImmutableFields(*prior, newPayment); err != nil {
			return "", err
		}
	} else if !v.machine.IsInitial(newState.ID) {
		return "", offchainerror.NewCommandError(offchainerror.CodeInvalidRequest,
			"no prior payment exists and "+newState.ID+" is not an initial state")
	}

	return eventRole.Opposite(), nil
}

// checkImmutableFields enforces spec.md §3's invariants that the state
// machine alone doesn't make unreachable: reference_id and action never
// change, recipient_signature once set is never cleared or replaced, and
// sender.kyc_data/receiver.kyc_data once set are never cleared (they may
// be replaced, e.g. when CLEAR_SOFT_MATCH attaches additional_kyc_data).
func checkImmutableFields(prior, next payment.Payment) error {
	if prior.ReferenceID != next.ReferenceID {
		return offchainerror.NewCommandFieldError(offchainerror.CodeInvalidRequest, "reference_id", "reference_id must not change")
	}
	if prior.Action != next.Action {
		return offchainerror.NewCommandFieldError(offchainerror.CodeInvalidRequest, "action", "action must not change")
	}
	if prior.RecipientSignature != nil {
		if next.RecipientSignature == nil || *next.RecipientSignature != *prior.RecipientSignature {
			return offchainerror.NewCommandFieldError(offchainerror.CodeInvalidRequest, "recipient_signature", "recipient_signature is write-once")
		}
	}
	if prior.Sender.KycData != nil {
		if next.Sender.KycData == nil {
			return offchainerror.NewCommandFieldError(offchainerror.CodeInvalidRequest, "sender.kyc_data", "sender.kyc_data is write-once")
		}
	}
	if prior.Receiver.KycData != nil {
		if next.Receiver.KycData == nil {
			return offchainerror.NewCommandFieldError(offchainerror.CodeInvalidRequest, "receiver.kyc_data", "receiver.kyc_data is write-once")
		}
	}
	return nil
}
