// Package paymentmachine is the concrete payment state catalog: the nine
// states, twelve transitions, trigger-role table and follow-up-action
// table of spec.md §4.3, built on top of the generic condition/Machine
// kernel.
package paymentmachine

import (
	"github.com/travelrule/engine/internal/condition"
	"github.com/travelrule/engine/internal/payment"
)

// State ids, exactly as named in spec.md §4.3.
const (
	SInit       = "S_INIT"
	RSend       = "R_SEND"
	RAbort      = "R_ABORT"
	RSoft       = "R_SOFT"
	SSoftSend   = "S_SOFT_SEND"
	SSoft       = "S_SOFT"
	RSoftSend   = "R_SOFT_SEND"
	SAbort      = "S_ABORT"
	Ready       = "READY"
)

func ss(status payment.Status) condition.Condition   { return condition.Value("sender.status", status) }
func sr(status payment.Status) condition.Condition   { return condition.Value("receiver.status", status) }
func set(path string) condition.Condition             { return condition.Field(path, false) }
func notSet(path string) condition.Condition          { return condition.Field(path, true) }

func catalog() []condition.State {
	return []condition.State{
		{
			ID: SInit,
			Guard: condition.Require(
				ss(payment.StatusNeedsKycData),
				sr(payment.StatusNone),
				set("sender.kyc_data"),
			),
		},
		{
			ID: RSend,
			Guard: condition.Require(
				ss(payment.StatusNeedsKycData),
				sr(payment.StatusReadyForSettlement),
				set("receiver.kyc_data"),
				set("recipient_signature"),
			),
		},
		{
			ID: RAbort,
			Guard: condition.Require(
				ss(payment.StatusNeedsKycData),
				sr(payment.StatusAbort),
			),
		},
		{
			ID: RSoft,
			Guard: condition.Require(
				ss(payment.StatusNeedsKycData),
				sr(payment.StatusSoftMatch),
				notSet("sender.kyc_data.additional_kyc_data"),
			),
		},
		{
			ID: SSoftSend,
			Guard: condition.Require(
				ss(payment.StatusNeedsKycData),
				set("sender.kyc_data.additional_kyc_data"),
				sr(payment.StatusSoftMatch),
			),
		},
		{
			ID: SSoft,
			Guard: condition.Require(
				ss(payment.StatusSoftMatch),
				sr(payment.StatusReadyForSettlement),
				notSet("receiver.kyc_data.additional_kyc_data"),
			),
		},
		{
			ID: RSoftSend,
			Guard: condition.Require(
				ss(payment.StatusSoftMatch),
				sr(payment.StatusReadyForSettlement),
				set("receiver.kyc_data.additional_kyc_data"),
			),
		},
		{
			ID: SAbort,
			Guard: condition.Require(
				ss(payment.StatusAbort),
				sr(payment.StatusReadyForSettlement),
			),
		},
		{
			ID: Ready,
			Guard: condition.Require(
				ss(payment.StatusReadyForSettlement),
				sr(payment.StatusReadyForSettlement),
			),
		},
	}
}

func transitions() []condition.Transition {
	return []condition.Transition{
		{From: SInit, To: RSend},
		{From: SInit, To: RAbort},
		{From: SInit, To: RSoft},
		{From: RSend, To: Ready},
		{From: RSend, To: SAbort},
		{From: RSend, To: SSoft},
		{From: RSoft, To: SSoftSend},
		{From: SSoftSend, To: RAbort},
		{From: SSoftSend, To: RSend},
		{From: SSoft, To: RSoftSend},
		{From: RSoftSend, To: SAbort},
		{From: RSoftSend, To: Ready},
	}
}

// triggerRoles maps each state to the role that authored it: the role
// whose write produced a document matching this state.
var triggerRoles = map[string]payment.Role{
	SInit:     payment.RoleSender,
	SAbort:    payment.RoleSender,
	SSoft:     payment.RoleSender,
	SSoftSend: payment.RoleSender,
	RSend:     payment.RoleReceiver,
	RAbort:    payment.RoleReceiver,
	RSoft:     payment.RoleReceiver,
	RSoftSend: payment.RoleReceiver,
	Ready:     payment.RoleReceiver,
}

// New builds the payment protocol's Machine: nine states, twelve
// transitions, S_INIT the sole initial state.
func New() *condition.Machine {
	return condition.NewMachine(catalog(), transitions())
}

// TriggerRole returns the role that must have authored a document in the
// given state — an inbound command must come from the opposite role.
func TriggerRole(stateID string) (payment.Role, bool) {
	r, ok := triggerRoles[stateID]
	return r, ok
}
