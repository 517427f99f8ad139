package paymentmachine

import "github.com/travelrule/engine/internal/payment"

// ActionName identifies one of the four follow-up actions a role can owe
// at a given state (spec.md §4.3).
type ActionName string

const (
	EvaluateKycData ActionName = "EVALUATE_KYC_DATA"
	ClearSoftMatch  ActionName = "CLEAR_SOFT_MATCH"
	ReviewKycData   ActionName = "REVIEW_KYC_DATA"
	SubmitTxn       ActionName = "SUBMIT_TXN"
)

// FollowUp names the single role/action pair owed at a state.
type FollowUp struct {
	Role   payment.Role
	Action ActionName
}

// followUps is the table of spec.md §4.3: for every state, at most one
// role is assigned a follow-up action; terminal states (R_ABORT, S_ABORT)
// have none.
var followUps = map[string]FollowUp{
	SInit:     {Role: payment.RoleReceiver, Action: EvaluateKycData},
	RSend:     {Role: payment.RoleSender, Action: EvaluateKycData},
	RSoft:     {Role: payment.RoleSender, Action: ClearSoftMatch},
	SSoftSend: {Role: payment.RoleReceiver, Action: ReviewKycData},
	SSoft:     {Role: payment.RoleReceiver, Action: ClearSoftMatch},
	RSoftSend: {Role: payment.RoleSender, Action: ReviewKycData},
	Ready:     {Role: payment.RoleSender, Action: SubmitTxn},
	// RAbort, SAbort: no follow-up — both sides are done.
}

// FollowUpFor returns the action the local role owes at stateID, or
// (zero, false) if the state has no follow-up for that role — either
// because the state is terminal or because the follow-up belongs to the
// other role. At most one role ever gets a non-false result per state.
func FollowUpFor(localRole payment.Role, stateID string) (ActionName, bool) {
	f, ok := followUps[stateID]
	if !ok || f.Role != localRole {
		return "", false
	}
	return f.Action, true
}

// ActionOutcome is the verdict a wallet's KYC evaluation/review policy
// returns for EVALUATE_KYC_DATA and REVIEW_KYC_DATA (spec.md §4.3).
type ActionOutcome string

const (
	OutcomePass      ActionOutcome = "PASS"
	OutcomeSoftMatch ActionOutcome = "SOFT_MATCH"
	OutcomeReject    ActionOutcome = "REJECT"
	// OutcomeTxnExecuted is SUBMIT_TXN's result, reported the same way as
	// the KYC verdicts even though it carries no reject path (spec.md §8
	// scenario 1: "(SUBMIT_TXN, TXN_EXECUTED)").
	OutcomeTxnExecuted ActionOutcome = "TXN_EXECUTED"
)

// RejectCode is the OffChainError code attached to an abort produced by a
// REJECT outcome.
const RejectCode = "rejected"
