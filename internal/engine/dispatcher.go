package engine

import (
	"context"

	"github.com/travelrule/engine/internal/payment"
	"github.com/travelrule/engine/internal/paymentmachine"
)

// ActionResult is the verdict a wallet-provided ActionDispatcher returns
// for EVALUATE_KYC_DATA, REVIEW_KYC_DATA and CLEAR_SOFT_MATCH (spec.md
// §4.3). KycData carries the local actor's updated KYC payload — required
// on a PASS that advances a receiver, and on every CLEAR_SOFT_MATCH call,
// where it must carry additional_kyc_data. AbortMessage is attached to
// the OffChainError surfaced to the peer on a REJECT outcome.
type ActionResult struct {
	Outcome      paymentmachine.ActionOutcome
	KycData      *payment.KycData
	AbortMessage string
}

// ActionDispatcher is the wallet-provided collaborator that implements
// the actual KYC evaluation/review/soft-match-resolution policy (spec.md
// §1 "wallet business logic... sample KYC evaluation policies" is out of
// scope; this is the narrow contract the engine depends on instead).
// internal/walletdemo provides a sample implementation.
type ActionDispatcher interface {
	// EvaluateKycData inspects the counterparty's KYC data already present
	// on p and returns the local actor's verdict.
	EvaluateKycData(ctx context.Context, p payment.Payment, localRole payment.Role) (ActionResult, error)

	// ReviewKycData is invoked after a soft match has been cleared with
	// additional_kyc_data; same effect shape as EvaluateKycData.
	ReviewKycData(ctx context.Context, p payment.Payment, localRole payment.Role) (ActionResult, error)

	// ClearSoftMatch resolves a soft match by attaching additional_kyc_data
	// to the local actor's KycData. Outcome is ignored by the engine (the
	// state machine's CLEAR_SOFT_MATCH states have no reject path) but is
	// still reported for logging.
	ClearSoftMatch(ctx context.Context, p payment.Payment, localRole payment.Role) (ActionResult, error)
}
