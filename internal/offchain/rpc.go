package offchain

import (
	"context"
	"crypto/ed25519"

	"github.com/travelrule/engine/internal/payment"
)

// RPC is the narrow contract the off-chain client needs from the on-chain
// RPC client spec.md §1 marks out of scope: account lookup,
// base-URL-and-public-key discovery, and transaction submission. A real
// implementation talks to a ledger node; internal/rpcdemo is an in-memory
// stand-in used for local runs and tests.
type RPC interface {
	// ResolveCounterparty returns the base URL to send commands to and the
	// verification public key to check their signed responses against,
	// for the VASP that owns accountAddress.
	ResolveCounterparty(ctx context.Context, accountAddress string) (baseURL string, verificationKey ed25519.PublicKey, err error)

	// ResolveVerificationKey returns the public key to verify an inbound
	// envelope signed by accountAddress's VASP.
	ResolveVerificationKey(ctx context.Context, accountAddress string) (ed25519.PublicKey, error)

	// AccountParent returns the parent VASP account id that accountAddress
	// belongs to, used by MyRole to decide locality.
	AccountParent(ctx context.Context, accountAddress string) (parentAccountID string, err error)

	// SubmitTransaction executes the on-chain transfer once both sides
	// have reached ready_for_settlement.
	SubmitTransaction(ctx context.Context, p payment.Payment) error
}
