// Package rpcdemo is an in-memory stand-in for the on-chain RPC client
// spec.md §1 marks out of scope: account registry, base URL/public key
// discovery, and transaction submission. It is wired for local runs and
// tests, not production — a real deployment talks to a ledger node.
package rpcdemo

import (
	"context"
	"crypto/ed25519"
	"sync"

	"go.uber.org/zap"

	"github.com/travelrule/engine/internal/logger"
	"github.com/travelrule/engine/internal/payment"
)

// VaspRegistration is one VASP's published endpoint and verification key.
type VaspRegistration struct {
	BaseURL         string
	VerificationKey ed25519.PublicKey
}

// Registry is an in-memory RPC implementation keyed by VASP account id.
// Account addresses are expected in the "<vaspAccountID>$<local>" form
// used across this module's tests and demo wiring; AccountParent splits
// on the first '$'.
type Registry struct {
	mu        sync.RWMutex
	vasps     map[string]VaspRegistration
	submitted []payment.Payment
}

// NewRegistry builds an empty Registry.
func NewRegistry() *Registry {
	return &Registry{vasps: make(map[string]VaspRegistration)}
}

// Register publishes vaspAccountID's endpoint and verification key.
func (r *Registry) Register(vaspAccountID string, reg VaspRegistration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vasps[vaspAccountID] = reg
}

func accountParent(accountAddress string) string {
	for i := 0; i < len(accountAddress); i++ {
		if accountAddress[i] == '$' {
			return accountAddress[:i]
		}
	}
	return accountAddress
}

// ResolveCounterparty implements offchain.RPC.
func (r *Registry) ResolveCounterparty(ctx context.Context, accountAddress string) (string, ed25519.PublicKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.vasps[accountParent(accountAddress)]
	if !ok {
		return "", nil, unknownAccountError(accountAddress)
	}
	return reg.BaseURL, reg.VerificationKey, nil
}

// ResolveVerificationKey implements offchain.RPC.
func (r *Registry) ResolveVerificationKey(ctx context.Context, accountAddress string) (ed25519.PublicKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.vasps[accountParent(accountAddress)]
	if !ok {
		return nil, unknownAccountError(accountAddress)
	}
	return reg.VerificationKey, nil
}

// AccountParent implements offchain.RPC.
func (r *Registry) AccountParent(ctx context.Context, accountAddress string) (string, error) {
	return accountParent(accountAddress), nil
}

// SubmitTransaction implements offchain.RPC: it records the payment as
// settled rather than broadcasting anything, for demo and test use.
func (r *Registry) SubmitTransaction(ctx context.Context, p payment.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submitted = append(r.submitted, p)
	logger.For(logger.ComponentEngine).Info("demo: settled on-chain transfer",
		zap.String("reference_id", p.ReferenceID),
		zap.Uint64("amount", p.Action.Amount),
		zap.String("currency", p.Action.Currency))
	return nil
}

// Submitted returns every payment SubmitTransaction has recorded, for
// test assertions.
func (r *Registry) Submitted() []payment.Payment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]payment.Payment, len(r.submitted))
	copy(out, r.submitted)
	return out
}

type unknownAccountErr string

func (e unknownAccountErr) Error() string { return string(e) }

func unknownAccountError(accountAddress string) error {
	return unknownAccountErr("rpcdemo: unknown account " + accountAddress)
}
