// Package walletdemo is a sample implementation of engine.ActionDispatcher,
// standing in for the out-of-scope wallet business logic spec.md §1 names
// ("sample KYC evaluation policies"). It is not meant for production use —
// a real VASP plugs in its own screening provider here.
package walletdemo

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/travelrule/engine/internal/engine"
	"github.com/travelrule/engine/internal/logger"
	"github.com/travelrule/engine/internal/payment"
	"github.com/travelrule/engine/internal/paymentmachine"
)

// blockedNamePrefix marks a counterparty name as screened out, for demo
// purposes only — a real policy calls a watchlist provider.
const blockedNamePrefix = "BLOCKED-"

// softMatchNamePrefix marks a counterparty name as a soft match, needing
// additional_kyc_data to resolve.
const softMatchNamePrefix = "REVIEW-"

// Dispatcher is a sample ActionDispatcher driven entirely by the
// counterparty's given_name, for demo and test wiring.
type Dispatcher struct{}

// EvaluateKycData screens the counterparty's KYC data (opposite(localRole))
// and returns the verdict.
func (Dispatcher) EvaluateKycData(ctx context.Context, p payment.Payment, localRole payment.Role) (engine.ActionResult, error) {
	counterparty := p.Actor(localRole.Opposite())
	return evaluate(localRole, counterparty.KycData), nil
}

// ReviewKycData has the same effect shape as EvaluateKycData (spec.md
// §4.3): it re-screens the counterparty now that additional_kyc_data is
// attached.
func (Dispatcher) ReviewKycData(ctx context.Context, p payment.Payment, localRole payment.Role) (engine.ActionResult, error) {
	counterparty := p.Actor(localRole.Opposite())
	return evaluate(localRole, counterparty.KycData), nil
}

// ClearSoftMatch attaches a canned additional_kyc_data payload to the
// local actor's own KycData.
func (Dispatcher) ClearSoftMatch(ctx context.Context, p payment.Payment, localRole payment.Role) (engine.ActionResult, error) {
	local := p.Actor(localRole)
	if local.KycData == nil {
		logger.For(logger.ComponentEngine).Error("clear soft match invoked with no local kyc_data")
		return engine.ActionResult{Outcome: paymentmachine.OutcomeReject, AbortMessage: "no kyc_data to clear"}, nil
	}
	cleared := *local.KycData
	cleared.AdditionalKycData = []byte(`{"resolution":"demo-cleared"}`)
	return engine.ActionResult{Outcome: paymentmachine.OutcomePass, KycData: &cleared}, nil
}

func evaluate(localRole payment.Role, counterpartyKyc *payment.KycData) engine.ActionResult {
	name := ""
	if counterpartyKyc != nil && counterpartyKyc.GivenName != nil {
		name = *counterpartyKyc.GivenName
	}

	switch {
	case strings.HasPrefix(name, blockedNamePrefix):
		return engine.ActionResult{Outcome: paymentmachine.OutcomeReject, AbortMessage: "counterparty failed screening"}
	case strings.HasPrefix(name, softMatchNamePrefix):
		logger.For(logger.ComponentEngine).Info("soft match on counterparty KYC", zap.String("given_name", name))
		return engine.ActionResult{Outcome: paymentmachine.OutcomeSoftMatch}
	default:
		kyc := payment.NewKycData(payment.KycTypeIndividual)
		if localRole == payment.RoleReceiver {
			ownName := "Receiver Account"
			kyc.GivenName = &ownName
		}
		return engine.ActionResult{Outcome: paymentmachine.OutcomePass, KycData: kyc}
	}
}
