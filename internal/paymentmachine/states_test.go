package paymentmachine_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelrule/engine/internal/paymentmachine"
	"github.com/travelrule/engine/internal/payment"
)

func basePayment() payment.Payment {
	return payment.Payment{
		ReferenceID: "ref",
		Sender:      payment.PaymentActor{Address: "s", Status: payment.StatusNone},
		Receiver:    payment.PaymentActor{Address: "r", Status: payment.StatusNone},
		Action:      payment.NewPaymentAction(1, "USD", 1),
	}
}

func withAdditional(k *payment.KycData) *payment.KycData {
	k.AdditionalKycData = json.RawMessage(`{"doc":"passport"}`)
	return k
}

func sig(s string) *string { return &s }

func stateDoc(t *testing.T, id string) payment.Payment {
	t.Helper()
	p := basePayment()
	switch id {
	case paymentmachine.SInit:
		p.Sender.Status = payment.StatusNeedsKycData
		p.Sender.KycData = payment.NewKycData(payment.KycTypeIndividual)
	case paymentmachine.RSend:
		p.Sender.Status = payment.StatusNeedsKycData
		p.Receiver.Status = payment.StatusReadyForSettlement
		p.Receiver.KycData = payment.NewKycData(payment.KycTypeIndividual)
		p.RecipientSignature = sig("abcd")
	case paymentmachine.RAbort:
		p.Sender.Status = payment.StatusNeedsKycData
		p.Receiver.Status = payment.StatusAbort
	case paymentmachine.RSoft:
		p.Sender.Status = payment.StatusNeedsKycData
		p.Sender.KycData = payment.NewKycData(payment.KycTypeIndividual)
		p.Receiver.Status = payment.StatusSoftMatch
	case paymentmachine.SSoftSend:
		p.Sender.Status = payment.StatusNeedsKycData
		p.Sender.KycData = withAdditional(payment.NewKycData(payment.KycTypeIndividual))
		p.Receiver.Status = payment.StatusSoftMatch
	case paymentmachine.SSoft:
		p.Sender.Status = payment.StatusSoftMatch
		p.Receiver.Status = payment.StatusReadyForSettlement
		p.Receiver.KycData = payment.NewKycData(payment.KycTypeIndividual)
	case paymentmachine.RSoftSend:
		p.Sender.Status = payment.StatusSoftMatch
		p.Receiver.Status = payment.StatusReadyForSettlement
		p.Receiver.KycData = withAdditional(payment.NewKycData(payment.KycTypeIndividual))
	case paymentmachine.SAbort:
		p.Sender.Status = payment.StatusAbort
		p.Receiver.Status = payment.StatusReadyForSettlement
	case paymentmachine.Ready:
		p.Sender.Status = payment.StatusReadyForSettlement
		p.Receiver.Status = payment.StatusReadyForSettlement
	default:
		t.Fatalf("unknown state id %s", id)
	}
	return p
}

var allStates = []string{
	paymentmachine.SInit, paymentmachine.RSend, paymentmachine.RAbort,
	paymentmachine.RSoft, paymentmachine.SSoftSend, paymentmachine.SSoft,
	paymentmachine.RSoftSend, paymentmachine.SAbort, paymentmachine.Ready,
}

func TestEveryStateMatchesExactlyItself(t *testing.T) {
	m := paymentmachine.New()
	for _, id := range allStates {
		doc := stateDoc(t, id)
		s, err := m.MatchState(doc)
		require.NoError(t, err, "state %s", id)
		assert.Equal(t, id, s.ID)
	}
}

func TestExactlyOneInitialState(t *testing.T) {
	m := paymentmachine.New()
	initial := 0
	for _, id := range allStates {
		if m.IsInitial(id) {
			initial++
			assert.Equal(t, paymentmachine.SInit, id)
		}
	}
	assert.Equal(t, 1, initial)
}

func TestTerminalStatesHaveNoOutgoingTransitions(t *testing.T) {
	m := paymentmachine.New()
	terminal := []string{paymentmachine.Ready, paymentmachine.SAbort, paymentmachine.RAbort}
	for _, from := range terminal {
		for _, to := range allStates {
			assert.False(t, m.IsValidTransition(from, to, stateDoc(t, to)), "expected no edge %s -> %s", from, to)
		}
	}
}

func TestFollowUpTableHasAtMostOneRolePerState(t *testing.T) {
	for _, id := range allStates {
		_, senderHas := paymentmachine.FollowUpFor(payment.RoleSender, id)
		_, receiverHas := paymentmachine.FollowUpFor(payment.RoleReceiver, id)
		assert.False(t, senderHas && receiverHas, "state %s assigned a follow-up to both roles", id)
	}
}

func TestTriggerRoleTable(t *testing.T) {
	sender := []string{paymentmachine.SInit, paymentmachine.SAbort, paymentmachine.SSoft, paymentmachine.SSoftSend}
	receiver := []string{paymentmachine.RSend, paymentmachine.RAbort, paymentmachine.RSoft, paymentmachine.RSoftSend, paymentmachine.Ready}
	for _, id := range sender {
		role, ok := paymentmachine.TriggerRole(id)
		require.True(t, ok)
		assert.Equal(t, payment.RoleSender, role, id)
	}
	for _, id := range receiver {
		role, ok := paymentmachine.TriggerRole(id)
		require.True(t, ok)
		assert.Equal(t, payment.RoleReceiver, role, id)
	}
}

func TestLegalTransitions(t *testing.T) {
	m := paymentmachine.New()
	cases := []struct{ from, to string }{
		{paymentmachine.SInit, paymentmachine.RSend},
		{paymentmachine.SInit, paymentmachine.RAbort},
		{paymentmachine.SInit, paymentmachine.RSoft},
		{paymentmachine.RSend, paymentmachine.Ready},
		{paymentmachine.RSend, paymentmachine.SAbort},
		{paymentmachine.RSend, paymentmachine.SSoft},
		{paymentmachine.RSoft, paymentmachine.SSoftSend},
		{paymentmachine.SSoftSend, paymentmachine.RAbort},
		{paymentmachine.SSoftSend, paymentmachine.RSend},
		{paymentmachine.SSoft, paymentmachine.RSoftSend},
		{paymentmachine.RSoftSend, paymentmachine.SAbort},
		{paymentmachine.RSoftSend, paymentmachine.Ready},
	}
	for _, c := range cases {
		assert.True(t, m.IsValidTransition(c.from, c.to, stateDoc(t, c.to)), "%s -> %s should be legal", c.from, c.to)
	}
	// a couple of illegal edges
	assert.False(t, m.IsValidTransition(paymentmachine.SInit, paymentmachine.Ready, stateDoc(t, paymentmachine.Ready)))
	assert.False(t, m.IsValidTransition(paymentmachine.RAbort, paymentmachine.SInit, stateDoc(t, paymentmachine.SInit)))
}
