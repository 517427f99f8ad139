package walletdemo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelrule/engine/internal/payment"
	"github.com/travelrule/engine/internal/paymentmachine"
	"github.com/travelrule/engine/internal/walletdemo"
)

func paymentWithCounterpartyName(name string) payment.Payment {
	kyc := payment.NewKycData(payment.KycTypeIndividual)
	kyc.GivenName = &name
	return payment.Payment{
		ReferenceID: "ref-1",
		Sender:      payment.PaymentActor{Address: "vaspA$alice", Status: payment.StatusNone, KycData: kyc},
		Receiver:    payment.PaymentActor{Address: "vaspB$bob", Status: payment.StatusNone},
		Action:      payment.NewPaymentAction(100, "USD", 0),
	}
}

func TestEvaluateKycDataPassesByDefault(t *testing.T) {
	d := walletdemo.Dispatcher{}
	p := paymentWithCounterpartyName("Alice Example")

	result, err := d.EvaluateKycData(context.Background(), p, payment.RoleReceiver)
	require.NoError(t, err)
	assert.Equal(t, paymentmachine.OutcomePass, result.Outcome)
	require.NotNil(t, result.KycData)
}

func TestEvaluateKycDataRejectsBlockedCounterparty(t *testing.T) {
	d := walletdemo.Dispatcher{}
	p := paymentWithCounterpartyName("BLOCKED-Mallory")

	result, err := d.EvaluateKycData(context.Background(), p, payment.RoleReceiver)
	require.NoError(t, err)
	assert.Equal(t, paymentmachine.OutcomeReject, result.Outcome)
	assert.NotEmpty(t, result.AbortMessage)
}

func TestEvaluateKycDataSoftMatchesReviewCounterparty(t *testing.T) {
	d := walletdemo.Dispatcher{}
	p := paymentWithCounterpartyName("REVIEW-Carol")

	result, err := d.EvaluateKycData(context.Background(), p, payment.RoleReceiver)
	require.NoError(t, err)
	assert.Equal(t, paymentmachine.OutcomeSoftMatch, result.Outcome)
}

func TestClearSoftMatchAttachesAdditionalKycData(t *testing.T) {
	d := walletdemo.Dispatcher{}
	p := paymentWithCounterpartyName("Alice Example")

	result, err := d.ClearSoftMatch(context.Background(), p, payment.RoleSender)
	require.NoError(t, err)
	assert.Equal(t, paymentmachine.OutcomePass, result.Outcome)
	require.NotNil(t, result.KycData)
	assert.NotEmpty(t, result.KycData.AdditionalKycData)
}

func TestClearSoftMatchRejectsMissingLocalKycData(t *testing.T) {
	d := walletdemo.Dispatcher{}
	p := payment.Payment{
		ReferenceID: "ref-2",
		Sender:      payment.PaymentActor{Address: "vaspA$alice", Status: payment.StatusSoftMatch},
		Receiver:    payment.PaymentActor{Address: "vaspB$bob", Status: payment.StatusNone},
		Action:      payment.NewPaymentAction(100, "USD", 0),
	}

	result, err := d.ClearSoftMatch(context.Background(), p, payment.RoleSender)
	require.NoError(t, err)
	assert.Equal(t, paymentmachine.OutcomeReject, result.Outcome)
}
