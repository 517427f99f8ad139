package engine

import "github.com/travelrule/engine/internal/payment"

// changes describes a mutation to the local actor's fields, plus the
// top-level recipient_signature. All fields default to the previous
// value when nil. updatePayment is the only way the engine mutates a
// payment (spec.md §4.6 "internal helper update_payment").
type changes struct {
	Status             *payment.Status
	KycData            *payment.KycData
	AbortCode          *string
	AbortMessage       *string
	RecipientSignature *string
}

func updatePayment(role payment.Role, p payment.Payment, c changes) payment.Payment {
	next := p
	actor := p.Actor(role)

	if c.Status != nil {
		actor.Status = *c.Status
	}
	if c.KycData != nil {
		actor.KycData = c.KycData
	}
	if c.AbortCode != nil {
		actor.AbortCode = c.AbortCode
	}
	if c.AbortMessage != nil {
		actor.AbortMessage = c.AbortMessage
	}

	if role == payment.RoleSender {
		next.Sender = actor
	} else {
		next.Receiver = actor
	}
	if c.RecipientSignature != nil {
		next.RecipientSignature = c.RecipientSignature
	}
	return next
}
