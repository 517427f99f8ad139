// Package payment implements the immutable payment document and envelope
// records of the travel-rule protocol core (spec.md §3), with canonical
// JSON (de)serialization (spec.md §4.2): absent optional fields are
// omitted from output, enumerated domains reject unknown values on
// decode, and decode(encode(x)) == x for every valid document.
package payment

import "encoding/json"

// KycPayloadType is the constant payload_type carried by every KycData.
const KycPayloadType = "KYC_DATA"

// KycPayloadVersion is the constant payload_version carried by every KycData.
const KycPayloadVersion = 1

// ActionKind is the constant action discriminator on PaymentAction.
const ActionKind = "charge"

// KycData carries the identity fields exchanged to satisfy the travel
// rule. AdditionalKycData's presence/absence is state-significant (it
// distinguishes a soft-match resolution from a fresh KYC submission); it
// is deliberately an opaque payload, not modeled further here.
type KycData struct {
	Type              KycType         `json:"type"`
	PayloadType       string          `json:"payload_type"`
	PayloadVersion    int             `json:"payload_version"`
	GivenName         *string         `json:"given_name,omitempty"`
	Surname           *string         `json:"surname,omitempty"`
	Address           *string         `json:"address,omitempty"`
	Dob               *string         `json:"dob,omitempty"`
	PlaceOfBirth      *string         `json:"place_of_birth,omitempty"`
	NationalID        *string         `json:"national_id,omitempty"`
	LegalEntityName   *string         `json:"legal_entity_name,omitempty"`
	AdditionalKycData json.RawMessage `json:"additional_kyc_data,omitempty"`
}

// NewKycData builds a KycData with the constant payload_type/payload_version
// already set, so callers can't accidentally emit a document that fails
// schema validation on those two fields.
func NewKycData(kind KycType) *KycData {
	return &KycData{
		Type:           kind,
		PayloadType:    KycPayloadType,
		PayloadVersion: KycPayloadVersion,
	}
}

// PaymentActor is one side of a Payment (spec.md §3).
type PaymentActor struct {
	Address      string   `json:"address"`
	Status       Status   `json:"status"`
	AbortCode    *string  `json:"abort_code,omitempty"`
	AbortMessage *string  `json:"abort_message,omitempty"`
	KycData      *KycData `json:"kyc_data,omitempty"`
	Metadata     []string `json:"metadata,omitempty"`
}

// PaymentAction describes the on-chain transfer this exchange is gating.
// Amount, Currency and Action never change after creation (spec.md §3
// invariants); Timestamp is set once, at creation.
type PaymentAction struct {
	Amount    uint64 `json:"amount"`
	Currency  string `json:"currency"`
	Action    string `json:"action"`
	Timestamp int64  `json:"timestamp"`
}

// NewPaymentAction builds a PaymentAction with the constant action
// discriminator and the given creation timestamp (unix seconds).
func NewPaymentAction(amount uint64, currency string, createdAtUnix int64) PaymentAction {
	return PaymentAction{
		Amount:    amount,
		Currency:  currency,
		Action:    ActionKind,
		Timestamp: createdAtUnix,
	}
}

// Payment is the core document the state machine runs over. ReferenceID
// never changes after creation; Action never changes; RecipientSignature
// and each actor's KycData are write-once in practice (spec.md §3).
type Payment struct {
	ReferenceID                string        `json:"reference_id"`
	Sender                     PaymentActor  `json:"sender"`
	Receiver                   PaymentActor  `json:"receiver"`
	Action                     PaymentAction `json:"action"`
	OriginalPaymentReferenceID *string       `json:"original_payment_reference_id,omitempty"`
	RecipientSignature         *string       `json:"recipient_signature,omitempty"`
	Description                *string       `json:"description,omitempty"`
}

// Actor returns the Payment's actor for the given role.
func (p Payment) Actor(role Role) PaymentActor {
	if role == RoleSender {
		return p.Sender
	}
	return p.Receiver
}

// Command wraps a Payment with its object-type discriminator.
type Command struct {
	ObjectType string  `json:"_ObjectType"`
	Payment    Payment `json:"payment"`
}

// CommandObjectType is the constant _ObjectType of every Command.
const CommandObjectType = "PaymentCommand"

// NewCommand builds a Command with the constant discriminator set.
func NewCommand(p Payment) Command {
	return Command{ObjectType: CommandObjectType, Payment: p}
}

// CommandRequest is the envelope payload sent from one VASP to the other.
type CommandRequest struct {
	Cid         string  `json:"cid"`
	CommandType string  `json:"command_type"`
	Command     Command `json:"command"`
	ObjectType  string  `json:"_ObjectType"`
}

// CommandRequestObjectType is the constant _ObjectType of CommandRequest.
const CommandRequestObjectType = "CommandRequestObject"

// CommandTypePayment is the constant command_type of every CommandRequest.
const CommandTypePayment = "PaymentCommand"

// NewCommandRequest builds a CommandRequest with its discriminators set.
func NewCommandRequest(cid string, cmd Command) CommandRequest {
	return CommandRequest{
		Cid:         cid,
		CommandType: CommandTypePayment,
		Command:     cmd,
		ObjectType:  CommandRequestObjectType,
	}
}

// OffChainError is a structured error surfaced either embedded in a
// CommandResponse (inbound path) or converted to a Go error (outbound
// path) — spec.md §4.7.
type OffChainError struct {
	Type    ErrorType `json:"type"`
	Code    string    `json:"code"`
	Field   *string   `json:"field,omitempty"`
	Message *string   `json:"message,omitempty"`
}

// CommandResponse is the reply to a CommandRequest.
type CommandResponse struct {
	Status     ResponseStatus  `json:"status"`
	Error      []OffChainError `json:"error,omitempty"`
	Cid        *string         `json:"cid,omitempty"`
	ObjectType string          `json:"_ObjectType"`
}

// CommandResponseObjectType is the constant _ObjectType of CommandResponse.
const CommandResponseObjectType = "CommandResponseObject"

// NewSuccessResponse builds a success CommandResponse echoing cid.
func NewSuccessResponse(cid *string) CommandResponse {
	return CommandResponse{
		Status:     ResponseSuccess,
		Cid:        cid,
		ObjectType: CommandResponseObjectType,
	}
}

// NewFailureResponse builds a failure CommandResponse carrying errs and
// echoing cid (nil if the request's cid was never recovered).
func NewFailureResponse(cid *string, errs ...OffChainError) CommandResponse {
	return CommandResponse{
		Status:     ResponseFailure,
		Error:      errs,
		Cid:        cid,
		ObjectType: CommandResponseObjectType,
	}
}
