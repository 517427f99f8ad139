package payment

import "fmt"

// Validate enforces the required-field and constant-discriminator rules of
// spec.md §4.2's canonical schema. Enumerated string domains are already
// rejected at decode time by the enum UnmarshalJSON methods; Validate
// covers everything decode can't: required fields and fixed constants.
func (k KycData) Validate() error {
	if k.PayloadType != KycPayloadType {
		return fmt.Errorf("payment: kyc_data.payload_type must be %q, got %q", KycPayloadType, k.PayloadType)
	}
	if k.PayloadVersion != KycPayloadVersion {
		return fmt.Errorf("payment: kyc_data.payload_version must be %d, got %d", KycPayloadVersion, k.PayloadVersion)
	}
	if k.Type != KycTypeIndividual && k.Type != KycTypeEntity {
		return fmt.Errorf("payment: kyc_data.type %q not in {individual,entity}", k.Type)
	}
	return nil
}

func (a PaymentActor) Validate() error {
	if a.Address == "" {
		return fmt.Errorf("payment: actor address is required")
	}
	if _, ok := validStatuses[a.Status]; !ok {
		return fmt.Errorf("payment: actor status %q is not a recognized value", a.Status)
	}
	if a.KycData != nil {
		if err := a.KycData.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (a PaymentAction) Validate() error {
	if a.Action != ActionKind {
		return fmt.Errorf("payment: action must be %q, got %q", ActionKind, a.Action)
	}
	if a.Currency == "" {
		return fmt.Errorf("payment: action currency is required")
	}
	return nil
}

func (p Payment) Validate() error {
	if p.ReferenceID == "" {
		return fmt.Errorf("payment: reference_id is required")
	}
	if err := p.Sender.Validate(); err != nil {
		return fmt.Errorf("payment: sender: %w", err)
	}
	if err := p.Receiver.Validate(); err != nil {
		return fmt.Errorf("payment: receiver: %w", err)
	}
	if err := p.Action.Validate(); err != nil {
		return err
	}
	return nil
}

func (c Command) Validate() error {
	if c.ObjectType != CommandObjectType {
		return fmt.Errorf("payment: command _ObjectType must be %q, got %q", CommandObjectType, c.ObjectType)
	}
	return c.Payment.Validate()
}

func (r CommandRequest) Validate() error {
	if r.ObjectType != CommandRequestObjectType {
		return fmt.Errorf("payment: request _ObjectType must be %q, got %q", CommandRequestObjectType, r.ObjectType)
	}
	if r.CommandType != CommandTypePayment {
		return fmt.Errorf("payment: request command_type must be %q, got %q", CommandTypePayment, r.CommandType)
	}
	if r.Cid == "" {
		return fmt.Errorf("payment: request cid is required")
	}
	return r.Command.Validate()
}

func (e OffChainError) Validate() error {
	if e.Type != ErrorTypeCommand && e.Type != ErrorTypeProtocol {
		return fmt.Errorf("payment: error type %q not in {command_error,protocol_error}", e.Type)
	}
	if e.Code == "" {
		return fmt.Errorf("payment: error code is required")
	}
	return nil
}

func (r CommandResponse) Validate() error {
	if r.ObjectType != CommandResponseObjectType {
		return fmt.Errorf("payment: response _ObjectType must be %q, got %q", CommandResponseObjectType, r.ObjectType)
	}
	if r.Status != ResponseSuccess && r.Status != ResponseFailure {
		return fmt.Errorf("payment: response status %q not in {success,failure}", r.Status)
	}
	for i, e := range r.Error {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("payment: response error[%d]: %w", i, err)
		}
	}
	return nil
}
