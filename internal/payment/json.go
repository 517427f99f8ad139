package payment

import (
	"bytes"
	"encoding/json"
)

// EncodeCommand produces the canonical JSON encoding of a Command: null
// optional fields are omitted (struct tags), enums are strings, and
// _ObjectType discriminators are emitted.
func EncodeCommand(c Command) ([]byte, error) {
	return json.Marshal(c)
}

// DecodeCommand parses canonical JSON into a Command, rejecting unknown
// enum values and, via Validate, missing required fields or wrong
// constants.
func DecodeCommand(data []byte) (Command, error) {
	var c Command
	if err := json.Unmarshal(data, &c); err != nil {
		return Command{}, err
	}
	if err := c.Validate(); err != nil {
		return Command{}, err
	}
	return c, nil
}

// DecodeCommandRequest parses canonical JSON into a CommandRequest.
func DecodeCommandRequest(data []byte) (CommandRequest, error) {
	var r CommandRequest
	if err := json.Unmarshal(data, &r); err != nil {
		return CommandRequest{}, err
	}
	if err := r.Validate(); err != nil {
		return CommandRequest{}, err
	}
	return r, nil
}

// EncodeCommandRequest produces the canonical JSON encoding of a
// CommandRequest.
func EncodeCommandRequest(r CommandRequest) ([]byte, error) {
	return json.Marshal(r)
}

// EncodeCommandResponse produces the canonical JSON encoding of a
// CommandResponse.
func EncodeCommandResponse(r CommandResponse) ([]byte, error) {
	return json.Marshal(r)
}

// DecodeCommandResponse parses canonical JSON into a CommandResponse.
func DecodeCommandResponse(data []byte) (CommandResponse, error) {
	var r CommandResponse
	if err := json.Unmarshal(data, &r); err != nil {
		return CommandResponse{}, err
	}
	if err := r.Validate(); err != nil {
		return CommandResponse{}, err
	}
	return r, nil
}

// CanonicalJSON re-encodes a Command to its canonical byte form, used by
// the engine both to persist a Record's cmd_json and to test two commands
// for byte-equivalence (the idempotent-replay check of spec.md §4.6 step
// 3: "byte-equivalent to the stored command").
func CanonicalJSON(c Command) ([]byte, error) {
	return EncodeCommand(c)
}

// SameCommand reports whether two already-canonicalized command JSON blobs
// are byte-equal.
func SameCommand(a, b []byte) bool {
	return bytes.Equal(a, b)
}
