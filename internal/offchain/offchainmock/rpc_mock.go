// Package offchainmock holds a hand-authored go.uber.org/mock double for
// offchain.RPC, in the shape mockgen would generate for it.
package offchainmock

import (
	"context"
	"crypto/ed25519"
	"reflect"

	"go.uber.org/mock/gomock"

	"github.com/travelrule/engine/internal/payment"
)

// MockRPC is a mock of the RPC interface.
type MockRPC struct {
	ctrl     *gomock.Controller
	recorder *MockRPCMockRecorder
}

// MockRPCMockRecorder is the mock recorder for MockRPC.
type MockRPCMockRecorder struct {
	mock *MockRPC
}

// NewMockRPC creates a new mock instance.
func NewMockRPC(ctrl *gomock.Controller) *MockRPC {
	mock := &MockRPC{ctrl: ctrl}
	mock.recorder = &MockRPCMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockRPC) EXPECT() *MockRPCMockRecorder {
	return m.recorder
}

// ResolveCounterparty mocks base method.
func (m *MockRPC) ResolveCounterparty(ctx context.Context, accountAddress string) (string, ed25519.PublicKey, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ResolveCounterparty", ctx, accountAddress)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(ed25519.PublicKey)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// ResolveCounterparty indicates an expected call.
func (mr *MockRPCMockRecorder) ResolveCounterparty(ctx, accountAddress any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ResolveCounterparty", reflect.TypeOf((*MockRPC)(nil).ResolveCounterparty), ctx, accountAddress)
}

// ResolveVerificationKey mocks base method.
func (m *MockRPC) ResolveVerificationKey(ctx context.Context, accountAddress string) (ed25519.PublicKey, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ResolveVerificationKey", ctx, accountAddress)
	ret0, _ := ret[0].(ed25519.PublicKey)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ResolveVerificationKey indicates an expected call.
func (mr *MockRPCMockRecorder) ResolveVerificationKey(ctx, accountAddress any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ResolveVerificationKey", reflect.TypeOf((*MockRPC)(nil).ResolveVerificationKey), ctx, accountAddress)
}

// AccountParent mocks base method.
func (m *MockRPC) AccountParent(ctx context.Context, accountAddress string) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AccountParent", ctx, accountAddress)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// AccountParent indicates an expected call.
func (mr *MockRPCMockRecorder) AccountParent(ctx, accountAddress any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AccountParent", reflect.TypeOf((*MockRPC)(nil).AccountParent), ctx, accountAddress)
}

// SubmitTransaction mocks base method.
func (m *MockRPC) SubmitTransaction(ctx context.Context, p payment.Payment) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SubmitTransaction", ctx, p)
	ret0, _ := ret[0].(error)
	return ret0
}

// SubmitTransaction indicates an expected call.
func (mr *MockRPCMockRecorder) SubmitTransaction(ctx, p any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SubmitTransaction", reflect.TypeOf((*MockRPC)(nil).SubmitTransaction), ctx, p)
}
