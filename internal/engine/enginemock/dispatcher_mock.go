// Package enginemock holds a hand-authored go.uber.org/mock double for
// engine.ActionDispatcher, in the shape mockgen would generate for it.
package enginemock

import (
	"context"
	"reflect"

	"go.uber.org/mock/gomock"

	"github.com/travelrule/engine/internal/engine"
	"github.com/travelrule/engine/internal/payment"
)

// MockActionDispatcher is a mock of the ActionDispatcher interface.
type MockActionDispatcher struct {
	ctrl     *gomock.Controller
	recorder *MockActionDispatcherMockRecorder
}

// MockActionDispatcherMockRecorder is the mock recorder for MockActionDispatcher.
type MockActionDispatcherMockRecorder struct {
	mock *MockActionDispatcher
}

// NewMockActionDispatcher creates a new mock instance.
func NewMockActionDispatcher(ctrl *gomock.Controller) *MockActionDispatcher {
	mock := &MockActionDispatcher{ctrl: ctrl}
	mock.recorder = &MockActionDispatcherMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockActionDispatcher) EXPECT() *MockActionDispatcherMockRecorder {
	return m.recorder
}

// EvaluateKycData mocks base method.
func (m *MockActionDispatcher) EvaluateKycData(ctx context.Context, p payment.Payment, localRole payment.Role) (engine.ActionResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "EvaluateKycData", ctx, p, localRole)
	ret0, _ := ret[0].(engine.ActionResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// EvaluateKycData indicates an expected call.
func (mr *MockActionDispatcherMockRecorder) EvaluateKycData(ctx, p, localRole any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "EvaluateKycData", reflect.TypeOf((*MockActionDispatcher)(nil).EvaluateKycData), ctx, p, localRole)
}

// ReviewKycData mocks base method.
func (m *MockActionDispatcher) ReviewKycData(ctx context.Context, p payment.Payment, localRole payment.Role) (engine.ActionResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ReviewKycData", ctx, p, localRole)
	ret0, _ := ret[0].(engine.ActionResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ReviewKycData indicates an expected call.
func (mr *MockActionDispatcherMockRecorder) ReviewKycData(ctx, p, localRole any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ReviewKycData", reflect.TypeOf((*MockActionDispatcher)(nil).ReviewKycData), ctx, p, localRole)
}

// ClearSoftMatch mocks base method.
func (m *MockActionDispatcher) ClearSoftMatch(ctx context.Context, p payment.Payment, localRole payment.Role) (engine.ActionResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ClearSoftMatch", ctx, p, localRole)
	ret0, _ := ret[0].(engine.ActionResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ClearSoftMatch indicates an expected call.
func (mr *MockActionDispatcherMockRecorder) ClearSoftMatch(ctx, p, localRole any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ClearSoftMatch", reflect.TypeOf((*MockActionDispatcher)(nil).ClearSoftMatch), ctx, p, localRole)
}
