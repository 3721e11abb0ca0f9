// Package testutil provides mock implementations for testing the ticket
// application layer.
package testutil

import (
	vo "github.com/ChaleeCh/support-tickets/internal/domain/ticket/valueobjects"
	"github.com/ChaleeCh/support-tickets/internal/shared/logger"
)

// MockAuthorizer mirrors the production capability table without casbin:
// branch managers submit and upload, CM staff edit, both annotate.
type MockAuthorizer struct{}

func NewMockAuthorizer() *MockAuthorizer {
	return &MockAuthorizer{}
}

func (a *MockAuthorizer) CanSubmitTickets(role vo.Role) bool {
	return role.IsBranchManager()
}

func (a *MockAuthorizer) CanUploadBatches(role vo.Role) bool {
	return role.IsBranchManager()
}

func (a *MockAuthorizer) CanEditTable(role vo.Role) bool {
	return role.IsCMStaff()
}

func (a *MockAuthorizer) CanAnnotate(role vo.Role) bool {
	return role.IsBranchManager() || role.IsCMStaff()
}

// NewMockLogger returns a no-op logger.Interface for tests.
func NewMockLogger() logger.Interface {
	return &mockLogger{}
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)                   {}
func (m *mockLogger) Info(msg string, args ...any)                    {}
func (m *mockLogger) Warn(msg string, args ...any)                    {}
func (m *mockLogger) Error(msg string, args ...any)                   {}
func (m *mockLogger) With(args ...any) logger.Interface               { return m }
func (m *mockLogger) Named(name string) logger.Interface              { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {}
