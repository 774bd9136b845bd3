// Package mocks provides testify mocks for the controller interfaces.
package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/takty/croqujs-sub000/internal/controller"
	m "github.com/takty/croqujs-sub000/internal/model"
)

// MockUI is a mock implementation of controller.UI.
type MockUI struct {
	mock.Mock
}

var _ controller.UI = (*MockUI)(nil)

// NewMockUI creates a MockUI whose expectations are asserted when the test
// finishes.
func NewMockUI(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUI {
	mockUI := &MockUI{}
	mockUI.Mock.Test(t)

	t.Cleanup(func() { mockUI.AssertExpectations(t) })

	return mockUI
}

// Start provides a mock function.
func (_m *MockUI) Start() error {
	ret := _m.Called()

	return ret.Error(0)
}

// Close provides a mock function.
func (_m *MockUI) Close() {
	_m.Called()
}

// DisplayDeclarations provides a mock function.
func (_m *MockUI) DisplayDeclarations(path m.Path, decls []m.Declaration) error {
	ret := _m.Called(path, decls)

	return ret.Error(0)
}

// DisplayCheckStarted provides a mock function.
func (_m *MockUI) DisplayCheckStarted(total int) {
	_m.Called(total)
}

// DisplayCheckResult provides a mock function.
func (_m *MockUI) DisplayCheckResult(check controller.FileCheck) {
	_m.Called(check)
}

// DisplayCheckSummary provides a mock function.
func (_m *MockUI) DisplayCheckSummary(checks []controller.FileCheck) error {
	ret := _m.Called(checks)

	return ret.Error(0)
}

// DisplayLibrary provides a mock function.
func (_m *MockUI) DisplayLibrary(out m.Path, namespace string, functions []string) error {
	ret := _m.Called(out, namespace, functions)

	return ret.Error(0)
}

// DisplayPage provides a mock function.
func (_m *MockUI) DisplayPage(res m.PageResult) error {
	ret := _m.Called(res)

	return ret.Error(0)
}
