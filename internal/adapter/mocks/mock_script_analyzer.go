package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/takty/croqujs-sub000/internal/adapter"
)

// MockScriptAnalyzer is a mock implementation of adapter.ScriptAnalyzer.
type MockScriptAnalyzer struct {
	mock.Mock
}

var _ adapter.ScriptAnalyzer = (*MockScriptAnalyzer)(nil)

// NewMockScriptAnalyzer creates a MockScriptAnalyzer whose expectations are
// asserted when the test finishes.
func NewMockScriptAnalyzer(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockScriptAnalyzer {
	mockAnalyzer := &MockScriptAnalyzer{}
	mockAnalyzer.Mock.Test(t)

	t.Cleanup(func() { mockAnalyzer.AssertExpectations(t) })

	return mockAnalyzer
}

// FunctionNames provides a mock function.
func (_m *MockScriptAnalyzer) FunctionNames(src string) []string {
	ret := _m.Called(src)

	var names []string
	if v := ret.Get(0); v != nil {
		names = v.([]string)
	}

	return names
}
