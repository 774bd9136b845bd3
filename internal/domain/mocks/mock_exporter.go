// Package mocks provides testify mocks for the domain interfaces.
package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/takty/croqujs-sub000/internal/domain"
	m "github.com/takty/croqujs-sub000/internal/model"
)

// MockExporter is a mock implementation of domain.Exporter.
type MockExporter struct {
	mock.Mock
}

var _ domain.Exporter = (*MockExporter)(nil)

// NewMockExporter creates a MockExporter whose expectations are asserted when
// the test finishes.
func NewMockExporter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockExporter {
	mockExporter := &MockExporter{}
	mockExporter.Mock.Test(t)

	t.Cleanup(func() { mockExporter.AssertExpectations(t) })

	return mockExporter
}

// Declarations provides a mock function.
func (_m *MockExporter) Declarations(doc m.Document) []m.Declaration {
	ret := _m.Called(doc)

	var decls []m.Declaration
	if v := ret.Get(0); v != nil {
		decls = v.([]m.Declaration)
	}

	return decls
}

// FunctionNames provides a mock function.
func (_m *MockExporter) FunctionNames(source string) []string {
	ret := _m.Called(source)

	var names []string
	if v := ret.Get(0); v != nil {
		names = v.([]string)
	}

	return names
}

// Check provides a mock function.
func (_m *MockExporter) Check(doc m.Document) m.CheckResult {
	ret := _m.Called(doc)

	return ret.Get(0).(m.CheckResult)
}

// ExportLibrary provides a mock function.
func (_m *MockExporter) ExportLibrary(source string, out m.Path, namespace string, functions []string) error {
	ret := _m.Called(source, out, namespace, functions)

	return ret.Error(0)
}

// ExportWebPage provides a mock function.
func (_m *MockExporter) ExportWebPage(doc m.Document, outDir m.Path, injectShim bool) (m.PageResult, error) {
	ret := _m.Called(doc, outDir, injectShim)

	return ret.Get(0).(m.PageResult), ret.Error(1)
}

// Export provides a mock function.
func (_m *MockExporter) Export(doc m.Document, target m.ExportTarget) (m.ExportResult, error) {
	ret := _m.Called(doc, target)

	return ret.Get(0).(m.ExportResult), ret.Error(1)
}
