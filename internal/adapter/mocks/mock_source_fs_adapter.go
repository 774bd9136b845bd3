// Package mocks provides testify mocks for the adapter interfaces.
package mocks

import (
	"os"

	"github.com/stretchr/testify/mock"

	"github.com/takty/croqujs-sub000/internal/adapter"
	m "github.com/takty/croqujs-sub000/internal/model"
)

// MockSourceFSAdapter is a mock implementation of adapter.SourceFSAdapter.
type MockSourceFSAdapter struct {
	mock.Mock
}

var _ adapter.SourceFSAdapter = (*MockSourceFSAdapter)(nil)

// NewMockSourceFSAdapter creates a MockSourceFSAdapter whose expectations are
// asserted when the test finishes.
func NewMockSourceFSAdapter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSourceFSAdapter {
	mockAdapter := &MockSourceFSAdapter{}
	mockAdapter.Mock.Test(t)

	t.Cleanup(func() { mockAdapter.AssertExpectations(t) })

	return mockAdapter
}

// Get provides a mock function.
func (_m *MockSourceFSAdapter) Get(roots []m.Path) ([]m.Path, error) {
	ret := _m.Called(roots)

	var paths []m.Path
	if v := ret.Get(0); v != nil {
		paths = v.([]m.Path)
	}

	return paths, ret.Error(1)
}

// Walk provides a mock function.
func (_m *MockSourceFSAdapter) Walk(root m.Path, recursive bool, fn adapter.FilepathWalkFunc) error {
	ret := _m.Called(root, recursive, fn)

	return ret.Error(0)
}

// ReadFile provides a mock function.
func (_m *MockSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	ret := _m.Called(path)

	var content []byte
	if v := ret.Get(0); v != nil {
		content = v.([]byte)
	}

	return content, ret.Error(1)
}

// WriteFile provides a mock function.
func (_m *MockSourceFSAdapter) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	ret := _m.Called(path, content, perm)

	return ret.Error(0)
}

// CopyFile provides a mock function.
func (_m *MockSourceFSAdapter) CopyFile(src, dst m.Path) error {
	ret := _m.Called(src, dst)

	return ret.Error(0)
}

// FileInfo provides a mock function.
func (_m *MockSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	ret := _m.Called(path)

	var info os.FileInfo
	if v := ret.Get(0); v != nil {
		info = v.(os.FileInfo)
	}

	return info, ret.Error(1)
}

// JoinPath provides a mock function.
func (_m *MockSourceFSAdapter) JoinPath(elem ...string) m.Path {
	args := make([]interface{}, len(elem))
	for i, e := range elem {
		args[i] = e
	}

	ret := _m.Called(args...)

	return ret.Get(0).(m.Path)
}
