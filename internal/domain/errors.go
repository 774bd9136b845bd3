package domain

import (
	"errors"
	"fmt"

	m "github.com/takty/croqujs-sub000/internal/model"
)

var (
	// ErrUnresolved is the sentinel error wrapped by UnresolvedError.
	ErrUnresolved = errors.New("unresolved dependency")
	// ErrRemoteNotAllowed is returned when a URL declaration is used where
	// only a local file can be read.
	ErrRemoteNotAllowed = errors.New("remote dependency not allowed here")
	// ErrNotWritten is returned when an output file does not exist after a
	// write attempt. WriteError matches it with errors.Is().
	ErrNotWritten = errors.New("output was not written")
	// ErrSameFile is returned when a bundle file would be written over the
	// source it is made from.
	ErrSameFile = errors.New("destination is the source file")
)

// UnresolvedError reports a declared dependency that matched no candidate root.
// It wraps ErrUnresolved for errors.Is() compatibility.
type UnresolvedError struct {
	Path string // as declared
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("unresolved dependency %q", e.Path)
}

// Unwrap returns ErrUnresolved for errors.Is() compatibility.
func (e *UnresolvedError) Unwrap() error { return ErrUnresolved }

// WriteError reports a bundle file that could not be written.
type WriteError struct {
	Path m.Path
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Is reports ErrNotWritten so callers need not distinguish the cause.
func (e *WriteError) Is(target error) bool { return target == ErrNotWritten }
