package model

// ExportTarget describes the requested artifact. It is implemented by
// LibraryTarget and PageTarget only.
type ExportTarget interface {
	exportTarget()
}

// LibraryTarget requests the script wrapped as a library written to Output.
type LibraryTarget struct {
	Output    Path
	Namespace string
	Functions []string
}

// PageTarget requests a runnable bundle written into OutputDir.
type PageTarget struct {
	OutputDir  Path
	InjectShim bool
}

func (LibraryTarget) exportTarget() {}
func (PageTarget) exportTarget()    {}

// CheckResult holds the outcome of a dry-run dependency resolution.
type CheckResult struct {
	// Unresolved is the declared path of the first dependency that could not
	// be located. It is empty when every local dependency resolves.
	Unresolved string
	// Remote lists the declarations that reference URLs and were not checked.
	Remote []Declaration
}

// OK reports whether every local dependency resolved.
func (r CheckResult) OK() bool {
	return r.Unresolved == ""
}

// PageResult describes a written web-page bundle.
type PageResult struct {
	Path Path // index document
	// UserCodeOffset is the number of characters preceding the user's source
	// in the index document.
	UserCodeOffset int
	// UserCodeLine is the 1-based line of the index document on which the
	// user's source starts.
	UserCodeLine int
	// UserCodeLength and UserCodeLines measure the user's source as embedded.
	UserCodeLength int
	UserCodeLines  int
	Tags           []string
}

// ExportResult is returned by a dispatched export. Exactly one of Library
// and Page is set, matching the requested target.
type ExportResult struct {
	Library Path
	Page    *PageResult
}
