package model

// DeclarationKind represents the directive a dependency was declared with.
type DeclarationKind string

const (
	// KindUse declares a script that is wrapped as a library under a namespace.
	KindUse DeclarationKind = "use"
	// KindNeed declares a script that is included as-is.
	KindNeed DeclarationKind = "need"
	// KindImport declares a script that is included as-is.
	KindImport DeclarationKind = "import"
)

// Declaration is one dependency requirement extracted from a directive comment.
type Declaration struct {
	Kind   DeclarationKind
	Target string // always ends in the script extension
	Alias  string // namespace for KindUse, empty otherwise
	Remote bool   // Target starts with a URL scheme and is never read from disk
}
