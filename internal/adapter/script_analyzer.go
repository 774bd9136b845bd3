package adapter

import (
	"regexp"
)

// ScriptAnalyzer encapsulates script-specific structure analysis so the domain
// layer can wrap libraries without understanding the script language.
type ScriptAnalyzer interface {
	// FunctionNames returns the names of the top-level functions declared in
	// src, in declaration order and without duplicates.
	FunctionNames(src string) []string
}

// topLevelFunction matches function declarations starting at column 0.
var topLevelFunction = regexp.MustCompile(`(?m)^(?:async[ \t]+)?function[ \t]*\*?[ \t]*([A-Za-z_$][\w$]*)[ \t]*\(`)

// LocalScriptAnalyzer is a line-based ScriptAnalyzer. It only recognises
// declarations written without indentation, which is how top-level functions
// appear in sketch code.
type LocalScriptAnalyzer struct{}

// NewLocalScriptAnalyzer constructs a LocalScriptAnalyzer.
func NewLocalScriptAnalyzer() *LocalScriptAnalyzer {
	return &LocalScriptAnalyzer{}
}

// FunctionNames lists top-level function declarations in src.
func (a *LocalScriptAnalyzer) FunctionNames(src string) []string {
	matches := topLevelFunction.FindAllStringSubmatch(src, -1)

	seen := make(map[string]struct{}, len(matches))
	names := make([]string, 0, len(matches))

	for _, match := range matches {
		name := match[1]
		if _, ok := seen[name]; ok {
			continue
		}

		seen[name] = struct{}{}
		names = append(names, name)
	}

	return names
}
