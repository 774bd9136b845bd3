package domain

import (
	"strings"
)

var namespaceReplacer = strings.NewReplacer(
	" ", "_",
	"-", "_",
	"+", "_",
	`\`, "_",
	".", "_",
)

// InferNamespace derives a namespace identifier from a dependency path: the
// last non-empty path segment, cut at its first dot and upper-cased. When no
// such segment yields a name, the path itself is used. Characters that cannot
// appear in an identifier (space, '-', '+', '\' and '.') become '_'.
func InferNamespace(path string) string {
	segments := strings.Split(strings.ReplaceAll(path, `\`, "/"), "/")

	name := ""

	for i := len(segments) - 1; i >= 0; i-- {
		seg := segments[i]
		if seg == "" {
			continue
		}

		if dot := strings.Index(seg, "."); dot >= 0 {
			seg = seg[:dot]
		}

		name = strings.ToUpper(seg)

		break
	}

	if name == "" {
		name = path
	}

	return namespaceReplacer.Replace(name)
}
