// Package model defines the data structures shared by the export engine.
package model

import (
	"path"
	"path/filepath"
	"strings"
)

// Path represents a file system path.
type Path string

// Document is a script together with the file it was loaded from.
// Origin is empty when the script has never been saved.
type Document struct {
	Text   string
	Origin Path
}

// BaseDir returns the directory containing the document's origin file.
// Both slash and backslash separators are accepted.
func (d Document) BaseDir() (Path, bool) {
	if d.Origin == "" {
		return "", false
	}

	dir := path.Dir(ToSlash(string(d.Origin)))

	return Path(filepath.FromSlash(dir)), true
}

// BaseName returns the origin's file name without its extension.
func (d Document) BaseName() string {
	if d.Origin == "" {
		return ""
	}

	base := path.Base(ToSlash(string(d.Origin)))

	return strings.TrimSuffix(base, path.Ext(base))
}

// ToSlash replaces every backslash with a forward slash regardless of the
// host platform.
func ToSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}
