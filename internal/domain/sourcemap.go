package domain

import (
	m "github.com/takty/croqujs-sub000/internal/model"
)

// MapPosition translates a 1-based line and column reported for the index
// document of res into a line and column of the user's source. ok is false
// when the position lies outside the user's source.
func MapPosition(res m.PageResult, line, col int) (srcLine, srcCol int, ok bool) {
	if res.UserCodeLine <= 0 || line < res.UserCodeLine {
		return 0, 0, false
	}

	srcLine = line - res.UserCodeLine + 1
	if srcLine > res.UserCodeLines {
		return 0, 0, false
	}

	return srcLine, col, true
}

// MapOffset translates a character offset into the index document of res
// into an offset into the user's source.
func MapOffset(res m.PageResult, offset int) (int, bool) {
	if offset < res.UserCodeOffset || offset > res.UserCodeOffset+res.UserCodeLength {
		return 0, false
	}

	return offset - res.UserCodeOffset, true
}
