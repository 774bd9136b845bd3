package domain

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/takty/croqujs-sub000/internal/adapter"
	m "github.com/takty/croqujs-sub000/internal/model"
)

const (
	// LineCommentMarker starts every directive comment.
	LineCommentMarker = "//"
	// DirectiveSigil marks a line comment as a directive.
	DirectiveSigil = "@"

	aliasKeyword = "as"
)

var directiveKinds = map[string]m.DeclarationKind{
	DirectiveSigil + "use":    m.KindUse,
	DirectiveSigil + "need":   m.KindNeed,
	DirectiveSigil + "import": m.KindImport,
}

var urlScheme = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.\-]*://`)

// ParseDeclarations scans text line by line and returns the dependency
// declarations found in directive comments, in the order they appear.
// Lines that are not well-formed directives are skipped.
func ParseDeclarations(text string) []m.Declaration {
	var decls []m.Declaration

	for _, line := range splitLines(text) {
		kind, params, ok := parseDirective(line)
		if !ok {
			continue
		}

		tokens := Tokenize(params)

		if kind == m.KindUse {
			decls = append(decls, useDeclarations(tokens)...)
			continue
		}

		for _, tok := range tokens {
			tok = unwrapQuotes(tok)
			if tok == "" {
				continue
			}

			decls = append(decls, newDeclaration(kind, tok))
		}
	}

	return decls
}

// Tokenize splits a directive parameter string on unquoted whitespace.
// Single- or double-quoted spans are kept whole with the quotes removed; an
// unterminated quote runs to the end of the string. There are no escapes.
func Tokenize(params string) []string {
	tokens := []string{}

	var (
		cur     strings.Builder
		inToken bool
		quote   rune
	)

	for _, r := range params {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inToken = true
		case unicode.IsSpace(r):
			if inToken {
				tokens = append(tokens, cur.String())
				cur.Reset()

				inToken = false
			}
		default:
			cur.WriteRune(r)

			inToken = true
		}
	}

	if inToken {
		tokens = append(tokens, cur.String())
	}

	return tokens
}

func parseDirective(line string) (m.DeclarationKind, string, bool) {
	s := strings.TrimSpace(line)
	if !strings.HasPrefix(s, LineCommentMarker) {
		return "", "", false
	}

	s = strings.TrimSpace(strings.TrimPrefix(s, LineCommentMarker))
	if !strings.HasPrefix(s, DirectiveSigil) {
		return "", "", false
	}

	name, params := s, ""
	if i := strings.IndexFunc(s, unicode.IsSpace); i >= 0 {
		name, params = s[:i], s[i:]
	}

	kind, ok := directiveKinds[strings.TrimSuffix(name, ";")]
	if !ok {
		return "", "", false
	}

	params = strings.TrimSpace(params)
	params = strings.TrimSpace(strings.TrimSuffix(params, ";"))

	return kind, params, true
}

func useDeclarations(tokens []string) []m.Declaration {
	var (
		decls    []m.Declaration
		declared []string
	)

	for i := 0; i < len(tokens); i++ {
		tok := unwrapQuotes(tokens[i])

		if tok == aliasKeyword {
			if i+1 < len(tokens) && len(decls) > 0 {
				decls[len(decls)-1].Alias = unwrapQuotes(tokens[i+1])
			}

			i++

			continue
		}

		if tok == "" {
			continue
		}

		decls = append(decls, newDeclaration(m.KindUse, tok))
		declared = append(declared, tok)
	}

	for i := range decls {
		if decls[i].Alias == "" {
			decls[i].Alias = InferNamespace(declared[i])
		}
	}

	return decls
}

func newDeclaration(kind m.DeclarationKind, tok string) m.Declaration {
	return m.Declaration{
		Kind:   kind,
		Target: withScriptExt(tok),
		Remote: isRemote(tok),
	}
}

func withScriptExt(path string) string {
	if strings.HasSuffix(path, adapter.ScriptExt) {
		return path
	}

	return path + adapter.ScriptExt
}

func isRemote(path string) bool {
	return urlScheme.MatchString(path) || strings.HasPrefix(path, "//")
}

func unwrapQuotes(tok string) string {
	if len(tok) >= 2 && (tok[0] == '\'' || tok[0] == '"') && tok[len(tok)-1] == tok[0] {
		return tok[1 : len(tok)-1]
	}

	return tok
}

// splitLines splits text on any of the usual line terminators.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	return strings.Split(text, "\n")
}
