package domain

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/takty/croqujs-sub000/internal/adapter"
	"github.com/takty/croqujs-sub000/internal/adapter/mocks"
	m "github.com/takty/croqujs-sub000/internal/model"
)

const mathSource = "function add(a, b) { return a + b; }\nfunction mul(a, b) { return a * b; }\n"

func newLocalAssembler(libraryRoot, shim string) *Assembler {
	fs := adapter.NewLocalSourceFSAdapter()
	logger := testLogger()
	resolver := NewResolver(fs, m.Path(libraryRoot), logger)

	return NewAssembler(fs, adapter.NewLocalScriptAnalyzer(), resolver, NewPackager(fs, logger), m.Path(shim), "", logger)
}

func TestAssembler_UseDependency(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeTestFile(t, filepath.Join(src, "math.js"), mathSource)

	text := "// @use './math.js' as MATH\nconsole.log(1);"
	doc := m.Document{Text: text, Origin: m.Path(filepath.Join(src, "main.js"))}

	res, err := newLocalAssembler("", "").AssembleWebPage(doc, m.Path(out), false)
	require.NoError(t, err)

	assert.Equal(t, m.Path(filepath.Join(out, IndexFileName)), res.Path)
	assert.Equal(t, []string{`<script src="math.js"></script>`}, res.Tags)

	index := readTestFile(t, filepath.Join(out, IndexFileName))
	assert.Contains(t, index, "<title>Main</title>")
	assert.Contains(t, index, `<script src="math.js"></script>`)

	runes := []rune(index)
	require.LessOrEqual(t, res.UserCodeOffset+res.UserCodeLength, len(runes))
	assert.Equal(t, text, string(runes[res.UserCodeOffset:res.UserCodeOffset+res.UserCodeLength]))
	assert.Equal(t, 10, res.UserCodeLine)
	assert.Equal(t, 2, res.UserCodeLines)
	assert.Equal(t, "// @use './math.js' as MATH", strings.Split(index, "\n")[res.UserCodeLine-1])

	lib := readTestFile(t, filepath.Join(out, "math.js"))
	assert.Equal(t, WrapLibrary(mathSource, "MATH", []string{"add", "mul"}), lib)
	assert.True(t, strings.HasPrefix(lib, "var MATH = (function () {\n"))
	assert.Contains(t, lib, "\treturn {add: add, mul: mul};\n")
}

func TestAssembler_MissingDependency(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()

	doc := m.Document{
		Text:   "// @use './math.js' as MATH\nconsole.log(1);",
		Origin: m.Path(filepath.Join(src, "main.js")),
	}

	_, err := newLocalAssembler("", "").AssembleWebPage(doc, m.Path(out), false)

	var unresolved *UnresolvedError
	require.True(t, errors.As(err, &unresolved))
	assert.Equal(t, "./math.js", unresolved.Path)

	_, statErr := os.Stat(filepath.Join(out, IndexFileName))
	assert.True(t, os.IsNotExist(statErr), "index.html must not be written")
}

func TestAssembler_RemoteDependencyTouchesNoSource(t *testing.T) {
	fs := mocks.NewMockSourceFSAdapter(t)
	analyzer := mocks.NewMockScriptAnalyzer(t)
	logger := testLogger()

	fs.On("JoinPath", "/out", IndexFileName).Return(m.Path("/out/index.html"))
	fs.On("WriteFile", m.Path("/out/index.html"), mock.Anything, mock.Anything).Return(nil)

	resolver := NewResolver(fs, "/lib", logger)
	a := NewAssembler(fs, analyzer, resolver, NewPackager(fs, logger), "", "", logger)

	doc := m.Document{Text: "// @need http://example.com/a.js\n// @use https://example.com/b.js as B\n"}

	res, err := a.AssembleWebPage(doc, "/out", false)
	require.NoError(t, err)

	assert.Equal(t, []string{
		`<script src="http://example.com/a.js"></script>`,
		`<script src="https://example.com/b.js"></script>`,
	}, res.Tags)
}

func TestAssembler_CopiesNeedAndImport(t *testing.T) {
	src := t.TempDir()
	lib := t.TempDir()
	out := t.TempDir()
	writeTestFile(t, filepath.Join(src, "lib", "turtle.js"), "function turtle() {}\n")
	writeTestFile(t, filepath.Join(lib, "shapes", "circle.js"), "function circle() {}\n")

	doc := m.Document{
		Text:   "// @need lib/turtle\n// @import shapes/circle;\ncircle();\n",
		Origin: m.Path(filepath.Join(src, "sketch.js")),
	}

	res, err := newLocalAssembler(lib, "").AssembleWebPage(doc, m.Path(out), false)
	require.NoError(t, err)

	assert.Equal(t, []string{
		`<script src="lib/turtle.js"></script>`,
		`<script src="shapes/circle.js"></script>`,
	}, res.Tags)
	assert.Equal(t, "function turtle() {}\n", readTestFile(t, filepath.Join(out, "lib", "turtle.js")))
	assert.Equal(t, "function circle() {}\n", readTestFile(t, filepath.Join(out, "shapes", "circle.js")))
}

func TestAssembler_Idempotent(t *testing.T) {
	src := t.TempDir()
	writeTestFile(t, filepath.Join(src, "math.js"), mathSource)

	doc := m.Document{
		Text:   "// @use math as M\nM.add(1, 2);\n",
		Origin: m.Path(filepath.Join(src, "main.js")),
	}
	a := newLocalAssembler("", "")

	first, second := t.TempDir(), t.TempDir()

	res1, err := a.AssembleWebPage(doc, m.Path(first), false)
	require.NoError(t, err)
	res2, err := a.AssembleWebPage(doc, m.Path(second), false)
	require.NoError(t, err)

	assert.Equal(t, res1.UserCodeOffset, res2.UserCodeOffset)
	assert.Equal(t, res1.Tags, res2.Tags)
	assert.Equal(t,
		readTestFile(t, filepath.Join(first, IndexFileName)),
		readTestFile(t, filepath.Join(second, IndexFileName)))
	assert.Equal(t,
		readTestFile(t, filepath.Join(first, "math.js")),
		readTestFile(t, filepath.Join(second, "math.js")))
}

func TestAssembler_ParentTargetsStayInsideBundle(t *testing.T) {
	proj := t.TempDir()
	util := filepath.Join(proj, "src", "util.js")
	shared := filepath.Join(proj, "shared", "z.js")
	writeTestFile(t, util, mathSource)
	writeTestFile(t, shared, "var z;\n")

	out := filepath.Join(proj, "dist")
	doc := m.Document{
		Text:   "// @use ../src/util.js as U\n// @need ../shared/z\nU.add(1, 2);\n",
		Origin: m.Path(filepath.Join(proj, "src", "main.js")),
	}

	res, err := newLocalAssembler("", "").AssembleWebPage(doc, m.Path(out), false)
	require.NoError(t, err)

	assert.Equal(t, []string{
		`<script src="src/util.js"></script>`,
		`<script src="shared/z.js"></script>`,
	}, res.Tags)
	assert.Equal(t, mathSource, readTestFile(t, util))
	assert.Equal(t, "var z;\n", readTestFile(t, shared))
	assert.Equal(t, WrapLibrary(mathSource, "U", []string{"add", "mul"}), readTestFile(t, filepath.Join(out, "src", "util.js")))
	assert.Equal(t, "var z;\n", readTestFile(t, filepath.Join(out, "shared", "z.js")))
}

func TestAssembler_RefusesToOverwriteSources(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "use", text: "// @use math as MATH\n"},
		{name: "need", text: "// @need math\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := t.TempDir()
			writeTestFile(t, filepath.Join(src, "math.js"), mathSource)

			doc := m.Document{Text: tt.text, Origin: m.Path(filepath.Join(src, "main.js"))}
			a := newLocalAssembler("", "")

			for range 2 {
				_, err := a.AssembleWebPage(doc, m.Path(src), false)
				require.ErrorIs(t, err, ErrSameFile)
			}

			assert.Equal(t, mathSource, readTestFile(t, filepath.Join(src, "math.js")))
			assert.NoFileExists(t, filepath.Join(src, IndexFileName))
		})
	}
}

func TestAssembler_RuntimeShim(t *testing.T) {
	t.Run("built in", func(t *testing.T) {
		out := t.TempDir()

		res, err := newLocalAssembler("", "").AssembleWebPage(m.Document{Text: "draw();"}, m.Path(out), true)
		require.NoError(t, err)

		require.NotEmpty(t, res.Tags)
		assert.Equal(t, `<script src="`+ShimFileName+`"></script>`, res.Tags[0])
		assert.Equal(t, string(builtinShim), readTestFile(t, filepath.Join(out, ShimFileName)))
	})

	t.Run("configured", func(t *testing.T) {
		shim := filepath.Join(t.TempDir(), "bridge.js")
		writeTestFile(t, shim, "// bridge\n")
		out := t.TempDir()

		res, err := newLocalAssembler("", shim).AssembleWebPage(m.Document{Text: "draw();"}, m.Path(out), true)
		require.NoError(t, err)

		assert.Equal(t, []string{`<script src="bridge.js"></script>`}, res.Tags)
		assert.Equal(t, "// bridge\n", readTestFile(t, filepath.Join(out, "bridge.js")))
	})

	t.Run("shim precedes dependencies", func(t *testing.T) {
		out := t.TempDir()
		doc := m.Document{Text: "// @need https://cdn.example.com/stage.js\n"}

		res, err := newLocalAssembler("", "").AssembleWebPage(doc, m.Path(out), true)
		require.NoError(t, err)

		assert.Equal(t, []string{
			`<script src="` + ShimFileName + `"></script>`,
			`<script src="https://cdn.example.com/stage.js"></script>`,
		}, res.Tags)
	})
}

func TestAssembler_PageTitle(t *testing.T) {
	a := newLocalAssembler("", "")

	tests := []struct {
		name   string
		origin m.Path
		want   string
	}{
		{name: "unsaved", origin: "", want: DefaultTitle},
		{name: "unix path", origin: "/home/u/sketch.js", want: "Sketch"},
		{name: "windows path", origin: `C:\proj\main.js`, want: "Main"},
		{name: "unicode", origin: "/w/émile.js", want: "Émile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.pageTitle(m.Document{Origin: tt.origin}))
		})
	}

	t.Run("title is escaped", func(t *testing.T) {
		dir := t.TempDir()
		out := t.TempDir()

		_, err := a.AssembleWebPage(m.Document{Origin: m.Path(filepath.Join(dir, "a<b>.js"))}, m.Path(out), false)
		require.NoError(t, err)

		assert.Contains(t, readTestFile(t, filepath.Join(out, IndexFileName)), "<title>A&lt;b&gt;</title>")
	})
}

func TestAssembler_OffsetCountsCharacters(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()

	doc := m.Document{Text: "draw('日本');", Origin: m.Path(filepath.Join(dir, "日本語.js"))}

	res, err := newLocalAssembler("", "").AssembleWebPage(doc, m.Path(out), false)
	require.NoError(t, err)

	runes := []rune(readTestFile(t, filepath.Join(out, IndexFileName)))
	assert.Equal(t, doc.Text, string(runes[res.UserCodeOffset:res.UserCodeOffset+res.UserCodeLength]))
}
