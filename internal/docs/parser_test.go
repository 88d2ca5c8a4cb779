package docs

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const manifest = `[package]
name = "sysctl-control"
version = "0.1.0"

[dependencies]
regex = "1"
`

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, contents := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	}
	return dir
}

func TestParseManifestTitle(t *testing.T) {
	dir := writeFiles(t, map[string]string{"Cargo.toml": manifest, "README.md": "nothing"})

	parser, err := NewParser("Cargo.*", `^\[package\]\n`)
	require.NoError(t, err)
	documents, err := parser.Parse(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, documents, 1)

	assert.Contains(t, documents[0].Paragraphs[0].Contents, `name = "sysctl-control"`)

	documents[0].Paragraphs[0].Contents = ""
	want := Document{
		Paragraphs: []Paragraph{{Title: "[package]", Contents: ""}},
		Path:       filepath.Join(dir, "Cargo.toml"),
	}
	if diff := cmp.Diff(want, documents[0]); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestParseZeroMatchesYieldsEmptyDocuments(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.txt": "plain\ntext\n", "b.txt": ""})

	parser, err := NewParser("*.txt", `^== .* ==$`)
	require.NoError(t, err)
	documents, err := parser.Parse(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, documents, 2)
	for _, doc := range documents {
		assert.NotNil(t, doc.Paragraphs)
		assert.Empty(t, doc.Paragraphs)
	}
}

func TestParseNoMatchingFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.txt": "x"})

	parser, err := NewParser("*.rst", `^x$`)
	require.NoError(t, err)
	documents, err := parser.Parse(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, documents)
}

func TestParseRecursiveGlobKeepsTraversalOrder(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"b/two.rst":     "two\n===\nbody two\n",
		"a/one.rst":     "one\n===\nbody one\n",
		"a/deep/x.rst":  "x\n===\nbody x\n",
		"a/ignored.txt": "nope\n===\n",
	})

	parser, err := NewParser("**/*.rst", `^[a-z]+\n=+$`)
	require.NoError(t, err)
	parser.Workers = 3
	documents, err := parser.Parse(context.Background(), dir)
	require.NoError(t, err)

	var got []string
	headings := map[string]string{}
	for _, doc := range documents {
		rel, err := filepath.Rel(dir, doc.Path)
		require.NoError(t, err)
		rel = filepath.ToSlash(rel)
		got = append(got, rel)
		require.Len(t, doc.Paragraphs, 1)
		headings[rel] = doc.Paragraphs[0].Heading()
	}
	assert.ElementsMatch(t, []string{"a/deep/x.rst", "a/one.rst", "b/two.rst"}, got)
	assert.Equal(t, map[string]string{"a/deep/x.rst": "x", "a/one.rst": "one", "b/two.rst": "two"}, headings)

	walked, err := doublestar.Glob(os.DirFS(dir), "**/*.rst", doublestar.WithFilesOnly())
	require.NoError(t, err)
	assert.Equal(t, walked, got)
}

func TestParseSkipsUnreadableFiles(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can read files regardless of mode")
	}
	dir := writeFiles(t, map[string]string{"ok.rst": "a\n=\n", "locked.rst": "b\n=\n"})
	require.NoError(t, os.Chmod(filepath.Join(dir, "locked.rst"), 0o000))

	parser, err := NewParser("*.rst", `^[a-z]\n=$`)
	require.NoError(t, err)
	documents, err := parser.Parse(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, documents, 1)
	assert.Equal(t, filepath.Join(dir, "ok.rst"), documents[0].Path)
}

func TestNewParserRejectsBadPattern(t *testing.T) {
	_, err := NewParser("*", `([unclosed`)
	require.ErrorIs(t, err, ErrInvalidPattern)
}

func TestNewParserRejectsBadGlob(t *testing.T) {
	_, err := NewParser("[a-", `^x$`)
	require.ErrorIs(t, err, ErrInvalidGlob)
}

func TestParseRejectsInvalidUTF8Base(t *testing.T) {
	parser, err := NewParser("*", `^x$`)
	require.NoError(t, err)
	_, err = parser.Parse(context.Background(), "bad\xffpath")
	require.ErrorIs(t, err, ErrInvalidPath)
}

func TestParseHonoursCancelledContext(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.rst": "a\n=\n"})
	parser, err := NewParser("*.rst", `^a$`)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = parser.Parse(ctx, dir)
	require.ErrorIs(t, err, context.Canceled)
}

func TestExtractReconstructsSource(t *testing.T) {
	input := "preamble\n# one\nalpha\nbeta\n# two\n# three\ngamma"
	pattern := regexp.MustCompile(`(?m)^# .*$`)

	paragraphs := Extract(pattern, input)
	require.Len(t, paragraphs, 3)
	assert.Equal(t, []string{"# one", "# two", "# three"}, []string{
		paragraphs[0].Title, paragraphs[1].Title, paragraphs[2].Title,
	})

	var rebuilt strings.Builder
	for i, match := range pattern.FindAllString(input, -1) {
		rebuilt.WriteString(match)
		rebuilt.WriteString(paragraphs[i].Contents)
	}
	first := pattern.FindStringIndex(input)[0]
	assert.Equal(t, input[first:], rebuilt.String())
}

func TestExtractWithoutMatches(t *testing.T) {
	paragraphs := Extract(regexp.MustCompile(`^nope$`), "some text")
	assert.NotNil(t, paragraphs)
	assert.Empty(t, paragraphs)
}

func TestParagraphHeadingDropsUnderline(t *testing.T) {
	p := Paragraph{Title: "stat_interval\n============="}
	assert.Equal(t, "stat_interval", p.Heading())
	assert.Equal(t, "", Paragraph{Title: "  \n"}.Heading())
}

func TestLabelDependsOnGlobAndPattern(t *testing.T) {
	rst, err := NewParser("*.rst", `^[a-z]+\n=+$`)
	require.NoError(t, err)
	sameAgain, err := NewParser("*.rst", `^[a-z]+\n=+$`)
	require.NoError(t, err)
	otherGlob, err := NewParser("*.txt", `^[a-z]+\n=+$`)
	require.NoError(t, err)
	otherPattern, err := NewParser("*.rst", `^[a-z]+\n-+$`)
	require.NoError(t, err)

	label := rst.Label("/doc")
	assert.True(t, strings.HasPrefix(label, "/doc#"), label)
	assert.Equal(t, label, sameAgain.Label("/doc"))
	assert.NotEqual(t, label, rst.Label("/other"))
	assert.NotEqual(t, label, otherGlob.Label("/doc"))
	assert.NotEqual(t, label, otherPattern.Label("/doc"))
}
