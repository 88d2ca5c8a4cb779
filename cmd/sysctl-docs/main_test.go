package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/sysctl-control/internal/app"
	"github.com/atomicstack/sysctl-control/internal/docs"
	"github.com/atomicstack/sysctl-control/internal/sysctl"
	"github.com/atomicstack/sysctl-control/internal/testutil"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParseShowAndLabels(t *testing.T) {
	base := testutil.WriteDocsTree(t, map[string]string{"vm.rst": testutil.SampleDocs})
	db := filepath.Join(t.TempDir(), "docs.db")

	out, err := run(t, "parse", "--cache", db, "--base", base)
	require.NoError(t, err)
	assert.Contains(t, out, "vm.rst: 2 paragraphs")
	assert.Contains(t, out, "1 documents, 2 paragraphs")
	assert.Contains(t, out, "stored 1 documents as "+base)

	out, err = run(t, "show", "--cache", db)
	require.NoError(t, err)
	assert.Contains(t, out, "stat_interval\t")
	assert.Contains(t, out, "swappiness\t")

	out, err = run(t, "show", "--cache", db, "SWAP")
	require.NoError(t, err)
	assert.NotContains(t, out, "stat_interval")
	assert.Contains(t, out, "swappiness")

	out, err = run(t, "labels", "--cache", db)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasSuffix(lines[0], "\t"+defaultLabel(t, base)), "label line %q", lines[0])
}

func TestParseDefaultLabelMatchesApp(t *testing.T) {
	base := testutil.WriteDocsTree(t, map[string]string{"vm.rst": testutil.SampleDocs})
	db := filepath.Join(t.TempDir(), "docs.db")

	_, err := run(t, "parse", "--cache", db, "--base", base)
	require.NoError(t, err)

	documents, source, err := app.Documents(context.Background(), app.Config{CachePath: db}, base)
	require.NoError(t, err)
	assert.Equal(t, "cache", source)
	assert.Len(t, documents, 1)
}

func TestDeleteRemovesLabel(t *testing.T) {
	base := testutil.WriteDocsTree(t, map[string]string{"vm.rst": testutil.SampleDocs})
	db := filepath.Join(t.TempDir(), "docs.db")
	_, err := run(t, "parse", "--cache", db, "--base", base, "--label", "guide")
	require.NoError(t, err)

	out, err := run(t, "delete", "--cache", db, "guide")
	require.NoError(t, err)
	assert.Equal(t, "deleted guide\n", out)

	out, err = run(t, "labels", "--cache", db)
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(out))

	_, err = run(t, "delete", "--cache", db, "guide")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache miss")

	_, err = run(t, "delete", "--cache", db)
	require.Error(t, err, "delete needs a label")
}

func defaultLabel(t *testing.T, base string) string {
	t.Helper()
	parser, err := docs.NewParser(sysctl.DefaultDocsGlob, sysctl.DefaultDocsPattern)
	require.NoError(t, err)
	return parser.Label(base)
}

func TestParseDryRunStoresNothing(t *testing.T) {
	base := testutil.WriteDocsTree(t, map[string]string{"vm.rst": testutil.SampleDocs})
	db := filepath.Join(t.TempDir(), "docs.db")

	out, err := run(t, "parse", "--cache", db, "--base", base, "--dry-run")
	require.NoError(t, err)
	assert.NotContains(t, out, "stored")

	_, err = run(t, "show", "--cache", db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is empty")
}

func TestParseRejectsBadPattern(t *testing.T) {
	base := testutil.WriteDocsTree(t, nil)
	_, err := run(t, "parse", "--cache", filepath.Join(t.TempDir(), "docs.db"), "--base", base, "--pattern", "(")
	require.Error(t, err)
}

func TestShowUnknownLabel(t *testing.T) {
	_, err := run(t, "show", "--cache", filepath.Join(t.TempDir(), "docs.db"), "--label", "/missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache miss")
}
