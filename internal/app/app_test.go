package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/sysctl-control/internal/cache"
	"github.com/atomicstack/sysctl-control/internal/docs"
	"github.com/atomicstack/sysctl-control/internal/sysctl"
	"github.com/atomicstack/sysctl-control/internal/testutil"
)

func TestDocumentsParsesThenUsesCache(t *testing.T) {
	base := testutil.WriteDocsTree(t, map[string]string{"vm.rst": testutil.SampleDocs})
	cfg := Config{CachePath: filepath.Join(t.TempDir(), "docs.db")}
	ctx := context.Background()

	documents, source, err := Documents(ctx, cfg, base)
	require.NoError(t, err)
	assert.Equal(t, "parse", source)
	require.Len(t, documents, 1)
	assert.Len(t, documents[0].Paragraphs, 2)

	documents, source, err = Documents(ctx, cfg, base)
	require.NoError(t, err)
	assert.Equal(t, "cache", source)
	require.Len(t, documents, 1)

	store, err := cache.Open(cfg.CachePath)
	require.NoError(t, err)
	defer store.Close()
	entries, err := store.Labels(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	parser, err := docs.NewParser(sysctl.DefaultDocsGlob, sysctl.DefaultDocsPattern)
	require.NoError(t, err)
	assert.Equal(t, parser.Label(base), entries[0].Label)
}

func TestDocumentsReparsesWhenPatternChanges(t *testing.T) {
	base := testutil.WriteDocsTree(t, map[string]string{
		"vm.rst": "alpha\n=====\nfirst\n\nbeta\n-----\nsecond\n",
	})
	cachePath := filepath.Join(t.TempDir(), "docs.db")
	ctx := context.Background()

	equals := Config{CachePath: cachePath, DocsPattern: `^[a-z]+\n=+$`}
	documents, source, err := Documents(ctx, equals, base)
	require.NoError(t, err)
	assert.Equal(t, "parse", source)
	require.Len(t, documents[0].Paragraphs, 1)
	assert.Equal(t, "alpha", documents[0].Paragraphs[0].Heading())

	dashes := Config{CachePath: cachePath, DocsPattern: `^[a-z]+\n-+$`}
	documents, source, err = Documents(ctx, dashes, base)
	require.NoError(t, err)
	assert.Equal(t, "parse", source, "a different pattern must not hit the old entry")
	require.Len(t, documents[0].Paragraphs, 1)
	assert.Equal(t, "beta", documents[0].Paragraphs[0].Heading())

	_, source, err = Documents(ctx, equals, base)
	require.NoError(t, err)
	assert.Equal(t, "cache", source)

	_, source, err = Documents(ctx, Config{CachePath: cachePath, DocsPattern: equals.DocsPattern, DocsGlob: "*.txt"}, base)
	require.NoError(t, err)
	assert.Equal(t, "parse", source, "a different glob must not hit the old entry")
}

func TestDocumentsWithoutCache(t *testing.T) {
	base := testutil.WriteDocsTree(t, map[string]string{"vm.rst": testutil.SampleDocs})
	_, source, err := Documents(context.Background(), Config{NoCache: true}, base)
	require.NoError(t, err)
	assert.Equal(t, "parse", source)
}

func TestDocumentsRejectsBadPattern(t *testing.T) {
	base := testutil.WriteDocsTree(t, nil)
	_, _, err := Documents(context.Background(), Config{NoCache: true, DocsPattern: "("}, base)
	require.Error(t, err)
}

func TestLoadDocsAppliesDescriptions(t *testing.T) {
	root := testutil.WriteProcTree(t, map[string]string{"vm.stat_interval": "1", "vm.swappiness": "60"})
	base := testutil.WriteDocsTree(t, map[string]string{"vm.rst": testutil.SampleDocs})
	ctrl, err := sysctl.Load(root)
	require.NoError(t, err)

	cfg := Config{Root: root, DocsPath: base, NoCache: true}
	require.NoError(t, loadDocs(context.Background(), cfg, ctrl))

	p, ok := ctrl.Get("vm.stat_interval")
	require.True(t, ok)
	assert.Contains(t, p.Description, "vm statistics are updated")
	assert.Equal(t, "stat_interval", p.DocsTitle)
}
