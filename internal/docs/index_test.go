package docs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexPrefersGroup(t *testing.T) {
	documents := []Document{
		NewDocument([]Paragraph{{Title: "stat_interval\n===", Contents: "fs flavoured"}}, "/docs/fs.rst"),
		NewDocument([]Paragraph{{Title: "stat_interval\n===", Contents: "vm flavoured"}}, "/docs/vm.rst"),
	}
	idx := NewIndex(documents)

	entry, ok := idx.Lookup("vm", "stat_interval")
	require.True(t, ok)
	assert.Equal(t, "/docs/vm.rst", entry.Path)
	assert.Equal(t, "vm flavoured", entry.Paragraph.Contents)

	entry, ok = idx.Lookup("kernel", "stat_interval")
	require.True(t, ok)
	assert.Equal(t, "/docs/fs.rst", entry.Path)
}

func TestIndexSplitsListedHeadings(t *testing.T) {
	idx := NewIndex([]Document{
		NewDocument([]Paragraph{{Title: "dirty_bytes, dirty_ratio:", Contents: "writeback"}}, "/docs/vm.rst"),
	})
	for _, name := range []string{"dirty_bytes", "DIRTY_RATIO"} {
		entry, ok := idx.Lookup("vm", name)
		require.True(t, ok, name)
		assert.Equal(t, "writeback", entry.Paragraph.Contents)
	}
}

func TestIndexMiss(t *testing.T) {
	idx := NewIndex(nil)
	_, ok := idx.Lookup("vm", "missing")
	assert.False(t, ok)

	var nilIndex *Index
	_, ok = nilIndex.Lookup("vm", "missing")
	assert.False(t, ok)
}
