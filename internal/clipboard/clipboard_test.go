package clipboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stub(t *testing.T, supported bool) *[]string {
	t.Helper()
	var written []string
	prevWrite, prevUnsupported := writeAll, unsupported
	writeAll = func(text string) error {
		written = append(written, text)
		return nil
	}
	unsupported = func() bool { return !supported }
	t.Cleanup(func() {
		writeAll, unsupported = prevWrite, prevUnsupported
	})
	return &written
}

func TestCopyWritesWhenAvailable(t *testing.T) {
	written := stub(t, true)
	c := New(true)
	require.True(t, c.Available())
	require.NoError(t, c.Copy("vm.stat_interval"))
	assert.Equal(t, []string{"vm.stat_interval"}, *written)
}

func TestCopyDisabled(t *testing.T) {
	written := stub(t, true)
	c := New(false)
	assert.False(t, c.Available())
	assert.True(t, errors.Is(c.Copy("x"), ErrUnavailable))
	assert.Empty(t, *written)
}

func TestCopyUnsupportedPlatform(t *testing.T) {
	stub(t, false)
	assert.False(t, New(true).Available())
	var nilClipboard *Clipboard
	assert.False(t, nilClipboard.Available())
}

func TestCopyWrapsWriteError(t *testing.T) {
	stub(t, true)
	writeAll = func(string) error { return errors.New("xclip missing") }
	err := New(true).Copy("x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xclip missing")
}
