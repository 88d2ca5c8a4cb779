package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopupCursorClamps(t *testing.T) {
	p := NewPopup("Copy to clipboard", []Option{{Label: "a"}, {Label: "b"}})
	p.MoveBy(5)
	assert.Equal(t, 1, p.Cursor)

	p.MoveHome()
	opt, ok := p.Selected()
	require.True(t, ok)
	assert.Equal(t, "a", opt.Label)

	p.MoveEnd()
	opt, _ = p.Selected()
	assert.Equal(t, "b", opt.Label)

	var none *Popup
	_, ok = none.Selected()
	assert.False(t, ok)
}

func TestMessageExpiry(t *testing.T) {
	start := time.Unix(100, 0)
	msg := NewMessage("hello", start, 2*time.Second)
	assert.False(t, msg.Expired(start), "present when set")
	assert.False(t, msg.Expired(start.Add(2*time.Second)), "present at deadline")
	assert.True(t, msg.Expired(start.Add(3*time.Second)), "expired after deadline")
}
