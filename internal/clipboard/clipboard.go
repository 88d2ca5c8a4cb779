// Package clipboard copies text to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when clipboard support is disabled or the
// platform has no clipboard utility.
var ErrUnavailable = errors.New("clipboard support is not enabled")

var (
	writeAll    = clipboard.WriteAll
	unsupported = func() bool { return clipboard.Unsupported }
)

// Clipboard writes to the system clipboard when enabled.
type Clipboard struct {
	enabled bool
}

// New returns a clipboard. A disabled clipboard never touches the system.
func New(enabled bool) *Clipboard {
	return &Clipboard{enabled: enabled}
}

// Available reports whether Copy can succeed.
func (c *Clipboard) Available() bool {
	return c != nil && c.enabled && !unsupported()
}

// Copy places text on the system clipboard.
func (c *Clipboard) Copy(text string) error {
	if !c.Available() {
		return ErrUnavailable
	}
	if err := writeAll(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}
