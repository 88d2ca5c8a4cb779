package state

import "unicode"

// InputMode distinguishes what an input line is for.
type InputMode int

const (
	// InputCommand holds a ":" command line.
	InputCommand InputMode = iota
	// InputFilter holds a "/" live filter.
	InputFilter
)

// Sigil returns the prompt character shown in front of the buffer.
func (m InputMode) Sigil() string {
	if m == InputFilter {
		return "/"
	}
	return ":"
}

func (m InputMode) String() string {
	if m == InputFilter {
		return "filter"
	}
	return "command"
}

// Input is an editable line with a rune cursor. The buffer never contains
// the sigil.
type Input struct {
	Mode   InputMode
	buffer []rune
	cursor int
}

// NewInput returns an input holding text with the cursor at its end.
func NewInput(mode InputMode, text string) *Input {
	buffer := []rune(text)
	return &Input{Mode: mode, buffer: buffer, cursor: len(buffer)}
}

// Text returns the buffer without the sigil.
func (in *Input) Text() string {
	return string(in.buffer)
}

// Display returns the buffer as shown on screen, sigil included.
func (in *Input) Display() string {
	return in.Mode.Sigil() + string(in.buffer)
}

// Cursor returns the rune offset of the cursor within Text.
func (in *Input) Cursor() int {
	return in.cursor
}

// Len returns the buffer length in runes.
func (in *Input) Len() int {
	return len(in.buffer)
}

// Insert places r at the cursor and advances it.
func (in *Input) Insert(r rune) {
	updated := make([]rune, 0, len(in.buffer)+1)
	updated = append(updated, in.buffer[:in.cursor]...)
	updated = append(updated, r)
	updated = append(updated, in.buffer[in.cursor:]...)
	in.buffer = updated
	in.cursor++
}

// Move shifts the cursor by n runes, clamped to the buffer.
func (in *Input) Move(n int) bool {
	old := in.cursor
	target := in.cursor + n
	if n < 0 && target > in.cursor {
		target = 0
	}
	if n > 0 && target < in.cursor {
		target = len(in.buffer)
	}
	if target < 0 {
		target = 0
	}
	if target > len(in.buffer) {
		target = len(in.buffer)
	}
	in.cursor = target
	return in.cursor != old
}

// DeleteRune removes the rune before the cursor.
func (in *Input) DeleteRune() bool {
	if in.cursor == 0 {
		return false
	}
	in.buffer = append(in.buffer[:in.cursor-1], in.buffer[in.cursor:]...)
	in.cursor--
	return true
}

// DeleteWord removes the word before the cursor along with any whitespace
// between it and the cursor.
func (in *Input) DeleteWord() bool {
	if in.cursor == 0 {
		return false
	}
	i := in.cursor
	for i > 0 && unicode.IsSpace(in.buffer[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(in.buffer[i-1]) {
		i--
	}
	in.buffer = append(in.buffer[:i], in.buffer[in.cursor:]...)
	in.cursor = i
	return true
}
