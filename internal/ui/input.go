package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/atomicstack/sysctl-control/internal/ui/command"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	for _, cmd := range command.ParseKey(keyMsg, m.input != nil) {
		m.Dispatch(cmd)
		if !m.running {
			break
		}
	}
	return nil
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		m.Dispatch(command.Scroll{Area: command.AreaList, Direction: command.Up, Amount: 1})
	case tea.MouseButtonWheelDown:
		m.Dispatch(command.Scroll{Area: command.AreaList, Direction: command.Down, Amount: 1})
	}
	return nil
}

func (m *Model) updateInputCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.inputCursor, cmd = m.inputCursor.Update(msg)
	return cmd
}

// inputLine renders the open input with its sigil and caret in width cells.
// Text scrolls left so the caret stays visible.
func (m *Model) inputLine(width int) string {
	if m.input == nil {
		return ""
	}
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	sigil := m.input.Mode.Sigil()
	prompt := render(styles.InputPrompt, sigil)
	runes := []rune(m.input.Text())
	pos := m.input.Cursor()
	if pos < 0 {
		pos = 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}
	caretRune := " "
	if pos < len(runes) {
		caretRune = string(runes[pos])
	}
	avail := width - runewidth.StringWidth(sigil) - runewidth.StringWidth(caretRune)
	if pos+1 < len(runes) {
		// room for the truncation tail
		avail--
	}
	start := inputWindowStart(runes, pos, avail)
	before := render(styles.Input, string(runes[start:pos]))
	after := ""
	if pos < len(runes) {
		after = render(styles.Input, string(runes[pos+1:]))
	}
	return prompt + before + m.renderInputCursor(caretRune) + after
}

// inputWindowStart returns the first rune to draw so that runes[start:pos]
// fits in avail cells.
func inputWindowStart(runes []rune, pos, avail int) int {
	if avail < 0 {
		avail = 0
	}
	start := 0
	used := runewidth.StringWidth(string(runes[:pos]))
	for start < pos && used > avail {
		used -= runewidth.RuneWidth(runes[start])
		start++
	}
	return start
}

func (m *Model) renderInputCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.inputCursor.SetChar(char)

	base := m.inputCursor.TextStyle.Copy().Inline(true)
	if m.inputCursor.Blink {
		return base.Render(char)
	}
	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Copy().Inline(true)
		return base.Inherit(cursorStyle).Blink(false).Render(char)
	}
	return base.Reverse(true).Render(char)
}
