package command

import (
	"math"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	docsStep  = 1
	lineStart = math.MinInt32
	lineEnd   = math.MaxInt32
)

// ParseKey maps a key press to commands. Editing keys apply while an input
// line is open; a pasted run of runes yields one UpdateInput per rune.
func ParseKey(msg tea.KeyMsg, editing bool) []Command {
	if editing {
		return parseEditingKey(msg)
	}
	return parseBrowsingKey(msg)
}

func parseBrowsingKey(msg tea.KeyMsg) []Command {
	switch msg.String() {
	case "up", "k":
		return one(Scroll{Area: AreaList, Direction: Up, Amount: 1})
	case "down", "j":
		return one(Scroll{Area: AreaList, Direction: Down, Amount: 1})
	case "pgup":
		return one(Scroll{Area: AreaList, Direction: PageUp})
	case "pgdown":
		return one(Scroll{Area: AreaList, Direction: PageDown})
	case "home", "g":
		return one(Scroll{Area: AreaList, Direction: Top})
	case "end", "G":
		return one(Scroll{Area: AreaList, Direction: Bottom})
	case "left", "h":
		return one(Scroll{Area: AreaSection, Direction: Left, Amount: 1})
	case "right", "l":
		return one(Scroll{Area: AreaSection, Direction: Right, Amount: 1})
	case "K", "ctrl+up":
		return one(Scroll{Area: AreaDocumentation, Direction: Up, Amount: docsStep})
	case "J", "ctrl+down":
		return one(Scroll{Area: AreaDocumentation, Direction: Down, Amount: docsStep})
	case "ctrl+home":
		return one(Scroll{Area: AreaDocumentation, Direction: Top})
	case "ctrl+end":
		return one(Scroll{Area: AreaDocumentation, Direction: Bottom})
	case "enter":
		return one(Select{})
	case "/":
		return one(Search{})
	case ":":
		return one(Prompt{})
	case "r", "f5":
		return one(Refresh{})
	case "c":
		return one(Copy{})
	case "esc", "q", "ctrl+c":
		return one(Exit{})
	}
	return nil
}

func parseEditingKey(msg tea.KeyMsg) []Command {
	switch msg.String() {
	case "ctrl+w", "alt+backspace":
		return one(ClearInput{Word: true})
	case "ctrl+a", "home":
		return one(MoveCursor{Offset: lineStart})
	case "ctrl+e", "end":
		return one(MoveCursor{Offset: lineEnd})
	case "esc", "ctrl+c":
		return one(Exit{})
	case "enter":
		return one(ProcessInput{})
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		return one(ClearInput{})
	case tea.KeyLeft:
		return one(MoveCursor{Offset: -1})
	case tea.KeyRight:
		return one(MoveCursor{Offset: 1})
	case tea.KeyUp:
		return one(Scroll{Area: AreaList, Direction: Up, Amount: 1})
	case tea.KeyDown:
		return one(Scroll{Area: AreaList, Direction: Down, Amount: 1})
	case tea.KeySpace:
		return one(UpdateInput{Char: ' '})
	case tea.KeyRunes:
		if msg.Alt {
			return nil
		}
		cmds := make([]Command, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				continue
			}
			cmds = append(cmds, UpdateInput{Char: r})
		}
		if len(cmds) == 0 {
			return nil
		}
		return cmds
	}
	return nil
}

func one(cmd Command) []Command {
	return []Command{cmd}
}
