// Package command defines the closed set of commands the session dispatcher
// understands, and the parsers that turn key presses and command lines into
// them.
package command

import "fmt"

// Command is implemented only by the types in this package.
type Command interface {
	command()
}

// Area names a scrollable region of the screen.
type Area int

const (
	AreaList Area = iota
	AreaDocumentation
	AreaSection
)

func (a Area) String() string {
	switch a {
	case AreaList:
		return "list"
	case AreaDocumentation:
		return "documentation"
	case AreaSection:
		return "section"
	default:
		return "unknown"
	}
}

// Direction is the way a Scroll moves.
type Direction int

const (
	Up Direction = iota
	Down
	Top
	Bottom
	Left
	Right
	// PageUp and PageDown move by the visible height of the target area.
	PageUp
	PageDown
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	case Right:
		return "right"
	case PageUp:
		return "pageup"
	case PageDown:
		return "pagedown"
	default:
		return "unknown"
	}
}

type (
	// Select edits the selected parameter, or confirms the popup option.
	Select struct{}
	// Search opens the filter line.
	Search struct{}
	// Prompt opens an empty command line.
	Prompt struct{}
	// UpdateInput inserts Char at the input cursor.
	UpdateInput struct{ Char rune }
	// MoveCursor moves the input cursor by Offset runes.
	MoveCursor struct{ Offset int }
	// ClearInput deletes before the input cursor: one rune, or a word when
	// Word is set.
	ClearInput struct{ Word bool }
	// ProcessInput submits the input line.
	ProcessInput struct{}
	// Set writes Value to the parameter called Name.
	Set struct {
		Name  string
		Value string
	}
	// Filter applies Query to the visible list without opening the input.
	Filter struct{ Query string }
	// ShowSection switches the list to the named section, or to every
	// parameter when Name is empty.
	ShowSection struct{ Name string }
	// Refresh reloads every parameter from the controller.
	Refresh struct{}
	// Copy offers the selected parameter for the clipboard.
	Copy struct{}
	// Scroll moves a cursor or offset within Area.
	Scroll struct {
		Area      Area
		Direction Direction
		Amount    int
	}
	// Exit leaves the current mode, or the session when browsing.
	Exit struct{}
)

func (Select) command()       {}
func (Search) command()       {}
func (Prompt) command()       {}
func (UpdateInput) command()  {}
func (MoveCursor) command()   {}
func (ClearInput) command()   {}
func (ProcessInput) command() {}
func (Set) command()          {}
func (Filter) command()       {}
func (ShowSection) command()  {}
func (Refresh) command()      {}
func (Copy) command()         {}
func (Scroll) command()       {}
func (Exit) command()         {}

// Name returns a short label for tracing.
func Name(cmd Command) string {
	switch c := cmd.(type) {
	case Select:
		return "select"
	case Search:
		return "search"
	case Prompt:
		return "prompt"
	case UpdateInput:
		return "input.update"
	case MoveCursor:
		return "input.move"
	case ClearInput:
		if c.Word {
			return "input.clear-word"
		}
		return "input.clear"
	case ProcessInput:
		return "input.process"
	case Set:
		return "set"
	case Filter:
		return "filter"
	case ShowSection:
		return "section"
	case Refresh:
		return "refresh"
	case Copy:
		return "copy"
	case Scroll:
		return fmt.Sprintf("scroll.%s.%s", c.Area, c.Direction)
	case Exit:
		return "exit"
	default:
		return fmt.Sprintf("%T", cmd)
	}
}
