package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Item                  *lipgloss.Style
	ItemValue             *lipgloss.Style
	ItemIndicator         *lipgloss.Style
	SelectedItemIndicator *lipgloss.Style
	SelectedItem          *lipgloss.Style
	Error                 *lipgloss.Style
	Info                  *lipgloss.Style
	Message               *lipgloss.Style
	Footer                *lipgloss.Style
	Input                 *lipgloss.Style
	InputPrompt           *lipgloss.Style
	Cursor                *lipgloss.Style
	PanelBorder           *lipgloss.Style
	PanelTitle            *lipgloss.Style
	PanelInfo             *lipgloss.Style
	DocsTitle             *lipgloss.Style
	DocsBody              *lipgloss.Style
	PopupOption           *lipgloss.Style
	PopupSelected         *lipgloss.Style
}

var defaultStyles = Styles{
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ItemValue: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	ItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	SelectedItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Background(lipgloss.Color("238")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Message: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Input: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	InputPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")).Blink(true),
	),
	PanelBorder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	),
	PanelTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	PanelInfo: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	DocsTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
	),
	DocsBody: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	PopupOption: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	PopupSelected: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("33")).Bold(true),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
