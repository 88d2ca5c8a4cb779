package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/atomicstack/sysctl-control/internal/format/table"
	"github.com/atomicstack/sysctl-control/internal/sysctl"
)

const (
	docsPanelMinWidth = 40  // below this total width the docs panel is hidden
	docsPanelFraction = 0.5 // share of the width given to the docs panel
	bottomBoxRows     = 3   // border + one line + border
	minListPanelRows  = 3
	footerText        = "↑/↓ move  ←/→ section  enter edit  / search  : command  c copy  r refresh  esc quit"
)

type styledLine struct {
	text  string
	style *lipgloss.Style
}

// View implements tea.Model.
func (m *Model) View() string {
	bodyH := m.bodyHeight()
	docsW := m.docsPanelWidth()
	leftW := m.width - docsW

	left := m.renderListPanel(leftW, m.listPanelHeight())
	if box := m.renderBottomBox(leftW); box != "" {
		left += "\n" + box
	}
	left = padBlock(left, leftW, bodyH)

	body := left
	if docsW > 0 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, m.renderDocsPanel(docsW, bodyH))
	}
	if !m.showFooter {
		return body
	}
	footer := renderLines(applyWidth([]styledLine{{text: footerText, style: styles.Footer}}, m.width))
	return body + "\n" + footer
}

func (m *Model) bodyHeight() int {
	h := m.height
	if m.showFooter {
		h--
	}
	if h < minListPanelRows {
		h = minListPanelRows
	}
	return h
}

// docsPanelWidth returns 0 when the selected parameter has no documentation
// or the terminal is too narrow to split.
func (m *Model) docsPanelWidth() int {
	current, ok := m.current()
	if !ok || current.Description == "" {
		return 0
	}
	if m.width < docsPanelMinWidth {
		return 0
	}
	return int(float64(m.width) * docsPanelFraction)
}

func (m *Model) bottomBoxHeight() int {
	switch {
	case m.popup != nil:
		return len(m.popup.Options) + 2
	case m.input != nil, m.message != nil:
		return bottomBoxRows
	}
	return 0
}

func (m *Model) listPanelHeight() int {
	h := m.bodyHeight() - m.bottomBoxHeight()
	if h < minListPanelRows {
		h = minListPanelRows
	}
	return h
}

// listRows is the number of parameters visible at once.
func (m *Model) listRows() int {
	return m.listPanelHeight() - 2
}

func (m *Model) renderListPanel(width, height int) string {
	list := m.currentList()
	innerW := width - 2
	rows := height - 2
	list.EnsureCursorVisible(rows)

	info := ""
	if list.Len() > 0 {
		info = fmt.Sprintf(" %d/%d ", list.Cursor+1, list.Len())
	}
	if list.Filter != "" && list.Len() == 0 {
		return renderPanel(list.Title, info, []styledLine{{
			text:  fmt.Sprintf("No matches for %q", list.Filter),
			style: styles.Info,
		}}, width, height)
	}

	cells := make([][]string, len(list.Items))
	for i, p := range list.Items {
		cells[i] = []string{p.Name, p.Value}
	}
	formatted := table.FormatMax(cells, nil, innerW*2/3)

	start := list.ViewportOffset
	end := start + rows
	if end > len(formatted) {
		end = len(formatted)
	}
	lines := make([]styledLine, 0, rows)
	for i := start; i < end; i++ {
		style := styles.Item
		if i == list.Cursor {
			style = styles.SelectedItem
		}
		lines = append(lines, styledLine{text: formatted[i], style: style})
	}
	return renderPanel(list.Title, info, lines, width, height)
}

func (m *Model) renderBottomBox(width int) string {
	switch {
	case m.popup != nil:
		lines := make([]styledLine, len(m.popup.Options))
		for i, option := range m.popup.Options {
			style := styles.PopupOption
			if i == m.popup.Cursor {
				style = styles.PopupSelected
			}
			lines[i] = styledLine{text: option.Label, style: style}
		}
		return renderPanel(m.popup.Title, "", lines, width, len(lines)+2)
	case m.input != nil:
		return renderBorderedRow(m.inputLine(width-2), width)
	case m.message != nil:
		text := "MSG: " + m.message.Text
		if styles.Message != nil {
			text = styles.Message.Render(truncateText(text, width-2))
		}
		return renderBorderedRow(text, width)
	}
	return ""
}

func (m *Model) docsLines(width int) []string {
	current, ok := m.current()
	if !ok {
		return nil
	}
	return wrapText(current.Documentation(), width)
}

func (m *Model) maxDocScroll() int {
	docsW := m.docsPanelWidth()
	if docsW == 0 {
		return 0
	}
	maxOffset := len(m.docsLines(docsW-2)) - m.docsRows()
	if maxOffset < 0 {
		return 0
	}
	return maxOffset
}

// docsRows is the number of documentation lines visible at once.
func (m *Model) docsRows() int {
	return m.bodyHeight() - 2
}

func (m *Model) renderDocsPanel(width, height int) string {
	innerH := height - 2
	all := m.docsLines(width - 2)
	if m.docScroll > m.maxDocScroll() {
		m.docScroll = m.maxDocScroll()
	}
	end := m.docScroll + innerH
	if end > len(all) {
		end = len(all)
	}
	visible := all[m.docScroll:end]
	info := ""
	if len(all) > innerH {
		info = fmt.Sprintf(" %d/%d ", m.docScroll+len(visible), len(all))
	}
	lines := make([]styledLine, len(visible))
	for i, line := range visible {
		style := styles.DocsBody
		if m.docScroll+i < 2 {
			style = styles.DocsTitle
		}
		lines[i] = styledLine{text: line, style: style}
	}
	return renderPanel("Documentation", info, lines, width, height)
}

// wrapText word-wraps text and hard-wraps words longer than width.
func wrapText(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	wrapped := wrap.String(wordwrap.String(text, width), width)
	return strings.Split(wrapped, "\n")
}

// renderPanel draws a rounded box of exactly width by height cells with the
// title and info embedded in the top border.
func renderPanel(title, info string, lines []styledLine, width, height int) string {
	const (
		tlc = "╭"
		trc = "╮"
		blc = "╰"
		brc = "╯"
		hz  = "─"
		vt  = "│"
	)
	innerW := width - 2
	innerH := height - 2
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}

	titleSeg := " " + title + " "
	infoSeg := info
	dashes := width - 4 - lipgloss.Width(titleSeg) - lipgloss.Width(infoSeg)
	if dashes < 0 {
		infoSeg = ""
		dashes = width - 4 - lipgloss.Width(titleSeg)
	}
	if dashes < 0 {
		titleSeg = " … "
		dashes = width - 4 - lipgloss.Width(titleSeg)
	}
	if dashes < 0 {
		dashes = 0
	}
	border := render(styles.PanelBorder)
	rows := make([]string, 0, innerH+2)
	rows = append(rows, border(tlc+hz)+
		render(styles.PanelTitle)(titleSeg)+
		border(strings.Repeat(hz, dashes))+
		render(styles.PanelInfo)(infoSeg)+
		border(hz+trc))
	for i := 0; i < innerH; i++ {
		var line styledLine
		if i < len(lines) {
			line = lines[i]
		}
		content := fitWidth(line.text, innerW)
		rows = append(rows, border(vt)+render(line.style)(content)+border(vt))
	}
	rows = append(rows, border(blc+strings.Repeat(hz, innerW)+brc))
	return strings.Join(rows, "\n")
}

// renderBorderedRow boxes a single pre-rendered line.
func renderBorderedRow(content string, width int) string {
	innerW := width - 2
	if innerW < 1 {
		innerW = 1
	}
	border := render(styles.PanelBorder)
	return strings.Join([]string{
		border("╭" + strings.Repeat("─", innerW) + "╮"),
		border("│") + fitWidth(content, innerW) + border("│"),
		border("╰" + strings.Repeat("─", innerW) + "╯"),
	}, "\n")
}

func render(style *lipgloss.Style) func(string) string {
	return func(s string) string {
		if style == nil || s == "" {
			return s
		}
		return style.Render(s)
	}
}

// fitWidth truncates or pads s to exactly width cells, ANSI-aware.
func fitWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := lipgloss.Width(s)
	if w > width {
		s = truncate.StringWithTail(s, uint(width), "…")
		w = lipgloss.Width(s)
	}
	if w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// padBlock pads every row of block to width and the block to height rows.
func padBlock(block string, width, height int) string {
	rows := strings.Split(block, "\n")
	if len(rows) > height {
		rows = rows[:height]
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	for i, row := range rows {
		rows[i] = fitWidth(row, width)
	}
	return strings.Join(rows, "\n")
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.currentList().EnsureCursorVisible(m.listRows())
	if limit := m.maxDocScroll(); m.docScroll > limit {
		m.docScroll = limit
	}
	return nil
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		result[i] = styledLine{text: truncateText(line.text, width), style: line.style}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = render(line.style)(line.text)
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}

// sectionTitle names a section list.
func sectionTitle(section sysctl.Section) string {
	return allTitle + ": " + section.String()
}
