package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/sysctl-control/internal/logging"
	"github.com/atomicstack/sysctl-control/internal/logging/events"
	"github.com/atomicstack/sysctl-control/internal/sysctl"
	"github.com/atomicstack/sysctl-control/internal/ui/command"
	uistate "github.com/atomicstack/sysctl-control/internal/ui/state"
)

const (
	allTitle        = "Parameters"
	copyPopupTitle  = "Copy to clipboard"
	clipboardOffMsg = "Clipboard support is not enabled"
)

// Dispatch applies one command to the session. Controller and clipboard
// failures become messages; only Exit while browsing stops the session.
func (m *Model) Dispatch(cmd command.Command) {
	if cmd == nil {
		return
	}
	events.Command.Dispatch(command.Name(cmd))
	switch c := cmd.(type) {
	case command.Select:
		m.selectCurrent()
	case command.Search:
		m.openFilter()
	case command.Prompt:
		if m.popup == nil {
			m.openInput(uistate.InputCommand, "")
		}
	case command.UpdateInput:
		m.editInput(func(in *uistate.Input) bool {
			in.Insert(c.Char)
			return true
		})
	case command.MoveCursor:
		m.editInput(func(in *uistate.Input) bool { return in.Move(c.Offset) })
	case command.ClearInput:
		m.editInput(func(in *uistate.Input) bool {
			if c.Word {
				return in.DeleteWord()
			}
			return in.DeleteRune()
		})
	case command.ProcessInput:
		m.processInput()
	case command.Set:
		m.setParameter(c.Name, c.Value)
	case command.Filter:
		m.applyFilter(c.Query)
	case command.ShowSection:
		m.showSection(c.Name)
	case command.Refresh:
		m.refresh()
	case command.Copy:
		m.openCopyPopup()
	case command.Scroll:
		m.scroll(c)
	case command.Exit:
		m.exit()
	}
}

// Tick expires the message once its deadline has passed.
func (m *Model) Tick(now time.Time) {
	if m.message == nil || !m.message.Expired(now) {
		return
	}
	events.UI.MessageExpired(m.message.Text)
	m.message = nil
}

func (m *Model) selectCurrent() {
	if m.popup != nil {
		m.confirmPopup()
		return
	}
	if m.input != nil {
		return
	}
	current, ok := m.currentList().Current()
	if !ok {
		return
	}
	m.openInput(uistate.InputCommand, fmt.Sprintf("set %s %s", current.Name, current.Value))
}

func (m *Model) openFilter() {
	if m.popup != nil {
		return
	}
	if m.input == nil || m.input.Mode != uistate.InputFilter {
		m.prevFilter = m.currentList().Filter
	}
	m.openInput(uistate.InputFilter, "")
	m.applyFilter("")
}

func (m *Model) openInput(mode uistate.InputMode, text string) {
	m.input = uistate.NewInput(mode, text)
	m.inputCursorDirty = true
	events.Input.Open(mode.String(), text)
}

func (m *Model) closeInput() {
	if m.input == nil {
		return
	}
	events.Input.Close(m.input.Mode.String())
	m.input = nil
}

func (m *Model) editInput(edit func(*uistate.Input) bool) {
	if m.input == nil {
		return
	}
	before := m.input.Text()
	if !edit(m.input) {
		return
	}
	m.inputCursorDirty = true
	events.Input.Edit(m.input.Mode.String(), m.input.Text(), m.input.Cursor())
	if m.input.Mode == uistate.InputFilter && m.input.Text() != before {
		m.applyFilter(m.input.Text())
	}
}

func (m *Model) processInput() {
	if m.input == nil {
		return
	}
	in := m.input
	m.closeInput()
	if in.Mode == uistate.InputFilter {
		m.applyFilter(in.Text())
		return
	}
	cmd, err := command.ParseLine(in.Text())
	if err != nil {
		events.Command.Unknown(in.Text())
		m.setMessage(err.Error())
		return
	}
	m.Dispatch(cmd)
}

func (m *Model) setParameter(name, value string) {
	err := m.controller.Update(name, value)
	events.Command.Update(name, value, err)
	if err != nil {
		logging.Error(err)
		m.setMessage("sysctl error: " + err.Error())
		return
	}
	m.message = nil
}

func (m *Model) applyFilter(query string) {
	list := m.currentList()
	before := m.selectedName()
	list.SetFilter(query)
	list.EnsureCursorVisible(m.listRows())
	if m.selectedName() != before {
		m.docScroll = 0
	}
	events.Input.Filter(m.sectionLabel(), query, list.Len())
}

func (m *Model) showSection(name string) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "all") {
		m.switchSection(allSections)
		return
	}
	section, ok := sysctl.ParseSection(name)
	if ok {
		for i, view := range m.sections {
			if view.section == section {
				m.switchSection(i)
				return
			}
		}
	}
	m.setMessage(fmt.Sprintf("no such section: %s", name))
}

func (m *Model) switchSection(idx int) {
	if idx < allSections || idx >= len(m.sections) {
		idx = allSections
	}
	if idx == m.sectionIdx {
		return
	}
	m.sectionIdx = idx
	m.docScroll = 0
	events.UI.Section(m.sectionLabel())
}

func (m *Model) refresh() {
	err := m.controller.Reload()
	if err != nil {
		events.Command.Refresh(0, err)
		logging.Error(err)
		m.setMessage("refresh error: " + err.Error())
		return
	}
	parameters := m.controller.Parameters()
	events.Command.Refresh(len(parameters), nil)
	m.all.UpdateItems(parameters)
	m.rebuildSections()
}

// rebuildSections regroups the parameters by section, reusing existing lists
// so their cursors and filters survive.
func (m *Model) rebuildSections() {
	var selected sysctl.Section
	hadSection := m.sectionIdx >= 0 && m.sectionIdx < len(m.sections)
	if hadSection {
		selected = m.sections[m.sectionIdx].section
	}
	existing := make(map[sysctl.Section]*uistate.List, len(m.sections))
	for _, view := range m.sections {
		existing[view.section] = view.list
	}
	grouped := make(map[sysctl.Section][]*sysctl.Parameter)
	for _, p := range m.all.Full {
		grouped[p.Section] = append(grouped[p.Section], p)
	}
	views := make([]sectionView, 0, len(grouped))
	for _, section := range sysctl.Sections() {
		params, ok := grouped[section]
		if !ok {
			continue
		}
		list, ok := existing[section]
		if ok {
			list.UpdateItems(params)
		} else {
			list = uistate.NewList(sectionTitle(section), params)
		}
		views = append(views, sectionView{section: section, list: list})
	}
	m.sections = views
	m.sectionIdx = allSections
	if hadSection {
		for i, view := range views {
			if view.section == selected {
				m.sectionIdx = i
			}
		}
	}
}

func (m *Model) openCopyPopup() {
	if m.popup != nil || m.input != nil {
		return
	}
	current, ok := m.currentList().Current()
	if !ok {
		return
	}
	if m.clipboard == nil || !m.clipboard.Available() {
		m.setMessage(clipboardOffMsg)
		return
	}
	m.popup = uistate.NewPopup(copyPopupTitle, []uistate.Option{
		{Label: "Parameter name", Value: current.Name},
		{Label: "Parameter value", Value: current.Value},
	})
	events.Popup.Open(copyPopupTitle, len(m.popup.Options))
}

func (m *Model) confirmPopup() {
	popup := m.popup
	m.closePopup()
	option, ok := popup.Selected()
	if !ok {
		return
	}
	err := m.clipboard.Copy(option.Value)
	events.Popup.Copy(option.Label, err)
	if err != nil {
		logging.Error(err)
		m.setMessage(err.Error())
		return
	}
	m.setMessage(fmt.Sprintf("Copied %s to clipboard", strings.ToLower(option.Label)))
}

func (m *Model) closePopup() {
	if m.popup == nil {
		return
	}
	events.Popup.Close(m.popup.Title)
	m.popup = nil
}

func (m *Model) scroll(c command.Scroll) {
	switch c.Area {
	case command.AreaList:
		if m.popup != nil {
			m.scrollPopup(c)
			return
		}
		m.scrollList(c)
	case command.AreaDocumentation:
		m.scrollDocs(c)
	case command.AreaSection:
		// The popup holds the selection it was opened for.
		if m.popup != nil {
			return
		}
		m.scrollSection(c)
	}
}

func (m *Model) scrollPopup(c command.Scroll) {
	switch c.Direction {
	case command.Up:
		m.popup.MoveBy(-amountOf(c))
	case command.Down:
		m.popup.MoveBy(amountOf(c))
	case command.Top, command.PageUp:
		m.popup.MoveHome()
	case command.Bottom, command.PageDown:
		m.popup.MoveEnd()
	}
}

func (m *Model) scrollList(c command.Scroll) {
	list := m.currentList()
	var moved bool
	switch c.Direction {
	case command.Up:
		moved = list.MoveBy(-amountOf(c))
	case command.Down:
		moved = list.MoveBy(amountOf(c))
	case command.Top:
		moved = list.MoveHome()
	case command.Bottom:
		moved = list.MoveEnd()
	case command.PageUp:
		moved = list.MovePageUp(m.listRows())
	case command.PageDown:
		moved = list.MovePageDown(m.listRows())
	}
	list.EnsureCursorVisible(m.listRows())
	if moved {
		m.docScroll = 0
		events.UI.ListCursor(m.sectionLabel(), list.Cursor)
	}
}

func (m *Model) scrollDocs(c command.Scroll) {
	maxOffset := m.maxDocScroll()
	offset := m.docScroll
	switch c.Direction {
	case command.Up:
		offset -= amountOf(c)
	case command.Down:
		offset += amountOf(c)
	case command.Top:
		offset = 0
	case command.Bottom:
		offset = maxOffset
	case command.PageUp:
		offset -= m.docsRows()
	case command.PageDown:
		offset += m.docsRows()
	}
	if offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	if offset != m.docScroll {
		m.docScroll = offset
		events.UI.DocScroll(offset)
	}
}

func (m *Model) scrollSection(c command.Scroll) {
	// Position 0 is the combined view; sections follow.
	count := len(m.sections) + 1
	pos := m.sectionIdx + 1
	switch c.Direction {
	case command.Left, command.Up:
		pos = (pos - amountOf(c)%count + count) % count
	case command.Right, command.Down:
		pos = (pos + amountOf(c)) % count
	case command.Top:
		pos = 0
	case command.Bottom:
		pos = count - 1
	}
	m.switchSection(pos - 1)
}

func amountOf(c command.Scroll) int {
	if c.Amount <= 0 {
		return 1
	}
	return c.Amount
}

func (m *Model) exit() {
	switch {
	case m.popup != nil:
		m.closePopup()
	case m.input != nil:
		mode := m.input.Mode
		m.closeInput()
		if mode == uistate.InputFilter {
			m.applyFilter(m.prevFilter)
		}
	default:
		m.running = false
	}
}

func (m *Model) setMessage(text string) {
	m.message = uistate.NewMessage(text, m.now(), m.messageTimeout)
	events.UI.Message(text)
}

func (m *Model) currentList() *uistate.List {
	if m.sectionIdx >= 0 && m.sectionIdx < len(m.sections) {
		return m.sections[m.sectionIdx].list
	}
	return m.all
}

func (m *Model) current() (*sysctl.Parameter, bool) {
	return m.currentList().Current()
}

func (m *Model) selectedName() string {
	if p, ok := m.current(); ok {
		return p.Name
	}
	return ""
}

func (m *Model) sectionLabel() string {
	if m.sectionIdx >= 0 && m.sectionIdx < len(m.sections) {
		return m.sections[m.sectionIdx].section.String()
	}
	return "all"
}

// Message returns the text of the active message.
func (m *Model) Message() string {
	if m.message == nil {
		return ""
	}
	return m.message.Text
}

// InputText returns the open input line including its sigil.
func (m *Model) InputText() (string, bool) {
	if m.input == nil {
		return "", false
	}
	return m.input.Display(), true
}

// Selected returns the selected parameter of the visible list.
func (m *Model) Selected() (*sysctl.Parameter, bool) {
	return m.current()
}

// List exposes the visible list.
func (m *Model) List() *uistate.List {
	return m.currentList()
}

// Popup returns the open popup, if any.
func (m *Model) Popup() *uistate.Popup {
	return m.popup
}

// DocScroll returns the documentation panel offset.
func (m *Model) DocScroll() int {
	return m.docScroll
}
