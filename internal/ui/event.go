package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/sysctl-control/internal/event"
)

func waitForEvent(src *event.Source) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-src.Events()
		if !ok {
			return eventDoneMsg{}
		}
		return eventMsg{event: evt}
	}
}

type eventMsg struct {
	event event.Event
}

type eventDoneMsg struct{}

func (m *Model) handleEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(eventMsg)
	if !ok {
		return nil
	}
	if eventMsg.event.Kind == event.KindTick {
		m.Tick(eventMsg.event.Time)
	}
	if m.events != nil {
		return waitForEvent(m.events)
	}
	return nil
}

func (m *Model) handleEventDoneMsg(tea.Msg) tea.Cmd {
	m.events = nil
	return nil
}
