package state

import (
	"github.com/atomicstack/sysctl-control/internal/sysctl"
)

// List tracks the visible parameters of one view together with its cursor,
// filter and viewport. Items is Full narrowed by Filter.
type List struct {
	Title          string
	Items          []*sysctl.Parameter
	Full           []*sysctl.Parameter
	Filter         string
	Cursor         int
	LastCursor     int
	ViewportOffset int
}

// NewList builds a list with the first parameter selected.
func NewList(title string, parameters []*sysctl.Parameter) *List {
	l := &List{
		Title:      title,
		Cursor:     -1,
		LastCursor: -1,
	}
	l.UpdateItems(parameters)
	return l
}

// IndexOf returns the visible index of the named parameter.
func (l *List) IndexOf(name string) int {
	if name == "" {
		return -1
	}
	for i, p := range l.Items {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// UpdateItems replaces the parameter set, keeping the selected parameter
// selected when it is still present.
func (l *List) UpdateItems(parameters []*sysctl.Parameter) {
	prevOffset := l.ViewportOffset
	selected := ""
	if current, ok := l.Current(); ok {
		selected = current.Name
	}
	l.Full = CloneParameters(parameters)
	l.applyFilter()
	if idx := l.IndexOf(selected); idx >= 0 {
		l.Cursor = idx
	}
	if len(l.Items) == 0 {
		l.ViewportOffset = 0
		return
	}
	if prevOffset < 0 || prevOffset > len(l.Items)-1 {
		prevOffset = 0
	}
	l.ViewportOffset = prevOffset
}

// Current returns the selected parameter.
func (l *List) Current() (*sysctl.Parameter, bool) {
	if l == nil || l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return nil, false
	}
	return l.Items[l.Cursor], true
}

// Len returns the number of visible parameters.
func (l *List) Len() int {
	return len(l.Items)
}
