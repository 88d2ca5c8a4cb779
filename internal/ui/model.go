package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/sysctl-control/internal/event"
	"github.com/atomicstack/sysctl-control/internal/sysctl"
	"github.com/atomicstack/sysctl-control/internal/theme"
	uistate "github.com/atomicstack/sysctl-control/internal/ui/state"
)

const (
	defaultWidth          = 80
	defaultHeight         = 24
	defaultMessageTimeout = 2 * time.Second
	allSections           = -1
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Controller is the parameter store the session reads and edits.
type Controller interface {
	Parameters() []*sysctl.Parameter
	Get(name string) (*sysctl.Parameter, bool)
	Update(name, value string) error
	Reload() error
}

// Clipboard receives copied parameter names and values.
type Clipboard interface {
	Available() bool
	Copy(text string) error
}

// Options configures a Model. Zero values select the defaults.
type Options struct {
	Width          int
	Height         int
	ShowFooter     bool
	Section        string
	Query          string
	MessageTimeout time.Duration
	CursorBlink    bool
	Events         *event.Source
	Clipboard      Clipboard
	Now            func() time.Time
}

// Model implements the Bubble Tea model for the parameter browser.
type Model struct {
	controller Controller
	clipboard  Clipboard

	all      *uistate.List
	sections []sectionView
	// sectionIdx indexes sections; allSections shows every parameter.
	sectionIdx int

	input      *uistate.Input
	prevFilter string
	popup      *uistate.Popup
	message    *uistate.Message
	docScroll  int
	running    bool

	messageTimeout time.Duration
	now            func() time.Time

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool

	events           *event.Source
	inputCursor      cursor.Model
	inputCursorDirty bool

	handlers map[reflect.Type]msgHandler
}

type sectionView struct {
	section sysctl.Section
	list    *uistate.List
}

// NewModel builds the session over controller.
func NewModel(controller Controller, opts Options) *Model {
	m := &Model{
		controller:     controller,
		clipboard:      opts.Clipboard,
		sectionIdx:     allSections,
		running:        true,
		messageTimeout: opts.MessageTimeout,
		now:            opts.Now,
		width:          defaultWidth,
		height:         defaultHeight,
		showFooter:     opts.ShowFooter,
		events:         opts.Events,
	}
	if m.messageTimeout <= 0 {
		m.messageTimeout = defaultMessageTimeout
	}
	if m.now == nil {
		m.now = time.Now
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.all = uistate.NewList(allTitle, controller.Parameters())
	m.rebuildSections()

	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Input != nil {
		c.TextStyle = styles.Input.Copy()
	}
	c.SetChar(" ")
	if !opts.CursorBlink {
		c.SetMode(cursor.CursorStatic)
	}
	m.inputCursor = c

	if opts.Section != "" {
		m.showSection(opts.Section)
	}
	if opts.Query != "" {
		m.currentList().SetFilter(opts.Query)
	}
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.events != nil {
		cmds = append(cmds, waitForEvent(m.events))
	}
	if cmd := m.inputCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateInputCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if !m.running {
		return m, tea.Quit
	}
	return m, m.finishUpdate(cmds)
}

// Running reports whether the session is still active.
func (m *Model) Running() bool {
	return m.running
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(eventMsg{}):          m.handleEventMsg,
		reflect.TypeOf(eventDoneMsg{}):      m.handleEventDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.inputCursorDirty {
		m.inputCursorDirty = false
		m.inputCursor.Blink = false
		if cmd := m.inputCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}
