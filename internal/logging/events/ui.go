package events

import "github.com/atomicstack/sysctl-control/internal/logging"

type UITracer struct{}

type InputTracer struct{}

type CommandTracer struct{}

type PopupTracer struct{}

var (
	UI      = UITracer{}
	Input   = InputTracer{}
	Command = CommandTracer{}
	Popup   = PopupTracer{}
)

func (UITracer) ListCursor(section string, cursor int) {
	logging.Trace("list.cursor", map[string]interface{}{"section": section, "cursor": cursor})
}

func (UITracer) Section(section string) {
	logging.Trace("list.section", map[string]interface{}{"section": section})
}

func (UITracer) DocScroll(offset int) {
	logging.Trace("docs.scroll", map[string]interface{}{"offset": offset})
}

func (UITracer) Message(text string) {
	logging.Trace("message.set", map[string]interface{}{"text": text})
}

func (UITracer) MessageExpired(text string) {
	logging.Trace("message.expire", map[string]interface{}{"text": text})
}

func (InputTracer) Open(mode, buffer string) {
	logging.Trace("input.open", map[string]interface{}{"mode": mode, "buffer": buffer})
}

func (InputTracer) Close(mode string) {
	logging.Trace("input.close", map[string]interface{}{"mode": mode})
}

func (InputTracer) Edit(mode, buffer string, cursor int) {
	logging.Trace("input.edit", map[string]interface{}{"mode": mode, "buffer": buffer, "cursor": cursor})
}

func (InputTracer) Filter(section, query string, matches int) {
	logging.Trace("input.filter", map[string]interface{}{"section": section, "query": query, "matches": matches})
}

func (CommandTracer) Dispatch(name string) {
	logging.Trace("command.dispatch", map[string]interface{}{"command": name})
}

func (CommandTracer) Unknown(line string) {
	logging.Trace("command.unknown", map[string]interface{}{"line": line})
}

func (CommandTracer) Update(name, value string, err error) {
	payload := map[string]interface{}{"name": name, "value": value}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("command.update", payload)
}

func (CommandTracer) Refresh(count int, err error) {
	payload := map[string]interface{}{"parameters": count}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("command.refresh", payload)
}

func (PopupTracer) Open(title string, options int) {
	logging.Trace("popup.open", map[string]interface{}{"title": title, "options": options})
}

func (PopupTracer) Close(title string) {
	logging.Trace("popup.close", map[string]interface{}{"title": title})
}

func (PopupTracer) Copy(label string, err error) {
	payload := map[string]interface{}{"label": label}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("popup.copy", payload)
}
