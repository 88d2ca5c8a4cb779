package events

import "github.com/atomicstack/sysctl-control/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Parameters(root string, count int) {
	logging.Trace("app.parameters", map[string]interface{}{"root": root, "count": count})
}

func (AppTracer) Docs(source, path string, documents int) {
	logging.Trace("app.docs", map[string]interface{}{"source": source, "path": path, "documents": documents})
}
