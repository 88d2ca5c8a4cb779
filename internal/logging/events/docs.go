package events

import "github.com/atomicstack/sysctl-control/internal/logging"

type DocsTracer struct{}

var Docs = DocsTracer{}

func (DocsTracer) Matched(base, glob string, files int) {
	logging.Trace("docs.matched", map[string]interface{}{"base": base, "glob": glob, "files": files})
}

func (DocsTracer) Skipped(path string, err error) {
	logging.Trace("docs.skip", map[string]interface{}{"path": path, "error": err.Error()})
}

func (DocsTracer) Applied(parameters, documented int) {
	logging.Trace("docs.apply", map[string]interface{}{"parameters": parameters, "documented": documented})
}
