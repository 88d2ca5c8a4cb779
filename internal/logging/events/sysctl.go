package events

import "github.com/atomicstack/sysctl-control/internal/logging"

type SysctlTracer struct{}

var Sysctl = SysctlTracer{}

func (SysctlTracer) Skipped(name string, err error) {
	logging.Trace("sysctl.skip", map[string]interface{}{"name": name, "error": err.Error()})
}

func (SysctlTracer) Write(name, value string) {
	logging.Trace("sysctl.write", map[string]interface{}{"name": name, "value": value})
}
