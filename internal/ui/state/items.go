package state

import "github.com/atomicstack/sysctl-control/internal/sysctl"

// CloneParameters copies the handle slice. The parameters themselves stay
// shared with the controller.
func CloneParameters(parameters []*sysctl.Parameter) []*sysctl.Parameter {
	dup := make([]*sysctl.Parameter, len(parameters))
	copy(dup, parameters)
	return dup
}
