// internal/portref/types.go
package portref

import "github.com/specialistvlad/schedgrid/internal/schedule"

// Ref is the structured form of an endpoint reference.
type Ref struct {
	// Node is a child name, schedule.SelfNodeName or schedule.AllNodesName.
	Node string
	// Port is the port name. Empty means schedule.AllPortName.
	Port string
}

// IsSelf reports whether the reference points at the declaring node.
func (r Ref) IsSelf() bool {
	return r.Node == schedule.SelfNodeName
}

// IsAllNodes reports whether the reference fans out to every child.
func (r Ref) IsAllNodes() bool {
	return r.Node == schedule.AllNodesName
}

// PortName returns the port name with the default applied.
func (r Ref) PortName() string {
	if r.Port == "" {
		return schedule.AllPortName
	}
	return r.Port
}
