// internal/portref/parser.go
package portref

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/specialistvlad/schedgrid/internal/schedule"
)

// nameRegex matches a single node or port name.
var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_][a-zA-Z0-9_-]*$`)

// Parse creates a Ref from its textual form.
func Parse(raw string) (Ref, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Ref{}, fmt.Errorf("reference cannot be empty")
	}

	switch raw {
	case schedule.SelfNodeName, schedule.AllNodesName:
		return Ref{Node: raw}, nil
	}

	if port, ok := strings.CutPrefix(raw, schedule.SelfNodeName); ok {
		if !nameRegex.MatchString(port) {
			return Ref{}, fmt.Errorf("invalid port name %q in reference %q", port, raw)
		}
		return Ref{Node: schedule.SelfNodeName, Port: port}, nil
	}

	node, port, hasPort := strings.Cut(raw, ".")
	if !nameRegex.MatchString(node) {
		return Ref{}, fmt.Errorf("invalid node name %q in reference %q", node, raw)
	}
	if !hasPort {
		return Ref{Node: node}, nil
	}
	if !nameRegex.MatchString(port) {
		return Ref{}, fmt.Errorf("invalid port name %q in reference %q", port, raw)
	}
	return Ref{Node: node, Port: port}, nil
}
