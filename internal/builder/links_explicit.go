package builder

import (
	"context"
	"fmt"

	"github.com/specialistvlad/schedgrid/internal/ctxlog"
	"github.com/specialistvlad/schedgrid/internal/model"
	"github.com/specialistvlad/schedgrid/internal/portref"
	"github.com/specialistvlad/schedgrid/internal/schedule"
)

// linkDependencyBlocks declares the edges of the `dependency` blocks of m. A
// "*" on one side expands to every child except the one named on the other.
func linkDependencyBlocks(ctx context.Context, n *schedule.Node, m *model.Node) error {
	baseLogger := ctxlog.FromContext(ctx).With("node", n.Path())

	for _, dep := range m.Dependencies {
		logger := baseLogger.With("successor", dep.Successor, "predecessor", dep.Predecessor)
		logger.Debug("Resolving dependency block.")

		succ, err := portref.Parse(dep.Successor)
		if err != nil {
			return atRange(dep.DeclRange, fmt.Errorf("invalid successor: %w", err))
		}
		pred, err := portref.Parse(dep.Predecessor)
		if err != nil {
			return atRange(dep.DeclRange, fmt.Errorf("invalid predecessor: %w", err))
		}
		if succ.IsAllNodes() && pred.IsAllNodes() {
			return atRange(dep.DeclRange, fmt.Errorf("successor and predecessor cannot both be '%s'", schedule.AllNodesName))
		}

		switch {
		case succ.IsAllNodes():
			for _, name := range siblingsExcept(n, pred.Node) {
				if err := link(n, portref.Ref{Node: name, Port: succ.Port}, pred); err != nil {
					return atRange(dep.DeclRange, err)
				}
			}
		case pred.IsAllNodes():
			for _, name := range siblingsExcept(n, succ.Node) {
				if err := link(n, succ, portref.Ref{Node: name, Port: pred.Port}); err != nil {
					return atRange(dep.DeclRange, err)
				}
			}
		default:
			if err := link(n, succ, pred); err != nil {
				return atRange(dep.DeclRange, err)
			}
		}
		logger.Debug("Linked dependency block.")
	}
	return nil
}

func link(n *schedule.Node, succ, pred portref.Ref) error {
	return n.AddDependency(succ.Node, succ.PortName(), pred.Node, pred.PortName())
}

// siblingsExcept returns the names of the children of n other than skip.
func siblingsExcept(n *schedule.Node, skip string) []string {
	var names []string
	for _, c := range n.Children() {
		if c.Name() != skip {
			names = append(names, c.Name())
		}
	}
	return names
}
