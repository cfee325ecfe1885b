package builder

import (
	"context"
	"fmt"

	"github.com/specialistvlad/schedgrid/internal/ctxlog"
	"github.com/specialistvlad/schedgrid/internal/model"
	"github.com/specialistvlad/schedgrid/internal/schedule"
)

// lifecycle fills in the construction steps of a node with children from its
// definition.
func lifecycle(ctx context.Context, g *schedule.Graph, m *model.Node) schedule.Lifecycle {
	return schedule.Lifecycle{
		Start: func(n *schedule.Node) error {
			n.User = m.User
			return nil
		},
		Resources: func(n *schedule.Node) error {
			if err := addResources(n, m.Resources); err != nil {
				return err
			}
			return addConsumptions(n, m.Consumptions)
		},
		ChildNodes: func(n *schedule.Node) error {
			for _, cm := range m.Nodes {
				child, err := newNode(ctx, g, cm)
				if err != nil {
					return err
				}
				if err := n.AddChild(child); err != nil {
					return atRange(cm.DeclRange, err)
				}
			}
			return nil
		},
		InputPorts: func(n *schedule.Node) error {
			return makePorts(n.MakeInputPort, m.InputPorts, m)
		},
		OutputPorts: func(n *schedule.Node) error {
			return makePorts(n.MakeOutputPort, m.OutputPorts, m)
		},
		Dependencies: func(n *schedule.Node) error {
			if err := linkDependencyBlocks(ctx, n, m); err != nil {
				return err
			}
			return linkDependsOn(ctx, n, m)
		},
		Finish: func(n *schedule.Node) error {
			return removeChildren(ctx, n, m)
		},
	}
}

// newNode creates the graph node for a single child definition.
func newNode(ctx context.Context, g *schedule.Graph, m *model.Node) (*schedule.Node, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Creating node.", "kind", m.Kind, "name", m.Name)

	var n *schedule.Node
	switch m.Kind {
	case model.KindCompound:
		return g.NewCompound(m.Name, lifecycle(ctx, g, m))
	case model.KindJob:
		n = g.NewCommandJob(m.Name, m.Path, m.Args...)
	case model.KindTrigger:
		n = g.NewManualTrigger(m.Name)
	case model.KindTerminator:
		n = g.NewTerminator(m.Name)
	default:
		return nil, atRange(m.DeclRange, fmt.Errorf("node '%s' has unsupported kind '%s'", m.Name, m.Kind))
	}

	n.User = m.User
	if err := makePorts(n.MakeInputPort, m.InputPorts, m); err != nil {
		return nil, err
	}
	if err := makePorts(n.MakeOutputPort, m.OutputPorts, m); err != nil {
		return nil, err
	}
	if err := addConsumptions(n, m.Consumptions); err != nil {
		return nil, err
	}
	// A job may tie its own output ports to its input ports.
	if err := linkDependencyBlocks(ctx, n, m); err != nil {
		return nil, err
	}
	return n, nil
}

// removeChildren detaches the children listed in the `remove` attribute.
func removeChildren(ctx context.Context, n *schedule.Node, m *model.Node) error {
	logger := ctxlog.FromContext(ctx)
	for _, name := range m.Remove {
		logger.Debug("Build: Removing child node.", "parent", n.Path(), "child", name)
		if err := n.RemoveChild(name); err != nil {
			return atRange(m.DeclRange, err)
		}
	}
	return nil
}
