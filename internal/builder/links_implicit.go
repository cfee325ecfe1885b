package builder

import (
	"context"
	"fmt"

	"github.com/specialistvlad/schedgrid/internal/ctxlog"
	"github.com/specialistvlad/schedgrid/internal/model"
	"github.com/specialistvlad/schedgrid/internal/portref"
	"github.com/specialistvlad/schedgrid/internal/schedule"
)

// linkDependsOn declares the edges of the `depends_on` lists of the children
// of m. Each entry makes the child's "all" input depend on the referenced
// sibling output, or on the parent's input when the entry is "." or ".port".
func linkDependsOn(ctx context.Context, n *schedule.Node, m *model.Node) error {
	baseLogger := ctxlog.FromContext(ctx).With("node", n.Path())

	for _, cm := range m.Nodes {
		for _, ref := range cm.DependsOn {
			logger := baseLogger.With("child", cm.Name, "depends_on", ref.Ref)
			logger.Debug("Resolving depends_on entry.")

			pred, err := portref.Parse(ref.Ref)
			if err != nil {
				return atRange(ref.Range, fmt.Errorf("node '%s' has invalid depends_on entry: %w", cm.Name, err))
			}

			preds := []portref.Ref{pred}
			if pred.IsAllNodes() {
				preds = preds[:0]
				for _, name := range siblingsExcept(n, cm.Name) {
					preds = append(preds, portref.Ref{Node: name})
				}
			}
			for _, p := range preds {
				if p.Node == cm.Name {
					return atRange(ref.Range, fmt.Errorf("node '%s' cannot depend on itself", cm.Name))
				}
				if err := link(n, portref.Ref{Node: cm.Name}, p); err != nil {
					return atRange(ref.Range, err)
				}
			}
		}
	}
	return nil
}
