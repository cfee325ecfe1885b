package builder

import (
	"context"

	"github.com/specialistvlad/schedgrid/internal/model"
	"github.com/specialistvlad/schedgrid/internal/schedule"
)

// Builder transforms a parsed definition into a schedule graph.
//
// Build returns an error when:
//   - a dependency references a node or port that does not exist
//   - a reference is malformed
//   - a resource or consumption is invalid
//   - a `remove` entry names an unknown child
//
// Errors carry the source range of the offending block when one is known.
type Builder interface {
	// Build creates a new graph and returns its schedule root.
	Build(ctx context.Context, sched *model.Schedule) (*schedule.Node, error)
}
