package builder

import (
	"context"
	"fmt"

	"github.com/specialistvlad/schedgrid/internal/ctxlog"
	"github.com/specialistvlad/schedgrid/internal/model"
	"github.com/specialistvlad/schedgrid/internal/schedule"
)

// DefaultBuilder implements Builder on top of the compound lifecycle.
type DefaultBuilder struct{}

// New creates a new default builder.
func New() Builder {
	return &DefaultBuilder{}
}

// Build implements the Builder interface.
func (b *DefaultBuilder) Build(ctx context.Context, sched *model.Schedule) (*schedule.Node, error) {
	logger := ctxlog.FromContext(ctx).With("schedule", sched.Name)
	logger.Debug("Build: Starting graph construction.")

	if sched.Kind != model.KindSchedule {
		return nil, fmt.Errorf("%s: expected a schedule, got %s", sched.DeclRange, sched.Kind)
	}

	g := schedule.New()
	root, err := g.NewSchedule(sched.Name, lifecycle(ctx, g, &sched.Node))
	if err != nil {
		return nil, fmt.Errorf("failed to build schedule %s: %w", sched.Name, err)
	}

	logger.Info("Build: Graph construction successful.", "node_count", sched.Count())
	return root, nil
}
