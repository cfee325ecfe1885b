package builder

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/schedgrid/internal/model"
	"github.com/specialistvlad/schedgrid/internal/schedule"
)

// atRange prefixes err with the source location it originates from.
func atRange(rng hcl.Range, err error) error {
	if rng.Filename == "" {
		return err
	}
	return fmt.Errorf("%s: %w", rng, err)
}

func makePorts(makePort func(string) (*schedule.Port, error), names []string, m *model.Node) error {
	for _, name := range names {
		if _, err := makePort(name); err != nil {
			return atRange(m.DeclRange, err)
		}
	}
	return nil
}

func addResources(n *schedule.Node, resources []model.Resource) error {
	for _, r := range resources {
		kind, err := schedule.ParseResourceKind(r.Kind)
		if err != nil {
			return atRange(r.DeclRange, err)
		}
		if err := n.AddResource(schedule.Resource{Kind: kind, Name: r.Name, Amount: r.Amount}); err != nil {
			return atRange(r.DeclRange, err)
		}
	}
	return nil
}

func addConsumptions(n *schedule.Node, consumptions []model.Consumption) error {
	for _, c := range consumptions {
		kind, err := schedule.ParseResourceKind(c.Kind)
		if err != nil {
			return atRange(c.DeclRange, err)
		}
		cons := schedule.Consumption{Kind: kind, Name: c.Name, Amount: c.Amount, Mode: schedule.LockMode(c.Mode)}
		if err := n.AddConsumption(cons); err != nil {
			return atRange(c.DeclRange, err)
		}
	}
	return nil
}
