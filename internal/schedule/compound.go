package schedule

import "fmt"

// Step names one stage of the compound construction lifecycle.
type Step string

const (
	StepStart        Step = "create-start"
	StepResources    Step = "create-resources"
	StepChildNodes   Step = "create-child-nodes"
	StepInputPorts   Step = "create-input-ports"
	StepOutputPorts  Step = "create-output-ports"
	StepDependencies Step = "create-dependencies"
	StepFinish       Step = "create-finish"
)

// Lifecycle holds the callbacks that build a compound node. Create invokes
// them in field order. ChildNodes and Dependencies are mandatory, every other
// nil callback is skipped.
type Lifecycle struct {
	Start        func(*Node) error
	Resources    func(*Node) error
	ChildNodes   func(*Node) error
	InputPorts   func(*Node) error
	OutputPorts  func(*Node) error
	Dependencies func(*Node) error
	Finish       func(*Node) error
}

type lifecycleStep struct {
	step      Step
	fn        func(*Node) error
	mandatory bool
}

func (lc Lifecycle) steps() []lifecycleStep {
	return []lifecycleStep{
		{StepStart, lc.Start, false},
		{StepResources, lc.Resources, false},
		{StepChildNodes, lc.ChildNodes, true},
		{StepInputPorts, lc.InputPorts, false},
		{StepOutputPorts, lc.OutputPorts, false},
		{StepDependencies, lc.Dependencies, true},
		{StepFinish, lc.Finish, false},
	}
}

// Create runs the lifecycle against n. A missing mandatory callback fails with
// a *NotImplementedError before any later step runs; an error from a callback
// aborts the remaining steps.
func Create(n *Node, lc Lifecycle) error {
	for _, s := range lc.steps() {
		if s.fn == nil {
			if s.mandatory {
				return &NotImplementedError{Node: n.Path(), Step: s.step}
			}
			continue
		}
		if err := s.fn(n); err != nil {
			return fmt.Errorf("node '%s': %s: %w", n.Path(), s.step, err)
		}
	}
	return nil
}

// NewCompound creates an unattached compound job and builds it with lc.
func (g *Graph) NewCompound(name string, lc Lifecycle) (*Node, error) {
	n := g.NewNode(KindCompoundJob, name)
	if err := Create(n, lc); err != nil {
		return nil, err
	}
	return n, nil
}

// NewSchedule creates a schedule root and builds it with lc.
func (g *Graph) NewSchedule(name string, lc Lifecycle) (*Node, error) {
	n := g.NewNode(KindSchedule, name)
	if err := Create(n, lc); err != nil {
		return nil, err
	}
	return n, nil
}
