package schedule

import (
	"fmt"
	"slices"
)

// Port is a named, directional connection point on a node.
type Port struct {
	g     *Graph
	id    PortID
	node  NodeID
	name  string
	dir   Direction
	preds []PortID
}

// ID returns the port's arena identifier.
func (p *Port) ID() PortID { return p.id }

// Name returns the port name.
func (p *Port) Name() string { return p.name }

// Direction returns whether this is an input or an output port.
func (p *Port) Direction() Direction { return p.dir }

// Node returns the node owning this port.
func (p *Port) Node() *Node { return p.g.nodes[p.node] }

// Predecessors returns the ports this port depends on, in declaration order.
func (p *Port) Predecessors() []*Port {
	out := make([]*Port, len(p.preds))
	for i, id := range p.preds {
		out[i] = p.g.ports[id]
	}
	return out
}

// DependsOn reports whether pred is a direct predecessor of p.
func (p *Port) DependsOn(pred *Port) bool {
	return pred != nil && pred.g == p.g && slices.Contains(p.preds, pred.id)
}

// String renders the port as "<node path>:<direction>:<name>".
func (p *Port) String() string {
	return fmt.Sprintf("%s:%s:%s", p.Node().Path(), p.dir, p.name)
}

// AddDependency records that p depends on pred. Adding an existing edge is a
// no-op.
func (p *Port) AddDependency(pred *Port) error {
	if pred == nil {
		return fmt.Errorf("port '%s': nil predecessor", p)
	}
	if pred.g != p.g {
		return fmt.Errorf("port '%s' -> '%s': %w", p, pred, ErrForeignNode)
	}
	if pred.id == p.id {
		return fmt.Errorf("port '%s': %w", p, ErrSelfDependency)
	}
	if p.addPredecessor(pred.id) {
		p.g.touch()
	}
	return nil
}

// addPredecessor appends pred unless it is already listed or is p itself.
func (p *Port) addPredecessor(pred PortID) bool {
	if pred == p.id || slices.Contains(p.preds, pred) {
		return false
	}
	p.preds = append(p.preds, pred)
	return true
}

// implicitDependencies adds to acc every port p reaches through one or more
// predecessor hops. Input ports follow their predecessors only. Output ports
// of a command job also hop to each of the job's input ports: a job's outputs
// are produced only after all of its inputs are satisfied.
func (p *Port) implicitDependencies(w *walk) {
	if w.expanded[p.id] {
		return
	}
	w.expanded[p.id] = true

	for _, pred := range p.g.implicitPredecessors(p) {
		w.collected[pred] = true
		p.g.ports[pred].implicitDependencies(w)
	}
}

// purge drops every predecessor that is already implied by another
// predecessor, and any duplicates.
func (p *Port) purge() {
	if len(p.preds) == 0 {
		return
	}

	w := newWalk()
	for _, pred := range p.preds {
		p.g.ports[pred].implicitDependencies(w)
	}

	direct := make([]PortID, 0, len(p.preds))
	for _, pred := range p.preds {
		if w.collected[pred] || slices.Contains(direct, pred) {
			continue
		}
		direct = append(direct, pred)
	}
	p.preds = direct
}

// replacePredecessors substitutes every predecessor owned by a node in gone
// with the ports in with. The replacements take the position of the first
// removed entry.
func (p *Port) replacePredecessors(gone map[NodeID]bool, with []PortID) bool {
	at := -1
	kept := make([]PortID, 0, len(p.preds)+len(with))
	for _, pred := range p.preds {
		if gone[p.g.ports[pred].node] {
			if at < 0 {
				at = len(kept)
			}
			continue
		}
		kept = append(kept, pred)
	}
	if at < 0 {
		return false
	}

	var spliced []PortID
	for _, id := range with {
		if id == p.id || slices.Contains(kept, id) || slices.Contains(spliced, id) {
			continue
		}
		spliced = append(spliced, id)
	}
	p.preds = slices.Insert(kept, at, spliced...)
	return true
}

// walk is the accumulator of an implicit-dependency traversal. expanded holds
// ports whose predecessors were already followed, collected the ports reached
// at depth one or more.
type walk struct {
	expanded  map[PortID]bool
	collected map[PortID]bool
}

func newWalk() *walk {
	return &walk{
		expanded:  make(map[PortID]bool),
		collected: make(map[PortID]bool),
	}
}

// implicitPredecessors returns the ports p directly depends on, including the
// command-job hop from an output port to every input port of its node. The
// hop never creates ports.
func (g *Graph) implicitPredecessors(p *Port) []PortID {
	if p.dir != Output {
		return p.preds
	}
	owner := g.nodes[p.node]
	if owner.kind != KindCommandJob || len(owner.inputs) == 0 {
		return p.preds
	}
	return append(slices.Clone(p.preds), owner.inputs...)
}
