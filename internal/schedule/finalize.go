package schedule

// Finalize completes the dependency information of the subtree rooted at n
// and reduces it to the minimal edge set. It fails with a *CycleError when the
// declared dependencies are cyclic, leaving the predecessor lists as they were
// after implicit edge synthesis. Re-finalizing a finalized subtree yields the
// same predecessor sets.
func (n *Node) Finalize() error {
	n.ensureDependencies()
	if err := n.detectCycles(); err != nil {
		return err
	}
	n.purge()
	n.finalizedRev = n.g.rev
	return nil
}

// Finalized reports whether Finalize ran on n and nothing in the graph changed
// since.
func (n *Node) Finalized() bool {
	return n.finalizedRev != 0 && n.finalizedRev == n.g.rev
}

// ensureDependencies synthesizes the "all"-port edges bottom-up.
func (n *Node) ensureDependencies() {
	for _, id := range n.children {
		n.g.nodes[id].ensureDependencies()
	}
	if n.kind == KindSchedule {
		return
	}

	if len(n.children) > 0 {
		in := n.allPort(Input)
		for _, id := range n.children {
			n.g.nodes[id].allPort(Input).AddDependency(in)
		}
		out := n.allPort(Output)
		for _, id := range n.children {
			out.AddDependency(n.g.nodes[id].allPort(Output))
		}
	}

	// Hoist dependencies on anything but the parent to the aggregate ports.
	var hoisted []NodeID
	for _, id := range n.inputs {
		for _, pred := range n.g.ports[id].preds {
			owner := n.g.ports[pred].node
			if owner == n.parent || owner == n.id {
				continue
			}
			hoisted = append(hoisted, owner)
		}
	}
	if len(hoisted) == 0 {
		return
	}
	all := n.allPort(Input)
	for _, owner := range hoisted {
		all.AddDependency(n.g.nodes[owner].allPort(Output))
	}
}

// purge applies transitive reduction to every port of the subtree: a node's
// input ports, then its children, then its output ports.
func (n *Node) purge() {
	for _, id := range n.inputs {
		n.g.ports[id].purge()
	}
	for _, id := range n.children {
		n.g.nodes[id].purge()
	}
	for _, id := range n.outputs {
		n.g.ports[id].purge()
	}
}

const (
	white = iota
	grey
	black
)

// detectCycles runs a depth-first search from every port of the subtree over
// the same edges the implicit-dependency walk follows.
func (n *Node) detectCycles() error {
	colour := make(map[PortID]int)

	var visit func(id PortID) error
	visit = func(id PortID) error {
		colour[id] = grey
		for _, pred := range n.g.implicitPredecessors(n.g.ports[id]) {
			switch colour[pred] {
			case grey:
				return &CycleError{Port: n.g.ports[pred].String()}
			case white:
				if err := visit(pred); err != nil {
					return err
				}
			}
		}
		colour[id] = black
		return nil
	}

	return n.Walk(func(d *Node) error {
		for _, ids := range [][]PortID{d.inputs, d.outputs} {
			for _, id := range ids {
				if colour[id] != white {
					continue
				}
				if err := visit(id); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
