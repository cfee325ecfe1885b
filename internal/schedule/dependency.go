package schedule

import (
	"fmt"
	"slices"
)

// AddDependency declares that a port of succNode depends on a port of
// predNode. Both node names are either SelfNodeName or the name of a child of
// n, and an empty port name stands for AllPortName.
//
// The successor side resolves "." to an output port of n (n's outputs depend
// on something inside it) and a child to one of the child's input ports. The
// predecessor side resolves "." to an input port of n and a child to one of
// the child's output ports.
func (n *Node) AddDependency(succNode, succPort, predNode, predPort string) error {
	succ, err := n.resolveEndpoint(succNode, succPort, Output)
	if err != nil {
		return fmt.Errorf("dependency successor: %w", err)
	}
	pred, err := n.resolveEndpoint(predNode, predPort, Input)
	if err != nil {
		return fmt.Errorf("dependency predecessor: %w", err)
	}
	return succ.AddDependency(pred)
}

// resolveEndpoint finds the port named by a dependency endpoint. selfDir is the
// direction used when nodeName is ".", a child always uses the opposite one.
func (n *Node) resolveEndpoint(nodeName, portName string, selfDir Direction) (*Port, error) {
	if portName == "" {
		portName = AllPortName
	}
	if nodeName == SelfNodeName {
		return n.port(selfDir, portName)
	}
	child, err := n.Child(nodeName)
	if err != nil {
		return nil, err
	}
	return child.port(selfDir.Opposite(), portName)
}

// RemoveChild detaches the named child. Every predecessor entry in the tree
// that points into the removed subtree is replaced by the predecessors of the
// removed node's input ports, so whatever depended on the child now depends
// on what the child depended on.
func (n *Node) RemoveChild(name string) error {
	idx := -1
	for i, id := range n.children {
		if n.g.nodes[id].name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &UnknownChildError{Parent: n.Path(), Name: name}
	}
	removed := n.g.nodes[n.children[idx]]

	gone := make(map[NodeID]bool)
	_ = removed.Walk(func(d *Node) error {
		gone[d.id] = true
		return nil
	})

	var with []PortID
	for _, in := range removed.inputs {
		for _, pred := range n.g.ports[in].preds {
			if gone[n.g.ports[pred].node] || slices.Contains(with, pred) {
				continue
			}
			with = append(with, pred)
		}
	}

	n.children = append(n.children[:idx:idx], n.children[idx+1:]...)
	removed.parent = noNode

	_ = n.Root().Walk(func(d *Node) error {
		for _, id := range d.inputs {
			n.g.ports[id].replacePredecessors(gone, with)
		}
		for _, id := range d.outputs {
			n.g.ports[id].replacePredecessors(gone, with)
		}
		return nil
	})
	n.g.touch()
	return nil
}
