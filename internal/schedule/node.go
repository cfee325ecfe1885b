package schedule

import (
	"fmt"
	"slices"
	"strings"
)

// Node is a single unit of the schedule hierarchy.
type Node struct {
	g        *Graph
	id       NodeID
	name     string
	kind     Kind
	parent   NodeID
	children []NodeID
	inputs   []PortID
	outputs  []PortID

	resources    []Resource
	consumptions []Consumption

	// User is the account the node and its children run as. Empty inherits.
	User string
	// Executable is the program a command job runs.
	Executable string
	// Args are the arguments passed to Executable.
	Args []string

	// finalizedRev is the graph revision at the end of the last Finalize.
	finalizedRev int
}

// ID returns the node's arena identifier.
func (n *Node) ID() NodeID { return n.id }

// Name returns the node name.
func (n *Node) Name() string { return n.name }

// Kind returns the node variant.
func (n *Node) Kind() Kind { return n.kind }

// Graph returns the arena the node lives in.
func (n *Node) Graph() *Graph { return n.g }

// Parent returns the parent node, or nil for a root or an unattached node.
func (n *Node) Parent() *Node {
	if n.parent == noNode {
		return nil
	}
	return n.g.nodes[n.parent]
}

// Children returns the child nodes in attachment order.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	for i, id := range n.children {
		out[i] = n.g.nodes[id]
	}
	return out
}

// InputPorts returns the input ports in creation order.
func (n *Node) InputPorts() []*Port { return n.g.portList(n.inputs) }

// OutputPorts returns the output ports in creation order.
func (n *Node) OutputPorts() []*Port { return n.g.portList(n.outputs) }

func (g *Graph) portList(ids []PortID) []*Port {
	out := make([]*Port, len(ids))
	for i, id := range ids {
		out[i] = g.ports[id]
	}
	return out
}

// Path returns the slash-joined names from the root down to this node.
func (n *Node) Path() string {
	var names []string
	for cur := n; cur != nil; cur = cur.Parent() {
		names = append(names, cur.name)
	}
	slices.Reverse(names)
	return "/" + strings.Join(names, "/")
}

// Root returns the topmost ancestor of n.
func (n *Node) Root() *Node {
	cur := n
	for cur.parent != noNode {
		cur = cur.g.nodes[cur.parent]
	}
	return cur
}

// isAncestorOf reports whether n is other or one of its ancestors.
func (n *Node) isAncestorOf(other *Node) bool {
	for cur := other; cur != nil; cur = cur.Parent() {
		if cur.id == n.id {
			return true
		}
	}
	return false
}

// AddChild attaches child below n. Names are unique among siblings and a node
// is attached at most once.
func (n *Node) AddChild(child *Node) error {
	if child.g != n.g {
		return fmt.Errorf("attach '%s' to '%s': %w", child.name, n.Path(), ErrForeignNode)
	}
	if child.parent != noNode {
		return fmt.Errorf("attach '%s' to '%s': %w (parent is '%s')", child.name, n.Path(), ErrAlreadyAttached, child.Parent().Path())
	}
	if child.isAncestorOf(n) {
		return fmt.Errorf("attach '%s' to '%s': %w", child.name, n.Path(), ErrInvalidChild)
	}
	if _, ok := n.lookupChild(child.name); ok {
		return &DuplicateNameError{Parent: n.Path(), What: "child node", Name: child.name}
	}

	n.children = append(n.children, child.id)
	child.parent = n.id
	n.g.touch()
	return nil
}

// Child returns the child with the given name.
func (n *Node) Child(name string) (*Node, error) {
	child, ok := n.lookupChild(name)
	if !ok {
		return nil, &UnknownNodeError{Parent: n.Path(), Name: name}
	}
	return child, nil
}

func (n *Node) lookupChild(name string) (*Node, bool) {
	for _, id := range n.children {
		if c := n.g.nodes[id]; c.name == name {
			return c, true
		}
	}
	return nil, false
}

// MakeInputPort declares a new named input port.
func (n *Node) MakeInputPort(name string) (*Port, error) {
	return n.makePort(Input, name)
}

// MakeOutputPort declares a new named output port.
func (n *Node) MakeOutputPort(name string) (*Port, error) {
	return n.makePort(Output, name)
}

func (n *Node) makePort(dir Direction, name string) (*Port, error) {
	if !n.kind.allowsPort(dir) && !(name == AllPortName && n.kind != KindSchedule) {
		return nil, &PortNotAllowedError{Node: n.Path(), Kind: n.kind, Direction: dir}
	}
	if _, ok := n.lookupPort(dir, name); ok {
		return nil, &DuplicateNameError{Parent: n.Path(), What: dir.String() + " port", Name: name}
	}
	return n.g.newPort(n, dir, name), nil
}

// InputPort returns the input port with the given name. The "all" port is
// created the first time it is requested.
func (n *Node) InputPort(name string) (*Port, error) {
	return n.port(Input, name)
}

// OutputPort returns the output port with the given name. The "all" port is
// created the first time it is requested.
func (n *Node) OutputPort(name string) (*Port, error) {
	return n.port(Output, name)
}

func (n *Node) port(dir Direction, name string) (*Port, error) {
	if p, ok := n.lookupPort(dir, name); ok {
		return p, nil
	}
	if name != AllPortName {
		return nil, &UnknownPortError{Node: n.Path(), Direction: dir, Name: name}
	}
	return n.makePort(dir, name)
}

// allPort returns the "all" port of the given direction, creating it when
// needed. It is only called on nodes that may carry ports.
func (n *Node) allPort(dir Direction) *Port {
	p, err := n.port(dir, AllPortName)
	if err != nil {
		panic(fmt.Sprintf("schedule: %v", err))
	}
	return p
}

func (n *Node) lookupPort(dir Direction, name string) (*Port, bool) {
	ids := n.inputs
	if dir == Output {
		ids = n.outputs
	}
	for _, id := range ids {
		if p := n.g.ports[id]; p.name == name {
			return p, true
		}
	}
	return nil, false
}

// Walk visits n and its descendants in pre-order, stopping at the first error.
func (n *Node) Walk(fn func(*Node) error) error {
	if err := fn(n); err != nil {
		return err
	}
	for _, id := range n.children {
		if err := n.g.nodes[id].Walk(fn); err != nil {
			return err
		}
	}
	return nil
}
