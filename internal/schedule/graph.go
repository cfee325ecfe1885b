package schedule

// NodeID identifies a node within its Graph.
type NodeID int

// PortID identifies a port within its Graph.
type PortID int

// noNode is the parent of an unattached node.
const noNode NodeID = -1

// Graph is the arena owning all nodes and ports of one schedule.
type Graph struct {
	nodes []*Node
	ports []*Port
	// rev is bumped on every structural mutation so finalized subtrees can
	// tell whether they are still current.
	rev int
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{}
}

// NewNode creates an unattached node of the given kind. Most callers use the
// kind-specific constructors instead.
func (g *Graph) NewNode(kind Kind, name string) *Node {
	n := &Node{
		g:      g,
		id:     NodeID(len(g.nodes)),
		name:   name,
		kind:   kind,
		parent: noNode,
	}
	g.nodes = append(g.nodes, n)
	g.touch()
	return n
}

// NewCommandJob creates an unattached command job running path.
func (g *Graph) NewCommandJob(name, path string, args ...string) *Node {
	n := g.NewNode(KindCommandJob, name)
	n.Executable = path
	n.Args = append([]string(nil), args...)
	return n
}

// NewManualTrigger creates an unattached manual trigger.
func (g *Graph) NewManualTrigger(name string) *Node {
	return g.NewNode(KindManualTrigger, name)
}

// NewTerminator creates an unattached terminator.
func (g *Graph) NewTerminator(name string) *Node {
	return g.NewNode(KindTerminator, name)
}

// Node returns the node with the given ID, or nil.
func (g *Graph) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(g.nodes) {
		return nil
	}
	return g.nodes[id]
}

// Port returns the port with the given ID, or nil.
func (g *Graph) Port(id PortID) *Port {
	if id < 0 || int(id) >= len(g.ports) {
		return nil
	}
	return g.ports[id]
}

func (g *Graph) newPort(owner *Node, dir Direction, name string) *Port {
	p := &Port{
		g:    g,
		id:   PortID(len(g.ports)),
		node: owner.id,
		name: name,
		dir:  dir,
	}
	g.ports = append(g.ports, p)
	if dir == Input {
		owner.inputs = append(owner.inputs, p.id)
	} else {
		owner.outputs = append(owner.outputs, p.id)
	}
	g.touch()
	return p
}

func (g *Graph) touch() {
	g.rev++
}
