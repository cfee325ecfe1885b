package schedule

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// predNames renders the predecessors of p as port strings.
func predNames(p *Port) []string {
	var out []string
	for _, pred := range p.Predecessors() {
		out = append(out, pred.String())
	}
	return out
}

// closure returns every port reachable from p through one or more hops.
func closure(p *Port) map[PortID]bool {
	w := newWalk()
	p.implicitDependencies(w)
	return w.collected
}

// snapshot captures the predecessor lists of every port below root.
func snapshot(root *Node) map[string][]string {
	out := make(map[string][]string)
	_ = root.Walk(func(n *Node) error {
		for _, p := range append(n.InputPorts(), n.OutputPorts()...) {
			out[p.String()] = predNames(p)
		}
		return nil
	})
	return out
}

func mustChild(t *testing.T, n *Node, path ...string) *Node {
	t.Helper()
	cur := n
	for _, name := range path {
		var err error
		cur, err = cur.Child(name)
		require.NoError(t, err)
	}
	return cur
}

func mustPort(t *testing.T, n *Node, dir Direction, name string) *Port {
	t.Helper()
	p, ok := n.lookupPort(dir, name)
	require.True(t, ok, "node %s has no %s port %q", n.Path(), dir, name)
	return p
}

func addChildren(t *testing.T, parent *Node, children ...*Node) {
	t.Helper()
	for _, c := range children {
		require.NoError(t, parent.AddChild(c))
	}
}

// simpleSchedule builds start -> ls -> end.
func simpleSchedule(t *testing.T) *Node {
	t.Helper()
	g := New()
	root, err := g.NewSchedule("TEST01", Lifecycle{
		Start: func(n *Node) error {
			n.User = "test"
			return nil
		},
		ChildNodes: func(n *Node) error {
			if err := n.AddChild(g.NewManualTrigger("start")); err != nil {
				return err
			}
			if err := n.AddChild(g.NewCommandJob("ls", "/bin/ls")); err != nil {
				return err
			}
			return n.AddChild(g.NewTerminator("end"))
		},
		Dependencies: func(n *Node) error {
			if err := n.AddDependency("ls", "", "start", ""); err != nil {
				return err
			}
			return n.AddDependency("end", "", "ls", "")
		},
	})
	require.NoError(t, err)
	return root
}

// fanOutSchedule builds a compound with two branches exposed on named output
// ports, and a second compound consuming each of them on a named input port.
func fanOutSchedule(t *testing.T) *Node {
	t.Helper()
	g := New()

	jobs := func(names ...string) func(*Node) error {
		return func(n *Node) error {
			for _, name := range names {
				if err := n.AddChild(g.NewCommandJob(name, "/bin/ls", name)); err != nil {
					return err
				}
			}
			return nil
		}
	}

	spamAndFoo, err := g.NewCompound("spam_and_foo", Lifecycle{
		ChildNodes: jobs("spam", "foo"),
		OutputPorts: func(n *Node) error {
			if _, err := n.MakeOutputPort("spam"); err != nil {
				return err
			}
			_, err := n.MakeOutputPort("foo")
			return err
		},
		Dependencies: func(n *Node) error {
			if err := n.AddDependency(".", "spam", "spam", ""); err != nil {
				return err
			}
			return n.AddDependency(".", "foo", "foo", "")
		},
	})
	require.NoError(t, err)

	eggsAndBar, err := g.NewCompound("eggs_and_bar", Lifecycle{
		ChildNodes: jobs("eggs", "bar"),
		InputPorts: func(n *Node) error {
			if _, err := n.MakeInputPort("eggs"); err != nil {
				return err
			}
			_, err := n.MakeInputPort("bar")
			return err
		},
		Dependencies: func(n *Node) error {
			if err := n.AddDependency("eggs", "", ".", "eggs"); err != nil {
				return err
			}
			return n.AddDependency("bar", "", ".", "bar")
		},
	})
	require.NoError(t, err)

	root, err := g.NewSchedule("TEST03", Lifecycle{
		ChildNodes: func(n *Node) error {
			for _, c := range []*Node{g.NewManualTrigger("start"), spamAndFoo, eggsAndBar, g.NewTerminator("end")} {
				if err := n.AddChild(c); err != nil {
					return err
				}
			}
			return nil
		},
		Dependencies: func(n *Node) error {
			deps := [][4]string{
				{"spam_and_foo", "", "start", ""},
				{"eggs_and_bar", "eggs", "spam_and_foo", "spam"},
				{"eggs_and_bar", "bar", "spam_and_foo", "foo"},
				{"end", "", "eggs_and_bar", ""},
			}
			for _, d := range deps {
				if err := n.AddDependency(d[0], d[1], d[2], d[3]); err != nil {
					return err
				}
			}
			return nil
		},
	})
	require.NoError(t, err)
	return root
}
