package schedule

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddChild(t *testing.T) {
	t.Run("attaches in order and sets parent", func(t *testing.T) {
		g := New()
		root := g.NewNode(KindSchedule, "S")
		a := g.NewCommandJob("a", "/bin/a")
		b := g.NewCommandJob("b", "/bin/b")
		addChildren(t, root, a, b)

		assert.Equal(t, []*Node{a, b}, root.Children())
		assert.Same(t, root, a.Parent())
		assert.Same(t, root, b.Root())
		assert.Nil(t, root.Parent())
		assert.Equal(t, "/S/a", a.Path())
		assert.Equal(t, "/S", root.Path())
	})

	t.Run("error cases", func(t *testing.T) {
		g := New()
		root := g.NewNode(KindSchedule, "S")
		c := g.NewNode(KindCompoundJob, "c")
		require.NoError(t, root.AddChild(c))

		err := root.AddChild(g.NewCommandJob("c", "/bin/c"))
		var dupErr *DuplicateNameError
		require.True(t, errors.As(err, &dupErr))
		assert.Equal(t, "/S", dupErr.Parent)
		assert.Equal(t, "c", dupErr.Name)
		assert.ErrorIs(t, err, ErrDuplicateName)

		other := g.NewNode(KindCompoundJob, "other")
		assert.ErrorIs(t, other.AddChild(c), ErrAlreadyAttached)

		assert.ErrorIs(t, c.AddChild(root), ErrInvalidChild)
		assert.ErrorIs(t, other.AddChild(other), ErrInvalidChild)

		assert.ErrorIs(t, root.AddChild(New().NewTerminator("x")), ErrForeignNode)
	})
}

func TestChild(t *testing.T) {
	g := New()
	root := g.NewNode(KindSchedule, "S")
	job := g.NewCommandJob("job", "/bin/true")
	addChildren(t, root, job)

	got, err := root.Child("job")
	require.NoError(t, err)
	assert.Same(t, job, got)

	_, err = root.Child("missing")
	var unknown *UnknownNodeError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "missing", unknown.Name)
	assert.EqualError(t, err, "node '/S' doesn't have child node 'missing'")
}

func TestPorts(t *testing.T) {
	t.Run("all port is created lazily and only once", func(t *testing.T) {
		g := New()
		job := g.NewCommandJob("job", "/bin/true")
		assert.Empty(t, job.InputPorts())

		p1, err := job.InputPort(AllPortName)
		require.NoError(t, err)
		p2, err := job.InputPort(AllPortName)
		require.NoError(t, err)
		assert.Same(t, p1, p2)
		assert.Len(t, job.InputPorts(), 1)
		assert.Equal(t, Input, p1.Direction())
		assert.Same(t, job, p1.Node())
	})

	t.Run("named ports must be declared", func(t *testing.T) {
		g := New()
		job := g.NewCommandJob("job", "/bin/true")

		_, err := job.OutputPort("result")
		var unknown *UnknownPortError
		require.True(t, errors.As(err, &unknown))
		assert.Equal(t, Output, unknown.Direction)
		assert.Equal(t, "result", unknown.Name)

		made, err := job.MakeOutputPort("result")
		require.NoError(t, err)
		got, err := job.OutputPort("result")
		require.NoError(t, err)
		assert.Same(t, made, got)

		_, err = job.MakeOutputPort("result")
		assert.ErrorIs(t, err, ErrDuplicateName)

		// Same name on the other side is a different port.
		_, err = job.MakeInputPort("result")
		assert.NoError(t, err)
	})

	t.Run("kind restrictions", func(t *testing.T) {
		g := New()
		trigger := g.NewManualTrigger("start")
		terminator := g.NewTerminator("end")
		root := g.NewNode(KindSchedule, "S")

		_, err := trigger.MakeInputPort("in")
		var notAllowed *PortNotAllowedError
		require.True(t, errors.As(err, &notAllowed))
		assert.Equal(t, KindManualTrigger, notAllowed.Kind)
		assert.Equal(t, Input, notAllowed.Direction)

		_, err = terminator.MakeOutputPort("out")
		assert.ErrorIs(t, err, ErrPortNotAllowed)

		_, err = root.InputPort(AllPortName)
		assert.ErrorIs(t, err, ErrPortNotAllowed)
		_, err = root.OutputPort(AllPortName)
		assert.ErrorIs(t, err, ErrPortNotAllowed)

		// Aggregate ports stay available so dependencies can be hoisted.
		_, err = trigger.InputPort(AllPortName)
		assert.NoError(t, err)
		_, err = terminator.OutputPort(AllPortName)
		assert.NoError(t, err)
	})
}

func TestPortAddDependency(t *testing.T) {
	g := New()
	a := g.NewCommandJob("a", "/bin/true")
	b := g.NewCommandJob("b", "/bin/true")
	in := b.allPort(Input)
	out := a.allPort(Output)

	require.NoError(t, in.AddDependency(out))
	require.NoError(t, in.AddDependency(out))
	assert.Equal(t, []*Port{out}, in.Predecessors())
	assert.True(t, in.DependsOn(out))
	assert.False(t, out.DependsOn(in))

	assert.ErrorIs(t, in.AddDependency(in), ErrSelfDependency)
	assert.ErrorIs(t, in.AddDependency(New().NewCommandJob("x", "/bin/x").allPort(Output)), ErrForeignNode)
	assert.Error(t, in.AddDependency(nil))
}

func TestKindAndDirectionStrings(t *testing.T) {
	assert.Equal(t, "CommandJob", KindCommandJob.String())
	assert.Equal(t, "CompoundJob", KindCompoundJob.String())
	assert.Equal(t, "ManualTrigger", KindManualTrigger.String())
	assert.Equal(t, "Terminator", KindTerminator.String())
	assert.Equal(t, "Schedule", KindSchedule.String())
	assert.Equal(t, "input", Input.String())
	assert.Equal(t, Output, Input.Opposite())
	assert.Equal(t, Input, Output.Opposite())
}

func TestGraphLookup(t *testing.T) {
	g := New()
	job := g.NewCommandJob("job", "/bin/echo", "hello", "world")
	p := job.allPort(Input)

	assert.Same(t, job, g.Node(job.ID()))
	assert.Same(t, p, g.Port(p.ID()))
	assert.Nil(t, g.Node(NodeID(42)))
	assert.Nil(t, g.Port(PortID(-1)))
	assert.Equal(t, []string{"hello", "world"}, job.Args)
	assert.Equal(t, "/bin/echo", job.Executable)
}
