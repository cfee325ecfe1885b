package schedule

// Reserved tokens shared by the builder API and the serializers.
const (
	// AllPortName names the aggregate port of a node, per direction.
	AllPortName = "all"
	// SelfNodeName refers to the node a dependency is declared on.
	SelfNodeName = "."
	// AllNodesName refers to every child node.
	AllNodesName = "*"
)

// Direction is the side of a node a port sits on. It is fixed when the port is
// created.
type Direction int

const (
	Input Direction = iota
	Output
)

func (d Direction) String() string {
	switch d {
	case Input:
		return "input"
	case Output:
		return "output"
	default:
		return "unknown"
	}
}

// Opposite returns the other direction.
func (d Direction) Opposite() Direction {
	if d == Input {
		return Output
	}
	return Input
}

// Kind distinguishes the node variants. Serializers select their element tag
// from it, and the implicit-dependency walk uses it to decide whether a
// node's outputs imply its inputs.
type Kind int

const (
	// KindCommandJob runs an executable.
	KindCommandJob Kind = iota
	// KindCompoundJob groups child nodes.
	KindCompoundJob
	// KindManualTrigger starts a schedule by hand.
	KindManualTrigger
	// KindTerminator marks the end of a schedule.
	KindTerminator
	// KindSchedule is the root of the hierarchy. It has no ports.
	KindSchedule
)

func (k Kind) String() string {
	switch k {
	case KindCommandJob:
		return "CommandJob"
	case KindCompoundJob:
		return "CompoundJob"
	case KindManualTrigger:
		return "ManualTrigger"
	case KindTerminator:
		return "Terminator"
	case KindSchedule:
		return "Schedule"
	default:
		return "Unknown"
	}
}

// allowsPort reports whether a node of this kind may declare a port of the
// given direction explicitly. Lazily created "all" ports are only refused on
// the schedule root.
func (k Kind) allowsPort(dir Direction) bool {
	switch k {
	case KindSchedule:
		return false
	case KindManualTrigger:
		return dir == Output
	case KindTerminator:
		return dir == Input
	default:
		return true
	}
}
