package schedule

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic checking via errors.Is().
var (
	// ErrUnknownNode indicates a child lookup by name missed.
	ErrUnknownNode = errors.New("unknown node")

	// ErrUnknownPort indicates a port lookup by name missed.
	ErrUnknownPort = errors.New("unknown port")

	// ErrUnknownChild indicates removal of a child that does not exist.
	ErrUnknownChild = errors.New("unknown child node")

	// ErrDuplicateName indicates a sibling, port or resource name clash.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrNotImplemented indicates a mandatory lifecycle step was not supplied.
	ErrNotImplemented = errors.New("not implemented")

	// ErrCycle indicates the dependency declarations form a cycle.
	ErrCycle = errors.New("dependency cycle")

	// ErrPortNotAllowed indicates a node kind cannot carry the requested port.
	ErrPortNotAllowed = errors.New("port not allowed")

	// ErrSelfDependency indicates a port was declared as its own predecessor.
	ErrSelfDependency = errors.New("port cannot depend on itself")

	// ErrAlreadyAttached indicates a node that already has a parent was attached again.
	ErrAlreadyAttached = errors.New("node already has a parent")

	// ErrInvalidChild indicates a node was attached to itself or to one of its descendants.
	ErrInvalidChild = errors.New("node cannot be attached below itself")

	// ErrForeignNode indicates nodes or ports from two different graphs were mixed.
	ErrForeignNode = errors.New("node belongs to another graph")

	// ErrInvalidConsumption indicates a malformed resource or consumption declaration.
	ErrInvalidConsumption = errors.New("invalid resource declaration")
)

// UnknownNodeError is returned when a dependency names a child that does not exist.
type UnknownNodeError struct {
	Parent string // Path of the node the lookup ran on
	Name   string
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("node '%s' doesn't have child node '%s'", e.Parent, e.Name)
}

func (e *UnknownNodeError) Unwrap() error { return ErrUnknownNode }

// UnknownPortError is returned when a named port does not exist. The "all"
// port never produces it, since it is created on demand.
type UnknownPortError struct {
	Node      string
	Direction Direction
	Name      string
}

func (e *UnknownPortError) Error() string {
	return fmt.Sprintf("node '%s' doesn't have %s port '%s'", e.Node, e.Direction, e.Name)
}

func (e *UnknownPortError) Unwrap() error { return ErrUnknownPort }

// UnknownChildError is returned by RemoveChild for a name with no matching child.
type UnknownChildError struct {
	Parent string
	Name   string
}

func (e *UnknownChildError) Error() string {
	return fmt.Sprintf("node '%s' doesn't have child node '%s' to remove", e.Parent, e.Name)
}

func (e *UnknownChildError) Unwrap() error { return ErrUnknownChild }

// DuplicateNameError is returned when a name is already taken within its scope.
type DuplicateNameError struct {
	Parent string
	What   string // "child node", "input port", "resource", ...
	Name   string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("node '%s' already has %s '%s'", e.Parent, e.What, e.Name)
}

func (e *DuplicateNameError) Unwrap() error { return ErrDuplicateName }

// NotImplementedError is returned when a mandatory compound lifecycle step has
// no callback.
type NotImplementedError struct {
	Node string
	Step Step
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("node '%s': lifecycle step %s must be implemented", e.Node, e.Step)
}

func (e *NotImplementedError) Unwrap() error { return ErrNotImplemented }

// CycleError is returned by Finalize when the dependency graph is cyclic.
type CycleError struct {
	Port string // The first port found on the cycle
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle detected involving port '%s'", e.Port)
}

func (e *CycleError) Unwrap() error { return ErrCycle }

// PortNotAllowedError is returned when a node kind cannot declare a port.
type PortNotAllowedError struct {
	Node      string
	Kind      Kind
	Direction Direction
}

func (e *PortNotAllowedError) Error() string {
	return fmt.Sprintf("node '%s' of kind %s cannot have %s ports", e.Node, e.Kind, e.Direction)
}

func (e *PortNotAllowedError) Unwrap() error { return ErrPortNotAllowed }
