package schedule

import "fmt"

// ResourceKind distinguishes counting resources from read/write locks.
type ResourceKind int

const (
	// CountingResource is a pool of interchangeable units.
	CountingResource ResourceKind = iota
	// ReadWriteLockResource is held shared for reading or exclusively for writing.
	ReadWriteLockResource
)

func (k ResourceKind) String() string {
	switch k {
	case CountingResource:
		return "counting"
	case ReadWriteLockResource:
		return "read_write_lock"
	default:
		return "unknown"
	}
}

// ParseResourceKind maps the textual form used in definition files to a kind.
func ParseResourceKind(s string) (ResourceKind, error) {
	switch s {
	case "counting":
		return CountingResource, nil
	case "read_write_lock", "rwlock":
		return ReadWriteLockResource, nil
	default:
		return 0, fmt.Errorf("resource kind '%s': %w", s, ErrInvalidConsumption)
	}
}

// LockMode is how a consumption holds a read/write lock.
type LockMode string

const (
	LockRead  LockMode = "read"
	LockWrite LockMode = "write"
)

// Resource is declared on a node and available to it and its descendants.
type Resource struct {
	Kind ResourceKind
	Name string
	// Amount is the pool size of a counting resource.
	Amount int
}

// Consumption is a node's claim on a resource declared by itself or an ancestor.
type Consumption struct {
	Kind ResourceKind
	Name string
	// Amount applies to counting resources.
	Amount int
	// Mode applies to read/write locks.
	Mode LockMode
}

// Resources returns the resources declared on n in declaration order.
func (n *Node) Resources() []Resource {
	return append([]Resource(nil), n.resources...)
}

// Consumptions returns the consumptions of n in declaration order.
func (n *Node) Consumptions() []Consumption {
	return append([]Consumption(nil), n.consumptions...)
}

// AddResource declares a resource on n. Resource names are unique per node.
func (n *Node) AddResource(r Resource) error {
	if r.Name == "" {
		return fmt.Errorf("node '%s': resource without name: %w", n.Path(), ErrInvalidConsumption)
	}
	if r.Kind == CountingResource && r.Amount < 0 {
		return fmt.Errorf("node '%s': resource '%s' has negative amount %d: %w", n.Path(), r.Name, r.Amount, ErrInvalidConsumption)
	}
	for _, existing := range n.resources {
		if existing.Name == r.Name {
			return &DuplicateNameError{Parent: n.Path(), What: "resource", Name: r.Name}
		}
	}
	n.resources = append(n.resources, r)
	n.g.touch()
	return nil
}

// AddConsumption records that n claims a resource while it runs.
func (n *Node) AddConsumption(c Consumption) error {
	if c.Name == "" {
		return fmt.Errorf("node '%s': consumption without resource name: %w", n.Path(), ErrInvalidConsumption)
	}
	switch c.Kind {
	case CountingResource:
		if c.Amount <= 0 {
			return fmt.Errorf("node '%s': consumption of '%s' must be positive, got %d: %w", n.Path(), c.Name, c.Amount, ErrInvalidConsumption)
		}
	case ReadWriteLockResource:
		if c.Mode != LockRead && c.Mode != LockWrite {
			return fmt.Errorf("node '%s': lock mode '%s' on '%s' is neither read nor write: %w", n.Path(), c.Mode, c.Name, ErrInvalidConsumption)
		}
	default:
		return fmt.Errorf("node '%s': consumption of '%s' has unknown kind: %w", n.Path(), c.Name, ErrInvalidConsumption)
	}
	n.consumptions = append(n.consumptions, c)
	n.g.touch()
	return nil
}
