// Package schedule is the in-memory model of a job schedule: a hierarchy of
// nodes (jobs, triggers, terminators, compound groupings and the schedule
// root) connected through named, directional ports.
//
// # Ownership
//
// A Graph is an arena. It owns every Node and Port ever created in it, and
// nodes and ports refer to each other by NodeID and PortID. A node's parent is
// an ID, never an owning pointer, so the parent/child relation cannot form an
// ownership cycle. A child is attached to exactly one parent, once.
//
// # Dependencies
//
// A dependency edge is stored as membership in the successor port's ordered
// predecessor list. Only the successor's list is authoritative. Every node can
// lazily grow an "all" input and output port, the aggregate ports that stand
// for "depends on / contributes to everything".
//
// # Finalize
//
// Finalize runs in two phases over a subtree:
//
//  1. ensureDependencies (post-order) synthesizes the implicit "all"-port
//     edges so every node carries complete aggregate reachability.
//  2. purge removes every edge already implied by a chain of other edges
//     (transitive reduction), leaving the minimal dependency set.
//
// Between the phases the graph is checked for cycles; a cyclic graph is
// rejected with a *CycleError.
//
// The package is not safe for concurrent use. A Graph is built, finalized and
// serialized by a single goroutine.
package schedule
