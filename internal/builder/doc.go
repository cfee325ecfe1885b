// Package builder turns a parsed schedule definition into a schedule graph.
//
// # Why Builder Exists
//
// The model package knows HCL and nothing about ports, predecessors or
// finalization. The schedule package knows the graph and nothing about files.
// The builder is the bridge between the two: it walks a model.Schedule and
// drives the compound construction lifecycle for every node that has
// children.
//
// # How It Works
//
// For the schedule and every compound, the lifecycle steps are filled in from
// the definition:
//  1. Start: the run-as user.
//  2. Resources: `resource` and `consumption` blocks.
//  3. ChildNodes: every child, built recursively, in declaration order.
//  4. InputPorts / OutputPorts: `input_ports` and `output_ports`.
//  5. Dependencies: `dependency` blocks first, then the `depends_on` lists of
//     the children.
//  6. Finish: the `remove` list, spliced out of the graph.
//
// Leaf nodes (jobs, triggers, terminators) are created directly with their
// kind-specific constructor.
//
// The returned root is not finalized. Callers run Finalize before emitting it.
package builder
