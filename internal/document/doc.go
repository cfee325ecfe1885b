// Package document serializes a finalized schedule graph.
//
// Two renditions are supported. XML is the format the job execution engine
// consumes: one element per node named after its kind, with its ports,
// resources, consumptions and children. HCL renders the same graph as a
// definition file that the model loader accepts, with every edge spelled out
// as a `dependency` block.
//
// Only finalized graphs are serialized; anything else is rejected with
// ErrNotFinalized.
package document
