// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the Go struct representation of schedule definition
// files. It parses HCL into a strongly-typed, in-memory description of a
// schedule that the builder turns into a dependency graph.
//
// # Core Concepts
//
//   - Schedule: The root of one definition file. Exactly one `schedule` block
//     is allowed per file.
//
//   - Node: A trigger, job, compound or terminator. Compounds nest further
//     nodes and declare dependencies between them.
//
//   - Dependency: A `dependency` block or a `depends_on` entry, both written
//     as port references (see package portref).
//
//   - FSInfo: Metadata that links every schedule back to its source file.
//
// All attribute values are fully evaluated at load time against an
// evaluation context holding the file's `variable` blocks and a small set of
// string functions, so the model carries plain Go values and no expressions.
package model
