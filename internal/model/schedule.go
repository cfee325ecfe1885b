// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Schedule and Node structures, the format-agnostic
// result of parsing a definition file.
package model

import "github.com/hashicorp/hcl/v2"

// NodeKind is the block type a node was declared with.
type NodeKind string

const (
	KindSchedule   NodeKind = "schedule"
	KindTrigger    NodeKind = "trigger"
	KindJob        NodeKind = "job"
	KindCompound   NodeKind = "compound"
	KindTerminator NodeKind = "terminator"
)

// Schedule is the root of one definition file.
type Schedule struct {
	Node
	FSInformation *FSInfo
}

// Node is the format-agnostic representation of a node block. Fields that do
// not apply to a kind stay empty; the body schema of each kind rejects
// attributes it does not support.
type Node struct {
	Kind NodeKind
	Name string
	User string

	// Path and Args apply to jobs.
	Path string
	Args []string

	InputPorts  []string
	OutputPorts []string

	Resources    []Resource
	Consumptions []Consumption

	// Nodes are the children in declaration order.
	Nodes        []*Node
	Dependencies []Dependency
	// DependsOn lists references this node's "all" input depends on. They
	// resolve against the enclosing node.
	DependsOn []Reference
	// Remove names children detached after all dependencies are declared.
	Remove []string

	DeclRange hcl.Range
}

// Resource is a `resource "<kind>" "<name>"` block.
type Resource struct {
	Kind      string
	Name      string
	Amount    int
	DeclRange hcl.Range
}

// Consumption is a `consumption "<kind>" "<name>"` block.
type Consumption struct {
	Kind      string
	Name      string
	Amount    int
	Mode      string
	DeclRange hcl.Range
}

// Dependency is a `dependency` block. Both sides are port references.
type Dependency struct {
	Successor   string
	Predecessor string
	DeclRange   hcl.Range
}

// Reference is a single `depends_on` entry.
type Reference struct {
	Ref   string
	Range hcl.Range
}

// Walk visits n and its descendants in pre-order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Nodes {
		c.Walk(fn)
	}
}

// Count returns the number of nodes below n, n excluded.
func (n *Node) Count() int {
	total := 0
	n.Walk(func(*Node) { total++ })
	return total - 1
}
