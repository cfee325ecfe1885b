// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file implements the table-driven part of the node parser: the body
// schema of every node kind and the parsers for its simple attributes.
package model

import (
	"github.com/hashicorp/hcl/v2"
)

// attributeParser evaluates a single attribute and stores it on a Node.
type attributeParser struct {
	Name  string
	Parse func(n *Node, expr hcl.Expression, ctx *hcl.EvalContext) hcl.Diagnostics
}

func stringAttr(set func(n *Node, v string)) func(*Node, hcl.Expression, *hcl.EvalContext) hcl.Diagnostics {
	return func(n *Node, expr hcl.Expression, ctx *hcl.EvalContext) hcl.Diagnostics {
		v, diags := evalString(expr, ctx)
		set(n, v)
		return diags
	}
}

func listAttr(set func(n *Node, v []string)) func(*Node, hcl.Expression, *hcl.EvalContext) hcl.Diagnostics {
	return func(n *Node, expr hcl.Expression, ctx *hcl.EvalContext) hcl.Diagnostics {
		v, diags := evalStringList(expr, ctx)
		set(n, v)
		return diags
	}
}

// attributeParsers is the table that drives the simple attribute parsing logic.
var attributeParsers = []attributeParser{
	{"user", stringAttr(func(n *Node, v string) { n.User = v })},
	{"path", stringAttr(func(n *Node, v string) { n.Path = v })},
	{"args", listAttr(func(n *Node, v []string) { n.Args = v })},
	{"input_ports", listAttr(func(n *Node, v []string) { n.InputPorts = v })},
	{"output_ports", listAttr(func(n *Node, v []string) { n.OutputPorts = v })},
	{"remove", listAttr(func(n *Node, v []string) { n.Remove = v })},
	{"depends_on", func(n *Node, expr hcl.Expression, ctx *hcl.EvalContext) hcl.Diagnostics {
		refs, diags := parseDependsOn(expr, ctx)
		n.DependsOn = refs
		return diags
	}},
}

var (
	nodeBlocks = []hcl.BlockHeaderSchema{
		{Type: string(KindTrigger), LabelNames: []string{"name"}},
		{Type: string(KindJob), LabelNames: []string{"name"}},
		{Type: string(KindCompound), LabelNames: []string{"name"}},
		{Type: string(KindTerminator), LabelNames: []string{"name"}},
	}
	resourceBlock    = hcl.BlockHeaderSchema{Type: "resource", LabelNames: []string{"kind", "name"}}
	consumptionBlock = hcl.BlockHeaderSchema{Type: "consumption", LabelNames: []string{"kind", "name"}}
	dependencyBlock  = hcl.BlockHeaderSchema{Type: "dependency"}
)

func bodySchema(attrs []string, blocks ...hcl.BlockHeaderSchema) *hcl.BodySchema {
	schema := &hcl.BodySchema{Blocks: blocks}
	for _, name := range attrs {
		schema.Attributes = append(schema.Attributes, hcl.AttributeSchema{Name: name, Required: name == "path"})
	}
	return schema
}

func withNodeBlocks(extra ...hcl.BlockHeaderSchema) []hcl.BlockHeaderSchema {
	return append(append([]hcl.BlockHeaderSchema{}, nodeBlocks...), extra...)
}

// bodySchemas defines the expected structure of each node kind's body.
var bodySchemas = map[NodeKind]*hcl.BodySchema{
	KindSchedule: bodySchema(
		[]string{"user", "remove"},
		withNodeBlocks(resourceBlock, dependencyBlock)...,
	),
	KindCompound: bodySchema(
		[]string{"user", "input_ports", "output_ports", "depends_on", "remove"},
		withNodeBlocks(resourceBlock, consumptionBlock, dependencyBlock)...,
	),
	KindJob: bodySchema(
		[]string{"user", "path", "args", "input_ports", "output_ports", "depends_on"},
		consumptionBlock, dependencyBlock,
	),
	KindTrigger: bodySchema(
		[]string{"user", "output_ports"},
	),
	KindTerminator: bodySchema(
		[]string{"user", "input_ports", "depends_on"},
	),
}

type hclResource struct {
	Amount *int `hcl:"amount,optional"`
}

type hclConsumption struct {
	Amount *int    `hcl:"amount,optional"`
	Mode   *string `hcl:"mode,optional"`
}

type hclDependency struct {
	Successor   string `hcl:"successor"`
	Predecessor string `hcl:"predecessor"`
}
