// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file decodes node blocks recursively. Children keep the order in
// which they appear in the file, across all node kinds.
package model

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
)

// decodeNode parses the body of a node block of the given kind.
func decodeNode(kind NodeKind, name string, body hcl.Body, declRange hcl.Range, ctx *hcl.EvalContext) (*Node, hcl.Diagnostics) {
	n := &Node{Kind: kind, Name: name, DeclRange: declRange}

	content, diags := body.Content(bodySchemas[kind])
	if diags.HasErrors() {
		return nil, diags
	}

	for _, parser := range attributeParsers {
		if attr, exists := content.Attributes[parser.Name]; exists {
			diags = append(diags, parser.Parse(n, attr.Expr, ctx)...)
		}
	}

	for _, block := range content.Blocks {
		switch block.Type {
		case resourceBlock.Type:
			var r hclResource
			blockDiags := gohcl.DecodeBody(block.Body, ctx, &r)
			diags = append(diags, blockDiags...)
			res := Resource{Kind: block.Labels[0], Name: block.Labels[1], DeclRange: block.DefRange}
			if r.Amount != nil {
				res.Amount = *r.Amount
			}
			n.Resources = append(n.Resources, res)

		case consumptionBlock.Type:
			var c hclConsumption
			blockDiags := gohcl.DecodeBody(block.Body, ctx, &c)
			diags = append(diags, blockDiags...)
			cons := Consumption{Kind: block.Labels[0], Name: block.Labels[1], DeclRange: block.DefRange}
			if c.Amount != nil {
				cons.Amount = *c.Amount
			}
			if c.Mode != nil {
				cons.Mode = *c.Mode
			}
			n.Consumptions = append(n.Consumptions, cons)

		case dependencyBlock.Type:
			var d hclDependency
			blockDiags := gohcl.DecodeBody(block.Body, ctx, &d)
			diags = append(diags, blockDiags...)
			n.Dependencies = append(n.Dependencies, Dependency{
				Successor:   d.Successor,
				Predecessor: d.Predecessor,
				DeclRange:   block.DefRange,
			})

		default:
			child, childDiags := decodeNode(NodeKind(block.Type), block.Labels[0], block.Body, block.DefRange, ctx)
			diags = append(diags, childDiags...)
			if child != nil {
				n.Nodes = append(n.Nodes, child)
			}
		}
	}

	return n, diags
}
