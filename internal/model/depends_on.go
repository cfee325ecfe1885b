// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file contains the specific parsing and validation logic for the
// `depends_on` attribute.
//
// Entries may be written as strings ("spam_and_foo.spam", ".", "*") or, for
// plain node and port names, as bare references (spam_and_foo.spam). Bare
// references rooted at `var` are evaluated like any other expression.
package model

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/schedgrid/internal/hclutil"
)

// parseDependsOn validates that the expression is a list literal and turns
// each entry into a Reference.
func parseDependsOn(expr hcl.Expression, ctx *hcl.EvalContext) ([]Reference, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	syntaxExpr, ok := expr.(hclsyntax.Expression)
	if !ok {
		// Non-native syntax (e.g. JSON): evaluate the whole list.
		list, listDiags := evalStringList(expr, ctx)
		refs := make([]Reference, 0, len(list))
		for _, r := range list {
			refs = append(refs, Reference{Ref: r, Range: expr.Range()})
		}
		return refs, listDiags
	}

	tuple, isTuple := syntaxExpr.(*hclsyntax.TupleConsExpr)
	if !isTuple {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid depends_on value",
			Detail:   "The 'depends_on' attribute must be a list of node references.",
			Subject:  expr.Range().Ptr(),
		})
		return nil, diags
	}

	refs := make([]Reference, 0, len(tuple.Exprs))
	for _, item := range tuple.Exprs {
		if traversal, travDiags := hcl.AbsTraversalForExpr(item); !travDiags.HasErrors() && traversal.RootName() != "var" {
			refs = append(refs, Reference{Ref: hclutil.TraversalKey(traversal), Range: item.Range()})
			continue
		}
		s, itemDiags := evalString(item, ctx)
		diags = append(diags, itemDiags...)
		if itemDiags.HasErrors() {
			continue
		}
		refs = append(refs, Reference{Ref: s, Range: item.Range()})
	}
	return refs, diags
}
