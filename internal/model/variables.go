// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file evaluates `variable` blocks into the `var` object of the
// evaluation context every other expression in the file is evaluated in.
package model

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/schedgrid/internal/hclutil"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// hclVariable is a single `variable "<name>"` block.
type hclVariable struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type,optional"`
	Default     hcl.Expression `hcl:"default,optional"`
	Description string         `hcl:"description,optional"`
	DeclRange   hcl.Range      `hcl:",def_range"`
}

// evalVariables resolves every variable to its override or its default,
// converted to the declared type.
func evalVariables(blocks []*hclVariable, overrides map[string]string) (map[string]cty.Value, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	vars := make(map[string]cty.Value, len(blocks))

	for _, v := range blocks {
		if _, dup := vars[v.Name]; dup {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate variable",
				Detail:   fmt.Sprintf("Variable %q is declared more than once.", v.Name),
				Subject:  v.DeclRange.Ptr(),
			})
			continue
		}

		ty, typeDiags := hclutil.TypeFromExpr(v.Type)
		diags = append(diags, typeDiags...)
		if typeDiags.HasErrors() {
			continue
		}

		var val cty.Value
		if raw, ok := overrides[v.Name]; ok {
			val = cty.StringVal(raw)
		} else {
			def, defDiags := v.Default.Value(nil)
			diags = append(diags, defDiags...)
			if defDiags.HasErrors() {
				continue
			}
			if def.IsNull() {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "No value for required variable",
					Detail:   fmt.Sprintf("Variable %q has no default and was not set.", v.Name),
					Subject:  v.DeclRange.Ptr(),
				})
				continue
			}
			val = def
		}

		converted, err := convert.Convert(val, ty)
		if err != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid value for variable",
				Detail:   fmt.Sprintf("Variable %q: %s.", v.Name, err),
				Subject:  v.DeclRange.Ptr(),
			})
			continue
		}
		vars[v.Name] = converted
	}

	return vars, diags
}

// newEvalContext builds the context attribute expressions are evaluated in.
func newEvalContext(vars map[string]cty.Value) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"var": cty.ObjectVal(vars),
		},
		Functions: functions(),
	}
}
