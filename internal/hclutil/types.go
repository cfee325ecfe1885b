package hclutil

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// TypeFromExpr converts an HCL expression naming a type (e.g. the `string`
// keyword in a variable block) into its cty.Type. A nil or null expression
// yields cty.DynamicPseudoType, which accepts any value.
func TypeFromExpr(expr hcl.Expression) (cty.Type, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	if expr == nil {
		return cty.DynamicPseudoType, diags
	}
	if val, valDiags := expr.Value(nil); !valDiags.HasErrors() && val.IsNull() {
		return cty.DynamicPseudoType, diags
	}

	traversal, travDiags := hcl.AbsTraversalForExpr(expr)
	if travDiags.HasErrors() || len(traversal) != 1 {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid type specification",
			Detail:   "The 'type' attribute must be a simple type keyword like 'string', 'number', 'bool' or 'list'.",
			Subject:  expr.Range().Ptr(),
		})
		return cty.NilType, diags
	}

	switch name := traversal.RootName(); name {
	case "string":
		return cty.String, diags
	case "number":
		return cty.Number, diags
	case "bool":
		return cty.Bool, diags
	case "list":
		return cty.List(cty.String), diags
	case "any":
		return cty.DynamicPseudoType, diags
	default:
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported type",
			Detail:   fmt.Sprintf("The keyword '%s' is not a valid type. Supported types are: string, number, bool, list, any.", name),
			Subject:  expr.Range().Ptr(),
		})
		return cty.NilType, diags
	}
}
