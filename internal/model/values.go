package model

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"
)

// evalString evaluates expr and converts the result to a Go string. A null
// value yields the empty string.
func evalString(expr hcl.Expression, ctx *hcl.EvalContext) (string, hcl.Diagnostics) {
	var s string
	diags := evalInto(expr, ctx, cty.String, &s)
	return s, diags
}

// evalStringList evaluates expr as a list of strings. A null value yields nil.
func evalStringList(expr hcl.Expression, ctx *hcl.EvalContext) ([]string, hcl.Diagnostics) {
	var list []string
	diags := evalInto(expr, ctx, cty.List(cty.String), &list)
	return list, diags
}

func evalInto(expr hcl.Expression, ctx *hcl.EvalContext, ty cty.Type, target any) hcl.Diagnostics {
	val, diags := expr.Value(ctx)
	if diags.HasErrors() || val.IsNull() {
		return diags
	}

	val, err := convert.Convert(val, ty)
	if err == nil {
		err = gocty.FromCtyValue(val, target)
	}
	if err != nil {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Incorrect attribute value type",
			Detail:   fmt.Sprintf("A value of type %s is required: %s.", ty.FriendlyName(), err),
			Subject:  expr.Range().Ptr(),
		})
	}
	return diags
}

// envFunc reads an environment variable, returning "" when it is unset.
var envFunc = function.New(&function.Spec{
	Params: []function.Parameter{{Name: "name", Type: cty.String}},
	Type:   function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		return cty.StringVal(os.Getenv(args[0].AsString())), nil
	},
})

// functions are available to every expression in a definition file.
func functions() map[string]function.Function {
	return map[string]function.Function{
		"concat":    stdlib.ConcatFunc,
		"env":       envFunc,
		"format":    stdlib.FormatFunc,
		"join":      stdlib.JoinFunc,
		"length":    stdlib.LengthFunc,
		"lower":     stdlib.LowerFunc,
		"split":     stdlib.SplitFunc,
		"trimspace": stdlib.TrimSpaceFunc,
		"upper":     stdlib.UpperFunc,
	}
}
