// Package hclutil holds small helpers shared by the HCL definition loader.
package hclutil

import (
	"github.com/hashicorp/hcl/v2"
)

// FindUniqueBlock searches a slice of blocks for all blocks of a given name.
// It returns a diagnostic error for every block after the first one. If no
// block is found, it returns nil.
func FindUniqueBlock(blocks hcl.Blocks, name string) (*hcl.Block, hcl.Diagnostics) {
	var found *hcl.Block
	var diags hcl.Diagnostics

	for _, block := range blocks {
		if block.Type != name {
			continue
		}
		if found != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate \"" + name + "\" block",
				Detail:   "Only one \"" + name + "\" block is allowed per file; the first one is at " + found.DefRange.String() + ".",
				Subject:  &block.DefRange,
			})
			continue
		}
		found = block
	}

	return found, diags
}

// RequireBlock is FindUniqueBlock for a block that must be present.
func RequireBlock(body hcl.Body, blocks hcl.Blocks, name string) (*hcl.Block, hcl.Diagnostics) {
	found, diags := FindUniqueBlock(blocks, name)
	if found == nil {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Missing \"" + name + "\" block",
			Detail:   "Exactly one \"" + name + "\" block is required.",
			Subject:  body.MissingItemRange().Ptr(),
		})
	}
	return found, diags
}
