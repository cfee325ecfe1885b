package document

import (
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/schedgrid/internal/model"
	"github.com/specialistvlad/schedgrid/internal/portref"
	"github.com/specialistvlad/schedgrid/internal/schedule"
	"github.com/zclconf/go-cty/cty"
)

var blockTypes = map[schedule.Kind]model.NodeKind{
	schedule.KindSchedule:      model.KindSchedule,
	schedule.KindManualTrigger: model.KindTrigger,
	schedule.KindCommandJob:    model.KindJob,
	schedule.KindCompoundJob:   model.KindCompound,
	schedule.KindTerminator:    model.KindTerminator,
}

// WriteHCL writes the finalized schedule root as a definition file. The
// edges of the finalized graph are written as `dependency` blocks on the
// parent of the successor node, so loading the result and finalizing it again
// yields the same graph.
func WriteHCL(w io.Writer, root *schedule.Node) error {
	if err := checkFinalized(root); err != nil {
		return err
	}

	f := hclwrite.NewEmptyFile()
	if err := writeHCLNode(f.Body(), root); err != nil {
		return err
	}
	_, err := f.WriteTo(w)
	return err
}

func writeHCLNode(parent *hclwrite.Body, n *schedule.Node) error {
	blockType, ok := blockTypes[n.Kind()]
	if !ok {
		return fmt.Errorf("node '%s' has unsupported kind %s", n.Path(), n.Kind())
	}
	body := parent.AppendNewBlock(string(blockType), []string{n.Name()}).Body()

	if n.User != "" {
		body.SetAttributeValue("user", cty.StringVal(n.User))
	}
	if n.Kind() == schedule.KindCommandJob {
		body.SetAttributeValue("path", cty.StringVal(n.Executable))
		if len(n.Args) > 0 {
			body.SetAttributeValue("args", stringList(n.Args))
		}
	}
	if names := namedPorts(n.InputPorts()); len(names) > 0 {
		body.SetAttributeValue("input_ports", stringList(names))
	}
	if names := namedPorts(n.OutputPorts()); len(names) > 0 {
		body.SetAttributeValue("output_ports", stringList(names))
	}

	for _, r := range n.Resources() {
		rb := body.AppendNewBlock("resource", []string{r.Kind.String(), r.Name}).Body()
		if r.Kind == schedule.CountingResource {
			rb.SetAttributeValue("amount", cty.NumberIntVal(int64(r.Amount)))
		}
	}
	for _, c := range n.Consumptions() {
		cb := body.AppendNewBlock("consumption", []string{c.Kind.String(), c.Name}).Body()
		switch c.Kind {
		case schedule.CountingResource:
			cb.SetAttributeValue("amount", cty.NumberIntVal(int64(c.Amount)))
		case schedule.ReadWriteLockResource:
			cb.SetAttributeValue("mode", cty.StringVal(string(c.Mode)))
		}
	}

	children := n.Children()
	for _, c := range children {
		if err := writeHCLNode(body, c); err != nil {
			return err
		}
	}

	// Edges into the children, then edges into this node's own outputs.
	for _, c := range children {
		for _, p := range c.InputPorts() {
			succ := portref.Ref{Node: c.Name(), Port: p.Name()}
			for _, pred := range p.Predecessors() {
				appendDependency(body, succ, relativeRef(n, pred))
			}
		}
	}
	if n.Kind() == schedule.KindCompoundJob || n.Kind() == schedule.KindCommandJob {
		for _, p := range n.OutputPorts() {
			succ := portref.Ref{Node: schedule.SelfNodeName, Port: p.Name()}
			for _, pred := range p.Predecessors() {
				appendDependency(body, succ, relativeRef(n, pred))
			}
		}
	}
	return nil
}

// relativeRef names pred as seen from the node n declaring the dependency.
func relativeRef(n *schedule.Node, pred *schedule.Port) portref.Ref {
	if pred.Node() == n {
		return portref.Ref{Node: schedule.SelfNodeName, Port: pred.Name()}
	}
	return portref.Ref{Node: pred.Node().Name(), Port: pred.Name()}
}

func appendDependency(body *hclwrite.Body, succ, pred portref.Ref) {
	db := body.AppendNewBlock("dependency", nil).Body()
	db.SetAttributeValue("successor", cty.StringVal(succ.String()))
	db.SetAttributeValue("predecessor", cty.StringVal(pred.String()))
}

func namedPorts(ports []*schedule.Port) []string {
	var names []string
	for _, p := range ports {
		if p.Name() != schedule.AllPortName {
			names = append(names, p.Name())
		}
	}
	return names
}

func stringList(values []string) cty.Value {
	vals := make([]cty.Value, len(values))
	for i, v := range values {
		vals[i] = cty.StringVal(v)
	}
	return cty.ListVal(vals)
}
