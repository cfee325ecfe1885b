package document

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/specialistvlad/schedgrid/internal/schedule"
)

// xmlNode is a node element. Its element name comes from XMLName, so mixed
// kinds can share the Nodes list. Container elements are pointers so that
// empty lists leave no element behind.
type xmlNode struct {
	XMLName      xml.Name
	NodeName     string           `xml:"NodeName"`
	UserName     string           `xml:"UserName,omitempty"`
	InputPorts   *xmlPorts        `xml:"InputPorts,omitempty"`
	Resources    *xmlResources    `xml:"Resources,omitempty"`
	Consumptions *xmlConsumptions `xml:"Consumptions,omitempty"`
	Nodes        *xmlNodes        `xml:"Nodes,omitempty"`
	OutputPorts  *xmlPorts        `xml:"OutputPorts,omitempty"`

	// Command jobs only.
	Path *string  `xml:"Path,omitempty"`
	Args *xmlArgs `xml:"Args,omitempty"`
}

type xmlNodes struct {
	Node []xmlNode
}

type xmlArgs struct {
	Arg []string `xml:"Arg"`
}

type xmlPorts struct {
	Port []xmlPort `xml:"Port"`
}

type xmlPort struct {
	PortName     string           `xml:"PortName"`
	Dependencies *xmlDependencies `xml:"Dependencies,omitempty"`
}

type xmlDependencies struct {
	Dependency []xmlDependency `xml:"Dependency"`
}

type xmlDependency struct {
	NodeName string `xml:"NodeName"`
	PortName string `xml:"PortName"`
}

type xmlResources struct {
	Resource []xmlResource
}

type xmlResource struct {
	XMLName      xml.Name
	ResourceName string `xml:"ResourceName"`
	Amount       *int   `xml:"Amount,omitempty"`
}

type xmlConsumptions struct {
	Consumption []xmlConsumption
}

type xmlConsumption struct {
	XMLName      xml.Name
	ResourceName string `xml:"ResourceName"`
	Amount       *int   `xml:"Amount,omitempty"`
	Mode         string `xml:"Mode,omitempty"`
}

// WriteXML writes the engine document for the finalized schedule root.
func WriteXML(w io.Writer, root *schedule.Node) error {
	if err := checkFinalized(root); err != nil {
		return err
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(newXMLNode(root)); err != nil {
		return fmt.Errorf("failed to encode schedule %s: %w", root.Name(), err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func newXMLNode(n *schedule.Node) xmlNode {
	x := xmlNode{
		XMLName:     xml.Name{Local: n.Kind().String()},
		NodeName:    n.Name(),
		UserName:    n.User,
		InputPorts:  newXMLPorts(n.InputPorts()),
		OutputPorts: newXMLPorts(n.OutputPorts()),
	}

	if resources := n.Resources(); len(resources) > 0 {
		x.Resources = &xmlResources{}
		for _, r := range resources {
			res := xmlResource{ResourceName: r.Name}
			switch r.Kind {
			case schedule.CountingResource:
				res.XMLName.Local = "CountingResource"
				res.Amount = &r.Amount
			case schedule.ReadWriteLockResource:
				res.XMLName.Local = "ReadWriteLockResource"
			}
			x.Resources.Resource = append(x.Resources.Resource, res)
		}
	}

	if consumptions := n.Consumptions(); len(consumptions) > 0 {
		x.Consumptions = &xmlConsumptions{}
		for _, c := range consumptions {
			cons := xmlConsumption{ResourceName: c.Name}
			switch c.Kind {
			case schedule.CountingResource:
				cons.XMLName.Local = "CountingConsumption"
				cons.Amount = &c.Amount
			case schedule.ReadWriteLockResource:
				cons.XMLName.Local = "ReadWriteLockConsumption"
				cons.Mode = string(c.Mode)
			}
			x.Consumptions.Consumption = append(x.Consumptions.Consumption, cons)
		}
	}

	if children := n.Children(); len(children) > 0 {
		x.Nodes = &xmlNodes{}
		for _, c := range children {
			x.Nodes.Node = append(x.Nodes.Node, newXMLNode(c))
		}
	}

	if n.Kind() == schedule.KindCommandJob {
		path := n.Executable
		x.Path = &path
		if len(n.Args) > 0 {
			x.Args = &xmlArgs{Arg: n.Args}
		}
	}
	return x
}

func newXMLPorts(ports []*schedule.Port) *xmlPorts {
	if len(ports) == 0 {
		return nil
	}
	out := &xmlPorts{}
	for _, p := range ports {
		xp := xmlPort{PortName: p.Name()}
		parent := p.Node().Parent()
		if preds := p.Predecessors(); len(preds) > 0 {
			xp.Dependencies = &xmlDependencies{}
			for _, pred := range preds {
				name := pred.Node().Name()
				if pred.Node() == parent {
					name = schedule.SelfNodeName
				}
				xp.Dependencies.Dependency = append(xp.Dependencies.Dependency, xmlDependency{NodeName: name, PortName: pred.Name()})
			}
		}
		out.Port = append(out.Port, xp)
	}
	return out
}
