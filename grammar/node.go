package grammar

import (
	"strconv"
	"strings"

	"github.com/dhamidi/pear/input"
)

// Span is the source range a node covers.
type Span struct {
	Start input.Position `json:"start"`
	End   input.Position `json:"end"`
}

// Node is a concrete syntax tree node for one matched production.
type Node struct {
	Name     string
	Text     string
	Span     Span
	Children []*Node
}

// Find returns the first descendant named name, searching depth first.
func (n *Node) Find(name string) *Node {
	for _, child := range n.Children {
		if child.Name == name {
			return child
		}
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}

func (n *Node) String() string {
	return n.stringIndent(0, false)
}

func (n *Node) StringWithPositions() string {
	return n.stringIndent(0, true)
}

func (n *Node) stringIndent(indent int, showPositions bool) string {
	var b strings.Builder
	n.writeIndent(&b, indent, showPositions)
	return b.String()
}

func (n *Node) writeIndent(b *strings.Builder, indent int, showPositions bool) {
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString(n.Name)
	if showPositions {
		b.WriteString(" [" + n.Span.Start.String() + "-" + n.Span.End.String() + "]")
	}
	if len(n.Children) == 0 {
		b.WriteString(" " + strconv.Quote(n.Text))
	}
	b.WriteString("\n")

	for _, child := range n.Children {
		child.writeIndent(b, indent+1, showPositions)
	}
}
