package grammar

import (
	"encoding/json"
	"io"
)

// MarshalJSON writes the node with its span. Only leaves carry their text;
// an inner node's text is the concatenation of its children's.
func (n *Node) MarshalJSON() ([]byte, error) {
	out := struct {
		Name     string  `json:"name"`
		Span     Span    `json:"span"`
		Text     string  `json:"text,omitempty"`
		Children []*Node `json:"children,omitempty"`
	}{
		Name:     n.Name,
		Span:     n.Span,
		Children: n.Children,
	}
	if len(n.Children) == 0 {
		out.Text = n.Text
	}
	return json.Marshal(out)
}

// WriteJSON writes node to w as indented JSON followed by a newline.
func WriteJSON(w io.Writer, node *Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(node)
}
