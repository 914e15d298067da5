package podcast

import "encoding/json"

// Node is one element of a parsed feed document. Name is the literal tag name
// including any namespace prefix ("itunes:category", "podcast:transcript").
// Nodes are built by the feed adapter and only read by this package.
type Node struct {
	Name     string
	Text     string
	Attrs    map[string]string
	Children []*Node
}

// Nodes is an ordered run of sibling elements sharing a tag name.
type Nodes []*Node

// Child returns every direct child named name, in document order.
func (n *Node) Child(name string) Nodes {
	if n == nil {
		return nil
	}
	var out Nodes
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Attr returns the attribute value for name.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil || n.Attrs == nil {
		return "", false
	}
	v, ok := n.Attrs[name]
	return v, ok
}

// IsPlain reports whether the element carries only text: no attributes and no children.
func (n *Node) IsPlain() bool {
	return n != nil && len(n.Attrs) == 0 && len(n.Children) == 0
}

// Value returns the element's text for plain elements and the element itself otherwise.
func (n *Node) Value() any {
	if n == nil {
		return nil
	}
	if n.IsPlain() {
		return n.Text
	}
	return n
}

// MarshalJSON renders plain elements as strings and structured elements as
// objects with "$" for attributes, "_" for text and one array per child tag.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n.IsPlain() {
		return json.Marshal(n.Text)
	}
	obj := make(map[string]any, len(n.Children)+2)
	if len(n.Attrs) > 0 {
		obj["$"] = n.Attrs
	}
	if n.Text != "" {
		obj["_"] = n.Text
	}
	for _, c := range n.Children {
		list, _ := obj[c.Name].(Nodes)
		obj[c.Name] = append(list, c)
	}
	return json.Marshal(obj)
}

// First returns the first node or nil.
func (ns Nodes) First() *Node {
	if len(ns) == 0 {
		return nil
	}
	return ns[0]
}
