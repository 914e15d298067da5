package podcast

func el(name, text string, children ...*Node) *Node {
	return &Node{Name: name, Text: text, Children: children}
}

func elAttrs(name string, attrs map[string]string, children ...*Node) *Node {
	return &Node{Name: name, Attrs: attrs, Children: children}
}
