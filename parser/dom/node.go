package dom

import (
	"sort"
	"strings"
)

type NodeType uint16

// Values follow the numbering the DOM standard gives nodeType.
const (
	ElementNode  NodeType = 1
	TextNode     NodeType = 3
	DocumentNode NodeType = 9
)

func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case DocumentNode:
		return "document"
	}
	return "unknown"
}

// Node is an entry in the document tree. FirstChild and NextSibling own the
// rest of the tree, the other links only point back into it.
// https://dom.spec.whatwg.org/#interface-node
type Node struct {
	NodeType NodeType
	Element  *Element
	// Data holds the contents of a text node.
	Data string

	ParentNode      *Node
	FirstChild      *Node
	LastChild       *Node
	PreviousSibling *Node
	NextSibling     *Node

	window *Window
}

// NewElementNode creates an element node that is not yet attached to a tree.
func NewElementNode(kind ElementKind, attrs []Attribute) *Node {
	return &Node{
		NodeType: ElementNode,
		Element:  NewElement(kind, attrs),
	}
}

// NewTextNode creates a detached text node.
func NewTextNode(data string) *Node {
	return &Node{
		NodeType: TextNode,
		Data:     data,
	}
}

// Window returns the window that owns the document this node belongs to.
func (n *Node) Window() *Window {
	for i := n; i != nil; i = i.ParentNode {
		if i.window != nil {
			return i.window
		}
	}
	return nil
}

// https://dom.spec.whatwg.org/#concept-node-append
func (n *Node) AppendChild(on *Node) *Node {
	on.ParentNode = n
	on.PreviousSibling = n.LastChild
	on.NextSibling = nil
	if n.LastChild != nil {
		n.LastChild.NextSibling = on
	} else {
		n.FirstChild = on
	}
	n.LastChild = on
	return on
}

// ChildNodes collects the children of n in document order.
func (n *Node) ChildNodes() []*Node {
	var children []*Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
	}
	return children
}

func (n *Node) HasChildNodes() bool {
	return n.FirstChild != nil
}

// ElementKind reports the kind of an element node. The second result is
// false for text and document nodes.
func (n *Node) ElementKind() (ElementKind, bool) {
	if n.NodeType != ElementNode || n.Element == nil {
		return UnknownElement, false
	}
	return n.Element.Kind, true
}

// Is reports whether n is an element of the given kind.
func (n *Node) Is(kind ElementKind) bool {
	k, ok := n.ElementKind()
	return ok && k == kind
}

// GetAttribute returns the value of the named attribute on an element node.
func (n *Node) GetAttribute(name string) (string, bool) {
	if n.Element == nil {
		return "", false
	}
	return n.Element.GetAttribute(name)
}

func spacesFor(ident int) string {
	spaces := "| "
	for i := 1; i < ident; i++ {
		spaces += "  "
	}
	return spaces
}

func serializeNodeType(node *Node, ident int) string {
	switch node.NodeType {
	case ElementNode:
		e := "<" + node.Element.Kind.String() + ">"
		attrs := append([]Attribute(nil), node.Element.Attributes...)
		sort.SliceStable(attrs, func(i, j int) bool { return attrs[i].Name < attrs[j].Name })
		spaces := spacesFor(ident)
		for _, attr := range attrs {
			e += "\n" + spaces + attr.Name + "=\"" + attr.Value + "\""
		}
		return e
	case TextNode:
		return "\"" + node.Data + "\""
	case DocumentNode:
		return "#document"
	}
	return ""
}

func (n *Node) serialize(ident int) string {
	ser := serializeNodeType(n, ident+1) + "\n"
	if n.NodeType != DocumentNode {
		ser = spacesFor(ident) + ser
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		ser += c.serialize(ident + 1)
	}
	return ser
}

// String renders the subtree rooted at n in the html5lib tree test format:
//
//	#document
//	| <html>
//	|   <head>
//	|   <body>
//	|     "text"
func (n *Node) String() string {
	return strings.TrimRight(n.serialize(0), "\n")
}
