package dom

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// Dump draws the subtree rooted at n as an indented tree, one node per line.
func Dump(n *Node) string {
	tree := treeprint.NewWithRoot(label(n))
	dumpChildren(n, tree)
	return tree.String()
}

func dumpChildren(n *Node, tree treeprint.Tree) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.HasChildNodes() {
			dumpChildren(c, tree.AddBranch(label(c)))
		} else {
			tree.AddNode(label(c))
		}
	}
}

func label(n *Node) string {
	switch n.NodeType {
	case ElementNode:
		s := "<" + n.Element.Kind.String()
		for _, attr := range n.Element.Attributes {
			s += fmt.Sprintf(" %s=%q", attr.Name, attr.Value)
		}
		return s + ">"
	case TextNode:
		return fmt.Sprintf("%q", n.Data)
	}
	return "#document"
}
