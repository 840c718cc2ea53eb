package layout

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// Dump draws the box tree with each box's kind, node, position and size.
func (v *LayoutView) Dump() string {
	tree := treeprint.NewWithRoot("LayoutView")
	dumpBoxes(v.root, tree)
	return tree.String()
}

func dumpBoxes(node *LayoutObject, tree treeprint.Tree) {
	for n := node; n != nil; n = n.nextSibling {
		if n.firstChild != nil {
			dumpBoxes(n.firstChild, tree.AddBranch(n.label()))
		} else {
			tree.AddNode(n.label())
		}
	}
}

func (o *LayoutObject) label() string {
	var what string
	if kind, ok := o.node.ElementKind(); ok {
		what = "<" + kind.String() + ">"
	} else {
		what = fmt.Sprintf("%q", o.node.Data)
	}
	return fmt.Sprintf("%s %s (%d,%d) %dx%d", o.kind, what, o.point.X, o.point.Y, o.size.Width, o.size.Height)
}
