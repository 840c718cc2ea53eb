package layout

import "github.com/heathj/gobrowse/parser/dom"

// FindNodeByPosition returns the deepest box containing (x, y) in
// document coordinates. Children are tried before following siblings and
// siblings before the box itself.
func (v *LayoutView) FindNodeByPosition(x, y int64) *LayoutObject {
	return findNodeByPosition(v.root, x, y)
}

func findNodeByPosition(node *LayoutObject, x, y int64) *LayoutObject {
	if node == nil {
		return nil
	}
	if found := findNodeByPosition(node.firstChild, x, y); found != nil {
		return found
	}
	if found := findNodeByPosition(node.nextSibling, x, y); found != nil {
		return found
	}
	if node.contains(x, y) {
		return node
	}
	return nil
}

// LinkAt returns the href of the nearest <a> at or above the box under
// (x, y).
func (v *LayoutView) LinkAt(x, y int64) (string, bool) {
	for o := v.FindNodeByPosition(x, y); o != nil; o = o.parent {
		if o.node.Is(dom.A) {
			return o.node.GetAttribute("href")
		}
	}
	return "", false
}
