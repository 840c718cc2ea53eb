package dom

import "strings"

// FindElement returns the first element of the given kind under root in
// document order, or nil.
func FindElement(root *Node, kind ElementKind) *Node {
	if root == nil {
		return nil
	}
	if root.Is(kind) {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if found := FindElement(c, kind); found != nil {
			return found
		}
	}
	return nil
}

// StyleContent concatenates the text of every <style> element under root.
func StyleContent(root *Node) string {
	var sb strings.Builder
	collectStyle(root, &sb)
	return sb.String()
}

func collectStyle(n *Node, sb *strings.Builder) {
	if n == nil {
		return
	}
	if n.Is(Style) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.NodeType == TextNode {
				sb.WriteString(c.Data)
			}
		}
		sb.WriteString("\n")
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectStyle(c, sb)
	}
}
