package layout

import (
	"github.com/heathj/gobrowse/parser/css"
	"github.com/heathj/gobrowse/parser/dom"
)

// LayoutView is the box tree of one document, with geometry computed.
type LayoutView struct {
	root         *LayoutObject
	contentWidth int64
}

type Option func(*LayoutView)

// WithContentWidth overrides ContentAreaWidth as the width boxes are laid
// out against.
func WithContentWidth(width int64) Option {
	return func(v *LayoutView) {
		if width > 0 {
			v.contentWidth = width
		}
	}
}

// NewLayoutView lays out the <body> of document. The view has no root when
// there is no body or it is hidden.
func NewLayoutView(document *dom.Node, sheet *css.StyleSheet, opts ...Option) *LayoutView {
	v := &LayoutView{contentWidth: ContentAreaWidth}
	for _, opt := range opts {
		opt(v)
	}
	v.root = buildLayoutTree(dom.FindElement(document, dom.Body), nil, sheet)
	v.updateLayout()
	return v
}

// buildLayoutTree creates boxes for node and its following siblings,
// skipping hidden ones, and returns the first box of the chain.
func buildLayoutTree(node *dom.Node, parent *LayoutObject, sheet *css.StyleSheet) *LayoutObject {
	var first, prev *LayoutObject
	for n := node; n != nil; n = n.NextSibling {
		obj := createLayoutObject(n, parent, sheet)
		if obj == nil {
			continue
		}
		obj.firstChild = buildLayoutTree(n.FirstChild, obj, sheet)
		if prev == nil {
			first = obj
		} else {
			prev.nextSibling = obj
		}
		prev = obj
	}
	return first
}

func (v *LayoutView) Root() *LayoutObject {
	return v.root
}

func (v *LayoutView) ContentWidth() int64 {
	return v.contentWidth
}

func (v *LayoutView) updateLayout() {
	v.calculateNodeSize(v.root, LayoutSize{Width: v.contentWidth})
	calculateNodePosition(v.root, LayoutPoint{})
}

// calculateNodeSize sizes children before their parent. A block learns
// its width first so that its children can use it.
func (v *LayoutView) calculateNodeSize(node *LayoutObject, parentSize LayoutSize) {
	for n := node; n != nil; n = n.nextSibling {
		if n.kind == Block {
			n.computeSize(parentSize, v.contentWidth)
		}
		v.calculateNodeSize(n.firstChild, n.size)
		n.computeSize(parentSize, v.contentWidth)
	}
}

// calculateNodePosition places a box from its parent's origin and its
// previous sibling, then places its children.
func calculateNodePosition(node *LayoutObject, parentPoint LayoutPoint) {
	var prev *LayoutObject
	for n := node; n != nil; n = n.nextSibling {
		n.computePosition(parentPoint, prev)
		calculateNodePosition(n.firstChild, n.point)
		prev = n
	}
}
