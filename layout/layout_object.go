package layout

import (
	"strings"

	"github.com/heathj/gobrowse/parser/css"
	"github.com/heathj/gobrowse/parser/dom"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "layout")

type LayoutObjectKind uint8

const (
	Block LayoutObjectKind = iota
	Inline
	Text
	Unknown
)

func (k LayoutObjectKind) String() string {
	switch k {
	case Block:
		return "Block"
	case Inline:
		return "Inline"
	case Text:
		return "Text"
	}
	return "Unknown"
}

func (k LayoutObjectKind) isInlineLevel() bool {
	return k == Inline || k == Text
}

type LayoutPoint struct {
	X, Y int64
}

type LayoutSize struct {
	Width, Height int64
}

// LayoutObject is a box for one visible DOM node. firstChild and
// nextSibling own the box tree, parent points back into it.
type LayoutObject struct {
	kind        LayoutObjectKind
	node        *dom.Node
	firstChild  *LayoutObject
	nextSibling *LayoutObject
	parent      *LayoutObject
	style       ComputedStyle
	point       LayoutPoint
	size        LayoutSize
}

func newLayoutObject(node *dom.Node, parent *LayoutObject) *LayoutObject {
	return &LayoutObject{
		kind:   Block,
		node:   node,
		parent: parent,
		style:  NewComputedStyle(),
	}
}

// createLayoutObject builds the box for node with its style resolved
// against sheet. Nodes that resolve to display none get no box.
func createLayoutObject(node *dom.Node, parent *LayoutObject, sheet *css.StyleSheet) *LayoutObject {
	if node == nil {
		return nil
	}
	// Whitespace-only text has nothing to draw and takes no space.
	if node.NodeType == dom.TextNode && collapseWhitespace(node.Data) == "" {
		return nil
	}
	obj := newLayoutObject(node, parent)
	if sheet != nil {
		for _, rule := range sheet.Rules {
			if obj.isNodeSelected(rule.Selector) {
				obj.cascadingStyle(rule.Declarations)
			}
		}
	}

	var parentStyle *ComputedStyle
	if parent != nil {
		parentStyle = &parent.style
	}
	obj.style.Defaulting(node, parentStyle)

	if obj.style.Display() == DisplayNone {
		if kind, ok := node.ElementKind(); ok {
			log.WithField("element", kind).Debug("display none, skipping subtree")
		}
		return nil
	}
	obj.updateKind()
	return obj
}

func hasClass(classAttr, name string) bool {
	for _, c := range strings.Fields(classAttr) {
		if c == name {
			return true
		}
	}
	return false
}

// isNodeSelected matches a type selector against the element kind and an
// id selector against the whole id attribute. A class selector matches any
// one of the space-separated names in the class attribute, so "a b" is
// selected by both .a and .b.
func (o *LayoutObject) isNodeSelected(sel css.Selector) bool {
	kind, ok := o.node.ElementKind()
	if !ok {
		return false
	}
	switch sel.Kind {
	case css.TypeSelector:
		return kind.String() == sel.Name
	case css.ClassSelector:
		class, ok := o.node.GetAttribute("class")
		return ok && hasClass(class, sel.Name)
	case css.IDSelector:
		id, ok := o.node.GetAttribute("id")
		return ok && id == sel.Name
	}
	return false
}

func colorValue(v css.Token, fallback Color) (Color, bool) {
	switch v.Type {
	case css.IdentToken:
		if c, ok := ColorFromName(v.Value); ok {
			return c, true
		}
		return fallback, true
	case css.HashToken:
		if c, ok := ColorFromCode(v.Value); ok {
			return c, true
		}
		return fallback, true
	}
	return Color{}, false
}

// cascadingStyle applies declarations in order, so later ones win.
func (o *LayoutObject) cascadingStyle(decls []css.Declaration) {
	for _, decl := range decls {
		switch decl.Property {
		case "background-color":
			if c, ok := colorValue(decl.Value, White()); ok {
				o.style.SetBackgroundColor(c)
			}
		case "color":
			if c, ok := colorValue(decl.Value, Black()); ok {
				o.style.SetColor(c)
			}
		case "display":
			if decl.Value.Type == css.IdentToken {
				// An unknown keyword hides the node.
				d, _ := ParseDisplayType(decl.Value.Value)
				o.style.SetDisplay(d)
			}
		default:
			log.WithField("property", decl.Property).Debug("ignoring property")
		}
	}
}

func (o *LayoutObject) updateKind() {
	switch o.node.NodeType {
	case dom.DocumentNode:
		panic(errors.New("should not create a layout object for a Document node"))
	case dom.ElementNode:
		switch o.style.Display() {
		case DisplayBlock:
			o.kind = Block
		case DisplayInline:
			o.kind = Inline
		default:
			panic(errors.New("should not create a layout object for display:none"))
		}
	case dom.TextNode:
		o.kind = Text
	default:
		o.kind = Unknown
	}
}

// textLines breaks the collapsed text of a text box into lines fitting
// contentWidth.
func (o *LayoutObject) textLines(contentWidth int64) []string {
	ratio := o.style.FontSize().Ratio()
	return splitText(collapseWhitespace(o.node.Data), maxCharsPerLine(contentWidth, CharWidth*ratio))
}

func (o *LayoutObject) computeSize(parentSize LayoutSize, contentWidth int64) {
	var size LayoutSize
	switch o.kind {
	case Block:
		size.Width = parentSize.Width
		prevKind := Block
		for c := o.firstChild; c != nil; c = c.nextSibling {
			// Runs of inline boxes share a line.
			if prevKind == Block || c.kind == Block {
				size.Height += c.size.Height
			}
			prevKind = c.kind
		}
	case Inline:
		for c := o.firstChild; c != nil; c = c.nextSibling {
			size.Width += c.size.Width
			size.Height += c.size.Height
		}
	case Text:
		ratio := o.style.FontSize().Ratio()
		text := collapseWhitespace(o.node.Data)
		width := CharWidth * ratio * int64(len([]rune(text)))
		if width > contentWidth {
			size.Width = contentWidth
			size.Height = CharHeightWithPadding * ratio * int64(len(o.textLines(contentWidth)))
		} else {
			size.Width = width
			size.Height = CharHeightWithPadding * ratio
		}
	}
	o.size = size
}

func (o *LayoutObject) computePosition(parentPoint LayoutPoint, prev *LayoutObject) {
	switch {
	case prev == nil:
		o.point = parentPoint
	case o.kind == Block || prev.kind == Block:
		o.point = LayoutPoint{X: parentPoint.X, Y: prev.point.Y + prev.size.Height}
	case o.kind.isInlineLevel() && prev.kind.isInlineLevel():
		o.point = LayoutPoint{X: prev.point.X + prev.size.Width, Y: prev.point.Y}
	default:
		o.point = parentPoint
	}
}

func (o *LayoutObject) Kind() LayoutObjectKind     { return o.kind }
func (o *LayoutObject) Node() *dom.Node            { return o.node }
func (o *LayoutObject) FirstChild() *LayoutObject  { return o.firstChild }
func (o *LayoutObject) NextSibling() *LayoutObject { return o.nextSibling }
func (o *LayoutObject) Parent() *LayoutObject      { return o.parent }
func (o *LayoutObject) Style() ComputedStyle       { return o.style }
func (o *LayoutObject) Point() LayoutPoint         { return o.point }
func (o *LayoutObject) Size() LayoutSize           { return o.size }

// contains reports whether (x, y) lies inside the box, edges included.
func (o *LayoutObject) contains(x, y int64) bool {
	return o.point.X <= x && x <= o.point.X+o.size.Width &&
		o.point.Y <= y && y <= o.point.Y+o.size.Height
}
