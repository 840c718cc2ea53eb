package layout

import "fmt"

// DisplayItem is one drawing operation. It is either a RectItem or a
// TextItem.
type DisplayItem interface {
	displayItem()
}

type RectItem struct {
	Style ComputedStyle
	Point LayoutPoint
	Size  LayoutSize
}

type TextItem struct {
	Text  string
	Style ComputedStyle
	Point LayoutPoint
}

func (RectItem) displayItem() {}
func (TextItem) displayItem() {}

// Paint returns the display items of the box alone: a rectangle for a block
// element and one text item per line for text.
func (o *LayoutObject) Paint(contentWidth int64) []DisplayItem {
	if o.style.Display() == DisplayNone {
		return nil
	}
	switch o.kind {
	case Block:
		if _, ok := o.node.ElementKind(); ok {
			return []DisplayItem{RectItem{Style: o.style, Point: o.point, Size: o.size}}
		}
	case Text:
		lineHeight := CharHeightWithPadding * o.style.FontSize().Ratio()
		var items []DisplayItem
		for i, line := range o.textLines(contentWidth) {
			items = append(items, TextItem{
				Text:  line,
				Style: o.style,
				Point: LayoutPoint{X: o.point.X, Y: o.point.Y + lineHeight*int64(i)},
			})
		}
		return items
	}
	return nil
}

// Paint walks the box tree in pre-order. Later items may paint over
// earlier ones.
func (v *LayoutView) Paint() []DisplayItem {
	var items []DisplayItem
	v.paintNode(v.root, &items)
	return items
}

func (v *LayoutView) paintNode(node *LayoutObject, items *[]DisplayItem) {
	for n := node; n != nil; n = n.nextSibling {
		*items = append(*items, n.Paint(v.contentWidth)...)
		v.paintNode(n.firstChild, items)
	}
}

func (r RectItem) String() string {
	return fmt.Sprintf("rect (%d,%d) %dx%d background=%s",
		r.Point.X, r.Point.Y, r.Size.Width, r.Size.Height, r.Style.BackgroundColor())
}

func (t TextItem) String() string {
	return fmt.Sprintf("text (%d,%d) %q color=%s font-size=%s text-decoration=%s",
		t.Point.X, t.Point.Y, t.Text, t.Style.Color(), t.Style.FontSize(), t.Style.TextDecoration())
}
