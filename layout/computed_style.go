package layout

import (
	"fmt"

	"github.com/heathj/gobrowse/parser/dom"
	"github.com/pkg/errors"
)

type DisplayType uint8

const (
	DisplayBlock DisplayType = iota
	DisplayInline
	DisplayNone
)

// ParseDisplayType maps a display keyword. Unknown keywords are reported
// as not ok.
func ParseDisplayType(s string) (DisplayType, bool) {
	switch s {
	case "block":
		return DisplayBlock, true
	case "inline":
		return DisplayInline, true
	case "none":
		return DisplayNone, true
	}
	return DisplayNone, false
}

func (d DisplayType) String() string {
	switch d {
	case DisplayBlock:
		return "block"
	case DisplayInline:
		return "inline"
	}
	return "none"
}

func defaultDisplay(node *dom.Node) DisplayType {
	switch node.NodeType {
	case dom.DocumentNode:
		return DisplayBlock
	case dom.ElementNode:
		switch node.Element.Kind {
		case dom.HTML, dom.Head, dom.Style, dom.Script, dom.Body, dom.P, dom.H1, dom.H2:
			return DisplayBlock
		}
	}
	return DisplayInline
}

type FontSize uint8

const (
	FontMedium FontSize = iota
	FontXLarge
	FontXXLarge
)

// Ratio scales the character metrics for the font size.
func (f FontSize) Ratio() int64 {
	switch f {
	case FontXLarge:
		return 2
	case FontXXLarge:
		return 3
	}
	return 1
}

func (f FontSize) String() string {
	switch f {
	case FontXLarge:
		return "x-large"
	case FontXXLarge:
		return "xx-large"
	}
	return "medium"
}

func defaultFontSize(node *dom.Node) FontSize {
	switch {
	case node.Is(dom.H1):
		return FontXXLarge
	case node.Is(dom.H2):
		return FontXLarge
	}
	return FontMedium
}

type TextDecoration uint8

const (
	DecorationNone TextDecoration = iota
	DecorationUnderline
)

func (t TextDecoration) String() string {
	if t == DecorationUnderline {
		return "underline"
	}
	return "none"
}

func defaultTextDecoration(node *dom.Node) TextDecoration {
	if node.Is(dom.A) {
		return DecorationUnderline
	}
	return DecorationNone
}

func defaultColor(node *dom.Node) Color {
	if node.Is(dom.A) {
		return Blue()
	}
	return Black()
}

// ComputedStyle holds the resolved properties of one box. Properties start
// out unset; Defaulting resolves every one of them, and reading one that is
// still unset is a bug in the caller.
type ComputedStyle struct {
	backgroundColor *Color
	color           *Color
	display         *DisplayType
	fontSize        *FontSize
	textDecoration  *TextDecoration
}

func NewComputedStyle() ComputedStyle {
	return ComputedStyle{}
}

func (s *ComputedStyle) SetBackgroundColor(c Color)         { s.backgroundColor = &c }
func (s *ComputedStyle) SetColor(c Color)                   { s.color = &c }
func (s *ComputedStyle) SetDisplay(d DisplayType)           { s.display = &d }
func (s *ComputedStyle) SetFontSize(f FontSize)             { s.fontSize = &f }
func (s *ComputedStyle) SetTextDecoration(t TextDecoration) { s.textDecoration = &t }

func unset(property string) error {
	return errors.Errorf("failed to access CSS property: %s", property)
}

func (s ComputedStyle) BackgroundColor() Color {
	if s.backgroundColor == nil {
		panic(unset("background-color"))
	}
	return *s.backgroundColor
}

func (s ComputedStyle) Color() Color {
	if s.color == nil {
		panic(unset("color"))
	}
	return *s.color
}

func (s ComputedStyle) Display() DisplayType {
	if s.display == nil {
		panic(unset("display"))
	}
	return *s.display
}

func (s ComputedStyle) FontSize() FontSize {
	if s.fontSize == nil {
		panic(unset("font-size"))
	}
	return *s.fontSize
}

func (s ComputedStyle) TextDecoration() TextDecoration {
	if s.textDecoration == nil {
		panic(unset("text-decoration"))
	}
	return *s.textDecoration
}

// Defaulting fills every property a rule did not set. Colors, font size
// and text decoration are inherited from parent when the parent's value
// differs from the initial one; display is never inherited.
func (s *ComputedStyle) Defaulting(node *dom.Node, parent *ComputedStyle) {
	if parent != nil {
		if s.backgroundColor == nil && parent.BackgroundColor() != White() {
			s.SetBackgroundColor(parent.BackgroundColor())
		}
		if s.color == nil && parent.Color() != Black() {
			s.SetColor(parent.Color())
		}
		if s.fontSize == nil && parent.FontSize() != FontMedium {
			s.SetFontSize(parent.FontSize())
		}
		if s.textDecoration == nil && parent.TextDecoration() != DecorationNone {
			s.SetTextDecoration(parent.TextDecoration())
		}
	}

	if s.backgroundColor == nil {
		s.SetBackgroundColor(White())
	}
	if s.color == nil {
		s.SetColor(defaultColor(node))
	}
	if s.display == nil {
		s.SetDisplay(defaultDisplay(node))
	}
	if s.fontSize == nil {
		s.SetFontSize(defaultFontSize(node))
	}
	if s.textDecoration == nil {
		s.SetTextDecoration(defaultTextDecoration(node))
	}
}

func (s ComputedStyle) String() string {
	return fmt.Sprintf("display=%s color=%s background-color=%s font-size=%s text-decoration=%s",
		s.Display(), s.Color(), s.BackgroundColor(), s.FontSize(), s.TextDecoration())
}
