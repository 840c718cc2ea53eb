package dom

import "golang.org/x/net/html/atom"

// ElementKind is the closed set of elements the parser knows how to build.
type ElementKind uint8

const (
	UnknownElement ElementKind = iota
	HTML
	Head
	Style
	Script
	Body
	P
	H1
	H2
	A
)

var kindAtoms = [...]atom.Atom{
	UnknownElement: 0,
	HTML:           atom.Html,
	Head:           atom.Head,
	Style:          atom.Style,
	Script:         atom.Script,
	Body:           atom.Body,
	P:              atom.P,
	H1:             atom.H1,
	H2:             atom.H2,
	A:              atom.A,
}

var kindsByAtom = func() map[atom.Atom]ElementKind {
	m := make(map[atom.Atom]ElementKind, len(kindAtoms))
	for k, a := range kindAtoms {
		if a != 0 {
			m[a] = ElementKind(k)
		}
	}
	return m
}()

// ParseElementKind maps a lower case tag name to its element kind.
func ParseElementKind(name string) (ElementKind, bool) {
	k, ok := kindsByAtom[atom.Lookup([]byte(name))]
	return k, ok
}

func (k ElementKind) String() string {
	if int(k) < len(kindAtoms) && kindAtoms[k] != 0 {
		return kindAtoms[k].String()
	}
	return "unknown"
}

// Element is the element specific part of a node.
// https://dom.spec.whatwg.org/#interface-element
type Element struct {
	Kind       ElementKind
	Attributes []Attribute
}

func NewElement(kind ElementKind, attrs []Attribute) *Element {
	return &Element{Kind: kind, Attributes: attrs}
}

// GetAttribute is https://dom.spec.whatwg.org/#dom-element-getattribute
func (e *Element) GetAttribute(name string) (string, bool) {
	for _, attr := range e.Attributes {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}
