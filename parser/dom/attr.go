package dom

// Attribute is a single name/value pair as written in the source.
// https://dom.spec.whatwg.org/#attr
type Attribute struct {
	Name  string
	Value string
}

func NewAttribute(name, value string) Attribute {
	return Attribute{Name: name, Value: value}
}
