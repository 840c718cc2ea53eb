package dom

// Window owns the document of a single page load.
type Window struct {
	document *Node
}

// NewWindow creates a window holding an empty document.
func NewWindow() *Window {
	w := &Window{}
	w.document = &Node{
		NodeType: DocumentNode,
		window:   w,
	}
	return w
}

func (w *Window) Document() *Node {
	return w.document
}
