package parser

import (
	"strings"

	"github.com/heathj/gobrowse/parser/dom"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type insertionMode uint

const (
	initial insertionMode = iota
	beforeHTML
	beforeHead
	inHead
	afterHead
	inBody
	text
	afterBody
	afterAfterBody
	// stopped is entered on end of file. No handler is registered for it.
	stopped
)

var insertionModeNames = [...]string{
	initial:        "Initial",
	beforeHTML:     "BeforeHtml",
	beforeHead:     "BeforeHead",
	inHead:         "InHead",
	afterHead:      "AfterHead",
	inBody:         "InBody",
	text:           "Text",
	afterBody:      "AfterBody",
	afterAfterBody: "AfterAfterBody",
	stopped:        "Stopped",
}

func (m insertionMode) String() string {
	if int(m) < len(insertionModeNames) {
		return insertionModeNames[m]
	}
	return "Unknown"
}

// treeConstructionModeHandler handles a token in one insertion mode. It
// returns whether the same token has to be processed again and the mode to
// continue in.
type treeConstructionModeHandler func(t *Token) (bool, insertionMode)

// HTMLTreeConstructor holds the state of the tree construction phase.
type HTMLTreeConstructor struct {
	config                Config
	window                *dom.Window
	mode                  insertionMode
	originalInsertionMode insertionMode
	stackOfOpenElements   []*dom.Node
	// textBuffer collects the characters of the text node on top of the
	// stack until it is popped.
	textBuffer strings.Builder
	mappings   map[insertionMode]treeConstructionModeHandler
}

// NewHTMLTreeConstructor creates an HTMLTreeConstructor building into a
// fresh Window.
func NewHTMLTreeConstructor(config Config) *HTMLTreeConstructor {
	c := &HTMLTreeConstructor{
		config: config,
		window: dom.NewWindow(),
		mode:   initial,
	}
	c.createMappings()
	return c
}

func (c *HTMLTreeConstructor) createMappings() {
	c.mappings = map[insertionMode]treeConstructionModeHandler{
		initial:        c.initialModeHandler,
		beforeHTML:     c.beforeHTMLModeHandler,
		beforeHead:     c.beforeHeadModeHandler,
		inHead:         c.inHeadModeHandler,
		afterHead:      c.afterHeadModeHandler,
		inBody:         c.inBodyModeHandler,
		text:           c.textModeHandler,
		afterBody:      c.afterBodyModeHandler,
		afterAfterBody: c.afterAfterBodyModeHandler,
	}
}

// Window returns the window holding the document built so far.
func (c *HTMLTreeConstructor) Window() *dom.Window {
	if cur := c.getCurrentNode(); cur != nil && cur.NodeType == dom.TextNode {
		cur.Data = c.textBuffer.String()
	}
	return c.window
}

// Done reports whether the end of file has been processed.
func (c *HTMLTreeConstructor) Done() bool {
	return c.mode == stopped
}

// ProcessToken runs t through the insertion modes until a handler consumes
// it. It returns true once tree construction has stopped.
func (c *HTMLTreeConstructor) ProcessToken(t *Token) bool {
	reprocess := true
	for reprocess && c.mode != stopped {
		prev := c.mode
		reprocess, c.mode = c.mappings[prev](t)
		if c.config.Debug || prev != c.mode {
			treeLog.WithFields(logrus.Fields{
				"token":     t.String(),
				"from":      prev,
				"to":        c.mode,
				"reprocess": reprocess,
			}).Debug("insertion mode")
		}
	}
	return c.mode == stopped
}

func (c *HTMLTreeConstructor) getCurrentNode() *dom.Node {
	if len(c.stackOfOpenElements) == 0 {
		return nil
	}
	return c.stackOfOpenElements[len(c.stackOfOpenElements)-1]
}

func (c *HTMLTreeConstructor) popCurrentNode() *dom.Node {
	node := c.getCurrentNode()
	if node == nil {
		return nil
	}
	if node.NodeType == dom.TextNode {
		node.Data = c.textBuffer.String()
		c.textBuffer.Reset()
	}
	c.stackOfOpenElements = c.stackOfOpenElements[:len(c.stackOfOpenElements)-1]
	return node
}

// popTextRun closes the text node on top of the stack, if any.
func (c *HTMLTreeConstructor) popTextRun() {
	if cur := c.getCurrentNode(); cur != nil && cur.NodeType == dom.TextNode {
		c.popCurrentNode()
	}
}

func (c *HTMLTreeConstructor) containsInStack(kind dom.ElementKind) bool {
	for i := len(c.stackOfOpenElements) - 1; i >= 0; i-- {
		if c.stackOfOpenElements[i].Is(kind) {
			return true
		}
	}
	return false
}

// popUntil pops elements off the stack up to and including the nearest
// element of the given kind. The element must be open.
func (c *HTMLTreeConstructor) popUntil(kind dom.ElementKind) {
	if !c.containsInStack(kind) {
		panic(errors.Errorf("popUntil: no <%s> on the stack of open elements", kind))
	}
	for {
		if node := c.popCurrentNode(); node.Is(kind) {
			return
		}
	}
}

// insertElement appends a new element to the current node, or to the
// document when nothing is open, and pushes it on the stack.
func (c *HTMLTreeConstructor) insertElement(kind dom.ElementKind, attrs []dom.Attribute) *dom.Node {
	c.popTextRun()
	parent := c.getCurrentNode()
	if parent == nil {
		parent = c.window.Document()
	}
	node := parent.AppendChild(dom.NewElementNode(kind, attrs))
	c.stackOfOpenElements = append(c.stackOfOpenElements, node)
	return node
}

func (c *HTMLTreeConstructor) insertHTMLElementForToken(t *Token) *dom.Node {
	kind, ok := dom.ParseElementKind(t.TagName)
	if !ok {
		panic(errors.Errorf("insertHTMLElementForToken: unknown element <%s>", t.TagName))
	}
	return c.insertElement(kind, t.Attributes)
}

// insertCharacter appends to the open text node. Otherwise whitespace is
// dropped and any other character starts a new text node.
func (c *HTMLTreeConstructor) insertCharacter(t *Token) {
	cur := c.getCurrentNode()
	if cur == nil {
		return
	}
	if cur.NodeType == dom.TextNode {
		c.textBuffer.WriteString(t.Data)
		return
	}
	if t.isWhitespace() {
		return
	}
	node := cur.AppendChild(dom.NewTextNode(t.Data))
	c.textBuffer.Reset()
	c.textBuffer.WriteString(t.Data)
	c.stackOfOpenElements = append(c.stackOfOpenElements, node)
}

func (c *HTMLTreeConstructor) skip(t *Token) {
	if c.config.Debug {
		treeLog.WithFields(logrus.Fields{"token": t.String(), "mode": c.mode}).Debug("ignoring token")
	}
}

func (c *HTMLTreeConstructor) initialModeHandler(t *Token) (bool, insertionMode) {
	if t.TokenType == CharacterToken {
		return false, initial
	}
	return true, beforeHTML
}

func (c *HTMLTreeConstructor) beforeHTMLModeHandler(t *Token) (bool, insertionMode) {
	switch {
	case t.isWhitespace():
		return false, beforeHTML
	case t.isStartTag("html"):
		c.insertHTMLElementForToken(t)
		return false, beforeHead
	case t.TokenType == EndOfFileToken:
		return false, stopped
	}
	c.insertElement(dom.Head, nil)
	return true, inHead
}

func (c *HTMLTreeConstructor) beforeHeadModeHandler(t *Token) (bool, insertionMode) {
	switch {
	case t.isWhitespace():
		return false, beforeHead
	case t.isStartTag("head"):
		c.insertHTMLElementForToken(t)
		return false, inHead
	case t.TokenType == EndOfFileToken:
		return false, stopped
	}
	c.skip(t)
	return false, beforeHead
}

func (c *HTMLTreeConstructor) inHeadModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case CharacterToken:
		if t.isWhitespace() {
			return false, inHead
		}
	case StartTagToken:
		switch t.TagName {
		case "style", "script":
			c.insertHTMLElementForToken(t)
			c.originalInsertionMode = inHead
			return false, text
		}
		// Leaving the head on any element we know keeps documents without a
		// </head> from looping here forever.
		if _, ok := dom.ParseElementKind(t.TagName); ok {
			c.popUntil(dom.Head)
			return true, afterHead
		}
	case EndTagToken:
		if t.TagName == "head" {
			c.popUntil(dom.Head)
			return false, afterHead
		}
	case EndOfFileToken:
		return false, stopped
	}
	c.skip(t)
	return false, inHead
}

func (c *HTMLTreeConstructor) afterHeadModeHandler(t *Token) (bool, insertionMode) {
	switch {
	case t.isWhitespace():
		c.insertCharacter(t)
		return false, afterHead
	case t.isStartTag("body"):
		c.insertHTMLElementForToken(t)
		return false, inBody
	case t.TokenType == EndOfFileToken:
		return false, stopped
	}
	c.insertElement(dom.Body, nil)
	return true, inBody
}

func (c *HTMLTreeConstructor) inBodyModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case CharacterToken:
		c.insertCharacter(t)
		return false, inBody
	case StartTagToken:
		switch t.TagName {
		case "p", "h1", "h2", "a":
			c.insertHTMLElementForToken(t)
			return false, inBody
		}
	case EndTagToken:
		switch t.TagName {
		case "body":
			if c.containsInStack(dom.Body) {
				c.popUntil(dom.Body)
			}
			return false, afterBody
		case "html":
			c.popTextRun()
			if cur := c.getCurrentNode(); cur != nil && cur.Is(dom.Body) {
				c.popCurrentNode()
				if cur := c.getCurrentNode(); cur != nil && cur.Is(dom.HTML) {
					c.popCurrentNode()
				}
				return true, afterBody
			}
		case "p", "h1", "h2", "a":
			kind, _ := dom.ParseElementKind(t.TagName)
			if c.containsInStack(kind) {
				c.popUntil(kind)
				return false, inBody
			}
		}
	case EndOfFileToken:
		return false, stopped
	}
	c.skip(t)
	return false, inBody
}

func (c *HTMLTreeConstructor) textModeHandler(t *Token) (bool, insertionMode) {
	switch {
	case t.TokenType == CharacterToken:
		c.insertCharacter(t)
		return false, text
	case t.isEndTag("style", "script"):
		kind, _ := dom.ParseElementKind(t.TagName)
		if c.containsInStack(kind) {
			c.popUntil(kind)
			return false, c.originalInsertionMode
		}
	case t.TokenType == EndOfFileToken:
		return false, stopped
	}
	c.skip(t)
	return false, text
}

func (c *HTMLTreeConstructor) afterBodyModeHandler(t *Token) (bool, insertionMode) {
	switch {
	case t.TokenType == CharacterToken:
		return false, afterBody
	case t.isEndTag("html"):
		return false, afterAfterBody
	case t.TokenType == EndOfFileToken:
		return false, stopped
	}
	return true, inBody
}

func (c *HTMLTreeConstructor) afterAfterBodyModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case CharacterToken:
		return false, afterAfterBody
	case EndOfFileToken:
		return false, stopped
	}
	return true, inBody
}
