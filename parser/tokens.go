package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/heathj/gobrowse/parser/dom"
)

type TokenType uint

const (
	CharacterToken TokenType = iota
	StartTagToken
	EndTagToken
	EndOfFileToken
)

func (t TokenType) String() string {
	switch t {
	case CharacterToken:
		return "Char"
	case StartTagToken:
		return "StartTag"
	case EndTagToken:
		return "EndTag"
	case EndOfFileToken:
		return "EOF"
	}
	return fmt.Sprintf("TokenType(%d)", uint(t))
}

type tagType uint

const (
	startTag tagType = iota
	endTag
)

// Token is a concrete token that is ready to be emitted.
type Token struct {
	TokenType   TokenType
	TagName     string
	SelfClosing bool
	Attributes  []dom.Attribute
	// Data holds the single code point of a character token.
	Data string
}

func (t *Token) String() string {
	switch t.TokenType {
	case CharacterToken:
		return fmt.Sprintf("Char(%q)", t.Data)
	case StartTagToken:
		return fmt.Sprintf("StartTag{%s self_closing=%t attrs=%v}", t.TagName, t.SelfClosing, t.Attributes)
	case EndTagToken:
		return fmt.Sprintf("EndTag{%s}", t.TagName)
	}
	return t.TokenType.String()
}

func (t *Token) isStartTag(names ...string) bool {
	return t.TokenType == StartTagToken && oneOf(t.TagName, names)
}

func (t *Token) isEndTag(names ...string) bool {
	return t.TokenType == EndTagToken && oneOf(t.TagName, names)
}

// isWhitespace matches character tokens holding a single ASCII whitespace
// character.
func (t *Token) isWhitespace() bool {
	if t.TokenType != CharacterToken {
		return false
	}
	r, size := utf8.DecodeRuneInString(t.Data)
	return size > 0 && size == len(t.Data) && isASCIIWhitespace(r)
}

func oneOf(name string, names []string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// TokenBuilder builds tag tokens up during the tokenization phase.
type TokenBuilder struct {
	attributes     []dom.Attribute
	attributeKey   strings.Builder
	attributeValue strings.Builder
	name           strings.Builder
	tempBuffer     strings.Builder
	selfClosing    bool
	removeNextAttr bool
	curTagType     tagType
}

func newTokenBuilder() *TokenBuilder {
	return &TokenBuilder{}
}

// NewToken clears the builders and starts a tag of the given type.
func (t *TokenBuilder) NewToken(tt tagType) {
	t.attributes = nil
	t.attributeKey.Reset()
	t.attributeValue.Reset()
	t.name.Reset()
	t.selfClosing = false
	t.removeNextAttr = false
	t.curTagType = tt
}

// EnableSelfClosing changes to the self-closing flag to "set".
func (t *TokenBuilder) EnableSelfClosing() {
	t.selfClosing = true
}

// WriteName appends a character to the current tag name.
func (t *TokenBuilder) WriteName(r rune) {
	t.name.WriteRune(r)
}

// WriteAttributeName appends a character to the current attribute's name.
func (t *TokenBuilder) WriteAttributeName(r rune) {
	t.attributeKey.WriteRune(r)
}

// WriteAttributeValue appends a character to the current attribute's value.
func (t *TokenBuilder) WriteAttributeValue(r rune) {
	t.attributeValue.WriteRune(r)
}

// RemoveDuplicateAttributeName marks the current attribute to be dropped
// when an attribute of the same name was already committed.
func (t *TokenBuilder) RemoveDuplicateAttributeName() bool {
	k := t.attributeKey.String()
	for _, attr := range t.attributes {
		if attr.Name == k {
			t.removeNextAttr = true
			return true
		}
	}
	return false
}

// CommitAttribute ends the creation of a name/value pair by copying the
// buffers into the attribute list and clearing them.
func (t *TokenBuilder) CommitAttribute() {
	if k := t.attributeKey.String(); k != "" && !t.removeNextAttr {
		t.attributes = append(t.attributes, dom.NewAttribute(k, t.attributeValue.String()))
	}
	t.attributeKey.Reset()
	t.attributeValue.Reset()
	t.removeNextAttr = false
}

// WriteTempBuffer appends a character to the temporary buffer of the current
// state.
func (t *TokenBuilder) WriteTempBuffer(r rune) {
	t.tempBuffer.WriteRune(r)
}

func (t *TokenBuilder) ResetTempBuffer() {
	t.tempBuffer.Reset()
}

func (t *TokenBuilder) TempBuffer() string {
	return t.tempBuffer.String()
}

// TagToken creates a start or end tag token from the builder contents.
// End tags never carry attributes or the self-closing flag.
func (t *TokenBuilder) TagToken() Token {
	if t.curTagType == endTag {
		return Token{
			TokenType: EndTagToken,
			TagName:   t.name.String(),
		}
	}
	return Token{
		TokenType:   StartTagToken,
		TagName:     t.name.String(),
		Attributes:  t.attributes,
		SelfClosing: t.selfClosing,
	}
}

// CharacterToken creates a character token.
func (t *TokenBuilder) CharacterToken(r rune) Token {
	return Token{
		TokenType: CharacterToken,
		Data:      string(r),
	}
}

// EndOfFileToken create an end of file token.
func (t *TokenBuilder) EndOfFileToken() Token {
	return Token{
		TokenType: EndOfFileToken,
	}
}
