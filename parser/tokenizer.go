package parser

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// HTMLTokenizer turns a stream of characters into HTML tokens. It is a pull
// tokenizer: every call to Token runs the state machine until at least one
// token has been emitted.
type HTMLTokenizer struct {
	done                    bool
	currentState            tokenizerState
	inputStream             *bufio.Reader
	pos                     int
	emittedTokens           []Token
	tokenBuilder            *TokenBuilder
	lastEmittedStartTagName string
	config                  Config
}

// NewHTMLTokenizer creates an HTML tokenizer that can be used to process
// an HTML document.
func NewHTMLTokenizer(in io.Reader, config Config) *HTMLTokenizer {
	return &HTMLTokenizer{
		emittedTokens: []Token{},
		inputStream:   bufio.NewReader(in),
		tokenBuilder:  newTokenBuilder(),
		config:        config,
	}
}

func (p *HTMLTokenizer) stateToParser(state tokenizerState) parserStateHandler {
	switch state {
	case dataState:
		return p.dataStateParser
	case tagOpenState:
		return p.tagOpenStateParser
	case endTagOpenState:
		return p.endTagOpenStateParser
	case tagNameState:
		return p.tagNameStateParser
	case beforeAttributeNameState:
		return p.beforeAttributeNameStateParser
	case attributeNameState:
		return p.attributeNameStateParser
	case afterAttributeNameState:
		return p.afterAttributeNameStateParser
	case beforeAttributeValueState:
		return p.beforeAttributeValueStateParser
	case attributeValueDoubleQuotedState:
		return p.attributeValueDoubleQuotedStateParser
	case attributeValueSingleQuotedState:
		return p.attributeValueSingleQuotedStateParser
	case attributeValueUnquotedState:
		return p.attributeValueUnquotedStateParser
	case afterAttributeValueQuotedState:
		return p.afterAttributeValueQuotedStateParser
	case selfClosingStartTagState:
		return p.selfClosingStartTagStateParser
	case rawTextState:
		return p.rawTextStateParser
	case rawTextLessThanSignState:
		return p.rawTextLessThanSignStateParser
	case rawTextEndTagOpenState:
		return p.rawTextEndTagOpenStateParser
	case rawTextEndTagNameState:
		return p.rawTextEndTagNameStateParser
	}
	panic(errors.Errorf("no handler for tokenizer state %s", state))
}

func isASCIIWhitespace(r rune) bool {
	switch r {
	case '\u0009', '\u000A', '\u000C', '\u000D', ' ':
		return true
	}
	return false
}

func isASCIIAlpha(r rune) bool {
	return isASCIIUpper(r) || ('a' <= r && r <= 'z')
}

func isASCIIUpper(r rune) bool {
	return 'A' <= r && r <= 'Z'
}

func toASCIILower(r rune) rune {
	if isASCIIUpper(r) {
		return r + 0x20
	}
	return r
}

func (p *HTMLTokenizer) unsupported(r rune) error {
	return NewUnsupportedInputError("html", p.pos-1, r)
}

func (p *HTMLTokenizer) isApprEndTagToken() bool {
	return p.lastEmittedStartTagName != "" && p.lastEmittedStartTagName == p.tokenBuilder.name.String()
}

func (p *HTMLTokenizer) emit(tokens ...Token) {
	for _, token := range tokens {
		if token.TokenType == StartTagToken {
			p.lastEmittedStartTagName = token.TagName
		}
		p.emittedTokens = append(p.emittedTokens, token)
	}
}

func (p *HTMLTokenizer) emitString(s string) {
	for _, r := range s {
		p.emit(p.tokenBuilder.CharacterToken(r))
	}
}

// emitCurrentTag emits the tag under construction. Start tags for script and
// style switch the tokenizer to raw text so their bodies are never read as
// markup.
func (p *HTMLTokenizer) emitCurrentTag() tokenizerState {
	p.tokenBuilder.CommitAttribute()
	token := p.tokenBuilder.TagToken()
	p.emit(token)
	if token.TokenType == StartTagToken && (token.TagName == "script" || token.TagName == "style") {
		return rawTextState
	}
	return dataState
}

func (p *HTMLTokenizer) emitEOF() (bool, tokenizerState, error) {
	p.emit(p.tokenBuilder.EndOfFileToken())
	return false, dataState, nil
}

func (p *HTMLTokenizer) dataStateParser(r rune, eof bool) (bool, tokenizerState, error) {
	if eof {
		return p.emitEOF()
	}
	switch r {
	case '<':
		return false, tagOpenState, nil
	case '\u0000':
		return false, dataState, p.unsupported(r)
	default:
		p.emit(p.tokenBuilder.CharacterToken(r))
		return false, dataState, nil
	}
}

func (p *HTMLTokenizer) tagOpenStateParser(r rune, eof bool) (bool, tokenizerState, error) {
	if eof {
		p.emit(p.tokenBuilder.CharacterToken('<'))
		return p.emitEOF()
	}
	switch {
	case r == '/':
		return false, endTagOpenState, nil
	case isASCIIAlpha(r):
		p.tokenBuilder.NewToken(startTag)
		return true, tagNameState, nil
	default:
		p.emit(p.tokenBuilder.CharacterToken('<'))
		return true, dataState, nil
	}
}

func (p *HTMLTokenizer) endTagOpenStateParser(r rune, eof bool) (bool, tokenizerState, error) {
	if eof {
		p.emitString("</")
		return p.emitEOF()
	}
	switch {
	case isASCIIAlpha(r):
		p.tokenBuilder.NewToken(endTag)
		return true, tagNameState, nil
	case r == '>':
		return false, dataState, nil
	default:
		return false, dataState, p.unsupported(r)
	}
}

func (p *HTMLTokenizer) tagNameStateParser(r rune, eof bool) (bool, tokenizerState, error) {
	if eof {
		return p.emitEOF()
	}
	switch {
	case isASCIIWhitespace(r):
		return false, beforeAttributeNameState, nil
	case r == '/':
		return false, selfClosingStartTagState, nil
	case r == '>':
		return false, p.emitCurrentTag(), nil
	case r == '\u0000':
		return false, tagNameState, p.unsupported(r)
	default:
		p.tokenBuilder.WriteName(toASCIILower(r))
		return false, tagNameState, nil
	}
}

func (p *HTMLTokenizer) beforeAttributeNameStateParser(r rune, eof bool) (bool, tokenizerState, error) {
	if eof {
		return true, afterAttributeNameState, nil
	}
	switch {
	case isASCIIWhitespace(r):
		return false, beforeAttributeNameState, nil
	case r == '/', r == '>':
		return true, afterAttributeNameState, nil
	case r == '=':
		// An '=' before any name is the first character of the name.
		p.tokenBuilder.CommitAttribute()
		p.tokenBuilder.WriteAttributeName(r)
		return false, attributeNameState, nil
	default:
		p.tokenBuilder.CommitAttribute()
		return true, attributeNameState, nil
	}
}

func (p *HTMLTokenizer) attributeNameStateParser(r rune, eof bool) (bool, tokenizerState, error) {
	if eof {
		p.tokenBuilder.RemoveDuplicateAttributeName()
		return true, afterAttributeNameState, nil
	}
	switch {
	case isASCIIWhitespace(r), r == '/', r == '>':
		p.tokenBuilder.RemoveDuplicateAttributeName()
		return true, afterAttributeNameState, nil
	case r == '=':
		p.tokenBuilder.RemoveDuplicateAttributeName()
		return false, beforeAttributeValueState, nil
	case r == '\u0000':
		return false, attributeNameState, p.unsupported(r)
	default:
		p.tokenBuilder.WriteAttributeName(toASCIILower(r))
		return false, attributeNameState, nil
	}
}

func (p *HTMLTokenizer) afterAttributeNameStateParser(r rune, eof bool) (bool, tokenizerState, error) {
	if eof {
		return p.emitEOF()
	}
	switch {
	case isASCIIWhitespace(r):
		return false, afterAttributeNameState, nil
	case r == '/':
		return false, selfClosingStartTagState, nil
	case r == '=':
		return false, beforeAttributeValueState, nil
	case r == '>':
		return false, p.emitCurrentTag(), nil
	default:
		p.tokenBuilder.CommitAttribute()
		return true, attributeNameState, nil
	}
}

func (p *HTMLTokenizer) beforeAttributeValueStateParser(r rune, eof bool) (bool, tokenizerState, error) {
	switch {
	case eof:
		return true, attributeValueUnquotedState, nil
	case isASCIIWhitespace(r):
		return false, beforeAttributeValueState, nil
	case r == '"':
		return false, attributeValueDoubleQuotedState, nil
	case r == '\'':
		return false, attributeValueSingleQuotedState, nil
	case r == '>':
		return false, p.emitCurrentTag(), nil
	default:
		return true, attributeValueUnquotedState, nil
	}
}

func (p *HTMLTokenizer) quotedAttributeValue(r rune, eof bool, quote rune, self tokenizerState) (bool, tokenizerState, error) {
	if eof {
		return p.emitEOF()
	}
	switch r {
	case quote:
		return false, afterAttributeValueQuotedState, nil
	case '\u0000':
		return false, self, p.unsupported(r)
	default:
		p.tokenBuilder.WriteAttributeValue(r)
		return false, self, nil
	}
}

func (p *HTMLTokenizer) attributeValueDoubleQuotedStateParser(r rune, eof bool) (bool, tokenizerState, error) {
	return p.quotedAttributeValue(r, eof, '"', attributeValueDoubleQuotedState)
}

func (p *HTMLTokenizer) attributeValueSingleQuotedStateParser(r rune, eof bool) (bool, tokenizerState, error) {
	return p.quotedAttributeValue(r, eof, '\'', attributeValueSingleQuotedState)
}

func (p *HTMLTokenizer) attributeValueUnquotedStateParser(r rune, eof bool) (bool, tokenizerState, error) {
	if eof {
		return p.emitEOF()
	}
	switch {
	case isASCIIWhitespace(r):
		return false, beforeAttributeNameState, nil
	case r == '>':
		return false, p.emitCurrentTag(), nil
	case r == '\u0000':
		return false, attributeValueUnquotedState, p.unsupported(r)
	default:
		p.tokenBuilder.WriteAttributeValue(r)
		return false, attributeValueUnquotedState, nil
	}
}

func (p *HTMLTokenizer) afterAttributeValueQuotedStateParser(r rune, eof bool) (bool, tokenizerState, error) {
	if eof {
		return p.emitEOF()
	}
	switch {
	case isASCIIWhitespace(r):
		return false, beforeAttributeNameState, nil
	case r == '/':
		return false, selfClosingStartTagState, nil
	case r == '>':
		return false, p.emitCurrentTag(), nil
	default:
		return true, beforeAttributeNameState, nil
	}
}

func (p *HTMLTokenizer) selfClosingStartTagStateParser(r rune, eof bool) (bool, tokenizerState, error) {
	if eof {
		return p.emitEOF()
	}
	switch r {
	case '>':
		p.tokenBuilder.EnableSelfClosing()
		return false, p.emitCurrentTag(), nil
	default:
		return true, beforeAttributeNameState, nil
	}
}

func (p *HTMLTokenizer) rawTextStateParser(r rune, eof bool) (bool, tokenizerState, error) {
	if eof {
		return p.emitEOF()
	}
	switch r {
	case '<':
		return false, rawTextLessThanSignState, nil
	case '\u0000':
		return false, rawTextState, p.unsupported(r)
	default:
		p.emit(p.tokenBuilder.CharacterToken(r))
		return false, rawTextState, nil
	}
}

func (p *HTMLTokenizer) rawTextLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState, error) {
	if !eof && r == '/' {
		p.tokenBuilder.ResetTempBuffer()
		return false, rawTextEndTagOpenState, nil
	}
	p.emit(p.tokenBuilder.CharacterToken('<'))
	return true, rawTextState, nil
}

func (p *HTMLTokenizer) rawTextEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState, error) {
	if !eof && isASCIIAlpha(r) {
		p.tokenBuilder.NewToken(endTag)
		return true, rawTextEndTagNameState, nil
	}
	p.emitString("</")
	return true, rawTextState, nil
}

func (p *HTMLTokenizer) defaultRawTextEndTagNameStateCase() (bool, tokenizerState, error) {
	p.emitString("</" + p.tokenBuilder.TempBuffer())
	return true, rawTextState, nil
}

func (p *HTMLTokenizer) rawTextEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState, error) {
	if eof {
		return p.defaultRawTextEndTagNameStateCase()
	}
	switch {
	case isASCIIWhitespace(r):
		if p.isApprEndTagToken() {
			return false, beforeAttributeNameState, nil
		}
	case r == '/':
		if p.isApprEndTagToken() {
			return false, selfClosingStartTagState, nil
		}
	case r == '>':
		if p.isApprEndTagToken() {
			return false, p.emitCurrentTag(), nil
		}
	case isASCIIAlpha(r):
		p.tokenBuilder.WriteName(toASCIILower(r))
		p.tokenBuilder.WriteTempBuffer(r)
		return false, rawTextEndTagNameState, nil
	}
	return p.defaultRawTextEndTagNameStateCase()
}

// a parserStateHandler takes in a rune and a bool representing the end of
// file. It returns whether the rune should be reconsumed, the next state to
// transition to and an error when the input cannot be tokenized.
type parserStateHandler func(in rune, eof bool) (bool, tokenizerState, error)

type tokenizerState uint

const (
	dataState tokenizerState = iota
	tagOpenState
	endTagOpenState
	tagNameState
	beforeAttributeNameState
	attributeNameState
	afterAttributeNameState
	beforeAttributeValueState
	attributeValueDoubleQuotedState
	attributeValueSingleQuotedState
	attributeValueUnquotedState
	afterAttributeValueQuotedState
	selfClosingStartTagState
	rawTextState
	rawTextLessThanSignState
	rawTextEndTagOpenState
	rawTextEndTagNameState
)

var tokenizerStateNames = [...]string{
	dataState:                       "Data",
	tagOpenState:                    "TagOpen",
	endTagOpenState:                 "EndTagOpen",
	tagNameState:                    "TagName",
	beforeAttributeNameState:        "BeforeAttributeName",
	attributeNameState:              "AttributeName",
	afterAttributeNameState:         "AfterAttributeName",
	beforeAttributeValueState:       "BeforeAttributeValue",
	attributeValueDoubleQuotedState: "AttributeValueDoubleQuoted",
	attributeValueSingleQuotedState: "AttributeValueSingleQuoted",
	attributeValueUnquotedState:     "AttributeValueUnquoted",
	afterAttributeValueQuotedState:  "AfterAttributeValueQuoted",
	selfClosingStartTagState:        "SelfClosingStartTag",
	rawTextState:                    "RawText",
	rawTextLessThanSignState:        "RawTextLessThanSign",
	rawTextEndTagOpenState:          "RawTextEndTagOpen",
	rawTextEndTagNameState:          "RawTextEndTagName",
}

func (s tokenizerState) String() string {
	if int(s) < len(tokenizerStateNames) {
		return tokenizerStateNames[s]
	}
	return "Unknown"
}

func (p *HTMLTokenizer) takeFirstEmittedToken() *Token {
	if len(p.emittedTokens) == 0 {
		return nil
	}
	token := p.emittedTokens[0]
	p.emittedTokens = p.emittedTokens[1:]
	if token.TokenType == EndOfFileToken {
		p.done = true
	}
	return &token
}

// Next reports whether another token can be read.
func (p *HTMLTokenizer) Next() bool {
	return !p.done
}

// Token returns the next token. After the end of file token or an error,
// Next reports false.
func (p *HTMLTokenizer) Token() (*Token, error) {
	// some states emit more than 1 token at a time and sometimes no tokens.
	// loop until at least 1 token is emitted and then take them.
	for {
		if token := p.takeFirstEmittedToken(); token != nil {
			return token, nil
		}
		if p.done {
			return nil, io.EOF
		}

		r, eof, err := p.readRune()
		if err != nil {
			p.done = true
			return nil, errors.Wrap(err, "reading html input")
		}
		if err := p.processRune(r, eof); err != nil {
			p.done = true
			p.emittedTokens = nil
			return nil, err
		}
	}
}

// readRune reads the next code point, normalizing CRLF and CR to LF.
func (p *HTMLTokenizer) readRune() (rune, bool, error) {
	r, _, err := p.inputStream.ReadRune()
	if err == io.EOF {
		return 0, true, nil
	}
	if err != nil {
		return 0, false, err
	}
	p.pos++
	if r == '\r' {
		next, _, err := p.inputStream.ReadRune()
		if err == nil {
			if next == '\n' {
				p.pos++
			} else if err := p.inputStream.UnreadRune(); err != nil {
				return 0, false, err
			}
		}
		r = '\n'
	}
	return r, false, nil
}

func (p *HTMLTokenizer) processRune(r rune, eof bool) error {
	var err error
	reconsume := true
	for reconsume && err == nil {
		reconsume, p.currentState, err = p.stateToParser(p.currentState)(r, eof)
		if p.config.Debug {
			tokenizerLog.WithFields(logrus.Fields{"rune": string(r), "eof": eof, "state": p.currentState}).Debug("tokenizer step")
		}
	}
	return err
}
