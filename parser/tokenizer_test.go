package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/heathj/gobrowse/parser/dom"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenize(t *testing.T, in string) []Token {
	t.Helper()
	p := NewHTMLTokenizer(strings.NewReader(in), Config{})
	var tokens []Token
	for p.Next() {
		token, err := p.Token()
		require.NoError(t, err)
		tokens = append(tokens, *token)
	}
	return tokens
}

func chars(s string) []Token {
	var tokens []Token
	for _, r := range s {
		tokens = append(tokens, Token{TokenType: CharacterToken, Data: string(r)})
	}
	return tokens
}

func startTagTok(name string, attrs ...dom.Attribute) Token {
	return Token{TokenType: StartTagToken, TagName: name, Attributes: attrs}
}

func endTagTok(name string) Token {
	return Token{TokenType: EndTagToken, TagName: name}
}

var eofTok = Token{TokenType: EndOfFileToken}

func concat(groups ...[]Token) []Token {
	var out []Token
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

type tokezinerAttributeAccuracyTestcase struct {
	inHTML string          // snippet of HTML to tokenize (should only be one element)
	attrs  []dom.Attribute // expected attributes collected from the first token that is produced
}

var tokenizerAttributeAccuracyTests = []tokezinerAttributeAccuracyTestcase{
	{"<head></head>", nil},
	{"<script src='123' onload='test'></script>", []dom.Attribute{
		{Name: "src", Value: "123"},
		{Name: "onload", Value: "test"},
	}},
	{"<a href='https://google.com' onclick='alert(1)'>Click this</a>", []dom.Attribute{
		{Name: "href", Value: "https://google.com"},
		{Name: "onclick", Value: "alert(1)"},
	}},
	{"<script src='123' src='456'></script>", []dom.Attribute{
		{Name: "src", Value: "123"},
	}},
	{"<script src=123 onload=test></script>", []dom.Attribute{
		{Name: "src", Value: "123"},
		{Name: "onload", Value: "test"},
	}},
	{"<script src='123' onload='test' ></script>", []dom.Attribute{
		{Name: "src", Value: "123"},
		{Name: "onload", Value: "test"},
	}},
	{"<script =src='123'onload='test' ></script>", []dom.Attribute{
		{Name: "=src", Value: "123"},
		{Name: "onload", Value: "test"},
	}},
	{"<a =x href=y>", []dom.Attribute{
		{Name: "=x", Value: ""},
		{Name: "href", Value: "y"},
	}},
	{"<script src></script>", []dom.Attribute{
		{Name: "src", Value: ""},
	}},
	{"<script src test></script>", []dom.Attribute{
		{Name: "src", Value: ""},
		{Name: "test", Value: ""},
	}},
	{"<script 'asd></script>", []dom.Attribute{
		{Name: "'asd", Value: ""},
	}},
	{"<script <asd></script>", []dom.Attribute{
		{Name: "<asd", Value: ""},
	}},
	{"<script ABC=123></script>", []dom.Attribute{
		{Name: "abc", Value: "123"},
	}},
	{"<script abc=></script>", []dom.Attribute{
		{Name: "abc", Value: ""},
	}},
	{"<script\tabc=123></script>", []dom.Attribute{
		{Name: "abc", Value: "123"},
	}},
	{"<a foo=bar>", []dom.Attribute{
		{Name: "foo", Value: "bar"},
	}},
}

// TestTokenizerAttributeAccuracy makes sure that we collect the correct
// attribute names and values, in source order.
func TestTokenizerAttributeAccuracy(t *testing.T) {
	for _, tt := range tokenizerAttributeAccuracyTests {
		tt := tt
		t.Run(tt.inHTML, func(t *testing.T) {
			t.Parallel()
			tokens := tokenize(t, tt.inHTML)
			require.NotEmpty(t, tokens)
			assert.Equal(t, StartTagToken, tokens[0].TokenType)
			assert.Equal(t, tt.attrs, tokens[0].Attributes)
		})
	}
}

func TestTokenSequences(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected []Token
	}{
		{"empty", "", []Token{eofTok}},
		{"text", "hi", concat(chars("hi"), []Token{eofTok})},
		{"start and end tag", "<p></p>", []Token{startTagTok("p"), endTagTok("p"), eofTok}},
		{"upper case names", "<BODY></Body>", []Token{startTagTok("body"), endTagTok("body"), eofTok}},
		{"self closing", "<br/>", []Token{{TokenType: StartTagToken, TagName: "br", SelfClosing: true}, eofTok}},
		{"attribute", "<a foo=bar>text</a>", concat(
			[]Token{startTagTok("a", dom.NewAttribute("foo", "bar"))},
			chars("text"),
			[]Token{endTagTok("a"), eofTok},
		)},
		{"end tag attributes dropped", "</p class=x>", []Token{endTagTok("p"), eofTok}},
		{"doctype is text", "<!doctype html>", concat(chars("<!doctype html>"), []Token{eofTok})},
		{"empty end tag ignored", "a</>b", concat(chars("ab"), []Token{eofTok})},
		{"crlf normalized", "a\r\nb\rc", concat(chars("a\nb\nc"), []Token{eofTok})},
		{"unterminated tag dropped", "<p class", []Token{eofTok}},
		{"lone less than at end", "a<", concat(chars("a<"), []Token{eofTok})},
		{"style is raw text", "<style>p>a{}</style>", concat(
			[]Token{startTagTok("style")},
			chars("p>a{}"),
			[]Token{endTagTok("style"), eofTok},
		)},
		{"markup inside script", "<script><p></b></script>", concat(
			[]Token{startTagTok("script")},
			chars("<p></b>"),
			[]Token{endTagTok("script"), eofTok},
		)},
		{"mismatched raw text end tag", "<style></styles></style>", concat(
			[]Token{startTagTok("style")},
			chars("</styles>"),
			[]Token{endTagTok("style"), eofTok},
		)},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tokenize(t, tt.in))
		})
	}
}

func TestUnsupportedInput(t *testing.T) {
	tests := []struct {
		in   string
		pos  int
		char rune
	}{
		{"ab\u0000", 2, '\u0000'},
		{"<p>a</1>", 6, '1'},
		{"<p a='\u0000'>", 6, '\u0000'},
		{"<style>\u0000</style>", 7, '\u0000'},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(fmt.Sprintf("%q", tt.in), func(t *testing.T) {
			t.Parallel()
			p := NewHTMLTokenizer(strings.NewReader(tt.in), Config{})
			var err error
			for p.Next() && err == nil {
				_, err = p.Token()
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnsupportedInput))

			var uerr *UnsupportedInputError
			require.True(t, errors.As(err, &uerr))
			assert.Equal(t, "html", uerr.Source)
			assert.Equal(t, tt.pos, uerr.Pos)
			assert.Equal(t, tt.char, uerr.Char)
			assert.False(t, p.Next())
		})
	}
}

type stateMachineTestCase struct {
	inRune            rune           // the rune to pass to the startingState
	startingState     tokenizerState // the state to start from
	shouldReconsume   bool           // the expectation if the next state should reconsume
	nextExpectedState tokenizerState // the next state
}

// TestStateParsers checks that each state of the machine returns the next
// expected state for a single rune.
func TestStateParsers(t *testing.T) {
	stateParserTests := []stateMachineTestCase{
		{'<', dataState, false, tagOpenState},
		{'a', dataState, false, dataState},
		{'&', dataState, false, dataState},
		{'1', dataState, false, dataState},

		{'/', tagOpenState, false, endTagOpenState},
		{'a', tagOpenState, true, tagNameState},
		{'Z', tagOpenState, true, tagNameState},
		{'!', tagOpenState, true, dataState},
		{'1', tagOpenState, true, dataState},

		{'a', endTagOpenState, true, tagNameState},
		{'B', endTagOpenState, true, tagNameState},
		{'>', endTagOpenState, false, dataState},

		{'\t', tagNameState, false, beforeAttributeNameState},
		{'\n', tagNameState, false, beforeAttributeNameState},
		{' ', tagNameState, false, beforeAttributeNameState},
		{'/', tagNameState, false, selfClosingStartTagState},
		{'>', tagNameState, false, dataState},
		{'a', tagNameState, false, tagNameState},
		{'1', tagNameState, false, tagNameState},

		{' ', beforeAttributeNameState, false, beforeAttributeNameState},
		{'/', beforeAttributeNameState, true, afterAttributeNameState},
		{'>', beforeAttributeNameState, true, afterAttributeNameState},
		{'a', beforeAttributeNameState, true, attributeNameState},
		{'=', beforeAttributeNameState, false, attributeNameState},

		{' ', attributeNameState, true, afterAttributeNameState},
		{'=', attributeNameState, false, beforeAttributeValueState},
		{'a', attributeNameState, false, attributeNameState},

		{' ', afterAttributeNameState, false, afterAttributeNameState},
		{'/', afterAttributeNameState, false, selfClosingStartTagState},
		{'=', afterAttributeNameState, false, beforeAttributeValueState},
		{'>', afterAttributeNameState, false, dataState},
		{'a', afterAttributeNameState, true, attributeNameState},

		{' ', beforeAttributeValueState, false, beforeAttributeValueState},
		{'"', beforeAttributeValueState, false, attributeValueDoubleQuotedState},
		{'\'', beforeAttributeValueState, false, attributeValueSingleQuotedState},
		{'>', beforeAttributeValueState, false, dataState},
		{'a', beforeAttributeValueState, true, attributeValueUnquotedState},

		{'"', attributeValueDoubleQuotedState, false, afterAttributeValueQuotedState},
		{'\'', attributeValueDoubleQuotedState, false, attributeValueDoubleQuotedState},
		{'\'', attributeValueSingleQuotedState, false, afterAttributeValueQuotedState},
		{'"', attributeValueSingleQuotedState, false, attributeValueSingleQuotedState},

		{' ', attributeValueUnquotedState, false, beforeAttributeNameState},
		{'>', attributeValueUnquotedState, false, dataState},
		{'a', attributeValueUnquotedState, false, attributeValueUnquotedState},

		{' ', afterAttributeValueQuotedState, false, beforeAttributeNameState},
		{'/', afterAttributeValueQuotedState, false, selfClosingStartTagState},
		{'>', afterAttributeValueQuotedState, false, dataState},
		{'a', afterAttributeValueQuotedState, true, beforeAttributeNameState},

		{'>', selfClosingStartTagState, false, dataState},
		{'a', selfClosingStartTagState, true, beforeAttributeNameState},

		{'<', rawTextState, false, rawTextLessThanSignState},
		{'a', rawTextState, false, rawTextState},
		{'#', rawTextState, false, rawTextState},

		{'/', rawTextLessThanSignState, false, rawTextEndTagOpenState},
		{'a', rawTextLessThanSignState, true, rawTextState},

		{'a', rawTextEndTagOpenState, true, rawTextEndTagNameState},
		{'Z', rawTextEndTagOpenState, true, rawTextEndTagNameState},
		{'1', rawTextEndTagOpenState, true, rawTextState},

		{'a', rawTextEndTagNameState, false, rawTextEndTagNameState},
		{'1', rawTextEndTagNameState, true, rawTextState},
		{'>', rawTextEndTagNameState, true, rawTextState},
	}

	for _, tt := range stateParserTests {
		tt := tt
		t.Run(fmt.Sprintf("%s-%#U", tt.startingState, tt.inRune), func(t *testing.T) {
			t.Parallel()
			p := NewHTMLTokenizer(strings.NewReader(""), Config{})
			reconsume, state, err := p.stateToParser(tt.startingState)(tt.inRune, false)
			require.NoError(t, err)
			assert.Equal(t, tt.nextExpectedState, state)
			assert.Equal(t, tt.shouldReconsume, reconsume)
		})
	}
}

type parserStatefulnessTestCase struct {
	inHTML     string                                // the HTML to feed through the state machine
	startState tokenizerState                        // the starting state of the tokenizer
	testFunc   func(*HTMLTokenizer) (string, string) // looks inside the tokenizer, returns (got, expected)
}

// TestParseStatefulness runs the state machine over the input without the
// EOF handlers, which often erase the token builder state.
func TestParseStatefulness(t *testing.T) {
	name := func(p *HTMLTokenizer) string { return p.tokenBuilder.name.String() }
	tests := []parserStatefulnessTestCase{
		{"b", tagOpenState, func(p *HTMLTokenizer) (string, string) { return name(p), "b" }},
		{"bAc", tagOpenState, func(p *HTMLTokenizer) (string, string) { return name(p), "bac" }},
		{"P", endTagOpenState, func(p *HTMLTokenizer) (string, string) { return name(p), "p" }},
		{"<", tagNameState, func(p *HTMLTokenizer) (string, string) { return name(p), "<" }},
		{"U", rawTextEndTagNameState, func(p *HTMLTokenizer) (string, string) { return name(p), "u" }},
		{"U", rawTextEndTagNameState, func(p *HTMLTokenizer) (string, string) { return p.tokenBuilder.TempBuffer(), "U" }},
		{"U", attributeNameState, func(p *HTMLTokenizer) (string, string) { return p.tokenBuilder.attributeKey.String(), "u" }},
		{"aB", attributeValueDoubleQuotedState, func(p *HTMLTokenizer) (string, string) { return p.tokenBuilder.attributeValue.String(), "aB" }},
		{"x y", attributeValueSingleQuotedState, func(p *HTMLTokenizer) (string, string) { return p.tokenBuilder.attributeValue.String(), "x y" }},
		{">", selfClosingStartTagState, func(p *HTMLTokenizer) (string, string) {
			return fmt.Sprintf("%t", p.emittedTokens[0].SelfClosing), "true"
		}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(fmt.Sprintf("%s-%s", tt.startState, tt.inHTML), func(t *testing.T) {
			t.Parallel()
			p := NewHTMLTokenizer(strings.NewReader(""), Config{})
			p.currentState = tt.startState
			for _, r := range tt.inHTML {
				require.NoError(t, p.processRune(r, false))
			}
			answer, expected := tt.testFunc(p)
			assert.Equal(t, expected, answer)
		})
	}
}
