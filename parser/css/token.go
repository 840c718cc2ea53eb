package css

import (
	"fmt"
	"strconv"
)

type TokenType uint

const (
	HashToken TokenType = iota
	DelimToken
	NumberToken
	ColonToken
	SemiColonToken
	OpenParenthesisToken
	CloseParenthesisToken
	OpenCurlyToken
	CloseCurlyToken
	IdentToken
	StringToken
	AtKeywordToken
)

// Token is a single CSS token. Value carries the text of hash, ident,
// string and at-keyword tokens. Hash values keep their leading '#'.
type Token struct {
	Type   TokenType
	Value  string
	Delim  rune
	Number float64
}

func Hash(v string) Token         { return Token{Type: HashToken, Value: v} }
func Delim(r rune) Token          { return Token{Type: DelimToken, Delim: r} }
func Number(n float64) Token      { return Token{Type: NumberToken, Number: n} }
func Ident(v string) Token        { return Token{Type: IdentToken, Value: v} }
func QuotedString(v string) Token { return Token{Type: StringToken, Value: v} }
func AtKeyword(v string) Token    { return Token{Type: AtKeywordToken, Value: v} }

var (
	Colon            = Token{Type: ColonToken}
	SemiColon        = Token{Type: SemiColonToken}
	OpenParenthesis  = Token{Type: OpenParenthesisToken}
	CloseParenthesis = Token{Type: CloseParenthesisToken}
	OpenCurly        = Token{Type: OpenCurlyToken}
	CloseCurly       = Token{Type: CloseCurlyToken}
)

func (t Token) isDelim(r rune) bool {
	return t.Type == DelimToken && t.Delim == r
}

func (t Token) String() string {
	switch t.Type {
	case HashToken:
		return t.Value
	case DelimToken:
		return string(t.Delim)
	case NumberToken:
		return strconv.FormatFloat(t.Number, 'f', -1, 64)
	case ColonToken:
		return ":"
	case SemiColonToken:
		return ";"
	case OpenParenthesisToken:
		return "("
	case CloseParenthesisToken:
		return ")"
	case OpenCurlyToken:
		return "{"
	case CloseCurlyToken:
		return "}"
	case IdentToken:
		return t.Value
	case StringToken:
		return strconv.Quote(t.Value)
	case AtKeywordToken:
		return "@" + t.Value
	}
	return fmt.Sprintf("Token(%d)", uint(t.Type))
}
