package css

import (
	"io"
	"strings"

	"github.com/heathj/gobrowse/parser"
)

// Tokenizer splits a style sheet into tokens. Next returns io.EOF once the
// input is exhausted.
type Tokenizer struct {
	pos   int
	input []rune
}

func NewTokenizer(css string) *Tokenizer {
	return &Tokenizer{input: []rune(css)}
}

func isNameRune(r rune) bool {
	return isASCIIAlpha(r) || ('0' <= r && r <= '9') || r == '-' || r == '_'
}

func isASCIIAlpha(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func (t *Tokenizer) peekAt(offset int) (rune, bool) {
	if i := t.pos + offset; i < len(t.input) {
		return t.input[i], true
	}
	return 0, false
}

// consumeName reads name characters starting at the current position. The
// first rune is taken as is.
func (t *Tokenizer) consumeName() string {
	start := t.pos
	t.pos++
	for t.pos < len(t.input) && isNameRune(t.input[t.pos]) {
		t.pos++
	}
	return string(t.input[start:t.pos])
}

// consumeString reads up to the closing quote, which is dropped. An
// unterminated string runs to the end of input.
func (t *Tokenizer) consumeString(quote rune) string {
	var sb strings.Builder
	t.pos++
	for t.pos < len(t.input) {
		r := t.input[t.pos]
		t.pos++
		if r == quote {
			break
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// consumeNumber reads digits with an optional fraction. Signs and
// exponents are not recognized.
func (t *Tokenizer) consumeNumber() float64 {
	var (
		num      float64
		fraction bool
		digit    = 1.0
	)
	for ; t.pos < len(t.input); t.pos++ {
		r := t.input[t.pos]
		switch {
		case isDigit(r):
			if fraction {
				digit /= 10
				num += float64(r-'0') * digit
			} else {
				num = num*10 + float64(r-'0')
			}
		case r == '.' && !fraction:
			fraction = true
		default:
			return num
		}
	}
	return num
}

func (t *Tokenizer) skipComment() {
	t.pos += 2
	for t.pos < len(t.input) {
		if t.input[t.pos] == '*' {
			if next, ok := t.peekAt(1); ok && next == '/' {
				t.pos += 2
				return
			}
		}
		t.pos++
	}
}

// Next returns the next token, io.EOF at the end of input, or an
// UnsupportedInputError for a character with no token rule.
func (t *Tokenizer) Next() (Token, error) {
	for t.pos < len(t.input) {
		r := t.input[t.pos]
		switch {
		case r == ' ', r == '\n', r == '\t', r == '\r', r == '\f':
			t.pos++
			continue
		case r == '/':
			if next, ok := t.peekAt(1); ok && next == '*' {
				t.skipComment()
				continue
			}
			t.pos++
			return Delim(r), nil
		case r == '(':
			t.pos++
			return OpenParenthesis, nil
		case r == ')':
			t.pos++
			return CloseParenthesis, nil
		case r == ':':
			t.pos++
			return Colon, nil
		case r == ';':
			t.pos++
			return SemiColon, nil
		case r == '{':
			t.pos++
			return OpenCurly, nil
		case r == '}':
			t.pos++
			return CloseCurly, nil
		case strings.ContainsRune(",.*>+~%!=", r):
			t.pos++
			return Delim(r), nil
		case r == '"', r == '\'':
			return QuotedString(t.consumeString(r)), nil
		case isDigit(r):
			return Number(t.consumeNumber()), nil
		case r == '#':
			return Hash(t.consumeName()), nil
		case r == '-', r == '_', isASCIIAlpha(r):
			// Negative numbers are not supported, a leading '-' starts an
			// identifier.
			return Ident(t.consumeName()), nil
		case r == '@':
			if t.startsAtKeyword() {
				t.pos++
				return AtKeyword(t.consumeName()), nil
			}
			t.pos++
			return Delim(r), nil
		default:
			return Token{}, parser.NewUnsupportedInputError("css", t.pos, r)
		}
	}
	return Token{}, io.EOF
}

func (t *Tokenizer) startsAtKeyword() bool {
	for i := 1; i <= 3; i++ {
		if r, ok := t.peekAt(i); !ok || !isASCIIAlpha(r) {
			return false
		}
	}
	return true
}

// Tokenize reads every token of css.
func Tokenize(css string) ([]Token, error) {
	var (
		t      = NewTokenizer(css)
		tokens []Token
	)
	for {
		tok, err := t.Next()
		if err == io.EOF {
			return tokens, nil
		}
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
}
