package css

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "css")

type SelectorKind uint

const (
	// UnknownSelector never matches.
	UnknownSelector SelectorKind = iota
	TypeSelector
	ClassSelector
	IDSelector
)

// Selector is the single simple selector a rule applies to. Name holds the
// tag name, class or id without any '.' or '#' prefix.
type Selector struct {
	Kind SelectorKind
	Name string
}

func (s Selector) String() string {
	switch s.Kind {
	case TypeSelector:
		return s.Name
	case ClassSelector:
		return "." + s.Name
	case IDSelector:
		return "#" + s.Name
	}
	return "<unknown>"
}

// Declaration is one property with the first component value written for it.
type Declaration struct {
	Property string
	Value    Token
}

func (d Declaration) String() string {
	return d.Property + ": " + d.Value.String()
}

type QualifiedRule struct {
	Selector     Selector
	Declarations []Declaration
}

func (r QualifiedRule) String() string {
	decls := make([]string, 0, len(r.Declarations))
	for _, d := range r.Declarations {
		decls = append(decls, d.String()+";")
	}
	return fmt.Sprintf("%s { %s }", r.Selector, strings.Join(decls, " "))
}

// StyleSheet holds rules in source order.
type StyleSheet struct {
	Rules []QualifiedRule
}

func (s *StyleSheet) String() string {
	rules := make([]string, 0, len(s.Rules))
	for _, r := range s.Rules {
		rules = append(rules, r.String())
	}
	return strings.Join(rules, "\n")
}

// Parser builds a StyleSheet from a token stream with one token of
// lookahead.
type Parser struct {
	t     *Tokenizer
	cache []Token
	err   error
}

func NewParser(t *Tokenizer) *Parser {
	return &Parser{t: t}
}

// ParseStyleSheet tokenizes and parses css in one go.
func ParseStyleSheet(css string) (*StyleSheet, error) {
	return NewParser(NewTokenizer(css)).Parse()
}

// peek returns the next token without consuming it. ok is false at the end
// of input or after a tokenizer error, which is kept in p.err.
func (p *Parser) peek() (Token, bool) {
	if len(p.cache) > 0 {
		return p.cache[0], true
	}
	if p.err != nil {
		return Token{}, false
	}
	tok, err := p.t.Next()
	if err != nil {
		p.err = err
		return Token{}, false
	}
	p.cache = append(p.cache, tok)
	return tok, true
}

func (p *Parser) next() (Token, bool) {
	tok, ok := p.peek()
	if ok {
		p.cache = p.cache[1:]
	}
	return tok, ok
}

// Parse consumes the whole token stream.
func (p *Parser) Parse() (*StyleSheet, error) {
	sheet := &StyleSheet{Rules: p.consumeListOfRules()}
	if p.err != nil && p.err != io.EOF {
		return nil, p.err
	}
	return sheet, nil
}

func (p *Parser) consumeListOfRules() []QualifiedRule {
	var rules []QualifiedRule
	for {
		tok, ok := p.peek()
		if !ok {
			return rules
		}
		if tok.Type == AtKeywordToken {
			p.consumeAtRule()
			continue
		}
		if rule, ok := p.consumeQualifiedRule(); ok {
			rules = append(rules, rule)
		}
	}
}

// consumeAtRule skips an at-rule: its prelude up to ';' or a block, and the
// block with anything nested in it.
func (p *Parser) consumeAtRule() {
	kw, _ := p.next()
	log.WithField("rule", kw.String()).Debug("skipping at-rule")
	for {
		tok, ok := p.next()
		if !ok {
			return
		}
		switch tok.Type {
		case SemiColonToken:
			return
		case OpenCurlyToken:
			p.skipBlock()
			return
		}
	}
}

// skipBlock consumes tokens up to the '}' that closes an already opened
// block.
func (p *Parser) skipBlock() {
	depth := 1
	for depth > 0 {
		tok, ok := p.next()
		if !ok {
			return
		}
		switch tok.Type {
		case OpenCurlyToken:
			depth++
		case CloseCurlyToken:
			depth--
		}
	}
}

func (p *Parser) consumeQualifiedRule() (QualifiedRule, bool) {
	rule := QualifiedRule{Selector: p.consumeSelector()}
	tok, ok := p.next()
	if !ok || tok.Type != OpenCurlyToken {
		return rule, false
	}
	rule.Declarations = p.consumeListOfDeclarations()
	return rule, true
}

// consumeSelector reads a simple selector and drops whatever else is
// written before the block, such as pseudo-classes or further selectors.
func (p *Parser) consumeSelector() Selector {
	var sel Selector
	tok, ok := p.next()
	if !ok {
		return sel
	}
	switch {
	case tok.Type == HashToken:
		sel = Selector{Kind: IDSelector, Name: strings.TrimPrefix(tok.Value, "#")}
	case tok.Type == IdentToken:
		sel = Selector{Kind: TypeSelector, Name: tok.Value}
	case tok.isDelim('.'):
		if name, ok := p.peek(); ok && name.Type == IdentToken {
			p.next()
			sel = Selector{Kind: ClassSelector, Name: name.Value}
		}
	case tok.Type == OpenCurlyToken:
		p.cache = append([]Token{tok}, p.cache...)
	}
	if sel.Kind == UnknownSelector {
		log.WithField("token", tok.String()).Debug("unknown selector")
	}

	for {
		tok, ok := p.peek()
		if !ok || tok.Type == OpenCurlyToken {
			return sel
		}
		p.next()
	}
}

func (p *Parser) consumeListOfDeclarations() []Declaration {
	var decls []Declaration
	for {
		tok, ok := p.peek()
		if !ok {
			return decls
		}
		switch tok.Type {
		case CloseCurlyToken:
			p.next()
			return decls
		case IdentToken:
			if decl, ok := p.consumeDeclaration(); ok {
				decls = append(decls, decl)
			}
		default:
			p.next()
		}
	}
}

// consumeDeclaration reads "property: value" and skips the rest of the
// declaration without consuming a closing '}'.
func (p *Parser) consumeDeclaration() (Declaration, bool) {
	prop, _ := p.next()
	decl := Declaration{Property: prop.Value}

	if tok, ok := p.peek(); !ok || tok.Type != ColonToken {
		return decl, false
	}
	p.next()

	value, ok := p.peek()
	if !ok || value.Type == SemiColonToken || value.Type == CloseCurlyToken {
		return decl, false
	}
	p.next()
	decl.Value = value

	for {
		tok, ok := p.peek()
		if !ok || tok.Type == SemiColonToken || tok.Type == CloseCurlyToken {
			return decl, true
		}
		p.next()
	}
}
