package parser

import (
	"io"
	"strings"

	"github.com/heathj/gobrowse/parser/dom"
)

// Parser drives an HTMLTokenizer into an HTMLTreeConstructor.
type Parser struct {
	Tokenizer       *HTMLTokenizer
	TreeConstructor *HTMLTreeConstructor
}

func NewParser(htmlIn io.Reader, config Config) *Parser {
	return &Parser{
		Tokenizer:       NewHTMLTokenizer(htmlIn, config),
		TreeConstructor: NewHTMLTreeConstructor(config),
	}
}

// Start consumes the whole input and returns the window owning the parsed
// document. No window is returned when tokenizing fails.
func (p *Parser) Start() (*dom.Window, error) {
	for p.Tokenizer.Next() {
		t, err := p.Tokenizer.Token()
		if err != nil {
			return nil, err
		}
		if p.TreeConstructor.ProcessToken(t) {
			break
		}
	}
	return p.TreeConstructor.Window(), nil
}

// Parse parses an HTML document held in memory.
func Parse(html string) (*dom.Window, error) {
	return NewParser(strings.NewReader(html), Config{}).Start()
}
