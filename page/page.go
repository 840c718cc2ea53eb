package page

import (
	"strings"

	"github.com/heathj/gobrowse/layout"
	"github.com/heathj/gobrowse/parser"
	"github.com/heathj/gobrowse/parser/css"
	"github.com/heathj/gobrowse/parser/dom"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "page")

// Page holds everything computed from the last response it received.
type Page struct {
	browser      *Browser
	window       *dom.Window
	style        *css.StyleSheet
	layoutView   *layout.LayoutView
	displayItems []layout.DisplayItem
	contentWidth int64
	config       parser.Config
}

type Option func(*Page)

// WithContentWidth lays pages out against width instead of
// layout.ContentAreaWidth.
func WithContentWidth(width int64) Option {
	return func(p *Page) {
		p.contentWidth = width
	}
}

// WithParserConfig sets the configuration handed to the HTML parser.
func WithParserConfig(config parser.Config) Option {
	return func(p *Page) {
		p.config = config
	}
}

func NewPage(opts ...Option) *Page {
	p := &Page{contentWidth: layout.ContentAreaWidth}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ReceiveResponse parses body and rebuilds the window, style sheet, layout
// view and display list from it. Nothing is replaced when body cannot be
// parsed.
func (p *Page) ReceiveResponse(body string) error {
	window, err := parser.NewParser(strings.NewReader(body), p.config).Start()
	if err != nil {
		log.WithError(err).Warn("failed to parse html")
		return errors.Wrap(err, "page load")
	}

	style, err := css.ParseStyleSheet(dom.StyleContent(window.Document()))
	if err != nil {
		log.WithError(err).Warn("failed to parse style sheet")
		return errors.Wrap(err, "page load")
	}

	view := layout.NewLayoutView(window.Document(), style, layout.WithContentWidth(p.contentWidth))
	items := view.Paint()

	p.window = window
	p.style = style
	p.layoutView = view
	p.displayItems = items
	log.WithFields(logrus.Fields{
		"rules":         len(style.Rules),
		"display_items": len(items),
	}).Debug("page loaded")
	return nil
}

// LinkAt returns the href of the link under (x, y) in document
// coordinates.
func (p *Page) LinkAt(x, y int64) (string, bool) {
	if p.layoutView == nil {
		return "", false
	}
	return p.layoutView.LinkAt(x, y)
}

func (p *Page) DisplayItems() []layout.DisplayItem {
	return p.displayItems
}

func (p *Page) Window() *dom.Window {
	return p.window
}

func (p *Page) StyleSheet() *css.StyleSheet {
	return p.style
}

func (p *Page) LayoutView() *layout.LayoutView {
	return p.layoutView
}

// Browser returns the browser the page belongs to, if any.
func (p *Page) Browser() *Browser {
	return p.browser
}
