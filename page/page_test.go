package page

import (
	"testing"

	"github.com/heathj/gobrowse/layout"
	"github.com/heathj/gobrowse/parser"
	"github.com/heathj/gobrowse/parser/dom"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const linkPage = `<html><head><style>p{color:red;}</style></head>` +
	`<body><p>intro</p><a href="next.html">next</a></body></html>`

func TestReceiveResponse(t *testing.T) {
	p := NewPage()
	require.NoError(t, p.ReceiveResponse(linkPage))

	require.NotNil(t, p.Window())
	assert.NotNil(t, dom.FindElement(p.Window().Document(), dom.Body))
	require.Len(t, p.StyleSheet().Rules, 1)
	assert.Equal(t, "p { color: red; }", p.StyleSheet().String())
	require.NotNil(t, p.LayoutView())
	assert.Len(t, p.DisplayItems(), 4)

	href, ok := p.LinkAt(4, 25)
	assert.True(t, ok)
	assert.Equal(t, "next.html", href)

	_, ok = p.LinkAt(4, 5)
	assert.False(t, ok)
}

func TestReceiveResponseReplacesState(t *testing.T) {
	p := NewPage()
	require.NoError(t, p.ReceiveResponse(linkPage))
	first := p.Window()

	require.NoError(t, p.ReceiveResponse("<html><head></head><body>plain</body></html>"))
	assert.NotSame(t, first, p.Window())
	assert.Empty(t, p.StyleSheet().Rules)
	assert.Len(t, p.DisplayItems(), 2)
	_, ok := p.LinkAt(4, 25)
	assert.False(t, ok)
}

func TestReceiveResponseKeepsStateOnError(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		source string
	}{
		{"html", "<html><body>a\x00b</body></html>", "html"},
		{"css", "<html><head><style>p{color:red;} ^</style></head><body></body></html>", "css"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPage()
			require.NoError(t, p.ReceiveResponse(linkPage))
			window, items := p.Window(), p.DisplayItems()

			err := p.ReceiveResponse(tt.body)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "page load")
			assert.True(t, errors.Is(err, parser.ErrUnsupportedInput))
			var uie *parser.UnsupportedInputError
			require.True(t, errors.As(err, &uie))
			assert.Equal(t, tt.source, uie.Source)

			assert.Same(t, window, p.Window())
			assert.Equal(t, items, p.DisplayItems())
			href, ok := p.LinkAt(4, 25)
			assert.True(t, ok)
			assert.Equal(t, "next.html", href)
		})
	}
}

func TestPageBeforeFirstResponse(t *testing.T) {
	p := NewPage()
	assert.Nil(t, p.Window())
	assert.Nil(t, p.LayoutView())
	assert.Empty(t, p.DisplayItems())
	_, ok := p.LinkAt(0, 0)
	assert.False(t, ok)
}

func TestPageContentWidth(t *testing.T) {
	p := NewPage(WithContentWidth(80))
	require.NoError(t, p.ReceiveResponse("<html><head></head><body><p>hello world again</p></body></html>"))
	assert.Equal(t, int64(80), p.LayoutView().ContentWidth())

	var texts []string
	for _, item := range p.DisplayItems() {
		if ti, ok := item.(layout.TextItem); ok {
			texts = append(texts, ti.Text)
		}
	}
	assert.Equal(t, []string{"hello", "world", "again"}, texts)
}

func TestBrowser(t *testing.T) {
	b := NewBrowser()
	require.Len(t, b.Pages(), 1)
	first := b.CurrentPage()
	assert.Same(t, b, first.Browser())

	second := NewPage()
	b.AddPage(second)
	assert.Same(t, second, b.CurrentPage())
	assert.Same(t, b, second.Browser())

	assert.True(t, b.SetActivePage(0))
	assert.Same(t, first, b.CurrentPage())
	assert.False(t, b.SetActivePage(2))
	assert.Same(t, first, b.CurrentPage())
}
