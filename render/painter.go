package render

import (
	"image"

	"github.com/fogleman/gg"
	"github.com/heathj/gobrowse/layout"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font/basicfont"
)

var log = logrus.WithField("component", "render")

// glyphAscent puts the baseline of the 7x13 face inside a CharHeight row.
const glyphAscent = 13

// Painter replays display items onto an RGBA canvas. Item coordinates are
// document coordinates and get shifted by layout.WindowPadding.
type Painter struct {
	context *gg.Context
}

func NewPainter(width, height int) *Painter {
	dc := gg.NewContext(width, height)
	dc.SetFontFace(basicfont.Face7x13)
	return &Painter{context: dc}
}

// CanvasSize returns a canvas big enough for a layout of the given content
// height, never smaller than the window.
func CanvasSize(view *layout.LayoutView) (int, int) {
	width := int(view.ContentWidth() + 2*layout.WindowPadding)
	height := int(layout.ContentAreaHeight + 2*layout.WindowPadding)
	if root := view.Root(); root != nil {
		if h := int(root.Size().Height + 2*layout.WindowPadding); h > height {
			height = h
		}
	}
	return width, height
}

// Paint clears the canvas and draws items in order.
func (p *Painter) Paint(items []layout.DisplayItem) {
	p.context.SetColor(layout.White())
	p.context.Clear()
	for _, item := range items {
		switch it := item.(type) {
		case layout.RectItem:
			p.drawRect(it)
		case layout.TextItem:
			p.drawText(it)
		}
	}
	log.WithField("items", len(items)).Debug("painted display list")
}

func (p *Painter) drawRect(it layout.RectItem) {
	x := float64(it.Point.X + layout.WindowPadding)
	y := float64(it.Point.Y + layout.WindowPadding)
	p.context.SetColor(it.Style.BackgroundColor())
	p.context.DrawRectangle(x, y, float64(it.Size.Width), float64(it.Size.Height))
	p.context.Fill()
}

// drawText lays glyphs on the fixed CharWidth grid the layout measured
// with, scaled up for larger font sizes.
func (p *Painter) drawText(it layout.TextItem) {
	ratio := float64(it.Style.FontSize().Ratio())
	x := float64(it.Point.X + layout.WindowPadding)
	y := float64(it.Point.Y + layout.WindowPadding)

	p.context.SetColor(it.Style.Color())
	p.context.Push()
	p.context.ScaleAbout(ratio, ratio, x, y)
	n := 0
	for _, r := range it.Text {
		p.context.DrawString(string(r), x+float64(int64(n)*layout.CharWidth), y+glyphAscent)
		n++
	}
	p.context.Pop()

	if it.Style.TextDecoration() == layout.DecorationUnderline {
		underline := y + float64(layout.CharHeight)*ratio
		p.context.SetLineWidth(ratio)
		p.context.DrawLine(x, underline, x+float64(int64(n)*layout.CharWidth)*ratio, underline)
		p.context.Stroke()
	}
}

func (p *Painter) Image() image.Image {
	return p.context.Image()
}

func (p *Painter) SavePNG(path string) error {
	return p.context.SavePNG(path)
}
