package layout

import (
	"strconv"
	"strings"
)

// Color is a resolved CSS color. Name is empty for codes that have no
// named equivalent.
type Color struct {
	name string
	code string
}

var namedColors = []Color{
	{"black", "#000000"},
	{"silver", "#c0c0c0"},
	{"gray", "#808080"},
	{"white", "#ffffff"},
	{"maroon", "#800000"},
	{"red", "#ff0000"},
	{"purple", "#800080"},
	{"fuchsia", "#ff00ff"},
	{"green", "#008000"},
	{"lime", "#00ff00"},
	{"olive", "#808000"},
	{"yellow", "#ffff00"},
	{"navy", "#000080"},
	{"blue", "#0000ff"},
	{"teal", "#008080"},
	{"aqua", "#00ffff"},
	{"orange", "#ffa500"},
	{"lightgray", "#d3d3d3"},
}

func White() Color { return Color{"white", "#ffffff"} }
func Black() Color { return Color{"black", "#000000"} }
func Blue() Color  { return Color{"blue", "#0000ff"} }

// ColorFromName looks up a named color, ignoring case.
func ColorFromName(name string) (Color, bool) {
	name = strings.ToLower(name)
	for _, c := range namedColors {
		if c.name == name {
			return c, true
		}
	}
	return Color{}, false
}

// ColorFromCode parses "#rrggbb" or the short "#rgb" form.
func ColorFromCode(code string) (Color, bool) {
	code = strings.ToLower(code)
	if !strings.HasPrefix(code, "#") {
		return Color{}, false
	}
	hex := code[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, false
	}
	if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
		return Color{}, false
	}
	code = "#" + hex
	for _, c := range namedColors {
		if c.code == code {
			return c, true
		}
	}
	return Color{code: code}, true
}

func (c Color) Name() string { return c.name }
func (c Color) Code() string { return c.code }

// Uint32 returns the color as 0xRRGGBB.
func (c Color) Uint32() uint32 {
	v, _ := strconv.ParseUint(strings.TrimPrefix(c.code, "#"), 16, 32)
	return uint32(v)
}

// RGBA implements image/color.Color, so a Color can be handed to a
// drawing context directly.
func (c Color) RGBA() (r, g, b, a uint32) {
	v := c.Uint32()
	r = (v >> 16) & 0xff
	g = (v >> 8) & 0xff
	b = v & 0xff
	return r | r<<8, g | g<<8, b | b<<8, 0xffff
}

func (c Color) String() string {
	if c.name != "" {
		return c.name
	}
	return c.code
}
