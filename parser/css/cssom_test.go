package css

import (
	"testing"

	"github.com/heathj/gobrowse/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStyleSheet(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected []QualifiedRule
	}{
		{"empty", "", nil},
		{"type selector", "p { color: red; }", []QualifiedRule{
			{Selector{TypeSelector, "p"}, []Declaration{{"color", Ident("red")}}},
		}},
		{"id selector", "#id { color: red; }", []QualifiedRule{
			{Selector{IDSelector, "id"}, []Declaration{{"color", Ident("red")}}},
		}},
		{"class selector", ".hidden{display:none;}", []QualifiedRule{
			{Selector{ClassSelector, "hidden"}, []Declaration{{"display", Ident("none")}}},
		}},
		{"multiple rules keep order", "p { content: \"Hey\"; } h1 { font-size: 40; color: blue; }", []QualifiedRule{
			{Selector{TypeSelector, "p"}, []Declaration{{"content", QuotedString("Hey")}}},
			{Selector{TypeSelector, "h1"}, []Declaration{
				{"font-size", Number(40)},
				{"color", Ident("blue")},
			}},
		}},
		{"missing trailing semicolon", "a{color:#00ff00}", []QualifiedRule{
			{Selector{TypeSelector, "a"}, []Declaration{{"color", Hash("#00ff00")}}},
		}},
		{"extra value tokens dropped", "p{margin:1px 2px;color:red}", []QualifiedRule{
			{Selector{TypeSelector, "p"}, []Declaration{
				{"margin", Number(1)},
				{"color", Ident("red")},
			}},
		}},
		{"pseudo class consumed", "a:hover{color:red;}", []QualifiedRule{
			{Selector{TypeSelector, "a"}, []Declaration{{"color", Ident("red")}}},
		}},
		{"unknown selector kept", "*{color:red;}", []QualifiedRule{
			{Selector{UnknownSelector, ""}, []Declaration{{"color", Ident("red")}}},
		}},
		{"broken declarations skipped", "p{color;display:;font-size:1}", []QualifiedRule{
			{Selector{TypeSelector, "p"}, []Declaration{{"font-size", Number(1)}}},
		}},
		{"at rules skipped", "@import 'x.css'; @media screen { p { color: red; } } h2{color:blue;}", []QualifiedRule{
			{Selector{TypeSelector, "h2"}, []Declaration{{"color", Ident("blue")}}},
		}},
		{"rule without block", "p", nil},
		{"unclosed block", "p{color:red", []QualifiedRule{
			{Selector{TypeSelector, "p"}, []Declaration{{"color", Ident("red")}}},
		}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			sheet, err := ParseStyleSheet(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, sheet.Rules)
		})
	}
}

func TestParseStyleSheetError(t *testing.T) {
	sheet, err := ParseStyleSheet("p { color: red; } h1 { color: $blue; }")
	assert.Nil(t, sheet)
	assert.ErrorIs(t, err, parser.ErrUnsupportedInput)
}

func TestStyleSheetString(t *testing.T) {
	sheet, err := ParseStyleSheet(".a{color:red;display:none;} #b{background-color:#ffffff;}")
	require.NoError(t, err)
	assert.Equal(t, ".a { color: red; display: none; }\n#b { background-color: #ffffff; }", sheet.String())
}
