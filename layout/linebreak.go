package layout

import "strings"

// collapseWhitespace turns every run of whitespace into one space and trims
// both ends.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func maxCharsPerLine(contentWidth, charWidth int64) int {
	if charWidth <= 0 {
		return 1
	}
	if n := int(contentWidth / charWidth); n > 0 {
		return n
	}
	return 1
}

// splitText breaks text greedily into lines of at most maxChars runes. A
// line ends at the last space that fits, or at maxChars when a word is
// longer than a line.
func splitText(text string, maxChars int) []string {
	var (
		lines []string
		rs    = []rune(text)
	)
	for len(rs) > maxChars {
		i := findIndexForLineBreak(rs, maxChars)
		lines = append(lines, strings.TrimRight(string(rs[:i]), " "))
		rs = []rune(strings.TrimLeft(string(rs[i:]), " "))
	}
	if len(rs) > 0 || len(lines) == 0 {
		lines = append(lines, string(rs))
	}
	return lines
}

func findIndexForLineBreak(rs []rune, maxChars int) int {
	for i := maxChars; i > 0; i-- {
		if rs[i] == ' ' {
			return i
		}
	}
	return maxChars
}
