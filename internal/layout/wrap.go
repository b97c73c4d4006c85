package layout

import "strings"

// Wrap breaks text into lines no wider than width. Words are packed greedily;
// a word wider than the line is split between runes. Empty text yields one
// empty line.
func Wrap(text string, width float64, m FontMetrics) []string {
	var lines []string
	for _, paragraph := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		lines = append(lines, wrapParagraph(paragraph, width, m)...)
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

func wrapParagraph(text string, width float64, m FontMetrics) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	line := ""
	for _, word := range words {
		if line != "" {
			if candidate := line + " " + word; m.TextWidth(candidate) <= width {
				line = candidate
				continue
			}
			lines = append(lines, line)
			line = ""
		}
		if m.TextWidth(word) <= width {
			line = word
			continue
		}
		pieces := breakWord(word, width, m)
		lines = append(lines, pieces[:len(pieces)-1]...)
		line = pieces[len(pieces)-1]
	}
	return append(lines, line)
}

// breakWord splits a word into pieces that fit width. Every piece holds at
// least one rune so a very narrow column still makes progress.
func breakWord(word string, width float64, m FontMetrics) []string {
	var pieces []string
	var current []rune
	for _, r := range word {
		if len(current) > 0 && m.TextWidth(string(append(current, r))) > width {
			pieces = append(pieces, string(current))
			current = current[:0]
		}
		current = append(current, r)
	}
	return append(pieces, string(current))
}
