package layout

import "unicode/utf8"

// FontMetrics measures text in the units of the target surface.
type FontMetrics interface {
	TextWidth(s string) float64
	LineHeight() float64
}

// Monospace gives every rune the same advance. It is used for tests and for
// plain-text previews.
type Monospace struct {
	CharWidth float64
	Height    float64
}

func (m Monospace) TextWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * m.CharWidth
}

func (m Monospace) LineHeight() float64 {
	return m.Height
}
