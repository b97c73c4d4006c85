package render

import (
	"github.com/go-pdf/fpdf"
)

const (
	fontFamily = "Helvetica"
	ptToMM     = 25.4 / 72
	lineFactor = 1.25
)

// fontMetrics measures text with the core font fpdf will draw it in. The
// text is translated to cp1252 first, exactly as it is when drawn.
type fontMetrics struct {
	pdf   *fpdf.Fpdf
	tr    func(string) string
	style string
	size  float64
}

func newFontMetrics(style string, size float64) *fontMetrics {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetFont(fontFamily, style, size)
	return &fontMetrics{
		pdf:   pdf,
		tr:    pdf.UnicodeTranslatorFromDescriptor(""),
		style: style,
		size:  size,
	}
}

func (m *fontMetrics) TextWidth(s string) float64 {
	return m.pdf.GetStringWidth(m.tr(s))
}

func (m *fontMetrics) LineHeight() float64 {
	return lineHeight(m.size)
}

func lineHeight(size float64) float64 {
	return size * ptToMM * lineFactor
}
