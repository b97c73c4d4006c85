package dataprocessing

import (
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"hmireport/pkg/contracts/domain"
)

const (
	// sourceDateLayout is the US-style date written by the HMI exporter
	sourceDateLayout = "1/2/2006"
	// DisplayDateLayout is the DD/MM/YY form printed in reports
	DisplayDateLayout = "02/01/06"
)

// DateTransform rewrites MM/DD/YYYY as DD/MM/YY. Other values pass through.
func DateTransform(raw string) domain.TransformResult {
	s := strings.TrimSpace(raw)
	t, err := time.Parse(sourceDateLayout, s)
	if err != nil {
		return domain.Unchanged(raw)
	}
	return domain.Transformed(t.Format(DisplayDateLayout))
}

// Round1Transform rounds a number to one decimal place. A decimal comma is
// accepted. Non-numeric values pass through.
func Round1Transform(raw string) domain.TransformResult {
	v, ok := ParseNumber(raw)
	if !ok {
		return domain.Unchanged(raw)
	}
	r := math.Round(v*10) / 10
	if r == 0 {
		r = 0 // drop negative zero
	}
	return domain.Transformed(strconv.FormatFloat(r, 'f', 1, 64))
}

// TitleCaseTransform capitalises each word ("ACTIVE" becomes "Active").
func TitleCaseTransform(raw string) domain.TransformResult {
	s := strings.TrimSpace(raw)
	if s == "" {
		return domain.Unchanged(raw)
	}
	return domain.Transformed(cases.Title(language.Und).String(s))
}

// ParseNumber parses a float written with a decimal point or a single
// decimal comma. NaN and infinities are rejected.
func ParseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
