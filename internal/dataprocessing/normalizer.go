package dataprocessing

import (
	"log/slog"
	"strings"

	apperrors "hmireport/internal/errors"
	"hmireport/pkg/contracts/domain"
)

// ExcludeFunc reports whether a source header must never be matched
type ExcludeFunc func(header string) bool

// QualityFlagColumn matches the QF companion columns of logged values
func QualityFlagColumn(header string) bool {
	h := strings.ToUpper(strings.TrimSpace(header))
	return h == "QF" || strings.HasSuffix(h, "_QF")
}

// NormalizeResult is the normalized table plus what was recovered on the way
type NormalizeResult struct {
	Table    domain.NormalizedTable
	Warnings []apperrors.Warning
	// Unparsed counts per logical column the non-empty cells a transform
	// left verbatim.
	Unparsed map[string]int
}

// Normalizer maps raw headers onto logical columns and applies transforms
type Normalizer struct {
	logger *slog.Logger
}

// NewNormalizer creates a normalizer
func NewNormalizer(logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{logger: logger}
}

// Normalize resolves specs against the raw header in order. A required
// column that cannot be found is recorded as missing; the rest of the table
// is still produced.
func (n *Normalizer) Normalize(raw domain.RawTable, specs []domain.ColumnSpec, exclude ExcludeFunc) NormalizeResult {
	claimed := make([]bool, len(raw.Header))
	if exclude != nil {
		for i, h := range raw.Header {
			if exclude(h) {
				claimed[i] = true
			}
		}
	}

	type binding struct {
		spec  domain.ColumnSpec
		index int
	}
	var bound []binding
	result := NormalizeResult{Unparsed: make(map[string]int)}

	for _, spec := range specs {
		idx := matchColumn(raw.Header, claimed, spec)
		if idx < 0 {
			if spec.Required {
				result.Table.Missing = append(result.Table.Missing, spec.Name)
				result.Warnings = append(result.Warnings, apperrors.MissingColumnWarning(spec.Name))
				n.logger.Warn("Required column missing",
					slog.String("source", raw.Source),
					slog.String("column", spec.Name),
					slog.String("kind", string(apperrors.ErrTypeMissingColumn)))
			}
			continue
		}
		claimed[idx] = true
		bound = append(bound, binding{spec: spec, index: idx})
		result.Table.Columns = append(result.Table.Columns, domain.Column{
			Name:   spec.Name,
			Label:  spec.DisplayLabel(),
			Source: raw.Header[idx],
		})
	}

	result.Table.Rows = make([]domain.Row, 0, len(raw.Rows))
	for _, rawRow := range raw.Rows {
		row := make(domain.Row, len(bound))
		for _, b := range bound {
			value := ""
			if b.index < len(rawRow) {
				value = rawRow[b.index]
			}
			if b.spec.Transform != nil && strings.TrimSpace(value) != "" {
				res := b.spec.Transform(value)
				if !res.Changed {
					result.Unparsed[b.spec.Name]++
				}
				value = res.Value
			}
			row[b.spec.Name] = value
		}
		result.Table.Rows = append(result.Table.Rows, row)
	}

	for _, b := range bound {
		if c := result.Unparsed[b.spec.Name]; c > 0 {
			n.logger.Debug("Values kept verbatim",
				slog.String("column", b.spec.Name),
				slog.Int("count", c),
				slog.String("kind", string(apperrors.ErrTypeTransformParse)))
		}
	}

	return result
}

// matchColumn finds the header for spec. Exact case-insensitive matches on
// the name and aliases are tried first, then a looser comparison that
// ignores spaces, underscores, dots and dashes.
func matchColumn(header []string, claimed []bool, spec domain.ColumnSpec) int {
	names := append([]string{spec.Name}, spec.Aliases...)
	for _, name := range names {
		for i, h := range header {
			if !claimed[i] && strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
	}
	for _, name := range names {
		want := canonicalName(name)
		for i, h := range header {
			if !claimed[i] && canonicalName(h) == want {
				return i
			}
		}
	}
	return -1
}

func canonicalName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch r {
		case ' ', '_', '.', '-', '\t':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
