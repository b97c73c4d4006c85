package layout

// WidthPolicy bounds column widths.
type WidthPolicy struct {
	Min float64 `yaml:"min" validate:"gt=0"`
	Max float64 `yaml:"max" validate:"gtefield=Min"`
	// SampleRows limits how many rows are measured; zero measures all.
	SampleRows int `yaml:"sample_rows" validate:"gte=0"`
}

// naturalWidths measures the widest header or sampled cell of each column,
// padded on both sides and capped at the policy maximum.
func naturalWidths(labels []string, records [][]string, policy WidthPolicy, padding float64, cell, header FontMetrics) []float64 {
	widths := make([]float64, len(labels))
	for i, label := range labels {
		widths[i] = header.TextWidth(label)
	}

	sample := records
	if policy.SampleRows > 0 && len(sample) > policy.SampleRows {
		sample = sample[:policy.SampleRows]
	}
	for _, rec := range sample {
		for i := range widths {
			if i < len(rec) {
				if w := cell.TextWidth(rec[i]); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}

	for i := range widths {
		widths[i] += 2 * padding
		if policy.Max > 0 && widths[i] > policy.Max {
			widths[i] = policy.Max
		}
	}
	return widths
}

// distribute scales natural widths to fill total, then raises narrow columns
// to the minimum, taking the deficit from the other columns in proportion to
// how far they sit above it.
func distribute(natural []float64, total float64, min float64) []float64 {
	n := len(natural)
	widths := make([]float64, n)
	if n == 0 {
		return widths
	}

	var sum float64
	for _, w := range natural {
		sum += w
	}
	for i, w := range natural {
		if sum > 0 {
			widths[i] = w / sum * total
		} else {
			widths[i] = total / float64(n)
		}
	}

	if min <= 0 {
		return widths
	}
	// Too many columns for the minimum: share the width evenly instead of
	// drawing past the margin.
	if min*float64(n) >= total {
		for i := range widths {
			widths[i] = total / float64(n)
		}
		return widths
	}

	var deficit, excess float64
	for i, w := range widths {
		if w < min {
			deficit += min - w
			widths[i] = min
		} else {
			excess += w - min
		}
	}
	if deficit == 0 || excess == 0 {
		return widths
	}
	for i, w := range widths {
		if w > min {
			widths[i] = w - (w-min)/excess*deficit
		}
	}
	return widths
}
