package dataprocessing

import (
	"encoding/csv"
	"strings"
)

// candidateDelimiters in tie-break order
var candidateDelimiters = []rune{'\t', ',', ';'}

// DelimiterName returns a printable name for a delimiter
func DelimiterName(d rune) string {
	switch d {
	case '\t':
		return "tab"
	case ',':
		return "comma"
	case ';':
		return "semicolon"
	case 0:
		return "none"
	default:
		return string(d)
	}
}

// nonEmptyLines splits text into lines, dropping blank ones
func nonEmptyLines(text string, max int) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
		if max > 0 && len(lines) >= max {
			break
		}
	}
	return lines
}

// countFields counts the fields of one line, honouring quotes
func countFields(line string, delim rune) int {
	r := csv.NewReader(strings.NewReader(line))
	r.Comma = delim
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	rec, err := r.Read()
	if err != nil {
		return strings.Count(line, string(delim)) + 1
	}
	return len(rec)
}

// modeOf returns the most frequent value and its frequency. Ties go to the
// larger value.
func modeOf(values []int) (int, int) {
	freq := make(map[int]int, len(values))
	best, bestFreq := 0, 0
	for _, v := range values {
		freq[v]++
		f := freq[v]
		if f > bestFreq || (f == bestFreq && v > best) {
			best, bestFreq = v, f
		}
	}
	return best, bestFreq
}

// detectDelimiter picks the candidate whose multi-field lines agree most
// often on a field count. Preamble lines rarely split, so they do not vote.
func detectDelimiter(lines []string) rune {
	best, bestFreq := ',', 0
	for _, d := range candidateDelimiters {
		var counts []int
		for _, line := range lines {
			if n := countFields(line, d); n > 1 {
				counts = append(counts, n)
			}
		}
		if _, freq := modeOf(counts); freq > bestFreq {
			best, bestFreq = d, freq
		}
	}
	return best
}

// findHeader returns the index of the header record. A multi-field record
// whose first cell starts with hint wins outright; otherwise the first record
// whose width equals the most common width of the multi-field records.
func findHeader(records [][]string, hint string, scan int) int {
	if hint != "" {
		for i, rec := range records {
			if scan > 0 && i >= scan {
				break
			}
			if len(rec) > 1 && strings.HasPrefix(strings.ToLower(cleanCell(rec[0])), strings.ToLower(hint)) {
				return i
			}
		}
	}

	var widths []int
	for _, rec := range records {
		if w := recordWidth(rec); w > 1 {
			widths = append(widths, w)
		}
	}
	if len(widths) == 0 {
		return 0
	}
	mode, _ := modeOf(widths)
	for i, rec := range records {
		if recordWidth(rec) == mode {
			return i
		}
	}
	return 0
}

// recordWidth ignores trailing empty cells
func recordWidth(rec []string) int {
	n := len(rec)
	for n > 0 && strings.TrimSpace(rec[n-1]) == "" {
		n--
	}
	return n
}
