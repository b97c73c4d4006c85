// Package layout computes column widths, cell wrapping and page breaks for
// report tables. It knows nothing about PDF; text is measured through
// FontMetrics so the renderer can plug in the metrics of its real fonts.
package layout
