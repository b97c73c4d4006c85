// Package render draws reports as PDF documents with fpdf.
//
// Rendering happens in two passes. Paginate fixes the complete page
// sequence first (chart page, table pages or a single no-data page) so the
// drawing pass can stamp every footer with its final "Page i of N".
// Text is measured with the same core font and cp1252 translation used for
// drawing; CellMetrics and HeaderMetrics expose those measurements to the
// layout engine.
package render
