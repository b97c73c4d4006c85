package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // logo formats
	_ "image/jpeg" // logo formats
	_ "image/png"  // logo formats
	"io"
	"log/slog"
	"os"

	"github.com/go-pdf/fpdf"

	"hmireport/internal/config"
	apperrors "hmireport/internal/errors"
	"hmireport/internal/layout"
	"hmireport/pkg/contracts"
	"hmireport/pkg/contracts/domain"
)

const (
	headerGap       = 4.0
	footerHeight    = 8.0
	introGap        = 3.0
	subtitleSize    = 10.0
	noteSize        = 9.0
	footerSize      = 8.0
	noDataSize      = 12.0
	logoName        = "logo"
	chartName       = "chart"
	chartWidthPx    = 1600
	chartHeightPx   = 1000
	noDataMessage   = "No data available"
	maxLogoFraction = 1.0 / 3
)

var (
	headerFill = [3]int{210, 210, 210}
	shadeFill  = [3]int{235, 235, 235}
	noteColor  = [3]int{150, 30, 30}
)

// ChartPainter turns chart series into a PNG image.
type ChartPainter interface {
	PNG(series []domain.ChartSeries, title string, width, height int) ([]byte, error)
}

// Settings holds page geometry and font sizes, in millimetres and points.
type Settings struct {
	PageSize       string
	Margin         float64
	LogoHeight     float64
	FontSize       float64
	HeaderFontSize float64
	TitleFontSize  float64
	CellPadding    float64
	// Compress deflates page streams. Tests turn it off to search the output.
	Compress bool
}

// SettingsFromConfig maps the report configuration onto renderer settings.
func SettingsFromConfig(cfg config.ReportConfig) Settings {
	return Settings{
		PageSize:       cfg.PageSize,
		Margin:         cfg.MarginMM,
		LogoHeight:     cfg.LogoHeightMM,
		FontSize:       cfg.FontSize,
		HeaderFontSize: cfg.HeaderFontSize,
		TitleFontSize:  cfg.TitleFontSize,
		CellPadding:    cfg.CellPaddingMM,
		Compress:       true,
	}
}

// Output describes a rendered document.
type Output struct {
	Pages    int
	Warnings []apperrors.Warning
}

// Renderer draws reports as paged PDF documents. Each document is produced
// in two passes: Paginate fixes the page sequence, then every page is drawn
// with its final "Page i of N" footer.
type Renderer struct {
	settings Settings
	painter  ChartPainter
	logger   *slog.Logger
	cell     *fontMetrics
	header   *fontMetrics
}

// NewRenderer creates a renderer. painter may be nil when no report draws
// charts.
func NewRenderer(settings Settings, painter ChartPainter, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		settings: settings,
		painter:  painter,
		logger:   logger,
		cell:     newFontMetrics("", settings.FontSize),
		header:   newFontMetrics("B", settings.HeaderFontSize),
	}
}

// CellMetrics measures body cells.
func (r *Renderer) CellMetrics() layout.FontMetrics { return r.cell }

// HeaderMetrics measures header cells.
func (r *Renderer) HeaderMetrics() layout.FontMetrics { return r.header }

// frame is the fixed vertical structure shared by every page
type frame struct {
	pageW, pageH float64
	contentW     float64
	bandH        float64
	bodyTop      float64
	bodyBottom   float64
}

func (r *Renderer) frame(landscape bool) frame {
	pdf := fpdf.New(orientation(landscape), "mm", r.settings.PageSize, "")
	w, h := pdf.GetPageSize()
	m := r.settings.Margin
	band := r.settings.LogoHeight
	if t := lineHeight(r.settings.TitleFontSize); t > band {
		band = t
	}
	return frame{
		pageW:      w,
		pageH:      h,
		contentW:   w - 2*m,
		bandH:      band,
		bodyTop:    m + band + headerGap,
		bodyBottom: h - m - footerHeight,
	}
}

// introHeight is the space the subtitle and note take on the first page
func introHeight(report domain.Report) float64 {
	var h float64
	if report.Subtitle != "" {
		h += lineHeight(subtitleSize)
	}
	if report.Note != "" {
		h += lineHeight(noteSize)
	}
	if h > 0 {
		h += introGap
	}
	return h
}

// TableGeometry returns the table area for the report. The first-page
// reserve applies only when the table opens the document.
func (r *Renderer) TableGeometry(report domain.Report) layout.Geometry {
	f := r.frame(report.Landscape)
	g := layout.Geometry{
		ContentWidth: f.contentW,
		BodyHeight:   f.bodyBottom - f.bodyTop,
		CellPadding:  r.settings.CellPadding,
	}
	if !(report.HasChart() && report.Placement != domain.ChartAfterTable) {
		g.FirstPageReserve = introHeight(report)
	}
	return g
}

type placedImage struct {
	name      string
	imageType string
	w, h      float64
}

// Render writes the report as a PDF to w. An unusable logo or chart is
// reported as a warning and the document is produced without it.
func (r *Renderer) Render(report domain.Report, w io.Writer) (Output, error) {
	var out Output
	f := r.frame(report.Landscape)

	pdf := fpdf.New(orientation(report.Landscape), "mm", r.settings.PageSize, "")
	pdf.SetMargins(r.settings.Margin, r.settings.Margin, r.settings.Margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(r.settings.Compress)
	pdf.SetCellMargin(0)
	pdf.SetTitle(report.Title, true)
	pdf.SetCreator(contracts.ProductName+" "+contracts.Version, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	var logo *placedImage
	if report.LogoPath != "" {
		img, err := r.registerLogo(pdf, report.LogoPath, f)
		if err != nil {
			out.Warnings = append(out.Warnings, r.assetWarning(report.LogoPath, err))
		} else {
			logo = img
		}
	}

	var chart *placedImage
	if report.HasChart() {
		img, err := r.registerChart(pdf, report)
		if err != nil {
			out.Warnings = append(out.Warnings, r.assetWarning(chartName, err))
			report.Chart = nil
			report.ChartImage = nil
			if report.Layout != nil {
				// the table may now open the document and needs the intro reserve
				relaid := layout.Repaginate(*report.Layout, r.TableGeometry(report))
				report.Layout = &relaid
			}
		} else {
			chart = img
		}
	}

	plan := Paginate(report)
	for _, page := range plan.Pages {
		pdf.AddPage()
		r.drawHeader(pdf, tr, report.Title, logo, f)
		y := f.bodyTop
		if page.Number == 1 {
			y = r.drawIntro(pdf, tr, report, y, f)
		}
		switch page.Kind {
		case PageTable:
			r.drawTable(pdf, tr, report.Layout, page.Rows, y, f)
		case PageChart:
			r.drawChart(pdf, chart, y, f)
		case PageNoData:
			pdf.SetFont(fontFamily, "B", noDataSize)
			pdf.SetTextColor(0, 0, 0)
			pdf.SetXY(r.settings.Margin, (y+f.bodyBottom)/2)
			pdf.CellFormat(f.contentW, lineHeight(noDataSize), noDataMessage, "", 0, "C", false, 0, "")
		}
		r.drawFooter(pdf, page.Number, plan.Total(), f)
	}

	if err := pdf.Output(w); err != nil {
		return out, apperrors.NewStorageError("failed to write PDF", err)
	}
	out.Pages = plan.Total()

	r.logger.Debug("Document rendered",
		slog.String("title", report.Title),
		slog.Int("pages", out.Pages),
		slog.Int("warnings", len(out.Warnings)))
	return out, nil
}

func (r *Renderer) assetWarning(path string, err error) apperrors.Warning {
	w := apperrors.AssetMissingWarning(path, err)
	r.logger.Warn("Asset not used",
		slog.String("asset", path),
		slog.String("error", err.Error()),
		slog.String("kind", string(w.Kind)))
	return w
}

// registerLogo validates the image before handing it to fpdf so a corrupt
// file never poisons the document.
func (r *Renderer) registerLogo(pdf *fpdf.Fpdf, path string, f frame) (*placedImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, fmt.Errorf("empty image")
	}
	imageType, err := fpdfImageType(format)
	if err != nil {
		return nil, err
	}

	pdf.RegisterImageOptionsReader(logoName, fpdf.ImageOptions{ImageType: imageType}, bytes.NewReader(data))
	if pdf.Err() {
		err := pdf.Error()
		pdf.ClearError()
		return nil, err
	}

	h := r.settings.LogoHeight
	w := h * float64(cfg.Width) / float64(cfg.Height)
	if limit := f.contentW * maxLogoFraction; w > limit {
		w = limit
		h = w * float64(cfg.Height) / float64(cfg.Width)
	}
	return &placedImage{name: logoName, imageType: imageType, w: w, h: h}, nil
}

// PaintChart draws the series as a PNG and checks that the image decodes.
func (r *Renderer) PaintChart(series []domain.ChartSeries, title string) ([]byte, error) {
	if r.painter == nil {
		return nil, fmt.Errorf("no chart painter configured")
	}
	data, err := r.painter.PNG(series, title, chartWidthPx, chartHeightPx)
	if err != nil {
		return nil, err
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode chart: %w", err)
	}
	if format != "png" || cfg.Width == 0 || cfg.Height == 0 {
		return nil, fmt.Errorf("chart is not a usable PNG")
	}
	return data, nil
}

func (r *Renderer) registerChart(pdf *fpdf.Fpdf, report domain.Report) (*placedImage, error) {
	data := report.ChartImage
	if data == nil {
		var err error
		if data, err = r.PaintChart(report.Chart, report.ChartName); err != nil {
			return nil, err
		}
	}
	pdf.RegisterImageOptionsReader(chartName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(data))
	if pdf.Err() {
		err := pdf.Error()
		pdf.ClearError()
		return nil, err
	}
	return &placedImage{name: chartName, imageType: "PNG", w: chartWidthPx, h: chartHeightPx}, nil
}

func (r *Renderer) drawHeader(pdf *fpdf.Fpdf, tr func(string) string, title string, logo *placedImage, f frame) {
	m := r.settings.Margin
	x, w := m, f.contentW
	if logo != nil {
		pdf.ImageOptions(logo.name, m, m+(f.bandH-logo.h)/2, logo.w, logo.h, false,
			fpdf.ImageOptions{ImageType: logo.imageType}, 0, "")
		x += logo.w + headerGap
		w -= 2 * (logo.w + headerGap) // keep the title centred on the page
		if w <= 0 {
			x, w = m+logo.w+headerGap, f.contentW-logo.w-headerGap
		}
	}
	pdf.SetFont(fontFamily, "B", r.settings.TitleFontSize)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(x, m)
	pdf.CellFormat(w, f.bandH, tr(title), "", 0, "C", false, 0, "")
}

func (r *Renderer) drawIntro(pdf *fpdf.Fpdf, tr func(string) string, report domain.Report, y float64, f frame) float64 {
	m := r.settings.Margin
	if report.Subtitle != "" {
		pdf.SetFont(fontFamily, "I", subtitleSize)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetXY(m, y)
		pdf.CellFormat(f.contentW, lineHeight(subtitleSize), tr(report.Subtitle), "", 0, "C", false, 0, "")
		y += lineHeight(subtitleSize)
	}
	if report.Note != "" {
		pdf.SetFont(fontFamily, "I", noteSize)
		pdf.SetTextColor(noteColor[0], noteColor[1], noteColor[2])
		pdf.SetXY(m, y)
		pdf.CellFormat(f.contentW, lineHeight(noteSize), tr(report.Note), "", 0, "L", false, 0, "")
		y += lineHeight(noteSize)
	}
	if report.Subtitle != "" || report.Note != "" {
		y += introGap
	}
	return y
}

func (r *Renderer) drawTable(pdf *fpdf.Fpdf, tr func(string) string, plan *domain.LayoutPlan, slice domain.PageSlice, y float64, f frame) {
	x := r.settings.Margin
	if total := plan.TotalWidth(); total < f.contentW {
		x += (f.contentW - total) / 2
	}
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont(fontFamily, "B", r.settings.HeaderFontSize)
	y = drawRow(pdf, tr, plan, plan.Header, plan.HeaderLine, x, y, &headerFill)

	pdf.SetFont(fontFamily, "", r.settings.FontSize)
	for _, row := range plan.Rows[slice.Start:slice.End] {
		var fill *[3]int
		if row.Shaded() {
			fill = &shadeFill
		}
		y = drawRow(pdf, tr, plan, row, plan.LineHeight, x, y, fill)
	}
}

// drawRow draws one table row with its grid and returns the y below it
func drawRow(pdf *fpdf.Fpdf, tr func(string) string, plan *domain.LayoutPlan, row domain.PlannedRow, lh, x, y float64, fill *[3]int) float64 {
	style := "D"
	if fill != nil {
		pdf.SetFillColor(fill[0], fill[1], fill[2])
		style = "FD"
	}
	pad := plan.CellPadding
	for i, col := range plan.Columns {
		pdf.Rect(x, y, col.Width, row.Height, style)
		for k, line := range row.Cells[i] {
			pdf.SetXY(x+pad, y+pad+float64(k)*lh)
			pdf.CellFormat(col.Width-2*pad, lh, tr(line), "", 0, "L", false, 0, "")
		}
		x += col.Width
	}
	return y + row.Height
}

func (r *Renderer) drawChart(pdf *fpdf.Fpdf, chart *placedImage, y float64, f frame) {
	if chart == nil {
		return
	}
	ratio := chart.h / chart.w
	w := f.contentW
	h := w * ratio
	if avail := f.bodyBottom - y; h > avail {
		h = avail
		w = h / ratio
	}
	x := r.settings.Margin + (f.contentW-w)/2
	pdf.ImageOptions(chart.name, x, y, w, h, false, fpdf.ImageOptions{ImageType: chart.imageType}, 0, "")
}

func (r *Renderer) drawFooter(pdf *fpdf.Fpdf, n, total int, f frame) {
	pdf.SetFont(fontFamily, "", footerSize)
	pdf.SetTextColor(80, 80, 80)
	pdf.SetXY(r.settings.Margin, f.pageH-r.settings.Margin-lineHeight(footerSize))
	pdf.CellFormat(f.contentW, lineHeight(footerSize), fmt.Sprintf("Page %d of %d", n, total), "", 0, "C", false, 0, "")
}

func orientation(landscape bool) string {
	if landscape {
		return "L"
	}
	return "P"
}

func fpdfImageType(format string) (string, error) {
	switch format {
	case "png":
		return "PNG", nil
	case "jpeg":
		return "JPG", nil
	case "gif":
		return "GIF", nil
	default:
		return "", fmt.Errorf("unsupported image format %q", format)
	}
}
