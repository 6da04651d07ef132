package report

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"github.com/user/slice_analyzer_go/internal/analysis"
)

const (
	inchToMm               = 25.4
	pdfPageWidthLandscape  = 11 * inchToMm // Letter landscape
	pdfPageHeightLandscape = 8.5 * inchToMm
	pdfMargin              = 0.5 * inchToMm
	pdfContentWidth        = pdfPageWidthLandscape - (2 * pdfMargin)
)

// pdfStyler holds reusable styling and the flowing Y position.
type pdfStyler struct {
	pdf         *gofpdf.Fpdf
	styles      map[string]func()
	lineHeight  float64
	currentY    float64
	pageHeight  float64
	contentTopY float64
}

func newPDFStyler(pdf *gofpdf.Fpdf) *pdfStyler {
	s := &pdfStyler{
		pdf:         pdf,
		styles:      make(map[string]func()),
		lineHeight:  6, // mm
		pageHeight:  pdfPageHeightLandscape - pdfMargin,
		contentTopY: pdfMargin,
	}
	s.currentY = s.contentTopY
	s.defineStyles()
	return s
}

func (s *pdfStyler) defineStyles() {
	s.styles["h1"] = func() {
		s.pdf.SetFont("Arial", "B", 16)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["h2"] = func() {
		s.pdf.SetFont("Arial", "B", 14)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["normal"] = func() {
		s.pdf.SetFont("Arial", "", 10)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableHeader"] = func() {
		s.pdf.SetFont("Arial", "B", 9)
		s.pdf.SetFillColor(200, 200, 200)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableCell"] = func() {
		s.pdf.SetFont("Arial", "", 9)
		s.pdf.SetTextColor(50, 50, 50)
	}
	s.styles["tableCellRed"] = func() {
		s.pdf.SetFont("Arial", "B", 9)
		s.pdf.SetTextColor(200, 0, 0)
	}
}

func (s *pdfStyler) applyStyle(styleName string) {
	if fn, ok := s.styles[styleName]; ok {
		fn()
		return
	}
	s.styles["normal"]()
}

func (s *pdfStyler) newPage() {
	s.pdf.AddPage()
	s.currentY = s.contentTopY
}

func (s *pdfStyler) checkAddPage(neededHeight float64) {
	if s.currentY+neededHeight > s.pageHeight {
		s.newPage()
	}
}

func (s *pdfStyler) writeParagraph(text string, styleName string, align string) {
	s.applyStyle(styleName)
	s.checkAddPage(s.lineHeight)
	s.pdf.SetXY(pdfMargin, s.currentY)
	s.pdf.MultiCell(pdfContentWidth, s.lineHeight, text, "", align, false)
	s.currentY = s.pdf.GetY() + 1
}

func (s *pdfStyler) addSpacer(height float64) {
	s.checkAddPage(height)
	s.currentY += height
}

// writeTable draws a bordered table; column widths are fractions of the
// content width. highlight, when set, picks the red cell style per row.
func (s *pdfStyler) writeTable(headers []string, widthsRel []float64, rows [][]string, highlight func(row int) bool) {
	widths := make([]float64, len(widthsRel))
	for i, rel := range widthsRel {
		widths[i] = rel * pdfContentWidth
	}

	header := func() {
		x := pdfMargin
		s.applyStyle("tableHeader")
		for i, h := range headers {
			s.pdf.SetXY(x, s.currentY)
			s.pdf.CellFormat(widths[i], s.lineHeight, h, "1", 0, "C", true, 0, "")
			x += widths[i]
		}
		s.currentY += s.lineHeight
	}

	s.checkAddPage(2 * s.lineHeight)
	header()
	for r, row := range rows {
		if s.currentY+s.lineHeight > s.pageHeight {
			s.newPage()
			header()
		}
		style := "tableCell"
		if highlight != nil && highlight(r) {
			style = "tableCellRed"
		}
		s.applyStyle(style)
		x := pdfMargin
		for i, cell := range row {
			s.pdf.SetXY(x, s.currentY)
			s.pdf.CellFormat(widths[i], s.lineHeight, cell, "1", 0, "C", false, 0, "")
			x += widths[i]
		}
		s.currentY += s.lineHeight
	}
}

func (s *pdfStyler) addImage(imageBytes []byte, imageName string, width, height float64, caption string) {
	s.pdf.RegisterImageOptionsReader(imageName, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(imageBytes))
	if width > pdfContentWidth {
		height *= pdfContentWidth / width
		width = pdfContentWidth
	}
	captionHeight := 0.0
	if caption != "" {
		captionHeight = s.lineHeight + 1
	}
	s.checkAddPage(height + captionHeight)

	s.pdf.ImageOptions(imageName, pdfMargin+(pdfContentWidth-width)/2, s.currentY, width, height, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	s.currentY += height
	if caption != "" {
		s.addSpacer(1)
		s.writeParagraph(caption, "normal", "C")
	}
	s.addSpacer(2)
}

// Report image keys understood by BuildSliceReport.
const (
	ImageSlice   = "slice"
	ImageHeatmap = "heatmap"
)

// BuildSliceReport writes a PDF summarising res: the readout, every point,
// every dropped file and any plots supplied in images.
func BuildSliceReport(path string, res *analysis.SliceResult, images map[string][]byte) error {
	if res == nil {
		return ErrEmptySlice
	}

	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.AddPage()

	styler := newPDFStyler(pdf)
	styler.writeParagraph(fmt.Sprintf("Slice Report: %.2f nm (point %d)", res.Reference, res.Index), "h1", "C")
	styler.addSpacer(3)
	styler.writeParagraph(fmt.Sprintf("Reference file: %s", filepath.Base(res.ReferencePath)), "normal", "L")
	styler.writeParagraph(fmt.Sprintf("Points: %d    Dropped files: %d", res.Len(), len(res.Dropped)), "normal", "L")
	styler.addSpacer(4)

	if imgBytes, ok := images[ImageSlice]; ok && len(imgBytes) > 0 {
		w := pdfContentWidth * 0.8
		styler.addImage(imgBytes, ImageSlice, w, w*(5.0/8.0), "Value versus photon energy")
	}

	styler.writeParagraph("Slice Points", "h2", "L")
	if res.Empty() {
		styler.writeParagraph("No files matched the pattern.", "normal", "L")
	} else {
		rows := make([][]string, 0, res.Len())
		for i, p := range res.Points {
			rows = append(rows, []string{
				fmt.Sprintf("%d", i+1),
				p.Name(),
				fmt.Sprintf("%g", p.Parameter),
				fmt.Sprintf("%.4f", p.Energy),
				fmt.Sprintf("%.6g", p.Value),
			})
		}
		styler.writeTable(
			[]string{"#", "File", "Parameter", "Energy (eV)", "Value"},
			[]float64{0.06, 0.44, 0.15, 0.17, 0.18},
			rows, nil,
		)
	}
	styler.addSpacer(5)

	if len(res.Dropped) > 0 {
		styler.writeParagraph("Dropped Files", "h2", "L")
		rows := make([][]string, 0, len(res.Dropped))
		for _, err := range res.Dropped {
			name := "-"
			var divErr *analysis.DivisionByZeroError
			if errors.As(err, &divErr) {
				name = filepath.Base(divErr.Path)
			}
			rows = append(rows, []string{name, err.Error()})
		}
		styler.writeTable([]string{"File", "Reason"}, []float64{0.3, 0.7}, rows, func(int) bool { return true })
		styler.addSpacer(5)
	}

	if imgBytes, ok := images[ImageHeatmap]; ok && len(imgBytes) > 0 {
		styler.newPage()
		styler.writeParagraph("Series Overview", "h2", "L")
		w := pdfContentWidth * 0.9
		styler.addImage(imgBytes, ImageHeatmap, w, w*0.5, "Value column of every matched file; dashed line marks the slice row")
	}

	return pdf.OutputFileAndClose(path)
}
