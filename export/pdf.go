package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"tpaint/core"
)

// PDFExporter writes the grid as a single PDF page sized to the canvas.
// One point is one display unit, so a cell is scaleX by scaleY points.
type PDFExporter struct {
	scaleX, scaleY int
}

// NewPDFExporter creates a PDF exporter
func NewPDFExporter(scaleX, scaleY int) *PDFExporter {
	return &PDFExporter{scaleX: scaleX, scaleY: scaleY}
}

// Export draws one filled rectangle per horizontal run of equal color.
// Transparent cells are left blank.
func (e *PDFExporter) Export(w io.Writer, r core.Raster) error {
	width, height := r.Size()
	sx := float64(core.Clamp(e.scaleX, core.MinScale, core.MaxScale))
	sy := float64(core.Clamp(e.scaleY, core.MinScale, core.MaxScale))

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: float64(width) * sx, Ht: float64(height) * sy},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("tpaint", true)
	pdf.AddPage()

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := r.Cell(core.Point{X: x, Y: y})
			start := x
			for x+1 < width && r.Cell(core.Point{X: x + 1, Y: y}) == c {
				x++
			}
			if c.IsTransparent() {
				continue
			}
			pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
			pdf.Rect(float64(start)*sx, float64(y)*sy, float64(x-start+1)*sx, sy, "F")
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

// GetFileExtension returns the file extension for PDF
func (e *PDFExporter) GetFileExtension() string {
	return ".pdf"
}

// GetFormatName returns the format name
func (e *PDFExporter) GetFormatName() string {
	return "PDF"
}
