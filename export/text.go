package export

import (
	"fmt"
	"io"
	"strings"

	"tpaint/core"
)

// Encode serializes r row by row into template markers and spaces.
//
// Each cell contributes exactly one space and each row ends in a newline.
// A marker (Reset for transparent cells, the substituted Color otherwise) is
// written only when it differs from the marker in effect for the previous
// cell in reading order. That state carries across row ends and starts out
// as transparent, so leading transparent cells write no marker at all.
func Encode(r core.Raster, t Template) string {
	w, h := r.Size()

	var sb strings.Builder
	sb.Grow(h * (w + 1))

	markers := make(map[core.Color]string)
	current := t.Reset
	transparent := true

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cell := r.Cell(core.Point{X: x, Y: y})

			if cell.IsTransparent() {
				if !transparent {
					sb.WriteString(t.Reset)
					current, transparent = t.Reset, true
				}
			} else {
				marker, ok := markers[cell.Color]
				if !ok {
					marker = t.Substitute(cell.Color)
					markers[cell.Color] = marker
				}
				if transparent || marker != current {
					sb.WriteString(marker)
					current, transparent = marker, false
				}
			}

			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// TextExporter writes the escape-sequence text for one template.
type TextExporter struct {
	template Template
}

// NewTextExporter creates a text exporter for the given template
func NewTextExporter(t Template) *TextExporter {
	return &TextExporter{template: t}
}

// Template returns the template this exporter substitutes into.
func (e *TextExporter) Template() Template {
	return e.template
}

// Export writes the encoded grid
func (e *TextExporter) Export(w io.Writer, r core.Raster) error {
	if r == nil {
		return fmt.Errorf("grid is nil")
	}
	if _, err := io.WriteString(w, Encode(r, e.template)); err != nil {
		return fmt.Errorf("writing %s: %w", e.GetFormatName(), err)
	}
	return nil
}

// GetFileExtension returns the recommended file extension
func (e *TextExporter) GetFileExtension() string {
	return ".txt"
}

// GetFormatName returns the format name
func (e *TextExporter) GetFormatName() string {
	if e.template.Name == "" {
		return "Custom template"
	}
	return e.template.Name
}
