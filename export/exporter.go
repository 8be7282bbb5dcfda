// Package export turns a committed grid into text or image output.
package export

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"tpaint/core"
)

// Format represents an export format
type Format string

const (
	// FormatANSI exports 24-bit background escape sequences with real ESC bytes
	FormatANSI Format = "ansi"
	// FormatJS exports the same sequences as escaped source text, ready to paste into a JavaScript string
	FormatJS Format = "js"
	// FormatShell exports \e escapes for printf and echo -e
	FormatShell Format = "sh"
	// FormatANSI256 exports the nearest xterm-256 palette index per cell
	FormatANSI256 Format = "ansi256"
	// FormatPNG exports a scaled PNG image
	FormatPNG Format = "png"
	// FormatBMP exports a scaled BMP image
	FormatBMP Format = "bmp"
	// FormatPDF exports a single-page PDF with one filled rectangle per color run
	FormatPDF Format = "pdf"
)

// ErrUnknownFormat is returned for format names that are neither built in
// nor registered as custom templates.
var ErrUnknownFormat = errors.New("unknown export format")

// Exporter interface for different export formats
type Exporter interface {
	// Export writes the grid to w in the target format
	Export(w io.Writer, r core.Raster) error
	// GetFileExtension returns the recommended file extension for this format
	GetFileExtension() string
	// GetFormatName returns a human-readable name for this format
	GetFormatName() string
}

// Options carries settings shared by all exporters.
type Options struct {
	// ScaleX and ScaleY are output units per cell for image formats.
	ScaleX, ScaleY int
	// Templates holds user-defined text dialects, keyed by format name.
	Templates map[string]Template
}

// NewExporter creates an exporter for the specified format
func NewExporter(format Format, opts Options) (Exporter, error) {
	switch format {
	case FormatANSI, FormatJS, FormatShell, FormatANSI256:
		return NewTextExporter(builtinTemplates[format]), nil
	case FormatPNG:
		return NewPNGExporter(opts.ScaleX, opts.ScaleY), nil
	case FormatBMP:
		return NewBMPExporter(opts.ScaleX, opts.ScaleY), nil
	case FormatPDF:
		return NewPDFExporter(opts.ScaleX, opts.ScaleY), nil
	}

	if t, ok := opts.Templates[string(format)]; ok {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("template %q: %w", format, err)
		}
		return NewTextExporter(t), nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}

// ParseFormat converts a string to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ansi", "escape", "term":
		return FormatANSI, nil
	case "js", "javascript":
		return FormatJS, nil
	case "sh", "shell", "bash":
		return FormatShell, nil
	case "ansi256", "256", "xterm":
		return FormatANSI256, nil
	case "png":
		return FormatPNG, nil
	case "bmp":
		return FormatBMP, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, s)
	}
}

// IsText reports whether a format produces the escape-sequence text output
// rather than binary image data. Custom templates are always text.
func IsText(f Format) bool {
	switch f {
	case FormatPNG, FormatBMP, FormatPDF:
		return false
	default:
		return true
	}
}

// GetAvailableFormats returns a list of all built-in export formats
func GetAvailableFormats() []Format {
	return []Format{
		FormatANSI,
		FormatJS,
		FormatShell,
		FormatANSI256,
		FormatPNG,
		FormatBMP,
		FormatPDF,
	}
}

// GetFormatDescriptions returns human-readable descriptions of all formats
func GetFormatDescriptions() map[Format]string {
	return map[Format]string{
		FormatANSI:    "24-bit escape sequences (print directly in a terminal)",
		FormatJS:      "24-bit escape sequences as JavaScript string text",
		FormatShell:   "24-bit escape sequences for printf / echo -e",
		FormatANSI256: "xterm 256-color escape sequences",
		FormatPNG:     "PNG image",
		FormatBMP:     "BMP image",
		FormatPDF:     "PDF document",
	}
}

// FormatNames returns the built-in format names followed by the custom
// template names, sorted, for help and completion text.
func FormatNames(opts Options) []string {
	var names []string
	for _, f := range GetAvailableFormats() {
		names = append(names, string(f))
	}
	var custom []string
	for name := range opts.Templates {
		custom = append(custom, name)
	}
	slices.Sort(custom)
	return append(names, custom...)
}
