package editor

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"os"

	"tpaint/canvas"
	"tpaint/core"
	"tpaint/export"
)

// Editor is one painting session: the committed grid, the preview overlay,
// the stroke in progress and every user-facing setting.
//
// Coordinates passed to the pointer methods are grid cells. Mapping display
// positions to cells is the host's job.
type Editor struct {
	config  core.Config
	grid    *canvas.Grid
	overlay *canvas.Grid
	stroke  Stroke

	tool      core.Tool
	primary   core.Color
	secondary core.Color
	palette   [16]core.Color

	// Export state
	exportOptions export.Options
	defaultFormat export.Format
	exported      string

	// UI state
	mode          Mode
	commandBuffer []rune
	status        string
	quit          bool
}

// NewEditor creates an editor with a transparent grid of the configured size
func NewEditor(cfg core.Config) *Editor {
	cfg = cfg.Normalize()
	grid := canvas.NewGrid(cfg.Width, cfg.Height)

	return &Editor{
		config:        cfg,
		grid:          grid,
		overlay:       canvas.NewOverlay(grid),
		tool:          core.ToolPen,
		primary:       core.Black,
		secondary:     core.White,
		palette:       core.Swatches,
		defaultFormat: export.FormatJS,
		exported:      "Run :export to export your drawing.",
		mode:          ModeNormal,
		commandBuffer: []rune{},
	}
}

// SetPalette replaces the 16 swatches
func (e *Editor) SetPalette(p [16]core.Color) {
	e.palette = p
}

// SetExportOptions sets the custom templates and the format used by the
// quick-export key. An empty format keeps the current default.
func (e *Editor) SetExportOptions(opts export.Options, defaultFormat export.Format) {
	e.exportOptions.Templates = maps.Clone(opts.Templates)
	if defaultFormat != "" {
		e.defaultFormat = defaultFormat
	}
}

// Pointer events

// PointerDown starts a stroke at cell p. The button picks the color: primary,
// secondary, or black for any other button.
func (e *Editor) PointerDown(p core.Point, button core.Button) {
	color := core.Black
	switch button {
	case core.ButtonPrimary:
		color = e.primary
	case core.ButtonSecondary:
		color = e.secondary
	}

	e.stroke = e.stroke.Down(e.grid, p, e.brush(color))
	core.Logger().Debug("stroke started", "at", p, "button", button, "tool", e.tool)
}

// PointerMove redraws the preview at p, then extends the stroke if one is
// in progress.
func (e *Editor) PointerMove(p core.Point) {
	color := e.primary
	if e.stroke.Painting {
		color = e.stroke.Color
	}
	Preview(e.overlay, p, e.brush(color))

	e.stroke = e.stroke.Move(e.grid, p, e.brush(color))
}

// PointerUp ends the stroke
func (e *Editor) PointerUp() {
	e.stroke = e.stroke.End()
}

// PointerLeave ends the stroke and removes the preview
func (e *Editor) PointerLeave() {
	e.stroke = e.stroke.End()
	e.overlay.Clear()
}

// ContextMenu is swallowed so the secondary button can paint.
func (e *Editor) ContextMenu() {}

func (e *Editor) brush(color core.Color) Brush {
	return Brush{Config: e.config, Tool: e.tool, Color: color}
}

// Tool, color and canvas operations

// SetTool makes t the active tool
func (e *Editor) SetTool(t core.Tool) {
	e.tool = t
	e.status = "tool: " + t.String()
}

// SelectSwatch sets the primary or secondary color from swatch i.
// Out-of-range indexes are ignored.
func (e *Editor) SelectSwatch(i int, primary bool) {
	if i < 0 || i >= len(e.palette) {
		return
	}
	e.SetColor(e.palette[i], primary)
}

// SetColor sets the primary or secondary color
func (e *Editor) SetColor(c core.Color, primary bool) {
	if primary {
		e.primary = c
		e.status = "primary: " + c.Hex()
	} else {
		e.secondary = c
		e.status = "secondary: " + c.Hex()
	}
}

// SwapColors exchanges the primary and secondary colors
func (e *Editor) SwapColors() {
	e.primary, e.secondary = e.secondary, e.primary
	e.status = fmt.Sprintf("primary: %s  secondary: %s", e.primary.Hex(), e.secondary.Hex())
}

// ClearCanvas makes every cell transparent
func (e *Editor) ClearCanvas() {
	e.grid.Clear()
	e.overlay.Clear()
	e.stroke = e.stroke.End()
	e.status = "canvas cleared"
}

// Export

// Export runs a text exporter over the committed grid and keeps the result,
// which Exported returns. Image formats need a destination; use ExportTo.
func (e *Editor) Export(format export.Format) error {
	if !export.IsText(format) {
		return fmt.Errorf("%s export needs a file name", format)
	}

	var buf bytes.Buffer
	if err := e.ExportTo(&buf, format); err != nil {
		return err
	}
	e.exported = buf.String()
	e.status = fmt.Sprintf("exported %s (%d bytes)", format, buf.Len())
	return nil
}

// ExportTo writes the committed grid to w in the given format. The overlay
// never takes part in an export.
func (e *Editor) ExportTo(w io.Writer, format export.Format) error {
	opts := e.exportOptions
	opts.ScaleX, opts.ScaleY = e.config.ScaleX, e.config.ScaleY

	exporter, err := export.NewExporter(format, opts)
	if err != nil {
		return err
	}
	if err := exporter.Export(w, e.grid); err != nil {
		return fmt.Errorf("export %s: %w", format, err)
	}

	core.Logger().Info("exported", "format", format, "width", e.config.Width, "height", e.config.Height)
	return nil
}

// ExportFile writes an export to path, creating or truncating it
func (e *Editor) ExportFile(path string, format export.Format) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := e.ExportTo(f, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}
	e.status = fmt.Sprintf("wrote %s to %s", format, path)
	return nil
}

// Accessors

// Config returns the current canvas configuration
func (e *Editor) Config() core.Config { return e.config }

// Grid returns the committed drawing
func (e *Editor) Grid() core.Raster { return e.grid }

// Overlay returns the preview layer
func (e *Editor) Overlay() core.Raster { return e.overlay }

// Stroke returns the stroke in progress
func (e *Editor) Stroke() Stroke { return e.stroke }

// Tool returns the active tool
func (e *Editor) Tool() core.Tool { return e.tool }

// Colors returns the primary and secondary colors
func (e *Editor) Colors() (primary, secondary core.Color) { return e.primary, e.secondary }

// Palette returns the swatches
func (e *Editor) Palette() [16]core.Color { return e.palette }

// Exported returns the last text export
func (e *Editor) Exported() string { return e.exported }

// Mode returns the current mode
func (e *Editor) Mode() Mode { return e.mode }

// Command returns the command line being typed
func (e *Editor) Command() string { return string(e.commandBuffer) }

// Status returns the outcome of the last action
func (e *Editor) Status() string { return e.status }

// SetStatus replaces the status message
func (e *Editor) SetStatus(msg string) { e.status = msg }

// QuitRequested reports whether the user asked to quit
func (e *Editor) QuitRequested() bool { return e.quit }
