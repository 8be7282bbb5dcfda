package editor

import (
	"fmt"
	"strings"

	"tpaint/canvas"
	"tpaint/core"
)

// Field names accepted by SetField.
const (
	FieldWidth       = "width"
	FieldHeight      = "height"
	FieldScaleX      = "scaleX"
	FieldScaleY      = "scaleY"
	FieldBrushWidth  = "brushWidth"
	FieldBrushHeight = "brushHeight"
	FieldTool        = "tool"
)

// Fields lists the names SetField understands, in toolbar order.
var Fields = []string{
	FieldWidth, FieldHeight,
	FieldScaleX, FieldScaleY,
	FieldBrushWidth, FieldBrushHeight,
	FieldTool,
}

// parseLeadingInt reads an optionally signed run of decimal digits after any
// leading whitespace and ignores whatever follows, so "12px" is 12.
// It fails only when there are no digits at all.
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\r\n")

	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	n, digits := 0, 0
	for ; digits < len(s) && s[digits] >= '0' && s[digits] <= '9'; digits++ {
		// Saturate instead of overflowing; everything gets clamped anyway.
		if n < 1<<30 {
			n = n*10 + int(s[digits]-'0')
		}
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

// SetField applies a form-style field change. Numeric values are clamped to
// the field's range. Input with no leading number leaves the field as it was.
// Unknown field names return an error.
func (e *Editor) SetField(name, value string) error {
	if name == FieldTool {
		tool, ok := core.ParseTool(value)
		if !ok {
			e.status = fmt.Sprintf("unknown tool %q", value)
			return nil
		}
		e.SetTool(tool)
		return nil
	}

	n, ok := parseLeadingInt(value)

	cfg := e.config
	var target *int
	switch name {
	case FieldWidth:
		target = &cfg.Width
	case FieldHeight:
		target = &cfg.Height
	case FieldScaleX:
		target = &cfg.ScaleX
	case FieldScaleY:
		target = &cfg.ScaleY
	case FieldBrushWidth:
		target = &cfg.BrushWidth
	case FieldBrushHeight:
		target = &cfg.BrushHeight
	default:
		return fmt.Errorf("unknown field %q", name)
	}

	if !ok {
		e.status = fmt.Sprintf("%s unchanged (%d)", name, *target)
		return nil
	}

	*target = n
	e.applyConfig(cfg.Normalize())
	e.status = fmt.Sprintf("%s = %d", name, e.fieldValue(name))
	return nil
}

// fieldValue reads a numeric field back from the current configuration.
func (e *Editor) fieldValue(name string) int {
	switch name {
	case FieldWidth:
		return e.config.Width
	case FieldHeight:
		return e.config.Height
	case FieldScaleX:
		return e.config.ScaleX
	case FieldScaleY:
		return e.config.ScaleY
	case FieldBrushWidth:
		return e.config.BrushWidth
	case FieldBrushHeight:
		return e.config.BrushHeight
	}
	return 0
}

// applyConfig installs a normalized configuration. Only a change of width or
// height reallocates the grid; scale and brush changes apply from the next
// paint on.
func (e *Editor) applyConfig(cfg core.Config) {
	old := e.config
	e.config = cfg

	if cfg.Width != old.Width || cfg.Height != old.Height {
		e.grid = canvas.Resize(e.grid, cfg.Width, cfg.Height)
		e.overlay = canvas.NewOverlay(e.grid)
		core.Logger().Info("grid resized", "width", cfg.Width, "height", cfg.Height)
	}
}
