package editor

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lucasb-eyer/go-colorful"

	"tpaint/core"
	"tpaint/export"
)

// HandleKey processes keyboard input. It returns true when the editor
// should exit.
func (e *Editor) HandleKey(key rune) bool {
	switch e.mode {
	case ModeNormal:
		return e.handleNormalKey(key)
	case ModeCommand:
		return e.handleCommandKey(key)
	}
	return false
}

// handleNormalKey processes keys in normal mode
func (e *Editor) handleNormalKey(key rune) bool {
	switch key {
	case 'q', 3: // q or Ctrl+C to quit
		e.quit = true
		return true

	case 'p':
		e.SetTool(core.ToolPen)

	case 'r':
		e.SetTool(core.ToolRubber)

	case 'x':
		e.SwapColors()

	case '[':
		e.nudgeBrush(FieldBrushWidth, -1)
	case ']':
		e.nudgeBrush(FieldBrushWidth, 1)
	case '{':
		e.nudgeBrush(FieldBrushHeight, -1)
	case '}':
		e.nudgeBrush(FieldBrushHeight, 1)

	case 'c':
		e.ClearCanvas()

	case 'e': // Quick export in the default format
		if err := e.Export(e.defaultFormat); err != nil {
			e.status = err.Error()
		}

	case ':': // Command mode
		e.SetMode(ModeCommand)
	}

	return false
}

func (e *Editor) nudgeBrush(field string, delta int) {
	// SetField only fails for unknown names.
	_ = e.SetField(field, fmt.Sprint(e.fieldValue(field)+delta))
}

// handleCommandKey processes keys in command mode
func (e *Editor) handleCommandKey(key rune) bool {
	switch key {
	case 27: // ESC - cancel command
		e.SetMode(ModeNormal)

	case 127, 8: // Backspace
		if len(e.commandBuffer) > 0 {
			e.commandBuffer = e.commandBuffer[:len(e.commandBuffer)-1]
		}

	case 13, 10: // Enter - execute command
		cmd := string(e.commandBuffer)
		e.SetMode(ModeNormal)
		e.ExecuteCommand(cmd)
		return e.quit

	default:
		// Add to command buffer
		if unicode.IsPrint(key) {
			e.commandBuffer = append(e.commandBuffer, key)
		}
	}

	return false
}

// ExecuteCommand runs one command line, without the leading colon. The
// outcome, good or bad, ends up in Status.
func (e *Editor) ExecuteCommand(cmd string) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "q", "quit":
		e.quit = true

	case "set":
		if len(parts) != 3 {
			e.status = "usage: set <field> <value>"
			return
		}
		if err := e.SetField(parts[1], parts[2]); err != nil {
			e.status = fmt.Sprintf("%v (fields: %s)", err, strings.Join(Fields, ", "))
		}

	case "tool":
		if len(parts) != 2 {
			e.status = "usage: tool pen|rubber"
			return
		}
		_ = e.SetField(FieldTool, parts[1])

	case "color", "colour":
		e.colorCommand(parts[1:])

	case "swatch":
		e.swatchCommand(parts[1:])

	case "export":
		e.exportCommand(parts[1:])

	case "template":
		e.templateCommand(parts[1:])

	case "clear", "new":
		e.ClearCanvas()

	default:
		e.status = fmt.Sprintf("unknown command: %s", parts[0])
	}
}

func (e *Editor) colorCommand(args []string) {
	if len(args) != 2 {
		e.status = "usage: color primary|secondary #rrggbb"
		return
	}

	var primary bool
	switch args[0] {
	case "primary", "p", "1":
		primary = true
	case "secondary", "s", "2":
		primary = false
	default:
		e.status = fmt.Sprintf("unknown color slot %q", args[0])
		return
	}

	c, err := colorful.Hex(args[1])
	if err != nil {
		e.status = fmt.Sprintf("invalid color %q: %v", args[1], err)
		return
	}
	r, g, b := c.RGB255()
	e.SetColor(core.Color{R: r, G: g, B: b}, primary)
}

func (e *Editor) swatchCommand(args []string) {
	if len(args) < 1 || len(args) > 2 {
		e.status = "usage: swatch <0-15> [secondary]"
		return
	}
	i, ok := parseLeadingInt(args[0])
	if !ok || i < 0 || i >= len(e.palette) {
		e.status = fmt.Sprintf("no swatch %q", args[0])
		return
	}
	e.SelectSwatch(i, len(args) == 1 || args[1] != "secondary")
}

func (e *Editor) exportCommand(args []string) {
	if len(args) == 0 || len(args) > 2 {
		e.status = "usage: export <" + strings.Join(export.FormatNames(e.exportOptions), "|") + "> [file]"
		return
	}

	format, err := export.ParseFormat(args[0])
	if err != nil {
		// Not built in; maybe a custom template name.
		format = export.Format(args[0])
	}

	if len(args) == 2 {
		err = e.ExportFile(args[1], format)
	} else {
		err = e.Export(format)
	}
	if err != nil {
		e.status = err.Error()
	}
}

// templateCommand exports with an ad-hoc template. The optional second word
// is the reset marker; it defaults to the escaped text the js dialect uses.
func (e *Editor) templateCommand(fields []string) {
	if len(fields) == 0 || len(fields) > 2 {
		e.status = "usage: template <color-template> [reset]"
		return
	}

	js, _ := export.BuiltinTemplate(export.FormatJS)
	t := export.Template{Name: "Custom template", Color: fields[0], Reset: js.Reset}
	if len(fields) == 2 {
		t.Reset = fields[1]
	}
	if err := t.Validate(); err != nil {
		e.status = err.Error()
		return
	}

	if e.exportOptions.Templates == nil {
		e.exportOptions.Templates = make(map[string]export.Template)
	}
	e.exportOptions.Templates["custom"] = t

	if err := e.Export("custom"); err != nil {
		e.status = err.Error()
	}
}
