// Package validation checks exported text against the shape a grid export
// must have.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"tpaint/export"
)

// ExportValidator validates that a text export has one row per grid row,
// one space per cell, and nothing between the spaces except the template's
// markers.
type ExportValidator struct {
	reset   string
	markers *regexp.Regexp
	// Track validation errors
	errors []ValidationError
	// Options
	strictMode bool // Also flag markers that repeat the one already in effect
}

// ValidationError represents a validation error with location information.
// Row is -1 for problems with the export as a whole.
type ValidationError struct {
	Row     int
	Message string
}

func (e ValidationError) Error() string {
	if e.Row < 0 {
		return e.Message
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

var tokenPattern = regexp.MustCompile(export.TokenRed + "|" + export.TokenGreen + "|" + export.TokenBlue + "|" + export.TokenIndex)

// NewExportValidator creates a validator for exports made with t.
func NewExportValidator(t export.Template) (*ExportValidator, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	// Literal pieces of the color marker, with every slot matching a number.
	var color strings.Builder
	last := 0
	for _, loc := range tokenPattern.FindAllStringIndex(t.Color, -1) {
		color.WriteString(regexp.QuoteMeta(t.Color[last:loc[0]]))
		color.WriteString(`\d{1,3}`)
		last = loc[1]
	}
	color.WriteString(regexp.QuoteMeta(t.Color[last:]))

	pattern := color.String()
	if t.Reset != "" {
		pattern += "|" + regexp.QuoteMeta(t.Reset)
	}
	markers, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile marker pattern: %w", err)
	}

	return &ExportValidator{reset: t.Reset, markers: markers}, nil
}

// SetStrictMode enables or disables the coalescing check.
func (v *ExportValidator) SetStrictMode(strict bool) {
	v.strictMode = strict
}

// Validate checks an export of a width x height grid.
func (v *ExportValidator) Validate(output string, width, height int) []ValidationError {
	v.errors = nil

	if !strings.HasSuffix(output, "\n") {
		v.addError(-1, "export does not end with a newline")
	}
	rows := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	if output == "" {
		rows = nil
	}
	if len(rows) != height {
		v.addError(-1, fmt.Sprintf("export has %d rows, want %d", len(rows), height))
	}

	// Leading transparent cells carry no marker, so the reset counts as
	// already in effect.
	current := v.reset
	for y, row := range rows {
		v.checkRow(y, row, width)
		if v.strictMode {
			current = v.checkMarkers(y, row, current)
		}
	}

	return v.errors
}

// checkRow verifies that a row holds exactly width cells once markers are
// removed.
func (v *ExportValidator) checkRow(y int, row string, width int) {
	stripped := v.markers.ReplaceAllString(row, "")

	if other := strings.ReplaceAll(stripped, " ", ""); other != "" {
		v.addError(y, fmt.Sprintf("unexpected text %q between cells", other))
		return
	}
	if len(stripped) != width {
		v.addError(y, fmt.Sprintf("row has %d cells, want %d", len(stripped), width))
	}
}

// checkMarkers flags a marker that repeats the one already in effect. The
// marker in effect carries across rows.
func (v *ExportValidator) checkMarkers(y int, row, current string) string {
	for _, m := range v.markers.FindAllString(row, -1) {
		if m == current {
			v.addError(y, fmt.Sprintf("redundant marker %q", m))
		}
		current = m
	}
	return current
}

func (v *ExportValidator) addError(row int, msg string) {
	v.errors = append(v.errors, ValidationError{Row: row, Message: msg})
}
