package editor

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"tpaint/canvas"
	"tpaint/core"
)

var red = core.Color{R: 255}

func brushConfig(w, h int) core.Config {
	cfg := core.DefaultConfig()
	cfg.BrushWidth, cfg.BrushHeight = w, h
	return cfg
}

func TestFootprint(t *testing.T) {
	tests := []struct {
		name   string
		target core.Point
		bw, bh int
		want   core.Rect
	}{
		{"1x1", core.Point{X: 5, Y: 5}, 1, 1, core.Rect{X: 5, Y: 5, W: 1, H: 1}},
		{"3x3 centered", core.Point{X: 5, Y: 5}, 3, 3, core.Rect{X: 4, Y: 4, W: 3, H: 3}},
		{"2x2 leans up-left", core.Point{X: 5, Y: 5}, 2, 2, core.Rect{X: 4, Y: 4, W: 2, H: 2}},
		{"4x1", core.Point{X: 0, Y: 0}, 4, 1, core.Rect{X: -2, Y: 0, W: 4, H: 1}},
		{"zero treated as 1", core.Point{X: 2, Y: 3}, 0, 0, core.Rect{X: 2, Y: 3, W: 1, H: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Footprint(tt.target, brushConfig(tt.bw, tt.bh))
			if got != tt.want {
				t.Errorf("Footprint() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestApply(t *testing.T) {
	g := canvas.NewGrid(5, 4)

	Apply(g, core.Point{X: 0, Y: 0}, brushConfig(3, 3), core.ToolPen, red)
	want := "" +
		"##...\n" +
		"##...\n" +
		".....\n" +
		".....\n"
	if diff := cmp.Diff(want, g.String()); diff != "" {
		t.Errorf("pen at corner mismatch (-want +got):\n%s", diff)
	}
	if got := g.Cell(core.Point{X: 1, Y: 1}); got != core.Paint(red) {
		t.Errorf("painted cell = %+v, want %+v", got, core.Paint(red))
	}

	Apply(g, core.Point{X: 1, Y: 0}, brushConfig(1, 1), core.ToolRubber, red)
	want = "" +
		"#....\n" +
		"##...\n" +
		".....\n" +
		".....\n"
	if diff := cmp.Diff(want, g.String()); diff != "" {
		t.Errorf("rubber mismatch (-want +got):\n%s", diff)
	}

	// Far outside: clipped away entirely.
	Apply(g, core.Point{X: 40, Y: -40}, brushConfig(10, 10), core.ToolPen, red)
	if diff := cmp.Diff(want, g.String()); diff != "" {
		t.Errorf("out of range Apply() changed grid (-want +got):\n%s", diff)
	}
}

func TestPreview(t *testing.T) {
	overlay := canvas.NewGrid(4, 4)
	overlay.SetRect(core.Rect{W: 4, H: 4}, core.Paint(red))

	Preview(overlay, core.Point{X: 2, Y: 2}, Brush{Config: brushConfig(1, 1), Tool: core.ToolRubber})

	want := "" +
		"....\n" +
		"....\n" +
		"..#.\n" +
		"....\n"
	if diff := cmp.Diff(want, overlay.String()); diff != "" {
		t.Errorf("Preview() mismatch (-want +got):\n%s", diff)
	}
	if got := overlay.Cell(core.Point{X: 2, Y: 2}); got != core.Indicator() {
		t.Errorf("rubber preview cell = %+v, want indicator", got)
	}
}
