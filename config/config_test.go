package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tpaint/core"
	"tpaint/export"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Load(missing) mismatch (-want +got):\n%s", diff)
	}
}

func TestParse(t *testing.T) {
	data := `
[canvas]
width = 64
scale_x = 3

[brush]
width = 25
height = 0

[colors]
primary = "#ff0000"
secondary = "#00f"
palette = ["#010203", "#a0b0c0"]

[export]
default_format = "irc"

[export.templates.irc]
color = "<rrr,ggg,bbb>"
reset = "</>"
`
	cfg, err := Parse("test.toml", []byte(data))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	wantCanvas := core.Config{Width: 64, Height: 20, ScaleX: 3, ScaleY: 1, BrushWidth: 10, BrushHeight: 1}
	if diff := cmp.Diff(wantCanvas, cfg.Canvas); diff != "" {
		t.Errorf("Canvas mismatch (-want +got):\n%s", diff)
	}
	if cfg.Primary != (core.Color{R: 255}) || cfg.Secondary != (core.Color{B: 255}) {
		t.Errorf("colors = %v, %v", cfg.Primary, cfg.Secondary)
	}
	if cfg.Palette[0] != (core.Color{R: 1, G: 2, B: 3}) || cfg.Palette[1] != (core.Color{R: 0xa0, G: 0xb0, B: 0xc0}) {
		t.Errorf("palette overrides not applied: %v %v", cfg.Palette[0], cfg.Palette[1])
	}
	if cfg.Palette[2] != core.Swatches[2] {
		t.Errorf("palette[2] = %v, want default %v", cfg.Palette[2], core.Swatches[2])
	}

	want := export.Template{Name: "irc", Color: "<rrr,ggg,bbb>", Reset: "</>"}
	if diff := cmp.Diff(want, cfg.Templates["irc"]); diff != "" {
		t.Errorf("template mismatch (-want +got):\n%s", diff)
	}
	if cfg.DefaultFormat != "irc" {
		t.Errorf("DefaultFormat = %q, want irc", cfg.DefaultFormat)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		errMsg   string
		wantLine bool
	}{
		{"syntax", "[canvas\nwidth = 3", "parse error in bad.toml", true},
		{"wrong type", "[canvas]\nwidth = \"wide\"", "parse error in bad.toml", false},
		{"unknown key", "[canvas]\ndepth = 3", `unknown key "canvas.depth"`, false},
		{"bad color", "[colors]\nprimary = \"red\"", "colors.primary", false},
		{"long palette", "[colors]\npalette = [" + strings.Repeat(`"#000000",`, 17) + "]", "at most 16", false},
		{"tokenless template", "[export.templates.x]\ncolor = \"X\"", "export.templates.x", false},
		{"unknown default format", "[export]\ndefault_format = \"gif\"", "export.default_format", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.toml", []byte(tt.data))
			if err == nil {
				t.Fatal("Parse() returned no error")
			}

			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error %T is not a *ParseError", err)
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("error = %q, want it to contain %q", err, tt.errMsg)
			}
			if tt.wantLine && pe.Line == 0 {
				t.Errorf("ParseError has no line: %+v", pe)
			}
			if pe.Unwrap() == nil {
				t.Error("ParseError does not wrap a cause")
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[canvas]\nheight = 5000\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Canvas.Height != core.MaxDimension {
		t.Errorf("Height = %d, want %d", cfg.Canvas.Height, core.MaxDimension)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	t.Setenv("HOME", "/tmp/home")

	path, err := DefaultPath()
	if err != nil {
		t.Skipf("no config dir on this platform: %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join("tpaint", "config.toml")) {
		t.Errorf("DefaultPath() = %q", path)
	}
}

func TestNewEditor(t *testing.T) {
	cfg := Default()
	cfg.Primary = core.Color{G: 200}
	cfg.Templates["dots"] = export.Template{Color: "[rrr]", Reset: "."}
	cfg.DefaultFormat = "dots"

	e := cfg.NewEditor()
	if got := e.Config(); got != cfg.Canvas {
		t.Errorf("Config() = %+v, want %+v", got, cfg.Canvas)
	}
	if p, s := e.Colors(); p != cfg.Primary || s != cfg.Secondary {
		t.Errorf("Colors() = %v, %v", p, s)
	}
	if e.Status() != "" {
		t.Errorf("Status() = %q, want empty", e.Status())
	}

	e.PointerDown(core.Point{}, core.ButtonPrimary)
	e.PointerUp()
	e.HandleKey('e')
	if !strings.HasPrefix(e.Exported(), "[0] ") {
		t.Errorf("quick export did not use the configured template: %q", e.Exported())
	}
}
