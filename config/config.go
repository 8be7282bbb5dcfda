// Package config loads tpaint settings from a TOML file.
//
// A missing file is not an error: every setting has a default. The file
// layout is
//
//	[canvas]
//	width = 48
//	height = 20
//	scale_x = 2
//	scale_y = 1
//
//	[brush]
//	width = 1
//	height = 1
//
//	[colors]
//	primary = "#000000"
//	secondary = "#ffffff"
//	palette = ["#000000", "#800000", ...] # up to 16 entries
//
//	[export]
//	default_format = "js"
//
//	[export.templates.irc]
//	color = "\u0003rrr,ggg,bbb"
//	reset = "\u000f"
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"

	"tpaint/core"
	"tpaint/editor"
	"tpaint/export"
)

// Config is the resolved configuration.
type Config struct {
	Canvas        core.Config
	Primary       core.Color
	Secondary     core.Color
	Palette       [16]core.Color
	DefaultFormat export.Format
	Templates     map[string]export.Template
}

// Default returns the built-in configuration. The canvas is sized for a
// terminal, where one cell is two columns wide and one row tall.
func Default() Config {
	return Config{
		Canvas: core.Config{
			Width:       48,
			Height:      20,
			ScaleX:      2,
			ScaleY:      1,
			BrushWidth:  1,
			BrushHeight: 1,
		},
		Primary:       core.Black,
		Secondary:     core.White,
		Palette:       core.Swatches,
		DefaultFormat: export.FormatJS,
		Templates:     map[string]export.Template{},
	}
}

// file mirrors the TOML layout.
type file struct {
	Canvas struct {
		Width  int `toml:"width"`
		Height int `toml:"height"`
		ScaleX int `toml:"scale_x"`
		ScaleY int `toml:"scale_y"`
	} `toml:"canvas"`
	Brush struct {
		Width  int `toml:"width"`
		Height int `toml:"height"`
	} `toml:"brush"`
	Colors struct {
		Primary   string   `toml:"primary"`
		Secondary string   `toml:"secondary"`
		Palette   []string `toml:"palette"`
	} `toml:"colors"`
	Export struct {
		DefaultFormat string                  `toml:"default_format"`
		Templates     map[string]templateFile `toml:"templates"`
	} `toml:"export"`
}

type templateFile struct {
	Name  string `toml:"name"`
	Color string `toml:"color"`
	Reset string `toml:"reset"`
}

// DefaultPath returns the per-user config file location,
// $XDG_CONFIG_HOME/tpaint/config.toml on Linux.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, "tpaint", "config.toml"), nil
}

// Load reads configuration from path. A missing file yields the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			core.Logger().Debug("no config file", "path", path)
			return Default(), nil // File doesn't exist, not an error
		}
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg, err := Parse(path, data)
	if err != nil {
		return Config{}, err
	}
	core.Logger().Info("config loaded", "path", path)
	return cfg, nil
}

// Parse decodes TOML data. Keys missing from the data keep their defaults,
// numeric values are clamped into range, and unknown keys are an error.
func Parse(source string, data []byte) (Config, error) {
	def := Default()

	var f file
	f.Canvas.Width, f.Canvas.Height = def.Canvas.Width, def.Canvas.Height
	f.Canvas.ScaleX, f.Canvas.ScaleY = def.Canvas.ScaleX, def.Canvas.ScaleY
	f.Brush.Width, f.Brush.Height = def.Canvas.BrushWidth, def.Canvas.BrushHeight

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return Config{}, newParseError(source, err)
	}

	cfg := def
	cfg.Canvas = core.Config{
		Width:       f.Canvas.Width,
		Height:      f.Canvas.Height,
		ScaleX:      f.Canvas.ScaleX,
		ScaleY:      f.Canvas.ScaleY,
		BrushWidth:  f.Brush.Width,
		BrushHeight: f.Brush.Height,
	}.Normalize()

	var err error
	if f.Colors.Primary != "" {
		if cfg.Primary, err = parseColor(f.Colors.Primary); err != nil {
			return Config{}, valueError(source, "colors.primary", err)
		}
	}
	if f.Colors.Secondary != "" {
		if cfg.Secondary, err = parseColor(f.Colors.Secondary); err != nil {
			return Config{}, valueError(source, "colors.secondary", err)
		}
	}
	if len(f.Colors.Palette) > len(cfg.Palette) {
		return Config{}, valueError(source, "colors.palette",
			fmt.Errorf("%d entries, at most %d allowed", len(f.Colors.Palette), len(cfg.Palette)))
	}
	for i, hex := range f.Colors.Palette {
		if cfg.Palette[i], err = parseColor(hex); err != nil {
			return Config{}, valueError(source, fmt.Sprintf("colors.palette[%d]", i), err)
		}
	}

	for name, t := range f.Export.Templates {
		tmpl := export.Template{Name: t.Name, Color: t.Color, Reset: t.Reset}
		if tmpl.Name == "" {
			tmpl.Name = name
		}
		if err := tmpl.Validate(); err != nil {
			return Config{}, valueError(source, "export.templates."+name, err)
		}
		cfg.Templates[name] = tmpl
	}

	if f.Export.DefaultFormat != "" {
		format, err := ResolveFormat(f.Export.DefaultFormat, cfg.Templates)
		if err != nil {
			return Config{}, valueError(source, "export.default_format", err)
		}
		cfg.DefaultFormat = format
	}

	return cfg, nil
}

// ResolveFormat accepts a built-in format name or alias, or the name of a
// custom template.
func ResolveFormat(name string, templates map[string]export.Template) (export.Format, error) {
	if f, err := export.ParseFormat(name); err == nil {
		return f, nil
	}
	if _, ok := templates[name]; ok {
		return export.Format(name), nil
	}
	return "", fmt.Errorf("%w: %s", export.ErrUnknownFormat, name)
}

func parseColor(hex string) (core.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return core.Color{}, err
	}
	r, g, b := c.RGB255()
	return core.Color{R: r, G: g, B: b}, nil
}

// ExportOptions returns the exporter settings carried by the configuration.
func (c Config) ExportOptions() export.Options {
	return export.Options{
		ScaleX:    c.Canvas.ScaleX,
		ScaleY:    c.Canvas.ScaleY,
		Templates: c.Templates,
	}
}

// NewEditor creates an editor set up with this configuration.
func (c Config) NewEditor() *editor.Editor {
	e := editor.NewEditor(c.Canvas)
	e.SetPalette(c.Palette)
	e.SetColor(c.Primary, true)
	e.SetColor(c.Secondary, false)
	e.SetExportOptions(c.ExportOptions(), c.DefaultFormat)
	e.SetStatus("")
	return e
}
