// Command tpaint is a pixel-art editor for the terminal. It paints with the
// mouse on a grid of colored cells and exports the drawing as escape-sequence
// text or as an image.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"tpaint/config"
	"tpaint/core"
	"tpaint/demo"
	"tpaint/editor"
	"tpaint/export"
	"tpaint/terminal"
)

type options struct {
	configPath string
	width      int
	height     int
	scaleX     int
	scaleY     int
	demo       string
	logPath    string
	logLevel   string
	print      bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	closeLog, err := setupLogging(opts.logPath, opts.logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ed := cfg.NewEditor()
	session, err := terminal.NewTerminalSession(ed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if opts.demo != "" {
		script, err := loadDemo(opts.demo)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		player := demo.NewPlayer(script, session.Post)
		defer player.Stop()
		session.SetOnMount(func() {
			if err := player.Play(ed); err != nil {
				ed.SetStatus("demo: " + err.Error())
			}
		})
	}

	// Handle signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := session.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if opts.print && ed.Exported() != "" {
		fmt.Print(ed.Exported())
	}
	return 0
}

func parseFlags() options {
	var opts options
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file (default: user config dir)")
	flag.IntVar(&opts.width, "width", 0, "Canvas width in cells (overrides config)")
	flag.IntVar(&opts.height, "height", 0, "Canvas height in cells (overrides config)")
	flag.IntVar(&opts.scaleX, "scale-x", 0, "Terminal columns per cell (overrides config)")
	flag.IntVar(&opts.scaleY, "scale-y", 0, "Terminal rows per cell (overrides config)")
	flag.StringVar(&opts.demo, "demo", "", "Play a demo script (.json or .toml), or \"example\" for the built-in one")
	flag.StringVar(&opts.logPath, "log", "", "Write a log to this file")
	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&opts.print, "print", false, "Print the last text export to stdout on exit")
	flag.BoolVar(&showHelp, "help", false, "Show help")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Paint pixel art in the terminal with the mouse.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nMouse:\n")
		fmt.Fprintf(os.Stderr, "  left button paints the primary color, right button the secondary\n")
		fmt.Fprintf(os.Stderr, "  click a swatch to pick a color, click the tool label to switch tools\n")
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  p / r        pen / rubber\n")
		fmt.Fprintf(os.Stderr, "  [ ] { }      brush width / height\n")
		fmt.Fprintf(os.Stderr, "  x            swap colors\n")
		fmt.Fprintf(os.Stderr, "  c            clear canvas\n")
		fmt.Fprintf(os.Stderr, "  e            export with the default format\n")
		fmt.Fprintf(os.Stderr, "  q            quit\n")
		fmt.Fprintf(os.Stderr, "\nCommands:\n")
		fmt.Fprintf(os.Stderr, "  :set <field> <value>       %s\n", strings.Join(editor.Fields, ", "))
		fmt.Fprintf(os.Stderr, "  :tool pen|rubber\n")
		fmt.Fprintf(os.Stderr, "  :color primary|secondary #rrggbb\n")
		fmt.Fprintf(os.Stderr, "  :swatch <0-15> [secondary]\n")
		fmt.Fprintf(os.Stderr, "  :export <format> [file]    %s\n", strings.Join(formatNames(), ", "))
		fmt.Fprintf(os.Stderr, "  :template <color> [reset]  tokens rrr ggg bbb iii\n")
		fmt.Fprintf(os.Stderr, "  :clear\n")
		fmt.Fprintf(os.Stderr, "  :q\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	switch opts.logLevel {
	case "debug", "info", "warn", "error":
		// Valid
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		os.Exit(1)
	}

	return opts
}

func formatNames() []string {
	return export.FormatNames(export.Options{})
}

// setupLogging points the shared logger at a file. The terminal owns stdout
// and stderr, so without -log nothing is logged.
func setupLogging(path, level string) (func(), error) {
	if path == "" {
		return func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		f.Close()
		return nil, fmt.Errorf("log level: %w", err)
	}

	core.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl})))
	return func() {
		core.SetLogger(nil)
		f.Close()
	}, nil
}

// loadConfig reads the config file and applies the size flags on top.
func loadConfig(opts options) (config.Config, error) {
	path := opts.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			core.Logger().Warn("no config directory, using defaults", "err", err)
			return withFlags(config.Default(), opts), nil
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	return withFlags(cfg, opts), nil
}

func withFlags(cfg config.Config, opts options) config.Config {
	if opts.width > 0 {
		cfg.Canvas.Width = opts.width
	}
	if opts.height > 0 {
		cfg.Canvas.Height = opts.height
	}
	if opts.scaleX > 0 {
		cfg.Canvas.ScaleX = opts.scaleX
	}
	if opts.scaleY > 0 {
		cfg.Canvas.ScaleY = opts.scaleY
	}
	cfg.Canvas = cfg.Canvas.Normalize()
	return cfg
}

func loadDemo(name string) (*demo.Script, error) {
	if name == "example" {
		return demo.ParseScript("example.json", []byte(demo.GenerateExample()))
	}
	return demo.LoadScript(name)
}
