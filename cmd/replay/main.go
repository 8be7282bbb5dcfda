// Command replay plays a tpaint demo script without a terminal and writes
// the resulting drawing in any export format.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"tpaint/config"
	"tpaint/demo"
	"tpaint/export"
	"tpaint/validation"
)

type options struct {
	script     string
	format     string
	output     string
	configPath string
	validate   bool
}

var errBinaryToTerminal = errors.New("refusing to write binary output to a terminal, use -o")

func main() {
	os.Exit(run())
}

func run() int {
	var opts options
	flag.StringVar(&opts.format, "format", "", "Export format (default: the configured default)")
	flag.StringVar(&opts.output, "o", "", "Output file (default: stdout)")
	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.BoolVar(&opts.validate, "validate", false, "Check the shape of a text export before writing it")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <script.json|script.toml|example>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nFormats:\n")
		descriptions := export.GetFormatDescriptions()
		for _, f := range export.GetAvailableFormats() {
			fmt.Fprintf(os.Stderr, "  %-8s %s\n", f, descriptions[f])
		}
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		return 2
	}
	opts.script = flag.Arg(0)

	stdoutIsTTY := term.IsTerminal(int(os.Stdout.Fd()))
	if err := replay(opts, os.Stdout, stdoutIsTTY); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// replay plays the script and writes the export to opts.output, or to
// stdout when no output file is given.
func replay(opts options, stdout io.Writer, stdoutIsTTY bool) error {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return err
		}
	}

	format := cfg.DefaultFormat
	if opts.format != "" {
		f, err := config.ResolveFormat(opts.format, cfg.Templates)
		if err != nil {
			return err
		}
		format = f
	}
	if !export.IsText(format) && opts.output == "" && stdoutIsTTY {
		return errBinaryToTerminal
	}

	script, err := loadScript(opts.script)
	if err != nil {
		return err
	}

	ed := cfg.NewEditor()
	if err := demo.PlayInstant(script, ed); err != nil {
		return fmt.Errorf("replay %s: %w", opts.script, err)
	}

	var buf bytes.Buffer
	if err := ed.ExportTo(&buf, format); err != nil {
		return err
	}

	if opts.validate {
		if err := validate(buf.String(), format, cfg, ed.Config().Width, ed.Config().Height); err != nil {
			return err
		}
	}

	if opts.output == "" {
		_, err := stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(opts.output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	return nil
}

func loadScript(name string) (*demo.Script, error) {
	if name == "example" {
		return demo.ParseScript("example.json", []byte(demo.GenerateExample()))
	}
	return demo.LoadScript(name)
}

// validate runs the export validator in strict mode. Image formats have
// nothing to check.
func validate(output string, format export.Format, cfg config.Config, width, height int) error {
	if !export.IsText(format) {
		return nil
	}

	tmpl, ok := export.BuiltinTemplate(format)
	if !ok {
		tmpl, ok = cfg.Templates[string(format)]
	}
	if !ok {
		return fmt.Errorf("%w: %s", export.ErrUnknownFormat, format)
	}

	v, err := validation.NewExportValidator(tmpl)
	if err != nil {
		return err
	}
	v.SetStrictMode(true)

	errs := v.Validate(output, width, height)
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("export failed validation:\n  %s", strings.Join(msgs, "\n  "))
}
