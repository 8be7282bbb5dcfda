package export

import (
	"errors"
	"strconv"
	"strings"

	"tpaint/core"
)

// Substitution tokens understood in Template.Color.
const (
	TokenRed   = "rrr"
	TokenGreen = "ggg"
	TokenBlue  = "bbb"
	TokenIndex = "iii" // nearest xterm-256 palette index
)

// Template is a text dialect: a color marker with substitution slots and the
// marker that switches color off for transparent cells.
type Template struct {
	Name  string
	Color string
	Reset string
}

var errNoTokens = errors.New("color template has no rrr/ggg/bbb/iii token")

// Validate checks that the color marker references at least one slot.
// A template without slots would paint every cell the same color.
func (t Template) Validate() error {
	for _, tok := range []string{TokenRed, TokenGreen, TokenBlue, TokenIndex} {
		if strings.Contains(t.Color, tok) {
			return nil
		}
	}
	return errNoTokens
}

// Substitute fills the color slots with c's decimal components.
// Every occurrence of each token is replaced.
func (t Template) Substitute(c core.Color) string {
	pairs := []string{
		TokenRed, strconv.Itoa(int(c.R)),
		TokenGreen, strconv.Itoa(int(c.G)),
		TokenBlue, strconv.Itoa(int(c.B)),
	}
	if strings.Contains(t.Color, TokenIndex) {
		pairs = append(pairs, TokenIndex, strconv.Itoa(XtermIndex(c)))
	}
	return strings.NewReplacer(pairs...).Replace(t.Color)
}

var builtinTemplates = map[Format]Template{
	FormatANSI: {
		Name:  "ANSI escape sequences",
		Color: "\x1b[48;2;rrr;ggg;bbbm",
		Reset: "\x1b[0m",
	},
	FormatJS: {
		Name:  "JavaScript escape sequences",
		Color: `\x1b[48;2;rrr;ggg;bbbm`,
		Reset: `\x1b[0m`,
	},
	FormatShell: {
		Name:  "Shell escape sequences",
		Color: `\e[48;2;rrr;ggg;bbbm`,
		Reset: `\e[0m`,
	},
	FormatANSI256: {
		Name:  "xterm-256 escape sequences",
		Color: "\x1b[48;5;iiim",
		Reset: "\x1b[0m",
	},
}

// BuiltinTemplate returns the template behind a built-in text format.
func BuiltinTemplate(f Format) (Template, bool) {
	t, ok := builtinTemplates[f]
	return t, ok
}
