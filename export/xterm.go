package export

import (
	"sync"

	"github.com/lucasb-eyer/go-colorful"

	"tpaint/core"
)

var (
	xtermOnce    sync.Once
	xtermPalette [256]colorful.Color
)

// cubeLevels are the channel intensities of the 6x6x6 color cube (16-231).
var cubeLevels = [6]uint8{0, 95, 135, 175, 215, 255}

func loadXtermPalette() {
	// 0-15 are the standard system colors, which are also the swatches.
	for i, c := range core.Swatches {
		xtermPalette[i] = toColorful(c)
	}
	for i := 0; i < 216; i++ {
		xtermPalette[16+i] = colorful.Color{
			R: float64(cubeLevels[i/36]) / 255,
			G: float64(cubeLevels[(i/6)%6]) / 255,
			B: float64(cubeLevels[i%6]) / 255,
		}
	}
	for i := 0; i < 24; i++ {
		v := float64(8+10*i) / 255
		xtermPalette[232+i] = colorful.Color{R: v, G: v, B: v}
	}
}

// XtermIndex returns the xterm-256 palette entry perceptually closest to c.
// Ties go to the lowest index, so exact system colors map to 0-15.
func XtermIndex(c core.Color) int {
	xtermOnce.Do(loadXtermPalette)

	target := toColorful(c)
	best, bestDist := 0, -1.0
	for i, p := range xtermPalette {
		d := target.DistanceLab(p)
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func toColorful(c core.Color) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}
