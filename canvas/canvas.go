// Package canvas provides the software cell buffers behind the editor: the
// committed grid, the preview overlay, and the scratch buffer used to keep
// drawings intact across resizes.
package canvas

import "tpaint/core"

// Surface is the drawing capability the editor paints through.
// Re-exported from core package for convenience.
type Surface = core.Surface

// Compile-time interface checks.
var (
	_ core.Surface = (*Grid)(nil)
	_ core.Raster  = (*Scratch)(nil)
)
